package pcloud

import "context"

// Client defines the control-plane operations the refresh workflow consumes.
// It abstracts the vendor CLI so the orchestration core can be tested against
// a mock.
type Client interface {
	// GetPartition returns the partition with the given id.
	GetPartition(ctx context.Context, id string) (*Partition, error)

	// FindPartition resolves a partition by name or id.
	FindPartition(ctx context.Context, nameOrID string) (*Partition, error)

	// ListAttachedVolumes returns the volumes attached to a partition,
	// in the order the control plane reports them.
	ListAttachedVolumes(ctx context.Context, partitionID string) ([]*Volume, error)

	// GetVolume returns the volume with the given id.
	GetVolume(ctx context.Context, id string) (*Volume, error)

	// UpdateVolumeName renames a volume.
	UpdateVolumeName(ctx context.Context, id, newName string) error

	// SubmitCloneTask submits one asynchronous clone task covering all of
	// sourceVolumeIDs and returns the task id.
	SubmitCloneTask(ctx context.Context, sourceVolumeIDs []string, namePrefix string) (string, error)

	// GetCloneTask returns the current state of a clone task, including the
	// source-to-clone mapping once the task is completed.
	GetCloneTask(ctx context.Context, taskID string) (*CloneTask, error)

	// AttachVolumes attaches the boot volume and any data volumes to a
	// partition in a single request. dataVolumeIDs may be empty.
	AttachVolumes(ctx context.Context, partitionID, bootVolumeID string, dataVolumeIDs []string) error

	// ConfigureBoot sets the partition's boot device mode.
	ConfigureBoot(ctx context.Context, partitionID, mode string) error

	// StartPartition issues the start command for a partition.
	StartPartition(ctx context.Context, partitionID string) error
}
