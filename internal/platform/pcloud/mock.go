package pcloud

import "context"

// MockClient is a mock implementation of Client for tests. Unset Func fields
// fail loudly by returning a zero value, so tests only stub what they use.
type MockClient struct {
	GetPartitionFunc        func(ctx context.Context, id string) (*Partition, error)
	FindPartitionFunc       func(ctx context.Context, nameOrID string) (*Partition, error)
	ListAttachedVolumesFunc func(ctx context.Context, partitionID string) ([]*Volume, error)
	GetVolumeFunc           func(ctx context.Context, id string) (*Volume, error)
	UpdateVolumeNameFunc    func(ctx context.Context, id, newName string) error
	SubmitCloneTaskFunc     func(ctx context.Context, sourceVolumeIDs []string, namePrefix string) (string, error)
	GetCloneTaskFunc        func(ctx context.Context, taskID string) (*CloneTask, error)
	AttachVolumesFunc       func(ctx context.Context, partitionID, bootVolumeID string, dataVolumeIDs []string) error
	ConfigureBootFunc       func(ctx context.Context, partitionID, mode string) error
	StartPartitionFunc      func(ctx context.Context, partitionID string) error
}

var _ Client = (*MockClient)(nil)

func (m *MockClient) GetPartition(ctx context.Context, id string) (*Partition, error) {
	if m.GetPartitionFunc != nil {
		return m.GetPartitionFunc(ctx, id)
	}
	return nil, ErrPartitionNotFound
}

func (m *MockClient) FindPartition(ctx context.Context, nameOrID string) (*Partition, error) {
	if m.FindPartitionFunc != nil {
		return m.FindPartitionFunc(ctx, nameOrID)
	}
	return nil, ErrPartitionNotFound
}

func (m *MockClient) ListAttachedVolumes(ctx context.Context, partitionID string) ([]*Volume, error) {
	if m.ListAttachedVolumesFunc != nil {
		return m.ListAttachedVolumesFunc(ctx, partitionID)
	}
	return nil, nil
}

func (m *MockClient) GetVolume(ctx context.Context, id string) (*Volume, error) {
	if m.GetVolumeFunc != nil {
		return m.GetVolumeFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockClient) UpdateVolumeName(ctx context.Context, id, newName string) error {
	if m.UpdateVolumeNameFunc != nil {
		return m.UpdateVolumeNameFunc(ctx, id, newName)
	}
	return nil
}

func (m *MockClient) SubmitCloneTask(ctx context.Context, sourceVolumeIDs []string, namePrefix string) (string, error) {
	if m.SubmitCloneTaskFunc != nil {
		return m.SubmitCloneTaskFunc(ctx, sourceVolumeIDs, namePrefix)
	}
	return "", nil
}

func (m *MockClient) GetCloneTask(ctx context.Context, taskID string) (*CloneTask, error) {
	if m.GetCloneTaskFunc != nil {
		return m.GetCloneTaskFunc(ctx, taskID)
	}
	return nil, nil
}

func (m *MockClient) AttachVolumes(ctx context.Context, partitionID, bootVolumeID string, dataVolumeIDs []string) error {
	if m.AttachVolumesFunc != nil {
		return m.AttachVolumesFunc(ctx, partitionID, bootVolumeID, dataVolumeIDs)
	}
	return nil
}

func (m *MockClient) ConfigureBoot(ctx context.Context, partitionID, mode string) error {
	if m.ConfigureBootFunc != nil {
		return m.ConfigureBootFunc(ctx, partitionID, mode)
	}
	return nil
}

func (m *MockClient) StartPartition(ctx context.Context, partitionID string) error {
	if m.StartPartitionFunc != nil {
		return m.StartPartitionFunc(ctx, partitionID)
	}
	return nil
}
