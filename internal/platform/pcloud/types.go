package pcloud

import "strings"

// PartitionStatus is the lifecycle status of a compute partition as reported
// by the control plane.
type PartitionStatus string

const (
	StatusUnknown  PartitionStatus = ""
	StatusBuild    PartitionStatus = "BUILD"
	StatusStarting PartitionStatus = "STARTING"
	StatusActive   PartitionStatus = "ACTIVE"
	StatusShutoff  PartitionStatus = "SHUTOFF"
	StatusError    PartitionStatus = "ERROR"
)

// Normalize upper-cases a status for comparison; the CLI is not consistent
// about casing across plugin versions.
func (s PartitionStatus) Normalize() PartitionStatus {
	return PartitionStatus(strings.ToUpper(string(s)))
}

// Partition is a virtualized compute instance.
type Partition struct {
	ID        string          `json:"pvmInstanceID"`
	Name      string          `json:"serverName"`
	Status    PartitionStatus `json:"status"`
	VolumeIDs []string        `json:"volumeIDs"`
}

// Volume is a block-storage volume.
type Volume struct {
	ID       string `json:"volumeID"`
	Name     string `json:"name"`
	State    string `json:"state"`
	Bootable bool   `json:"bootable"`
}

// Available reports whether the volume has reached the available state.
// State comparison is case-insensitive.
func (v *Volume) Available() bool {
	return strings.EqualFold(v.State, "available")
}

// CloneTaskStatus is the status of an asynchronous volume clone task.
type CloneTaskStatus string

const (
	CloneTaskRunning   CloneTaskStatus = "running"
	CloneTaskCompleted CloneTaskStatus = "completed"
	CloneTaskFailed    CloneTaskStatus = "failed"
)

// Terminal reports whether the task has reached a terminal status.
func (s CloneTaskStatus) Terminal() bool {
	switch CloneTaskStatus(strings.ToLower(string(s))) {
	case CloneTaskCompleted, CloneTaskFailed:
		return true
	}
	return false
}

// ClonedVolume is one entry of a completed clone task's mapping.
type ClonedVolume struct {
	SourceID string `json:"sourceVolumeID"`
	CloneID  string `json:"clonedVolumeID"`
}

// CloneTask is an asynchronous control-plane operation producing point-in-time
// copies of the requested volumes. The mapping is populated only once the
// task is completed, and is then a bijection over the submitted source set —
// the control plane never reports partial completion.
type CloneTask struct {
	ID            string          `json:"cloneTaskID"`
	Status        CloneTaskStatus `json:"status"`
	ClonedVolumes []ClonedVolume  `json:"clonedVolumes"`
}
