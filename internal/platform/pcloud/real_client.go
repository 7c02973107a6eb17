package pcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

const defaultBinary = "ibmcloud"

// Config holds the credentials and targeting parameters for the control plane.
type Config struct {
	APIKey        string
	Region        string
	ResourceGroup string
	WorkspaceCRN  string

	// Binary overrides the CLI binary name. Defaults to "ibmcloud".
	Binary string
}

// runner executes a CLI command and returns its stdout and stderr.
// It is a seam for tests; production clients use execCommand.
type runner func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// RealClient implements Client by shelling out to the vendor CLI with JSON
// output. One instance corresponds to one authenticated, workspace-targeted
// CLI session.
type RealClient struct {
	binary string
	run    runner
}

// NewRealClient authenticates against the control plane and targets the
// configured resource group and workspace. All subsequent calls reuse that
// session.
func NewRealClient(ctx context.Context, cfg Config) (*RealClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pcloud: api key is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("pcloud: region is required")
	}
	if cfg.WorkspaceCRN == "" {
		return nil, fmt.Errorf("pcloud: workspace CRN is required")
	}

	binary := cfg.Binary
	if binary == "" {
		binary = defaultBinary
	}

	c := &RealClient{binary: binary, run: execCommand}

	loginArgs := []string{"login", "--apikey", cfg.APIKey, "-r", cfg.Region, "-q"}
	if cfg.ResourceGroup != "" {
		loginArgs = append(loginArgs, "-g", cfg.ResourceGroup)
	}
	if _, _, err := c.run(ctx, c.binary, loginArgs...); err != nil {
		return nil, fmt.Errorf("pcloud: login failed: %w", err)
	}

	if _, stderr, err := c.run(ctx, c.binary, "pi", "workspace", "target", cfg.WorkspaceCRN); err != nil {
		return nil, &CLIError{Args: []string{"pi", "workspace", "target"}, Stderr: string(stderr), Err: err}
	}

	return c, nil
}

// execCommand runs the CLI via os/exec.
func execCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	// #nosec G204 - name and args are built from internal config, never raw user input
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// pi runs an "ibmcloud pi ..." subcommand. When out is non-nil, --json is
// appended and stdout is decoded into it.
func (c *RealClient) pi(ctx context.Context, out interface{}, args ...string) error {
	full := append([]string{"pi"}, args...)
	if out != nil {
		full = append(full, "--json")
	}

	stdout, stderr, err := c.run(ctx, c.binary, full...)
	if err != nil {
		return &CLIError{Args: full, Stderr: string(stderr), Err: err}
	}

	if out != nil {
		if err := json.Unmarshal(stdout, out); err != nil {
			return fmt.Errorf("pcloud: decoding %q output: %w", strings.Join(args, " "), err)
		}
	}
	return nil
}

// GetPartition returns the partition with the given id.
func (c *RealClient) GetPartition(ctx context.Context, id string) (*Partition, error) {
	var p Partition
	if err := c.pi(ctx, &p, "instance", "get", id); err != nil {
		return nil, fmt.Errorf("failed to get partition %s: %w", id, err)
	}
	return &p, nil
}

// FindPartition resolves a partition by name or id. An id lookup is tried
// first; on not-found, the workspace instance list is searched by name.
func (c *RealClient) FindPartition(ctx context.Context, nameOrID string) (*Partition, error) {
	p, err := c.GetPartition(ctx, nameOrID)
	if err == nil {
		return p, nil
	}
	if !IsNotFound(err) {
		return nil, err
	}

	var list struct {
		PVMInstances []Partition `json:"pvmInstances"`
	}
	if err := c.pi(ctx, &list, "instance", "list"); err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	for i := range list.PVMInstances {
		if list.PVMInstances[i].Name == nameOrID {
			return c.GetPartition(ctx, list.PVMInstances[i].ID)
		}
	}
	return nil, fmt.Errorf("partition %q: %w", nameOrID, ErrPartitionNotFound)
}

// ListAttachedVolumes returns the volumes attached to a partition, preserving
// the order the control plane reports them in.
func (c *RealClient) ListAttachedVolumes(ctx context.Context, partitionID string) ([]*Volume, error) {
	p, err := c.GetPartition(ctx, partitionID)
	if err != nil {
		return nil, err
	}

	volumes := make([]*Volume, 0, len(p.VolumeIDs))
	for _, id := range p.VolumeIDs {
		v, err := c.GetVolume(ctx, id)
		if err != nil {
			return nil, err
		}
		volumes = append(volumes, v)
	}
	return volumes, nil
}

// GetVolume returns the volume with the given id.
func (c *RealClient) GetVolume(ctx context.Context, id string) (*Volume, error) {
	var v Volume
	if err := c.pi(ctx, &v, "volume", "get", id); err != nil {
		return nil, fmt.Errorf("failed to get volume %s: %w", id, err)
	}
	return &v, nil
}

// UpdateVolumeName renames a volume.
func (c *RealClient) UpdateVolumeName(ctx context.Context, id, newName string) error {
	if err := c.pi(ctx, nil, "volume", "update", id, "--name", newName); err != nil {
		return fmt.Errorf("failed to rename volume %s: %w", id, err)
	}
	return nil
}

// SubmitCloneTask submits one asynchronous clone task covering all of
// sourceVolumeIDs and returns the task id.
func (c *RealClient) SubmitCloneTask(ctx context.Context, sourceVolumeIDs []string, namePrefix string) (string, error) {
	var res struct {
		CloneTaskID string `json:"cloneTaskID"`
	}
	args := []string{"volume", "clone-async", "create", namePrefix,
		"--volumes", strings.Join(sourceVolumeIDs, ",")}
	if err := c.pi(ctx, &res, args...); err != nil {
		return "", fmt.Errorf("failed to submit clone task: %w", err)
	}
	if res.CloneTaskID == "" {
		return "", fmt.Errorf("pcloud: clone submission returned no task id")
	}
	return res.CloneTaskID, nil
}

// GetCloneTask returns the current state of a clone task.
func (c *RealClient) GetCloneTask(ctx context.Context, taskID string) (*CloneTask, error) {
	var t CloneTask
	if err := c.pi(ctx, &t, "volume", "clone-async", "get", taskID); err != nil {
		return nil, fmt.Errorf("failed to get clone task %s: %w", taskID, err)
	}
	if t.ID == "" {
		t.ID = taskID
	}
	return &t, nil
}

// AttachVolumes attaches the boot volume and any data volumes to a partition
// in a single request.
func (c *RealClient) AttachVolumes(ctx context.Context, partitionID, bootVolumeID string, dataVolumeIDs []string) error {
	ids := append([]string{bootVolumeID}, dataVolumeIDs...)
	err := c.pi(ctx, nil, "instance", "volume", "attach", partitionID,
		"--volumes", strings.Join(ids, ","))
	if err != nil {
		return fmt.Errorf("failed to attach volumes to partition %s: %w", partitionID, err)
	}
	return nil
}

// ConfigureBoot sets the partition's boot device mode.
func (c *RealClient) ConfigureBoot(ctx context.Context, partitionID, mode string) error {
	if err := c.pi(ctx, nil, "instance", "update", partitionID, "--boot-mode", mode); err != nil {
		return fmt.Errorf("failed to configure boot mode for partition %s: %w", partitionID, err)
	}
	return nil
}

// StartPartition issues the start command for a partition.
func (c *RealClient) StartPartition(ctx context.Context, partitionID string) error {
	if err := c.pi(ctx, nil, "instance", "action", partitionID, "--operation", "start"); err != nil {
		return fmt.Errorf("failed to start partition %s: %w", partitionID, err)
	}
	return nil
}
