package refresh

import (
	"context"
	"fmt"

	"github.com/cloneboot/cloneboot/internal/config"
	"github.com/cloneboot/cloneboot/internal/platform/pcloud"
)

// Stage tags the workflow stage a fatal error occurred in. The recovery
// classifier keys its marking decision off this tag.
type Stage string

const (
	StageResolveTarget    Stage = "RESOLVE_TARGET"
	StageIdentifyVolumes  Stage = "IDENTIFY_VOLUMES"
	StageCloneVolumes     Stage = "CLONE_VOLUMES"
	StageVolumeAvailable  Stage = "VOLUME_AVAILABLE"
	StageAttachVolume     Stage = "ATTACH_VOLUME"
	StageBootConfig       Stage = "BOOT_CONFIG"
	StageStartup          Stage = "STARTUP"
	StageFinalStatusCheck Stage = "FINAL_STATUS_CHECK"
)

// RequiresRecovery reports whether a failure in this stage leaves cloned
// volumes attached to the target, i.e. recoverable state worth preserving.
// Earlier stages need no volume action: nothing is attached yet.
func (s Stage) RequiresRecovery() bool {
	switch s {
	case StageAttachVolume, StageBootConfig, StageStartup, StageFinalStatusCheck:
		return true
	}
	return false
}

// StageError is a fatal error carrying the stage it occurred in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("[%s] %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// stageErr wraps err with a stage tag.
func stageErr(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// stageErrf formats a stage-tagged error.
func stageErrf(stage Stage, format string, args ...interface{}) *StageError {
	return &StageError{Stage: stage, Err: fmt.Errorf(format, args...)}
}

// State holds the shared results of the refresh stages.
// It is progressively populated as each stage completes and is read by the
// exit-time recovery classifier.
type State struct {
	// Resume guard results
	TargetID string
	Resumed  bool

	// Volume identification results (source side)
	SourceBootVolumeID  string
	SourceDataVolumeIDs []string

	// Clone results. On a resumed run these are set from the volumes already
	// attached to the target instead.
	CloneTaskID   string
	BootVolumeID  string
	DataVolumeIDs []string

	// Outcome
	FailedStage Stage
	JobSuccess  bool
}

// CloneVolumeIDs returns the boot clone id followed by the data clone ids.
func (s *State) CloneVolumeIDs() []string {
	if s.BootVolumeID == "" {
		return nil
	}
	return append([]string{s.BootVolumeID}, s.DataVolumeIDs...)
}

// NewState creates an empty run state.
func NewState() *State {
	return &State{}
}

// Context wraps all dependencies and state needed by the refresh stages.
type Context struct {
	context.Context
	Config   *config.Config
	Timeouts *config.Timeouts
	Cloud    pcloud.Client
	Prep     Prep
	State    *State
	Observer Observer
}

// NewContext creates a refresh context with a fresh State and a console
// observer.
func NewContext(ctx context.Context, cfg *config.Config, cloud pcloud.Client) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Timeouts: config.LoadTimeouts(),
		Cloud:    cloud,
		Prep:     NoopPrep{},
		State:    NewState(),
		Observer: NewConsoleObserver(),
	}
}
