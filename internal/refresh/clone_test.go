package refresh

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloneboot/cloneboot/internal/platform/pcloud"
)

// recordingPrep records suspend/resume invocations and can fail on demand.
type recordingPrep struct {
	suspends   int
	resumes    int
	suspendErr error
}

func (p *recordingPrep) Suspend(context.Context) error {
	p.suspends++
	return p.suspendErr
}

func (p *recordingPrep) Resume(context.Context) error {
	p.resumes++
	return nil
}

func cloneState() *State {
	return &State{
		TargetID:            "pvm-target",
		SourceBootVolumeID:  "src-boot",
		SourceDataVolumeIDs: []string{"src-data-1", "src-data-2"},
	}
}

func TestCloneVolumes_MapsClonesInSourceOrder(t *testing.T) {
	polls := 0
	mock := &pcloud.MockClient{
		SubmitCloneTaskFunc: func(_ context.Context, sourceIDs []string, prefix string) (string, error) {
			assert.Equal(t, []string{"src-boot", "src-data-1", "src-data-2"}, sourceIDs)
			assert.True(t, strings.HasPrefix(prefix, "dr-refresh-"))
			return "task-1", nil
		},
		GetCloneTaskFunc: func(_ context.Context, taskID string) (*pcloud.CloneTask, error) {
			assert.Equal(t, "task-1", taskID)
			polls++
			if polls < 3 {
				return &pcloud.CloneTask{ID: taskID, Status: pcloud.CloneTaskRunning}, nil
			}
			return &pcloud.CloneTask{
				ID:     taskID,
				Status: pcloud.CloneTaskCompleted,
				ClonedVolumes: []pcloud.ClonedVolume{
					{SourceID: "src-data-2", CloneID: "clone-data-2"},
					{SourceID: "src-boot", CloneID: "clone-boot"},
					{SourceID: "src-data-1", CloneID: "clone-data-1"},
				},
			}, nil
		},
	}
	ctx := newTestContext(t, mock)
	ctx.State = cloneState()

	require.NoError(t, CloneVolumes(ctx))
	assert.Equal(t, "task-1", ctx.State.CloneTaskID)
	assert.Equal(t, "clone-boot", ctx.State.BootVolumeID)
	assert.Equal(t, []string{"clone-data-1", "clone-data-2"}, ctx.State.DataVolumeIDs)
}

func TestCloneVolumes_PrepBracketsSubmission(t *testing.T) {
	prep := &recordingPrep{}
	mock := &pcloud.MockClient{
		SubmitCloneTaskFunc: func(_ context.Context, _ []string, _ string) (string, error) {
			return "task-1", nil
		},
		GetCloneTaskFunc: func(_ context.Context, taskID string) (*pcloud.CloneTask, error) {
			return &pcloud.CloneTask{
				ID:     taskID,
				Status: pcloud.CloneTaskCompleted,
				ClonedVolumes: []pcloud.ClonedVolume{
					{SourceID: "src-boot", CloneID: "clone-boot"},
					{SourceID: "src-data-1", CloneID: "clone-data-1"},
					{SourceID: "src-data-2", CloneID: "clone-data-2"},
				},
			}, nil
		},
	}
	ctx := newTestContext(t, mock)
	ctx.State = cloneState()
	ctx.Prep = prep

	require.NoError(t, CloneVolumes(ctx))
	assert.Equal(t, 1, prep.suspends)
	assert.Equal(t, 1, prep.resumes)
}

func TestCloneVolumes_PrepFailureIsWarningOnly(t *testing.T) {
	prep := &recordingPrep{suspendErr: errors.New("ssh unreachable")}
	mock := &pcloud.MockClient{
		SubmitCloneTaskFunc: func(_ context.Context, _ []string, _ string) (string, error) {
			return "task-1", nil
		},
		GetCloneTaskFunc: func(_ context.Context, taskID string) (*pcloud.CloneTask, error) {
			return &pcloud.CloneTask{
				ID:     taskID,
				Status: pcloud.CloneTaskCompleted,
				ClonedVolumes: []pcloud.ClonedVolume{
					{SourceID: "src-boot", CloneID: "clone-boot"},
					{SourceID: "src-data-1", CloneID: "clone-data-1"},
					{SourceID: "src-data-2", CloneID: "clone-data-2"},
				},
			}, nil
		},
	}
	ctx := newTestContext(t, mock)
	ctx.State = cloneState()
	ctx.Prep = prep

	require.NoError(t, CloneVolumes(ctx))
	obs := ctx.Observer.(*testObserver)
	require.Len(t, obs.warnings, 1)
	assert.Contains(t, obs.warnings[0], "ssh unreachable")
}

func TestCloneVolumes_ResumeRunsEvenWhenSubmitFails(t *testing.T) {
	prep := &recordingPrep{}
	mock := &pcloud.MockClient{
		SubmitCloneTaskFunc: func(_ context.Context, _ []string, _ string) (string, error) {
			return "", errors.New("quota exceeded")
		},
	}
	ctx := newTestContext(t, mock)
	ctx.State = cloneState()
	ctx.Prep = prep

	err := CloneVolumes(ctx)
	require.Error(t, err)
	assert.Equal(t, StageCloneVolumes, stageOf(t, err))
	assert.Equal(t, 1, prep.resumes)
}

func TestCloneVolumes_FailedTaskIsFatal(t *testing.T) {
	mock := &pcloud.MockClient{
		SubmitCloneTaskFunc: func(_ context.Context, _ []string, _ string) (string, error) {
			return "task-1", nil
		},
		GetCloneTaskFunc: func(_ context.Context, taskID string) (*pcloud.CloneTask, error) {
			return &pcloud.CloneTask{ID: taskID, Status: pcloud.CloneTaskFailed}, nil
		},
	}
	ctx := newTestContext(t, mock)
	ctx.State = cloneState()

	err := CloneVolumes(ctx)
	require.Error(t, err)
	assert.Equal(t, StageCloneVolumes, stageOf(t, err))
	assert.Contains(t, err.Error(), "failed")
}

func TestCloneVolumes_IncompleteMapping(t *testing.T) {
	mock := &pcloud.MockClient{
		SubmitCloneTaskFunc: func(_ context.Context, _ []string, _ string) (string, error) {
			return "task-1", nil
		},
		GetCloneTaskFunc: func(_ context.Context, taskID string) (*pcloud.CloneTask, error) {
			return &pcloud.CloneTask{
				ID:     taskID,
				Status: pcloud.CloneTaskCompleted,
				ClonedVolumes: []pcloud.ClonedVolume{
					{SourceID: "src-boot", CloneID: "clone-boot"},
					{SourceID: "src-data-1", CloneID: "clone-data-1"},
				},
			}, nil
		},
	}
	ctx := newTestContext(t, mock)
	ctx.State = cloneState()

	err := CloneVolumes(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCloneMappingIncomplete)
	assert.Contains(t, err.Error(), "src-data-2")
}

func TestCloneVolumes_TrackingTimeout(t *testing.T) {
	mock := &pcloud.MockClient{
		SubmitCloneTaskFunc: func(_ context.Context, _ []string, _ string) (string, error) {
			return "task-1", nil
		},
		GetCloneTaskFunc: func(_ context.Context, taskID string) (*pcloud.CloneTask, error) {
			return &pcloud.CloneTask{ID: taskID, Status: pcloud.CloneTaskRunning}, nil
		},
	}
	ctx := newTestContext(t, mock)
	ctx.State = cloneState()

	err := CloneVolumes(ctx)
	require.Error(t, err)
	assert.Equal(t, StageCloneVolumes, stageOf(t, err))
}
