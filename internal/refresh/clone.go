package refresh

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloneboot/cloneboot/internal/platform/pcloud"
	"github.com/cloneboot/cloneboot/internal/util/naming"
	"github.com/cloneboot/cloneboot/internal/util/poll"
)

// ErrCloneMappingIncomplete indicates a completed clone task's result does
// not cover every submitted source volume. The control plane guarantees the
// mapping is a bijection, so hitting this means the task detail is corrupt.
var ErrCloneMappingIncomplete = errors.New("clone task result does not cover all source volumes")

// CloneVolumes submits one asynchronous clone task covering the boot and
// data volumes together, tracks it to a terminal state, and splits the
// resulting source-to-clone mapping back into boot and data ids.
//
// A failed task is fatal with no resubmission: clone tasks are not
// idempotent, and a retry would strand the partial output of the first.
func CloneVolumes(ctx *Context) error {
	sourceIDs := append([]string{ctx.State.SourceBootVolumeID}, ctx.State.SourceDataVolumeIDs...)
	prefix := naming.ClonePrefix(ctx.Config.ClonePrefix, time.Now())

	// Quiesce disk I/O on the source while the point-in-time copy is taken.
	// Both bracket commands are best-effort: the clone proceeds either way.
	if err := ctx.Prep.Suspend(ctx); err != nil {
		ctx.Observer.Warnf("disk suspend on source failed, continuing: %v", err)
	}

	taskID, submitErr := ctx.Cloud.SubmitCloneTask(ctx, sourceIDs, prefix)

	if err := ctx.Prep.Resume(ctx); err != nil {
		ctx.Observer.Warnf("disk resume on source failed, continuing: %v", err)
	}

	if submitErr != nil {
		return stageErrf(StageCloneVolumes, "submitting clone task: %w", submitErr)
	}
	ctx.State.CloneTaskID = taskID
	ctx.Observer.Printf("Clone task %s submitted for %d volumes (prefix %s)", taskID, len(sourceIDs), prefix)

	var task *pcloud.CloneTask
	err := poll.Until(ctx, ctx.Timeouts.ClonePollInterval, ctx.Timeouts.MaxCloneWait, func(c context.Context) (bool, error) {
		t, err := ctx.Cloud.GetCloneTask(c, taskID)
		if err != nil {
			return false, err
		}
		if !t.Status.Terminal() {
			ctx.Observer.Printf("Clone task %s status: %s", taskID, t.Status)
			return false, nil
		}
		task = t
		return true, nil
	})
	if err != nil {
		return stageErrf(StageCloneVolumes, "tracking clone task %s: %w", taskID, err)
	}

	if strings.EqualFold(string(task.Status), string(pcloud.CloneTaskFailed)) {
		return stageErrf(StageCloneVolumes, "clone task %s failed", taskID)
	}

	clones := make(map[string]string, len(task.ClonedVolumes))
	for _, cv := range task.ClonedVolumes {
		clones[cv.SourceID] = cv.CloneID
	}

	bootClone, ok := clones[ctx.State.SourceBootVolumeID]
	if !ok {
		return stageErr(StageCloneVolumes,
			fmt.Errorf("boot volume %s: %w", ctx.State.SourceBootVolumeID, ErrCloneMappingIncomplete))
	}

	dataClones := make([]string, 0, len(ctx.State.SourceDataVolumeIDs))
	for _, id := range ctx.State.SourceDataVolumeIDs {
		cloneID, ok := clones[id]
		if !ok {
			return stageErr(StageCloneVolumes, fmt.Errorf("data volume %s: %w", id, ErrCloneMappingIncomplete))
		}
		dataClones = append(dataClones, cloneID)
	}

	ctx.State.BootVolumeID = bootClone
	ctx.State.DataVolumeIDs = dataClones
	ctx.Observer.Printf("Clone task %s completed: boot clone %s, %d data clones", taskID, bootClone, len(dataClones))
	return nil
}
