package refresh

import (
	"errors"
	"fmt"
	"time"
)

// Run executes the refresh stages in order. The resume guard may skip the
// identify, clone, availability, and attach stages when the target already
// carries a bootable volume from an interrupted prior run.
//
// The recovery classifier always runs after the pipeline, success or not;
// it replaces the exit trap a CI-driven script would rely on.
func Run(ctx *Context) (err error) {
	start := time.Now()

	defer func() {
		if err == nil {
			return
		}
		var se *StageError
		if errors.As(err, &se) {
			ctx.State.FailedStage = se.Stage
		}
		MarkForRecovery(ctx)
	}()

	if err = runStage(ctx, "Resolve target partition", ResolveTarget); err != nil {
		return err
	}

	if ctx.State.Resumed {
		ctx.Observer.Printf("Target already has a bootable volume attached; resuming interrupted run and skipping identify, clone, availability, and attach stages")
	} else {
		if err = runStage(ctx, "Identify source volumes", IdentifyVolumes); err != nil {
			return err
		}
		if err = runStage(ctx, "Clone volumes", CloneVolumes); err != nil {
			return err
		}
		if err = runStage(ctx, "Verify clone availability", VerifyAvailability); err != nil {
			return err
		}
		if err = runStage(ctx, "Attach volumes to target", AttachVolumes); err != nil {
			return err
		}
	}

	if err = runStage(ctx, "Boot target partition", BootTarget); err != nil {
		return err
	}

	ctx.State.JobSuccess = true
	ctx.Observer.Printf("Refresh completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// runStage wraps a stage function with its section banner and result line.
func runStage(ctx *Context, title string, fn func(*Context) error) error {
	ctx.Observer.Banner(title)
	stageStart := time.Now()

	if err := fn(ctx); err != nil {
		ctx.Observer.StageFailed(title, err)
		return err
	}

	ctx.Observer.StageCompleted(fmt.Sprintf("%s (%v)", title, time.Since(stageStart).Round(time.Millisecond)))
	return nil
}
