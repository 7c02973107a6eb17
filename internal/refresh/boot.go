package refresh

import (
	"context"
	"fmt"

	"github.com/cloneboot/cloneboot/internal/platform/pcloud"
	"github.com/cloneboot/cloneboot/internal/util/poll"
	"github.com/cloneboot/cloneboot/internal/util/retry"
)

// BootTarget drives the target partition to ACTIVE: configure the boot
// device (retried), start (retried with error classification), poll status
// to a terminal state, and revalidate with an independent final read.
//
// A target that is already ACTIVE skips the configure and start sub-steps
// entirely.
func BootTarget(ctx *Context) error {
	p, err := ctx.Cloud.GetPartition(ctx, ctx.State.TargetID)
	if err != nil {
		return stageErrf(StageStartup, "reading target partition status: %w", err)
	}

	if p.Status.Normalize() == pcloud.StatusActive {
		ctx.Observer.Printf("Target partition already ACTIVE; skipping boot configuration and start")
	} else {
		if err := configureBoot(ctx); err != nil {
			return err
		}
		if err := startPartition(ctx); err != nil {
			return err
		}
	}

	if err := waitForActive(ctx); err != nil {
		return err
	}

	// Revalidate with an independent read: a partition can briefly report
	// ACTIVE and regress while late attachment work settles.
	final, err := ctx.Cloud.GetPartition(ctx, ctx.State.TargetID)
	if err != nil {
		return stageErrf(StageFinalStatusCheck, "final status read-back: %w", err)
	}
	if final.Status.Normalize() != pcloud.StatusActive {
		return stageErrf(StageFinalStatusCheck, "target partition regressed to %s after reporting ACTIVE", final.Status)
	}

	ctx.Observer.Printf("Target partition %s is ACTIVE", ctx.State.TargetID)
	return nil
}

// configureBoot sets the boot device mode, retried on a fixed backoff.
func configureBoot(ctx *Context) error {
	err := retry.Do(ctx, func() error {
		return ctx.Cloud.ConfigureBoot(ctx, ctx.State.TargetID, ctx.Config.BootMode)
	},
		retry.WithMaxAttempts(ctx.Timeouts.BootConfigAttempts),
		retry.WithDelay(ctx.Timeouts.RetryBackoff),
		retry.WithOnRetry(func(attempt int, err error) {
			ctx.Observer.Printf("Boot configuration attempt %d failed, retrying in %v: %v",
				attempt, ctx.Timeouts.RetryBackoff, err)
		}))
	if err != nil {
		return stageErrf(StageBootConfig, "configuring boot mode %q: %w", ctx.Config.BootMode, err)
	}

	ctx.Observer.Printf("Boot mode set to %q", ctx.Config.BootMode)
	return nil
}

// startPartition issues the start command. Only a "still attaching"
// rejection is transient; any other error aborts the remaining attempts.
func startPartition(ctx *Context) error {
	err := retry.Do(ctx, func() error {
		return ctx.Cloud.StartPartition(ctx, ctx.State.TargetID)
	},
		retry.WithMaxAttempts(ctx.Timeouts.StartAttempts),
		retry.WithDelay(ctx.Timeouts.RetryBackoff),
		retry.WithRetryable(pcloud.IsStillAttaching),
		retry.WithOnRetry(func(attempt int, err error) {
			ctx.Observer.Printf("Start attempt %d rejected while volumes attach, retrying in %v: %v",
				attempt, ctx.Timeouts.RetryBackoff, err)
		}))
	if err != nil {
		return stageErrf(StageStartup, "starting target partition: %w", err)
	}

	ctx.Observer.Printf("Start command accepted")
	return nil
}

// waitForActive polls partition status until ACTIVE, ERROR, or the bound.
// ERROR is always terminal and never retried.
func waitForActive(ctx *Context) error {
	err := poll.Until(ctx, ctx.Timeouts.StatusPollInterval, ctx.Timeouts.MaxStartWait, func(c context.Context) (bool, error) {
		p, err := ctx.Cloud.GetPartition(c, ctx.State.TargetID)
		if err != nil {
			return false, err
		}
		switch p.Status.Normalize() {
		case pcloud.StatusActive:
			return true, nil
		case pcloud.StatusError:
			return false, fmt.Errorf("target partition entered ERROR state")
		default:
			ctx.Observer.Printf("Target partition status: %s", p.Status)
			return false, nil
		}
	})
	if err != nil {
		return stageErrf(StageStartup, "waiting for target partition to reach ACTIVE: %w", err)
	}
	return nil
}
