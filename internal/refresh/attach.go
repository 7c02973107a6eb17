package refresh

import (
	"context"
	"time"

	"github.com/cloneboot/cloneboot/internal/util/poll"
)

// AttachVolumes requests attachment of the cloned boot and data volumes to
// the target partition in one call, then confirms visibility within
// Timeouts.MaxAttachWait. Confirmation requires every expected id to be
// present in the same listing — partial visibility keeps polling.
//
// From this stage on a failure leaves cloned volumes attached to the target,
// which is why the recovery classifier starts marking here.
func AttachVolumes(ctx *Context) error {
	st := ctx.State

	if err := ctx.Cloud.AttachVolumes(ctx, st.TargetID, st.BootVolumeID, st.DataVolumeIDs); err != nil {
		return stageErrf(StageAttachVolume, "requesting attachment: %w", err)
	}

	// The control plane does not reflect a fresh attachment instantaneously,
	// so wait a flat settle interval before the first listing.
	ctx.Observer.Printf("Attachment requested; settling for %v", ctx.Timeouts.AttachSettle)
	select {
	case <-ctx.Done():
		return stageErr(StageAttachVolume, ctx.Err())
	case <-time.After(ctx.Timeouts.AttachSettle):
	}

	expected := st.CloneVolumeIDs()
	err := poll.Until(ctx, ctx.Timeouts.AttachPollInterval, ctx.Timeouts.MaxAttachWait, func(c context.Context) (bool, error) {
		attached, err := ctx.Cloud.ListAttachedVolumes(c, st.TargetID)
		if err != nil {
			return false, err
		}

		present := make(map[string]bool, len(attached))
		for _, v := range attached {
			present[v.ID] = true
		}
		for _, id := range expected {
			if !present[id] {
				ctx.Observer.Printf("Volume %s not yet visible on target", id)
				return false, nil
			}
		}
		return true, nil
	})
	if err != nil {
		return stageErrf(StageAttachVolume, "confirming attachment: %w", err)
	}

	ctx.Observer.Printf("All %d volumes visible on target partition", len(expected))
	return nil
}
