package refresh

import (
	"context"

	"github.com/cloneboot/cloneboot/internal/util/poll"
)

// VerifyAvailability waits for each cloned volume to report the available
// state — the boot clone first, then the data clones in order, one at a
// time. The bound defaults to Timeouts.VolumeAvailableTimeout; a zero value
// removes the bound.
func VerifyAvailability(ctx *Context) error {
	for _, id := range ctx.State.CloneVolumeIDs() {
		ctx.Observer.Printf("Waiting for volume %s to become available...", id)

		err := poll.Until(ctx, ctx.Timeouts.VolumePollInterval, ctx.Timeouts.VolumeAvailableTimeout, func(c context.Context) (bool, error) {
			v, err := ctx.Cloud.GetVolume(c, id)
			if err != nil {
				return false, err
			}
			if !v.Available() {
				ctx.Observer.Printf("Volume %s state: %s", id, v.State)
				return false, nil
			}
			return true, nil
		})
		if err != nil {
			return stageErrf(StageVolumeAvailable, "waiting for volume %s: %w", id, err)
		}
	}
	return nil
}
