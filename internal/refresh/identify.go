package refresh

import "errors"

// ErrNoBootVolume indicates the source partition has no bootable volume
// attached. A clone workflow without a boot volume cannot produce a bootable
// target, so this is fatal and never retried.
var ErrNoBootVolume = errors.New("no bootable volume attached to source partition")

// IdentifyVolumes classifies the source partition's attached volumes: the
// first volume flagged bootable becomes the boot volume, every other volume
// joins the ordered data set. Read-only — nothing on the source is modified.
func IdentifyVolumes(ctx *Context) error {
	p, err := ctx.Cloud.FindPartition(ctx, ctx.Config.Source)
	if err != nil {
		return stageErrf(StageIdentifyVolumes, "resolving source partition %q: %w", ctx.Config.Source, err)
	}

	attached, err := ctx.Cloud.ListAttachedVolumes(ctx, p.ID)
	if err != nil {
		return stageErrf(StageIdentifyVolumes, "listing source partition volumes: %w", err)
	}

	var boot string
	var data []string
	for _, v := range attached {
		if v.Bootable && boot == "" {
			boot = v.ID
			continue
		}
		data = append(data, v.ID)
	}

	if boot == "" {
		return stageErr(StageIdentifyVolumes, ErrNoBootVolume)
	}

	ctx.State.SourceBootVolumeID = boot
	ctx.State.SourceDataVolumeIDs = data
	ctx.Observer.Printf("Source partition %s: boot volume %s, %d data volumes", p.Name, boot, len(data))
	return nil
}
