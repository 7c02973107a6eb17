package refresh

// ResolveTarget resolves the target partition and inspects its attached
// volumes. If one of them is already bootable, a previous run got as far as
// attachment before being interrupted: the volume identities are
// reconstructed from the attached set and the run resumes at the boot
// sequencer instead of cloning again. This keeps retried invocations
// idempotent — no duplicate clone tasks, no orphaned volumes.
func ResolveTarget(ctx *Context) error {
	p, err := ctx.Cloud.FindPartition(ctx, ctx.Config.Target)
	if err != nil {
		return stageErrf(StageResolveTarget, "resolving target partition %q: %w", ctx.Config.Target, err)
	}
	ctx.State.TargetID = p.ID
	ctx.Observer.Printf("Target partition %s (%s), status %s", p.Name, p.ID, p.Status)

	attached, err := ctx.Cloud.ListAttachedVolumes(ctx, p.ID)
	if err != nil {
		return stageErrf(StageResolveTarget, "listing target partition volumes: %w", err)
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
		return nil
	}

	ctx.State.Resumed = true
	ctx.State.BootVolumeID = boot
	ctx.State.DataVolumeIDs = data
	ctx.Observer.Printf("Found bootable volume %s and %d data volumes attached to target", boot, len(data))
	return nil
}
