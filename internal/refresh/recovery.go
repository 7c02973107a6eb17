package refresh

import "github.com/cloneboot/cloneboot/internal/util/naming"

// MarkForRecovery is the exit-time failure classifier. It runs after the
// pipeline whenever the run did not succeed, reads the failed stage tag,
// and — only for the stages at or after attachment — renames the cloned
// volumes with the recovery marker so an operator can locate them.
//
// Volumes are preserved, never deleted: a half-configured clone attached to
// the target may still hold value for manual recovery. Marking is
// idempotent; an already-marked name is left unchanged. Earlier-stage
// failures take no volume action because nothing is attached yet.
func MarkForRecovery(ctx *Context) {
	st := ctx.State
	if st.JobSuccess {
		return
	}

	if !st.FailedStage.RequiresRecovery() {
		if st.FailedStage != "" {
			ctx.Observer.Printf("Stage %s failed before any volume was attached; no recovery marking needed", st.FailedStage)
		}
		return
	}

	ctx.Observer.Banner("Marking volumes for manual recovery")

	for _, id := range st.CloneVolumeIDs() {
		v, err := ctx.Cloud.GetVolume(ctx, id)
		if err != nil {
			ctx.Observer.Warnf("cannot read volume %s for recovery marking: %v", id, err)
			continue
		}
		if naming.IsMarked(v.Name) {
			ctx.Observer.Printf("Volume %s already marked (%s)", id, v.Name)
			continue
		}

		marked := naming.Marked(v.Name)
		if err := ctx.Cloud.UpdateVolumeName(ctx, id, marked); err != nil {
			ctx.Observer.Warnf("failed to mark volume %s for recovery: %v", id, err)
			continue
		}
		ctx.Observer.Printf("Volume %s renamed to %s for manual recovery", id, marked)
	}
}
