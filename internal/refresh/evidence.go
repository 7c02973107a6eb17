package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Bundle is the forensic evidence written when a run fails: the final run
// state, the failed stage, and the error text, timestamped.
type Bundle struct {
	Timestamp   time.Time `json:"timestamp"`
	Target      string    `json:"target"`
	FailedStage Stage     `json:"failedStage"`
	Error       string    `json:"error"`
	State       *State    `json:"state"`
}

// ObjectStore uploads evidence bundles. The s3 package's Client satisfies it.
type ObjectStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key string, data []byte) error
}

// WriteEvidence writes a failure-evidence bundle to dir and, when store is
// non-nil, uploads it to the given bucket. Evidence is best-effort: errors
// are reported to the observer as warnings and never override the run's
// outcome. Returns the local path written, if any.
func WriteEvidence(ctx *Context, store ObjectStore, bucket, dir string, runErr error) string {
	if runErr == nil {
		return ""
	}

	bundle := Bundle{
		Timestamp:   time.Now().UTC(),
		Target:      ctx.Config.Target,
		FailedStage: ctx.State.FailedStage,
		Error:       runErr.Error(),
		State:       ctx.State,
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		ctx.Observer.Warnf("failed to encode evidence bundle: %v", err)
		return ""
	}

	if dir == "" {
		dir = os.TempDir()
	}
	name := fmt.Sprintf("cloneboot-%s-%s.json", ctx.Config.Target, bundle.Timestamp.Format("20060102T150405Z"))
	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, data, 0o600); err != nil {
		ctx.Observer.Warnf("failed to write evidence bundle: %v", err)
		path = ""
	} else {
		ctx.Observer.Printf("Evidence bundle written to %s", path)
	}

	if store != nil && bucket != "" {
		if err := store.EnsureBucket(ctx, bucket); err != nil {
			ctx.Observer.Warnf("failed to ensure evidence bucket %s: %v", bucket, err)
			return path
		}
		key := fmt.Sprintf("%s/%s", ctx.Config.Target, name)
		if err := store.PutObject(ctx, bucket, key, data); err != nil {
			ctx.Observer.Warnf("failed to upload evidence bundle: %v", err)
			return path
		}
		ctx.Observer.Printf("Evidence bundle uploaded to %s/%s", bucket, key)
	}

	return path
}
