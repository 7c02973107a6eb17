package refresh

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cloneboot/cloneboot/internal/config"
	"github.com/cloneboot/cloneboot/internal/platform/pcloud"
)

// testObserver records everything the stages log so assertions can inspect
// warnings and stage outcomes.
type testObserver struct {
	mu       sync.Mutex
	lines    []string
	warnings []string
	failed   []string
}

func (o *testObserver) Printf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, fmt.Sprintf(format, v...))
}

func (o *testObserver) Warnf(format string, v ...interface{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings = append(o.warnings, fmt.Sprintf(format, v...))
}

func (o *testObserver) Banner(title string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, title)
}

func (o *testObserver) StageCompleted(title string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, title)
}

func (o *testObserver) StageFailed(title string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, fmt.Sprintf("%s: %v", title, err))
}

// fastTimeouts keeps every wait in the millisecond range so tests that
// exercise polling and retry paths finish quickly.
func fastTimeouts() *config.Timeouts {
	return &config.Timeouts{
		ClonePollInterval:      time.Millisecond,
		MaxCloneWait:           200 * time.Millisecond,
		VolumePollInterval:     time.Millisecond,
		VolumeAvailableTimeout: 200 * time.Millisecond,
		AttachSettle:           time.Millisecond,
		AttachPollInterval:     time.Millisecond,
		MaxAttachWait:          200 * time.Millisecond,
		StatusPollInterval:     time.Millisecond,
		MaxStartWait:           200 * time.Millisecond,
		BootConfigAttempts:     2,
		StartAttempts:          3,
		RetryBackoff:           time.Millisecond,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Source:      "prod-lpar",
		Target:      "dr-lpar",
		BootMode:    "normal",
		ClonePrefix: "dr-refresh",
	}
}

func newTestContext(t *testing.T, cloud *pcloud.MockClient) *Context {
	t.Helper()
	return &Context{
		Context:  context.Background(),
		Config:   testConfig(),
		Timeouts: fastTimeouts(),
		Cloud:    cloud,
		Prep:     NoopPrep{},
		State:    NewState(),
		Observer: &testObserver{},
	}
}

// stageOf extracts the stage tag from an error chain, or "" if absent.
func stageOf(t *testing.T, err error) Stage {
	t.Helper()
	var se *StageError
	if !errors.As(err, &se) {
		return ""
	}
	return se.Stage
}
