package refresh

import (
	"context"
	"fmt"
)

// Prep brackets the clone submission with disk-suspend and disk-resume
// commands on the source system. The workflow treats both as opaque,
// best-effort steps: a prep failure is logged, never fatal.
type Prep interface {
	Suspend(ctx context.Context) error
	Resume(ctx context.Context) error
}

// NoopPrep is used when no prep host is configured.
type NoopPrep struct{}

func (NoopPrep) Suspend(context.Context) error { return nil }
func (NoopPrep) Resume(context.Context) error  { return nil }

// Executor runs a shell command on the source system. The ssh package's
// Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// SSHPrep runs configured suspend and resume commands over SSH.
type SSHPrep struct {
	Executor       Executor
	SuspendCommand string
	ResumeCommand  string
}

// Suspend implements Prep.
func (p *SSHPrep) Suspend(ctx context.Context) error {
	return p.run(ctx, p.SuspendCommand, "suspend")
}

// Resume implements Prep.
func (p *SSHPrep) Resume(ctx context.Context) error {
	return p.run(ctx, p.ResumeCommand, "resume")
}

func (p *SSHPrep) run(ctx context.Context, command, action string) error {
	if command == "" {
		return nil
	}
	if _, err := p.Executor.Execute(ctx, command); err != nil {
		return fmt.Errorf("disk %s command failed: %w", action, err)
	}
	return nil
}
