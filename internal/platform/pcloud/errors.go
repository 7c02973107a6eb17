package pcloud

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPartitionNotFound indicates a partition lookup by name matched nothing.
var ErrPartitionNotFound = errors.New("partition not found")

// CLIError carries the stderr text of a failed CLI invocation. The CLI
// exposes no structured error codes, so classification works on this text.
type CLIError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CLIError) Error() string {
	msg := fmt.Sprintf("cli %s: %v", strings.Join(e.Args, " "), e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// stillAttachingSignatures are the error-text fragments the control plane
// emits when a start is rejected because volume attachment has not finished
// server-side. This substring match is the documented fragile fallback: the
// CLI provides no structured code for this condition, so the dependency on
// its wording is isolated here.
var stillAttachingSignatures = []string{
	"still attaching",
	"being attached",
	"attachment in progress",
}

// IsStillAttaching reports whether err indicates the partition is still
// attaching volumes — a transient condition worth retrying.
func IsStillAttaching(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	for _, sig := range stillAttachingSignatures {
		if strings.Contains(text, sig) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err indicates the requested resource does not
// exist.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPartitionNotFound) {
		return true
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "not found") || strings.Contains(text, "could not be found")
}
