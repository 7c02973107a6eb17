package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable wait, interval, and retry values.
// These values can be customized via environment variables.
type Timeouts struct {
	ClonePollInterval      time.Duration // Interval between clone-task status polls
	MaxCloneWait           time.Duration // Bound on clone-task tracking (0 = unbounded)
	VolumePollInterval     time.Duration // Interval between volume-state polls
	VolumeAvailableTimeout time.Duration // Bound on the per-volume availability wait (0 = unbounded)
	AttachSettle           time.Duration // Flat wait after the attach request before the first listing
	AttachPollInterval     time.Duration // Interval between attachment-confirmation listings
	MaxAttachWait          time.Duration // Bound on attachment confirmation
	StatusPollInterval     time.Duration // Interval between partition-status polls
	MaxStartWait           time.Duration // Bound on waiting for the target to reach ACTIVE
	BootConfigAttempts     int           // Attempt budget for boot-mode configuration
	StartAttempts          int           // Attempt budget for the start command
	RetryBackoff           time.Duration // Fixed delay between boot-config/start attempts
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - CLONEBOOT_CLONE_POLL_INTERVAL (default: 30s)
//   - CLONEBOOT_MAX_CLONE_WAIT (default: 0, unbounded)
//   - CLONEBOOT_VOLUME_POLL_INTERVAL (default: 30s)
//   - CLONEBOOT_VOLUME_AVAILABLE_TIMEOUT (default: 30m; 0 preserves the unbounded wait)
//   - CLONEBOOT_ATTACH_SETTLE (default: 30s)
//   - CLONEBOOT_ATTACH_POLL_INTERVAL (default: 30s)
//   - CLONEBOOT_MAX_ATTACH_WAIT (default: 15m)
//   - CLONEBOOT_STATUS_POLL_INTERVAL (default: 30s)
//   - CLONEBOOT_MAX_START_WAIT (default: 30m)
//   - CLONEBOOT_BOOT_CONFIG_ATTEMPTS (default: 2)
//   - CLONEBOOT_START_ATTEMPTS (default: 3)
//   - CLONEBOOT_RETRY_BACKOFF (default: 60s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ClonePollInterval:      parseDuration("CLONEBOOT_CLONE_POLL_INTERVAL", 30*time.Second),
		MaxCloneWait:           parseDuration("CLONEBOOT_MAX_CLONE_WAIT", 0),
		VolumePollInterval:     parseDuration("CLONEBOOT_VOLUME_POLL_INTERVAL", 30*time.Second),
		VolumeAvailableTimeout: parseDuration("CLONEBOOT_VOLUME_AVAILABLE_TIMEOUT", 30*time.Minute),
		AttachSettle:           parseDuration("CLONEBOOT_ATTACH_SETTLE", 30*time.Second),
		AttachPollInterval:     parseDuration("CLONEBOOT_ATTACH_POLL_INTERVAL", 30*time.Second),
		MaxAttachWait:          parseDuration("CLONEBOOT_MAX_ATTACH_WAIT", 15*time.Minute),
		StatusPollInterval:     parseDuration("CLONEBOOT_STATUS_POLL_INTERVAL", 30*time.Second),
		MaxStartWait:           parseDuration("CLONEBOOT_MAX_START_WAIT", 30*time.Minute),
		BootConfigAttempts:     parseInt("CLONEBOOT_BOOT_CONFIG_ATTEMPTS", 2),
		StartAttempts:          parseInt("CLONEBOOT_START_ATTEMPTS", 3),
		RetryBackoff:           parseDuration("CLONEBOOT_RETRY_BACKOFF", 60*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
