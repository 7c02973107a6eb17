// Package config loads and validates the refresh run configuration.
//
// The run is described by a YAML file (source and target partitions, boot
// mode, clone prefix, prep and evidence settings); credentials come from the
// environment. Timeouts and poll intervals are tunable through CLONEBOOT_*
// environment variables with sensible defaults.
package config
