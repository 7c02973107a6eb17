// Package poll provides a fixed-interval polling primitive for waiting on
// control-plane state transitions.
//
// The [Until] function re-evaluates a condition at a fixed interval until it
// reports done, the bound elapses, or the context is cancelled. Every waiting
// stage in the refresh workflow is built on it.
package poll
