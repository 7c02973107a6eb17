// Package pcloud provides a client for the Power virtual server control plane.
//
// The refresh workflow consumes the control plane through the [Client]
// interface; [RealClient] implements it by shelling out to the vendor CLI
// with JSON output, and [MockClient] backs the orchestration tests.
//
// Authentication and workspace targeting happen once at client construction.
// Error classification for retry decisions lives in errors.go; where the CLI
// surfaces no structured error code, classification falls back to a
// documented substring match on the CLI's error text.
package pcloud
