// Package ssh provides an SSH client for executing commands on remote servers.
//
// It is used to quiesce and resume disk I/O on the source system around the
// clone submission, dialing through a jump host when the source is not
// directly reachable. The client supports key-based authentication with
// configurable retry logic.
package ssh
