// Package s3 provides a client for S3-compatible object storage.
//
// It handles bucket creation and object upload for failure-evidence bundles:
// when a refresh run fails, the run's state snapshot and diagnostics are
// archived so operators can reconstruct what happened after the fact.
package s3
