// Package retry provides fixed-backoff retry logic for transient failures.
//
// The [Do] function retries an operation with a configurable attempt budget
// and a fixed delay between attempts. Errors wrapped with [Fatal], or
// rejected by a [WithRetryable] classifier, abort the remaining budget
// immediately. It backs the boot-configuration and start stages of the
// refresh workflow.
package retry
