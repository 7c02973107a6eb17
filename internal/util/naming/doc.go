// Package naming provides consistent naming functions for cloned volumes.
//
// Clone names follow the pattern {prefix}-{date} so every volume produced by
// one refresh run groups together in the console. Volumes stranded by a
// failed run are renamed with a trailing recovery marker instead of being
// deleted, so an operator can locate and recover them.
package naming
