package naming

import (
	"fmt"
	"strings"
	"time"
)

// Naming functions for cloned volumes.
// Clone names follow the pattern {prefix}-{yyyymmdd} so a refresh run's
// volumes group together in the console, and failed runs are flagged with a
// trailing recovery marker an operator can search for.

// RecoveryMarker is the suffix appended to a cloned volume's name when a
// failed run leaves it attached to the target in an unknown state.
const RecoveryMarker = "-RECOVER"

// ClonePrefix builds the naming prefix for a clone task, e.g. "dr-refresh-20260829".
func ClonePrefix(base string, now time.Time) string {
	return fmt.Sprintf("%s-%s", base, now.Format("20060102"))
}

// Marked returns name with the recovery marker appended. Applying it to an
// already-marked name is a no-op, so re-running the classifier cannot stack
// suffixes.
func Marked(name string) string {
	if IsMarked(name) {
		return name
	}
	return name + RecoveryMarker
}

// IsMarked reports whether name already carries the recovery marker.
func IsMarked(name string) bool {
	return strings.HasSuffix(name, RecoveryMarker)
}
