// Package assert implements invariant checks. Violations panic in builds
// tagged debug and are logged everywhere else.
package assert

import (
	"fmt"

	"github.com/PazerOP/imgui-desktop/logsink"
)

// That reports a violated invariant when cond is false.
func That(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if Enabled {
		panic("assertion failed: " + msg)
	}
	logsink.Logger().Error("assertion failed: " + msg)
}

// Ensure is That returning cond, for use in conditions.
func Ensure(cond bool, format string, args ...any) bool {
	That(cond, format, args...)
	return cond
}
