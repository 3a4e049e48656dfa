//go:build henkan_debug

package logging

import "fmt"

// DebugAssert panics on a failed invariant check when built with
// -tags henkan_debug.
func DebugAssert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}
