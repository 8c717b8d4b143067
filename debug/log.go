// Package debug is the diagnostic sink for the converter. Every message the
// engine drops or omits is reported here; the sink is advisory only and never
// affects the conversion.
package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	out     io.Writer = os.Stderr
	enabled bool
	drops   int
)

// Enable turns the sink on. Records go to stderr unless SetOutput was called.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns the sink off and resets the drop counter.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
	drops = 0
}

// SetOutput redirects diagnostic records to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Log writes one diagnostic record under a category tag.
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "%-10s %s\n", category, msg)
}

// Dropped records one rejected event. The stage tag says where in the pass
// the event was rejected.
func Dropped(stage string, msg fmt.Stringer) {
	mu.Lock()
	if enabled {
		drops++
		fmt.Fprintf(out, "%-10s omitted %s\n", stage, msg.String())
	}
	mu.Unlock()
}

// DropCount returns the number of events reported since Enable.
func DropCount() int {
	mu.Lock()
	defer mu.Unlock()
	return drops
}
