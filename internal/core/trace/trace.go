// Package trace is a gated expansion logger, ported from
// cuelang.org/go/internal/core/adt's Logf/nest pattern (log.go,
// debug.go) but without that package's per-vertex numbering, since this
// engine has no persistent evaluator graph to number — each top-level
// Expand call gets its own flat trace.
//
// Tracing is off by default and has no effect on expansion results; it
// exists purely to make a stuck or surprising expansion inspectable.
package trace

import (
	"fmt"
	"log"
	"os"
	"strings"
)

func init() {
	log.SetFlags(0)
}

// enabled is read once from TEXPAND_TRACE; any non-empty value turns
// tracing on. There is no finer-grained verbosity level — the
// specification owns no config surface for this engine (see
// SPEC_FULL.md §2.3), so this is the only knob.
var enabled = os.Getenv("TEXPAND_TRACE") != ""

// Enabled reports whether tracing is currently on.
func Enabled() bool { return enabled }

var nest int

// Logf writes one trace line at the current nesting depth, if tracing
// is enabled.
func Logf(format string, args ...interface{}) {
	if !enabled {
		return
	}
	w := &strings.Builder{}
	for i := 0; i < nest; i++ {
		w.WriteString("... ")
	}
	fmt.Fprintf(w, format, args...)
	_ = log.Output(2, w.String())
}

// Enter increments the nesting depth and logs label; the returned func
// must be deferred to restore the depth.
func Enter(label string) func() {
	Logf("-> %s", label)
	nest++
	return func() {
		nest--
		Logf("<- %s", label)
	}
}
