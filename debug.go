package placard

import (
	"fmt"
	"os"
	"time"
)

// debugCheckNotNotifying panics when a registry mutation runs inside a
// change listener callback. Only called in debug mode; release mode leaves
// the behavior undefined per the concurrency contract.
func debugCheckNotNotifying(c *Controller, op string) {
	if c.notifying {
		panic(fmt.Sprintf("placard debug: %s called from inside a change listener", op))
	}
}

// debugStats holds per-frame resolve timing metrics.
// Only populated when ScrollView debug mode is on.
type debugStats struct {
	resolveTime  time.Duration
	scrollEvents int
	broadcasts   int
}

// debugLog prints per-frame stats to stderr.
func debugLog(stats debugStats) {
	_, _ = fmt.Fprintf(os.Stderr,
		"[placard] resolve: %v | scroll events: %d | broadcasts: %d\n",
		stats.resolveTime, stats.scrollEvents, stats.broadcasts)
}
