package turtleizer

import (
	"fmt"
	"os"
	"time"
)

// paintStats holds one paint's metrics. Printed only in debug mode.
type paintStats struct {
	mode     paintMode
	segments int
	elapsed  time.Duration
}

// LastPaint reports how the most recent paint was produced: "full",
// "incremental" or "direct", and how many segments it stroked.
func (r *Renderer) LastPaint() (mode string, segments int) {
	return r.lastStats.mode.String(), r.lastStats.segments
}

// debugLog prints paint stats to stderr.
func (s *Scene) debugLog(stats paintStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[turtleizer] paint: %s | segments: %d | time: %v\n",
		stats.mode, stats.segments, stats.elapsed)
	if stats.mode == paintFull && stats.segments > debugLargeReplay {
		_, _ = fmt.Fprintf(os.Stderr, "[turtleizer] warning: full replay of %d segments\n", stats.segments)
	}
}

// debugLargeReplay is the full-replay size that triggers a warning.
const debugLargeReplay = 100000
