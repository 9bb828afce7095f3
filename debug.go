package sprig

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics. Only populated when
// debug mode is on.
type debugStats struct {
	tickTime    time.Duration
	flushTime   time.Duration
	spriteCount int
	drawCount   int
	penOps      int
	loopCalls   int
}

// SetDebugMode enables or disables debug mode. When enabled, per-frame
// timing stats are printed to stderr and oversized scenes are reported.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// debugLog prints timing and draw stats to stderr.
func (e *Engine) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[sprig] tick: %v | flush: %v | total: %v\n",
		stats.tickTime, stats.flushTime, stats.tickTime+stats.flushTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[sprig] scene: %s | sprites: %d | drawn: %d | pen ops: %d | loop calls: %d\n",
		e.current, stats.spriteCount, stats.drawCount, stats.penOps, stats.loopCalls)
}

// debugMaxSceneSprites is the size above which a scene is reported, since
// every collision query against it rasterizes pairwise.
const debugMaxSceneSprites = 1000

func (e *Engine) debugCheckSceneSize(sc *Scene) {
	if len(sc.sprites) > debugMaxSceneSprites {
		_, _ = fmt.Fprintf(os.Stderr, "[sprig] warning: scene %q has %d sprites (threshold %d)\n",
			sc.name, len(sc.sprites), debugMaxSceneSprites)
	}
}
