package telemetry

import (
	"math"

	"github.com/pthm-cable/rubble/systems"
)

// Collector accumulates collision and lifecycle events within time windows
// and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	ballsSpent      int
	ballHits        int
	blockHits       int
	blockImpacts    int
	blocksDestroyed int
	damageDealt     float64
	impactSpeeds    []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// Round, don't truncate: dt is a float32 ratio (1/60 ≈ 0.016666668), so
	// plain division can land just under a whole tick count.
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordImpact records one resolved contact from the collision engine.
func (c *Collector) RecordImpact(imp systems.Impact) {
	switch imp.Kind {
	case systems.ImpactBallBall:
		c.ballHits++
	case systems.ImpactBallBlock:
		c.blockHits++
	case systems.ImpactBlockBlock:
		c.blockImpacts++
	}
	if imp.Destroyed {
		c.blocksDestroyed++
	}
	c.damageDealt += float64(imp.Damage)
	c.impactSpeeds = append(c.impactSpeeds, float64(imp.Speed))
}

// RecordBallSpent records a projectile coming to rest or leaving the field.
func (c *Collector) RecordBallSpent() {
	c.ballsSpent++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// Score, live block count and remaining balls are sampled at window end by
// the caller.
func (c *Collector) Flush(currentTick int32, score, blocksAlive, ballsLeft int) WindowStats {
	mean, std, p90, max := ComputeImpactStats(c.impactSpeeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Score:       score,
		BlocksAlive: blocksAlive,
		BallsLeft:   ballsLeft,

		BallsSpent:      c.ballsSpent,
		BallHits:        c.ballHits,
		BlockHits:       c.blockHits,
		BlockImpacts:    c.blockImpacts,
		BlocksDestroyed: c.blocksDestroyed,

		DamageDealt:     c.damageDealt,
		ImpactSpeedMean: mean,
		ImpactSpeedStd:  std,
		ImpactSpeedP90:  p90,
		ImpactSpeedMax:  max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.ballsSpent = 0
	c.ballHits = 0
	c.blockHits = 0
	c.blockImpacts = 0
	c.blocksDestroyed = 0
	c.damageDealt = 0
	c.impactSpeeds = c.impactSpeeds[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
