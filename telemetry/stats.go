// Package telemetry accumulates per-window simulation statistics and writes
// them as CSV experiment output.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Round state at window end
	Score       int `csv:"score"`
	BlocksAlive int `csv:"blocks_alive"`
	BallsLeft   int `csv:"balls_left"`

	// Events during window
	BallsSpent      int `csv:"balls_spent"`
	BallHits        int `csv:"ball_hits"`
	BlockHits       int `csv:"block_hits"`
	BlockImpacts    int `csv:"block_impacts"`
	BlocksDestroyed int `csv:"blocks_destroyed"`

	// Damage and impact-speed distribution during window
	DamageDealt     float64 `csv:"damage_dealt"`
	ImpactSpeedMean float64 `csv:"impact_speed_mean"`
	ImpactSpeedStd  float64 `csv:"impact_speed_std"`
	ImpactSpeedP90  float64 `csv:"impact_speed_p90"`
	ImpactSpeedMax  float64 `csv:"impact_speed_max"`
}

// ComputeImpactStats summarizes the impact-speed samples of one window.
// Returns zeros for an empty window.
func ComputeImpactStats(speeds []float64) (mean, std, p90, max float64) {
	n := len(speeds)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(speeds, nil)
	if n > 1 {
		std = stat.StdDev(speeds, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, speeds)
	sort.Float64s(sorted)

	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	max = sorted[n-1]

	return mean, std, p90, max
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"score", s.Score,
		"blocks_alive", s.BlocksAlive,
		"balls_left", s.BallsLeft,
		"balls_spent", s.BallsSpent,
		"ball_hits", s.BallHits,
		"block_hits", s.BlockHits,
		"block_impacts", s.BlockImpacts,
		"blocks_destroyed", s.BlocksDestroyed,
		"damage_dealt", s.DamageDealt,
		"impact_speed_mean", s.ImpactSpeedMean,
		"impact_speed_std", s.ImpactSpeedStd,
		"impact_speed_p90", s.ImpactSpeedP90,
		"impact_speed_max", s.ImpactSpeedMax,
	)
}
