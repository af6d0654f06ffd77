// Package game wires the physics systems, the launcher and the telemetry
// pipeline into a playable round driver on top of the ECS world.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rubble/components"
	"github.com/pthm-cable/rubble/config"
	"github.com/pthm-cable/rubble/systems"
	"github.com/pthm-cable/rubble/telemetry"
)

// State is the round lifecycle state.
type State uint8

const (
	StatePlaying State = iota
	StateWon            // every block destroyed
	StateLost           // out of balls with blocks still standing
)

// Options configures a new game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	StepsPerUpdate int
}

// Game holds the complete round state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	// Entity mappers
	ballMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Ball,
		components.Skin,
	]
	blockMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Block,
		components.Skin,
	]

	ballFilter *ecs.Filter3[
		components.Position,
		components.Velocity,
		components.Ball,
	]
	blockFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Block,
	]

	// Individual component mappers for lookups
	posMap  *ecs.Map1[components.Position]
	velMap  *ecs.Map1[components.Velocity]
	ballMap *ecs.Map1[components.Ball]
	skinMap *ecs.Map1[components.Skin]

	// Physics
	env      systems.Env
	rule     systems.BlockImpactRule
	score    systems.ScoreTable
	launcher *systems.Launcher

	// Telemetry
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	logStats  bool

	// The most recently loaded projectile. Spent balls stay in the world as
	// inert bodies; only the active one drives the round lifecycle.
	activeBall ecs.Entity
	hasActive  bool

	// State
	tick        int32
	points      int
	ballsLeft   int
	blocksAlive int
	state       State

	paused         bool
	showPanel      bool
	stepsPerUpdate int
}

// NewGame creates a game instance from the loaded configuration.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		ballMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Ball,
			components.Skin,
		](world),
		blockMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Block,
			components.Skin,
		](world),
		ballFilter: ecs.NewFilter3[
			components.Position,
			components.Velocity,
			components.Ball,
		](world),
		blockFilter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Block,
		](world),
		posMap:  ecs.NewMap1[components.Position](world),
		velMap:  ecs.NewMap1[components.Velocity](world),
		ballMap: ecs.NewMap1[components.Ball](world),
		skinMap: ecs.NewMap1[components.Skin](world),

		env:      systems.NewEnv(cfg),
		rule:     systems.BlockImpactRule{Threshold: float32(cfg.Blocks.ImpactThreshold), DamageScale: float32(cfg.Blocks.ImpactDamageScale)},
		score:    systems.ScoreTable{BallHit: cfg.Scoring.BallHit, BlockHit: cfg.Scoring.BlockHit, DestroyBonus: cfg.Scoring.DestroyBonus},
		launcher: systems.NewLauncher(cfg),

		collector: telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		logStats:  opts.LogStats,

		stepsPerUpdate: stepsPerUpdate,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("snapshotting config: %w", err)
	}

	if err := g.startRound(); err != nil {
		return nil, err
	}

	return g, nil
}

// Update runs input handling and simulation steps for one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without graphics. The launcher is
// driven by randomized pulls so headless rounds still play out.
func (g *Game) UpdateHeadless() {
	if g.state == StatePlaying {
		g.autoLaunch()
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// simulationStep runs a single fixed tick.
func (g *Game) simulationStep() {
	dt := g.cfg.Derived.DT32

	// 1. Gather body views and integrate motion
	balls, blocks := g.gatherViews()
	for _, b := range balls {
		systems.StepBall(g.env, dt, b)
	}
	for _, b := range blocks {
		systems.StepBlock(g.env, dt, b)
	}

	// 2. Resolve contacts and score them
	impacts, points := systems.ResolveCollisions(g.env, g.rule, g.score, balls, blocks)
	g.points += points
	for _, imp := range impacts {
		g.collector.RecordImpact(imp)
	}

	// 3. Remove destroyed blocks
	g.blocksAlive = g.cleanupDestroyed()

	// 4. Round lifecycle
	g.updateLifecycle()

	g.tick++

	// 5. Flush the telemetry window
	if g.collector.ShouldFlush(g.tick) {
		g.flushStats()
	}
}

// gatherViews collects per-tick component views for every body. The views
// hold component pointers and are discarded at the end of the step; no
// structural change happens while they are live.
func (g *Game) gatherViews() ([]systems.BallView, []systems.BlockView) {
	var balls []systems.BallView
	var blocks []systems.BlockView

	ballQuery := g.ballFilter.Query()
	for ballQuery.Next() {
		pos, vel, ball := ballQuery.Get()
		balls = append(balls, systems.BallView{Pos: pos, Vel: vel, Ball: ball})
	}

	blockQuery := g.blockFilter.Query()
	for blockQuery.Next() {
		pos, vel, rot, block := blockQuery.Get()
		blocks = append(blocks, systems.BlockView{Pos: pos, Vel: vel, Rot: rot, Block: block})
	}

	return balls, blocks
}

// cleanupDestroyed removes blocks whose health reached zero and returns the
// number of blocks still standing.
func (g *Game) cleanupDestroyed() int {
	var toRemove []ecs.Entity
	alive := 0

	query := g.blockFilter.Query()
	for query.Next() {
		_, _, _, block := query.Get()
		if block.Visible {
			alive++
		} else {
			toRemove = append(toRemove, query.Entity())
		}
	}

	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}

	return alive
}

// flushStats closes the current telemetry window.
func (g *Game) flushStats() {
	stats := g.collector.Flush(g.tick, g.points, g.blocksAlive, g.ballsLeft)
	if g.logStats {
		stats.LogStats()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("writing telemetry", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Score returns the accumulated points.
func (g *Game) Score() int {
	return g.points
}

// State returns the round lifecycle state.
func (g *Game) State() State {
	return g.state
}

// Unload releases output resources.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
