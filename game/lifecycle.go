package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rubble/systems"
)

// startRound builds the block layout and loads the first projectile.
func (g *Game) startRound() error {
	if err := g.buildLevel(); err != nil {
		return err
	}
	g.ballsLeft = g.cfg.Balls.PerRound
	g.points = 0
	g.state = StatePlaying
	return g.loadNextBall()
}

// updateLifecycle ends the round or rotates in the next projectile once the
// active one has settled.
func (g *Game) updateLifecycle() {
	if g.state != StatePlaying {
		return
	}

	if g.blocksAlive == 0 {
		g.state = StateWon
		slog.Info("round won", "tick", g.tick, "score", g.points, "balls_left", g.ballsLeft)
		return
	}

	v, ok := g.activeView()
	if !ok {
		return
	}
	if v.Ball.Loaded || !systems.BallAtRest(g.env, v) {
		return
	}

	// The active ball has settled; it stays in the world as an inert body.
	g.collector.RecordBallSpent()
	g.hasActive = false

	if g.ballsLeft > 0 {
		if err := g.loadNextBall(); err != nil {
			slog.Error("loading next ball", "error", err)
		}
		return
	}

	g.state = StateLost
	slog.Info("round lost", "tick", g.tick, "score", g.points, "blocks_alive", g.blocksAlive)
}

// activeView returns the component view of the active projectile.
func (g *Game) activeView() (systems.BallView, bool) {
	if !g.hasActive || !g.world.Alive(g.activeBall) {
		return systems.BallView{}, false
	}
	return systems.BallView{
		Pos:  g.posMap.Get(g.activeBall),
		Vel:  g.velMap.Get(g.activeBall),
		Ball: g.ballMap.Get(g.activeBall),
	}, true
}

// autoLaunch fires the held ball with a randomized pull toward the block
// field. Headless runs use this in place of mouse input.
func (g *Game) autoLaunch() {
	if !g.launcher.Holding() {
		return
	}
	v, ok := g.activeView()
	if !ok {
		return
	}

	// Pull down-left so the launch goes up-right at the blocks.
	stretch := g.launcher.MaxStretch * (0.6 + g.rng.Float32()*0.4)
	angleDeg := 20 + g.rng.Float32()*50
	rad := float64(angleDeg) * math.Pi / 180
	px := g.launcher.AnchorX - stretch*float32(math.Cos(rad))
	py := g.launcher.AnchorY + stretch*float32(math.Sin(rad))

	g.launcher.Pull(v, px, py, g.env)
	g.launcher.Release(v)
}

// resetRound clears the world and starts over. Score and ball count reset;
// the telemetry tick clock keeps running.
func (g *Game) resetRound() {
	var toRemove []ecs.Entity

	ballQuery := g.ballFilter.Query()
	for ballQuery.Next() {
		toRemove = append(toRemove, ballQuery.Entity())
	}
	blockQuery := g.blockFilter.Query()
	for blockQuery.Next() {
		toRemove = append(toRemove, blockQuery.Entity())
	}
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}

	g.hasActive = false
	g.env = systems.NewEnv(g.cfg)

	if err := g.startRound(); err != nil {
		slog.Error("resetting round", "error", err)
	}
	slog.Info("round reset", "tick", g.tick)
}
