package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes mouse aiming and keyboard controls.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.resetRound()
	}
	if rl.IsKeyPressed(rl.KeyD) {
		g.showPanel = !g.showPanel
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if g.state != StatePlaying || g.paused {
		return
	}

	// The panel swallows mouse input while it is open.
	if g.showPanel && g.panelContains(rl.GetMousePosition()) {
		return
	}

	g.handleAiming()
}

// handleAiming drags the held projectile while the mouse button is down and
// fires it on release.
func (g *Game) handleAiming() {
	if !g.launcher.Holding() {
		return
	}
	v, ok := g.activeView()
	if !ok {
		return
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		g.launcher.Pull(v, mouse.X, mouse.Y, g.env)
	} else if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.launcher.Release(v)
	}
}
