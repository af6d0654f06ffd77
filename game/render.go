package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/rubble/components"
	"github.com/pthm-cable/rubble/systems"
)

var (
	skyColor    = rl.Color{R: 28, G: 32, B: 44, A: 255}
	groundColor = rl.Color{R: 52, G: 64, B: 48, A: 255}
	bandColor   = rl.Color{R: 120, G: 70, B: 50, A: 255}
	postColor   = rl.Color{R: 90, G: 56, B: 40, A: 255}
)

// Draw renders the full frame.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(skyColor)

	g.drawGround()
	g.drawPreview()
	g.drawLauncher()
	g.drawBlocks()
	g.drawBalls()
	g.drawHUD()

	if g.showPanel {
		g.drawPanel()
	}

	rl.EndDrawing()
}

// drawGround fills everything below the ground line.
func (g *Game) drawGround() {
	groundY := g.cfg.Derived.GroundY32
	rl.DrawRectangle(0, int32(groundY), int32(g.cfg.Screen.Width), int32(g.cfg.Derived.ScreenH32-groundY), groundColor)
	rl.DrawLine(0, int32(groundY), int32(g.cfg.Screen.Width), int32(groundY), rl.Color{R: 90, G: 110, B: 80, A: 255})
}

// drawBlocks renders every block rotated about its centroid. Cracked blocks
// are darkened and get a diagonal fracture line.
func (g *Game) drawBlocks() {
	query := g.blockFilter.Query()
	for query.Next() {
		pos, vel, rot, block := query.Get()
		if !block.Visible {
			continue
		}

		skin := g.skinMap.Get(query.Entity())
		color := skinColor(skin)
		if block.Cracked {
			color.R = uint8(float32(color.R) * 0.6)
			color.G = uint8(float32(color.G) * 0.6)
			color.B = uint8(float32(color.B) * 0.6)
		}

		view := systems.BlockView{Pos: pos, Vel: vel, Rot: rot, Block: block}
		cx, cy := view.Centroid()
		rect := rl.Rectangle{X: cx, Y: cy, Width: block.Width, Height: block.Height}
		origin := rl.Vector2{X: block.Width / 2, Y: block.Height / 2}
		rl.DrawRectanglePro(rect, origin, rot.Angle, color)

		if block.Cracked {
			corners := systems.BlockCorners(view)
			rl.DrawLineV(
				rl.Vector2{X: corners[0][0], Y: corners[0][1]},
				rl.Vector2{X: corners[2][0], Y: corners[2][1]},
				rl.Color{R: 30, G: 24, B: 18, A: 200},
			)
		}

		// Health bar above damaged blocks
		frac := block.HealthFrac()
		if frac < 1 {
			barY := int32(pos.Y - 8)
			rl.DrawRectangle(int32(pos.X), barY, int32(block.Width), 4, rl.Color{R: 40, G: 40, B: 40, A: 200})
			rl.DrawRectangle(int32(pos.X), barY, int32(block.Width*frac), 4, rl.Color{R: 120, G: 200, B: 90, A: 220})
		}
	}
}

// drawBalls renders every projectile.
func (g *Game) drawBalls() {
	query := g.ballFilter.Query()
	for query.Next() {
		pos, _, ball := query.Get()
		if !ball.Visible {
			continue
		}

		color := skinColor(g.skinMap.Get(query.Entity()))
		center := rl.Vector2{X: pos.X, Y: pos.Y}
		rl.DrawCircleV(center, ball.Radius, color)
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), ball.Radius, rl.Color{R: 20, G: 16, B: 14, A: 255})
	}
}

// drawLauncher renders the anchor post and, while aiming, the elastic band.
func (g *Game) drawLauncher() {
	anchorX := g.launcher.AnchorX
	anchorY := g.launcher.AnchorY
	groundY := g.cfg.Derived.GroundY32

	rl.DrawLineEx(
		rl.Vector2{X: anchorX, Y: groundY},
		rl.Vector2{X: anchorX, Y: anchorY},
		6,
		postColor,
	)

	if !g.launcher.Holding() {
		return
	}
	v, ok := g.activeView()
	if !ok {
		return
	}

	// Band from the fork tips to the held ball
	ballPos := rl.Vector2{X: v.Pos.X, Y: v.Pos.Y}
	rl.DrawLineEx(rl.Vector2{X: anchorX - 12, Y: anchorY}, ballPos, 3, bandColor)
	rl.DrawLineEx(rl.Vector2{X: anchorX + 12, Y: anchorY}, ballPos, 3, bandColor)
}

// drawPreview renders the trajectory ghost dots.
func (g *Game) drawPreview() {
	for _, p := range g.launcher.Preview() {
		rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, 3, rl.Color{R: 255, G: 255, B: 255, A: 90})
	}
}

// drawHUD renders score, remaining balls and round state.
func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("Score: %d", g.points), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Balls: %d", g.ballsLeft), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Blocks: %d", g.blocksAlive), 10, 60, 20, rl.White)

	if g.paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}

	switch g.state {
	case StateWon:
		g.drawBanner("CLEARED!", rl.Green)
	case StateLost:
		g.drawBanner("OUT OF BALLS", rl.Red)
	}
}

// drawBanner centers a large message with a restart hint.
func (g *Game) drawBanner(text string, color rl.Color) {
	const size = 48
	w := rl.MeasureText(text, size)
	x := (int32(g.cfg.Screen.Width) - w) / 2
	y := int32(g.cfg.Screen.Height)/2 - size
	rl.DrawText(text, x, y, size, color)

	hint := "Press R to restart"
	hw := rl.MeasureText(hint, 20)
	rl.DrawText(hint, (int32(g.cfg.Screen.Width)-hw)/2, y+size+16, 20, rl.LightGray)
}

// skinColor converts a skin component to a raylib color.
func skinColor(s *components.Skin) rl.Color {
	if s == nil {
		return rl.Magenta
	}
	return rl.Color{R: s.R, G: s.G, B: s.B, A: s.A}
}
