package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Debug panel geometry.
const (
	panelX      = 10.0
	panelY      = 120.0
	panelWidth  = 280.0
	panelHeight = 190.0
)

// panelContains reports whether the point lies inside the debug panel.
func (g *Game) panelContains(p rl.Vector2) bool {
	return p.X >= panelX && p.X <= panelX+panelWidth &&
		p.Y >= panelY && p.Y <= panelY+panelHeight
}

// drawPanel renders the physics tuning panel. Slider changes take effect on
// the next tick; Reset Round restores the configured values.
func (g *Game) drawPanel() {
	rl.DrawRectangle(panelX, panelY, panelWidth, panelHeight, rl.Color{R: 20, G: 20, B: 28, A: 220})
	rl.DrawRectangleLines(panelX, panelY, panelWidth, panelHeight, rl.Gray)
	rl.DrawText("Physics", panelX+10, panelY+8, 20, rl.White)

	labelX := int32(panelX + 10)
	sliderX := float32(panelX + 100)
	sliderW := float32(panelWidth - 140)

	rl.DrawText(fmt.Sprintf("Gravity %.0f", g.env.Gravity), labelX, int32(panelY+42), 10, rl.LightGray)
	g.env.Gravity = gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: panelY + 38, Width: sliderW, Height: 20},
		"0", "1500", g.env.Gravity, 0, 1500)

	rl.DrawText(fmt.Sprintf("Bounce %.2f", g.env.Elasticity), labelX, int32(panelY+72), 10, rl.LightGray)
	g.env.Elasticity = gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: panelY + 68, Width: sliderW, Height: 20},
		"0", "1", g.env.Elasticity, 0, 1)

	rl.DrawText(fmt.Sprintf("Friction %.2f", g.env.Friction), labelX, int32(panelY+102), 10, rl.LightGray)
	g.env.Friction = gui.SliderBar(
		rl.Rectangle{X: sliderX, Y: panelY + 98, Width: sliderW, Height: 20},
		"0", "1", g.env.Friction, 0, 1)

	if gui.Button(rl.Rectangle{X: panelX + 10, Y: panelY + 140, Width: 120, Height: 30}, "Reset Round") {
		g.resetRound()
	}
}
