package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/rubble/components"
)

// Block layout dimensions for the default level.
const (
	towerBlockW  = 40.0
	towerBlockH  = 80.0
	lintelW      = 140.0
	lintelH      = 30.0
	towerGap     = 60.0
	levelCenterX = 900.0
)

var ballSkin = components.Skin{R: 226, G: 82, B: 65, A: 255}

// Wood tones; the level cycles through them so stacked blocks stay readable.
var blockSkins = []components.Skin{
	{R: 190, G: 140, B: 80, A: 255},
	{R: 170, G: 120, B: 65, A: 255},
	{R: 205, G: 160, B: 100, A: 255},
}

// spawnBall creates a projectile entity at the given position.
func (g *Game) spawnBall(x, y float32) (ecs.Entity, error) {
	ball, err := components.NewBall(float32(g.cfg.Balls.Radius), float32(g.cfg.Balls.Mass))
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("spawning ball: %w", err)
	}

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	skin := ballSkin

	return g.ballMapper.NewEntity(&pos, &vel, &ball, &skin), nil
}

// spawnBlock creates a block entity with its top-left corner at the given
// position.
func (g *Game) spawnBlock(x, y, w, h float32, skin components.Skin) (ecs.Entity, error) {
	block, err := components.NewBlock(w, h, float32(g.cfg.Blocks.Mass), float32(g.cfg.Blocks.Health))
	if err != nil {
		return ecs.Entity{}, fmt.Errorf("spawning block: %w", err)
	}

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	rot := components.Rotation{}

	return g.blockMapper.NewEntity(&pos, &vel, &rot, &block, &skin), nil
}

// buildLevel places the destructible structure: two block towers bridged by
// lintels, with a capstone tower on top.
func (g *Game) buildLevel() error {
	groundY := g.cfg.Derived.GroundY32
	leftX := float32(levelCenterX - towerGap/2 - towerBlockW)
	rightX := float32(levelCenterX + towerGap/2)

	type placement struct {
		x, y, w, h float32
	}
	var layout []placement

	// Two three-story towers
	for story := 0; story < 3; story++ {
		y := groundY - float32(story+1)*towerBlockH
		layout = append(layout,
			placement{leftX, y, towerBlockW, towerBlockH},
			placement{rightX, y, towerBlockW, towerBlockH},
		)
	}

	// Lintel bridging the towers
	lintelX := float32(levelCenterX - lintelW/2)
	lintelY := groundY - 3*towerBlockH - lintelH
	layout = append(layout, placement{lintelX, lintelY, lintelW, lintelH})

	// Capstone story on the lintel
	capY := lintelY - towerBlockH
	layout = append(layout,
		placement{float32(levelCenterX) - towerBlockW - 5, capY, towerBlockW, towerBlockH},
		placement{float32(levelCenterX) + 5, capY, towerBlockW, towerBlockH},
		placement{lintelX, capY - lintelH, lintelW, lintelH},
	)

	for i, p := range layout {
		skin := blockSkins[i%len(blockSkins)]
		if _, err := g.spawnBlock(p.x, p.y, p.w, p.h, skin); err != nil {
			return err
		}
	}
	g.blocksAlive = len(layout)

	return nil
}

// loadNextBall spawns a fresh projectile and attaches it to the launcher.
func (g *Game) loadNextBall() error {
	entity, err := g.spawnBall(g.launcher.AnchorX, g.launcher.AnchorY)
	if err != nil {
		return err
	}
	g.ballsLeft--
	g.activeBall = entity
	g.hasActive = true

	v, _ := g.activeView()
	g.launcher.Attach(v)

	return nil
}
