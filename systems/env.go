// Package systems contains the physics, collision and launcher systems.
package systems

import (
	"github.com/pthm-cable/rubble/components"
	"github.com/pthm-cable/rubble/config"
)

// Env holds the playfield geometry and global physics constants shared by
// every system. It is plain data; systems take it by value.
type Env struct {
	WallLeft   float32
	WallRight  float32
	GroundY    float32
	Height     float32
	Gravity    float32
	Elasticity float32
	Friction   float32
}

// NewEnv builds the physics environment from the loaded configuration.
func NewEnv(cfg *config.Config) Env {
	return Env{
		WallLeft:   cfg.Derived.WallL32,
		WallRight:  cfg.Derived.WallR32,
		GroundY:    cfg.Derived.GroundY32,
		Height:     cfg.Derived.ScreenH32,
		Gravity:    float32(cfg.Physics.Gravity),
		Elasticity: float32(cfg.Physics.Elasticity),
		Friction:   float32(cfg.Physics.Friction),
	}
}

// BallView bundles the components of one projectile for the duration of a
// single step. Views are rebuilt from the world every tick and never retained.
type BallView struct {
	Pos  *components.Position
	Vel  *components.Velocity
	Ball *components.Ball
}

// BlockView bundles the components of one block for the duration of a
// single step.
type BlockView struct {
	Pos   *components.Position
	Vel   *components.Velocity
	Rot   *components.Rotation
	Block *components.Block
}

// Centroid returns the block's center of mass.
func (b BlockView) Centroid() (float32, float32) {
	return b.Pos.X + b.Block.Width/2, b.Pos.Y + b.Block.Height/2
}
