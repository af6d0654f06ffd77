package components

import "fmt"

// DamageResult reports the outcome of applying damage to a block.
type DamageResult uint8

const (
	Damaged DamageResult = iota
	Destroyed
)

// Block is a destructible rectangular rigid body. Geometry, mass and the
// moment of inertia are fixed at creation; health only ever decreases.
type Block struct {
	Width     float32
	Height    float32
	Mass      float32
	Inertia   float32 // moment of inertia about the centroid
	Health    float32
	MaxHealth float32
	Cracked   bool // one-way transition at half health
	Visible   bool // false once destroyed; the block is then inert
}

// NewBlock validates the block parameters and returns the component with
// full health and the rectangle's moment of inertia precomputed.
func NewBlock(width, height, mass, health float32) (Block, error) {
	if width <= 0 || height <= 0 {
		return Block{}, fmt.Errorf("block: extents must be positive, got %vx%v", width, height)
	}
	if mass <= 0 {
		return Block{}, fmt.Errorf("block: mass must be positive, got %v", mass)
	}
	if health <= 0 {
		return Block{}, fmt.Errorf("block: health must be positive, got %v", health)
	}
	return Block{
		Width:     width,
		Height:    height,
		Mass:      mass,
		Inertia:   mass * (width*width + height*height) / 12,
		Health:    health,
		MaxHealth: health,
		Visible:   true,
	}, nil
}

// ApplyDamage reduces the block's health. Crossing half health sets the
// one-way Cracked flag; reaching zero hides the block permanently.
func (b *Block) ApplyDamage(amount float32) DamageResult {
	b.Health -= amount
	if b.Health <= 0.5*b.MaxHealth && !b.Cracked {
		b.Cracked = true
	}
	if b.Health <= 0 {
		b.Visible = false
		return Destroyed
	}
	return Damaged
}

// HealthFrac returns the remaining health fraction in [0, 1].
func (b *Block) HealthFrac() float32 {
	if b.MaxHealth <= 0 {
		return 0
	}
	f := b.Health / b.MaxHealth
	if f < 0 {
		return 0
	}
	return f
}
