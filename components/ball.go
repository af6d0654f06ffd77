// Package components defines ECS components for the sandbox bodies.
package components

import "fmt"

// Ball is a circular projectile body. Radius and mass are fixed at creation.
type Ball struct {
	Radius  float32
	Mass    float32
	Loaded  bool // held by the launcher; motion integration is suspended
	Visible bool // false once permanently removed from play
}

// NewBall validates the projectile parameters and returns the component.
// Mass and radius appear as divisors in the collision response, so
// non-positive values are rejected up front.
func NewBall(radius, mass float32) (Ball, error) {
	if radius <= 0 {
		return Ball{}, fmt.Errorf("ball: radius must be positive, got %v", radius)
	}
	if mass <= 0 {
		return Ball{}, fmt.Errorf("ball: mass must be positive, got %v", mass)
	}
	return Ball{Radius: radius, Mass: mass, Visible: true}, nil
}

// Skin is the body's display color, owned by the rendering layer.
type Skin struct {
	R, G, B, A uint8
}
