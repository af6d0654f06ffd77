package systems

import "github.com/pthm-cable/rubble/components"

// ImpactKind identifies which pair of body kinds produced an impact.
type ImpactKind uint8

const (
	ImpactBallBall ImpactKind = iota
	ImpactBallBlock
	ImpactBlockBlock
)

// Impact describes one resolved contact. Impacts are transient: the engine
// emits them for scoring and telemetry and never stores them.
type Impact struct {
	Kind      ImpactKind
	X, Y      float32 // point of impact
	Speed     float32 // impact speed (relative for block pairs)
	Damage    float32 // damage dealt to blocks by this contact
	Destroyed bool    // a block was destroyed by this contact
}

// ScoreTable holds the point values awarded per impact.
type ScoreTable struct {
	BallHit      int
	BlockHit     int
	DestroyBonus int
}

// BlockImpactRule holds the block-block damage parameters.
type BlockImpactRule struct {
	Threshold   float32 // minimum relative speed that deals damage
	DamageScale float32 // damage per unit relative speed
}

// ApplyBlockImpulse changes a block's linear velocity by impulse/mass and its
// angular velocity by the torque the impulse generates about the centroid.
// This is the only path by which collisions induce spin.
func ApplyBlockImpulse(b BlockView, jx, jy, px, py float32) {
	b.Vel.X += jx / b.Block.Mass
	b.Vel.Y += jy / b.Block.Mass

	cx, cy := b.Centroid()
	rx := px - cx
	ry := py - cy
	torque := rx*jy - ry*jx
	b.Rot.AngVel += degrees(torque / b.Block.Inertia)
}

// CollideBalls resolves one projectile pair as a 1D collision along the line
// of centers, leaving the tangential components untouched. Overlap is split
// evenly between the two bodies.
func CollideBalls(env Env, a, b BallView) (Impact, bool) {
	if !a.Ball.Visible || !b.Ball.Visible {
		return Impact{}, false
	}

	dx := b.Pos.X - a.Pos.X
	dy := b.Pos.Y - a.Pos.Y
	dist := distance(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y)
	minDist := a.Ball.Radius + b.Ball.Radius
	if dist >= minDist {
		return Impact{}, false
	}

	// Coincident centers have no direction; fall back to +x.
	nx, ny := float32(1), float32(0)
	if dist > 0 {
		nx = dx / dist
		ny = dy / dist
	}
	tx, ty := -ny, nx

	v1n := a.Vel.X*nx + a.Vel.Y*ny
	v1t := a.Vel.X*tx + a.Vel.Y*ty
	v2n := b.Vel.X*nx + b.Vel.Y*ny
	v2t := b.Vel.X*tx + b.Vel.Y*ty

	m1 := a.Ball.Mass
	m2 := b.Ball.Mass
	e := env.Elasticity

	// Unequal-mass restitution formula along the normal.
	u1n := (m1*v1n + m2*v2n - m2*e*(v1n-v2n)) / (m1 + m2)
	u2n := (m1*v1n + m2*v2n + m1*e*(v1n-v2n)) / (m1 + m2)

	a.Vel.X = u1n*nx + v1t*tx
	a.Vel.Y = u1n*ny + v1t*ty
	b.Vel.X = u2n*nx + v2t*tx
	b.Vel.Y = u2n*ny + v2t*ty

	half := (minDist - dist) / 2
	a.Pos.X -= nx * half
	a.Pos.Y -= ny * half
	b.Pos.X += nx * half
	b.Pos.Y += ny * half

	return Impact{
		Kind:  ImpactBallBall,
		X:     a.Pos.X + nx*a.Ball.Radius,
		Y:     a.Pos.Y + ny*a.Ball.Radius,
		Speed: absFloat(v1n - v2n),
	}, true
}

// CollideBallBlock resolves a projectile against a block. Detection uses the
// closest point on the unrotated rectangle; rotation is deliberately ignored
// for this pair's geometry. The impulse on the block is applied at the
// contact point and so induces torque; the ball's velocity is reflected and
// scaled on both axes.
func CollideBallBlock(env Env, ball BallView, bl BlockView) (Impact, bool) {
	if !ball.Ball.Visible || !bl.Block.Visible {
		return Impact{}, false
	}

	r := ball.Ball.Radius
	// Broad-phase AABB reject
	if ball.Pos.X+r < bl.Pos.X || ball.Pos.X-r > bl.Pos.X+bl.Block.Width ||
		ball.Pos.Y+r < bl.Pos.Y || ball.Pos.Y-r > bl.Pos.Y+bl.Block.Height {
		return Impact{}, false
	}

	// Closest point on the rectangle to the ball center
	px := clampFloat(ball.Pos.X, bl.Pos.X, bl.Pos.X+bl.Block.Width)
	py := clampFloat(ball.Pos.Y, bl.Pos.Y, bl.Pos.Y+bl.Block.Height)
	dx := ball.Pos.X - px
	dy := ball.Pos.Y - py
	if dx*dx+dy*dy >= r*r {
		return Impact{}, false
	}

	speed := velocityMagnitude(ball.Vel.X, ball.Vel.Y)
	damage := speed * ball.Ball.Mass / 1000

	// Impulse on the block from the pre-reflection ball velocity
	e := env.Elasticity
	jx := -ball.Vel.X * ball.Ball.Mass * (1 + e)
	jy := -ball.Vel.Y * ball.Ball.Mass * (1 + e)
	ApplyBlockImpulse(bl, jx, jy, px, py)

	res := bl.Block.ApplyDamage(damage)

	// The ball bounces back on both axes. Not a true specular reflection;
	// kept as-is because it shapes the gameplay.
	ball.Vel.X *= -e
	ball.Vel.Y *= -e

	// Push the ball out along the contact direction; +x when the center
	// sits exactly on the closest point.
	dist := float32(0)
	if dx != 0 || dy != 0 {
		dist = velocityMagnitude(dx, dy)
	}
	if dist > 0 {
		ball.Pos.X = px + dx/dist*r
		ball.Pos.Y = py + dy/dist*r
	} else {
		ball.Pos.X = px + r
	}

	return Impact{
		Kind:      ImpactBallBlock,
		X:         px,
		Y:         py,
		Speed:     speed,
		Damage:    damage,
		Destroyed: res == components.Destroyed,
	}, true
}

// CollideBlocks resolves a block pair with an axis-aligned overlap test.
// Rotation is ignored for both detection and response; there is no angular
// effect on this pair path. Fast impacts damage both blocks in proportion to
// the other body's mass share.
func CollideBlocks(env Env, rule BlockImpactRule, a, b BlockView) (Impact, bool) {
	if !a.Block.Visible || !b.Block.Visible {
		return Impact{}, false
	}

	ax2 := a.Pos.X + a.Block.Width
	ay2 := a.Pos.Y + a.Block.Height
	bx2 := b.Pos.X + b.Block.Width
	by2 := b.Pos.Y + b.Block.Height

	overlapX := minFloat(ax2, bx2) - maxFloat(a.Pos.X, b.Pos.X)
	overlapY := minFloat(ay2, by2) - maxFloat(a.Pos.Y, b.Pos.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return Impact{}, false
	}

	// Approximate contact point: midpoint of the overlap region
	ix := (maxFloat(a.Pos.X, b.Pos.X) + minFloat(ax2, bx2)) / 2
	iy := (maxFloat(a.Pos.Y, b.Pos.Y) + minFloat(ay2, by2)) / 2

	relSpeed := velocityMagnitude(a.Vel.X-b.Vel.X, a.Vel.Y-b.Vel.Y)

	m1 := a.Block.Mass
	m2 := b.Block.Mass
	total := m1 + m2

	var damage float32
	destroyed := false
	if relSpeed > rule.Threshold {
		dmgA := relSpeed * (m2 / total) * rule.DamageScale
		dmgB := relSpeed * (m1 / total) * rule.DamageScale
		if a.Block.ApplyDamage(dmgA) == components.Destroyed {
			destroyed = true
		}
		if b.Block.ApplyDamage(dmgB) == components.Destroyed {
			destroyed = true
		}
		damage = dmgA + dmgB
	}

	// Per-axis restitution exchange between the two masses
	e := env.Elasticity
	v1x, v1y := a.Vel.X, a.Vel.Y
	v2x, v2y := b.Vel.X, b.Vel.Y
	a.Vel.X = ((m1-e*m2)*v1x + (1+e)*m2*v2x) / total
	a.Vel.Y = ((m1-e*m2)*v1y + (1+e)*m2*v2y) / total
	b.Vel.X = ((m2-e*m1)*v2x + (1+e)*m1*v1x) / total
	b.Vel.Y = ((m2-e*m1)*v2y + (1+e)*m1*v1y) / total

	// Separate along the axis of least overlap, split evenly
	if overlapX < overlapY {
		shift := overlapX / 2
		if a.Pos.X < b.Pos.X {
			shift = -shift
		}
		a.Pos.X += shift
		b.Pos.X -= shift
	} else {
		shift := overlapY / 2
		if a.Pos.Y < b.Pos.Y {
			shift = -shift
		}
		a.Pos.Y += shift
		b.Pos.Y -= shift
	}

	return Impact{
		Kind:      ImpactBlockBlock,
		X:         ix,
		Y:         iy,
		Speed:     relSpeed,
		Damage:    damage,
		Destroyed: destroyed,
	}, true
}

// ResolveCollisions runs the single-pass narrow phase over the whole body
// set: all ball pairs, then all ball-block combinations, then all block
// pairs. Later passes see the velocities already updated by earlier ones
// within the same tick; the solver is deliberately not iterative.
// It returns the impacts and the accumulated score delta.
func ResolveCollisions(env Env, rule BlockImpactRule, score ScoreTable, balls []BallView, blocks []BlockView) ([]Impact, int) {
	var impacts []Impact
	points := 0

	for i := 0; i < len(balls); i++ {
		for j := i + 1; j < len(balls); j++ {
			if imp, ok := CollideBalls(env, balls[i], balls[j]); ok {
				impacts = append(impacts, imp)
				points += score.BallHit
			}
		}
	}

	for _, ball := range balls {
		for _, block := range blocks {
			if imp, ok := CollideBallBlock(env, ball, block); ok {
				impacts = append(impacts, imp)
				points += score.BlockHit
				if imp.Destroyed {
					points += score.DestroyBonus
				}
			}
		}
	}

	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			if imp, ok := CollideBlocks(env, rule, blocks[i], blocks[j]); ok {
				impacts = append(impacts, imp)
			}
		}
	}

	return impacts, points
}

func minFloat(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
