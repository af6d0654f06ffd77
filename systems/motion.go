package systems

import "math"

// Motion integration constants. Velocity snaps kill the infinite micro-bounce
// that restitution would otherwise produce at the ground.
const (
	ballBounceSnap  = 50.0 // |vy| below this after a ball bounce becomes 0
	blockBounceSnap = 20.0 // |vy| below this after a block bounce becomes 0
	spinSnap        = 0.1  // |angVel| below this after a block bounce becomes 0
	angularDamping  = 0.99 // passive per-tick spin decay
	restDistance    = 5.0  // max height above ground for a resting ball
	restSpeed       = 10.0 // max per-axis speed for a resting ball
)

// StepBall advances a projectile by dt: gravity, translation, then ground
// and wall handling. Loaded or hidden balls do not move.
func StepBall(env Env, dt float32, b BallView) {
	if b.Ball.Loaded || !b.Ball.Visible {
		return
	}

	b.Vel.Y += env.Gravity * dt
	b.Pos.X += b.Vel.X * dt
	b.Pos.Y += b.Vel.Y * dt

	// Ground contact: friction always, bounce only while moving down.
	if b.Pos.Y+b.Ball.Radius >= env.GroundY {
		b.Vel.X *= env.Friction
		if b.Vel.Y > 0 {
			b.Vel.Y = -b.Vel.Y * env.Elasticity
			if absFloat(b.Vel.Y) < ballBounceSnap {
				b.Vel.Y = 0
			}
		}
		b.Pos.Y = env.GroundY - b.Ball.Radius
	}

	// Wall contact reflects the horizontal velocity with restitution.
	if b.Pos.X-b.Ball.Radius < env.WallLeft {
		b.Pos.X = env.WallLeft + b.Ball.Radius
		b.Vel.X = absFloat(b.Vel.X) * env.Elasticity
	} else if b.Pos.X+b.Ball.Radius > env.WallRight {
		b.Pos.X = env.WallRight - b.Ball.Radius
		b.Vel.X = -absFloat(b.Vel.X) * env.Elasticity
	}
}

// LaunchBall releases a held ball with the given speed and angle. The angle
// is in mathematical orientation (degrees, positive lifts the ball), so the
// vertical term is negated to convert to screen space.
func LaunchBall(b BallView, speed, angleDeg float32) {
	rad := float64(radians(angleDeg))
	b.Vel.X = speed * float32(math.Cos(rad))
	b.Vel.Y = -speed * float32(math.Sin(rad))
	b.Ball.Loaded = false
}

// BallAtRest reports whether the ball has settled near the ground. The driver
// uses this as the end-of-life signal for the active projectile; the ball
// itself stays visible and inert.
func BallAtRest(env Env, b BallView) bool {
	if b.Ball.Loaded {
		return false
	}
	onGround := env.GroundY-(b.Pos.Y+b.Ball.Radius) <= restDistance
	return onGround && absFloat(b.Vel.X) < restSpeed && absFloat(b.Vel.Y) < restSpeed
}

// BlockCorners returns the block's four corners with its rotation applied
// about the centroid, in screen coordinates.
func BlockCorners(b BlockView) [4][2]float32 {
	cx, cy := b.Centroid()
	hw := b.Block.Width / 2
	hh := b.Block.Height / 2

	rad := float64(radians(b.Rot.Angle))
	sin := float32(math.Sin(rad))
	cos := float32(math.Cos(rad))

	local := [4][2]float32{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	var out [4][2]float32
	for i, p := range local {
		out[i][0] = cx + p[0]*cos - p[1]*sin
		out[i][1] = cy + p[0]*sin + p[1]*cos
	}
	return out
}

// StepBlock advances a block by dt: gravity, translation, rotation, then
// ground and wall handling. Ground penetration is measured against the
// rotated corner set but corrected by translation only.
func StepBlock(env Env, dt float32, b BlockView) {
	if !b.Block.Visible {
		return
	}

	b.Vel.Y += env.Gravity * dt
	b.Pos.X += b.Vel.X * dt
	b.Pos.Y += b.Vel.Y * dt

	b.Rot.Angle += b.Rot.AngVel * dt
	b.Rot.AngVel *= angularDamping

	// Lowest rotated corner decides ground contact.
	corners := BlockCorners(b)
	lowest := corners[0][1]
	for _, c := range corners[1:] {
		if c[1] > lowest {
			lowest = c[1]
		}
	}

	if lowest > env.GroundY {
		b.Pos.Y -= lowest - env.GroundY
		if b.Vel.Y > 0 {
			b.Vel.Y = -b.Vel.Y * env.Elasticity * 0.5
			b.Vel.X *= env.Friction
			b.Rot.AngVel *= 0.7
			if absFloat(b.Vel.Y) < blockBounceSnap {
				b.Vel.Y = 0
			}
			if absFloat(b.Rot.AngVel) < spinSnap {
				b.Rot.AngVel = 0
			}
		}
	}

	// Walls use the unrotated center-based extent. The position is left
	// where it is; only the velocities react.
	cx, _ := b.Centroid()
	if cx-b.Block.Width/2 < env.WallLeft {
		b.Vel.X = absFloat(b.Vel.X) * env.Elasticity
		b.Rot.AngVel *= -0.5
	} else if cx+b.Block.Width/2 > env.WallRight {
		b.Vel.X = -absFloat(b.Vel.X) * env.Elasticity
		b.Rot.AngVel *= -0.5
	}
}
