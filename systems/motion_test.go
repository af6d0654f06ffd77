package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/rubble/components"
)

// testEnv returns a small playfield with round numbers for hand-checking.
func testEnv() Env {
	return Env{
		WallLeft:   0,
		WallRight:  1000,
		GroundY:    600,
		Height:     700,
		Gravity:    500,
		Elasticity: 0.6,
		Friction:   0.9,
	}
}

func newBallView(t *testing.T, x, y, radius, mass float32) (BallView, *components.Position, *components.Velocity, *components.Ball) {
	t.Helper()
	ball, err := components.NewBall(radius, mass)
	if err != nil {
		t.Fatalf("NewBall failed: %v", err)
	}
	pos := &components.Position{X: x, Y: y}
	vel := &components.Velocity{}
	b := &ball
	return BallView{Pos: pos, Vel: vel, Ball: b}, pos, vel, b
}

func newBlockView(t *testing.T, x, y, w, h, mass, health float32) BlockView {
	t.Helper()
	block, err := components.NewBlock(w, h, mass, health)
	if err != nil {
		t.Fatalf("NewBlock failed: %v", err)
	}
	return BlockView{
		Pos:   &components.Position{X: x, Y: y},
		Vel:   &components.Velocity{},
		Rot:   &components.Rotation{},
		Block: &block,
	}
}

func TestBallGravityIntegration(t *testing.T) {
	env := testEnv()
	v, pos, vel, _ := newBallView(t, 100, 100, 10, 10)
	vel.X = 50

	StepBall(env, 0.1, v)

	if math.Abs(float64(vel.Y-50)) > 0.01 {
		t.Errorf("vy = %v, want 50 after gravity", vel.Y)
	}
	if math.Abs(float64(pos.X-105)) > 0.01 {
		t.Errorf("x = %v, want 105", pos.X)
	}
	if math.Abs(float64(pos.Y-105)) > 0.01 {
		t.Errorf("y = %v, want 105", pos.Y)
	}
}

func TestBallLoadedOrHiddenDoesNotMove(t *testing.T) {
	env := testEnv()

	v, pos, vel, ball := newBallView(t, 100, 100, 10, 10)
	ball.Loaded = true
	vel.Y = 100
	StepBall(env, 0.1, v)
	if pos.Y != 100 || vel.Y != 100 {
		t.Errorf("loaded ball moved: pos.Y=%v vel.Y=%v", pos.Y, vel.Y)
	}

	v2, pos2, _, ball2 := newBallView(t, 100, 100, 10, 10)
	ball2.Visible = false
	StepBall(env, 0.1, v2)
	if pos2.Y != 100 {
		t.Errorf("hidden ball moved: pos.Y=%v", pos2.Y)
	}
}

func TestBallGroundBounce(t *testing.T) {
	env := testEnv()
	v, pos, vel, _ := newBallView(t, 100, 588, 10, 10)
	vel.X = 100
	vel.Y = 200

	StepBall(env, 0.01, v)

	// Bottom crossed the ground line: friction, reflected vy, clamped y
	if pos.Y != env.GroundY-10 {
		t.Errorf("y = %v, want clamped to %v", pos.Y, env.GroundY-10)
	}
	if vel.Y >= 0 {
		t.Errorf("vy = %v, want upward after bounce", vel.Y)
	}
	wantVy := float32(-(200 + 500*0.01) * 0.6)
	if math.Abs(float64(vel.Y-wantVy)) > 0.01 {
		t.Errorf("vy = %v, want %v", vel.Y, wantVy)
	}
	if math.Abs(float64(vel.X-100*0.9)) > 0.01 {
		t.Errorf("vx = %v, want friction-damped %v", vel.X, 100*0.9)
	}
}

func TestBallBounceSnap(t *testing.T) {
	env := testEnv()
	v, _, vel, _ := newBallView(t, 100, 595, 10, 10)
	vel.Y = 40 // reflected to -24, below the snap threshold

	StepBall(env, 0.001, v)

	if vel.Y != 0 {
		t.Errorf("vy = %v, want snapped to 0", vel.Y)
	}
}

func TestBallWallContainment(t *testing.T) {
	env := testEnv()

	tests := []struct {
		name   string
		x, vx  float32
		wantX  float32
		wantVx float32
	}{
		{"left wall", 5, -100, 10, 60},
		{"right wall", 996, 100, 990, -60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, pos, vel, _ := newBallView(t, tt.x, 100, 10, 10)
			vel.X = tt.vx

			StepBall(env, 0.0001, v)

			if math.Abs(float64(pos.X-tt.wantX)) > 0.1 {
				t.Errorf("x = %v, want %v", pos.X, tt.wantX)
			}
			if math.Abs(float64(vel.X-tt.wantVx)) > 0.1 {
				t.Errorf("vx = %v, want %v", vel.X, tt.wantVx)
			}
		})
	}
}

func TestBallAtRest(t *testing.T) {
	env := testEnv()

	tests := []struct {
		name   string
		y      float32
		vx, vy float32
		loaded bool
		want   bool
	}{
		{"settled on ground", 590, 0, 0, false, true},
		{"slow near ground", 586, 5, -5, false, true},
		{"too fast", 590, 50, 0, false, false},
		{"too high", 400, 0, 0, false, false},
		{"loaded never rests", 590, 0, 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, vel, ball := newBallView(t, 100, tt.y, 10, 10)
			vel.X = tt.vx
			vel.Y = tt.vy
			ball.Loaded = tt.loaded

			if got := BallAtRest(env, v); got != tt.want {
				t.Errorf("BallAtRest = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLaunchBall(t *testing.T) {
	v, _, vel, ball := newBallView(t, 100, 100, 10, 10)
	ball.Loaded = true

	LaunchBall(v, 100, 45)

	if ball.Loaded {
		t.Error("launch must clear the loaded flag")
	}
	want := float32(100 * math.Sqrt2 / 2)
	if math.Abs(float64(vel.X-want)) > 0.01 {
		t.Errorf("vx = %v, want %v", vel.X, want)
	}
	// Positive angle lifts the ball: screen y decreases
	if math.Abs(float64(vel.Y+want)) > 0.01 {
		t.Errorf("vy = %v, want %v", vel.Y, -want)
	}
}

func TestBlockAngularMotion(t *testing.T) {
	env := testEnv()
	b := newBlockView(t, 100, 100, 40, 40, 50, 100)
	b.Rot.AngVel = 100

	StepBlock(env, 0.1, b)

	if math.Abs(float64(b.Rot.Angle-10)) > 0.01 {
		t.Errorf("angle = %v, want 10", b.Rot.Angle)
	}
	if math.Abs(float64(b.Rot.AngVel-99)) > 0.01 {
		t.Errorf("angVel = %v, want damped to 99", b.Rot.AngVel)
	}
}

func TestBlockHiddenIsInert(t *testing.T) {
	env := testEnv()
	b := newBlockView(t, 100, 100, 40, 40, 50, 100)
	b.Block.Visible = false
	b.Vel.Y = 100

	StepBlock(env, 0.1, b)

	if b.Pos.Y != 100 {
		t.Errorf("hidden block moved: y=%v", b.Pos.Y)
	}
}

func TestBlockRotatedGroundContact(t *testing.T) {
	env := testEnv()
	// 40x40 block rotated 45 degrees: the rotated half-diagonal is
	// 20*sqrt(2) ~ 28.28, so the lowest corner pokes below the ground
	// even though the unrotated bottom edge would not.
	b := newBlockView(t, 100, env.GroundY-45, 40, 40, 50, 100)
	b.Rot.Angle = 45
	b.Vel.Y = 100

	StepBlock(env, 0.001, b)

	corners := BlockCorners(b)
	lowest := corners[0][1]
	for _, c := range corners[1:] {
		if c[1] > lowest {
			lowest = c[1]
		}
	}
	if lowest > env.GroundY+0.01 {
		t.Errorf("lowest corner %v still below ground %v", lowest, env.GroundY)
	}
	if b.Vel.Y > 0 {
		t.Errorf("vy = %v, want non-positive after bounce", b.Vel.Y)
	}
}

func TestBlockGroundBounceDamping(t *testing.T) {
	env := testEnv()
	b := newBlockView(t, 100, env.GroundY-39, 40, 40, 50, 100)
	b.Vel.X = 100
	b.Vel.Y = 200
	b.Rot.AngVel = 50

	StepBlock(env, 0.001, b)

	// Half-restitution bounce plus friction and spin damping
	wantVy := float32(-(200 + 500*0.001) * 0.6 * 0.5)
	if math.Abs(float64(b.Vel.Y-wantVy)) > 0.1 {
		t.Errorf("vy = %v, want %v", b.Vel.Y, wantVy)
	}
	if math.Abs(float64(b.Vel.X-100*0.9)) > 0.1 {
		t.Errorf("vx = %v, want %v", b.Vel.X, 100*0.9)
	}
	wantSpin := float32(50) * angularDamping * 0.7
	if math.Abs(float64(b.Rot.AngVel-wantSpin)) > 0.1 {
		t.Errorf("angVel = %v, want %v", b.Rot.AngVel, wantSpin)
	}
}

func TestBlockWallBounceDoesNotClampPosition(t *testing.T) {
	env := testEnv()
	b := newBlockView(t, -10, 100, 40, 40, 50, 100)
	b.Vel.X = -50
	b.Vel.Y = -500 // cancel this step's gravity pull for a clean check
	b.Rot.AngVel = 20

	x := b.Pos.X
	StepBlock(env, 0.001, b)

	// The wall reaction touches only the velocities
	if b.Vel.X <= 0 {
		t.Errorf("vx = %v, want reflected positive", b.Vel.X)
	}
	if b.Rot.AngVel >= 0 {
		t.Errorf("angVel = %v, want sign flipped", b.Rot.AngVel)
	}
	wantX := x - 50*0.001 // this step's translation, nothing else
	if math.Abs(float64(b.Pos.X-wantX)) > 0.01 {
		t.Errorf("x = %v, want %v (no clamping)", b.Pos.X, wantX)
	}
}

func TestGroundContainmentOverManyTicks(t *testing.T) {
	env := testEnv()
	v, pos, vel, ball := newBallView(t, 300, 100, 10, 10)
	vel.X = 120
	vel.Y = -80

	b := newBlockView(t, 500, 100, 60, 30, 50, 100)
	b.Vel.X = -40
	b.Rot.AngVel = 90

	for i := 0; i < 2000; i++ {
		StepBall(env, 1.0/60, v)
		StepBlock(env, 1.0/60, b)
	}

	if pos.Y+ball.Radius > env.GroundY+0.5 {
		t.Errorf("ball ended below ground: bottom=%v ground=%v", pos.Y+ball.Radius, env.GroundY)
	}
	corners := BlockCorners(b)
	for _, c := range corners {
		if c[1] > env.GroundY+0.5 {
			t.Errorf("block corner below ground: %v > %v", c[1], env.GroundY)
		}
	}
}
