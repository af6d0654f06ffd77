package systems

import (
	"math"
	"testing"
)

func testLauncher() *Launcher {
	return &Launcher{
		AnchorX:      220,
		AnchorY:      480,
		MaxStretch:   150,
		SpeedScale:   6,
		SpeedCap:     800,
		previewSteps: 30,
		previewDT:    0.05,
	}
}

func TestAttachSnapsToAnchor(t *testing.T) {
	l := testLauncher()
	v, pos, vel, ball := newBallView(t, 0, 0, 10, 10)
	vel.X = 50

	l.Attach(v)

	if pos.X != 220 || pos.Y != 480 {
		t.Errorf("pos = (%v, %v), want anchor (220, 480)", pos.X, pos.Y)
	}
	if vel.X != 0 || vel.Y != 0 {
		t.Errorf("vel = (%v, %v), want zero", vel.X, vel.Y)
	}
	if !ball.Loaded {
		t.Error("attached ball must be loaded")
	}
	if !l.Holding() {
		t.Error("launcher must report holding")
	}
}

func TestPullClampScalesVector(t *testing.T) {
	l := testLauncher()
	env := testEnv()
	v, pos, _, _ := newBallView(t, 0, 0, 10, 10)
	l.Attach(v)

	// Pointer 300 away: (anchor.x - 180, anchor.y + 240), a 3-4-5 vector
	l.Pull(v, 220-180, 480+240, env)

	d := distance(pos.X, pos.Y, 220, 480)
	if math.Abs(float64(d-150)) > 0.001 {
		t.Errorf("stretch = %v, want clamped to exactly 150", d)
	}

	// Same direction: clamped point is the pointer vector scaled by 1/2
	if math.Abs(float64(pos.X-(220-90))) > 0.001 {
		t.Errorf("x = %v, want %v", pos.X, 220-90)
	}
	if math.Abs(float64(pos.Y-(480+120))) > 0.001 {
		t.Errorf("y = %v, want %v", pos.Y, 480+120)
	}
}

func TestPullWithinLimitIsExact(t *testing.T) {
	l := testLauncher()
	env := testEnv()
	v, pos, _, _ := newBallView(t, 0, 0, 10, 10)
	l.Attach(v)

	l.Pull(v, 190, 520, env)

	if pos.X != 190 || pos.Y != 520 {
		t.Errorf("pos = (%v, %v), want pointer (190, 520)", pos.X, pos.Y)
	}
	if len(l.Preview()) == 0 {
		t.Error("pull must produce a trajectory preview")
	}
}

func TestPullZeroStretchSkipped(t *testing.T) {
	l := testLauncher()
	env := testEnv()
	v, pos, _, _ := newBallView(t, 0, 0, 10, 10)
	l.Attach(v)

	l.Pull(v, 220, 480, env)

	if pos.X != 220 || pos.Y != 480 {
		t.Errorf("zero-stretch pull moved the ball to (%v, %v)", pos.X, pos.Y)
	}
	if len(l.Preview()) != 0 {
		t.Error("zero-stretch pull must not compute a preview")
	}
}

func TestReleaseLaunchesOppositePull(t *testing.T) {
	l := testLauncher()
	env := testEnv()
	v, _, vel, ball := newBallView(t, 0, 0, 10, 10)
	l.Attach(v)

	// Drag down-left by (-30, +40): stretch 50, speed 300
	l.Pull(v, 190, 520, env)
	l.Release(v)

	if ball.Loaded {
		t.Error("released ball must not be loaded")
	}
	if l.Holding() {
		t.Error("launcher must detach on release")
	}
	if len(l.Preview()) != 0 {
		t.Error("preview must be discarded on release")
	}

	// Launch velocity is the pull vector mirrored and scaled: -(dx,dy)*6
	if math.Abs(float64(vel.X-180)) > 0.01 {
		t.Errorf("vx = %v, want 180", vel.X)
	}
	if math.Abs(float64(vel.Y+240)) > 0.01 {
		t.Errorf("vy = %v, want -240", vel.Y)
	}
}

func TestReleaseSpeedCap(t *testing.T) {
	l := testLauncher()
	env := testEnv()
	v, _, vel, _ := newBallView(t, 0, 0, 10, 10)
	l.Attach(v)

	// Full stretch: 150*6 = 900 is capped at 800
	l.Pull(v, 220, 480+300, env)
	l.Release(v)

	speed := velocityMagnitude(vel.X, vel.Y)
	if math.Abs(float64(speed-800)) > 0.01 {
		t.Errorf("speed = %v, want capped at 800", speed)
	}
}

func TestReleaseWithoutPullDropsBall(t *testing.T) {
	l := testLauncher()
	v, _, vel, ball := newBallView(t, 0, 0, 10, 10)
	l.Attach(v)

	l.Release(v)

	if ball.Loaded {
		t.Error("ball must be released")
	}
	if vel.X != 0 || vel.Y != 0 {
		t.Errorf("vel = (%v, %v), want zero drop", vel.X, vel.Y)
	}
}

func TestPreviewStaysInPlayfield(t *testing.T) {
	l := testLauncher()
	env := testEnv()
	v, _, _, _ := newBallView(t, 0, 0, 10, 10)
	l.Attach(v)

	l.Pull(v, 220-100, 480+100, env)

	points := l.Preview()
	if len(points) == 0 {
		t.Fatal("expected preview points")
	}
	for i, p := range points {
		if p.X < env.WallLeft || p.X > env.WallRight {
			t.Errorf("point %d x=%v outside walls", i, p.X)
		}
		if p.Y >= env.GroundY {
			t.Errorf("point %d y=%v at or below ground", i, p.Y)
		}
	}

	// The ghost rises before gravity pulls it back down
	if !(points[0].Y < 580) {
		t.Errorf("first preview point y=%v, want above the pulled ball", points[0].Y)
	}
}
