package systems

import (
	"math"

	"github.com/pthm-cable/rubble/components"
	"github.com/pthm-cable/rubble/config"
)

// Launcher manages the single projectile being aimed. It never owns the
// ball: the driver passes a fresh view on every call and keeps the entity
// in the world's body set.
type Launcher struct {
	AnchorX float32
	AnchorY float32

	MaxStretch float32
	SpeedScale float32
	SpeedCap   float32

	previewSteps int
	previewDT    float32

	held    bool
	pulled  bool
	pullX   float32 // clamped pull vector, anchor -> held ball
	pullY   float32
	preview []components.Position
}

// NewLauncher builds a launcher from the loaded configuration.
func NewLauncher(cfg *config.Config) *Launcher {
	return &Launcher{
		AnchorX:      float32(cfg.Launcher.AnchorX),
		AnchorY:      float32(cfg.Launcher.AnchorY),
		MaxStretch:   float32(cfg.Launcher.MaxStretch),
		SpeedScale:   float32(cfg.Launcher.SpeedScale),
		SpeedCap:     float32(cfg.Launcher.SpeedCap),
		previewSteps: cfg.Launcher.PreviewSteps,
		previewDT:    float32(cfg.Launcher.PreviewDT),
	}
}

// Holding reports whether a ball is currently attached.
func (l *Launcher) Holding() bool {
	return l.held
}

// Preview returns the current trajectory preview points. The slice is
// recomputed on every pull and discarded on release; callers must not
// retain it.
func (l *Launcher) Preview() []components.Position {
	return l.preview
}

// Attach snaps a projectile to the rest anchor and marks it loaded.
func (l *Launcher) Attach(b BallView) {
	b.Pos.X = l.AnchorX
	b.Pos.Y = l.AnchorY
	b.Vel.X = 0
	b.Vel.Y = 0
	b.Ball.Loaded = true
	l.held = true
	l.pulled = false
	l.preview = nil
}

// Pull drags the held ball toward the pointer, clamping the stretch vector
// to the maximum length by scaling. A zero-length pull leaves the previous
// state untouched.
func (l *Launcher) Pull(b BallView, pointerX, pointerY float32, env Env) {
	if !l.held {
		return
	}

	dx := pointerX - l.AnchorX
	dy := pointerY - l.AnchorY
	stretch := velocityMagnitude(dx, dy)
	if stretch == 0 {
		return
	}
	if stretch > l.MaxStretch {
		scale := l.MaxStretch / stretch
		dx *= scale
		dy *= scale
		stretch = l.MaxStretch
	}

	b.Pos.X = l.AnchorX + dx
	b.Pos.Y = l.AnchorY + dy
	l.pullX = dx
	l.pullY = dy
	l.pulled = true

	l.computePreview(b, env)
}

// Release launches the held ball opposite the pull direction and detaches
// it. A release without a pull simply drops the ball in place.
func (l *Launcher) Release(b BallView) {
	if !l.held {
		return
	}
	l.held = false
	l.preview = nil

	if !l.pulled {
		b.Ball.Loaded = false
		return
	}
	l.pulled = false

	speed, angleDeg := l.launchParams()
	LaunchBall(b, speed, angleDeg)
}

// launchParams derives the launch speed and angle from the stored pull.
// The angle is in mathematical orientation: the screen-space y component is
// negated, and the ball flies away from the pull.
func (l *Launcher) launchParams() (speed, angleDeg float32) {
	stretch := velocityMagnitude(l.pullX, l.pullY)
	speed = minFloat(stretch*l.SpeedScale, l.SpeedCap)
	angleDeg = degrees(float32(math.Atan2(float64(l.pullY), float64(-l.pullX))))
	return speed, angleDeg
}

// computePreview forward-integrates a ghost point under gravity alone, with
// no collision or friction, stopping early once it leaves the playfield or
// reaches the ground.
func (l *Launcher) computePreview(b BallView, env Env) {
	speed, angleDeg := l.launchParams()

	rad := float64(radians(angleDeg))
	vx := speed * float32(math.Cos(rad))
	vy := -speed * float32(math.Sin(rad))

	x := b.Pos.X
	y := b.Pos.Y

	l.preview = l.preview[:0]
	for i := 0; i < l.previewSteps; i++ {
		vy += env.Gravity * l.previewDT
		x += vx * l.previewDT
		y += vy * l.previewDT
		if x < env.WallLeft || x > env.WallRight || y < 0 || y >= env.GroundY {
			break
		}
		l.preview = append(l.preview, components.Position{X: x, Y: y})
	}
}
