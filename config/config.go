// Package config provides configuration loading and access for the sandbox.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	World     WorldConfig     `yaml:"world"`
	Launcher  LauncherConfig  `yaml:"launcher"`
	Balls     BallsConfig     `yaml:"balls"`
	Blocks    BlocksConfig    `yaml:"blocks"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds the global physics tunables.
type PhysicsConfig struct {
	DT         float64 `yaml:"dt"`         // fixed timestep in seconds
	Gravity    float64 `yaml:"gravity"`    // downward acceleration (px/s^2)
	Elasticity float64 `yaml:"elasticity"` // restitution coefficient
	Friction   float64 `yaml:"friction"`   // ground-contact velocity damping
}

// WorldConfig holds playfield geometry.
type WorldConfig struct {
	GroundOffset int `yaml:"ground_offset"` // ground line distance from the bottom edge
	WallLeft     int `yaml:"wall_left"`
	WallRight    int `yaml:"wall_right"` // 0 = screen width
}

// LauncherConfig holds the elastic launcher parameters.
type LauncherConfig struct {
	AnchorX      float64 `yaml:"anchor_x"`
	AnchorY      float64 `yaml:"anchor_y"`
	MaxStretch   float64 `yaml:"max_stretch"`
	SpeedScale   float64 `yaml:"speed_scale"` // launch speed per stretch unit
	SpeedCap     float64 `yaml:"speed_cap"`
	PreviewSteps int     `yaml:"preview_steps"`
	PreviewDT    float64 `yaml:"preview_dt"`
}

// BallsConfig holds projectile creation parameters.
type BallsConfig struct {
	Radius   float64 `yaml:"radius"`
	Mass     float64 `yaml:"mass"`
	PerRound int     `yaml:"per_round"`
}

// BlocksConfig holds block creation and block-block impact parameters.
type BlocksConfig struct {
	Mass              float64 `yaml:"mass"`
	Health            float64 `yaml:"health"`
	ImpactThreshold   float64 `yaml:"impact_threshold"`    // min relative speed for block-block damage
	ImpactDamageScale float64 `yaml:"impact_damage_scale"` // damage per unit relative speed
}

// ScoringConfig holds the point values reported by the collision engine.
type ScoringConfig struct {
	BallHit      int `yaml:"ball_hit"`
	BlockHit     int `yaml:"block_hit"`
	DestroyBonus int `yaml:"destroy_bonus"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	DT32      float32
	ScreenW32 float32
	ScreenH32 float32
	GroundY32 float32 // y coordinate of the ground line
	WallL32   float32
	WallR32   float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.GroundY32 = float32(c.Screen.Height - c.World.GroundOffset)
	c.Derived.WallL32 = float32(c.World.WallLeft)

	wallRight := c.World.WallRight
	if wallRight == 0 {
		wallRight = c.Screen.Width
	}
	c.Derived.WallR32 = float32(wallRight)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
