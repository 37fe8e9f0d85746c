package cursorfx

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Hard pool capacities. These bound memory; the configured per-effect
// maxima are soft limits enforced at spawn time and may be lower.
const (
	ripplePoolCap = 512
	petalPoolCap  = 1024
	laserPoolCap  = 768
)

const (
	WindModeFixed  = "fixed"
	WindModeRandom = "random"
)

type Config struct {
	Seed   int64        `yaml:"seed"`
	Window WindowConfig `yaml:"window"`
	Wind   WindConfig   `yaml:"wind"`
	Cursor CursorConfig `yaml:"cursor"`
	Ripple RippleConfig `yaml:"ripple"`
	Petal  PetalConfig  `yaml:"petal"`
	Laser  LaserConfig  `yaml:"laser"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type WindConfig struct {
	Enabled            bool    `yaml:"enabled"`
	Strength           float32 `yaml:"strength"`
	Interval           float32 `yaml:"interval"`
	TransitionDuration float32 `yaml:"transition_duration"`
	Ease               string  `yaml:"ease"`
	Mode               string  `yaml:"mode"` // fixed | random
	DirectionDeg       float32 `yaml:"direction_deg"`
	DirectionMinDeg    float32 `yaml:"direction_min_deg"`
	DirectionMaxDeg    float32 `yaml:"direction_max_deg"`

	easeMode EaseMode
}

type CursorConfig struct {
	Mode     string  `yaml:"mode"` // none | attract | repel
	Radius   float32 `yaml:"radius"`
	Strength float32 `yaml:"strength"`

	fieldMode CursorFieldMode
}

// RippleParams is one trigger's sampling ranges. Click and continuous
// movement ripples use separate parameter sets.
type RippleParams struct {
	Amplitude  FloatRange `yaml:"amplitude"`
	Lifetime   FloatRange `yaml:"lifetime"`
	WaveSpeed  FloatRange `yaml:"wave_speed"`
	Wavelength FloatRange `yaml:"wavelength"`
	Damping    FloatRange `yaml:"damping"`
}

type RippleConfig struct {
	Enabled    bool         `yaml:"enabled"`
	MaxRipples int          `yaml:"max_ripples"`
	MoveRate   float32      `yaml:"move_rate"` // spawns per pixel of pointer travel
	Move       RippleParams `yaml:"move"`
	Click      RippleParams `yaml:"click"`
}

type PetalConfig struct {
	Enabled         bool       `yaml:"enabled"`
	MaxPetals       int        `yaml:"max_petals"`
	RefillPerSecond float32    `yaml:"refill_per_second"`
	Size            FloatRange `yaml:"size"`
	FallSpeed       FloatRange `yaml:"fall_speed"`
	SwayAmplitude   FloatRange `yaml:"sway_amplitude"`
	SwayFrequency   FloatRange `yaml:"sway_frequency"`
	SpinSpeed       FloatRange `yaml:"spin_speed"`
	Lifetime        FloatRange `yaml:"lifetime"`
	LifetimeJitter  float32    `yaml:"lifetime_jitter"`
	ColorVariants   int        `yaml:"color_variants"`
	SpritePath      string     `yaml:"sprite_path"`
	SpriteSize      int        `yaml:"sprite_size"`
}

type LaserConfig struct {
	Enabled                     bool       `yaml:"enabled"`
	MaxLasers                   int        `yaml:"max_lasers"`
	SpawnPerClick               int        `yaml:"spawn_per_click"`
	Speed                       FloatRange `yaml:"speed"`
	Length                      FloatRange `yaml:"length"`
	Lifetime                    FloatRange `yaml:"lifetime"`
	Hue                         FloatRange `yaml:"hue"`
	CollisionRadius             float32    `yaml:"collision_radius"`
	ExplosionLaserCount         int        `yaml:"explosion_laser_count"`
	ExplosionLifespanMultiplier float32    `yaml:"explosion_lifespan_multiplier"`
	MaxCollisionCount           int        `yaml:"max_collision_count"`
	ExplosionsCollide           bool       `yaml:"explosions_collide"`
}

// DefaultConfig parses the embedded defaults. The embedded file is part of
// the binary; failing to parse it is a build defect, not a runtime
// condition.
func DefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded defaults.yaml is invalid: %v", err))
	}
	cfg.Validate()
	return &cfg
}

// LoadConfig reads defaults and overlays the user file on top, if present.
// A missing file is not an error; the defaults apply.
func LoadConfig(path string) (*Config, []string, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultsYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded defaults.yaml is invalid: %v", err))
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	notes := cfg.Validate()
	return &cfg, notes, nil
}

// Validate clamps degenerate values in place and resolves enumerated modes.
// Out-of-range configuration is corrected, never rejected: the overlay keeps
// running with safe values. Returns a note per correction for logging.
func (c *Config) Validate() []string {
	var notes []string
	note := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 {
		c.Window.Width = 1280
		note("window.width clamped to %d", c.Window.Width)
	}
	if c.Window.Height <= 0 {
		c.Window.Height = 720
		note("window.height clamped to %d", c.Window.Height)
	}

	// Wind
	if c.Wind.Strength < 0 {
		c.Wind.Strength = 0
		note("wind.strength clamped to 0")
	}
	if c.Wind.Interval < 0.1 {
		c.Wind.Interval = 0.1
		note("wind.interval clamped to 0.1s")
	}
	if c.Wind.TransitionDuration < 0 {
		c.Wind.TransitionDuration = 0
		note("wind.transition_duration clamped to 0")
	}
	mode, err := ParseEaseMode(c.Wind.Ease)
	if err != nil {
		note("wind.ease: %v, using linear", err)
	}
	c.Wind.easeMode = mode
	switch c.Wind.Mode {
	case WindModeFixed, WindModeRandom:
	default:
		note("wind.mode %q unknown, using random", c.Wind.Mode)
		c.Wind.Mode = WindModeRandom
	}

	// Cursor field
	switch c.Cursor.Mode {
	case "attract":
		c.Cursor.fieldMode = CursorFieldAttract
	case "repel":
		c.Cursor.fieldMode = CursorFieldRepel
	case "none", "":
		c.Cursor.fieldMode = CursorFieldNone
	default:
		note("cursor.mode %q unknown, field disabled", c.Cursor.Mode)
		c.Cursor.fieldMode = CursorFieldNone
	}
	if c.Cursor.Radius < 0 {
		c.Cursor.Radius = 0
		note("cursor.radius clamped to 0")
	}

	// Ripples
	if c.Ripple.MaxRipples < 0 {
		c.Ripple.MaxRipples = 0
		note("ripple.max_ripples clamped to 0")
	}
	if c.Ripple.MaxRipples > ripplePoolCap {
		c.Ripple.MaxRipples = ripplePoolCap
		note("ripple.max_ripples clamped to pool capacity %d", ripplePoolCap)
	}
	if c.Ripple.MoveRate < 0 {
		c.Ripple.MoveRate = 0
		note("ripple.move_rate clamped to 0")
	}
	c.Ripple.Move = c.Ripple.Move.clampParams()
	c.Ripple.Click = c.Ripple.Click.clampParams()

	// Petals
	if c.Petal.MaxPetals < 0 {
		c.Petal.MaxPetals = 0
		note("petal.max_petals clamped to 0")
	}
	if c.Petal.MaxPetals > petalPoolCap {
		c.Petal.MaxPetals = petalPoolCap
		note("petal.max_petals clamped to pool capacity %d", petalPoolCap)
	}
	if c.Petal.RefillPerSecond < 0 {
		c.Petal.RefillPerSecond = 0
		note("petal.refill_per_second clamped to 0")
	}
	c.Petal.Size = c.Petal.Size.clamp(0.5)
	c.Petal.FallSpeed = c.Petal.FallSpeed.clamp(0)
	c.Petal.SwayAmplitude = c.Petal.SwayAmplitude.clamp(0)
	c.Petal.SwayFrequency = c.Petal.SwayFrequency.clamp(0)
	c.Petal.Lifetime = c.Petal.Lifetime.clamp(minLifetime)
	if c.Petal.LifetimeJitter < 0 {
		c.Petal.LifetimeJitter = 0
	}
	if c.Petal.LifetimeJitter > 0.9 {
		c.Petal.LifetimeJitter = 0.9
		note("petal.lifetime_jitter clamped to 0.9")
	}
	if c.Petal.ColorVariants < 1 {
		c.Petal.ColorVariants = 1
	}
	if c.Petal.SpriteSize <= 0 {
		c.Petal.SpriteSize = 64
	}

	// Lasers
	if c.Laser.MaxLasers < 0 {
		c.Laser.MaxLasers = 0
		note("laser.max_lasers clamped to 0")
	}
	if c.Laser.MaxLasers > laserPoolCap {
		c.Laser.MaxLasers = laserPoolCap
		note("laser.max_lasers clamped to pool capacity %d", laserPoolCap)
	}
	if c.Laser.SpawnPerClick < 0 {
		c.Laser.SpawnPerClick = 0
	}
	c.Laser.Speed = c.Laser.Speed.clamp(0)
	c.Laser.Length = c.Laser.Length.clamp(1)
	c.Laser.Lifetime = c.Laser.Lifetime.clamp(minLifetime)
	if c.Laser.CollisionRadius < 0 {
		c.Laser.CollisionRadius = 0
		note("laser.collision_radius clamped to 0")
	}
	if c.Laser.ExplosionLaserCount < 0 {
		c.Laser.ExplosionLaserCount = 0
	}
	if c.Laser.ExplosionLifespanMultiplier < 0.05 {
		c.Laser.ExplosionLifespanMultiplier = 0.05
		note("laser.explosion_lifespan_multiplier clamped to 0.05")
	}
	if c.Laser.MaxCollisionCount < 0 {
		c.Laser.MaxCollisionCount = 0
	}

	return notes
}

const minLifetime = 0.05

func (p RippleParams) clampParams() RippleParams {
	p.Amplitude = p.Amplitude.clamp(0)
	p.Lifetime = p.Lifetime.clamp(minLifetime)
	p.WaveSpeed = p.WaveSpeed.clamp(0)
	p.Wavelength = p.Wavelength.clamp(1e-3)
	p.Damping = p.Damping.clamp(0)
	return p
}

// ConfigState is the live configuration snapshot. Submitted snapshots are
// queued and swapped in between frames, never mid-update; consumers watch
// the generation counter and reconfigure when it changes.
type ConfigState struct {
	mu         sync.Mutex
	current    *Config
	pending    *Config
	generation uint64
}

func NewConfigState(cfg *Config) *ConfigState {
	return &ConfigState{current: cfg, generation: 1}
}

func (s *ConfigState) Current() *Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *ConfigState) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Submit queues a validated snapshot for the next frame boundary. The caller
// must not mutate cfg afterwards.
func (s *ConfigState) Submit(cfg *Config) {
	s.mu.Lock()
	s.pending = cfg
	s.mu.Unlock()
}

func (s *ConfigState) applyPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return false
	}
	s.current = s.pending
	s.pending = nil
	s.generation++
	return true
}

type ConfigModule struct {
	// Path of the user config file; empty runs on embedded defaults.
	Path string
	// Config overrides Path when set (tests, callers with their own loader).
	Config *Config
}

func (mod ConfigModule) Install(app *App, cmd *Commands) {
	cfg := mod.Config
	if cfg == nil {
		loaded, notes, err := LoadConfig(mod.Path)
		if err != nil {
			app.Logger().Errorf("config load failed: %v, using defaults", err)
			loaded = DefaultConfig()
			notes = nil
		}
		for _, n := range notes {
			app.Logger().Warnf("config: %s", n)
		}
		cfg = loaded
	}
	cmd.AddResources(NewConfigState(cfg))
	app.UseSystem(
		System(configSystem).InStage(Prelude),
	)
}

func configSystem(cfg *ConfigState) {
	cfg.applyPending()
}
