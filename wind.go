package cursorfx

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// minTransitionDuration guards degenerate configuration: a zero or negative
// transition duration behaves like an instant jump instead of dividing by
// zero.
const minTransitionDuration = 1e-4

type windPhase int

const (
	windSettled windPhase = iota
	windTransitioning
)

// Wind is the global directional field. On a periodic timer it picks a new
// target direction and eases the reported direction toward it; the phase
// machine is Settled until a retarget and Transitioning until progress
// reaches 1. State is mutated once per frame by Step and read-only to all
// entities within that frame.
type Wind struct {
	Enabled  bool
	Strength float32

	Interval           float32 // seconds between retargets
	TransitionDuration float32 // seconds from start to target
	Ease               EaseMode

	// Fixed targets always retarget to DirectionRadFixed; otherwise targets
	// are sampled uniformly from [DirectionRadMin, DirectionRadMax].
	Fixed           bool
	DirectionFixed  float32 // radians
	DirectionMin    float32 // radians
	DirectionMax    float32 // radians

	phase    windPhase
	current  float32
	start    float32
	target   float32
	progress float32
	timer    float32

	rng *rand.Rand
}

func NewWind(cfg WindConfig, rng *rand.Rand) *Wind {
	w := &Wind{rng: rng}
	w.Configure(cfg)
	w.current = w.pickTarget()
	w.target = w.current
	return w
}

// Configure applies a validated config snapshot. Transition state survives a
// reconfigure; only the parameters change.
func (w *Wind) Configure(cfg WindConfig) {
	w.Enabled = cfg.Enabled
	w.Strength = cfg.Strength
	w.Interval = cfg.Interval
	w.TransitionDuration = cfg.TransitionDuration
	w.Ease = cfg.easeMode
	w.Fixed = cfg.Mode == WindModeFixed
	w.DirectionFixed = degToRad(cfg.DirectionDeg)
	w.DirectionMin = degToRad(cfg.DirectionMinDeg)
	w.DirectionMax = degToRad(cfg.DirectionMaxDeg)
}

func (w *Wind) pickTarget() float32 {
	if w.Fixed {
		return w.DirectionFixed
	}
	lo, hi := w.DirectionMin, w.DirectionMax
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + w.rng.Float32()*(hi-lo)
}

// Retarget starts a new transition from the currently reported direction.
func (w *Wind) Retarget() {
	w.start = w.current
	w.target = w.pickTarget()
	w.progress = 0
	w.phase = windTransitioning
}

func (w *Wind) Step(dt float32) {
	if !w.Enabled {
		return
	}

	w.timer += dt
	if w.Interval > 0 && w.timer >= w.Interval {
		w.timer -= w.Interval
		w.Retarget()
	}

	if w.phase != windTransitioning {
		return
	}

	duration := w.TransitionDuration
	if duration < minTransitionDuration {
		duration = minTransitionDuration
	}
	w.progress += dt / duration
	if w.progress >= 1 {
		w.progress = 1
	}

	eased := w.Ease.Apply(w.progress)
	w.current = w.start + (w.target-w.start)*eased

	if w.progress >= 1 {
		w.current = w.target
		w.phase = windSettled
	}
}

// DirectionRad is the reported direction for the current frame.
func (w *Wind) DirectionRad() float32 { return w.current }

// Force is the per-step velocity contribution for wind-affected entities.
func (w *Wind) Force() mgl32.Vec2 {
	if !w.Enabled {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		w.Strength * float32(math.Cos(float64(w.current))),
		w.Strength * float32(math.Sin(float64(w.current))),
	}
}

func degToRad(deg float32) float32 {
	return deg * float32(math.Pi) / 180
}

// Fields bundles the per-frame environmental field state. Wind is stepped
// once per frame, before any entity reads it; entities treat both fields as
// read-only for the rest of the frame.
type Fields struct {
	Wind   *Wind
	Cursor *CursorField

	lastGeneration uint64
}

type FieldsModule struct {
	Seed int64
}

func (mod FieldsModule) Install(app *App, cmd *Commands) {
	rng := rand.New(rand.NewSource(seedOrNow(mod.Seed)))
	cmd.AddResources(&Fields{
		Wind:   NewWind(WindConfig{}, rng),
		Cursor: &CursorField{},
	})
	app.UseSystem(
		System(fieldsSystem).InStage(PreUpdate),
	)
}

func fieldsSystem(tm *Time, cfg *ConfigState, fields *Fields) {
	if gen := cfg.Generation(); gen != fields.lastGeneration {
		snapshot := cfg.Current()
		fields.Wind.Configure(snapshot.Wind)
		fields.Cursor.Configure(snapshot.Cursor)
		fields.lastGeneration = gen
	}
	fields.Wind.Step(tm.Dt)
}
