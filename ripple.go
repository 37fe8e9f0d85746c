package cursorfx

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Ripple is one expanding water ring. Position is fixed at spawn; radius and
// amplitude are derived from age every frame, never stored, so the pool
// record stays consistent with no per-frame bookkeeping.
type Ripple struct {
	Pos        mgl32.Vec2
	Age        float32
	Lifetime   float32
	Amplitude  float32 // initial amplitude at age 0
	WaveSpeed  float32
	Wavelength float32
	Damping    float32
}

// CurrentRadius grows linearly with age at WaveSpeed.
func (r *Ripple) CurrentRadius() float32 {
	return r.Age * r.WaveSpeed
}

// CurrentAmplitude decays linearly from the initial amplitude to zero
// exactly at expiry.
func (r *Ripple) CurrentAmplitude() float32 {
	if r.Lifetime <= 0 {
		return 0
	}
	a := r.Amplitude * (1 - r.Age/r.Lifetime)
	if a < 0 {
		a = 0
	}
	return a
}

type RippleEffect struct {
	pool        *Pool[Ripple]
	moveTrigger DistanceTrigger
	rng         *rand.Rand

	cfg            RippleConfig
	lastGeneration uint64
}

func NewRippleEffect(seed int64) *RippleEffect {
	return &RippleEffect{
		pool: NewPool[Ripple](ripplePoolCap),
		rng:  rand.New(rand.NewSource(seedOrNow(seed))),
	}
}

func (e *RippleEffect) Pool() *Pool[Ripple] { return e.pool }

func (e *RippleEffect) reconfigure(cfg *ConfigState) {
	if gen := cfg.Generation(); gen != e.lastGeneration {
		e.cfg = cfg.Current().Ripple
		e.moveTrigger.Rate = e.cfg.MoveRate
		e.lastGeneration = gen
	}
}

// SpawnAt places a ripple at pos with parameters sampled from the trigger's
// ranges. Obeys the configured soft maximum; on pool exhaustion the spawn is
// dropped silently.
func (e *RippleEffect) SpawnAt(pos mgl32.Vec2, params RippleParams) bool {
	if !e.cfg.Enabled || e.pool.Active() >= e.cfg.MaxRipples {
		return false
	}
	i, ok := e.pool.TryAcquire()
	if !ok {
		return false
	}
	*e.pool.At(i) = Ripple{
		Pos:        pos,
		Lifetime:   params.Lifetime.Sample(e.rng),
		Amplitude:  params.Amplitude.Sample(e.rng),
		WaveSpeed:  params.WaveSpeed.Sample(e.rng),
		Wavelength: params.Wavelength.Sample(e.rng),
		Damping:    params.Damping.Sample(e.rng),
	}
	return true
}

type RippleModule struct {
	Seed int64
}

func (mod RippleModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewRippleEffect(mod.Seed))
	app.UseSystem(
		System(rippleSpawnSystem).InStage(Update),
	).UseSystem(
		System(rippleAgeSystem).InStage(Update),
	)
}

func rippleSpawnSystem(ptr *Pointer, cfg *ConfigState, e *RippleEffect) {
	e.reconfigure(cfg)
	if !e.cfg.Enabled {
		return
	}

	// Continuous movement ripples: spawn frequency proportional to pointer
	// speed via the distance accumulator, independent of frame rate.
	for n := e.moveTrigger.Add(ptr.Travel()); n > 0; n-- {
		e.SpawnAt(ptr.Pos, e.cfg.Move)
	}

	// Click ripples use the stronger, longer-lived parameter set.
	if ptr.JustPressed[PointerButtonLeft] {
		e.SpawnAt(ptr.Pos, e.cfg.Click)
	}
}

func rippleAgeSystem(tm *Time, e *RippleEffect) {
	dt := tm.Dt
	if dt <= 0 {
		return
	}
	e.pool.ForEachActive(func(i int, r *Ripple) {
		r.Age += dt
		if r.Age >= r.Lifetime {
			e.pool.Release(i)
		}
	})
}
