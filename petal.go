package cursorfx

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// offscreenMargin widens the cull bounds past the viewport so entities are
// not clipped the moment their center crosses an edge.
const offscreenMargin float32 = 64

// petalDrag bleeds off accumulated field drift per second so gusts don't
// build unbounded sideways velocity.
const petalDrag float32 = 0.8

// Petal is one falling petal: constant fall speed, sinusoidal sway, spin,
// plus accumulated drift from the wind and cursor fields.
type Petal struct {
	Pos   mgl32.Vec2
	Drift mgl32.Vec2 // field-accumulated velocity

	Rot  float32
	Spin float32
	Size float32

	SwayPhase float32
	SwayAmp   float32
	SwayFreq  float32
	FallSpeed float32

	Color int

	Age      float32
	Lifetime float32
}

type PetalEffect struct {
	pool   *Pool[Petal]
	refill RateTrigger
	rng    *rand.Rand

	cfg            PetalConfig
	lastGeneration uint64
}

func NewPetalEffect(seed int64) *PetalEffect {
	return &PetalEffect{
		pool: NewPool[Petal](petalPoolCap),
		rng:  rand.New(rand.NewSource(seedOrNow(seed))),
	}
}

func (e *PetalEffect) Pool() *Pool[Petal] { return e.pool }

func (e *PetalEffect) reconfigure(cfg *ConfigState) {
	if gen := cfg.Generation(); gen != e.lastGeneration {
		e.cfg = cfg.Current().Petal
		e.refill.PerSecond = e.cfg.RefillPerSecond
		e.lastGeneration = gen
	}
}

// Spawn places a petal just above the top edge at a random column. The
// lifetime jitter desynchronizes petals spawned in the same burst.
func (e *PetalEffect) Spawn(screenW float32) bool {
	if !e.cfg.Enabled || e.pool.Active() >= e.cfg.MaxPetals {
		return false
	}
	i, ok := e.pool.TryAcquire()
	if !ok {
		return false
	}
	x := -offscreenMargin + e.rng.Float32()*(screenW+2*offscreenMargin)
	*e.pool.At(i) = Petal{
		Pos:       mgl32.Vec2{x, -offscreenMargin / 2},
		Rot:       e.rng.Float32() * 2 * float32(math.Pi),
		Spin:      e.cfg.SpinSpeed.Sample(e.rng),
		Size:      e.cfg.Size.Sample(e.rng),
		SwayPhase: e.rng.Float32() * 2 * float32(math.Pi),
		SwayAmp:   e.cfg.SwayAmplitude.Sample(e.rng),
		SwayFreq:  e.cfg.SwayFrequency.Sample(e.rng),
		FallSpeed: e.cfg.FallSpeed.Sample(e.rng),
		Color:     e.rng.Intn(e.cfg.ColorVariants),
		Lifetime:  jitter(e.rng, e.cfg.Lifetime.Sample(e.rng), e.cfg.LifetimeJitter),
	}
	return true
}

type PetalModule struct {
	Seed int64
}

func (mod PetalModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewPetalEffect(mod.Seed))
	app.UseSystem(
		System(petalSpawnSystem).InStage(Update),
	).UseSystem(
		System(petalUpdateSystem).InStage(Update),
	)
}

// petalSpawnSystem streams petals in at the refill rate until the configured
// population is reached; slots freed by expired or off-screen petals are
// reused on the next refill tick.
func petalSpawnSystem(tm *Time, ws *WindowState, cfg *ConfigState, e *PetalEffect) {
	e.reconfigure(cfg)
	if !e.cfg.Enabled {
		return
	}
	n := e.refill.Step(tm.Dt)
	for ; n > 0; n-- {
		if !e.Spawn(float32(ws.Width)) {
			break
		}
	}
}

func petalUpdateSystem(tm *Time, ws *WindowState, ptr *Pointer, fields *Fields, e *PetalEffect) {
	dt := tm.Dt
	if dt <= 0 {
		return
	}

	wind := fields.Wind.Force()
	w := float32(ws.Width)
	h := float32(ws.Height)
	drag := 1 - petalDrag*dt
	if drag < 0 {
		drag = 0
	}

	e.pool.ForEachActive(func(i int, p *Petal) {
		p.Age += dt
		if p.Age >= p.Lifetime {
			e.pool.Release(i)
			return
		}

		p.Drift = p.Drift.Add(wind.Mul(dt))
		p.Drift = p.Drift.Add(fields.Cursor.ForceAt(p.Pos, ptr.Pos).Mul(dt))
		p.Drift = p.Drift.Mul(drag)

		sway := p.SwayAmp * float32(math.Sin(float64(tm.Total*p.SwayFreq*2*math.Pi+p.SwayPhase)))
		vel := mgl32.Vec2{sway, p.FallSpeed}.Add(p.Drift)

		p.Pos = p.Pos.Add(vel.Mul(dt))
		p.Rot += p.Spin * dt

		// Leaving the padded bounds frees the slot; the petal does not wrap
		// or bounce, the refill spawner replaces it from the top.
		if p.Pos.X() < -offscreenMargin || p.Pos.X() > w+offscreenMargin ||
			p.Pos.Y() > h+offscreenMargin || p.Pos.Y() < -4*offscreenMargin {
			e.pool.Release(i)
		}
	})
}
