package cursorfx

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Laser is one bouncing beam. CollisionCount is the chain depth of its
// ancestry; entities at the configured cap are exempt from further
// collision detection, which bounds the explosion chain.
type Laser struct {
	Pos mgl32.Vec2
	Vel mgl32.Vec2

	Length float32
	Hue    float32

	Age      float32
	Lifetime float32

	CollisionCount int
	FromExplosion  bool
}

// Heading is the flight direction in radians, consumed by the renderer to
// orient the beam quad.
func (l *Laser) Heading() float32 {
	return float32(math.Atan2(float64(l.Vel.Y()), float64(l.Vel.X())))
}

type collisionEvent struct {
	pos   mgl32.Vec2
	depth int
}

type LaserEffect struct {
	pool *Pool[Laser]
	grid *spatialGrid2D
	rng  *rand.Rand

	cfg            LaserConfig
	lastGeneration uint64

	// scratch, reused across frames
	events []collisionEvent
	pairs  [][2]int
}

func NewLaserEffect(seed int64) *LaserEffect {
	return &LaserEffect{
		pool: NewPool[Laser](laserPoolCap),
		grid: newSpatialGrid2D(32),
		rng:  rand.New(rand.NewSource(seedOrNow(seed))),
	}
}

func (e *LaserEffect) Pool() *Pool[Laser] { return e.pool }

func (e *LaserEffect) reconfigure(cfg *ConfigState) {
	if gen := cfg.Generation(); gen != e.lastGeneration {
		e.cfg = cfg.Current().Laser
		e.lastGeneration = gen
	}
}

func (e *LaserEffect) spawn(pos mgl32.Vec2, angle float32, lifetime float32, depth int, fromExplosion bool) bool {
	if !e.cfg.Enabled || e.pool.Active() >= e.cfg.MaxLasers {
		return false
	}
	i, ok := e.pool.TryAcquire()
	if !ok {
		return false
	}
	speed := e.cfg.Speed.Sample(e.rng)
	*e.pool.At(i) = Laser{
		Pos: pos,
		Vel: mgl32.Vec2{
			speed * float32(math.Cos(float64(angle))),
			speed * float32(math.Sin(float64(angle))),
		},
		Length:         e.cfg.Length.Sample(e.rng),
		Hue:            e.cfg.Hue.Sample(e.rng),
		Lifetime:       lifetime,
		CollisionCount: depth,
		FromExplosion:  fromExplosion,
	}
	return true
}

// SpawnBurst fires the configured number of lasers from pos in random
// directions. Used for the button-press trigger.
func (e *LaserEffect) SpawnBurst(pos mgl32.Vec2) {
	for k := 0; k < e.cfg.SpawnPerClick; k++ {
		angle := e.rng.Float32() * 2 * float32(math.Pi)
		e.spawn(pos, angle, e.cfg.Lifetime.Sample(e.rng), 0, false)
	}
}

type LaserModule struct {
	Seed int64
}

func (mod LaserModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewLaserEffect(mod.Seed))
	app.UseSystem(
		System(laserSpawnSystem).InStage(Update),
	).UseSystem(
		System(laserUpdateSystem).InStage(Update),
	).UseSystem(
		System(laserCollisionSystem).InStage(PostUpdate),
	)
}

func laserSpawnSystem(ptr *Pointer, cfg *ConfigState, e *LaserEffect) {
	e.reconfigure(cfg)
	if !e.cfg.Enabled {
		return
	}
	if ptr.JustPressed[PointerButtonLeft] {
		e.SpawnBurst(ptr.Pos)
	}
}

func laserUpdateSystem(tm *Time, ws *WindowState, e *LaserEffect) {
	dt := tm.Dt
	if dt <= 0 {
		return
	}
	w := float32(ws.Width)
	h := float32(ws.Height)

	e.pool.ForEachActive(func(i int, l *Laser) {
		l.Age += dt
		if l.Age >= l.Lifetime {
			e.pool.Release(i)
			return
		}

		l.Pos = l.Pos.Add(l.Vel.Mul(dt))

		// Reflect off screen edges; bouncing is what brings beams back
		// together and makes collisions happen at all.
		if w > 0 {
			if l.Pos.X() < 0 {
				l.Pos = mgl32.Vec2{-l.Pos.X(), l.Pos.Y()}
				l.Vel = mgl32.Vec2{-l.Vel.X(), l.Vel.Y()}
			} else if l.Pos.X() > w {
				l.Pos = mgl32.Vec2{2*w - l.Pos.X(), l.Pos.Y()}
				l.Vel = mgl32.Vec2{-l.Vel.X(), l.Vel.Y()}
			}
		}
		if h > 0 {
			if l.Pos.Y() < 0 {
				l.Pos = mgl32.Vec2{l.Pos.X(), -l.Pos.Y()}
				l.Vel = mgl32.Vec2{l.Vel.X(), -l.Vel.Y()}
			} else if l.Pos.Y() > h {
				l.Pos = mgl32.Vec2{l.Pos.X(), 2*h - l.Pos.Y()}
				l.Vel = mgl32.Vec2{l.Vel.X(), -l.Vel.Y()}
			}
		}
	})
}

// collisionEligible filters detection participants: capped-depth entities
// are exempt, and explosion offspring only participate when configured.
func (e *LaserEffect) collisionEligible(l *Laser) bool {
	if l.CollisionCount >= e.cfg.MaxCollisionCount {
		return false
	}
	if l.FromExplosion && !e.cfg.ExplosionsCollide {
		return false
	}
	return true
}

// laserCollisionSystem runs after integration. Detection is two-phase:
// collect pairs from a stable snapshot, release the collided parents, then
// spawn offspring. Offspring never join this frame's detection, so a freed
// slot reused mid-pass cannot produce a spurious pair.
func laserCollisionSystem(e *LaserEffect) {
	radius := e.cfg.CollisionRadius
	if radius <= 0 || e.pool.Active() < 2 {
		return
	}

	e.grid.Reset(radius * 2)
	e.pool.ForEachActive(func(i int, l *Laser) {
		if e.collisionEligible(l) {
			e.grid.Insert(i, l.Pos)
		}
	})

	e.pairs = e.pairs[:0]
	e.pool.ForEachActive(func(i int, l *Laser) {
		if !e.collisionEligible(l) {
			return
		}
		e.grid.ForEachNear(l.Pos, radius, func(j int) {
			if j <= i {
				return
			}
			other := e.pool.At(j)
			if other.Pos.Sub(l.Pos).Len() <= radius {
				e.pairs = append(e.pairs, [2]int{i, j})
			}
		})
	})

	// Release parents first. A laser can appear in several pairs; the
	// liveness check makes sure each collision consumes both entities at
	// most once.
	e.events = e.events[:0]
	for _, pair := range e.pairs {
		i, j := pair[0], pair[1]
		if !e.pool.IsLive(i) || !e.pool.IsLive(j) {
			continue
		}
		a, b := e.pool.At(i), e.pool.At(j)
		depth := a.CollisionCount
		if b.CollisionCount > depth {
			depth = b.CollisionCount
		}
		e.events = append(e.events, collisionEvent{
			pos:   a.Pos.Add(b.Pos).Mul(0.5),
			depth: depth + 1,
		})
		e.pool.Release(i)
		e.pool.Release(j)
	}

	for _, ev := range e.events {
		e.explode(ev)
	}
}

// explode radiates the configured offspring from the collision point.
// Parents passed the eligibility filter, so ev.depth never exceeds the cap.
func (e *LaserEffect) explode(ev collisionEvent) {
	count := e.cfg.ExplosionLaserCount
	if count <= 0 {
		return
	}
	lifetime := e.cfg.Lifetime.Sample(e.rng) * e.cfg.ExplosionLifespanMultiplier
	offset := e.rng.Float32() * 2 * float32(math.Pi)
	for k := 0; k < count; k++ {
		angle := offset + 2*float32(math.Pi)*float32(k)/float32(count)
		e.spawn(ev.pos, angle, lifetime, ev.depth, true)
	}
}
