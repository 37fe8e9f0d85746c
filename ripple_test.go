package cursorfx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestRippleEffect(t *testing.T) *RippleEffect {
	t.Helper()
	e := NewRippleEffect(1)
	e.reconfigure(NewConfigState(DefaultConfig()))
	return e
}

func TestRipple_RadiusGrowsLinearly(t *testing.T) {
	r := Ripple{WaveSpeed: 120, Lifetime: 2, Amplitude: 1}

	r.Age = 0.5
	if got := r.CurrentRadius(); got != 60 {
		t.Errorf("radius at 0.5s = %f, want 60", got)
	}
	r.Age = 1
	if got := r.CurrentRadius(); got != 120 {
		t.Errorf("radius at 1s = %f, want 120", got)
	}
}

func TestRipple_AmplitudeDecaysToZeroAtExpiry(t *testing.T) {
	r := Ripple{Lifetime: 2, Amplitude: 0.8}

	if got := r.CurrentAmplitude(); got != 0.8 {
		t.Errorf("amplitude at age 0 = %f, want 0.8", got)
	}

	r.Age = 1
	if math.Abs(float64(r.CurrentAmplitude()-0.4)) > 1e-6 {
		t.Errorf("amplitude at half-life = %f, want 0.4", r.CurrentAmplitude())
	}

	r.Age = 2
	if got := r.CurrentAmplitude(); got != 0 {
		t.Errorf("amplitude at expiry = %f, want 0", got)
	}

	// Past expiry it must not go negative.
	r.Age = 3
	if got := r.CurrentAmplitude(); got != 0 {
		t.Errorf("amplitude past expiry = %f, want 0", got)
	}
}

func TestRippleEffect_SpawnSamplesWithinRanges(t *testing.T) {
	e := newTestRippleEffect(t)
	params := e.cfg.Click

	if !e.SpawnAt(mgl32.Vec2{100, 100}, params) {
		t.Fatal("spawn failed")
	}

	e.pool.ForEachActive(func(i int, r *Ripple) {
		if r.Lifetime < params.Lifetime.Min || r.Lifetime > params.Lifetime.Max {
			t.Errorf("lifetime %f outside configured range", r.Lifetime)
		}
		if r.Amplitude < params.Amplitude.Min || r.Amplitude > params.Amplitude.Max {
			t.Errorf("amplitude %f outside configured range", r.Amplitude)
		}
		if r.Pos != (mgl32.Vec2{100, 100}) {
			t.Errorf("spawn position %v, want (100, 100)", r.Pos)
		}
	})
}

func TestRippleEffect_HonorsSoftMaximum(t *testing.T) {
	e := newTestRippleEffect(t)
	e.cfg.MaxRipples = 3

	spawned := 0
	for k := 0; k < 10; k++ {
		if e.SpawnAt(mgl32.Vec2{}, e.cfg.Move) {
			spawned++
		}
	}
	if spawned != 3 {
		t.Errorf("spawned %d, want the soft maximum 3", spawned)
	}
	if e.pool.Active() != 3 {
		t.Errorf("active = %d, want 3", e.pool.Active())
	}
}

func TestRippleEffect_DisabledSpawnsNothing(t *testing.T) {
	e := newTestRippleEffect(t)
	e.cfg.Enabled = false

	if e.SpawnAt(mgl32.Vec2{}, e.cfg.Click) {
		t.Error("disabled effect should not spawn")
	}
}

func TestRippleAgeSystem_ReleasesExpired(t *testing.T) {
	e := newTestRippleEffect(t)
	e.SpawnAt(mgl32.Vec2{}, e.cfg.Click)
	e.SpawnAt(mgl32.Vec2{}, e.cfg.Click)

	// Force one ripple to the brink of expiry.
	var first = true
	e.pool.ForEachActive(func(i int, r *Ripple) {
		if first {
			r.Age = r.Lifetime - 0.001
			first = false
		}
	})

	rippleAgeSystem(&Time{Dt: 0.016}, e)

	if e.pool.Active() != 1 {
		t.Errorf("expected one ripple released, active = %d", e.pool.Active())
	}
}

func TestRippleSpawnSystem_MoveAndClick(t *testing.T) {
	cfgState := NewConfigState(DefaultConfig())
	e := NewRippleEffect(1)

	ptr := &Pointer{Pos: mgl32.Vec2{200, 200}, Delta: mgl32.Vec2{305, 0}}
	ptr.JustPressed[PointerButtonLeft] = true

	rippleSpawnSystem(ptr, cfgState, e)

	// 305px at 0.02 spawns/px gives 6 movement ripples, plus one click.
	if e.pool.Active() != 7 {
		t.Errorf("active = %d, want 7", e.pool.Active())
	}
}
