package cursorfx

import (
	"math"
	"testing"
)

func TestEaseMode_Endpoints(t *testing.T) {
	modes := []EaseMode{
		EaseLinear, EaseInQuad, EaseOutQuad, EaseSmoothstep,
		EaseInOutCubic, EaseExpo, EaseLog,
	}
	for _, m := range modes {
		if got := m.Apply(0); got != 0 {
			t.Errorf("%s.Apply(0) = %f, want 0", m, got)
		}
		if got := m.Apply(1); got != 1 {
			t.Errorf("%s.Apply(1) = %f, want 1", m, got)
		}
		if got := m.Apply(-0.5); got != 0 {
			t.Errorf("%s below range = %f, want 0", m, got)
		}
		if got := m.Apply(1.5); got != 1 {
			t.Errorf("%s above range = %f, want 1", m, got)
		}
	}
}

func TestEaseInstant_JumpsImmediately(t *testing.T) {
	for _, tt := range []float32{0, 0.001, 0.5, 1} {
		if got := EaseInstant.Apply(tt); got != 1 {
			t.Errorf("instant.Apply(%f) = %f, want 1", tt, got)
		}
	}
}

func TestEaseMode_Midpoints(t *testing.T) {
	cases := []struct {
		mode EaseMode
		t    float32
		want float32
	}{
		{EaseLinear, 0.5, 0.5},
		{EaseInQuad, 0.5, 0.25},
		{EaseOutQuad, 0.5, 0.75},
		{EaseSmoothstep, 0.5, 0.5},
		{EaseInOutCubic, 0.5, 0.5},
	}
	for _, c := range cases {
		got := c.mode.Apply(c.t)
		if math.Abs(float64(got-c.want)) > 1e-6 {
			t.Errorf("%s.Apply(%f) = %f, want %f", c.mode, c.t, got, c.want)
		}
	}
}

func TestEaseMode_Monotonic(t *testing.T) {
	modes := []EaseMode{
		EaseLinear, EaseInQuad, EaseOutQuad, EaseSmoothstep,
		EaseInOutCubic, EaseExpo, EaseLog,
	}
	for _, m := range modes {
		prev := float32(-1)
		for i := 0; i <= 100; i++ {
			v := m.Apply(float32(i) / 100)
			if v < prev {
				t.Errorf("%s not monotonic at t=%f: %f < %f", m, float32(i)/100, v, prev)
				break
			}
			prev = v
		}
	}
}

func TestParseEaseMode(t *testing.T) {
	for m := EaseInstant; m <= EaseLog; m++ {
		parsed, err := ParseEaseMode(m.String())
		if err != nil {
			t.Errorf("round trip of %q failed: %v", m, err)
		}
		if parsed != m {
			t.Errorf("round trip of %q gave %q", m, parsed)
		}
	}

	fallback, err := ParseEaseMode("bogus")
	if err == nil {
		t.Error("expected error for unknown mode")
	}
	if fallback != EaseLinear {
		t.Errorf("unknown mode should fall back to linear, got %q", fallback)
	}
}
