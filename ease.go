package cursorfx

import (
	"fmt"
	"math"
)

// EaseMode selects the curve used for wind direction transitions.
// Every mode maps [0,1] to [0,1].
type EaseMode int

const (
	EaseInstant EaseMode = iota
	EaseLinear
	EaseInQuad
	EaseOutQuad
	EaseSmoothstep
	EaseInOutCubic
	EaseExpo
	EaseLog
)

func (m EaseMode) Apply(t float32) float32 {
	if t <= 0 {
		if m == EaseInstant {
			return 1
		}
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch m {
	case EaseInstant:
		return 1
	case EaseLinear:
		return t
	case EaseInQuad:
		return t * t
	case EaseOutQuad:
		return t * (2 - t)
	case EaseSmoothstep:
		return t * t * (3 - 2*t)
	case EaseInOutCubic:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	case EaseExpo:
		return 1 - float32(math.Pow(2, float64(-10*t)))
	case EaseLog:
		return float32(math.Log10(float64(1 + 9*t)))
	}
	return t
}

func (m EaseMode) String() string {
	switch m {
	case EaseInstant:
		return "instant"
	case EaseLinear:
		return "linear"
	case EaseInQuad:
		return "quad-in"
	case EaseOutQuad:
		return "quad-out"
	case EaseSmoothstep:
		return "smoothstep"
	case EaseInOutCubic:
		return "cubic-in-out"
	case EaseExpo:
		return "expo"
	case EaseLog:
		return "log"
	}
	return "linear"
}

func ParseEaseMode(s string) (EaseMode, error) {
	for m := EaseInstant; m <= EaseLog; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return EaseLinear, fmt.Errorf("unknown ease mode %q", s)
}
