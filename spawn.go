package cursorfx

import (
	"math/rand"
	"time"
)

// FloatRange is a closed sampling interval configured per effect parameter.
type FloatRange struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// Sample draws uniformly from [Min, Max]. An inverted range is treated as
// its ordered counterpart so pathological configuration cannot produce
// out-of-interval values.
func (r FloatRange) Sample(rng *rand.Rand) float32 {
	lo, hi := r.Min, r.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + rng.Float32()*(hi-lo)
}

func (r FloatRange) clamp(minAllowed float32) FloatRange {
	if r.Min < minAllowed {
		r.Min = minAllowed
	}
	if r.Max < r.Min {
		r.Max = r.Min
	}
	return r
}

// jitter widens v by ±frac, e.g. frac 0.2 yields [0.8v, 1.2v]. Used to
// desynchronize visually identical entities.
func jitter(rng *rand.Rand, v, frac float32) float32 {
	if frac <= 0 {
		return v
	}
	return v * (1 + frac*(2*rng.Float32()-1))
}

// DistanceTrigger converts pointer travel into spawn counts. The fractional
// accumulator makes the long-run spawn frequency distance*rate regardless of
// how the travel is sliced into frames.
type DistanceTrigger struct {
	Rate float32 // spawns per unit of travel
	acc  float32
}

func (t *DistanceTrigger) Add(distance float32) int {
	if distance < 0 || t.Rate <= 0 {
		return 0
	}
	t.acc += distance * t.Rate
	n := int(t.acc)
	t.acc -= float32(n)
	return n
}

// RateTrigger yields spawns at a fixed frequency. Used by the petal
// replenisher to stream entities in at a steady rate rather than refilling
// the whole population in one frame.
type RateTrigger struct {
	PerSecond float32
	acc       float32
}

func (t *RateTrigger) Step(dt float32) int {
	if dt <= 0 || t.PerSecond <= 0 {
		return 0
	}
	t.acc += t.PerSecond * dt
	n := int(t.acc)
	t.acc -= float32(n)
	return n
}

func seedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
