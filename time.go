package cursorfx

import (
	"time"
)

// Time carries the single per-frame delta sourced once at frame start.
// Every system in the frame sees the same Dt and Total.
type Time struct {
	Now   time.Time
	Dt    float32 // seconds
	Total float32 // seconds since app start
}

type TimeModule struct {
	// MaxDt clamps the step after stalls (window drags, suspends) so
	// entities don't teleport. Zero means the 250ms default.
	MaxDt float32
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	maxDt := mod.MaxDt
	if maxDt <= 0 {
		maxDt = 0.25
	}
	cmd.AddResources(&Time{Now: time.Now()})
	cmd.AddResources(&timeLimits{maxDt: maxDt})
	app.UseSystem(
		System(timeSystem).InStage(Prelude),
	)
}

type timeLimits struct {
	maxDt float32
}

func timeSystem(tm *Time, limits *timeLimits) {
	now := time.Now()
	dt := float32(now.Sub(tm.Now).Seconds())
	if dt < 0 {
		dt = 0
	}
	if dt > limits.maxDt {
		dt = limits.maxDt
	}
	tm.Now = now
	tm.Dt = dt
	tm.Total += dt
}
