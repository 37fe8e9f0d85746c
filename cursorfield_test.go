package cursorfx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCursorField_QuadraticFalloff(t *testing.T) {
	f := &CursorField{Mode: CursorFieldAttract, Radius: 100, Strength: 8}

	// At half the radius the falloff factor is (1 - 0.5)^2 = 0.25.
	force := f.ForceAt(mgl32.Vec2{50, 0}, mgl32.Vec2{0, 0})
	want := 8 * 0.25
	if math.Abs(float64(force.Len())-want) > 1e-4 {
		t.Errorf("force magnitude at d=R/2 = %f, want %f", force.Len(), want)
	}
}

func TestCursorField_AttractPointsTowardCursor(t *testing.T) {
	f := &CursorField{Mode: CursorFieldAttract, Radius: 100, Strength: 5}
	force := f.ForceAt(mgl32.Vec2{50, 0}, mgl32.Vec2{0, 0})
	if force.X() >= 0 {
		t.Errorf("attract force should point toward the cursor, got %v", force)
	}
}

func TestCursorField_RepelPointsAway(t *testing.T) {
	f := &CursorField{Mode: CursorFieldRepel, Radius: 100, Strength: 5}
	force := f.ForceAt(mgl32.Vec2{50, 0}, mgl32.Vec2{0, 0})
	if force.X() <= 0 {
		t.Errorf("repel force should point away from the cursor, got %v", force)
	}
}

func TestCursorField_ZeroOutsideRadius(t *testing.T) {
	f := &CursorField{Mode: CursorFieldRepel, Radius: 100, Strength: 5}

	for _, d := range []float32{100, 101, 5000} {
		force := f.ForceAt(mgl32.Vec2{d, 0}, mgl32.Vec2{0, 0})
		if force.X() != 0 || force.Y() != 0 {
			t.Errorf("force at d=%f should be zero, got %v", d, force)
		}
	}
}

func TestCursorField_ZeroAtCursor(t *testing.T) {
	f := &CursorField{Mode: CursorFieldAttract, Radius: 100, Strength: 5}
	force := f.ForceAt(mgl32.Vec2{10, 10}, mgl32.Vec2{10, 10})
	if force.X() != 0 || force.Y() != 0 {
		t.Errorf("force at the cursor position should be zero, got %v", force)
	}
}

func TestCursorField_DisabledModes(t *testing.T) {
	none := &CursorField{Mode: CursorFieldNone, Radius: 100, Strength: 5}
	if f := none.ForceAt(mgl32.Vec2{10, 0}, mgl32.Vec2{0, 0}); f.Len() != 0 {
		t.Errorf("mode none should produce no force, got %v", f)
	}

	zeroRadius := &CursorField{Mode: CursorFieldAttract, Radius: 0, Strength: 5}
	if f := zeroRadius.ForceAt(mgl32.Vec2{10, 0}, mgl32.Vec2{0, 0}); f.Len() != 0 {
		t.Errorf("zero radius should produce no force, got %v", f)
	}
}
