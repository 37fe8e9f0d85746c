package cursorfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CursorFieldMode int

const (
	CursorFieldNone CursorFieldMode = iota
	CursorFieldAttract
	CursorFieldRepel
)

// CursorField is the radial force centered on the pointer. Entities inside
// the radius are pulled toward or pushed away from the cursor with a
// quadratic distance falloff.
type CursorField struct {
	Mode     CursorFieldMode
	Radius   float32
	Strength float32
}

func (f *CursorField) Configure(cfg CursorConfig) {
	f.Mode = cfg.fieldMode
	f.Radius = cfg.Radius
	f.Strength = cfg.Strength
}

// ForceAt returns the field's velocity contribution for an entity at p with
// the cursor at c. Entities exactly on the cursor or outside the radius get
// no force; the d == 0 guard keeps the direction well defined.
func (f *CursorField) ForceAt(p, c mgl32.Vec2) mgl32.Vec2 {
	if f.Mode == CursorFieldNone || f.Radius <= 0 {
		return mgl32.Vec2{}
	}

	toCursor := c.Sub(p)
	d := toCursor.Len()
	if d <= 0 || d >= f.Radius {
		return mgl32.Vec2{}
	}

	falloff := 1 - d/f.Radius
	mag := f.Strength * falloff * falloff
	if f.Mode == CursorFieldRepel {
		mag = -mag
	}
	return toCursor.Mul(mag / d)
}
