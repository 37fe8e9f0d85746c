package cursorfx

import (
	"math"
)

// EffectKind is the flat numeric tag the overlay shader switches on. The
// simulation side keeps one typed entity struct per family; this encoding
// exists only in the GPU-visible projection built here.
type EffectKind uint32

const (
	KindRipple EffectKind = iota
	KindPetal
	KindLaser
)

// InstanceRecord is the densely packed GPU-visible projection of one active
// entity. Layout matches the instance attributes in overlay.wgsl: sixteen
// f32 per record, 64-byte stride.
type InstanceRecord struct {
	Pos    [2]float32
	Size   float32
	Rot    float32
	Color  [4]float32
	Kind   float32
	Age    float32 // age/lifetime in [0,1]
	Params [6]float32
}

const InstanceStride = 16 * 4

// RenderDevice is the graphics boundary the sync stage drives. The wgpu
// implementation lives in render.go; tests substitute a recording fake.
// UploadInstances must support transferring fewer records than the buffer
// capacity — the partial upload is the point of compaction.
type RenderDevice interface {
	EnsureInstanceCapacity(capacity int)
	UploadInstances(records []InstanceRecord)
	DrawInstanced(vertexCountPerInstance, instanceCount uint32)
}

// SyncStage compacts active entities into the staging slice and uploads
// exactly that sub-range every frame. The staging slice is rebuilt from the
// pools each frame and never persisted; stale records cannot survive a
// slot's reuse.
type SyncStage struct {
	device  RenderDevice
	staging []InstanceRecord
	count   int
}

func NewSyncStage(device RenderDevice) *SyncStage {
	capacity := ripplePoolCap + petalPoolCap + laserPoolCap
	device.EnsureInstanceCapacity(capacity)
	return &SyncStage{
		device:  device,
		staging: make([]InstanceRecord, 0, capacity),
	}
}

// InstanceCount is the number of records uploaded for the current frame.
func (s *SyncStage) InstanceCount() int { return s.count }

func (s *SyncStage) begin() {
	s.staging = s.staging[:0]
}

func (s *SyncStage) flush() {
	s.count = len(s.staging)
	if s.count == 0 {
		// Nothing active: skip the upload entirely.
		return
	}
	s.device.UploadInstances(s.staging)
}

// Draw submits one instanced draw covering every packed record. Six
// vertices per instance: the shader expands each record into a quad.
func (s *SyncStage) Draw() {
	if s.count == 0 {
		return
	}
	s.device.DrawInstanced(6, uint32(s.count))
}

type SyncModule struct{}

func (mod SyncModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(syncSystem).InStage(PreRender),
	)
}

// syncSystem runs after every simulation stage has settled; it is read-only
// over the pools.
func syncSystem(stage *SyncStage, ripples *RippleEffect, petals *PetalEffect, lasers *LaserEffect) {
	stage.begin()
	packRipples(stage, ripples)
	packPetals(stage, petals)
	packLasers(stage, lasers)
	stage.flush()
}

var rippleTint = [4]float32{0.42, 0.62, 0.86, 1}

func packRipples(stage *SyncStage, e *RippleEffect) {
	if !e.cfg.Enabled {
		return
	}
	e.pool.ForEachActive(func(_ int, r *Ripple) {
		stage.staging = append(stage.staging, InstanceRecord{
			Pos:   [2]float32{r.Pos.X(), r.Pos.Y()},
			Size:  r.CurrentRadius(),
			Color: rippleTint,
			Kind:  float32(KindRipple),
			Age:   ageFraction(r.Age, r.Lifetime),
			Params: [6]float32{
				r.CurrentAmplitude(),
				r.WaveSpeed,
				r.Wavelength,
				r.Damping,
			},
		})
	})
}

func packPetals(stage *SyncStage, e *PetalEffect) {
	if !e.cfg.Enabled {
		return
	}
	e.pool.ForEachActive(func(_ int, p *Petal) {
		stage.staging = append(stage.staging, InstanceRecord{
			Pos:    [2]float32{p.Pos.X(), p.Pos.Y()},
			Size:   p.Size,
			Rot:    p.Rot,
			Color:  petalPalette[p.Color%len(petalPalette)],
			Kind:   float32(KindPetal),
			Age:    ageFraction(p.Age, p.Lifetime),
			Params: [6]float32{p.SwayPhase},
		})
	})
}

func packLasers(stage *SyncStage, e *LaserEffect) {
	if !e.cfg.Enabled {
		return
	}
	e.pool.ForEachActive(func(_ int, l *Laser) {
		stage.staging = append(stage.staging, InstanceRecord{
			Pos:    [2]float32{l.Pos.X(), l.Pos.Y()},
			Size:   l.Length,
			Rot:    l.Heading(),
			Color:  hueToRGBA(l.Hue),
			Kind:   float32(KindLaser),
			Age:    ageFraction(l.Age, l.Lifetime),
			Params: [6]float32{float32(l.CollisionCount)},
		})
	})
}

func ageFraction(age, lifetime float32) float32 {
	if lifetime <= 0 {
		return 1
	}
	f := age / lifetime
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f
}

// hueToRGBA converts a hue in [0,1] at full saturation and value.
func hueToRGBA(h float32) [4]float32 {
	h = h - float32(math.Floor(float64(h)))
	sector := h * 6
	i := int(sector)
	f := sector - float32(i)
	q := 1 - f
	switch i % 6 {
	case 0:
		return [4]float32{1, f, 0, 1}
	case 1:
		return [4]float32{q, 1, 0, 1}
	case 2:
		return [4]float32{0, 1, f, 1}
	case 3:
		return [4]float32{0, q, 1, 1}
	case 4:
		return [4]float32{f, 0, 1, 1}
	default:
		return [4]float32{1, 0, q, 1}
	}
}
