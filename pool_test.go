package cursorfx

import (
	"testing"
)

type poolEntity struct {
	id  int
	age float32
}

func TestPool_AcquireRelease(t *testing.T) {
	p := NewPool[poolEntity](3)

	if p.Cap() != 3 {
		t.Fatalf("expected capacity 3, got %d", p.Cap())
	}
	if p.Active() != 0 {
		t.Errorf("fresh pool should have no active slots, got %d", p.Active())
	}

	i1, ok := p.TryAcquire()
	if !ok {
		t.Fatal("acquire on empty pool failed")
	}
	p.At(i1).id = 1

	i2, _ := p.TryAcquire()
	i3, _ := p.TryAcquire()
	p.At(i2).id = 2
	p.At(i3).id = 3

	if p.Active() != 3 {
		t.Errorf("expected 3 active, got %d", p.Active())
	}

	// Pool full: fourth acquire is refused, existing slots untouched.
	if _, ok := p.TryAcquire(); ok {
		t.Error("acquire on a full pool should fail")
	}
	if p.At(i1).id != 1 || p.At(i2).id != 2 || p.At(i3).id != 3 {
		t.Error("failed acquire must not disturb live slots")
	}

	p.Release(i2)
	if p.Active() != 2 {
		t.Errorf("expected 2 active after release, got %d", p.Active())
	}
	if p.IsLive(i2) {
		t.Error("released slot reported live")
	}

	// The freed slot is reused and arrives zeroed.
	i4, ok := p.TryAcquire()
	if !ok {
		t.Fatal("acquire after release failed")
	}
	if i4 != i2 {
		t.Errorf("expected freed slot %d to be reused, got %d", i2, i4)
	}
	if p.At(i4).id != 0 || p.At(i4).age != 0 {
		t.Error("reacquired slot was not zeroed")
	}
}

func TestPool_ReleaseIsIdempotent(t *testing.T) {
	p := NewPool[poolEntity](2)
	i, _ := p.TryAcquire()
	p.TryAcquire()

	p.Release(i)
	p.Release(i)
	p.Release(i)

	if p.Active() != 1 {
		t.Errorf("double release must not double-decrement, active = %d", p.Active())
	}

	// Out-of-range releases are ignored.
	p.Release(-1)
	p.Release(99)
	if p.Active() != 1 {
		t.Errorf("out-of-range release changed active count to %d", p.Active())
	}
}

func TestPool_ForEachActiveVisitsLiveOnly(t *testing.T) {
	p := NewPool[poolEntity](8)
	var held []int
	for k := 0; k < 5; k++ {
		i, _ := p.TryAcquire()
		p.At(i).id = k + 1
		held = append(held, i)
	}
	p.Release(held[1])
	p.Release(held[3])

	visited := 0
	p.ForEachActive(func(i int, e *poolEntity) {
		visited++
		if e.id == 0 {
			t.Errorf("visited dead or zeroed slot %d", i)
		}
	})
	if visited != 3 {
		t.Errorf("expected 3 visits, got %d", visited)
	}
}

func TestPool_ReleaseDuringIteration(t *testing.T) {
	p := NewPool[poolEntity](4)
	for k := 0; k < 4; k++ {
		i, _ := p.TryAcquire()
		p.At(i).age = float32(k)
	}

	// Releasing the visited slot mid-iteration must be safe.
	p.ForEachActive(func(i int, e *poolEntity) {
		if e.age >= 2 {
			p.Release(i)
		}
	})

	if p.Active() != 2 {
		t.Errorf("expected 2 active after culling, got %d", p.Active())
	}
}

func TestPool_MinimumCapacity(t *testing.T) {
	p := NewPool[poolEntity](0)
	if p.Cap() != 1 {
		t.Errorf("degenerate capacity should clamp to 1, got %d", p.Cap())
	}
}
