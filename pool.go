package cursorfx

// Pool is a fixed-capacity arena of effect entities with slot recycling.
// Capacity is the hard memory bound; the configured per-effect maximum is
// enforced by the spawners and can be lower. The active count is maintained
// incrementally by acquire/release, never by rescanning the slots.
type Pool[T any] struct {
	slots  []T
	live   []bool
	cursor int
	active int
}

func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool[T]{
		slots: make([]T, capacity),
		live:  make([]bool, capacity),
	}
}

func (p *Pool[T]) Cap() int { return len(p.slots) }

func (p *Pool[T]) Active() int { return p.active }

func (p *Pool[T]) IsLive(i int) bool {
	return i >= 0 && i < len(p.live) && p.live[i]
}

// At returns the slot regardless of liveness. Callers that iterate with
// ForEachActive never see dead slots.
func (p *Pool[T]) At(i int) *T { return &p.slots[i] }

// TryAcquire scans forward from a rotating cursor for the first free slot,
// bounded by one full pass. On exhaustion it reports false; the caller drops
// the spawn silently. The returned slot is zeroed so no state leaks from the
// previous occupant.
func (p *Pool[T]) TryAcquire() (int, bool) {
	n := len(p.slots)
	for scanned := 0; scanned < n; scanned++ {
		i := p.cursor
		p.cursor++
		if p.cursor == n {
			p.cursor = 0
		}
		if p.live[i] {
			continue
		}
		var zero T
		p.slots[i] = zero
		p.live[i] = true
		p.active++
		return i, true
	}
	return 0, false
}

// Release marks the slot free and decrements the active count exactly once.
// Releasing a slot that is already free is a no-op, so deactivation paths
// can never double-decrement.
func (p *Pool[T]) Release(i int) {
	if i < 0 || i >= len(p.live) || !p.live[i] {
		return
	}
	p.live[i] = false
	p.active--
	if p.active < 0 {
		// Unreachable unless live[] was corrupted externally; a cosmetic
		// overlay tolerates the drift instead of crashing.
		p.active = 0
	}
}

// ForEachActive visits every live slot in index order without allocating.
// The callback may Release the slot it is visiting.
func (p *Pool[T]) ForEachActive(fn func(i int, e *T)) {
	for i := range p.slots {
		if p.live[i] {
			fn(i, &p.slots[i])
		}
	}
}
