package combo

import (
	"combobox/internal/domain"
)

// registry is the render-cycle-scoped item index. It is a two-phase
// buffer: items registered during a render pass land in pending, and
// the whole pass is swapped into current atomically when it ends.
// Event handlers only ever read current, so a half-built pass is
// never observable.
type registry struct {
	pending      map[int]*domain.Item
	current      map[int]*domain.Item
	pendingCount int // authoritative item count recorded this pass, -1 unset
	itemCount    int // -1 unset; registry size is authoritative then
}

func newRegistry() *registry {
	return &registry{
		current:      make(map[int]*domain.Item),
		pendingCount: -1,
		itemCount:    -1,
	}
}

// begin opens a new render pass
func (r *registry) begin() {
	r.pending = make(map[int]*domain.Item, len(r.current))
	r.pendingCount = -1
}

// swap commits the pass: pending becomes current
func (r *registry) swap() {
	if r.pending == nil {
		return
	}
	r.current = r.pending
	r.pending = nil
	r.itemCount = r.pendingCount
}

// register adds an item at index; a negative index appends to the
// next available slot. Returns the index actually used.
func (r *registry) register(item *domain.Item, index int) int {
	if r.pending == nil {
		// Registration outside a pass still lands somewhere usable
		r.pending = make(map[int]*domain.Item)
	}
	if index < 0 {
		index = len(r.pending)
	}
	r.pending[index] = item
	return index
}

// setItemCount records the authoritative total for the current pass
func (r *registry) setItemCount(n int) {
	r.pendingCount = n
}

// lookup returns the committed item at index
func (r *registry) lookup(index int) (*domain.Item, bool) {
	item, ok := r.current[index]
	return item, ok
}

// size is the number of items committed in the last pass
func (r *registry) size() int {
	return len(r.current)
}

// effectiveCount is the navigable total: the recorded item count when
// the presentation layer virtualizes, otherwise the registry size
func (r *registry) effectiveCount() int {
	if r.itemCount >= 0 {
		return r.itemCount
	}
	return len(r.current)
}
