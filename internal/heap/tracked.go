package heap

import "github.com/nilslef/selfrt/internal/value"

// Tracked is a root handle: a long-lived reference to a heap object that
// survives a collection because Collect updates it in place, the same way
// it updates every in-heap field that pointed at a relocated object.
// Primitives receive their receiver and arguments as Tracked handles (see
// vm.Primitive); any value.Value held outside the heap across a potential
// collection needs one, or it goes stale the moment a collection moves
// its target.
type Tracked struct {
	heap *Heap
	id   uint64
}

// Track registers v as a root and returns a handle for it. v need not be
// an ObjectReference; tracking a non-reference Value is harmless and Get
// simply returns it unchanged since Collect has nothing to rewrite.
func (h *Heap) Track(v value.Value) Tracked {
	h.rootMu.Lock()
	defer h.rootMu.Unlock()

	id := h.nextRootID
	h.nextRootID++
	stored := v
	h.roots[id] = &stored
	return Tracked{heap: h, id: id}
}

// Get returns the root's current Value, reflecting any relocation a
// collection since the last call has applied.
func (t Tracked) Get() value.Value {
	t.heap.rootMu.Lock()
	defer t.heap.rootMu.Unlock()
	if slot, ok := t.heap.roots[t.id]; ok {
		return *slot
	}
	return value.Value(0)
}

// Set replaces the root's current Value.
func (t Tracked) Set(v value.Value) {
	t.heap.rootMu.Lock()
	defer t.heap.rootMu.Unlock()
	if slot, ok := t.heap.roots[t.id]; ok {
		*slot = v
	}
}

// Release removes the root. Once released, the underlying object becomes
// eligible for collection unless it is reachable some other way.
func (t Tracked) Release() {
	t.heap.rootMu.Lock()
	defer t.heap.rootMu.Unlock()
	delete(t.heap.roots, t.id)
}
