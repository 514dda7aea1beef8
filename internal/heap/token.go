package heap

import (
	"sync/atomic"

	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/errors"
)

// Token is a scoped byte-budget reservation against one generation
// (spec.md §4.1). Allocations made through a Token are guaranteed to
// succeed without triggering a collection, because the budget was already
// carved out of the generation when the Token was issued. A Token must be
// released — exactly once — when the caller is done allocating with it.
type Token struct {
	heap       *Heap
	generation GenerationName
	budget     uint64
	remaining  uint64
	released   atomic.Bool
}

// Allocate installs obj in the Token's generation, debiting its
// SizeInMemory from the Token's remaining budget. It returns the
// ObjectReference Value callers should store wherever they intend to
// reference obj from.
func (t *Token) Allocate(obj object.Object) (value.Value, error) {
	if t.released.Load() {
		return value.Value(0), errors.NewTokenReleasedError(string(t.generation))
	}

	size := uint64(obj.SizeInMemory())
	if size > t.remaining {
		return value.Value(0), errors.NewTokenOverspendError(string(t.generation), size, t.remaining)
	}
	t.remaining -= size

	addr := t.heap.append(t.generation, obj)
	return addr.Encode(), nil
}

// Remaining reports the bytes still available for this Token to allocate.
func (t *Token) Remaining() uint64 {
	return t.remaining
}

// Release returns any unspent budget to the generation and unblocks
// collection of it. Idempotent: a second Release is a no-op.
func (t *Token) Release() error {
	if !t.released.CompareAndSwap(false, true) {
		return nil
	}

	g := t.heap.genFor(t.generation)
	g.mu.Lock()
	g.used -= t.remaining
	g.reserved--
	g.mu.Unlock()
	return nil
}
