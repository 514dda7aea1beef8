package heap

import (
	"context"
	"fmt"
	"time"

	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/errors"
)

// New creates and initializes a new Heap, sized from config.Options.
func New(ctx context.Context, config *Config) (*Heap, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, fmt.Errorf("invalid configuration")
	}

	config.Logger.Infow(
		"Initializing heap",
		"youngGenerationSize", config.Options.YoungGeneration.Size,
		"oldGenerationSize", config.Options.OldGeneration.Size,
		"promotionAge", config.Options.YoungGeneration.PromotionAge,
	)

	h := &Heap{
		young: &generation{
			name:         Young,
			maxSize:      config.Options.YoungGeneration.Size,
			promotionAge: config.Options.YoungGeneration.PromotionAge,
		},
		old: &generation{
			name:    Old,
			maxSize: config.Options.OldGeneration.Size,
		},
		log:       config.Logger,
		roots:     make(map[uint64]*value.Value),
		wellKnown: make(map[object.VariantKind]value.Value),
	}
	return h, nil
}

// SetWellKnownTraits records ref as the traits object backing kind, for
// lookup's built-in parent fallbacks (spec.md §4.6's ByteArray
// specialisation and any other primitive variant resolved the same way).
// VirtualMachine's bootstrap is the only expected caller; nothing
// re-registers a well-known traits object once boot finishes.
func (h *Heap) SetWellKnownTraits(kind object.VariantKind, ref value.Value) {
	h.wellKnownMu.Lock()
	h.wellKnown[kind] = ref
	h.wellKnownMu.Unlock()
}

// WellKnownTraits returns the traits object registered for kind, if
// bootstrap has installed one.
func (h *Heap) WellKnownTraits(kind object.VariantKind) (value.Value, bool) {
	h.wellKnownMu.RLock()
	defer h.wellKnownMu.RUnlock()
	v, ok := h.wellKnown[kind]
	return v, ok
}

func (h *Heap) genFor(name GenerationName) *generation {
	if name == Old {
		return h.old
	}
	return h.young
}

// Reserve grants a Token that guarantees bytes of budget in the named
// generation, running at most one collection first if the generation
// can't presently satisfy the request (spec.md §4.1). While the token is
// alive, the generation it was drawn from will not be collected.
func (h *Heap) Reserve(gen GenerationName, bytes uint64) (*Token, error) {
	if h.closed.Load() {
		return nil, errors.NewHeapError(nil, errors.ErrorCodeInternal, "heap is closed").WithGeneration(string(gen))
	}

	g := h.genFor(gen)

	if !g.tryReserve(bytes) {
		if err := h.Collect(gen); err != nil {
			return nil, err
		}
		if !g.tryReserve(bytes) {
			g.mu.Lock()
			available := g.maxSize - g.used
			g.mu.Unlock()
			return nil, errors.NewOutOfMemoryError(string(gen), bytes, available)
		}
	}

	return &Token{heap: h, generation: gen, budget: bytes, remaining: bytes}, nil
}

// tryReserve attempts to debit bytes from g's budget without collecting.
// Reports whether it succeeded.
func (g *generation) tryReserve(bytes uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.used+bytes > g.maxSize {
		return false
	}
	g.used += bytes
	g.reserved++
	return true
}

// append installs obj as the next live slot in gen and returns its
// Address. Callers must already have debited obj.SizeInMemory() from a
// Token's budget; append itself does no accounting.
func (h *Heap) append(gen GenerationName, obj object.Object) Address {
	g := h.genFor(gen)
	g.mu.Lock()
	idx := len(g.objects)
	g.objects = append(g.objects, obj)
	g.ages = append(g.ages, 0)
	g.mu.Unlock()
	return Address{Generation: gen, Index: idx}
}

// Resolve follows addr to its live object, chasing at most one level of
// forwarding (a live object is never forwarded twice without its address
// being updated in between, per spec.md §3.5).
func (h *Heap) Resolve(v value.Value) (object.Object, error) {
	if !v.IsObjectReference() {
		return nil, errors.NewMarkerMismatchError("non-ObjectReference Value")
	}
	addr := DecodeAddress(v)
	g := h.genFor(addr.Generation)

	g.mu.Lock()
	defer g.mu.Unlock()
	if addr.Index < 0 || addr.Index >= len(g.objects) {
		return nil, errors.NewIndexOutOfBoundsError(addr.Index, len(g.objects))
	}
	obj := g.objects[addr.Index]
	if err := obj.Hdr().CheckMarker(); err != nil {
		return nil, err
	}
	if obj.Hdr().IsForwarded() {
		forwardAddr := DecodeAddress(obj.Hdr().ForwardAddress())
		fg := h.genFor(forwardAddr.Generation)
		if fg == g {
			return g.objects[forwardAddr.Index], nil
		}
		fg.mu.Lock()
		defer fg.mu.Unlock()
		return fg.objects[forwardAddr.Index], nil
	}
	return obj, nil
}

// Collect runs a stop-the-world copying collection of the named
// generation, tracing from every live Tracked root plus every outgoing
// reference held by the other generation (a conservative stand-in for a
// remembered set: see DESIGN.md). It is a no-op, returning nil, if any
// allocation token currently holds a reservation against this generation.
// Once a collection has run, Collect drains the finalization queue before
// returning.
func (h *Heap) Collect(gen GenerationName) error {
	g := h.genFor(gen)

	g.mu.Lock()
	if g.reserved > 0 {
		g.mu.Unlock()
		h.log.Debugw("skipping collection: generation has outstanding tokens", "generation", gen)
		return nil
	}
	g.mu.Unlock()

	start := time.Now()
	live := h.traceLive(gen)

	g.mu.Lock()
	oldObjects := g.objects
	oldAges := g.ages

	survivors := make([]object.Object, 0, len(oldObjects))
	survivorAges := make([]uint32, 0, len(oldObjects))
	var promotedObjs []object.Object
	var promotedOldIdx []int
	newAddrs := make(map[int]value.Value, len(oldObjects))

	for oldIdx, obj := range oldObjects {
		if !live[oldIdx] {
			if obj.CanFinalize() {
				h.enqueueFinalizer(obj)
			}
			continue
		}
		// A copying collection never relocates an object in place: the old
		// struct stays behind to become a forwarding tombstone, and a fresh
		// clone becomes the object's new identity at its new address.
		clone := obj.CloneInto(obj.Hdr().Info.ActorID())
		age := oldAges[oldIdx] + 1
		if gen == Young && age > g.promotionAge {
			promotedObjs = append(promotedObjs, clone)
			promotedOldIdx = append(promotedOldIdx, oldIdx)
			continue
		}
		newAddrs[oldIdx] = Address{Generation: gen, Index: len(survivors)}.Encode()
		survivors = append(survivors, clone)
		survivorAges = append(survivorAges, age)
	}

	collected := len(oldObjects) - len(survivors) - len(promotedObjs)
	g.objects = survivors
	g.ages = survivorAges
	g.used = sizeOf(survivors)
	g.collections++
	g.mu.Unlock()

	if len(promotedObjs) > 0 {
		other := h.genFor(otherGeneration(gen))
		other.mu.Lock()
		base := len(other.objects)
		for i, obj := range promotedObjs {
			other.objects = append(other.objects, obj)
			other.ages = append(other.ages, 0)
			other.used += uint64(obj.SizeInMemory())
			newAddrs[promotedOldIdx[i]] = Address{Generation: otherGeneration(gen), Index: base + i}.Encode()
		}
		other.mu.Unlock()
	}

	// Every surviving or promoted object's old header becomes a tombstone
	// pointing at its new address, and every live reference anywhere in
	// the heap that pointed at the old address is rewritten to match.
	for oldIdx, newAddr := range newAddrs {
		_ = oldObjects[oldIdx].Hdr().ForwardTo(newAddr)
	}
	h.rewriteReferences(gen, newAddrs)

	h.log.Infow(
		"generation collected",
		"generation", gen,
		"survivors", len(survivors),
		"promoted", len(promotedObjs),
		"collected", collected,
		"duration", time.Since(start).String(),
	)

	h.DrainFinalizers()
	return nil
}

func otherGeneration(gen GenerationName) GenerationName {
	if gen == Young {
		return Old
	}
	return Young
}

func sizeOf(objs []object.Object) uint64 {
	var total uint64
	for _, o := range objs {
		total += uint64(o.SizeInMemory())
	}
	return total
}

// Close marks the heap closed. Idempotent: a second Close returns nil.
func (h *Heap) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}
	h.log.Infow("heap closed",
		"youngObjects", len(h.young.objects),
		"oldObjects", len(h.old.objects),
	)
	return nil
}
