package heap

import (
	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
)

// references returns pointers to every outgoing ObjectReference-tagged
// Value field an object carries, so the collector can both follow them
// during tracing and rewrite them in place once their targets move. The
// switch enumerates the closed variant registry internal/object defines
// (header.go's VariantKind); ForwardedObject never reaches here because a live object's header
// is only ever forwarded by the collector itself, after tracing completes.
func references(obj object.Object) []*value.Value {
	switch o := obj.(type) {
	case *object.Slots:
		refs := make([]*value.Value, 0, 1+len(o.Values))
		refs = append(refs, &o.Map)
		for i := range o.Values {
			refs = append(refs, &o.Values[i])
		}
		return refs
	case *object.Array:
		refs := make([]*value.Value, 0, 1+len(o.Values))
		refs = append(refs, &o.Map)
		for i := range o.Values {
			refs = append(refs, &o.Values[i])
		}
		return refs
	case *object.ByteArray:
		return []*value.Value{&o.Map}
	case *object.Method:
		return []*value.Value{&o.Map, &o.Holder}
	case *object.Block:
		return []*value.Value{&o.Map, &o.Home}
	case *object.Activation:
		refs := make([]*value.Value, 0, 3+len(o.Locals))
		refs = append(refs, &o.Map, &o.Receiver, &o.Sender)
		for i := range o.Locals {
			refs = append(refs, &o.Locals[i])
		}
		return refs
	case *object.Managed:
		return []*value.Value{&o.Map}
	case *object.Actor:
		return []*value.Value{&o.Map, &o.CurrentActivation}
	case *object.ActorProxy:
		return []*value.Value{&o.Map, &o.TargetAddress}
	case *object.Map:
		refs := make([]*value.Value, 0, 1+len(o.Slots))
		refs = append(refs, &o.Map)
		for i := range o.Slots {
			refs = append(refs, &o.Slots[i].Name)
		}
		return refs
	case *object.AddrInfo:
		return []*value.Value{&o.Map}
	default:
		return nil
	}
}

// traceLive computes, for the named generation, the set of slot indices
// reachable from every Tracked root plus every outgoing reference the
// other generation holds (the conservative remembered-set stand-in noted
// on Collect). The result is a bool slice indexed the same way g.objects
// was at the moment traceLive was called.
func (h *Heap) traceLive(gen GenerationName) []bool {
	g := h.genFor(gen)
	g.mu.Lock()
	live := make([]bool, len(g.objects))
	objects := g.objects
	g.mu.Unlock()

	worklist := make([]int, 0, len(objects))

	visit := func(v value.Value) {
		if !v.IsObjectReference() {
			return
		}
		addr := DecodeAddress(v)
		if addr.Generation != gen {
			return
		}
		if addr.Index < 0 || addr.Index >= len(live) || live[addr.Index] {
			return
		}
		live[addr.Index] = true
		worklist = append(worklist, addr.Index)
	}

	h.rootMu.Lock()
	roots := make([]value.Value, 0, len(h.roots))
	for _, slot := range h.roots {
		roots = append(roots, *slot)
	}
	h.rootMu.Unlock()
	for _, r := range roots {
		visit(r)
	}

	other := h.genFor(otherGeneration(gen))
	other.mu.Lock()
	for _, obj := range other.objects {
		for _, ref := range references(obj) {
			visit(*ref)
		}
	}
	other.mu.Unlock()

	for len(worklist) > 0 {
		idx := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, ref := range references(objects[idx]) {
			visit(*ref)
		}
	}

	return live
}

// rewriteReferences walks every Tracked root and every object field in
// both generations, replacing any reference into gen's old address space
// with its new address per newAddrs. It runs after the old generation's
// collected slice has already been swapped out, so callers pass the
// oldIdx -> new Value mapping explicitly rather than re-deriving it from
// current state.
func (h *Heap) rewriteReferences(gen GenerationName, newAddrs map[int]value.Value) {
	rewrite := func(ref *value.Value) {
		if !ref.IsObjectReference() {
			return
		}
		addr := DecodeAddress(*ref)
		if addr.Generation != gen {
			return
		}
		if newAddr, ok := newAddrs[addr.Index]; ok {
			*ref = newAddr
		}
	}

	h.rootMu.Lock()
	for _, slot := range h.roots {
		rewrite(slot)
	}
	h.rootMu.Unlock()

	for _, g := range [...]*generation{h.young, h.old} {
		g.mu.Lock()
		for _, obj := range g.objects {
			for _, ref := range references(obj) {
				rewrite(ref)
			}
		}
		g.mu.Unlock()
	}
}

// enqueueFinalizer appends a finalizable object found unreachable during a
// collection to the finalization queue. The caller (Collect) holds the
// collected generation's lock while this runs; enqueueFinalizer itself
// takes only finalizeMu.
func (h *Heap) enqueueFinalizer(obj object.Object) {
	h.finalizeMu.Lock()
	h.finalize = append(h.finalize, obj)
	h.finalizeMu.Unlock()
}

// DrainFinalizers runs and clears every queued finalizer, recovering from
// a panicking finalizer so one broken resource cleanup cannot abort the
// rest of the queue.
func (h *Heap) DrainFinalizers() {
	h.finalizeMu.Lock()
	pending := h.finalize
	h.finalize = nil
	h.finalizeMu.Unlock()

	for _, obj := range pending {
		h.runFinalizer(obj)
	}
}

func (h *Heap) runFinalizer(obj object.Object) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Errorw("finalizer panicked", "kind", obj.Hdr().Kind().String(), "panic", r)
		}
	}()

	f, ok := obj.(object.Finalizer)
	if !ok {
		return
	}
	if err := f.Finalize(); err != nil {
		h.log.Errorw("finalizer failed", "kind", obj.Hdr().Kind().String(), "error", err)
	}
}
