// Package objmap implements the shape-transition operations that sit on
// top of the object.Map variant: adding a slot to an object means both
// building an extended Map and growing the object's own payload array to
// match, and the two must stay in lockstep or FindSlot's Index field goes
// stale. object.Map itself (FindSlot, Parents, the bare Extend) lives in
// internal/object because it is a member of the closed variant registry;
// this package is where a slot addition becomes a single atomic-looking
// operation against both the shape and the instance.
package objmap

import (
	"github.com/nilslef/selfrt/internal/heap"
	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/errors"
)

// AddSlot extends obj's Map with a new slot descriptor and appends
// initial to obj's Values, installing the freshly allocated Map on obj.
// The old Map is left untouched — any other object still using it keeps
// its original shape (spec.md §4.3's shape-transition rule).
func AddSlot(h *heap.Heap, token *heap.Token, obj *object.Slots, currentMap *object.Map, name value.Value, hash uint64, kind object.SlotKind, initial value.Value) (value.Value, error) {
	if _, exists := currentMap.FindSlot(hash); exists {
		return value.Value(0), errors.NewTypeMismatchError("addSlot", "slot already present")
	}
	if err := checkCrossActorWrite(h, obj.Hdr().Info.ActorID(), initial); err != nil {
		return value.Value(0), err
	}

	sd := object.SlotDescriptor{
		Name:         name,
		SelectorHash: hash,
		Kind:         kind,
		Index:        len(obj.Values),
	}
	extended := currentMap.Extend(currentMap.Hdr().Info.ActorID(), sd)

	newMapAddr, err := token.Allocate(extended)
	if err != nil {
		return value.Value(0), err
	}

	obj.Values = append(obj.Values, initial)
	obj.Map = newMapAddr
	return newMapAddr, nil
}

// AssignSlot writes v into the slot FindSlot resolved to, rejecting the
// write if the slot's kind is not assignable (spec.md §4.3) or if it
// would store a direct reference to another actor's object (spec.md §5,
// §8 Invariant 4).
func AssignSlot(h *heap.Heap, obj *object.Slots, m *object.Map, hash uint64, v value.Value) error {
	idx, ok := m.FindSlot(hash)
	if !ok {
		return errors.NewIndexOutOfBoundsError(-1, len(obj.Values))
	}
	sd := m.Slots[idx]
	if !sd.Kind.IsAssignable() {
		return errors.NewTypeMismatchError("assign", sd.Kind.String())
	}
	if sd.Index < 0 || sd.Index >= len(obj.Values) {
		return errors.NewIndexOutOfBoundsError(sd.Index, len(obj.Values))
	}
	if err := checkCrossActorWrite(h, obj.Hdr().Info.ActorID(), v); err != nil {
		return err
	}
	obj.Values[sd.Index] = v
	return nil
}

// checkCrossActorWrite rejects storing v into a slot owned by ownerActor
// when v is a direct reference to a Local object owned by a different
// actor. Global objects (the well-known traits, immutable after boot) and
// ActorProxy values (the one sanctioned way to cross this boundary) are
// exempt — spec.md §5's isolation guarantee and §8 Invariant 4 are about
// bare cross-actor references, not every value that happens to mention
// another actor.
func checkCrossActorWrite(h *heap.Heap, ownerActor uint32, v value.Value) error {
	if !v.IsObjectReference() {
		return nil
	}
	referenced, err := h.Resolve(v)
	if err != nil {
		return err
	}
	if referenced.Hdr().Kind() == object.KindActorProxy {
		return nil
	}
	if referenced.Hdr().Info.Reachability() == object.Global {
		return nil
	}
	if referencedActor := referenced.Hdr().Info.ActorID(); referencedActor != ownerActor {
		return errors.NewCrossActorWriteError(ownerActor, referencedActor)
	}
	return nil
}

// ReadSlot returns the current Value held in the slot FindSlot resolved
// to.
func ReadSlot(obj *object.Slots, m *object.Map, hash uint64) (value.Value, bool) {
	idx, ok := m.FindSlot(hash)
	if !ok {
		return value.Value(0), false
	}
	sd := m.Slots[idx]
	if sd.Index < 0 || sd.Index >= len(obj.Values) {
		return value.Value(0), false
	}
	return obj.Values[sd.Index], true
}
