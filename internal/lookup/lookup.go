package lookup

import (
	"github.com/nilslef/selfrt/internal/heap"
	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/errors"
)

// ResultKind classifies what a successful Lookup found.
type ResultKind uint8

const (
	// Missing means no slot anywhere in the parent chain matched.
	Missing ResultKind = iota
	// Value means the slot holds plain data.
	Value
	// Method means the slot's value is a Method object: sending the
	// selector should create an Activation rather than just reading the
	// slot.
	Method
	// Assignment means the lookup resolved an assignment selector
	// ("name:") to an assignable slot.
	Assignment
)

// Result is what Lookup returns for a successful (non-Missing) search.
type Result struct {
	Kind ResultKind
	// Holder is the object (somewhere in the receiver's parent chain)
	// whose Map actually declared the matching slot.
	Holder value.Value
	// Value is the slot's current contents, valid when Kind is Value or
	// Method.
	Value value.Value
	// Descriptor is the matching slot's descriptor, valid for Assignment
	// lookups so the caller can write through it.
	Descriptor object.SlotDescriptor
}

// ParentHash is the well-known hash of the "parent" selector (spec.md
// §4.6): ByteArray's lookup specialisation checks for it directly instead
// of consulting a per-instance Map, since a ByteArray carries none.
var ParentHash = Hash("parent")

// Lookup resolves selector against receiverAddr's object, walking parent
// slots in declaration order and guarding against inheritance cycles with
// a visited set (spec.md §4.6).
func Lookup(h *heap.Heap, receiverAddr value.Value, selector SelectorHash) (*Result, error) {
	visited := make(map[value.Value]bool)
	return search(h, receiverAddr, selector, visited)
}

func search(h *heap.Heap, addr value.Value, selector SelectorHash, visited map[value.Value]bool) (*Result, error) {
	if visited[addr] {
		return &Result{Kind: Missing}, nil
	}
	visited[addr] = true

	obj, err := h.Resolve(addr)
	if err != nil {
		return nil, err
	}
	if obj.Hdr().IsForwarded() {
		return nil, errors.NewForwardedDispatchError("<lookup>")
	}

	// ByteArray carries no per-instance Map-based parent slot: "parent"
	// resolves straight to the well-known string_traits object, and every
	// other selector defers to string_traits' own Map instead of walking
	// one here (spec.md §4.4, §4.6).
	if obj.Hdr().Kind() == object.KindByteArray {
		return searchByteArray(h, addr, selector, visited)
	}

	mapObj, err := h.Resolve(obj.Hdr().Map)
	if err != nil {
		return nil, err
	}
	m, ok := mapObj.(*object.Map)
	if !ok {
		return nil, errors.NewUnknownVariantError(int(mapObj.Hdr().Kind()))
	}

	// Step 4: the regular hash is checked first and, on a match, wins
	// outright — even during an assignment send, so an explicitly
	// declared "name:" setter method shadows the implicit data-slot
	// assignment target at this same map.
	if idx, found := m.FindSlot(selector.Regular); found {
		sd := m.Slots[idx]
		if sd.Kind == object.Argument {
			return &Result{Kind: Missing}, nil
		}

		slotValue, ok := readSlotValue(obj, sd)
		if !ok {
			return nil, errors.NewIndexOutOfBoundsError(sd.Index, 0)
		}
		kind := Value
		if isMethodValue(h, slotValue) {
			kind = Method
		}
		return &Result{Kind: kind, Holder: addr, Value: slotValue, Descriptor: sd}, nil
	}

	// Step 5: only for assignment sends, and only against this same map,
	// before any parent is consulted. A match against a slot that isn't
	// assignable isn't a step-5 match at all — the search falls through
	// to step 6 exactly as if nothing had matched.
	if selector.IsAssignment {
		if idx, found := m.FindSlot(selector.AssignTarget); found {
			sd := m.Slots[idx]
			if sd.Kind.IsAssignable() {
				return &Result{Kind: Assignment, Holder: addr, Descriptor: sd}, nil
			}
		}
	}

	// Step 6: recurse into parents in declaration order.
	for _, parent := range m.Parents() {
		parentValue, ok := readSlotValue(obj, parent)
		if !ok {
			continue
		}
		result, err := search(h, parentValue, selector, visited)
		if err != nil {
			return nil, err
		}
		if result.Kind != Missing {
			return result, nil
		}
	}

	return &Result{Kind: Missing}, nil
}

// searchByteArray implements the ByteArray lookup specialisation: the
// "parent" selector resolves directly to the well-known string_traits
// object, and every other selector defers to string_traits' own Map
// (spec.md §4.4, §4.6). If string_traits hasn't been bootstrapped yet,
// the ByteArray behaves as if it had no parent at all.
func searchByteArray(h *heap.Heap, addr value.Value, selector SelectorHash, visited map[value.Value]bool) (*Result, error) {
	stringTraits, ok := h.WellKnownTraits(object.KindByteArray)
	if !ok {
		return &Result{Kind: Missing}, nil
	}

	if selector.Regular == ParentHash {
		return &Result{Kind: Value, Holder: addr, Value: stringTraits}, nil
	}

	return search(h, stringTraits, selector, visited)
}

// readSlotValue reads the Value a slot descriptor names out of the
// object's own payload. Only Slots and Array carry an indexable Values
// payload; every other variant's slots (if any) are resolved through its
// own fields by the evaluator directly rather than through this path.
func readSlotValue(obj object.Object, sd object.SlotDescriptor) (value.Value, bool) {
	switch o := obj.(type) {
	case *object.Slots:
		if sd.Index < 0 || sd.Index >= len(o.Values) {
			return value.Value(0), false
		}
		return o.Values[sd.Index], true
	case *object.Array:
		if sd.Index < 0 || sd.Index >= len(o.Values) {
			return value.Value(0), false
		}
		return o.Values[sd.Index], true
	default:
		return value.Value(0), false
	}
}

// isMethodValue reports whether v refers to a Method object, in which
// case a successful lookup should be treated as an invocation rather than
// a plain data read.
func isMethodValue(h *heap.Heap, v value.Value) bool {
	if !v.IsObjectReference() {
		return false
	}
	resolved, err := h.Resolve(v)
	if err != nil {
		return false
	}
	return resolved.Hdr().Kind() == object.KindMethod
}
