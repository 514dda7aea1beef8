package lookup

import (
	"context"
	"testing"

	"github.com/nilslef/selfrt/internal/heap"
	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/logger"
	"github.com/nilslef/selfrt/pkg/options"
)

func newTestHeap(t *testing.T) (*heap.Heap, *heap.Token) {
	t.Helper()
	opts := options.NewDefaultOptions()
	h, err := heap.New(context.Background(), &heap.Config{Options: &opts, Logger: logger.NewNop()})
	if err != nil {
		t.Fatalf("heap.New() error: %v", err)
	}
	token, err := h.Reserve(heap.Young, 8192)
	if err != nil {
		t.Fatalf("Reserve() error: %v", err)
	}
	return h, token
}

// allocSlotsObject builds a live Slots object with the given map slot
// descriptors and matching payload values, returning its heap address.
func allocSlotsObject(t *testing.T, token *heap.Token, slots []object.SlotDescriptor, values []value.Value) value.Value {
	t.Helper()
	m := object.NewMap(0, value.NewInteger(0), slots)
	mapAddr, err := token.Allocate(m)
	if err != nil {
		t.Fatalf("Allocate(map) error: %v", err)
	}
	obj := object.NewSlots(0, mapAddr, values)
	objAddr, err := token.Allocate(obj)
	if err != nil {
		t.Fatalf("Allocate(obj) error: %v", err)
	}
	return objAddr
}

func TestLookupFindsOwnSlot(t *testing.T) {
	h, token := newTestHeap(t)
	hash := Hash("x")
	addr := allocSlotsObject(t, token,
		[]object.SlotDescriptor{{SelectorHash: hash, Kind: object.DataConstant, Index: 0}},
		[]value.Value{value.NewInteger(10)},
	)

	result, err := Lookup(h, addr, NewSelectorHash("x"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Value || result.Value.Int() != 10 {
		t.Fatalf("Lookup() = %+v, want Value(10)", result)
	}
}

func TestLookupTraversesParent(t *testing.T) {
	h, token := newTestHeap(t)

	parentHash := Hash("greeting")
	parentAddr := allocSlotsObject(t, token,
		[]object.SlotDescriptor{{SelectorHash: parentHash, Kind: object.DataConstant, Index: 0}},
		[]value.Value{value.NewInteger(99)},
	)

	childSlots := []object.SlotDescriptor{
		{SelectorHash: Hash("parent"), Kind: object.ParentConstant, Index: 0},
	}
	childMap := object.NewMap(0, value.NewInteger(0), childSlots)
	childMapAddr, err := token.Allocate(childMap)
	if err != nil {
		t.Fatalf("Allocate(childMap) error: %v", err)
	}
	childObj := object.NewSlots(0, childMapAddr, []value.Value{parentAddr})
	childAddr, err := token.Allocate(childObj)
	if err != nil {
		t.Fatalf("Allocate(childObj) error: %v", err)
	}

	result, err := Lookup(h, childAddr, NewSelectorHash("greeting"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Value || result.Value.Int() != 99 {
		t.Fatalf("Lookup() = %+v, want Value(99) found through parent", result)
	}
}

func TestLookupMissingSelectorReturnsMissing(t *testing.T) {
	h, token := newTestHeap(t)
	addr := allocSlotsObject(t, token, nil, nil)

	result, err := Lookup(h, addr, NewSelectorHash("nope"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Missing {
		t.Fatalf("Lookup() kind = %v, want Missing", result.Kind)
	}
}

func TestLookupCycleIsSafe(t *testing.T) {
	h, token := newTestHeap(t)

	selfParentSlots := []object.SlotDescriptor{
		{SelectorHash: Hash("parent"), Kind: object.ParentConstant, Index: 0},
	}
	m := object.NewMap(0, value.NewInteger(0), selfParentSlots)
	mapAddr, err := token.Allocate(m)
	if err != nil {
		t.Fatalf("Allocate(map) error: %v", err)
	}
	obj := object.NewSlots(0, mapAddr, []value.Value{value.Value(0)})
	addr, err := token.Allocate(obj)
	if err != nil {
		t.Fatalf("Allocate(obj) error: %v", err)
	}
	// Make the object its own parent to force a cycle.
	slotsObj, resolveErr := h.Resolve(addr)
	if resolveErr != nil {
		t.Fatalf("Resolve() error: %v", resolveErr)
	}
	slotsObj.(*object.Slots).Values[0] = addr

	result, err := Lookup(h, addr, NewSelectorHash("anything"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Missing {
		t.Fatalf("Lookup() on a self-referential parent chain = %+v, want Missing", result)
	}
}

// TestAssignSelectorFallsThroughOnConstantSlot checks that an assignment
// send matching a DataConstant slot at step 5 doesn't error out — it just
// isn't a step-5 match, so the search continues (and, with no parent
// here, ends up Missing), per spec.md §4.6.
func TestAssignSelectorFallsThroughOnConstantSlot(t *testing.T) {
	h, token := newTestHeap(t)
	hash := Hash("x")
	addr := allocSlotsObject(t, token,
		[]object.SlotDescriptor{{SelectorHash: hash, Kind: object.DataConstant, Index: 0}},
		[]value.Value{value.NewInteger(1)},
	)

	result, err := Lookup(h, addr, NewAssignSelectorHash("x"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Missing {
		t.Fatalf("Lookup() on a DataConstant slot = %+v, want Missing", result)
	}
}

func TestAssignSelectorResolvesMutableSlot(t *testing.T) {
	h, token := newTestHeap(t)
	assign := NewAssignSelectorHash("x")
	addr := allocSlotsObject(t, token,
		[]object.SlotDescriptor{{SelectorHash: assign.AssignTarget, Kind: object.DataMutable, Index: 0}},
		[]value.Value{value.NewInteger(1)},
	)

	result, err := Lookup(h, addr, assign)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Assignment {
		t.Fatalf("Lookup() kind = %v, want Assignment", result.Kind)
	}
}

// TestAssignmentRoundTripsThroughPlainRead reproduces spec.md §8 scenario
// 4: sending the assignment selector "x:" must resolve to the same data
// slot a subsequent plain read of "x" finds, because both hash to the
// slot's bare-name SelectorHash (AssignTarget for the write, Regular for
// the read) rather than two independently addressed slots.
func TestAssignmentRoundTripsThroughPlainRead(t *testing.T) {
	h, token := newTestHeap(t)
	assign := NewAssignSelectorHash("x")
	addr := allocSlotsObject(t, token,
		[]object.SlotDescriptor{{SelectorHash: assign.AssignTarget, Kind: object.DataMutable, Index: 0}},
		[]value.Value{value.NewInteger(5)},
	)

	assignResult, err := Lookup(h, addr, assign)
	if err != nil {
		t.Fatalf("Lookup(assign) error: %v", err)
	}
	if assignResult.Kind != Assignment {
		t.Fatalf("Lookup(assign) kind = %v, want Assignment", assignResult.Kind)
	}

	readResult, err := Lookup(h, addr, NewSelectorHash("x"))
	if err != nil {
		t.Fatalf("Lookup(read) error: %v", err)
	}
	if readResult.Kind != Value || readResult.Value.Int() != 5 {
		t.Fatalf("Lookup(read) = %+v, want Value(5)", readResult)
	}
	if assignResult.Descriptor.Index != readResult.Descriptor.Index {
		t.Fatalf("assign and read resolved to different slots: %+v vs %+v", assignResult.Descriptor, readResult.Descriptor)
	}
}

// TestExplicitSetterSelectorShadowsAssignTarget checks spec.md §4.6 step
// 4's priority: a slot explicitly named "x:" (a user-written setter
// method, here just a DataConstant standing in for one) is found via
// Regular before the data slot's AssignTarget is ever consulted.
func TestExplicitSetterSelectorShadowsAssignTarget(t *testing.T) {
	h, token := newTestHeap(t)
	assign := NewAssignSelectorHash("x")
	addr := allocSlotsObject(t, token,
		[]object.SlotDescriptor{{SelectorHash: assign.Regular, Kind: object.DataConstant, Index: 0}},
		[]value.Value{value.NewInteger(7)},
	)

	result, err := Lookup(h, addr, assign)
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Value || result.Value.Int() != 7 {
		t.Fatalf("Lookup() = %+v, want explicit setter slot Value(7)", result)
	}
}

func TestByteArrayParentResolvesToStringTraits(t *testing.T) {
	h, token := newTestHeap(t)

	traitsAddr := allocSlotsObject(t, token, nil, nil)
	h.SetWellKnownTraits(object.KindByteArray, traitsAddr)

	byteArray := object.NewByteArray(0, value.Value(0), []byte("hello"))
	addr, err := token.Allocate(byteArray)
	if err != nil {
		t.Fatalf("Allocate(bytearray) error: %v", err)
	}

	result, err := Lookup(h, addr, NewSelectorHash("parent"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Value || result.Value != traitsAddr {
		t.Fatalf("Lookup(parent) = %+v, want string_traits address", result)
	}
}

func TestByteArrayDefersOtherSelectorsToStringTraits(t *testing.T) {
	h, token := newTestHeap(t)

	sizeHash := Hash("size")
	traitsAddr := allocSlotsObject(t, token,
		[]object.SlotDescriptor{{SelectorHash: sizeHash, Kind: object.DataConstant, Index: 0}},
		[]value.Value{value.NewInteger(1)},
	)
	h.SetWellKnownTraits(object.KindByteArray, traitsAddr)

	byteArray := object.NewByteArray(0, value.Value(0), []byte("hi"))
	addr, err := token.Allocate(byteArray)
	if err != nil {
		t.Fatalf("Allocate(bytearray) error: %v", err)
	}

	result, err := Lookup(h, addr, NewSelectorHash("size"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Value || result.Value.Int() != 1 {
		t.Fatalf("Lookup(size) = %+v, want Value(1) via string_traits", result)
	}
}

func TestByteArrayWithoutBootstrappedTraitsIsMissing(t *testing.T) {
	h, token := newTestHeap(t)

	byteArray := object.NewByteArray(0, value.Value(0), []byte("hi"))
	addr, err := token.Allocate(byteArray)
	if err != nil {
		t.Fatalf("Allocate(bytearray) error: %v", err)
	}

	result, err := Lookup(h, addr, NewSelectorHash("size"))
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if result.Kind != Missing {
		t.Fatalf("Lookup() with no bootstrapped string_traits = %+v, want Missing", result)
	}
}
