package objmap

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
	token, err := h.Reserve(heap.Young, 4096)
	if err != nil {
		t.Fatalf("Reserve() error: %v", err)
	}
	return h, token
}

func TestAddSlotGrowsShapeAndPayloadTogether(t *testing.T) {
	h, token := newTestHeap(t)

	root := object.NewMap(0, value.Value(0), nil)
	obj := object.NewSlots(0, value.Value(0), nil)

	newMapAddr, err := AddSlot(h, token, obj, root, value.NewInteger(1), 0xABCD, object.DataMutable, value.NewInteger(7))
	if err != nil {
		t.Fatalf("AddSlot() error: %v", err)
	}
	if len(obj.Values) != 1 || obj.Values[0].Int() != 7 {
		t.Fatalf("obj.Values = %v, want [7]", obj.Values)
	}
	if obj.Map != newMapAddr {
		t.Fatalf("obj.Map not updated to the new shape's address")
	}
}

func TestAddSlotRejectsDuplicateSelector(t *testing.T) {
	h, token := newTestHeap(t)
	m := object.NewMap(0, value.Value(0), []object.SlotDescriptor{
		{SelectorHash: 0x1, Kind: object.DataMutable, Index: 0},
	})
	obj := object.NewSlots(0, value.Value(0), []value.Value{value.NewInteger(1)})

	if _, err := AddSlot(h, token, obj, m, value.NewInteger(1), 0x1, object.DataMutable, value.NewInteger(2)); err == nil {
		t.Fatalf("AddSlot() succeeded for a duplicate selector, want error")
	}
}

func TestAssignSlotRejectsConstant(t *testing.T) {
	h, _ := newTestHeap(t)
	m := object.NewMap(0, value.Value(0), []object.SlotDescriptor{
		{SelectorHash: 0x1, Kind: object.DataConstant, Index: 0},
	})
	obj := object.NewSlots(0, value.Value(0), []value.Value{value.NewInteger(1)})

	if err := AssignSlot(h, obj, m, 0x1, value.NewInteger(99)); err == nil {
		t.Fatalf("AssignSlot() succeeded against a DataConstant slot, want error")
	}
}

func TestAssignAndReadSlotRoundTrip(t *testing.T) {
	h, _ := newTestHeap(t)
	m := object.NewMap(0, value.Value(0), []object.SlotDescriptor{
		{SelectorHash: 0x2, Kind: object.DataMutable, Index: 0},
	})
	obj := object.NewSlots(0, value.Value(0), []value.Value{value.NewInteger(1)})

	if err := AssignSlot(h, obj, m, 0x2, value.NewInteger(42)); err != nil {
		t.Fatalf("AssignSlot() error: %v", err)
	}
	got, ok := ReadSlot(obj, m, 0x2)
	if !ok || got.Int() != 42 {
		t.Fatalf("ReadSlot() = (%v, %v), want (42, true)", got, ok)
	}
}

// TestAssignSlotRejectsCrossActorReference checks spec.md §8 Invariant 4:
// writing a Local object owned by a different actor directly into a slot
// (bypassing ActorProxy) must fail.
func TestAssignSlotRejectsCrossActorReference(t *testing.T) {
	h, token := newTestHeap(t)

	otherActorObj := object.NewSlots(1, value.Value(0), nil)
	otherAddr, err := token.Allocate(otherActorObj)
	if err != nil {
		t.Fatalf("Allocate(otherActorObj) error: %v", err)
	}

	m := object.NewMap(0, value.Value(0), []object.SlotDescriptor{
		{SelectorHash: 0x3, Kind: object.DataMutable, Index: 0},
	})
	obj := object.NewSlots(0, value.Value(0), []value.Value{value.NewInteger(1)})

	if err := AssignSlot(h, obj, m, 0x3, otherAddr); err == nil {
		t.Fatalf("AssignSlot() succeeded storing a bare cross-actor reference, want error")
	}
}

// TestAssignSlotAllowsActorProxyReference checks that the one sanctioned
// way to cross the actor boundary — wrapping the target in an
// ActorProxy — is not rejected by the same check.
func TestAssignSlotAllowsActorProxyReference(t *testing.T) {
	h, token := newTestHeap(t)

	otherActorObj := object.NewSlots(1, value.Value(0), nil)
	otherAddr, err := token.Allocate(otherActorObj)
	if err != nil {
		t.Fatalf("Allocate(otherActorObj) error: %v", err)
	}
	proxy := object.NewActorProxy(0, value.Value(0), 1, otherAddr)
	proxyAddr, err := token.Allocate(proxy)
	if err != nil {
		t.Fatalf("Allocate(proxy) error: %v", err)
	}

	m := object.NewMap(0, value.Value(0), []object.SlotDescriptor{
		{SelectorHash: 0x4, Kind: object.DataMutable, Index: 0},
	})
	obj := object.NewSlots(0, value.Value(0), []value.Value{value.NewInteger(1)})

	if err := AssignSlot(h, obj, m, 0x4, proxyAddr); err != nil {
		t.Fatalf("AssignSlot() with an ActorProxy value error: %v", err)
	}
}

// TestAddSlotRejectsCrossActorReference checks the same invariant holds
// for AddSlot's initial value, not just AssignSlot's write.
func TestAddSlotRejectsCrossActorReference(t *testing.T) {
	h, token := newTestHeap(t)

	otherActorObj := object.NewSlots(1, value.Value(0), nil)
	otherAddr, err := token.Allocate(otherActorObj)
	if err != nil {
		t.Fatalf("Allocate(otherActorObj) error: %v", err)
	}

	root := object.NewMap(0, value.Value(0), nil)
	obj := object.NewSlots(0, value.Value(0), nil)

	if _, err := AddSlot(h, token, obj, root, value.NewInteger(1), 0xBEEF, object.DataMutable, otherAddr); err == nil {
		t.Fatalf("AddSlot() succeeded storing a bare cross-actor reference, want error")
	}
}
