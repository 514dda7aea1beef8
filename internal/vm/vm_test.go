package vm

import (
	"context"
	"testing"

	"github.com/nilslef/selfrt/internal/heap"
	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/logger"
	"github.com/nilslef/selfrt/pkg/options"
)

func newTestVM(t *testing.T) *VirtualMachine {
	t.Helper()
	opts := options.NewDefaultOptions()
	opts.YoungGeneration.Size = 4096
	opts.OldGeneration.Size = 4096

	m, err := New(context.Background(), &Config{Options: &opts, Logger: logger.NewNop()})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m
}

func TestNewBootstrapsEveryTraitsVariant(t *testing.T) {
	m := newTestVM(t)
	for _, kind := range []object.VariantKind{
		object.KindSlots, object.KindArray, object.KindByteArray,
		object.KindBlock, object.KindMethod, object.KindActivation,
	} {
		if _, ok := m.TraitsFor(kind); !ok {
			t.Fatalf("TraitsFor(%s) missing after bootstrap", kind)
		}
	}
}

func TestTraitsObjectsResolveOnTheHeap(t *testing.T) {
	m := newTestVM(t)
	ref, ok := m.TraitsFor(object.KindArray)
	if !ok {
		t.Fatalf("TraitsFor(KindArray) missing")
	}
	obj, err := m.Heap().Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if _, ok := obj.(*object.Slots); !ok {
		t.Fatalf("resolved traits object is %T, want *object.Slots", obj)
	}
}

func TestIntegerAddPrimitiveIsRegistered(t *testing.T) {
	m := newTestVM(t)
	hash := SelectorHash("+")
	fn, ok := m.PrimitiveFor(hash)
	if !ok {
		t.Fatalf("PrimitiveFor(+) missing")
	}

	h := m.Heap()
	receiver := h.Track(value.NewInteger(4))
	arg := h.Track(value.NewInteger(5))
	ctx := &InterpreterContext{VM: m}

	result := fn(ctx, nil, receiver, []heap.Tracked{arg}, SourceRange{})
	if !result.IsNormal() {
		t.Fatalf("result = %+v, want Normal", result)
	}
	if got := result.Result.Int(); got != 9 {
		t.Fatalf("4 + 5 = %d, want 9", got)
	}
}

func TestIntegerAddPrimitiveRejectsNonInteger(t *testing.T) {
	m := newTestVM(t)
	fn, _ := m.PrimitiveFor(SelectorHash("+"))

	h := m.Heap()
	receiver := h.Track(value.NewInteger(4))
	arg := h.Track(value.NewFloat(1.5))
	ctx := &InterpreterContext{VM: m}

	result := fn(ctx, nil, receiver, []heap.Tracked{arg}, SourceRange{})
	if result.Kind != RuntimeError {
		t.Fatalf("result.Kind = %v, want RuntimeError", result.Kind)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	m := newTestVM(t)
	if err := m.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
}
