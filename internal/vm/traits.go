package vm

import (
	"github.com/nilslef/selfrt/internal/heap"
	"github.com/nilslef/selfrt/internal/lookup"
	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/pkg/errors"
)

// bootstrapTraits builds the well-known traits objects registered per
// primitive variant (spec.md §4.8): integer_traits (which also serves
// floats, see below), string_traits (backing ByteArray), array_traits,
// block_traits, method_traits, and activation_traits. Of these,
// internal/lookup consults only string_traits, for ByteArray receivers;
// the others are reached through TraitsFor. Every traits object
// is a plain Slots whose Map declares no slots of its own — the built-in
// behavior lives entirely in the primitive table registered alongside it
// — and is allocated into the old generation, since traits are permanent
// for the life of the VirtualMachine and must never be promoted or
// collected away.
func bootstrapTraits(vm *VirtualMachine) error {
	token, err := vm.heap.Reserve(heap.Old, 1<<10)
	if err != nil {
		return err
	}
	defer token.Release()

	mapOfMaps, err := allocateSelfReferentialMap(vm.heap, token)
	if err != nil {
		return err
	}

	// Integer and Float have no dedicated VariantKind of their own (they
	// are tag bits on the Value word, not heap objects), so their traits
	// object is keyed under KindSlots, the variant ordinary instances use.
	variants := map[object.VariantKind]string{
		object.KindSlots:      "integer_traits",
		object.KindArray:      "array_traits",
		object.KindByteArray:  "string_traits",
		object.KindBlock:      "block_traits",
		object.KindMethod:     "method_traits",
		object.KindActivation: "activation_traits",
	}

	for kind, name := range variants {
		shape := object.NewMap(0, mapOfMaps, nil)
		shapeRef, err := token.Allocate(shape)
		if err != nil {
			return err
		}
		traits := object.NewSlots(0, shapeRef, nil)
		traitsRef, err := token.Allocate(traits)
		if err != nil {
			return err
		}
		vm.heap.SetWellKnownTraits(kind, traitsRef)
		vm.log.Debugw("bootstrapped traits object", "kind", kind.String(), "name", name)
	}

	registerNumericPrimitives(vm)
	return nil
}

// allocateSelfReferentialMap builds the root "map of maps": a Map whose
// own header.Map field points back at itself, satisfying spec.md §4.3's
// invariant that every Map's Map field resolves to a Map. The self
// reference is patched in after allocation because the address a Map
// will live at isn't known until it's been placed on the heap.
func allocateSelfReferentialMap(h *heap.Heap, token *heap.Token) (value.Value, error) {
	placeholder := object.NewMap(0, value.Value(0), nil)
	ref, err := token.Allocate(placeholder)
	if err != nil {
		return value.Value(0), err
	}
	resolved, err := h.Resolve(ref)
	if err != nil {
		return value.Value(0), err
	}
	m, ok := resolved.(*object.Map)
	if !ok {
		return value.Value(0), errors.NewUnknownVariantError(int(object.KindOf(resolved)))
	}
	m.Map = ref
	return ref, nil
}

// registerNumericPrimitives installs the handful of integer primitives
// spec.md §4.8 calls out by name as built-in rather than message-sendable
// Self code: arithmetic and equality.
func registerNumericPrimitives(vm *VirtualMachine) {
	add := func(ctx *InterpreterContext, token *heap.Token, receiver heap.Tracked, args []heap.Tracked, src SourceRange) Completion {
		return binaryIntegerPrimitive(receiver, args, func(a, b int64) int64 { return a + b })
	}
	sub := func(ctx *InterpreterContext, token *heap.Token, receiver heap.Tracked, args []heap.Tracked, src SourceRange) Completion {
		return binaryIntegerPrimitive(receiver, args, func(a, b int64) int64 { return a - b })
	}
	mul := func(ctx *InterpreterContext, token *heap.Token, receiver heap.Tracked, args []heap.Tracked, src SourceRange) Completion {
		return binaryIntegerPrimitive(receiver, args, func(a, b int64) int64 { return a * b })
	}
	eq := func(ctx *InterpreterContext, token *heap.Token, receiver heap.Tracked, args []heap.Tracked, src SourceRange) Completion {
		if len(args) != 1 {
			return ErrorCompletion(errors.NewTypeMismatchError("=", "wrong argument count"))
		}
		r, a := receiver.Get(), args[0].Get()
		if !r.IsInteger() || !a.IsInteger() {
			return ErrorCompletion(errors.NewTypeMismatchError("=", "Integer"))
		}
		result := int64(0)
		if r.Int() == a.Int() {
			result = 1
		}
		return NormalCompletion(value.NewInteger(result))
	}

	vm.primitives.Register(vm.interner.Intern("+"), add)
	vm.primitives.Register(vm.interner.Intern("-"), sub)
	vm.primitives.Register(vm.interner.Intern("*"), mul)
	vm.primitives.Register(vm.interner.Intern("="), eq)
}

func binaryIntegerPrimitive(receiver heap.Tracked, args []heap.Tracked, op func(a, b int64) int64) Completion {
	if len(args) != 1 {
		return ErrorCompletion(errors.NewTypeMismatchError("binary integer primitive", "wrong argument count"))
	}
	r := receiver.Get()
	a := args[0].Get()
	if !r.IsInteger() || !a.IsInteger() {
		return ErrorCompletion(errors.NewTypeMismatchError("binary integer primitive", "Integer"))
	}
	return NormalCompletion(value.NewInteger(op(r.Int(), a.Int())))
}

// SelectorHash is re-exported for callers outside this package that need
// to hash a selector the same way lookup does without importing lookup
// directly.
func SelectorHash(selector string) uint64 { return lookup.Hash(selector) }
