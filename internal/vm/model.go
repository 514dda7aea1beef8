// Package vm assembles the heap, the actor registry, the selector
// interner, and the traits bootstrap into the VirtualMachine aggregate
// root every other subsystem is ultimately reached through (spec.md §5's
// "VirtualMachine" component), and defines Completion, the closed sum
// type every message send or primitive call resolves to.
package vm

import (
	"sync/atomic"

	"github.com/nilslef/selfrt/internal/actorsys"
	"github.com/nilslef/selfrt/internal/heap"
	"github.com/nilslef/selfrt/internal/lookup"
	"github.com/nilslef/selfrt/pkg/options"
	"go.uber.org/zap"
)

// Config holds everything New needs to assemble a VirtualMachine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// VirtualMachine owns the heap, the actor registry, the selector
// interner, and the traits table. It is the aggregation root: nothing in
// this codebase constructs a heap.Heap or actorsys.Registry on its own —
// everything goes through a VirtualMachine.
type VirtualMachine struct {
	options    *options.Options
	log        *zap.SugaredLogger
	closed     atomic.Bool
	heap       *heap.Heap
	actors     *actorsys.Registry
	interner   *lookup.Interner
	primitives *primitiveTable
}

// Heap returns the VirtualMachine's heap.
func (vm *VirtualMachine) Heap() *heap.Heap { return vm.heap }

// Actors returns the VirtualMachine's actor registry.
func (vm *VirtualMachine) Actors() *actorsys.Registry { return vm.actors }

// Interner returns the VirtualMachine's selector interner.
func (vm *VirtualMachine) Interner() *lookup.Interner { return vm.interner }
