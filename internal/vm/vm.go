package vm

import (
	"context"
	"fmt"

	"github.com/nilslef/selfrt/internal/actorsys"
	"github.com/nilslef/selfrt/internal/heap"
	"github.com/nilslef/selfrt/internal/lookup"
	"github.com/nilslef/selfrt/internal/object"
	"github.com/nilslef/selfrt/internal/value"
)

// New assembles a VirtualMachine: the selector interner first (nothing
// else depends on having objects allocated to build it), then the actor
// registry, then the heap, mirroring the teacher's dependency-ordered
// engine construction, and finally bootstraps the traits objects every
// later Lookup against a primitive receiver needs to have already been
// installed.
func New(ctx context.Context, config *Config) (*VirtualMachine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, fmt.Errorf("invalid configuration")
	}

	interner := lookup.NewInterner()

	actors, err := actorsys.New(&actorsys.Config{Logger: config.Logger})
	if err != nil {
		return nil, fmt.Errorf("constructing actor registry: %w", err)
	}

	h, err := heap.New(ctx, &heap.Config{Options: config.Options, Logger: config.Logger})
	if err != nil {
		return nil, fmt.Errorf("constructing heap: %w", err)
	}

	machine := &VirtualMachine{
		options:    config.Options,
		log:        config.Logger,
		heap:       h,
		actors:     actors,
		interner:   interner,
		primitives: newPrimitiveTable(),
	}

	if err := bootstrapTraits(machine); err != nil {
		return nil, fmt.Errorf("bootstrapping traits: %w", err)
	}

	config.Logger.Infow("virtual machine initialized")
	return machine, nil
}

// TraitsFor returns the traits object backing kind, if it was bootstrapped.
func (vm *VirtualMachine) TraitsFor(kind object.VariantKind) (value.Value, bool) {
	return vm.heap.WellKnownTraits(kind)
}

// PrimitiveFor returns the Primitive registered for selectorHash, if any.
func (vm *VirtualMachine) PrimitiveFor(selectorHash uint64) (Primitive, bool) {
	return vm.primitives.Lookup(selectorHash)
}

// Close closes the VirtualMachine's heap; the actor registry has no
// teardown of its own and is left as is. Idempotent: a second Close is a
// no-op.
func (vm *VirtualMachine) Close() error {
	if !vm.closed.CompareAndSwap(false, true) {
		return nil
	}
	if err := vm.heap.Close(); err != nil {
		return err
	}
	vm.log.Infow("virtual machine closed")
	return nil
}
