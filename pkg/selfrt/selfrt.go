// Package selfrt is the public entry point to the object runtime: it
// wires a *vm.VirtualMachine behind a small facade so a host program
// (CLI, embedder) never constructs the heap, actor registry, or traits
// bootstrap directly.
package selfrt

import (
	"context"
	"fmt"

	"github.com/nilslef/selfrt/internal/heap"
	"github.com/nilslef/selfrt/internal/value"
	"github.com/nilslef/selfrt/internal/vm"
	"github.com/nilslef/selfrt/pkg/logger"
	"github.com/nilslef/selfrt/pkg/options"
)

// ParsedScript is the compiled form of a top-level script the lexer,
// parser, and AST-to-Method compiler above this package produce. None of
// that front end is this package's concern: by the time a ParsedScript
// reaches ExecuteEntrypointScript, it is nothing more than a function
// ready to run against a freshly constructed InterpreterContext and
// allocation Token, exactly the way any other Primitive runs.
type ParsedScript func(ctx *vm.InterpreterContext, token *heap.Token) vm.Completion

// Runtime is a running instance of the object runtime: a VirtualMachine
// plus the options it was built with.
type Runtime struct {
	machine *vm.VirtualMachine
	options *options.Options
}

// New constructs a Runtime named for logging purposes, applying any
// functional options over the defaults.
func New(ctx context.Context, name string, opts ...options.OptionFunc) (*Runtime, error) {
	log := logger.New(name)

	defaultOpts := options.NewDefaultOptions()
	for _, opt := range opts {
		if err := opt(&defaultOpts); err != nil {
			return nil, fmt.Errorf("applying runtime option: %w", err)
		}
	}

	machine, err := vm.New(ctx, &vm.Config{Options: &defaultOpts, Logger: log})
	if err != nil {
		return nil, fmt.Errorf("constructing virtual machine: %w", err)
	}

	return &Runtime{machine: machine, options: &defaultOpts}, nil
}

// ExecuteEntrypointScript runs script against a fresh allocation token and
// interpreter context, under actor id 0. The Runtime does not spawn or
// register an actor for that id in the actor registry. It returns the script's final value on a
// normal completion and an error otherwise — a non-local return escaping
// the top level is itself treated as a runtime error, since there is no
// enclosing activation left for it to target.
func (r *Runtime) ExecuteEntrypointScript(ctx context.Context, script ParsedScript) (value.Value, error) {
	if script == nil {
		return value.Value(0), fmt.Errorf("nil entrypoint script")
	}

	token, err := r.machine.Heap().Reserve(heap.Young, defaultEntrypointBudget)
	if err != nil {
		return value.Value(0), fmt.Errorf("reserving entrypoint allocation budget: %w", err)
	}
	defer token.Release()

	interp := &vm.InterpreterContext{VM: r.machine, ActorID: 0}
	completion := script(interp, token)

	switch completion.Kind {
	case vm.Normal:
		return completion.Result, nil
	case vm.NonLocalReturn:
		return value.Value(0), fmt.Errorf("entrypoint script attempted a non-local return with no enclosing activation")
	default:
		return value.Value(0), completion.Err
	}
}

// defaultEntrypointBudget is a generous allocation reservation for a
// top-level script; individual primitives reserve their own budgets for
// anything beyond this.
const defaultEntrypointBudget = 1 << 20

// Close tears down the Runtime's VirtualMachine.
func (r *Runtime) Close() error {
	return r.machine.Close()
}
