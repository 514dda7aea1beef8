package vm

import "github.com/nilslef/selfrt/internal/heap"

// InterpreterContext carries the per-send state a Primitive needs: which
// VirtualMachine it's running against and which actor owns the current
// activation (so a primitive allocates into that actor's heap domain).
type InterpreterContext struct {
	VM      *VirtualMachine
	ActorID uint32
}

// SourceRange identifies the source span a primitive was invoked from,
// for error messages and stack traces. It carries no file identity of its
// own; the activation chain that led to the call supplies that.
type SourceRange struct {
	Start int
	End   int
}

// Primitive is a built-in operation installed on a traits object in place
// of a Method body — spec.md §4.8's escape hatch for behavior (integer
// arithmetic, array indexing, byte-array access) that isn't itself
// expressible as message sends. A Primitive receives its receiver and
// arguments as Tracked handles so it remains safe to call even if
// resolving one argument triggers an allocation and, transitively, a
// collection before the primitive finishes reading the others, and the
// Token the evaluator reserved for this step so it can allocate a result
// (e.g. a new ByteArray from string concatenation) without reserving one
// itself.
type Primitive func(ctx *InterpreterContext, token *heap.Token, receiver heap.Tracked, args []heap.Tracked, src SourceRange) Completion

// primitiveTable maps a selector hash directly to its Primitive
// implementation. It is reached only through VirtualMachine.PrimitiveFor;
// internal/lookup's Map search does not consult it.
type primitiveTable struct {
	byHash map[uint64]Primitive
}

func newPrimitiveTable() *primitiveTable {
	return &primitiveTable{byHash: make(map[uint64]Primitive)}
}

// Register installs fn under selectorHash, overwriting any previous
// registration. Bootstrap is the only expected caller; nothing in this
// codebase re-registers a primitive after boot.
func (t *primitiveTable) Register(selectorHash uint64, fn Primitive) {
	t.byHash[selectorHash] = fn
}

// Lookup returns the Primitive registered for selectorHash, if any.
func (t *primitiveTable) Lookup(selectorHash uint64) (Primitive, bool) {
	fn, ok := t.byHash[selectorHash]
	return fn, ok
}
