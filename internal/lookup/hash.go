// Package lookup implements selector hashing, a selector-string interner,
// and the cycle-safe message-lookup algorithm that walks an object's Map
// and its parent slots to resolve a send (spec.md §4.6).
package lookup

import "github.com/cespare/xxhash/v2"

// Hash hashes a selector string (or any other slot name) into the 64-bit
// value SlotDescriptor.SelectorHash entries are compared against. Two
// distinct selectors colliding is a correctness bug in the evaluator's
// slot table, not something this package guards against at lookup time —
// xxhash's collision rate at the selector-table sizes a Self image
// reaches is considered acceptable, matching the tradeoff
// `fmstephe-memorymanager` makes for its own object-store keys.
func Hash(selector string) uint64 {
	return xxhash.Sum64String(selector)
}

// AssignSelector returns the conventional "name:" assignment selector for
// a data slot named name, mirroring Self's convention that every mutable
// data slot implicitly installs a matching single-keyword assignment
// selector (spec.md §4.3).
func AssignSelector(name string) string {
	return name + ":"
}

// SelectorHash is the hash pair a lookup carries through the algorithm
// (spec.md §4.6): Regular is always checked against a map's slots first;
// AssignTarget is checked afterward, but only when IsAssignment is set,
// against the bare data-slot name an assignment selector ("name:")
// targets. Keeping both hashes together (rather than running two
// separate top-to-bottom traversals) is what makes the per-map ordering
// in the spec's algorithm — regular match wins over assign-target match
// at the *same* map, before either one recurses to parents — actually
// reproducible.
type SelectorHash struct {
	Regular      uint64
	AssignTarget uint64
	IsAssignment bool
}

// NewSelectorHash builds the hash pair for an ordinary (non-assignment)
// message send.
func NewSelectorHash(selector string) SelectorHash {
	return SelectorHash{Regular: Hash(selector)}
}

// NewAssignSelectorHash builds the hash pair for sending the assignment
// selector "name:": Regular still hashes the literal "name:" string, so
// an explicitly declared slot named "name:" (a user-written setter
// method) is found and takes priority, exactly as spec.md §4.6 step 4
// requires; AssignTarget hashes the bare "name", the data slot step 5
// falls back to writing when no explicit setter shadows it.
func NewAssignSelectorHash(name string) SelectorHash {
	return SelectorHash{
		Regular:      Hash(AssignSelector(name)),
		AssignTarget: Hash(name),
		IsAssignment: true,
	}
}
