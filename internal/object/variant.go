package object

// headerWordSize is the size in bytes of the two-word Header prefix that
// precedes every object's payload.
const headerWordSize = 16

// Object is implemented by every member of the closed variant registry. The
// heap package sizes, clones and finalizes objects through this interface;
// to find an object's outgoing references it type-switches on the concrete
// variant structs (heap's references function).
type Object interface {
	// Hdr returns the object's header for marker checks, kind dispatch, and
	// forwarding.
	Hdr() *Header

	// SizeInMemory reports the object's footprint in bytes, header
	// included, for allocation-token accounting.
	SizeInMemory() int

	// CanFinalize reports whether this object carries a finalizer the GC
	// must run before the memory backing it is reused. Only Managed
	// objects return true.
	CanFinalize() bool

	// CloneInto returns a structural copy of the receiver for the given
	// owning actor, sharing the same Map reference. Used by the heap's
	// copying collector and by explicit clone primitives.
	CloneInto(actorID uint32) Object
}

// Finalizer is implemented by objects that run cleanup when collected.
// Only Managed satisfies it.
type Finalizer interface {
	Finalize() error
}

// roundUpWord rounds n up to the nearest multiple of 8, matching the
// 8-byte-aligned ObjectReference addressing value.Value assumes.
func roundUpWord(n int) int {
	const word = 8
	return (n + word - 1) &^ (word - 1)
}

// KindOf is a convenience for dispatch code that only has an Object and
// wants its variant kind without an extra Hdr() call.
func KindOf(o Object) VariantKind {
	return o.Hdr().Kind()
}
