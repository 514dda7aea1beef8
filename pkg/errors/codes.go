package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeInvalidInput represents client-side errors where the provided
	// configuration or argument doesn't meet the runtime's requirements.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories. These indicate bugs, assertion failures, or other
	// programming errors that shouldn't occur during normal operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Heap-specific error codes extend the base error taxonomy to handle the
// failure modes of the generational copying heap: reservation failures,
// token misuse, and the fatal invariant violations a collector can hit.
const (
	// ErrorCodeOutOfMemory indicates a generation could not satisfy a
	// reservation even after a collection.
	ErrorCodeOutOfMemory ErrorCode = "OUT_OF_MEMORY"

	// ErrorCodeTokenOverspend indicates an allocation token was asked to
	// carve out more bytes than it was reserved with. This is a programmer
	// error; Token.Allocate checks for it on every call.
	ErrorCodeTokenOverspend ErrorCode = "TOKEN_OVERSPEND"

	// ErrorCodeTokenReleased indicates an operation was attempted against
	// an allocation token after it was already released.
	ErrorCodeTokenReleased ErrorCode = "TOKEN_RELEASED"
)

// Lookup-specific error codes cover message-lookup and object-dispatch
// failures, most of which spec.md classifies as fatal invariant violations.
const (
	// ErrorCodeMarkerMismatch indicates a header was read at an address that
	// does not begin with the ObjectMarker tag.
	ErrorCodeMarkerMismatch ErrorCode = "MARKER_MISMATCH"

	// ErrorCodeForwardedDispatch indicates dispatch encountered a
	// ForwardedObject where a live object was expected.
	ErrorCodeForwardedDispatch ErrorCode = "FORWARDED_DISPATCH"

	// ErrorCodeUnknownVariant indicates an object-type byte that does not
	// correspond to any entry in the closed variant registry.
	ErrorCodeUnknownVariant ErrorCode = "UNKNOWN_VARIANT"

	// ErrorCodeTypeMismatch indicates a primitive's receiver or argument
	// was of an unexpected variant.
	ErrorCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrorCodeIndexOutOfBounds indicates a byte/array indexing primitive
	// was given an out-of-range index.
	ErrorCodeIndexOutOfBounds ErrorCode = "INDEX_OUT_OF_BOUNDS"

	// ErrorCodeCrossActorWrite indicates a slot write would have stored a
	// direct reference to an object owned by a different, non-Global
	// actor than the object being written into — a spec.md §5/§8
	// Invariant 4 violation. Only an ActorProxy may cross that boundary.
	ErrorCodeCrossActorWrite ErrorCode = "CROSS_ACTOR_WRITE"
)
