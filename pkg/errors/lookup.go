package errors

// LookupError provides specialized error handling for message-lookup and
// object-dispatch failures. Most of these are the InvariantViolation class
// from spec.md §7 and are expected to be fatal; the type exists so debug
// builds can format a rich diagnostic before panicking.
type LookupError struct {
	*baseError
	selector     string // The selector being looked up, if known.
	receiverType string // The variant name of the receiver, if known.
}

// NewLookupError creates a new lookup-specific error with the provided context.
func NewLookupError(err error, code ErrorCode, msg string) *LookupError {
	return &LookupError{baseError: NewBaseError(err, code, msg)}
}

// Override base error methods to return *LookupError instead of *baseError.

// WithMessage updates the error message while maintaining the LookupError type.
func (le *LookupError) WithMessage(msg string) *LookupError {
	le.baseError.WithMessage(msg)
	return le
}

// WithCode sets the error code while preserving the LookupError type.
func (le *LookupError) WithCode(code ErrorCode) *LookupError {
	le.baseError.WithCode(code)
	return le
}

// WithDetail adds contextual information while maintaining the LookupError type.
func (le *LookupError) WithDetail(key string, value any) *LookupError {
	le.baseError.WithDetail(key, value)
	return le
}

// WithSelector records which selector was being resolved.
func (le *LookupError) WithSelector(selector string) *LookupError {
	le.selector = selector
	return le
}

// WithReceiverType records the variant name of the receiver involved.
func (le *LookupError) WithReceiverType(receiverType string) *LookupError {
	le.receiverType = receiverType
	return le
}

// Selector returns the selector that was being resolved.
func (le *LookupError) Selector() string {
	return le.selector
}

// ReceiverType returns the variant name of the receiver involved.
func (le *LookupError) ReceiverType() string {
	return le.receiverType
}

// NewMarkerMismatchError creates an error for a header read at an address
// that does not begin with the ObjectMarker tag.
func NewMarkerMismatchError(receiverType string) *LookupError {
	return NewLookupError(nil, ErrorCodeMarkerMismatch, "object header marker mismatch").
		WithReceiverType(receiverType)
}

// NewForwardedDispatchError creates an error for dispatch reaching a
// ForwardedObject tombstone instead of a live object.
func NewForwardedDispatchError(selector string) *LookupError {
	return NewLookupError(nil, ErrorCodeForwardedDispatch, "dispatch reached a forwarded object").
		WithSelector(selector)
}

// NewUnknownVariantError creates an error for an object-type byte outside
// the closed variant registry.
func NewUnknownVariantError(kind int) *LookupError {
	return NewLookupError(nil, ErrorCodeUnknownVariant, "unknown object variant").
		WithDetail("variantKind", kind)
}

// NewTypeMismatchError creates an error for a primitive invoked against a
// receiver or argument of an unexpected variant.
func NewTypeMismatchError(selector, receiverType string) *LookupError {
	return NewLookupError(nil, ErrorCodeTypeMismatch, "receiver or argument has unexpected variant").
		WithSelector(selector).
		WithReceiverType(receiverType)
}

// NewIndexOutOfBoundsError creates an error for an out-of-range byte/array index.
func NewIndexOutOfBoundsError(index, length int) *LookupError {
	return NewLookupError(nil, ErrorCodeIndexOutOfBounds, "index out of bounds").
		WithDetail("index", index).
		WithDetail("length", length)
}

// NewCrossActorWriteError creates an error for a slot write that would
// have let ownerActor reference a non-Global object owned by a different
// actor directly, bypassing the ActorProxy boundary spec.md §5 requires.
func NewCrossActorWriteError(ownerActor, referencedActor uint32) *LookupError {
	return NewLookupError(nil, ErrorCodeCrossActorWrite, "slot write would cross an actor boundary without an ActorProxy").
		WithDetail("ownerActor", ownerActor).
		WithDetail("referencedActor", referencedActor)
}
