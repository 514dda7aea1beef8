package vm

import "github.com/nilslef/selfrt/internal/value"

// CompletionKind classifies how a message send or primitive call
// finished (spec.md §6's evaluator result).
type CompletionKind uint8

const (
	// Normal means evaluation produced a Value in the usual way.
	Normal CompletionKind = iota
	// RuntimeError means evaluation signalled an error: err is always
	// non-nil and Result is the zero Value.
	RuntimeError
	// NonLocalReturn means a Block's "^expr" unwound past its own
	// activation toward the home activation named by Target.
	NonLocalReturn
)

// Completion is the closed result every evaluation step produces. Kind
// selects which fields are meaningful (Result for Normal, Err for
// RuntimeError, Target and Result for NonLocalReturn): callers must switch
// on Kind before reading Result, Err, or Target.
type Completion struct {
	Kind CompletionKind

	// Result holds the produced Value when Kind is Normal.
	Result value.Value

	// Err holds the failure when Kind is RuntimeError.
	Err error

	// Target identifies the home activation a NonLocalReturn is unwinding
	// toward, and Result (reused) carries the value being returned.
	Target value.Value
}

// NormalCompletion wraps v as a successful result.
func NormalCompletion(v value.Value) Completion {
	return Completion{Kind: Normal, Result: v}
}

// ErrorCompletion wraps err as a failed result.
func ErrorCompletion(err error) Completion {
	return Completion{Kind: RuntimeError, Err: err}
}

// NonLocalReturnCompletion builds a completion unwinding to target,
// carrying v as the value the enclosing method call should return.
func NonLocalReturnCompletion(target, v value.Value) Completion {
	return Completion{Kind: NonLocalReturn, Target: target, Result: v}
}

// IsNormal reports whether c completed without error or unwind.
func (c Completion) IsNormal() bool { return c.Kind == Normal }
