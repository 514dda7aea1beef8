// This package addresses the fundamental challenge that generic error handling presents in complex
// systems: when an error occurs, developers and operators need much more than just "something went wrong."
// They need to understand exactly what failed, why it failed, where it failed, and most importantly,
// what they can do about it. This package transforms error handling from reactive debugging into
// proactive problem resolution.
//
// Architecture and Design Philosophy:
//
// The error system is built around a hierarchical structure that starts with a foundational baseError
// and extends into domain-specific error types. This design provides several key advantages:
// it maintains consistency across all error types while allowing specialized context for different
// domains, enables rich error chaining that preserves the complete failure context, supports
// programmatic error handling through standardized error codes, and facilitates comprehensive
// logging and monitoring through structured error details.
//
// The system recognizes that different parts of the runtime fail in fundamentally different ways
// and require different types of contextual information for effective diagnosis. A validation error
// needs to know which field failed and what rule was violated. A heap error needs to know which
// generation and how many bytes were involved. A lookup error needs to know which selector and
// receiver variant were being processed. By capturing this domain-specific context at the point of
// failure, the system enables much more intelligent error handling throughout the runtime.
//
// Error Classification and Codes:
//
// Central to this system is a comprehensive error code taxonomy that provides standardized
// categorization of failures. These codes serve multiple purposes: they enable programmatic
// error handling that doesn't rely on parsing error messages, they provide consistent
// categorization for monitoring and alerting systems, they facilitate error recovery logic
// by identifying specific failure modes, and they support internationalization by separating
// error identification from error presentation.
//
// The error codes are organized into several categories. Base codes cover fundamental failure
// types that can occur in any system: INVALID_INPUT for client-side validation problems and
// INTERNAL_ERROR for unexpected system failures. Heap-specific codes handle the unique failure
// modes of the generational copying heap: OUT_OF_MEMORY for reservation failures, and
// TOKEN_OVERSPEND/TOKEN_RELEASED for allocation-token misuse. Lookup-specific codes address the
// message-lookup and dispatch path: MARKER_MISMATCH, FORWARDED_DISPATCH, and UNKNOWN_VARIANT
// cover the InvariantViolation class from spec.md §7; TYPE_MISMATCH and INDEX_OUT_OF_BOUNDS
// cover primitive-level failures that the evaluator can recover from.
package errors

import (
	stdErrors "errors"
)

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
//
// Example usage:
//
//	if errors.IsValidationError(err) {
//	    // Handle validation-specific error recovery
//	}
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsHeapError determines if an error is related to heap operations, such as
// a failed reservation or allocation-token misuse. Heap errors often require
// different handling strategies than other error types because they may
// indicate the generation is genuinely exhausted.
//
// Example usage:
//
//	if errors.IsHeapError(err) {
//	    heapErr, _ := errors.AsHeapError(err)
//	    switch heapErr.Code() {
//	    case errors.ErrorCodeOutOfMemory:
//	        surfaceOutOfMemoryCompletion()
//	    }
//	}
func IsHeapError(err error) bool {
	var he *HeapError
	return stdErrors.As(err, &he)
}

// IsLookupError identifies errors that occurred during message lookup or
// object dispatch, such as marker mismatches or unknown variants. These
// often indicate a fatal invariant violation rather than a recoverable
// condition.
//
// Example usage:
//
//	if errors.IsLookupError(err) {
//	    lookupErr, _ := errors.AsLookupError(err)
//	    if lookupErr.Code() == errors.ErrorCodeForwardedDispatch {
//	        panic(lookupErr)
//	    }
//	}
func IsLookupError(err error) bool {
	var le *LookupError
	return stdErrors.As(err, &le)
}

// AsValidationError safely extracts a ValidationError from an error chain, providing access
// to validation-specific context such as which field failed, what rule was violated, and
// what values were provided versus expected.
//
// Example usage:
//
//	if validationErr, ok := errors.AsValidationError(err); ok {
//	    logData := map[string]interface{}{
//	        "field": validationErr.Field(),
//	        "rule": validationErr.Rule(),
//	    }
//	    logger.Error("Validation failed", logData)
//	}
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsHeapError extracts HeapError context from an error chain, providing
// access to heap-specific information such as generation, requested bytes,
// and available bytes. This context is crucial for diagnosing capacity
// problems.
//
// Example usage:
//
//	if heapErr, ok := errors.AsHeapError(err); ok {
//	    errorContext := map[string]interface{}{
//	        "generation": heapErr.Generation(),
//	        "requested":  heapErr.Requested(),
//	        "available":  heapErr.Available(),
//	    }
//	    handleHeapFailure(errorContext)
//	}
func AsHeapError(err error) (*HeapError, bool) {
	var he *HeapError
	if stdErrors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// AsLookupError extracts LookupError context, providing access to
// lookup-specific information such as the selector and receiver variant
// involved. This context is essential for diagnosing invariant violations.
//
// Example usage:
//
//	if lookupErr, ok := errors.AsLookupError(err); ok {
//	    diagnostics := map[string]interface{}{
//	        "selector":     lookupErr.Selector(),
//	        "receiverType": lookupErr.ReceiverType(),
//	    }
//	    logDiagnostic(diagnostics)
//	}
func AsLookupError(err error) (*LookupError, bool) {
	var le *LookupError
	if stdErrors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or returns
// ErrorCodeInternal for errors that don't have specific codes. This function provides
// a consistent way to categorize errors for monitoring and handling purposes.
//
// Example usage:
//
//	errorCode := errors.GetErrorCode(err)
//	metrics.IncrementErrorCounter(string(errorCode))
func GetErrorCode(err error) ErrorCode {
	// Try ValidationError first.
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}

	// Try HeapError next.
	if he, ok := AsHeapError(err); ok {
		return he.Code()
	}

	// Try LookupError.
	if le, ok := AsLookupError(err); ok {
		return le.Code()
	}

	// For any other error, return a generic internal error code.
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports them,
// returning an empty map for errors without details. This function provides consistent
// access to additional error context regardless of the specific error type.
func GetErrorDetails(err error) map[string]any {
	// Try ValidationError first.
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}

	// Try HeapError next.
	if he, ok := AsHeapError(err); ok {
		if details := he.Details(); details != nil {
			return details
		}
	}

	// Try LookupError.
	if le, ok := AsLookupError(err); ok {
		if details := le.Details(); details != nil {
			return details
		}
	}

	// Return empty map for errors without details.
	return make(map[string]any)
}
