// Package errors provides structured error types for the abiwire library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the wire type being processed, a detail message and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLift, errors.KindInvalidEncoding).
//		Type("option").
//		Value(7).
//		Detail("unexpected tag byte %d", 7).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InsufficientData(errors.PhaseLift, "u32", 4, 2)
//	err := errors.TrailingData(errors.PhaseLift, "list", 1)
//
// All errors implement the standard error interface and support errors.Is/As.
// Kind sentinels match an error of that kind in any phase:
//
//	if errors.Is(err, errors.ErrTrailingData) { ... }
package errors
