package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLower       Phase = "lower"       // Go value to wire bytes
	PhaseLift        Phase = "lift"        // wire bytes to Go value
	PhaseFingerprint Phase = "fingerprint" // type fingerprint composition
	PhaseTransfer    Phase = "transfer"    // buffer ownership handoff
	PhaseCall        Phase = "call"        // call status interpretation
	PhaseParse       Phase = "parse"       // type expression / manifest parsing
	PhaseConfig      Phase = "config"      // configuration loading
	PhaseVerify      Phase = "verify"      // fingerprint verification
)

// Kind categorizes the error
type Kind string

const (
	KindInsufficientData Kind = "insufficient_data"
	KindInvalidEncoding  Kind = "invalid_encoding"
	KindOverflow         Kind = "overflow"
	KindTrailingData     Kind = "trailing_data"
	KindInvalidHandle    Kind = "invalid_handle"
	KindCapacity         Kind = "capacity_exceeded"
	KindUnsupported      Kind = "unsupported"
	KindChecksumMismatch Kind = "checksum_mismatch"
	KindInvalidStatus    Kind = "invalid_status"
	KindCallError        Kind = "call_error"
	KindUnexpectedError  Kind = "unexpected_error"
	KindCancelled        Kind = "cancelled"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindAllocation       Kind = "allocation"
	KindNotFound         Kind = "not_found"
	KindInvalidInput     Kind = "invalid_input"
)

// Sentinels for errors.Is matching by kind alone.
var (
	ErrInsufficientData = &Error{Kind: KindInsufficientData}
	ErrInvalidEncoding  = &Error{Kind: KindInvalidEncoding}
	ErrOverflow         = &Error{Kind: KindOverflow}
	ErrTrailingData     = &Error{Kind: KindTrailingData}
	ErrInvalidHandle    = &Error{Kind: KindInvalidHandle}
	ErrCapacity         = &Error{Kind: KindCapacity}
	ErrUnsupported      = &Error{Kind: KindUnsupported}
	ErrChecksumMismatch = &Error{Kind: KindChecksumMismatch}
	ErrInvalidStatus    = &Error{Kind: KindInvalidStatus}
	ErrCallError        = &Error{Kind: KindCallError}
	ErrUnexpectedError  = &Error{Kind: KindUnexpectedError}
	ErrCancelled        = &Error{Kind: KindCancelled}
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string // wire type name, e.g. "u32" or "list"
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// Kinds must be equal; phases are compared only when the target sets one.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Phase == "" || e.Phase == t.Phase
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Type sets the wire type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InsufficientData creates an error for a cursor exhausted before a field was read
func InsufficientData(phase Phase, typeName string, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInsufficientData,
		Type:   typeName,
		Detail: fmt.Sprintf("not enough bytes remaining in buffer (%d < %d)", have, need),
		Value:  need,
	}
}

// InvalidEncoding creates an error for an out-of-range tag or malformed payload
func InvalidEncoding(phase Phase, typeName string, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Type:   typeName,
		Detail: detail,
		Value:  value,
	}
}

// InvalidUTF8 creates an invalid encoding error for a malformed UTF-8 payload
func InvalidUTF8(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Type:   "string",
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, typeName string, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Type:   typeName,
		Detail: fmt.Sprintf("value %v does not fit %s", value, target),
		Value:  value,
	}
}

// TrailingData creates an error for bytes left over after a complete decode
func TrailingData(phase Phase, typeName string, count int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTrailingData,
		Type:   typeName,
		Detail: fmt.Sprintf("junk data left in buffer after lifting (count: %d)", count),
		Value:  count,
	}
}

// InvalidHandle creates an error for raw parts that violate the buffer invariants
func InvalidHandle(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// CapacityExceeded creates an error for a fingerprint larger than the accumulator
func CapacityExceeded(phase Phase, need, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindCapacity,
		Detail: fmt.Sprintf("need %d bytes, limit is %d", need, limit),
		Value:  need,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, offset, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("memory access out of bounds: offset=%d, length=%d", offset, length),
		Value:  offset,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidInput,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Mismatch is a single type whose computed checksum differs from the expected one
type Mismatch struct {
	Name     string // e.g., "user-profile"
	Type     string // e.g., "map<string, list<u8>>"
	Expected uint16
	Actual   uint16
}

// ChecksumMismatchError is returned when one or more fingerprints disagree
// between generated glue and the compiled library.
type ChecksumMismatchError struct {
	Source     string
	Mismatches []Mismatch
}

func (e *ChecksumMismatchError) Error() string {
	if len(e.Mismatches) == 0 {
		return "[verify] checksum_mismatch: no types specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("checksum mismatch for %d type(s)", len(e.Mismatches)))
	if e.Source != "" {
		b.WriteString(" in ")
		b.WriteString(e.Source)
	}
	b.WriteString(":\n")

	sorted := make([]Mismatch, len(e.Mismatches))
	copy(sorted, e.Mismatches)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, m := range sorted {
		b.WriteString(fmt.Sprintf("\n  - %s (%s): expected %d, got %d", m.Name, m.Type, m.Expected, m.Actual))
	}

	return b.String()
}

// Is reports whether target matches this error type.
// A checksum_mismatch *Error target also matches.
func (e *ChecksumMismatchError) Is(target error) bool {
	switch t := target.(type) {
	case *ChecksumMismatchError:
		return true
	case *Error:
		return t.Kind == KindChecksumMismatch && (t.Phase == "" || t.Phase == PhaseVerify)
	}
	return false
}
