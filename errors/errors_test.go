package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLift,
				Kind:   KindInvalidEncoding,
				Type:   "option",
				Detail: "unexpected tag byte",
			},
			contains: []string{"[lift]", "invalid_encoding", "type option", "unexpected tag byte"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseLift,
				Kind:  KindTrailingData,
			},
			contains: []string{"[lift]", "trailing_data"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseTransfer,
				Kind:   KindAllocation,
				Detail: "guest memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[transfer]", "allocation", "guest memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLower,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseLift,
		Kind:  KindOverflow,
		Type:  "list",
	}

	if !err.Is(&Error{Phase: PhaseLift, Kind: KindOverflow}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseLower, Kind: KindOverflow}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseLift, Kind: KindTrailingData}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ErrOverflow) {
		t.Error("errors.Is should match kind sentinel")
	}
	if errors.Is(err, ErrInsufficientData) {
		t.Error("errors.Is should not match other sentinel")
	}

	wrapped := fmt.Errorf("decode args: %w", err)
	if !errors.Is(wrapped, ErrOverflow) {
		t.Error("errors.Is should see through fmt wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseLift, KindInvalidEncoding).
		Type("bool").
		Value(7).
		Cause(cause).
		Detail("unexpected byte %d for %s", 7, "bool").
		Build()

	if err.Phase != PhaseLift {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseLift)
	}
	if err.Kind != KindInvalidEncoding {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidEncoding)
	}
	if err.Type != "bool" {
		t.Errorf("Type = %v, want 'bool'", err.Type)
	}
	if err.Value != 7 {
		t.Errorf("Value = %v, want 7", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "unexpected byte 7 for bool" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InsufficientData", func(t *testing.T) {
		err := InsufficientData(PhaseLift, "u32", 4, 2)
		if err.Kind != KindInsufficientData {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInsufficientData)
		}
		if !strings.Contains(err.Detail, "2 < 4") {
			t.Errorf("Detail = %q, should contain have < need", err.Detail)
		}
	})

	t.Run("InvalidUTF8", func(t *testing.T) {
		err := InvalidUTF8(PhaseLift, []byte{0xff, 0xfe})
		if err.Kind != KindInvalidEncoding {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidEncoding)
		}
		if !strings.Contains(err.Detail, "fffe") {
			t.Errorf("Detail = %q, should contain hex preview", err.Detail)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseLift, "string", int32(-1), "usize")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
		if err.Value != int32(-1) {
			t.Errorf("Value = %v, want -1", err.Value)
		}
	})

	t.Run("TrailingData", func(t *testing.T) {
		err := TrailingData(PhaseLift, "list", 3)
		if err.Kind != KindTrailingData {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTrailingData)
		}
		if !strings.Contains(err.Detail, "count: 3") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("InvalidHandle", func(t *testing.T) {
		err := InvalidHandle(PhaseTransfer, "length %d exceeds capacity %d", 5, 4)
		if err.Kind != KindInvalidHandle {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidHandle)
		}
		if err.Detail != "length 5 exceeds capacity 4" {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("CapacityExceeded", func(t *testing.T) {
		err := CapacityExceeded(PhaseFingerprint, 16385, 16384)
		if !errors.Is(err, ErrCapacity) {
			t.Error("should match ErrCapacity")
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseTransfer, 1024, 8, errors.New("oom"))
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseTransfer, 70000, 24)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
	})
}

func TestChecksumMismatchError(t *testing.T) {
	err := &ChecksumMismatchError{
		Source: "glue.yaml",
		Mismatches: []Mismatch{
			{Name: "tags", Type: "list<string>", Expected: 1, Actual: 2},
			{Name: "age", Type: "u8", Expected: 3, Actual: 45472},
		},
	}

	msg := err.Error()
	for _, s := range []string{"2 type(s)", "glue.yaml", "tags (list<string>)", "expected 3, got 45472"} {
		if !strings.Contains(msg, s) {
			t.Errorf("message %q does not contain %q", msg, s)
		}
	}
	if strings.Index(msg, "age") > strings.Index(msg, "tags") {
		t.Error("mismatches should be listed by name")
	}

	if !errors.Is(err, ErrChecksumMismatch) {
		t.Error("should match ErrChecksumMismatch")
	}
	if errors.Is(err, ErrTrailingData) {
		t.Error("should not match other kinds")
	}

	var target *ChecksumMismatchError
	if !errors.As(fmt.Errorf("verify: %w", err), &target) {
		t.Error("errors.As should find ChecksumMismatchError")
	}

	empty := &ChecksumMismatchError{}
	if !strings.Contains(empty.Error(), "no types") {
		t.Errorf("empty message = %q", empty.Error())
	}
}
