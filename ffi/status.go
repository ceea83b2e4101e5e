package ffi

import (
	"strconv"

	"github.com/wippyai/abiwire/errors"
)

// StatusCode is the outcome of a call across the boundary.
// It is a uint32 on the wire.
type StatusCode uint32

const (
	// StatusSuccess means the call completed and its output is valid.
	StatusSuccess StatusCode = iota
	// StatusError means a caller-modeled error occurred; the error buffer
	// holds the lowered error value.
	StatusError
	// StatusUnexpectedError means an unrecoverable fault escaped the call;
	// the error buffer holds a best-effort diagnostic string.
	StatusUnexpectedError
	// StatusCancelled means the call was aborted before producing a result.
	StatusCancelled
)

func (c StatusCode) String() string {
	switch c {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusUnexpectedError:
		return "unexpected_error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "status(" + strconv.FormatUint(uint64(c), 10) + ")"
	}
}

// Valid reports whether c is one of the four defined codes.
func (c StatusCode) Valid() bool {
	return c <= StatusCancelled
}

// StatusCodeFromUint32 converts a raw code, rejecting unknown values.
func StatusCodeFromUint32(v uint32) (StatusCode, error) {
	c := StatusCode(v)
	if !c.Valid() {
		return 0, errors.New(errors.PhaseCall, errors.KindInvalidStatus).
			Value(v).
			Detail("unknown status code: %d", v).
			Build()
	}
	return c, nil
}

// CallStatus pairs a status code with the error buffer it describes.
// The zero value is a successful status with a null buffer.
type CallStatus struct {
	Code  StatusCode
	Error Buffer
}

// NewCallStatus returns a status ready to be passed to a call.
func NewCallStatus() CallStatus {
	return CallStatus{Code: StatusSuccess, Error: Default[Buffer]()}
}

// IsSuccess reports whether the call succeeded.
func (s *CallStatus) IsSuccess() bool {
	return s.Code == StatusSuccess
}

// SetError records a caller-modeled error. buf holds the lowered error value.
func (s *CallStatus) SetError(buf Buffer) {
	s.Code = StatusError
	s.Error = buf
}

// SetUnexpected records an unrecoverable fault with a diagnostic message.
func (s *CallStatus) SetUnexpected(msg string) {
	s.Code = StatusUnexpectedError
	s.Error = FromBytes([]byte(msg))
}

// SetCancelled records that the call was aborted.
func (s *CallStatus) SetCancelled() {
	s.Code = StatusCancelled
	s.Error = Buffer{}
}

// TakeError moves the error buffer out of the status.
func (s *CallStatus) TakeError() Buffer {
	buf := s.Error
	s.Error = Buffer{}
	return buf
}
