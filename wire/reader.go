package wire

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/abiwire/errors"
)

// Reader is a cursor over wire bytes.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of data.
func NewReader(data []byte) *Reader {
	return &Reader{buf: data}
}

// Remaining returns the number of unconsumed bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Rest returns the unconsumed bytes without advancing.
func (r *Reader) Rest() []byte {
	return r.buf[r.off:]
}

// Offset returns the number of consumed bytes.
func (r *Reader) Offset() int {
	return r.off
}

// CheckRemaining fails with insufficient_data unless at least n bytes remain.
func CheckRemaining(r *Reader, n int, typeName string) error {
	if r.Remaining() < n {
		return errors.InsufficientData(errors.PhaseLift, typeName, n, r.Remaining())
	}
	return nil
}

// Take consumes n bytes. The returned slice aliases the Reader's buffer.
func (r *Reader) Take(n int, typeName string) ([]byte, error) {
	if err := CheckRemaining(r, n, typeName); err != nil {
		return nil, err
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

// ReadLength consumes an i32 length prefix. Negative prefixes cannot be
// converted to a size and fail with overflow.
func (r *Reader) ReadLength(typeName string) (int, error) {
	b, err := r.Take(4, typeName)
	if err != nil {
		return 0, err
	}
	n := int32(binary.BigEndian.Uint32(b))
	if n < 0 {
		return 0, errors.Overflow(errors.PhaseLift, typeName, n, "usize")
	}
	if int64(n) > int64(math.MaxInt) {
		return 0, errors.Overflow(errors.PhaseLift, typeName, n, "int")
	}
	return int(n), nil
}

func appendLength(buf []byte, n int, typeName string) []byte {
	if int64(n) > math.MaxInt32 {
		panic(errors.Overflow(errors.PhaseLower, typeName, n, "i32"))
	}
	return binary.BigEndian.AppendUint32(buf, uint32(n))
}

// preallocation hint bounded by the bytes actually present; every element
// consumes at least one byte.
func capHint(n int, r *Reader) int {
	if rem := r.Remaining(); n > rem {
		return rem
	}
	return n
}
