package metadata

import (
	"fmt"
	"strings"

	"github.com/wippyai/abiwire/errors"
)

// Fingerprint is an immutable structural descriptor of a type.
// Fingerprints are comparable with ==.
type Fingerprint struct {
	data string
}

// FromCode returns the fingerprint of a primitive type.
func FromCode(c Code) Fingerprint {
	return Fingerprint{data: string([]byte{byte(c)})}
}

// Len returns the fingerprint size in bytes.
func (f Fingerprint) Len() int {
	return len(f.data)
}

// Bytes returns a copy of the fingerprint bytes.
func (f Fingerprint) Bytes() []byte {
	return []byte(f.data)
}

// AppendTo appends the fingerprint bytes to dst.
func (f Fingerprint) AppendTo(dst []byte) []byte {
	return append(dst, f.data...)
}

// Checksum returns the 16-bit checksum of the fingerprint bytes.
func (f Fingerprint) Checksum() uint16 {
	return fold(f.data)
}

// IsZero reports whether the fingerprint is empty.
func (f Fingerprint) IsZero() bool {
	return f.data == ""
}

// String renders the fingerprint as space separated hex bytes.
func (f Fingerprint) String() string {
	var b strings.Builder
	for i := 0; i < len(f.data); i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", f.data[i])
	}
	return b.String()
}

// Describe renders the fingerprint as a type expression, e.g. "map<string, list<u8>>".
// Unknown codes and truncated fingerprints render as "?".
func (f Fingerprint) Describe() string {
	var b strings.Builder
	rest := describe(&b, []byte(f.data))
	if len(rest) > 0 {
		b.WriteString(" ?")
	}
	return b.String()
}

func describe(b *strings.Builder, data []byte) []byte {
	if len(data) == 0 {
		b.WriteByte('?')
		return nil
	}
	c := Code(data[0])
	data = data[1:]
	if int(c) >= len(codeNames) {
		b.WriteByte('?')
		return data
	}
	b.WriteString(c.String())
	switch c {
	case TypeOption, TypeVec:
		b.WriteByte('<')
		data = describe(b, data)
		b.WriteByte('>')
	case TypeHashMap:
		b.WriteByte('<')
		data = describe(b, data)
		b.WriteString(", ")
		data = describe(b, data)
		b.WriteByte('>')
	}
	return data
}

// FromBytes wraps fingerprint bytes received from the other side of the boundary.
func FromBytes(data []byte) (Fingerprint, error) {
	if len(data) > MaxSize {
		return Fingerprint{}, errors.CapacityExceeded(errors.PhaseFingerprint, len(data), MaxSize)
	}
	return Fingerprint{data: string(data)}, nil
}
