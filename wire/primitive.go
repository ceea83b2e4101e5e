package wire

import (
	"unicode/utf8"

	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/ffi"
	"github.com/wippyai/abiwire/metadata"
)

var (
	// Bool is lowered to an int8 holding 0 or 1.
	Bool = &BoolCodec{fp: metadata.FromCode(metadata.TypeBool)}
	// String is lowered to a Buffer holding the raw UTF-8 bytes.
	String = &StringCodec{fp: metadata.FromCode(metadata.TypeString)}
)

// BoolCodec is the codec for bool.
type BoolCodec struct {
	fp metadata.Fingerprint
}

func (c *BoolCodec) Lower(v bool) int8 {
	if v {
		return 1
	}
	return 0
}

func (c *BoolCodec) Lift(v int8) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.InvalidEncoding(errors.PhaseLift, "bool", v, "unexpected byte for Boolean")
	}
}

func (c *BoolCodec) Write(buf []byte, v bool) []byte {
	return append(buf, byte(c.Lower(v)))
}

func (c *BoolCodec) Read(r *Reader) (bool, error) {
	b, err := r.Take(1, "bool")
	if err != nil {
		return false, err
	}
	return c.Lift(int8(b[0]))
}

func (c *BoolCodec) Fingerprint() metadata.Fingerprint { return c.fp }

func (c *BoolCodec) Default() bool { return false }

// StringCodec is the codec for UTF-8 strings.
type StringCodec struct {
	fp metadata.Fingerprint
}

// Lower transfers the raw string bytes, without a length prefix, into a Buffer.
func (c *StringCodec) Lower(v string) ffi.Buffer {
	return ffi.FromBytes([]byte(v))
}

// Lift destroys buf and validates its contents as UTF-8.
func (c *StringCodec) Lift(buf ffi.Buffer) (string, error) {
	data, err := buf.DestroyIntoBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.InvalidUTF8(errors.PhaseLift, data)
	}
	return string(data), nil
}

func (c *StringCodec) Write(buf []byte, v string) []byte {
	buf = appendLength(buf, len(v), "string")
	return append(buf, v...)
}

func (c *StringCodec) Read(r *Reader) (string, error) {
	n, err := r.ReadLength("string")
	if err != nil {
		return "", err
	}
	b, err := r.Take(n, "string")
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.InvalidUTF8(errors.PhaseLift, b)
	}
	return string(b), nil
}

func (c *StringCodec) Fingerprint() metadata.Fingerprint { return c.fp }

func (c *StringCodec) Default() string { return "" }
