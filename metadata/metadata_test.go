package metadata

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	abierrors "github.com/wippyai/abiwire/errors"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{"empty", nil, 24586},
		{"u8", []byte{0}, 45472},
		{"string", []byte{11}, 55893},
		{"list<u8>", []byte{13, 0}, 36465},
		{"list<i8>", []byte{13, 4}, 37677},
		{"option<u8>", []byte{12, 0}, 12874},
		{"map<string, list<u32>>", []byte{14, 11, 13, 2}, 47972},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum(% x) = %d, want %d", tt.data, got, tt.want)
			}
			f, err := FromBytes(tt.data)
			if err != nil {
				t.Fatalf("FromBytes: %v", err)
			}
			if got := f.Checksum(); got != tt.want {
				t.Errorf("Fingerprint.Checksum() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromCode(t *testing.T) {
	f := FromCode(TypeU8)
	if !bytes.Equal(f.Bytes(), []byte{0}) {
		t.Errorf("Bytes() = % x, want 00", f.Bytes())
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
	if f.Checksum() != 45472 {
		t.Errorf("Checksum() = %d, want 45472", f.Checksum())
	}
	if f != FromCode(TypeU8) {
		t.Error("fingerprints of the same code should be equal")
	}
}

func TestBuilder_Composition(t *testing.T) {
	listU8 := NewBuilder().Code(TypeVec).Concat(FromCode(TypeU8)).MustBuild()
	listI8 := MustGeneric(TypeVec, FromCode(TypeI8))

	if !bytes.Equal(listU8.Bytes(), []byte{13, 0}) {
		t.Errorf("list<u8> = % x", listU8.Bytes())
	}
	if listU8 == listI8 {
		t.Error("list<u8> and list<i8> must differ")
	}
	if listU8.Checksum() == listI8.Checksum() {
		t.Error("list<u8> and list<i8> checksums should differ")
	}

	again := MustGeneric(TypeVec, FromCode(TypeU8))
	if again != listU8 {
		t.Error("independently built fingerprints should be equal")
	}

	m := MustGeneric(TypeHashMap, FromCode(TypeString), MustGeneric(TypeVec, FromCode(TypeU32)))
	if !bytes.Equal(m.Bytes(), []byte{14, 11, 13, 2}) {
		t.Errorf("map<string, list<u32>> = % x", m.Bytes())
	}
}

func TestBuilder_Appenders(t *testing.T) {
	f := NewBuilder().
		Value(0xaa).
		Bool(true).
		Bool(false).
		U32(0x01020304).
		Str("ab").
		LongStr("xyz").
		MustBuild()

	want := []byte{
		0xaa,
		1, 0,
		0x04, 0x03, 0x02, 0x01,
		2, 'a', 'b',
		3, 0, 'x', 'y', 'z',
	}
	if !bytes.Equal(f.Bytes(), want) {
		t.Errorf("got % x, want % x", f.Bytes(), want)
	}
	if got := f.AppendTo([]byte{0xff}); !bytes.Equal(got, append([]byte{0xff}, want...)) {
		t.Errorf("AppendTo = % x", got)
	}
}

func TestBuilder_Capacity(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < MaxSize; i++ {
		b.Code(TypeU8)
	}
	if b.Len() != MaxSize {
		t.Fatalf("Len() = %d, want %d", b.Len(), MaxSize)
	}
	b.Code(TypeU8)
	_, err := b.Build()
	if !errors.Is(err, abierrors.ErrCapacity) {
		t.Errorf("expected capacity error, got %v", err)
	}

	t.Run("concat overflow", func(t *testing.T) {
		half := NewBuilder()
		for i := 0; i < MaxSize/2+1; i++ {
			half.Code(TypeBool)
		}
		big := half.MustBuild()
		if _, err := Generic(TypeHashMap, big, big); !errors.Is(err, abierrors.ErrCapacity) {
			t.Errorf("expected capacity error, got %v", err)
		}
	})

	t.Run("must build panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("MustBuild should panic on overflow")
			}
		}()
		b := NewBuilder()
		b.U32(0)
		for i := 0; i < MaxSize; i++ {
			b.Value(1)
		}
		b.MustBuild()
	})

	t.Run("builder reusable after error", func(t *testing.T) {
		f := NewBuilder().Code(TypeString).MustBuild()
		if f != FromCode(TypeString) {
			t.Errorf("pooled builder leaked state: % x", f.Bytes())
		}
	})
}

func TestBuilder_StrLimits(t *testing.T) {
	if _, err := NewBuilder().Str(strings.Repeat("a", 256)).Build(); err == nil {
		t.Error("Str should reject 256 bytes")
	}
	if _, err := NewBuilder().Str(strings.Repeat("a", 255)).Build(); err != nil {
		t.Errorf("Str(255 bytes): %v", err)
	}
	if _, err := NewBuilder().LongStr(strings.Repeat("a", 70000)).Build(); err == nil {
		t.Error("LongStr should reject strings over 65535 bytes")
	}
}

func TestFromBytes_TooLarge(t *testing.T) {
	if _, err := FromBytes(make([]byte, MaxSize+1)); !errors.Is(err, abierrors.ErrCapacity) {
		t.Errorf("expected capacity error, got %v", err)
	}
}

func TestFingerprint_Describe(t *testing.T) {
	tests := []struct {
		data []byte
		want string
	}{
		{[]byte{0}, "u8"},
		{[]byte{12, 11}, "option<string>"},
		{[]byte{13, 13, 10}, "list<list<bool>>"},
		{[]byte{14, 11, 13, 2}, "map<string, list<u32>>"},
		{[]byte{13}, "list<?>"},
		{[]byte{99}, "?"},
		{[]byte{0, 1}, "u8 ?"},
	}
	for _, tt := range tests {
		f, _ := FromBytes(tt.data)
		if got := f.Describe(); got != tt.want {
			t.Errorf("Describe(% x) = %q, want %q", tt.data, got, tt.want)
		}
	}
}

func TestFingerprint_String(t *testing.T) {
	f := MustGeneric(TypeHashMap, FromCode(TypeString), FromCode(TypeF64))
	if got := f.String(); got != "0e 0b 09" {
		t.Errorf("String() = %q", got)
	}
	if !(Fingerprint{}).IsZero() {
		t.Error("zero fingerprint should report IsZero")
	}
}

func TestCode_String(t *testing.T) {
	if TypeHashMap.String() != "map" || TypeI64.String() != "i64" {
		t.Error("unexpected code names")
	}
	if Code(200).String() != "unknown" {
		t.Error("out of range code should be unknown")
	}
	if !TypeVec.IsGeneric() || TypeString.IsGeneric() {
		t.Error("IsGeneric mismatch")
	}
}

func BenchmarkChecksum(b *testing.B) {
	f := MustGeneric(TypeHashMap, FromCode(TypeString), MustGeneric(TypeVec, FromCode(TypeU32)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = f.Checksum()
	}
}
