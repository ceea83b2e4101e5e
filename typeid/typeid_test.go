package typeid

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	abierrors "github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/metadata"
	"github.com/wippyai/abiwire/wire"
	"go.bytecodealliance.org/wit"
	"gopkg.in/yaml.v3"
)

func hasKind(err error, kind abierrors.Kind) bool {
	var e *abierrors.Error
	return errors.As(err, &e) && e.Kind == kind
}

func TestParse_Canonical(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"u8", "u8"},
		{"i32", "s32"},
		{"S64", "s64"},
		{"float32", "f32"},
		{"bool", "bool"},
		{"string", "string"},
		{"option<u8>", "option<u8>"},
		{" list < i8 > ", "list<s8>"},
		{"map<string,list<u32>>", "map<string, list<u32>>"},
		{"option<option<f64>>", "option<option<f64>>"},
		{"list<map<u8, option<string>>>", "list<map<u8, option<string>>>"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := Format(typ); got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []string{
		"",
		"list",
		"list<u8",
		"list<>",
		"map<u8>",
		"map<u8, u8, u8>",
		"u128",
		"u8 u8",
		"option<u8>>",
		"<u8>",
	}

	for _, expr := range tests {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			if err == nil {
				t.Fatal("expected error")
			}
			if !hasKind(err, abierrors.KindInvalidInput) {
				t.Errorf("kind: %v", err)
			}
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParse("nope")
}

func TestFingerprint_MatchesStaticCodecs(t *testing.T) {
	tests := []struct {
		expr  string
		codec wire.Typed
	}{
		{"u8", wire.U8},
		{"u16", wire.U16},
		{"u32", wire.U32},
		{"u64", wire.U64},
		{"s8", wire.I8},
		{"s16", wire.I16},
		{"s32", wire.I32},
		{"s64", wire.I64},
		{"f32", wire.F32},
		{"f64", wire.F64},
		{"bool", wire.Bool},
		{"string", wire.String},
		{"option<u8>", wire.Option[uint8](wire.U8)},
		{"list<s8>", wire.List[int8](wire.I8)},
		{"map<string, list<u32>>", wire.Map(wire.String, wire.List[uint32](wire.U32))},
		{"option<map<u64, list<f64>>>", wire.Option(wire.Map(wire.U64, wire.List[float64](wire.F64)))},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			fp, err := Fingerprint(MustParse(tt.expr))
			if err != nil {
				t.Fatalf("Fingerprint: %v", err)
			}
			if fp != tt.codec.Fingerprint() {
				t.Errorf("got %s, want %s", fp, tt.codec.Fingerprint())
			}
		})
	}
}

func TestChecksum_KnownValues(t *testing.T) {
	tests := []struct {
		expr string
		want uint16
	}{
		{"u8", 45472},
		{"string", 55893},
		{"list<u8>", 36465},
		{"list<i8>", 37677},
		{"option<u8>", 12874},
		{"map<string, list<u32>>", 47972},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Checksum(MustParse(tt.expr))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFingerprint_TypeAlias(t *testing.T) {
	alias := &wit.TypeDef{Kind: wit.U32{}}
	fp, err := Fingerprint(alias)
	if err != nil {
		t.Fatal(err)
	}
	if fp != metadata.FromCode(metadata.TypeU32) {
		t.Errorf("got %s", fp)
	}
	if got := Format(ListOf(alias)); got != "list<u32>" {
		t.Errorf("Format = %q", got)
	}
}

func TestFingerprint_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		typ  wit.Type
	}{
		{"char", wit.Char{}},
		{"record", &wit.TypeDef{Kind: &wit.Record{}}},
		{"list of record", ListOf(&wit.TypeDef{Kind: &wit.Record{}})},
		{"three tuple", ListOf(&wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.U8{}, wit.U8{}}}})},
		{"option of char", OptionOf(wit.Char{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fingerprint(tt.typ)
			if !errors.Is(err, abierrors.ErrUnsupported) {
				t.Errorf("Fingerprint: got %v, want unsupported", err)
			}
			_, err = Codec(tt.typ)
			if !errors.Is(err, abierrors.ErrUnsupported) {
				t.Errorf("Codec: got %v, want unsupported", err)
			}
		})
	}
}

func TestFingerprint_TooDeep(t *testing.T) {
	typ := wit.Type(wit.U8{})
	for i := 0; i < metadata.MaxSize; i++ {
		typ = OptionOf(typ)
	}
	if _, err := Fingerprint(typ); !errors.Is(err, abierrors.ErrCapacity) {
		t.Errorf("Fingerprint: got %v, want capacity error", err)
	}
	if _, err := Codec(typ); !errors.Is(err, abierrors.ErrCapacity) {
		t.Errorf("Codec: got %v, want capacity error", err)
	}
}

func TestCodec_KnownBytes(t *testing.T) {
	tests := []struct {
		expr  string
		value any
		want  []byte
	}{
		{"s32", int32(42), []byte{0, 0, 0, 0x2a}},
		{"string", "hi", []byte{0, 0, 0, 2, 'h', 'i'}},
		{"option<u8>", nil, []byte{0}},
		{"option<u8>", Some{Value: uint8(5)}, []byte{1, 5}},
		{"list<u8>", []any{uint8(1), uint8(2), uint8(3)}, []byte{0, 0, 0, 3, 1, 2, 3}},
		{"map<string, u8>", map[any]any{"a": uint8(7)}, []byte{0, 0, 0, 1, 0, 0, 0, 1, 'a', 7}},
		{"option<option<bool>>", Some{Value: nil}, []byte{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			c, err := Codec(MustParse(tt.expr))
			if err != nil {
				t.Fatal(err)
			}
			got := wire.Encode(c, tt.value)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % x, want % x", got, tt.want)
			}
		})
	}
}

func TestCodec_AgreesWithStaticCodec(t *testing.T) {
	static := wire.Map(wire.String, wire.List(wire.Option[int64](wire.I64)))
	value := map[string][]*int64{
		"a": {wire.Some[int64](-1), nil},
		"b": {},
	}
	data := wire.Encode(static, value)

	c, err := Codec(MustParse("map<string, list<option<s64>>>"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Fingerprint() != static.Fingerprint() {
		t.Fatalf("fingerprint %s, want %s", c.Fingerprint(), static.Fingerprint())
	}

	dyn, err := wire.Decode(c, data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := FormatValue(dyn), `{"a": [some(-1), none], "b": []}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	back, err := wire.Decode(static, wire.Encode(c, dyn))
	if err != nil {
		t.Fatalf("static decode: %v", err)
	}
	if len(back["a"]) != 2 || *back["a"][0] != -1 || back["a"][1] != nil || len(back["b"]) != 0 {
		t.Errorf("static round trip: %v", back)
	}
}

func TestCodec_Defaults(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"u8", "0"},
		{"bool", "false"},
		{"string", `""`},
		{"option<u8>", "none"},
		{"list<u8>", "[]"},
		{"map<u8, u8>", "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			c, err := Codec(MustParse(tt.expr))
			if err != nil {
				t.Fatal(err)
			}
			if got := FormatValue(c.Default()); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCodec_NonComparableKey(t *testing.T) {
	_, err := Codec(MustParse("map<list<u8>, u8>"))
	if !errors.Is(err, abierrors.ErrUnsupported) {
		t.Errorf("got %v, want unsupported", err)
	}
	if _, err := Codec(MustParse("map<option<string>, u8>")); err != nil {
		t.Errorf("option key: %v", err)
	}
}

func TestCodec_DecodeErrors(t *testing.T) {
	c, err := Codec(MustParse("list<bool>"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wire.Decode(c, []byte{0, 0, 0, 1, 2}); !errors.Is(err, abierrors.ErrInvalidEncoding) {
		t.Errorf("bad bool: %v", err)
	}
	if _, err := wire.Decode(c, []byte{0, 0, 0, 2, 1}); !errors.Is(err, abierrors.ErrInsufficientData) {
		t.Errorf("short list: %v", err)
	}
}

func TestFromValue_YAML(t *testing.T) {
	tests := []struct {
		expr  string
		input string
		want  string
	}{
		{"u8", "200", "200"},
		{"s16", "-300", "-300"},
		{"f32", "1.5", "1.5"},
		{"f64", "2", "2"},
		{"u64", "18446744073709551615", "18446744073709551615"},
		{"option<u32>", "null", "none"},
		{"option<u32>", "7", "some(7)"},
		{"list<string>", `["a", "b"]`, `["a", "b"]`},
		{"map<u32, bool>", "{2: true, 1: false}", "{1: false, 2: true}"},
		{"map<string, list<u8>>", `{"x": [1, 2]}`, `{"x": [1, 2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.expr+" "+tt.input, func(t *testing.T) {
			var raw any
			if err := yaml.Unmarshal([]byte(tt.input), &raw); err != nil {
				t.Fatal(err)
			}
			typ := MustParse(tt.expr)
			v, err := FromValue(typ, raw)
			if err != nil {
				t.Fatalf("FromValue: %v", err)
			}
			if got := FormatValue(v); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}

			c, err := Codec(typ)
			if err != nil {
				t.Fatal(err)
			}
			back, err := wire.Decode(c, wire.Encode(c, v))
			if err != nil {
				t.Fatalf("round trip: %v", err)
			}
			if got := FormatValue(back); got != tt.want {
				t.Errorf("round trip got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFromValue_Errors(t *testing.T) {
	tests := []struct {
		expr  string
		input any
		kind  abierrors.Kind
	}{
		{"u8", 256, abierrors.KindOverflow},
		{"u8", -1, abierrors.KindOverflow},
		{"s8", -129, abierrors.KindOverflow},
		{"u32", 1.5, abierrors.KindOverflow},
		{"u32", "abc", abierrors.KindInvalidInput},
		{"bool", 1, abierrors.KindInvalidInput},
		{"string", 3, abierrors.KindInvalidInput},
		{"list<u8>", "x", abierrors.KindInvalidInput},
		{"list<u8>", []any{1, 300}, abierrors.KindOverflow},
		{"map<u8, u8>", map[string]any{"x": 1}, abierrors.KindInvalidInput},
		{"map<u8, u8>", []any{}, abierrors.KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := FromValue(MustParse(tt.expr), tt.input)
			if !hasKind(err, tt.kind) {
				t.Errorf("got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	v := map[any]any{
		uint8(2): []any{Some{Value: "x"}, nil},
		uint8(1): []any{},
	}
	if got, want := FormatValue(v), `{1: [], 2: [some("x"), none]}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRegistry_LookupCanonical(t *testing.T) {
	r := NewRegistry()
	a, err := r.Lookup("list<i32>")
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Lookup(" list<s32> ")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("spellings of the same type should share an entry")
	}
	if a.Expr != "list<s32>" {
		t.Errorf("Expr = %q", a.Expr)
	}
	if a.Checksum() != wire.List[int32](wire.I32).Fingerprint().Checksum() {
		t.Error("checksum mismatch")
	}

	if _, err := r.Lookup("list<char>"); err == nil {
		t.Error("expected parse error")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("user-ids", wire.List[uint64](wire.U64)); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("user-ids", wire.List[uint64](wire.U64)); err != nil {
		t.Errorf("identical re-register: %v", err)
	}
	err := r.Register("user-ids", wire.List[uint32](wire.U32))
	if !errors.Is(err, abierrors.ErrChecksumMismatch) {
		t.Errorf("conflicting re-register: %v", err)
	}
	if err := r.Register("", wire.U8); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register("flag", wire.Bool); err != nil {
		t.Fatal(err)
	}

	fp, ok := r.Named("user-ids")
	if !ok || fp != wire.List[uint64](wire.U64).Fingerprint() {
		t.Errorf("Named = %s, %v", fp, ok)
	}
	if _, ok := r.Named("missing"); ok {
		t.Error("unexpected entry")
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "flag" || names[1] != "user-ids" {
		t.Errorf("Names = %v", names)
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	exprs := []string{"u8", "list<u8>", "map<string, u8>", "option<string>"}

	var wg sync.WaitGroup
	entries := make([][]*Entry, 8)
	for g := range entries {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for _, expr := range exprs {
				e, err := r.Lookup(expr)
				if err != nil {
					t.Error(err)
					return
				}
				entries[g] = append(entries[g], e)
			}
		}(g)
	}
	wg.Wait()

	for g := 1; g < len(entries); g++ {
		for i := range entries[g] {
			if entries[g][i] != entries[0][i] {
				t.Errorf("goroutine %d got a different entry for %s", g, exprs[i])
			}
		}
	}
}
