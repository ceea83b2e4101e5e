package typeid

import (
	"strings"

	"github.com/wippyai/abiwire/errors"
	"go.bytecodealliance.org/wit"
)

var primitives = map[string]wit.Type{
	"bool":    wit.Bool{},
	"u8":      wit.U8{},
	"u16":     wit.U16{},
	"u32":     wit.U32{},
	"u64":     wit.U64{},
	"s8":      wit.S8{},
	"s16":     wit.S16{},
	"s32":     wit.S32{},
	"s64":     wit.S64{},
	"i8":      wit.S8{},
	"i16":     wit.S16{},
	"i32":     wit.S32{},
	"i64":     wit.S64{},
	"f32":     wit.F32{},
	"f64":     wit.F64{},
	"float32": wit.F32{},
	"float64": wit.F64{},
	"string":  wit.String{},
}

// Parse parses a type expression such as "option<list<u8>>".
func Parse(expr string) (wit.Type, error) {
	p := &parser{src: expr}
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) wit.Type {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

// OptionOf returns the descriptor of option<t>.
func OptionOf(t wit.Type) wit.Type {
	return &wit.TypeDef{Kind: &wit.Option{Type: t}}
}

// ListOf returns the descriptor of list<t>.
func ListOf(t wit.Type) wit.Type {
	return &wit.TypeDef{Kind: &wit.List{Type: t}}
}

// MapOf returns the descriptor of map<k, v>, i.e. list<tuple<k, v>>.
func MapOf(k, v wit.Type) wit.Type {
	return ListOf(&wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{k, v}}})
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.New(errors.PhaseParse, errors.KindInvalidInput).
		Value(p.src).
		Detail("type expression at offset %d: "+format, append([]any{p.pos}, args...)...).
		Build()
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
			p.pos++
			continue
		}
		break
	}
	return strings.ToLower(p.src[start:p.pos])
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return p.errorf("expected %q, got end of input", c)
	}
	if p.src[p.pos] != c {
		return p.errorf("expected %q, got %q", c, p.src[p.pos])
	}
	p.pos++
	return nil
}

func (p *parser) params(n int) ([]wit.Type, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	out := make([]wit.Type, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := p.expect(','); err != nil {
				return nil, err
			}
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) parseType() (wit.Type, error) {
	start := p.pos
	name := p.ident()
	if name == "" {
		if p.pos >= len(p.src) {
			return nil, p.errorf("expected type name, got end of input")
		}
		return nil, p.errorf("expected type name, got %q", p.src[p.pos])
	}

	if t, ok := primitives[name]; ok {
		return t, nil
	}

	switch name {
	case "option":
		ps, err := p.params(1)
		if err != nil {
			return nil, err
		}
		return OptionOf(ps[0]), nil
	case "list":
		ps, err := p.params(1)
		if err != nil {
			return nil, err
		}
		return ListOf(ps[0]), nil
	case "map":
		ps, err := p.params(2)
		if err != nil {
			return nil, err
		}
		return MapOf(ps[0], ps[1]), nil
	}

	p.pos = start
	p.skipSpace()
	return nil, p.errorf("unknown type %q", name)
}
