package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/wippyai/abiwire/errors"
	"github.com/wippyai/abiwire/ffi"
	"github.com/wippyai/abiwire/guestmem"
	"github.com/wippyai/abiwire/manifest"
	"github.com/wippyai/abiwire/typeid"
	"github.com/wippyai/abiwire/wire"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// app carries what every command needs.
type app struct {
	cfg    *Config
	out    io.Writer
	st     styles
	reg    *typeid.Registry
	logger *zap.Logger
}

func newApp(cfg *Config, out io.Writer, color bool, logger *zap.Logger) *app {
	return &app{
		cfg:    cfg,
		out:    out,
		st:     newStyles(color),
		reg:    typeid.NewRegistry(),
		logger: logger,
	}
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.InvalidInput(errors.PhaseParse, "no command given")
	}
	cmd, rest := args[0], args[1:]
	a.logger.Debug("running command", zap.String("command", cmd), zap.Strings("args", rest))

	switch cmd {
	case "fingerprint":
		if len(rest) == 0 {
			return usageError("fingerprint <type>...")
		}
		return a.fingerprint(rest)
	case "encode":
		if len(rest) != 2 {
			return usageError("encode <type> <value>")
		}
		return a.encode(rest[0], rest[1])
	case "decode":
		if len(rest) != 2 {
			return usageError("decode <type> <hex>")
		}
		return a.decode(rest[0], rest[1])
	case "roundtrip":
		if len(rest) != 2 {
			return usageError("roundtrip <type> <value>")
		}
		return a.roundTrip(ctx, rest[0], rest[1])
	case "verify":
		path := a.cfg.Manifest
		if len(rest) > 0 {
			path = rest[0]
		}
		if path == "" {
			return usageError("verify <manifest.yaml>")
		}
		return a.verify(path)
	case "manifest":
		if len(rest) < 3 {
			return usageError("manifest <name> <version> <type-name>=<type>...")
		}
		return a.manifest(rest[0], rest[1], rest[2:])
	}
	return errors.NotFound(errors.PhaseParse, "command", cmd)
}

func usageError(usage string) error {
	return errors.InvalidInput(errors.PhaseParse, "usage: abidump "+usage)
}

func (a *app) fingerprint(exprs []string) error {
	for _, expr := range exprs {
		e, err := a.reg.Lookup(expr)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s\t%s\tchecksum=%d\n",
			a.st.typ.Render(e.Expr), e.Fingerprint, e.Checksum())
	}
	return nil
}

// parseValue decodes a YAML (and therefore JSON) value literal for the type.
func (a *app) parseValue(e *typeid.Entry, literal string) (any, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(literal), &raw); err != nil {
		return nil, errors.ParseFailed("value", err)
	}
	return typeid.FromValue(e.Type, raw)
}

func (a *app) encode(expr, literal string) error {
	e, err := a.reg.Lookup(expr)
	if err != nil {
		return err
	}
	v, err := a.parseValue(e, literal)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, hex.EncodeToString(wire.Encode(e.Codec, v)))
	return nil
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.NewReplacer(" ", "", ":", "", "\n", "", "\t", "").Replace(s)
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.ParseFailed("hex", err)
	}
	return data, nil
}

func (a *app) decode(expr, hexData string) error {
	e, err := a.reg.Lookup(expr)
	if err != nil {
		return err
	}
	data, err := parseHex(hexData)
	if err != nil {
		return err
	}
	v, err := wire.Decode(e.Codec, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.st.value.Render(typeid.FormatValue(v)))
	return nil
}

// roundTrip lowers a value into an owned buffer, moves it through a loopback
// guest's linear memory and lifts it back.
func (a *app) roundTrip(ctx context.Context, expr, literal string) error {
	e, err := a.reg.Lookup(expr)
	if err != nil {
		return err
	}
	v, err := a.parseValue(e, literal)
	if err != nil {
		return err
	}

	guest, err := guestmem.NewLoopback(ctx, a.cfg.Guest.MemoryPages)
	if err != nil {
		return err
	}
	defer guest.Close(ctx)

	buf := wire.LowerIntoBuffer(e.Codec, v)
	h, err := guestmem.Transfer(guest.Memory(), guest.Allocator(), &buf)
	if err != nil {
		_ = buf.Destroy()
		return err
	}
	fmt.Fprintf(a.out, "guest\tptr=%d len=%d cap=%d\n", h.Data, h.Len, h.Capacity)

	back, err := guestmem.Reclaim(guest.Memory(), guest.Allocator(), h)
	if err != nil {
		return err
	}
	got, err := wire.LiftFromBuffer(e.Codec, back)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "value\t%s\n", a.st.value.Render(typeid.FormatValue(got)))
	if n := ffi.Outstanding(); n != 0 {
		a.logger.Warn("buffers still outstanding", zap.Int("count", n))
	}
	return nil
}

func (a *app) verify(path string) error {
	m, err := manifest.Load(path)
	if err != nil {
		return err
	}
	if err := m.Verify(a.reg); err != nil {
		fmt.Fprintln(a.out, a.st.err.Render(err.Error()))
		return err
	}
	fmt.Fprintf(a.out, "%s %s: %d types verified\n", m.Name, m.Version, len(m.Types))
	return nil
}

func (a *app) manifest(name, version string, pairs []string) error {
	for _, pair := range pairs {
		typeName, expr, ok := strings.Cut(pair, "=")
		if !ok {
			return errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("expected <type-name>=<type>, got %q", pair))
		}
		e, err := a.reg.Lookup(expr)
		if err != nil {
			return err
		}
		if err := a.reg.Register(typeName, e.Codec); err != nil {
			return err
		}
	}

	m := manifest.FromRegistry(name, version, a.reg)
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	_, err = a.out.Write(data)
	return err
}
