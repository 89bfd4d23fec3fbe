package cast

import (
	"errors"
	"testing"

	"lu/internal/diag"
	"lu/internal/types"
	"lu/internal/value"
)

func registry() *types.Registry {
	r := types.NewRegistry()
	r.VoidID()
	for _, k := range types.LiteralKinds() {
		r.LiteralID(k)
	}
	for _, k := range types.Builtins() {
		r.BuiltinID(k)
	}
	return r
}

func intLit(r *types.Registry, text string) value.Value {
	return value.FromLiteral(r.LiteralID(types.LitInteger), types.LitInteger, text)
}

func TestDefaultType(t *testing.T) {
	r := registry()
	cases := []struct {
		kind types.LiteralKind
		want types.TypeID
	}{
		{types.LitInteger, r.BuiltinID(types.Int64)},
		{types.LitDecimal, r.BuiltinID(types.Float64)},
		{types.LitTrue, r.BuiltinID(types.Bool)},
		{types.LitFalse, r.BuiltinID(types.Bool)},
	}
	for _, tc := range cases {
		got, err := DefaultType(r, tc.kind)
		if err != nil || got != tc.want {
			t.Errorf("DefaultType(%s) = %s, %v", tc.kind, r.Label(got), err)
		}
	}

	empty, err := DefaultType(r, types.LitEmptyTuple)
	if err != nil {
		t.Fatalf("empty tuple: %v", err)
	}
	if n, ok := r.TupleArity(empty); !ok || n != 0 {
		t.Fatalf("empty tuple default = %s", r.Label(empty))
	}

	if _, err := DefaultType(r, types.LitString); !diag.IsInternal(err) {
		t.Fatalf("string default must be unimplemented, got %v", err)
	}
}

func TestIntegerCasts(t *testing.T) {
	r := registry()
	cases := []struct {
		text   string
		kind   types.BuiltinKind
		want   int64
		wantOK bool
	}{
		{"123", types.Int32, 123, true},
		{"127", types.Int8, 127, true},
		{"128", types.Int8, 0, false},
		{"99999999999", types.Int8, 0, false},
		{"255", types.Uint8, 255, true},
		{"256", types.Byte, 0, false},
		{"65535", types.Uint16, 65535, true},
		{"4294967296", types.Uint32, 0, false},
		{"9223372036854775807", types.Int64, 9223372036854775807, true},
		{"9223372036854775808", types.Int64, 0, false},
		{"18446744073709551616", types.Uint64, 0, false},
	}
	for _, tc := range cases {
		got, err := LiteralToBuiltin(r, r.BuiltinID(tc.kind), intLit(r, tc.text))
		if !tc.wantOK {
			var ie *diag.InternalError
			if !errors.As(err, &ie) || ie.Kind != diag.NotImplemented {
				t.Errorf("%s -> %s: expected range failure, got %v", tc.text, tc.kind, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s -> %s: %v", tc.text, tc.kind, err)
			continue
		}
		if got.Type != r.BuiltinID(tc.kind) || int64(got.Uint()) != tc.want {
			t.Errorf("%s -> %s = %v", tc.text, tc.kind, got)
		}
		if err := got.Validate(); err != nil {
			t.Errorf("%s -> %s: invalid value: %v", tc.text, tc.kind, err)
		}
	}
}

func TestIntegerToFloatUnhandled(t *testing.T) {
	r := registry()
	_, err := LiteralToBuiltin(r, r.BuiltinID(types.Float32), intLit(r, "1"))
	var ie *diag.InternalError
	if !errors.As(err, &ie) || ie.Kind != diag.Unhandled {
		t.Fatalf("expected unhandled, got %v", err)
	}
}

func TestBoolAndStringCasts(t *testing.T) {
	r := registry()
	b := r.BuiltinID(types.Bool)
	v, err := LiteralToBuiltin(r, b, value.FromLiteral(r.LiteralID(types.LitFalse), types.LitFalse, "false"))
	if err != nil || v.Bool() {
		t.Fatalf("false -> bool = %v, %v", v, err)
	}
	v, err = LiteralToBuiltin(r, b, value.FromLiteral(r.LiteralID(types.LitTrue), types.LitTrue, "true"))
	if err != nil || !v.Bool() {
		t.Fatalf("true -> bool = %v, %v", v, err)
	}
	if _, err := LiteralToBuiltin(r, r.BuiltinID(types.Int8), value.FromLiteral(r.LiteralID(types.LitTrue), types.LitTrue, "true")); err == nil {
		t.Fatalf("true -> int8 must fail")
	}

	ascii := r.BuiltinID(types.Ascii)
	str := r.LiteralID(types.LitString)
	v, err = LiteralToBuiltin(r, ascii, value.FromLiteral(str, types.LitString, "q"))
	if err != nil || v.Ascii() != 'q' {
		t.Fatalf("\"q\" -> ascii = %v, %v", v, err)
	}
	if _, err := LiteralToBuiltin(r, ascii, value.FromLiteral(str, types.LitString, "qq")); err == nil {
		t.Fatalf("two-character string must fail")
	}
	dec := value.FromLiteral(r.LiteralID(types.LitDecimal), types.LitDecimal, "1.5")
	if _, err := LiteralToBuiltin(r, r.BuiltinID(types.Float64), dec); !diag.IsInternal(err) {
		t.Fatalf("decimal cast must be unimplemented, got %v", err)
	}
}
