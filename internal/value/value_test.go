package value

import (
	"testing"

	"lu/internal/types"
)

func TestScalarAccessors(t *testing.T) {
	r := types.NewRegistry()
	i8 := r.BuiltinID(types.Int8)
	v := Int(i8, types.Int8, -5)
	if v.Int() != -5 || v.String() != "-5" {
		t.Fatalf("int8 round trip: %d %q", v.Int(), v.String())
	}
	b := Bool(r.BuiltinID(types.Bool), true)
	if !b.Bool() || b.String() != "true" {
		t.Fatalf("bool: %v %q", b.Bool(), b.String())
	}
	c := Ascii(r.BuiltinID(types.Ascii), 'z')
	if c.String() != "z" {
		t.Fatalf("ascii: %q", c.String())
	}
	f := Float(r.BuiltinID(types.Float64), types.Float64, 1.5)
	if f.Float() != 1.5 {
		t.Fatalf("float: %v", f.Float())
	}
	tid := TypeRef(r.BuiltinID(types.TypeIDKind), i8)
	if tid.TypeIDValue() != i8 {
		t.Fatalf("typeid payload lost")
	}
}

func TestValidate(t *testing.T) {
	r := types.NewRegistry()
	i32 := r.BuiltinID(types.Int32)
	lit := r.LiteralID(types.LitInteger)
	tup := r.MustIntern(types.TupleOf(i32, i32))
	un := r.MustIntern(types.Union{Members: []types.TypeID{i32, lit}})

	good := []Value{
		FromLiteral(lit, types.LitInteger, "12"),
		Int(i32, types.Int32, 12),
		Tuple(tup, Int(i32, types.Int32, 1), Int(i32, types.Int32, 2)),
		Union(un, i32, Int(i32, types.Int32, 3)),
	}
	for i, v := range good {
		if err := v.Validate(); err != nil {
			t.Errorf("case %d: unexpected error %v", i, err)
		}
	}

	bad := []Value{
		{Type: lit, Bits: 3},
		{Type: i32, Lit: Literal{Text: "x"}},
		{Type: un},
		{Type: un, Active: lit, Boxed: &Value{Type: i32}},
		Tuple(tup, Value{Type: i32, Lit: Literal{Text: "x"}}),
	}
	for i, v := range bad {
		if err := v.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
