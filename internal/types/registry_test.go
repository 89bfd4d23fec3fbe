package types

import (
	"testing"

	"lu/internal/diag"
)

func seeded() *Registry {
	r := NewRegistry()
	r.VoidID()
	for _, k := range LiteralKinds() {
		r.LiteralID(k)
	}
	for _, k := range Builtins() {
		r.BuiltinID(k)
	}
	return r
}

func TestRegistrySingletons(t *testing.T) {
	r := NewRegistry()
	ty, err := r.Resolve(Undefined)
	if err != nil {
		t.Fatalf("resolve undefined: %v", err)
	}
	if _, ok := ty.(UndefinedType); !ok {
		t.Fatalf("expected undefined, got %T", ty)
	}
	if v := r.VoidID(); v != MakeID(ClassVoid, 0) {
		t.Fatalf("void id = %s", v)
	}
	if r.Seed(Void{}) != r.VoidID() {
		t.Fatalf("seeding void twice must be idempotent")
	}
}

func TestInternIsIdempotent(t *testing.T) {
	r := seeded()
	i32 := r.BuiltinID(Int32)
	b := r.BuiltinID(Bool)

	a1 := r.MustIntern(TupleOf(i32, b))
	a2 := r.MustIntern(TupleOf(i32, b))
	if a1 != a2 {
		t.Fatalf("same shape interned twice: %s vs %s", a1, a2)
	}
	swapped := r.MustIntern(TupleOf(b, i32))
	if swapped == a1 {
		t.Fatalf("member order must affect identity")
	}
	named := r.MustIntern(Tuple{Members: []Member{{Type: i32, Name: "x"}, {Type: b}}})
	if named == a1 {
		t.Fatalf("member names must affect identity")
	}
	if a1.Class() != ClassTuple {
		t.Fatalf("expected tuple class, got %s", a1.Class())
	}
}

func TestLookupConfirmsStoredShape(t *testing.T) {
	r := seeded()
	i32 := r.BuiltinID(Int32)
	b := r.BuiltinID(Bool)
	pair := r.MustIntern(TupleOf(i32, b))
	if id, ok := r.Lookup(TupleOf(i32, b)); !ok || id != pair {
		t.Fatalf("lookup of fresh equal shape = %s, %v", id, ok)
	}

	// A stale index entry pointing at another shape is a miss.
	other := r.MustIntern(TupleOf(b, i32))
	r.index[key(TupleOf(i32, b))] = other
	if id, ok := r.Lookup(TupleOf(i32, b)); ok {
		t.Fatalf("stale index entry accepted: %s", id)
	}
}

func TestInternRejectsSeededClasses(t *testing.T) {
	r := NewRegistry()
	_, err := r.Intern(Builtin{Kind: Int64})
	if !diag.IsInternal(err) {
		t.Fatalf("expected internal error for unseeded builtin, got %v", err)
	}
}

func TestInternRequiresMembers(t *testing.T) {
	r := seeded()
	bogus := MakeID(ClassTuple, 40)
	_, err := r.Intern(Function{Result: r.VoidID(), Params: []TypeID{bogus}})
	if !diag.IsInternal(err) {
		t.Fatalf("expected internal error for dangling member, got %v", err)
	}
	if _, ok := r.Lookup(Function{Result: r.VoidID(), Params: []TypeID{bogus}}); ok {
		t.Fatalf("failed intern must not register the type")
	}
}

func TestInternCopiesMembers(t *testing.T) {
	r := seeded()
	ids := []TypeID{r.BuiltinID(Int8), r.BuiltinID(Int16)}
	fn := r.MustIntern(Function{Result: r.VoidID(), Params: ids})
	ids[0] = r.BuiltinID(Bool)
	ty, err := r.Resolve(fn)
	if err != nil {
		t.Fatal(err)
	}
	if got := ty.(Function).Params[0]; got != r.BuiltinID(Int8) {
		t.Fatalf("registry aliased caller slice: %s", r.Label(got))
	}
}

func TestResolveOutOfRange(t *testing.T) {
	r := seeded()
	cases := []TypeID{
		MakeID(ClassTuple, 0),
		MakeID(ClassBuiltin, 99),
		TypeID(0xff000000),
	}
	for _, id := range cases {
		if _, err := r.Resolve(id); err == nil {
			t.Errorf("Resolve(%s) should fail", id)
		}
	}
}

func TestCompareOrdersByClassThenPayload(t *testing.T) {
	cases := []struct {
		a, b Type
		want int
	}{
		{Void{}, Literal{Kind: LitString}, -1},
		{Builtin{Kind: Int8}, Builtin{Kind: Int8}, 0},
		{Builtin{Kind: Int64}, Builtin{Kind: Int8}, 1},
		{TupleOf(1, 2), TupleOf(1, 2, 3), -1},
		{TupleOf(1, 3), TupleOf(1, 2, 3), 1},
		{Function{Result: 1}, Function{Result: 1, Params: []TypeID{2}}, -1},
		{IntrinsicSig{Config: ConfigBoth}, IntrinsicSig{Config: ConfigOpOnly}, 1},
	}
	for _, tc := range cases {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("Compare(%#v, %#v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLabels(t *testing.T) {
	r := seeded()
	i32 := r.BuiltinID(Int32)
	b := r.BuiltinID(Bool)
	cases := []struct {
		id   TypeID
		want string
	}{
		{Undefined, "undefined"},
		{r.VoidID(), "void"},
		{r.LiteralID(LitInteger), "integer literal"},
		{i32, "int32"},
		{r.MustIntern(TupleOf(i32, b)), "(int32, bool)"},
		{r.MustIntern(Tuple{Members: []Member{{Type: i32, Name: "x"}}}), "(x: int32)"},
		{r.MustIntern(Function{Result: b, Params: []TypeID{i32, i32}}), "(int32, int32) -> bool"},
		{r.MustIntern(IntrinsicSig{Config: ConfigBoth, Dest: i32, Op: i32}), "$(int32, int32)"},
		{r.MustIntern(Union{Members: []TypeID{i32, b}}), "int32 | bool"},
	}
	for _, tc := range cases {
		if got := r.Label(tc.id); got != tc.want {
			t.Errorf("Label(%s) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestHelpers(t *testing.T) {
	r := seeded()
	i64 := r.BuiltinID(Int64)
	sig := r.MustIntern(IntrinsicSig{Config: ConfigOpOnly, Op: i64})
	if !r.IsCallable(sig) {
		t.Fatalf("intrinsic signature must be callable")
	}
	if r.IsCallable(i64) {
		t.Fatalf("builtin must not be callable")
	}
	tup := r.MustIntern(TupleOf(i64, i64, i64))
	if n, ok := r.TupleArity(tup); !ok || n != 3 {
		t.Fatalf("TupleArity = %d, %v", n, ok)
	}
	if _, ok := r.TupleArity(i64); ok {
		t.Fatalf("TupleArity on builtin must fail")
	}
	if k, ok := BuiltinByName("typeid"); !ok || k != TypeIDKind {
		t.Fatalf("BuiltinByName(typeid) = %v, %v", k, ok)
	}
	if len(Builtins()) != 16 {
		t.Fatalf("expected 16 builtins, got %d", len(Builtins()))
	}
}
