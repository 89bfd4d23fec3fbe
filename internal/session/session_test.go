package session

import (
	"testing"

	"lu/internal/diag"
	"lu/internal/intrinsic"
	"lu/internal/types"
)

func TestNewSeedsCatalogues(t *testing.T) {
	ctx, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	reg := ctx.Types()
	table := ctx.Symbols()

	for _, k := range types.Builtins() {
		id, ok := table.ResolveGlobal(k.String())
		if !ok {
			t.Fatalf("builtin %s not bound", k)
		}
		sym := table.Symbol(id)
		if sym.Type != reg.BuiltinID(types.TypeIDKind) {
			t.Fatalf("%s bound with type %s", k, reg.Label(sym.Type))
		}
		v, ok := table.Static(id)
		if !ok || v.TypeIDValue() != reg.BuiltinID(k) {
			t.Fatalf("%s static value = %v", k, v)
		}
	}
	if got := len(table.Intrinsics()); got != len(intrinsic.Catalogue()) {
		t.Fatalf("registered %d intrinsics", got)
	}
	id, ok := table.LookupIntrinsic("i32add")
	if !ok {
		t.Fatalf("i32add missing")
	}
	if got := reg.Label(table.Intrinsic(id).Type); got != "$(int32, int32)" {
		t.Fatalf("i32add type = %q", got)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestMoveEmptiesSource(t *testing.T) {
	ctx, err := New()
	if err != nil {
		t.Fatal(err)
	}
	moved := ctx.Move()
	if !moved.Live() || ctx.Live() {
		t.Fatalf("Move must transfer ownership")
	}
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !diag.IsInternal(err) {
			t.Fatalf("expected internal error panic, got %v", r)
		}
	}()
	ctx.Types()
}
