package mir

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/intrinsic"
	"lu/internal/parser"
	"lu/internal/sema"
	"lu/internal/session"
	"lu/internal/source"
	"lu/internal/types"
)

type testLogger struct {
	items []diag.Diagnostic
	fatal diag.Severity
}

func (l *testLogger) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	l.items = append(l.items, diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
}

func (l *testLogger) IsFatal(sev diag.Severity) bool { return sev >= l.fatal }

func lower(t *testing.T, src string) (*Program, diag.Status, *session.Context, *testLogger, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lu", []byte(src))
	log := &testLogger{fatal: diag.SevError}
	res := parser.ParseFile(fs, id, parser.Options{Logger: log})
	if !res.Status.OK() {
		t.Fatalf("parse %q: %v", src, log.items)
	}
	sess, err := session.New()
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	tree, status, err := sema.Analyze(context.Background(), res.Tree, sess, log)
	if err != nil || !status.OK() {
		t.Fatalf("analyze %q: %v %v", src, err, log.items)
	}
	moved := sess.Move()
	prog, status, err := Lower(context.Background(), tree, moved, log)
	return prog, status, moved, log, err
}

func TestStoreCastsLiteral(t *testing.T) {
	prog, status, sess, log, err := lower(t, "a: int32 = 3\n")
	if err != nil || !status.OK() || len(log.items) != 0 {
		t.Fatalf("lower: %v %s %v", err, status, log.items)
	}
	if len(prog.Instrs) != 2 {
		t.Fatalf("instrs = %d, want store + halt", len(prog.Instrs))
	}
	st := prog.Instrs[0]
	if st.Op != OpStoreSymbol || prog.SymbolName(st.Symbol) != "a" {
		t.Fatalf("first instr = %s", prog.Format(&st))
	}
	c := st.Eval
	if c == nil || c.Op != OpLoadConst {
		t.Fatalf("store value = %s", prog.Format(c))
	}
	if c.Const.Type != sess.Types().BuiltinID(types.Int32) || c.Const.Int() != 3 {
		t.Fatalf("const = %+v", c.Const)
	}
	if prog.Instrs[1].Op != OpHalt {
		t.Fatalf("program must end with halt")
	}
}

func TestTupleAssignmentSplitsStores(t *testing.T) {
	prog, status, _, _, err := lower(t, "(a, b) = (1, 2)\n")
	if err != nil || !status.OK() {
		t.Fatalf("lower: %v %s", err, status)
	}
	var stores []string
	for i := range prog.Instrs {
		if prog.Instrs[i].Op == OpStoreSymbol {
			stores = append(stores, prog.Format(&prog.Instrs[i]))
		}
	}
	want := []string{"store a <- const 1:int64", "store b <- const 2:int64"}
	if strings.Join(stores, "|") != strings.Join(want, "|") {
		t.Fatalf("stores = %q, want %q", stores, want)
	}
}

func TestIntrinsicBindsSlots(t *testing.T) {
	prog, status, _, _, err := lower(t, "a: int32 = 1\nb: int32 = 2\n$i32add(a, b)\n$i32print(a)\n")
	if err != nil || !status.OK() {
		t.Fatalf("lower: %v %s", err, status)
	}
	add, print := prog.Instrs[2], prog.Instrs[3]
	if add.Op != OpIntrinsic || add.Native != intrinsic.OpI32Add ||
		prog.SymbolName(add.Dest) != "a" || prog.SymbolName(add.Operand) != "b" {
		t.Fatalf("add = %s", prog.Format(&add))
	}
	if print.Native != intrinsic.OpI32Print || print.Dest.IsValid() || prog.SymbolName(print.Operand) != "a" {
		t.Fatalf("print = %s", prog.Format(&print))
	}
}

func TestNonVariableArgumentFails(t *testing.T) {
	prog, status, _, log, err := lower(t, "a: int32 = 1\n$i32print(b = a)\n$i32print(a)\n")
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	if status.OK() || len(log.items) != 1 || log.items[0].Code != diag.LowerNotAddressable {
		t.Fatalf("status %s, diagnostics %v", status, log.items)
	}
	if prog.Instrs[len(prog.Instrs)-1].Op != OpHalt {
		t.Fatalf("failed lowering must still end with halt")
	}
}

func TestFunctionValueIsUnimplemented(t *testing.T) {
	l := &lowerer{}
	_, err := l.unit(&sema.Expr{Kind: ast.Function})
	var ie *diag.InternalError
	if !errors.As(err, &ie) || ie.Kind != diag.NotImplemented {
		t.Fatalf("expected unimplemented, got %v", err)
	}
}

func TestDumpAndCodecRoundTrip(t *testing.T) {
	prog, _, _, _, err := lower(t, "x: bool = true\n$lneg(x)\n$bprint(x)\n")
	if err != nil {
		t.Fatal(err)
	}
	var dump bytes.Buffer
	if err := Dump(&dump, prog); err != nil {
		t.Fatal(err)
	}
	want := "0000  store x <- const true:bool\n" +
		"0001  intrinsic lneg dest=x\n" +
		"0002  intrinsic bprint op=x\n" +
		"0003  halt\n"
	if dump.String() != want {
		t.Fatalf("dump:\n%s\nwant:\n%s", dump.String(), want)
	}

	var buf bytes.Buffer
	if err := prog.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	var again bytes.Buffer
	if err := Dump(&again, back); err != nil {
		t.Fatal(err)
	}
	if again.String() != want {
		t.Fatalf("round trip dump:\n%s", again.String())
	}
}

func TestValidateRejectsBrokenPrograms(t *testing.T) {
	cases := []struct {
		name string
		prog Program
	}{
		{"empty", Program{}},
		{"no halt", Program{Instrs: []Instr{{Op: OpLoadConst}}}},
		{"bad opcode", Program{Instrs: []Instr{{Op: opCount}, {Op: OpHalt}}}},
		{"store without value", Program{Symbols: []string{"", "a"}, Instrs: []Instr{{Op: OpStoreSymbol, Symbol: 1}, {Op: OpHalt}}}},
		{"unknown symbol", Program{Symbols: []string{""}, Instrs: []Instr{{Op: OpLoadSymbol, Symbol: 4}, {Op: OpHalt}}}},
	}
	for _, tc := range cases {
		if err := tc.prog.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
