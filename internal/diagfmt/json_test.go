package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"lu/internal/diag"
	"lu/internal/parser"
	"lu/internal/source"
)

func TestJSONDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("j.lu", []byte("a = \n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynExpectExpression, source.Span{File: id, Start: 4, End: 5}, "expected primary-expr after '='").
		WithNote(source.Span{File: id, Start: 2, End: 3}, "assignment here"))
	bag.Add(diag.New(diag.SevWarning, diag.SemaVariableUnused, source.Span{File: id, Start: 0, End: 1}, "unused"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("Max not applied: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "SYN2004" || d.Severity != "ERROR" || d.Location.File != "j.lu" {
		t.Fatalf("diagnostic = %+v", d)
	}
	if d.Location.StartLine != 1 || d.Location.StartCol != 5 {
		t.Fatalf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "assignment here" {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestASTJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("p.lu", []byte("a: int32 = 3\n"))
	res := parser.ParseFile(fs, id, parser.Options{})
	if !res.Status.OK() {
		t.Fatalf("parse failed")
	}
	var buf bytes.Buffer
	if err := AST(&buf, res.Tree, fs, PathModeAuto); err != nil {
		t.Fatal(err)
	}
	var out ASTOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.File != "p.lu" || len(out.Units) != 1 {
		t.Fatalf("output = %+v", out)
	}
	assign := out.Units[0]
	if assign.Kind != "assign" || len(assign.Children) != 2 {
		t.Fatalf("unit = %+v", assign)
	}
	target := assign.Children[0]
	if target.Kind != "typed-variable" || target.Text != "a" || target.Children[0].Text != "int32" {
		t.Fatalf("target = %+v", target)
	}
	if rhs := assign.Children[1]; rhs.Kind != "integer" || rhs.Span.StartCol != 12 {
		t.Fatalf("rhs = %+v", rhs)
	}
}
