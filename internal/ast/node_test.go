package ast

import (
	"bytes"
	"strings"
	"testing"

	"lu/internal/source"
)

func TestAssignable(t *testing.T) {
	v := &Node{Kind: Variable, Text: "a"}
	tv := &Node{Kind: TypedVariable, Text: "b", Children: []*Node{{Kind: NamedType, Text: "int32"}}}
	lit := &Node{Kind: IntegerLit, Text: "1"}
	cases := []struct {
		n    *Node
		want bool
	}{
		{v, true},
		{tv, true},
		{lit, false},
		{&Node{Kind: Tuple, Children: []*Node{v, tv}}, true},
		{&Node{Kind: Tuple, Children: []*Node{v, lit}}, false},
		{nil, false},
	}
	for i, tc := range cases {
		if got := Assignable(tc.n); got != tc.want {
			t.Errorf("case %d: Assignable = %v", i, got)
		}
	}
}

func TestStringAndDump(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.lu", []byte("a = 1\n"))
	n := &Node{Kind: Assign, Span: source.Span{File: id, Start: 0, End: 5}, Children: []*Node{
		{Kind: Variable, Text: "a", Span: source.Span{File: id, Start: 0, End: 1}},
		{Kind: IntegerLit, Text: "1", Span: source.Span{File: id, Start: 4, End: 5}},
	}}
	if got := n.String(); got != `(assign (variable "a") (integer "1"))` {
		t.Fatalf("String() = %s", got)
	}
	var buf bytes.Buffer
	tree := &Tree{File: id, Units: []*Node{n}}
	if err := tree.Dump(&buf, fs); err != nil {
		t.Fatal(err)
	}
	want := "unit 0:\n  assign @1:1\n    variable \"a\" @1:1\n    integer \"1\" @1:5\n"
	if buf.String() != want {
		t.Fatalf("Dump =\n%s\nwant\n%s", buf.String(), want)
	}
	if k, ok := ParseKind("typed-variable"); !ok || k != TypedVariable {
		t.Fatalf("ParseKind failed")
	}
	if !strings.Contains(Kind(200).String(), "200") {
		t.Fatalf("unknown kind string")
	}
}
