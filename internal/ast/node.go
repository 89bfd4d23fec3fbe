package ast

import (
	"fmt"
	"io"
	"strings"

	"lu/internal/source"
)

// Node is one syntax tree node. Text holds the identifier, intrinsic
// name (with `$`), label, or decoded literal text, depending on Kind.
type Node struct {
	Kind     Kind
	Text     string
	Span     source.Span
	Children []*Node
}

// Tree is the parser's output: top-level units in source order.
type Tree struct {
	File  source.FileID
	Units []*Node
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Arity returns the number of children.
func (n *Node) Arity() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Assignable reports whether n can be the target of an assignment or a
// function parameter list.
func Assignable(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case Variable, TypedVariable:
		return true
	case Tuple:
		for _, c := range n.Children {
			if !Assignable(c) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders n as a compact s-expression.
func (n *Node) String() string {
	var sb strings.Builder
	writeSexpr(&sb, n)
	return sb.String()
}

func writeSexpr(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("nil")
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	if n.Text != "" {
		fmt.Fprintf(sb, " %q", n.Text)
	}
	for _, c := range n.Children {
		sb.WriteByte(' ')
		writeSexpr(sb, c)
	}
	sb.WriteByte(')')
}

// Dump writes an indented listing of the tree, one node per line.
func (t *Tree) Dump(w io.Writer, fs *source.FileSet) error {
	for i, u := range t.Units {
		if _, err := fmt.Fprintf(w, "unit %d:\n", i); err != nil {
			return err
		}
		if err := dumpNode(w, fs, u, 1); err != nil {
			return err
		}
	}
	return nil
}

func dumpNode(w io.Writer, fs *source.FileSet, n *Node, depth int) error {
	pos := ""
	if fs != nil {
		start, _ := fs.Resolve(n.Span)
		pos = fmt.Sprintf(" @%d:%d", start.Line, start.Col)
	}
	text := ""
	if n.Text != "" {
		text = fmt.Sprintf(" %q", n.Text)
	}
	if _, err := fmt.Fprintf(w, "%s%s%s%s\n", strings.Repeat("  ", depth), n.Kind, text, pos); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := dumpNode(w, fs, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
