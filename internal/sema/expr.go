package sema

import (
	"fmt"
	"io"
	"strings"

	"lu/internal/ast"
	"lu/internal/source"
	"lu/internal/symbols"
	"lu/internal/types"
)

// Payload says which of the optional Expr fields is meaningful.
type Payload uint8

const (
	PayloadNone Payload = iota
	PayloadSymbol
	PayloadIntrinsic
	PayloadType
)

// Expr is one analyzed node. Base is the type the node was analyzed
// with; Eval is the type it must produce after coercion. They differ
// only where an assignment forces a literal into a concrete type.
type Expr struct {
	Kind ast.Kind
	Text string
	Span source.Span

	Base types.TypeID
	Eval types.TypeID

	Payload   Payload
	Symbol    symbols.SymbolID
	Intrinsic symbols.IntrinsicID
	Expressed types.TypeID // type named by a type expression

	Subs []*Expr
}

// Tree is the analyzer output for one file.
type Tree struct {
	File  source.FileID
	Units []*Expr
}

// Sub returns the i-th sub-expression or nil.
func (e *Expr) Sub(i int) *Expr {
	if e == nil || i < 0 || i >= len(e.Subs) {
		return nil
	}
	return e.Subs[i]
}

// Format renders e as an s-expression annotated with type labels.
func Format(e *Expr, reg *types.Registry) string {
	var sb strings.Builder
	writeExpr(&sb, e, reg)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e *Expr, reg *types.Registry) {
	if e == nil {
		sb.WriteString("nil")
		return
	}
	sb.WriteByte('(')
	sb.WriteString(e.Kind.String())
	if e.Text != "" {
		fmt.Fprintf(sb, " %q", e.Text)
	}
	sb.WriteString(" : ")
	sb.WriteString(reg.Label(e.Base))
	if e.Eval != e.Base {
		sb.WriteString(" -> ")
		sb.WriteString(reg.Label(e.Eval))
	}
	switch e.Payload {
	case PayloadSymbol:
		fmt.Fprintf(sb, " sym#%d", e.Symbol)
	case PayloadIntrinsic:
		fmt.Fprintf(sb, " intr#%d", e.Intrinsic)
	case PayloadType:
		fmt.Fprintf(sb, " = %s", reg.Label(e.Expressed))
	}
	for _, s := range e.Subs {
		sb.WriteByte(' ')
		writeExpr(sb, s, reg)
	}
	sb.WriteByte(')')
}

// Dump writes one formatted unit per line.
func (t *Tree) Dump(w io.Writer, reg *types.Registry) error {
	for i, u := range t.Units {
		if _, err := fmt.Fprintf(w, "%d: %s\n", i, Format(u, reg)); err != nil {
			return err
		}
	}
	return nil
}
