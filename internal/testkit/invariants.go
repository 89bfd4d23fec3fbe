// Package testkit holds structural checks shared by parser tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"lu/internal/ast"
	"lu/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every node span points at the tree's file and lies within its content
// 2) top-level units appear in source order and do not overlap
// 3) no node is nil
func CheckSpanInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	if tree.File != sf.ID {
		return fmt.Errorf("tree points to different file id: got=%d want=%d", tree.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, u := range tree.Units {
		if u == nil {
			return fmt.Errorf("unit %d is nil", i)
		}
		if err := checkNode(u, sf.ID, lenContent); err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
		if u.Span.Start < prevEnd {
			return fmt.Errorf("unit %d starts at %d before previous end %d", i, u.Span.Start, prevEnd)
		}
		prevEnd = u.Span.End
	}
	return nil
}

func checkNode(n *ast.Node, file source.FileID, limit uint32) error {
	sp := n.Span
	if sp.File != file {
		return fmt.Errorf("%s: span in file %d", n.Kind, sp.File)
	}
	if sp.Start > sp.End || sp.End > limit {
		return fmt.Errorf("%s: span %d..%d outside 0..%d", n.Kind, sp.Start, sp.End, limit)
	}
	for i, c := range n.Children {
		if c == nil {
			// пустой слот
			continue
		}
		if err := checkNode(c, file, limit); err != nil {
			return fmt.Errorf("%s child %d: %w", n.Kind, i, err)
		}
	}
	return nil
}
