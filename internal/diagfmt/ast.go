package diagfmt

import (
	"encoding/json"
	"io"

	"lu/internal/ast"
	"lu/internal/source"
)

// ASTNodeJSON is one syntax node in `lu parse --format json` output.
type ASTNodeJSON struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Span     LocationJSON   `json:"span"`
	Children []*ASTNodeJSON `json:"children,omitempty"`
}

// ASTOutput is the root of the syntax tree JSON document.
type ASTOutput struct {
	File  string         `json:"file"`
	Units []*ASTNodeJSON `json:"units"`
}

// BuildASTOutput converts tree without serializing it.
func BuildASTOutput(tree *ast.Tree, fs *source.FileSet, mode PathMode) ASTOutput {
	out := ASTOutput{Units: make([]*ASTNodeJSON, 0, len(tree.Units))}
	if f := fs.Get(tree.File); f != nil {
		out.File = filePath(fs, f, mode)
	}
	for _, u := range tree.Units {
		out.Units = append(out.Units, astNode(u, fs, mode))
	}
	return out
}

func astNode(n *ast.Node, fs *source.FileSet, mode PathMode) *ASTNodeJSON {
	if n == nil {
		return nil
	}
	j := &ASTNodeJSON{
		Kind: n.Kind.String(),
		Text: n.Text,
		Span: makeLocation(n.Span, fs, mode, true),
	}
	for _, c := range n.Children {
		j.Children = append(j.Children, astNode(c, fs, mode))
	}
	return j
}

// AST writes tree as indented JSON.
func AST(w io.Writer, tree *ast.Tree, fs *source.FileSet, mode PathMode) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(tree, fs, mode))
}
