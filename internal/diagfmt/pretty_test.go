package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lu/internal/diag"
	"lu/internal/source"
)

func testBag(t *testing.T, content string, sp func(source.FileID) source.Span) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("/home/user/project/src/test.lu", []byte(content))
	fs.SetBaseDir("/home/user/project")
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.SemaNotConvertible, sp(id), "cannot convert from integer literal to bool"))
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := testBag(t, "a: bool = 1\n", func(id source.FileID) source.Span {
		return source.Span{File: id, Start: 10, End: 11}
	})

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.lu:1:11"},
		{"Relative path", PathModeRelative, "src/test.lu:1:11"},
		{"Basename only", PathModeBasename, "test.lu:1:11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR SEM3010: cannot convert") {
				t.Errorf("missing header in:\n%s", output)
			}
		})
	}
}

func TestCaretUnderline(t *testing.T) {
	bag, fs := testBag(t, "x = 1\nвв = 22\n", func(id source.FileID) source.Span {
		// "22" on the second line, after two 2-byte runes
		return source.Span{File: id, Start: 6 + 7, End: 6 + 9}
	})
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, two context lines and caret:\n%s", buf.String())
	}
	if lines[1] != " 1 | x = 1" || lines[2] != " 2 | вв = 22" {
		t.Fatalf("context lines = %q, %q", lines[1], lines[2])
	}
	if lines[3] != "   |      ^~" {
		t.Fatalf("caret line = %q", lines[3])
	}
}

func TestNotesAndSummary(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("n.lu", []byte("a: int32\na: bool\n"))
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaAlreadyDeclared, source.Span{File: id, Start: 9, End: 10}, "symbol was previously declared 'a'").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "first declared here"))
	bag.Add(diag.NewError(diag.SemaAlreadyDeclared, source.Span{File: id, Start: 9, End: 10}, "dropped"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	out := buf.String()
	if !strings.Contains(out, "note: n.lu:1:1: first declared here") {
		t.Fatalf("missing note:\n%s", out)
	}
	if !strings.Contains(out, "1 more diagnostic(s) not shown") {
		t.Fatalf("missing dropped count:\n%s", out)
	}

	buf.Reset()
	Summary(&buf, bag, false)
	if buf.String() != "1 error(s), 0 warning(s)\n" {
		t.Fatalf("summary = %q", buf.String())
	}
}
