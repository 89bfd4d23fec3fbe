package diag

import (
	"fmt"
	"strings"

	"lu/internal/source"
)

// FormatShort renders diagnostics one per line as
// "<severity> <ID> <path>:<line>:<col> <message>" in the order given.
// Notes follow their diagnostic with severity "note".
func FormatShort(items []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, d := range items {
		lines = append(lines, shortLine(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message, fs))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortLine("note", d.Code, n.Span, n.Msg, fs))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(sev string, code Code, sp source.Span, msg string, fs *source.FileSet) string {
	msg = strings.Join(strings.Fields(msg), " ")
	path := "<unknown>"
	var lc source.LineCol
	if f := fs.Get(sp.File); f != nil {
		path = f.Path
		lc, _ = fs.Resolve(sp)
	}
	return fmt.Sprintf("%s %s %s:%d:%d %s", sev, code.ID(), path, lc.Line, lc.Col, msg)
}
