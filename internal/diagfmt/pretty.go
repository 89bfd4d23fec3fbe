package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lu/internal/diag"
	"lu/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold func(a ...any) string
}

func newPalette(on bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if on {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue),
		gutter: mk(color.FgHiBlack),
		caret:  mk(color.FgGreen, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch {
	case sev >= diag.SevError:
		return p.err(sev.String())
	case sev >= diag.SevWarning:
		return p.warn(sev.String())
	}
	return p.info(sev.String())
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.bold(position(fs, d.Primary, opts.PathMode)),
			p.severity(d.Severity), d.Code.ID(), d.Message)
		snippet(w, fs, d.Primary, opts, p)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note("note:"), position(fs, n.Span, opts.PathMode), n.Msg)
			snippet(w, fs, n.Span, opts, p)
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... %d more diagnostic(s) not shown\n", dropped)
	}
}

// Summary writes "N error(s), M warning(s)" for the bag.
func Summary(w io.Writer, bag *diag.Bag, useColor bool) {
	p := newPalette(useColor)
	var errs, warns int
	for _, d := range bag.Items() {
		switch {
		case d.Severity >= diag.SevError:
			errs++
		case d.Severity >= diag.SevWarning:
			warns++
		}
	}
	fmt.Fprintf(w, "%s, %s\n",
		p.err(fmt.Sprintf("%d error(s)", errs)),
		p.warn(fmt.Sprintf("%d warning(s)", warns)))
}

func position(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "<no-file>"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", filePath(fs, f, mode), start.Line, start.Col)
}

// snippet prints the context lines and the underlined primary line. The
// caret column is measured in display cells so wide runes line up.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, opts PrettyOpts, p palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	gutterWidth := len(fmt.Sprint(start.Line))

	first := uint32(1)
	if ctx := uint32(max(opts.Context, 0)); start.Line > ctx {
		first = start.Line - ctx
	}
	for ln := first; ln <= start.Line; ln++ {
		line := strings.TrimRight(f.GetLine(ln), "\r")
		if opts.Width > 0 {
			line = runewidth.Truncate(line, int(opts.Width), "…")
		}
		fmt.Fprintf(w, " %s %s %s\n", p.gutter(fmt.Sprintf("%*d", gutterWidth, ln)), p.gutter("|"), line)
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	pad := runewidth.StringWidth(line[:max(col, 0)])
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		stop := min(int(end.Col)-1, len(line))
		width = max(runewidth.StringWidth(line[col:stop]), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n", strings.Repeat(" ", gutterWidth), p.gutter("|"), strings.Repeat(" ", pad), p.caret(marker))
}
