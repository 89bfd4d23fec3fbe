package main

import (
	"fmt"
	"io"
	"os"

	"lu/internal/diag"
	"lu/internal/diagfmt"
	"lu/internal/driver"
	"lu/internal/source"
)

// printDiagnostics renders a result's bag in the pretty format. Paths are
// shown relative to the working directory.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s settings) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	if fs == nil {
		fs = source.NewFileSet()
	}
	if wd, err := os.Getwd(); err == nil && fs.BaseDir() == "" {
		fs.SetBaseDir(wd)
	}
	bag.Sort()
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   1,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
	})
}

func printTimings(w io.Writer, res *driver.Result, s settings) {
	if !s.timings || res == nil || res.Timer == nil {
		return
	}
	fmt.Fprint(w, res.Timer.Summary())
}
