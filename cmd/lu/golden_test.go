package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestGoldenPrograms runs every testdata/run/*.lu program and compares
// its output with the sibling .out file.
func TestGoldenPrograms(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "testdata", "run", "*.lu"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no golden programs")
	}
	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".lu")
		t.Run(name, func(t *testing.T) {
			want, err := os.ReadFile(strings.TrimSuffix(path, ".lu") + ".out")
			if err != nil {
				t.Fatal(err)
			}
			stdout, stderr, code := execLu(t, "--quiet", "run", "--no-cache", path)
			if code != 0 {
				t.Fatalf("exit %d: %s", code, stderr)
			}
			if stdout != string(want) {
				t.Fatalf("output %q, want %q", stdout, want)
			}
		})
	}
}
