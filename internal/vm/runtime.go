package vm

import (
	"bytes"
	"io"
	"os"
)

// Runtime provides the interface between the VM and the outside world.
type Runtime interface {
	// Stdout is where print intrinsics write.
	Stdout() io.Writer
}

// DefaultRuntime implements Runtime using OS facilities.
type DefaultRuntime struct {
	out io.Writer
}

// NewDefaultRuntime creates a runtime writing to os.Stdout.
func NewDefaultRuntime() *DefaultRuntime {
	return &DefaultRuntime{out: os.Stdout}
}

// NewRuntimeWithWriter creates a runtime writing to w.
func NewRuntimeWithWriter(w io.Writer) *DefaultRuntime {
	return &DefaultRuntime{out: w}
}

func (r *DefaultRuntime) Stdout() io.Writer {
	return r.out
}

// TestRuntime implements Runtime with buffered output for testing.
type TestRuntime struct {
	buf bytes.Buffer
}

// NewTestRuntime creates a test runtime.
func NewTestRuntime() *TestRuntime {
	return &TestRuntime{}
}

func (r *TestRuntime) Stdout() io.Writer {
	return &r.buf
}

// Output returns everything printed so far.
func (r *TestRuntime) Output() string {
	return r.buf.String()
}
