// Command lu is the lu language toolchain: it parses, analyzes, lowers and
// runs lu programs.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lu/internal/diag"
	"lu/internal/version"
)

// Exit codes of `lu run`, one per failing phase.
const (
	exitParseFail   = 1
	exitAnalyzeFail = 2
	exitLowerFail   = 3
	exitRunFail     = 4
	exitInternal    = 70
)

// exitError stops the command with a specific process exit code. Its
// message, if any, was already printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func exitWith(code int) error { return &exitError{code: code} }

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lu",
		Short:         "lu language toolchain",
		Long:          `lu parses, analyzes, lowers and interprets lu programs`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newDiagCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newExecCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newVersionCmd())

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	root.PersistentFlags().Bool("timings", false, "show timing information")
	root.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to keep (0 = unlimited)")
	root.PersistentFlags().String("fatal-level", "error", "lowest severity that stops a phase (debug|info|warning|error|never)")
	root.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	root.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	root.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	root.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	root.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for ring mode")
	root.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	root.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")
	return root
}

func main() {
	root := newRootCmd()
	err := root.Execute()
	if err == nil {
		return
	}
	os.Exit(exitCodeFor(err, root))
}

// exitCodeFor prints err unless it only carries an exit code.
func exitCodeFor(err error, root *cobra.Command) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if diag.IsInternal(err) {
		fmt.Fprintf(root.ErrOrStderr(), "internal error: %v\n", err)
		return exitInternal
	}
	fmt.Fprintf(root.ErrOrStderr(), "error: %v\n", err)
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
