package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lu/internal/diag"
	"lu/internal/project"
	"lu/internal/trace"
)

// settings are the global flags after lu.toml defaults are applied.
// An explicitly set flag always wins over the manifest.
type settings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	fatalLevel     diag.Severity
	traceLevel     trace.Level
	traceOutput    string
	manifest       *project.Manifest
}

// loadSettings reads the persistent flags and the manifest found above
// startDir ("" means the working directory).
func loadSettings(cmd *cobra.Command, startDir string) (settings, error) {
	var s settings
	flags := cmd.Root().PersistentFlags()

	if startDir == "" {
		startDir = "."
	}
	manifest, ok, err := project.Load(startDir)
	if err != nil {
		return s, err
	}
	if ok {
		s.manifest = manifest
	}

	colorStr, err := flags.GetString("color")
	if err != nil {
		return s, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorStr) {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto":
		s.color = !color.NoColor && isTerminal(os.Stderr)
	default:
		return s, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorStr)
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return s, fmt.Errorf("failed to get timings flag: %w", err)
	}

	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && s.manifest != nil && s.manifest.Config.Diagnostics.Max > 0 {
		s.maxDiagnostics = s.manifest.Config.Diagnostics.Max
	}
	if s.maxDiagnostics < 0 {
		return s, fmt.Errorf("--max-diagnostics must not be negative")
	}

	fatalStr, err := flags.GetString("fatal-level")
	if err != nil {
		return s, fmt.Errorf("failed to get fatal-level flag: %w", err)
	}
	if !flags.Changed("fatal-level") && s.manifest != nil && s.manifest.Config.Diagnostics.FatalLevel != "" {
		fatalStr = s.manifest.Config.Diagnostics.FatalLevel
	}
	if s.fatalLevel, err = diag.ParseSeverity(fatalStr); err != nil {
		return s, fmt.Errorf("invalid fatal level: %w", err)
	}

	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return s, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	if s.traceOutput, err = flags.GetString("trace"); err != nil {
		return s, fmt.Errorf("failed to get trace flag: %w", err)
	}
	if s.manifest != nil {
		tc := s.manifest.Config.Trace
		if !flags.Changed("trace-level") && tc.Level != "" {
			levelStr = tc.Level
		}
		if !flags.Changed("trace") && tc.Output != "" {
			s.traceOutput = filepath.Join(s.manifest.Root, filepath.FromSlash(tc.Output))
		}
	}
	if s.traceLevel, err = trace.ParseLevel(levelStr); err != nil {
		return s, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if s.traceLevel == trace.LevelOff && flags.Changed("trace") {
		s.traceLevel = trace.LevelPhase
	}
	return s, nil
}

// prepare loads settings, starts the profilers and installs the tracer
// on cmd's context.
func prepare(cmd *cobra.Command, startDir string) (settings, func(), error) {
	s, err := loadSettings(cmd, startDir)
	if err != nil {
		return s, nil, err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return s, nil, err
	}
	stopTracing, err := setupTracing(cmd, s)
	if err != nil {
		stopProfiling()
		return s, nil, err
	}
	return s, func() {
		stopTracing()
		stopProfiling()
	}, nil
}

// dirOf is the directory a manifest search for path starts from.
func dirOf(path string) string {
	if path == "" {
		return ""
	}
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		return path
	}
	return filepath.Dir(path)
}
