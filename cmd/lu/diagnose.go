package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lu/internal/buildpipeline"
	"lu/internal/diag"
	"lu/internal/diagfmt"
	"lu/internal/driver"
	"lu/internal/ui"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] <file.lu|directory>...",
		Short: "Run diagnostics on lu source files",
		Long:  `Parse, analyze and lower lu source files (directories expand to every *.lu beneath them) and report diagnostics`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDiagnose,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().String("stages", "lower", "last stage to run (parse|sema|lower)")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	return cmd
}

// fileDiagnostics is one entry of the JSON report.
type fileDiagnostics struct {
	File   string `json:"file"`
	Failed string `json:"failed_stage,omitempty"`
	diagfmt.DiagnosticsOutput
}

// runDiagnose compiles every file up to --stages, prints the collected
// diagnostics per file in input order, and fails when any file has errors.
func runDiagnose(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	stagesStr, err := cmd.Flags().GetString("stages")
	if err != nil {
		return fmt.Errorf("failed to get stages flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	stage, ok := buildpipeline.ParseStage(stagesStr)
	if !ok || stage == buildpipeline.StageRun {
		return fmt.Errorf("unknown stages value: %s", stagesStr)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}

	s, cleanup, err := prepare(cmd, dirOf(args[0]))
	if err != nil {
		return err
	}
	defer cleanup()

	files, err := driver.ListSourceFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found", driver.SourceExt)
	}

	opts := driver.DiagnoseOptions{
		Options: driver.Options{
			MaxDiagnostics: s.maxDiagnostics,
			FatalLevel:     s.fatalLevel,
			Until:          stage,
			Timings:        s.timings,
		},
		Jobs: jobs,
	}

	var results []*driver.Result
	if format == "pretty" && !s.quiet && shouldUseTUI(mode, len(files)) {
		results, err = diagnoseWithUI(cmd, files, opts)
	} else {
		results, err = driver.DiagnoseFiles(cmd.Context(), files, opts, nil)
	}
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	failed := 0
	out := cmd.OutOrStdout()
	var report []fileDiagnostics
	for _, res := range results {
		if !res.OK() || res.Bag.HasErrors() {
			failed++
		}
		res.Bag.Sort()
		switch format {
		case "json":
			report = append(report, fileDiagnostics{
				File:   res.Path,
				Failed: string(res.Failed),
				DiagnosticsOutput: diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         pathMode,
					IncludeNotes:     true,
				}),
			})
		default:
			if s.quiet && !res.Bag.HasErrors() {
				continue
			}
			printDiagnostics(out, res.Bag, res.FileSet, s)
			printTimings(cmd.ErrOrStderr(), res, s)
		}
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	}
	if format == "pretty" && !s.quiet {
		total := diag.NewBag(0)
		for _, res := range results {
			total.Merge(res.Bag)
		}
		fmt.Fprintf(out, "%d file(s): ", len(results))
		diagfmt.Summary(out, total, s.color)
	}
	if failed > 0 {
		return exitWith(1)
	}
	return nil
}

// diagnoseWithUI runs the diagnosis while a progress view consumes its
// events. The view exits once the event channel closes.
func diagnoseWithUI(cmd *cobra.Command, files []string, opts driver.DiagnoseOptions) ([]*driver.Result, error) {
	events := make(chan buildpipeline.Event, 64)
	type outcome struct {
		results []*driver.Result
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		results, err := driver.DiagnoseFiles(cmd.Context(), files, opts, buildpipeline.ChannelSink{Ch: events})
		close(events)
		done <- outcome{results, err}
	}()

	keys := make([]string, len(files))
	for i, f := range files {
		keys[i] = driver.EventPath(f)
	}
	uiErr := ui.Run(cmd.ErrOrStderr(), "diagnosing", keys, events)
	if uiErr != nil {
		// дочитываем канал, чтобы не заблокировать воркеров
		for range events {
		}
	}
	res := <-done
	if res.err != nil {
		return res.results, res.err
	}
	return res.results, uiErr
}
