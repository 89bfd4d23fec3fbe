package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lu/internal/buildpipeline"
	"lu/internal/diag"
	"lu/internal/driver"
	"lu/internal/mir"
	"lu/internal/project"
	"lu/internal/source"
	"lu/internal/vm"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [file.lu]",
		Short: "Compile and execute a lu program",
		Long: `Parse, analyze and lower a lu source file, then execute it in the VM.
Without an argument the [run].main entry of the nearest lu.toml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExecution,
	}
	cmd.Flags().Bool("no-cache", false, "do not read or write the compiled program cache")
	cmd.Flags().Bool("vm-trace", false, "print every executed instruction to stderr")
	return cmd
}

func runExecution(cmd *cobra.Command, args []string) error {
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	vmTrace, err := cmd.Flags().GetBool("vm-trace")
	if err != nil {
		return fmt.Errorf("failed to get vm-trace flag: %w", err)
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}
	s, cleanup, err := prepare(cmd, dirOf(filePath))
	if err != nil {
		return err
	}
	defer cleanup()

	if filePath == "" {
		if s.manifest == nil {
			return project.ErrNoManifest
		}
		if filePath, err = s.manifest.MainPath(); err != nil {
			return err
		}
	}

	opts := driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		FatalLevel:     s.fatalLevel,
		Timings:        s.timings,
	}
	if !noCache {
		// кэш необязателен: ошибка открытия просто отключает его
		if cache, cerr := driver.OpenDiskCache("lu"); cerr == nil {
			opts.Cache = cache
		}
	}

	res, err := driver.CompileFile(cmd.Context(), filePath, opts, nil)
	if res != nil {
		printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet, s)
		printTimings(cmd.ErrOrStderr(), res, s)
	}
	if err != nil {
		return err
	}
	switch res.Failed {
	case buildpipeline.StageParse:
		return exitWith(exitParseFail)
	case buildpipeline.StageSema:
		return exitWith(exitAnalyzeFail)
	case buildpipeline.StageLower:
		return exitWith(exitLowerFail)
	}

	if !s.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), ">>")
	}
	return execute(cmd, res.Program, res.FileSet, s, vmTrace)
}

// execute runs prog to completion. Runtime panics map to exit code 4.
func execute(cmd *cobra.Command, prog *mir.Program, files *source.FileSet, s settings, vmTrace bool) error {
	bag := diag.NewBag(s.maxDiagnostics)
	bag.SetFatalLevel(s.fatalLevel)

	opts := vm.Options{Trace: true, Files: files}
	if vmTrace {
		opts.Exec = vm.NewTracer(cmd.ErrOrStderr(), files)
	}
	machine := vm.New(prog, vm.NewRuntimeWithWriter(cmd.OutOrStdout()), bag.Logger(), opts)
	vmErr := machine.Run(cmd.Context())
	printDiagnostics(cmd.ErrOrStderr(), bag, files, s)
	if vmErr != nil {
		fmt.Fprint(cmd.ErrOrStderr(), vmErr.FormatWithFiles(files))
		return exitWith(exitRunFail)
	}
	return nil
}
