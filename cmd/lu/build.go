package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lu/internal/buildpipeline"
	"lu/internal/driver"
	"lu/internal/mir"
)

// ProgramExt is the extension of serialized programs.
const ProgramExt = ".lub"

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] <file.lu>",
		Short: "Compile a lu source file to a program file",
		Long:  `Compile a lu source file and write the lowered program, either as msgpack (runnable with lu exec) or as a text listing`,
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild,
	}
	cmd.Flags().StringP("output", "o", "", "output path (default: input with "+ProgramExt+", or stdout for text)")
	cmd.Flags().String("emit", "msgpack", "output form (msgpack|text)")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	emit, err := cmd.Flags().GetString("emit")
	if err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}
	if emit != "msgpack" && emit != "text" {
		return fmt.Errorf("unknown emit value: %s", emit)
	}

	filePath := args[0]
	s, cleanup, err := prepare(cmd, dirOf(filePath))
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := driver.CompileFile(cmd.Context(), filePath, driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		FatalLevel:     s.fatalLevel,
		Timings:        s.timings,
	}, nil)
	if err != nil {
		return err
	}
	printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet, s)
	printTimings(cmd.ErrOrStderr(), res, s)
	switch res.Failed {
	case buildpipeline.StageParse:
		return exitWith(exitParseFail)
	case buildpipeline.StageSema:
		return exitWith(exitAnalyzeFail)
	case buildpipeline.StageLower:
		return exitWith(exitLowerFail)
	}

	if emit == "text" && (output == "" || output == "-") {
		return mir.Dump(cmd.OutOrStdout(), res.Program)
	}
	if output == "" {
		output = strings.TrimSuffix(filePath, filepath.Ext(filePath)) + ProgramExt
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", output, err)
	}
	if emit == "text" {
		err = mir.Dump(f, res.Program)
	} else {
		err = res.Program.Encode(f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", output, err)
	}
	if !s.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
	}
	return nil
}
