package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lu/internal/buildpipeline"
	"lu/internal/diagfmt"
	"lu/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.lu>",
		Short: "Parse a lu source file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|json)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	s, cleanup, err := prepare(cmd, dirOf(args[0]))
	if err != nil {
		return err
	}
	defer cleanup()

	res, err := driver.CompileFile(cmd.Context(), args[0], driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		FatalLevel:     s.fatalLevel,
		Until:          buildpipeline.StageParse,
	}, nil)
	if err != nil {
		return err
	}
	printDiagnostics(cmd.ErrOrStderr(), res.Bag, res.FileSet, s)
	if !res.OK() {
		return exitWith(exitParseFail)
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return diagfmt.AST(out, res.Tree, res.FileSet, diagfmt.PathModeRelative)
	}
	return res.Tree.Dump(out, res.FileSet)
}
