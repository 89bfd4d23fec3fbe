package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lu/internal/mir"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [flags] <program" + ProgramExt + ">",
		Short: "Execute a program written by lu build",
		Args:  cobra.ExactArgs(1),
		RunE:  runExec,
	}
	cmd.Flags().Bool("vm-trace", false, "print every executed instruction to stderr")
	return cmd
}

func runExec(cmd *cobra.Command, args []string) error {
	vmTrace, err := cmd.Flags().GetBool("vm-trace")
	if err != nil {
		return fmt.Errorf("failed to get vm-trace flag: %w", err)
	}
	s, cleanup, err := prepare(cmd, dirOf(args[0]))
	if err != nil {
		return err
	}
	defer cleanup()

	// #nosec G304 -- path is provided by the user
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open program: %w", err)
	}
	prog, err := mir.Decode(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	// исходников нет: спаны печатаются как <no-span>
	return execute(cmd, prog, nil, s, vmTrace)
}
