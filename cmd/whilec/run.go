package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"whilec/internal/interp"
	"whilec/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] file",
	Short: "Interpret a While program",
	Long:  "Run a program on stdin/stdout. With --cfg the lowered (and optionally obfuscated) graph is executed instead of the syntax tree.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExecution,
}

func init() {
	addPassFlags(runCmd.Flags())
	runCmd.Flags().Bool("cfg", false, "execute the control flow graph")
	runCmd.Flags().Int("max-steps", 0, "abort after this many steps (0 = unlimited)")
}

func runExecution(cmd *cobra.Command, args []string) error {
	useGraph, err := cmd.Flags().GetBool("cfg")
	if err != nil {
		return err
	}
	maxSteps, err := cmd.Flags().GetInt("max-steps")
	if err != nil {
		return err
	}
	limit, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	manifest, err := loadManifest(args)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("max-steps") && manifest.Has("run", "max_steps") {
		maxSteps = manifest.Config.Run.MaxSteps
	}
	if maxSteps < 0 {
		return fmt.Errorf("--max-steps must be non-negative, got %d", maxSteps)
	}
	opts, err := resolveOptions(cmd, manifest)
	if err != nil {
		return err
	}

	req := &pipeline.CompileRequest{Path: args[0], Options: opts, MaxDiagnostics: limit}
	ctx := cmd.Context()
	var res pipeline.CompileResult
	if useGraph {
		res, err = pipeline.BuildGraph(ctx, req)
	} else {
		res, err = pipeline.Frontend(ctx, req)
	}
	if perr := printDiagnostics(cmd.ErrOrStderr(), []pipeline.CompileResult{res}, limit); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}

	runOpts := interp.Options{In: os.Stdin, Out: cmd.OutOrStdout(), MaxSteps: maxSteps}
	if useGraph {
		err = interp.RunGraph(ctx, res.Graph, res.Symbols, runOpts)
	} else {
		err = interp.RunProgram(ctx, res.Program, res.Symbols, runOpts)
	}
	if errors.Is(err, interp.ErrStepLimit) {
		return fmt.Errorf("%s: %w (limit %d)", args[0], err, maxSteps)
	}
	return err
}
