package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whilec/internal/diagfmt"
	"whilec/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file...",
	Short: "Parse and type-check without generating code",
	Args:  cobra.MinimumNArgs(1),
	RunE:  checkExecution,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
}

func checkExecution(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	limit, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range args {
		res, ferr := pipeline.Frontend(cmd.Context(), &pipeline.CompileRequest{Path: path, MaxDiagnostics: limit})
		if ferr != nil {
			failed++
		}
		if format == "json" {
			res.Bag.Sort()
			if err := diagfmt.JSON(cmd.OutOrStdout(), res.Bag, res.FileSet, diagfmt.JSONOpts{
				IncludePositions: true,
				IncludeNotes:     true,
				Max:              limit,
			}); err != nil {
				return err
			}
			continue
		}
		if err := printDiagnostics(cmd.ErrOrStderr(), []pipeline.CompileResult{res}, limit); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files have errors", failed, len(args))
	}
	return nil
}
