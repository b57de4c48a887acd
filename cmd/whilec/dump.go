package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whilec/internal/ast"
	"whilec/internal/cfg"
	"whilec/internal/pipeline"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] file",
	Short: "Print the syntax tree or control flow graph",
	Args:  cobra.ExactArgs(1),
	RunE:  dumpExecution,
}

func init() {
	addPassFlags(dumpCmd.Flags())
	dumpCmd.Flags().String("what", "cfg", "what to print (ast|cfg|dot)")
}

func dumpExecution(cmd *cobra.Command, args []string) error {
	what, err := cmd.Flags().GetString("what")
	if err != nil {
		return err
	}
	what = strings.ToLower(strings.TrimSpace(what))
	switch what {
	case "ast", "cfg", "dot":
	default:
		return fmt.Errorf("unsupported --what %q (must be ast, cfg or dot)", what)
	}
	limit, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	manifest, err := loadManifest(args)
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cmd, manifest)
	if err != nil {
		return err
	}

	req := &pipeline.CompileRequest{Path: args[0], Options: opts, MaxDiagnostics: limit}
	var res pipeline.CompileResult
	if what == "ast" {
		res, err = pipeline.Frontend(cmd.Context(), req)
	} else {
		res, err = pipeline.BuildGraph(cmd.Context(), req)
	}
	if perr := printDiagnostics(cmd.ErrOrStderr(), []pipeline.CompileResult{res}, limit); perr != nil {
		return perr
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch what {
	case "ast":
		return ast.Dump(out, res.Program)
	case "dot":
		return cfg.DumpDot(out, res.Graph)
	default:
		return cfg.DumpText(out, res.Graph)
	}
}
