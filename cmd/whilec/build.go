package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"whilec/internal/cache"
	"whilec/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] file...",
	Short: "Compile While programs to NASM assembly",
	Long:  "Compile each file to <out_dir>/<name>.asm. Settings from while.toml apply unless overridden by flags.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  buildExecution,
}

func init() {
	addPassFlags(buildCmd.Flags())
	buildCmd.Flags().StringP("output", "o", "", "output file when building one input (- for stdout)")
	buildCmd.Flags().Int("jobs", 0, "parallel compilations (0 = GOMAXPROCS)")
	buildCmd.Flags().Bool("no-cache", false, "do not read or write the assembly cache")
	buildCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	limit, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	if output != "" && len(args) > 1 {
		return errors.New("-o can only be used with a single input file")
	}
	uiModeValue, err := readUIMode(uiValue)
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

	var diskCache *cache.DiskCache
	if !noCache && opts.Deterministic() {
		diskCache, err = cache.Open("whilec")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
			diskCache = nil
		}
	}

	reqs := make([]*pipeline.CompileRequest, len(args))
	for i, path := range args {
		reqs[i] = &pipeline.CompileRequest{
			Path:           path,
			Options:        opts,
			MaxDiagnostics: limit,
			Cache:          diskCache,
		}
	}

	ctx := cmd.Context()
	toStdout := output == "-"
	var (
		results  []pipeline.CompileResult
		buildErr error
	)
	if shouldUseTUI(uiModeValue, len(reqs), toStdout) {
		results, buildErr = runCompileAllWithUI(ctx, "whilec build", reqs, jobs)
	} else {
		results, buildErr = pipeline.CompileAll(ctx, reqs, jobs)
	}

	if err := printDiagnostics(cmd.ErrOrStderr(), results, limit); err != nil {
		return err
	}

	cwd, _ := os.Getwd()
	written := 0
	var writeErrs []error
	for i := range results {
		res := &results[i]
		if res.Assembly == "" {
			continue
		}
		dest := output
		if dest == "" {
			dest = asmName(res.Path, manifest.OutDir(dirOf(res.Path)))
		}
		if err := writeAssembly(cmd, dest, res.Assembly); err != nil {
			writeErrs = append(writeErrs, err)
			continue
		}
		written++
		if !toStdout {
			note := ""
			if res.Cached {
				note = " (cached)"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s%s\n", color.GreenString("wrote"), displayName(dest, cwd), note)
		}
	}

	if timings {
		printStageTimings(cmd.ErrOrStderr(), results)
	}
	if buildErr != nil || len(writeErrs) > 0 {
		failed := len(results) - written
		return errors.Join(append([]error{fmt.Errorf("%d of %d files failed", failed, len(results)), buildErr}, writeErrs...)...)
	}
	return nil
}

func writeAssembly(cmd *cobra.Command, dest, text string) error {
	if dest == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}
