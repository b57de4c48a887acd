package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"whilec/internal/pipeline"
	"whilec/internal/prng"
	"whilec/internal/project"
)

// addPassFlags registers the obfuscation flags shared by build, run and dump.
func addPassFlags(fs *pflag.FlagSet) {
	fs.Bool("flatten", false, "flatten control flow into a dispatcher loop")
	fs.Int64("remap-seed", prng.EntropyFlag, "renumber blocks with this seed (-1 = random)")
	fs.Bool("mask-constants", false, "hide integer literals behind xor masks")
	fs.Int64("scramble-seed", prng.EntropyFlag, "shuffle emitted blocks with this seed (-1 = random)")
}

// resolveOptions merges flags over [build] of the manifest. A flag wins
// only when given explicitly; remap and scramble stay off unless either
// source names a seed.
func resolveOptions(cmd *cobra.Command, m *project.Manifest) (pipeline.Options, error) {
	var opts pipeline.Options
	var err error
	build := project.BuildConfig{}
	if m != nil {
		build = m.Config.Build
	}

	if opts.Flatten, err = boolSetting(cmd, "flatten", m.Has("build", "flatten"), build.Flatten); err != nil {
		return opts, err
	}
	if opts.MaskConstants, err = boolSetting(cmd, "mask-constants", m.Has("build", "mask_constants"), build.MaskConstants); err != nil {
		return opts, err
	}
	if opts.RemapSeed, err = seedSetting(cmd, "remap-seed", m.Has("build", "remap_seed"), build.RemapSeed); err != nil {
		return opts, err
	}
	if opts.ScrambleSeed, err = seedSetting(cmd, "scramble-seed", m.Has("build", "scramble_seed"), build.ScrambleSeed); err != nil {
		return opts, err
	}
	return opts, nil
}

func boolSetting(cmd *cobra.Command, flag string, inManifest, manifestValue bool) (bool, error) {
	if cmd.Flags().Changed(flag) || !inManifest {
		v, err := cmd.Flags().GetBool(flag)
		if err != nil {
			return false, fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		return v, nil
	}
	return manifestValue, nil
}

func seedSetting(cmd *cobra.Command, flag string, inManifest bool, manifestValue int64) (*prng.Seed, error) {
	var raw int64
	switch {
	case cmd.Flags().Changed(flag):
		v, err := cmd.Flags().GetInt64(flag)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s flag: %w", flag, err)
		}
		raw = v
	case inManifest:
		raw = manifestValue
	default:
		return nil, nil
	}
	seed, err := prng.FromFlag(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return &seed, nil
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}

// loadManifest finds while.toml starting from the first input's directory.
func loadManifest(paths []string) (*project.Manifest, error) {
	start := "."
	if len(paths) > 0 {
		start = dirOf(paths[0])
	}
	m, _, err := project.Discover(start)
	return m, err
}
