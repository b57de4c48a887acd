package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"whilec/internal/project"
)

func newPassCmd(t *testing.T, flags ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addPassFlags(cmd.Flags())
	if err := cmd.Flags().Parse(flags); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func writeManifest(t *testing.T, body string) *project.Manifest {
	t.Helper()
	path := filepath.Join(t.TempDir(), project.ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	return m
}

func TestResolveOptionsDefaults(t *testing.T) {
	opts, err := resolveOptions(newPassCmd(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Flatten || opts.MaskConstants || opts.RemapSeed != nil || opts.ScrambleSeed != nil {
		t.Errorf("zero options expected, got %+v", opts)
	}
}

func TestResolveOptionsManifestAndFlags(t *testing.T) {
	m := writeManifest(t, "[build]\nflatten = true\nremap_seed = 7\nscramble_seed = -1\n")

	opts, err := resolveOptions(newPassCmd(t), m)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Flatten || opts.RemapSeed == nil || opts.RemapSeed.Value() != 7 {
		t.Errorf("manifest not applied: %+v", opts)
	}
	if opts.ScrambleSeed == nil || opts.ScrambleSeed.Deterministic() {
		t.Errorf("scramble_seed = -1 must request entropy")
	}

	opts, err = resolveOptions(newPassCmd(t, "--flatten=false", "--remap-seed=3", "--mask-constants"), m)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Flatten || opts.RemapSeed.Value() != 3 || !opts.MaskConstants {
		t.Errorf("flags must override manifest: %+v", opts)
	}
}

func TestResolveOptionsBadSeed(t *testing.T) {
	if _, err := resolveOptions(newPassCmd(t, "--remap-seed=-5"), nil); err == nil {
		t.Fatal("expected error for negative seed")
	}
}

func TestAsmName(t *testing.T) {
	tests := []struct {
		src, dir, want string
	}{
		{"prog.while", "out", filepath.Join("out", "prog.asm")},
		{"a/b/loop.w", ".", "loop.asm"},
		{"noext", "build", filepath.Join("build", "noext.asm")},
	}
	for _, tt := range tests {
		if got := asmName(tt.src, tt.dir); got != tt.want {
			t.Errorf("asmName(%q, %q) = %q, want %q", tt.src, tt.dir, got, tt.want)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected error")
	}
	if shouldUseTUI(uiModeOn, 3, true) {
		t.Error("UI must stay off when assembly goes to stdout")
	}
	if shouldUseTUI(uiModeOff, 3, false) {
		t.Error("off means off")
	}
}

func TestDisplayName(t *testing.T) {
	cwd := t.TempDir()
	if got := displayName(filepath.Join(cwd, "x", "p.while"), cwd); got != "x/p.while" {
		t.Errorf("displayName = %q", got)
	}
	if got := displayName("p.while", ""); got != "p.while" {
		t.Errorf("displayName without cwd = %q", got)
	}
}
