package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the per-directory configuration file.
const ManifestName = "while.toml"

// Config mirrors while.toml. Whether a key was written at all is answered
// by Manifest.Has, so zero values here are not meaningful on their own.
type Config struct {
	Build BuildConfig `toml:"build"`
	Run   RunConfig   `toml:"run"`
}

type BuildConfig struct {
	Flatten       bool   `toml:"flatten"`
	MaskConstants bool   `toml:"mask_constants"`
	RemapSeed     int64  `toml:"remap_seed"`
	ScrambleSeed  int64  `toml:"scramble_seed"`
	OutDir        string `toml:"out_dir"`
}

type RunConfig struct {
	MaxSteps int `toml:"max_steps"`
}

// Manifest is a loaded while.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	meta   toml.MetaData
}

// Has reports whether the dotted key (e.g. "build", "remap_seed") is set in the file.
func (m *Manifest) Has(key ...string) bool {
	if m == nil {
		return false
	}
	return m.meta.IsDefined(key...)
}

// FindManifest walks up from startDir to locate while.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the manifest governing startDir. ok is false
// when there is none; that is not an error.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load parses and validates a manifest file.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m := &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg, meta: meta}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) validate() error {
	var errs []error
	if m.Has("build", "remap_seed") && m.Config.Build.RemapSeed < -1 {
		errs = append(errs, fmt.Errorf("[build].remap_seed must be -1 or non-negative, got %d", m.Config.Build.RemapSeed))
	}
	if m.Has("build", "scramble_seed") && m.Config.Build.ScrambleSeed < -1 {
		errs = append(errs, fmt.Errorf("[build].scramble_seed must be -1 or non-negative, got %d", m.Config.Build.ScrambleSeed))
	}
	if m.Has("build", "out_dir") && strings.TrimSpace(m.Config.Build.OutDir) == "" {
		errs = append(errs, errors.New("[build].out_dir must not be empty"))
	}
	if m.Config.Run.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("[run].max_steps must be non-negative, got %d", m.Config.Run.MaxSteps))
	}
	return errors.Join(errs...)
}

// OutDir resolves [build].out_dir against the manifest directory; def is
// used when the key is absent.
func (m *Manifest) OutDir(def string) string {
	if m == nil || !m.Has("build", "out_dir") {
		return def
	}
	dir := filepath.FromSlash(m.Config.Build.OutDir)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, dir)
}
