package main

import (
	"path/filepath"
	"strings"
)

// asmName maps prog.while to prog.asm inside outDir.
func asmName(source, outDir string) string {
	base := filepath.Base(source)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		base = "a"
	}
	return filepath.Join(outDir, base+".asm")
}

func dirOf(path string) string {
	dir := filepath.Dir(path)
	if dir == "" {
		return "."
	}
	return dir
}

// displayName shortens path relative to the working directory for UI rows.
func displayName(path, cwd string) string {
	if cwd == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
