package version

import (
	"fmt"

	"github.com/fatih/color"
)

// Version information for the whilec CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted.
func Colored() string {
	var major, minor, patch int
	var rest string
	n, _ := fmt.Sscanf(Version, "%d.%d.%d%s", &major, &minor, &patch, &rest)
	if n < 3 {
		return Version
	}
	return fmt.Sprintf("%s.%s.%s%s",
		versionMajorColor.Sprint(major), versionMinorColor.Sprint(minor), versionPatchColor.Sprint(patch), rest)
}

// Long is the multi-line text printed by `whilec version`.
func Long() string {
	out := "whilec " + Colored() + "\n"
	if GitCommit != "" {
		out += "commit: " + GitCommit + "\n"
	}
	if BuildDate != "" {
		out += "built:  " + BuildDate + "\n"
	}
	return out
}
