package pipeline

import (
	"fmt"
	"strings"

	"whilec/internal/prng"
)

// Options selects the obfuscation passes. The zero value compiles plainly.
type Options struct {
	Flatten       bool
	RemapSeed     *prng.Seed
	MaskConstants bool
	ScrambleSeed  *prng.Seed
}

// Deterministic reports whether the same source always yields the same assembly.
func (o Options) Deterministic() bool {
	return (o.RemapSeed == nil || o.RemapSeed.Deterministic()) &&
		(o.ScrambleSeed == nil || o.ScrambleSeed.Deterministic())
}

// Fingerprint is a stable text form of the options, part of the cache key.
func (o Options) Fingerprint() string {
	seed := func(s *prng.Seed) string {
		if s == nil {
			return "none"
		}
		return s.String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "flatten=%t;remap=%s;mask=%t;scramble=%s", o.Flatten, seed(o.RemapSeed), o.MaskConstants, seed(o.ScrambleSeed))
	return sb.String()
}
