package x86

import (
	"fortio.org/safecast"

	"whilec/internal/prng"
)

// Shuffle permutes fragments in place (Fisher–Yates) with a generator
// built from seed. A fixed seed always yields the same permutation.
func Shuffle(fragments []Fragment, seed prng.Seed) {
	rng := seed.New()
	for i := len(fragments) - 1; i > 0; i-- {
		n, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(err)
		}
		j := rng.Uint32N(n)
		fragments[i], fragments[j] = fragments[j], fragments[i]
	}
}
