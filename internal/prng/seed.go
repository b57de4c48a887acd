// Package prng turns user seeds into independent pseudo-random generators.
// A fixed seed reproduces the same stream on every run; an entropy seed
// draws fresh state from the operating system each time New is called.
package prng

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"strconv"
)

// EntropyFlag is the command-line value that requests an entropy seed.
const EntropyFlag = -1

type Seed struct {
	value   uint64
	entropy bool
}

func Fixed(v uint64) Seed { return Seed{value: v} }

func Entropy() Seed { return Seed{entropy: true} }

// FromFlag maps -1 to Entropy and any non-negative value to Fixed.
func FromFlag(v int64) (Seed, error) {
	switch {
	case v == EntropyFlag:
		return Entropy(), nil
	case v >= 0:
		return Fixed(uint64(v)), nil
	default:
		return Seed{}, fmt.Errorf("invalid seed %d: want -1 or a non-negative value", v)
	}
}

// Deterministic reports whether two generators from s produce the same stream.
func (s Seed) Deterministic() bool { return !s.entropy }

func (s Seed) Value() uint64 { return s.value }

func (s Seed) String() string {
	if s.entropy {
		return "entropy"
	}
	return strconv.FormatUint(s.value, 10)
}

// New creates a generator owned by the caller.
func (s Seed) New() *mrand.Rand {
	if s.entropy {
		var buf [16]byte
		if _, err := rand.Read(buf[:]); err != nil {
			panic(fmt.Errorf("prng: read entropy: %w", err))
		}
		return mrand.New(mrand.NewPCG(binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:])))
	}
	// второе слово фиксировано, чтобы соседние сиды давали разные потоки
	return mrand.New(mrand.NewPCG(s.value, 0x9e3779b97f4a7c15))
}
