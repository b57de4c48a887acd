package obfuscate

import (
	"math/rand/v2"

	"whilec/internal/cfg"
)

// MaxRemappedID is the largest id RemapBlockIDs hands out.
const MaxRemappedID cfg.BlockID = 1 << 30

// RemapBlockIDs gives every block a distinct id drawn uniformly from
// [0, MaxRemappedID], retrying on collision, and moves the graph's id
// generator past the range so later blocks cannot collide.
//
// Only block labels change. Edges are arena refs and stay intact; constants
// already copied into cassign, switcher cases and literals keep their values.
func RemapBlockIDs(g *cfg.Graph, rng *rand.Rand) {
	ids := make([]cfg.BlockID, g.Len())
	used := make(map[cfg.BlockID]struct{}, g.Len())
	for i := range ids {
		for {
			id := cfg.BlockID(rng.Uint32N(uint32(MaxRemappedID) + 1))
			if _, taken := used[id]; taken {
				continue
			}
			used[id] = struct{}{}
			ids[i] = id
			break
		}
	}
	g.Relabel(ids, MaxRemappedID+1)
}
