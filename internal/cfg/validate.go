package cfg

import (
	"errors"
	"fmt"
)

// Validate checks the graph invariants:
//  1. a transfer may appear only as the last instruction of a block
//  2. every transfer target and Entry/Exit refer to blocks of this graph
//  3. ids are unique and the id index agrees with the arena
func Validate(g *Graph) error {
	if g == nil {
		return nil
	}
	var errs []error
	inRange := func(ref BlockRef) bool { return ref >= 0 && int(ref) < len(g.blocks) }

	if !inRange(g.Entry) {
		errs = append(errs, fmt.Errorf("entry ref %d out of range", g.Entry))
	}
	if !inRange(g.Exit) {
		errs = append(errs, fmt.Errorf("exit ref %d out of range", g.Exit))
	}

	seen := make(map[BlockID]int, len(g.blocks))
	for i, bb := range g.blocks {
		if prev, dup := seen[bb.ID]; dup {
			errs = append(errs, fmt.Errorf("bb_%d: id shared by refs %d and %d", bb.ID, prev, i))
		}
		seen[bb.ID] = i
		if ref, ok := g.byID[bb.ID]; !ok || int(ref) != i {
			errs = append(errs, fmt.Errorf("bb_%d: id index points to ref %d, want %d", bb.ID, ref, i))
		}

		for j := range bb.Instrs {
			in := &bb.Instrs[j]
			if in.IsTransfer() && j != len(bb.Instrs)-1 {
				errs = append(errs, fmt.Errorf("bb_%d: %s at %d is not the last instruction", bb.ID, in.Kind, j))
			}
			for _, t := range in.Targets() {
				if !inRange(t) {
					errs = append(errs, fmt.Errorf("bb_%d: %s targets unknown ref %d", bb.ID, in.Kind, t))
				}
			}
		}
	}
	if len(g.byID) != len(g.blocks) {
		errs = append(errs, fmt.Errorf("id index has %d entries for %d blocks", len(g.byID), len(g.blocks)))
	}
	return errors.Join(errs...)
}
