package cfg

import "fmt"

// Graph owns its blocks. Blocks are never removed, so a BlockRef stays valid
// for the lifetime of the graph.
type Graph struct {
	blocks []*Block
	byID   map[BlockID]BlockRef
	nextID BlockID

	Entry BlockRef
	Exit  BlockRef
}

func NewGraph() *Graph {
	return &Graph{byID: make(map[BlockID]BlockRef), Entry: NoBlock, Exit: NoBlock}
}

// NewBlock allocates an empty block with the next unused id.
func (g *Graph) NewBlock() BlockRef {
	id := g.nextID
	for {
		if _, taken := g.byID[id]; !taken {
			break
		}
		id++
	}
	g.nextID = id + 1
	ref := BlockRef(len(g.blocks)) // #nosec G115 -- arena stays far below MaxInt32
	g.blocks = append(g.blocks, &Block{ID: id})
	g.byID[id] = ref
	return ref
}

// Block returns the block behind ref; an invalid ref panics.
func (g *Graph) Block(ref BlockRef) *Block {
	if ref < 0 || int(ref) >= len(g.blocks) {
		panic(fmt.Errorf("cfg: invalid block ref %d", ref))
	}
	return g.blocks[ref]
}

// Lookup finds a block by its current id.
func (g *Graph) Lookup(id BlockID) (BlockRef, bool) {
	ref, ok := g.byID[id]
	return ref, ok
}

func (g *Graph) Len() int { return len(g.blocks) }

// Refs returns every block ref in arena order.
func (g *Graph) Refs() []BlockRef {
	out := make([]BlockRef, len(g.blocks))
	for i := range out {
		out[i] = BlockRef(i) // #nosec G115 -- bounded by arena size
	}
	return out
}

// Successors of ref in the order codegen and dumps visit them.
func (g *Graph) Successors(ref BlockRef) []BlockRef {
	if term, ok := g.Block(ref).Terminator(); ok {
		return term.Targets()
	}
	return nil
}

// NextID is the id the next NewBlock will try first.
func (g *Graph) NextID() BlockID { return g.nextID }

// ID is shorthand for g.Block(ref).ID.
func (g *Graph) ID(ref BlockRef) BlockID { return g.Block(ref).ID }

// Relabel assigns ids[i] to the block at ref i, rebuilds the id index and
// resets the id generator to next. Duplicate ids panic.
func (g *Graph) Relabel(ids []BlockID, next BlockID) {
	if len(ids) != len(g.blocks) {
		panic(fmt.Errorf("cfg: relabel with %d ids for %d blocks", len(ids), len(g.blocks)))
	}
	index := make(map[BlockID]BlockRef, len(ids))
	for i, id := range ids {
		if prev, dup := index[id]; dup {
			panic(fmt.Errorf("cfg: relabel assigns id %d to refs %d and %d", id, prev, i))
		}
		index[id] = BlockRef(i) // #nosec G115 -- bounded by arena size
	}
	for i, id := range ids {
		g.blocks[i].ID = id
	}
	g.byID = index
	g.nextID = next
}

// Reachable returns the refs reachable from Entry in DFS preorder.
func (g *Graph) Reachable() []BlockRef {
	if g.Entry == NoBlock {
		return nil
	}
	seen := make([]bool, len(g.blocks))
	var order []BlockRef
	var visit func(BlockRef)
	visit = func(ref BlockRef) {
		if seen[ref] {
			return
		}
		seen[ref] = true
		order = append(order, ref)
		for _, s := range g.Successors(ref) {
			visit(s)
		}
	}
	visit(g.Entry)
	return order
}
