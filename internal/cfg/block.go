package cfg

import "fmt"

// BlockID is the label of a block; unique inside a graph but not stable across passes.
type BlockID uint32

// BlockRef indexes a block in its graph's arena. It survives id renaming.
type BlockRef int32

const NoBlock BlockRef = -1

type Block struct {
	ID     BlockID
	Instrs []Instr
}

// Terminated reports whether the block already ends in a transfer.
func (b *Block) Terminated() bool {
	_, ok := b.Terminator()
	return ok
}

// Terminator returns the trailing transfer, if any.
func (b *Block) Terminator() (*Instr, bool) {
	if len(b.Instrs) == 0 {
		return nil, false
	}
	last := &b.Instrs[len(b.Instrs)-1]
	if !last.IsTransfer() {
		return nil, false
	}
	return last, true
}

// Append adds in to the block. Appending after a transfer is a compiler bug and panics.
func (b *Block) Append(in Instr) {
	if last, ok := b.Terminator(); ok {
		panic(fmt.Errorf("cfg: append %s to bb_%d after %s", in.Kind, b.ID, last.Kind))
	}
	b.Instrs = append(b.Instrs, in)
}

// PopLast removes and returns the final instruction.
func (b *Block) PopLast() (Instr, bool) {
	if len(b.Instrs) == 0 {
		return Instr{}, false
	}
	last := b.Instrs[len(b.Instrs)-1]
	b.Instrs = b.Instrs[:len(b.Instrs)-1]
	return last, true
}
