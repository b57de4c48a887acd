package cfg

import (
	"fmt"

	"whilec/internal/ast"
)

// Lower builds the control flow graph of a statement sequence. The sequence
// is consumed: instructions take over its expression nodes, so callers must
// not mutate the statements afterwards.
//
// Entry is a fresh start block. Exit is the block that is current after the
// final statement; for straight-line code it is the entry itself.
func Lower(stmts []ast.Stmt) *Graph {
	g := NewGraph()
	g.Entry = g.NewBlock()
	g.Exit = g.lowerStmts(stmts, g.Entry)
	return g
}

// lowerStmts threads the current block through the sequence and returns the
// block that is current afterwards.
func (g *Graph) lowerStmts(stmts []ast.Stmt, cur BlockRef) BlockRef {
	for i := range stmts {
		cur = g.lowerStmt(&stmts[i], cur)
	}
	return cur
}

func (g *Graph) lowerStmt(s *ast.Stmt, cur BlockRef) BlockRef {
	switch d := s.Data.(type) {
	case ast.AssignData:
		g.Block(cur).Append(Assign(d.Name, d.Value))
		return cur
	case ast.ReadData:
		g.Block(cur).Append(Read(d.Name))
		return cur
	case ast.WriteData:
		g.Block(cur).Append(Write(d.Value))
		return cur
	case ast.IfData:
		trueBB := g.NewBlock()
		falseBB := g.NewBlock()
		join := g.NewBlock()
		g.Block(cur).Append(Selector(d.Cond, trueBB, falseBB))

		trueExit := g.lowerStmts(d.Then, trueBB)
		falseExit := g.lowerStmts(d.Else, falseBB)
		g.Block(trueExit).Append(Jump(join))
		g.Block(falseExit).Append(Jump(join))
		return join
	case ast.WhileData:
		body := g.NewBlock()
		join := g.NewBlock()
		retest := d.Cond.Clone()
		g.Block(cur).Append(Selector(d.Cond, body, join))

		bodyExit := g.lowerStmts(d.Body, body)
		g.Block(bodyExit).Append(Selector(retest, body, join))
		return join
	default:
		panic(fmt.Errorf("cfg: cannot lower %v statement", s.Kind))
	}
}
