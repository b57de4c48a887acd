// Package obfuscate rewrites control flow graphs so that the shape of the
// original program is harder to recover from the emitted code.
package obfuscate

import (
	"fmt"

	"whilec/internal/ast"
	"whilec/internal/cfg"
	"whilec/internal/source"
	"whilec/internal/symbols"
)

// SelectorVarPrefix is the stem of the dispatch variable; 'x' is appended
// until the name is free.
const SelectorVarPrefix = "__bb_selector_"

// synthetic is the span of literals that have no source text.
var synthetic source.Span

// FlattenResult describes the rewritten graph.
type FlattenResult struct {
	Var        string
	NewEntry   cfg.BlockRef
	Dispatcher cfg.BlockRef
	// Targets are the blocks that existed before flattening, in arena order.
	Targets []cfg.SwitchCase
}

// Flatten routes every transfer of g through a single dispatcher block.
//
// A fresh natural variable v is declared in syms. Each block ending in a
// selector gets cassign(v, cond, true_id, false_id); jump(dispatcher) instead,
// each jump becomes assign(v := target_id); jump(dispatcher), and sinks are
// left as they are. The new entry sets v to the old entry's id. The
// dispatcher switches on v over exactly the blocks that existed before the
// rewrite. Dispatch values are copied at this point and never refreshed, so
// later renaming of block ids does not change which block runs.
func Flatten(syms *symbols.Table, g *cfg.Graph) FlattenResult {
	// 1. Снимок существующих блоков: это и есть множество целей
	targets := make([]cfg.SwitchCase, 0, g.Len())
	for _, ref := range g.Refs() {
		targets = append(targets, cfg.SwitchCase{Value: uint32(g.ID(ref)), Target: ref})
	}

	// 2. Переменная диспетчера
	v := syms.UniqueName(SelectorVarPrefix)
	if _, ok := syms.Declare(symbols.Symbol{Line: -1, Name: v, Type: symbols.Natural}); !ok {
		panic(fmt.Errorf("obfuscate: %q already declared", v))
	}

	// 3. Новый вход и диспетчер
	oldEntry := g.Entry
	newEntry := g.NewBlock()
	dispatcher := g.NewBlock()
	g.Block(newEntry).Append(cfg.Assign(v, ast.Number(uint32(g.ID(oldEntry)), synthetic)))
	g.Block(newEntry).Append(cfg.Jump(dispatcher))
	g.Entry = newEntry

	// 4. Переписываем переходы
	for _, t := range targets {
		bb := g.Block(t.Target)
		last, ok := bb.PopLast()
		if !ok {
			continue
		}
		switch last.Kind {
		case cfg.InstrSelector:
			s := last.Selector
			bb.Append(cfg.CAssign(v, s.Cond, uint32(g.ID(s.True)), uint32(g.ID(s.False))))
			bb.Append(cfg.Jump(dispatcher))
		case cfg.InstrJump:
			bb.Append(cfg.Assign(v, ast.Number(uint32(g.ID(last.Jump.Target)), synthetic)))
			bb.Append(cfg.Jump(dispatcher))
		default:
			bb.Append(last)
		}
	}

	// 5. Диспетчер
	cases := make([]cfg.SwitchCase, len(targets))
	copy(cases, targets)
	g.Block(dispatcher).Append(cfg.Switcher(v, cases))

	return FlattenResult{Var: v, NewEntry: newEntry, Dispatcher: dispatcher, Targets: targets}
}
