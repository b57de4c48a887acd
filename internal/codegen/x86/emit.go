// Package x86 emits 32-bit NASM assembly for a While control flow graph.
//
// Every block becomes a labelled fragment. Fragments are collected by a
// depth-first walk from the entry and may be shuffled before they are
// concatenated, because each fragment ends in an explicit jump or return.
package x86

import (
	"errors"
	"fmt"
	"strings"

	"whilec/internal/cfg"
	"whilec/internal/prng"
	"whilec/internal/symbols"
)

// Options controls the obfuscating parts of code generation.
type Options struct {
	// MaskConstants hides every literal behind a xor with the block id.
	MaskConstants bool
	// Scramble, when set, permutes block fragments with a generator built from the seed.
	Scramble *prng.Seed
}

const preamble = "global main\n" +
	"extern write_natural\n" +
	"extern read_natural\n" +
	"extern write_boolean\n" +
	"extern read_boolean\n\n" +
	"section .bss\n"

// Emitter holds the state shared by all fragments of one graph.
type Emitter struct {
	g    *cfg.Graph
	syms *symbols.Table
	opts Options
	buf  strings.Builder
}

// Generate renders g as a complete assembly file.
func Generate(g *cfg.Graph, syms *symbols.Table, opts Options) (string, error) {
	if g == nil || syms == nil {
		return "", errors.New("x86: nil graph or symbol table")
	}
	if err := cfg.Validate(g); err != nil {
		return "", fmt.Errorf("x86: invalid graph: %w", err)
	}
	if err := checkNames(g, syms); err != nil {
		return "", err
	}
	e := &Emitter{g: g, syms: syms, opts: opts}

	e.buf.WriteString(preamble)
	e.emitVariables()
	e.buf.WriteString("\nsection .text\n")

	fragments := e.Fragments()
	if opts.Scramble != nil {
		Shuffle(fragments, *opts.Scramble)
	}
	for _, f := range fragments {
		e.buf.WriteString(f.Text)
	}
	return e.buf.String(), nil
}

func (e *Emitter) emitVariables() {
	for _, sym := range e.syms.Symbols() {
		fmt.Fprintf(&e.buf, "var_%s: resb %d\n", sym.Name, sym.Type.Size())
	}
}

// Fragment is the code of one block, label included.
type Fragment struct {
	ID   cfg.BlockID
	Text string
}

// Fragments returns one fragment per reachable block in DFS preorder.
func (e *Emitter) Fragments() []Fragment {
	order := e.g.Reachable()
	out := make([]Fragment, 0, len(order))
	for _, ref := range order {
		out = append(out, Fragment{ID: e.g.ID(ref), Text: e.emitBlock(ref)})
	}
	return out
}

func (e *Emitter) emitBlock(ref cfg.BlockRef) string {
	bb := e.g.Block(ref)
	w := &blockWriter{e: e, id: uint32(bb.ID)}

	switch ref {
	case e.g.Entry:
		w.line("; entry")
		w.line("main:")
	case e.g.Exit:
		w.line("; exit")
	}
	w.linef("bb_%d:", bb.ID)

	for i := range bb.Instrs {
		w.instr(&bb.Instrs[i])
	}

	if ref == e.g.Exit {
		w.line("xor eax,eax")
		w.line("ret")
	}
	return w.sb.String()
}

// checkNames reports variables used by the graph but missing from syms.
func checkNames(g *cfg.Graph, syms *symbols.Table) error {
	var errs []error
	for _, ref := range g.Reachable() {
		bb := g.Block(ref)
		for _, name := range namesOf(bb) {
			if _, ok := syms.Lookup(name); !ok {
				errs = append(errs, fmt.Errorf("bb_%d: undeclared variable %q", bb.ID, name))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("x86: %w", errors.Join(errs...))
	}
	return nil
}
