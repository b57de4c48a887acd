package obfuscate_test

import (
	"testing"

	"whilec/internal/ast"
	"whilec/internal/cfg"
	"whilec/internal/diag"
	"whilec/internal/lexer"
	"whilec/internal/parser"
	"whilec/internal/sema"
	"whilec/internal/source"
	"whilec/internal/symbols"
)

// build parses, checks and lowers src.
func build(t *testing.T, src string) (*ast.Program, *symbols.Table, *cfg.Graph) {
	t.Helper()
	prog, syms := frontend(t, src)
	// второй разбор: Lower потребляет операторы, а интерпретатору нужно дерево
	lowered, _ := frontend(t, src)
	return prog, syms, cfg.Lower(lowered.Body)
}

func frontend(t *testing.T, src string) (*ast.Program, *symbols.Table) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.while", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(fs, lexer.New(file, lexer.Options{Reporter: rep}), parser.Options{Reporter: rep})
	sema.Check(res.Program, sema.Options{Reporter: rep, Symbols: res.Symbols})
	if bag.HasErrors() {
		t.Fatalf("front end errors: %v", bag.Items())
	}
	return res.Program, res.Symbols
}

// edges returns the successor relation over arena refs.
func edges(g *cfg.Graph) map[cfg.BlockRef][]cfg.BlockRef {
	out := make(map[cfg.BlockRef][]cfg.BlockRef, g.Len())
	for _, ref := range g.Refs() {
		out[ref] = g.Successors(ref)
	}
	return out
}
