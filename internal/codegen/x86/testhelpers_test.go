package x86_test

import (
	"testing"

	"whilec/internal/cfg"
	"whilec/internal/diag"
	"whilec/internal/lexer"
	"whilec/internal/parser"
	"whilec/internal/sema"
	"whilec/internal/source"
	"whilec/internal/symbols"
)

func lower(t *testing.T, src string) (*cfg.Graph, *symbols.Table) {
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
	return cfg.Lower(res.Program.Body), res.Symbols
}
