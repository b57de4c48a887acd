package parser_test

import (
	"testing"

	"whilec/internal/ast"
	"whilec/internal/diag"
	"whilec/internal/lexer"
	"whilec/internal/parser"
	"whilec/internal/source"
)

func parseSource(t *testing.T, src string) (parser.Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.while", []byte(src)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := parser.ParseFile(fs, lx, parser.Options{Reporter: rep})
	return res, bag
}

func mustParse(t *testing.T, src string) parser.Result {
	t.Helper()
	res, bag := parseSource(t, src)
	if bag.HasErrors() {
		for _, d := range bag.Items() {
			t.Errorf("%s %s: %s", d.Code.ID(), d.Primary, d.Message)
		}
		t.FailNow()
	}
	return res
}

func wrap(decls, body string) string {
	return "program test\n" + decls + "\nbegin\n" + body + "\nend\n"
}

func firstStmt(t *testing.T, res parser.Result) ast.Stmt {
	t.Helper()
	if len(res.Program.Body) == 0 {
		t.Fatal("empty body")
	}
	return res.Program.Body[0]
}
