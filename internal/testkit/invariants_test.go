package testkit_test

import (
	"testing"

	"whilec/internal/ast"
	"whilec/internal/diag"
	"whilec/internal/lexer"
	"whilec/internal/parser"
	"whilec/internal/source"
	"whilec/internal/testkit"
)

func parse(t *testing.T, src string) (*ast.Program, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.while", []byte(src)))
	bag := diag.NewBag(16)
	rep := diag.BagReporter{Bag: bag}
	res := parser.ParseFile(fs, lexer.New(file, lexer.Options{Reporter: rep}), parser.Options{Reporter: rep})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	return res.Program, file
}

func TestValidProgramsHoldInvariants(t *testing.T) {
	sources := []string{
		"program p begin end",
		"program p natural x; boolean b; begin read(x); b := not (x < 3) and true; write(x * (x + 1)) end",
		"program p natural i; begin i := 2; while i > 0 do if i = 1 then write(i) else i := i - 1 endif; i := i - 1 done end",
	}
	for _, src := range sources {
		prog, file := parse(t, src)
		if err := testkit.CheckSpanInvariants(prog, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestDetectsEscapingSpan(t *testing.T) {
	prog, file := parse(t, "program p natural x; begin x := 1; write(x) end")
	bad := prog.Body[0]
	bad.Span.End = prog.Span.End + 5
	prog.Body[0] = bad
	if err := testkit.CheckSpanInvariants(prog, file); err == nil {
		t.Fatal("expected escaping span to be reported")
	}
	if err := testkit.CheckSpanInvariants(nil, file); err == nil {
		t.Fatal("expected nil program error")
	}
}
