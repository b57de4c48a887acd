package cfg_test

import (
	"strings"
	"testing"

	"whilec/internal/ast"
	"whilec/internal/cfg"
)

func TestNewBlockIDsIncrease(t *testing.T) {
	g := cfg.NewGraph()
	for i := 0; i < 5; i++ {
		ref := g.NewBlock()
		if got := g.ID(ref); got != cfg.BlockID(i) {
			t.Fatalf("block %d has id %d", i, got)
		}
		if back, ok := g.Lookup(cfg.BlockID(i)); !ok || back != ref {
			t.Fatalf("Lookup(%d) = %d, %v", i, back, ok)
		}
	}
}

func TestRelabel(t *testing.T) {
	g := cfg.NewGraph()
	a, b := g.NewBlock(), g.NewBlock()
	g.Entry, g.Exit = a, b
	g.Block(a).Append(cfg.Jump(b))
	g.Relabel([]cfg.BlockID{700, 9}, 1000)
	if g.ID(a) != 700 || g.ID(b) != 9 {
		t.Fatalf("ids = %d, %d", g.ID(a), g.ID(b))
	}
	if ref, ok := g.Lookup(700); !ok || ref != a {
		t.Errorf("Lookup(700) = %d, %v", ref, ok)
	}
	if _, ok := g.Lookup(0); ok {
		t.Error("stale id still indexed")
	}
	if c := g.NewBlock(); g.ID(c) != 1000 {
		t.Errorf("next id = %d, want 1000", g.ID(c))
	}
	if err := cfg.Validate(g); err != nil {
		t.Fatal(err)
	}
}

func TestRelabelDuplicatePanics(t *testing.T) {
	g := cfg.NewGraph()
	g.NewBlock()
	g.NewBlock()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	g.Relabel([]cfg.BlockID{3, 3}, 4)
}

func TestValidateReportsMisplacedTransfer(t *testing.T) {
	g := cfg.NewGraph()
	a := g.NewBlock()
	g.Entry, g.Exit = a, a
	bb := g.Block(a)
	// обходим Append, чтобы собрать заведомо сломанный блок
	bb.Instrs = append(bb.Instrs, cfg.Jump(a), cfg.Write(num(1)), cfg.Jump(cfg.BlockRef(7)))
	err := cfg.Validate(g)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"not the last instruction", "unknown ref 7"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestDumpText(t *testing.T) {
	g := cfg.Lower([]ast.Stmt{
		ast.If(lt(id("x"), num(2)), []ast.Stmt{ast.Write(num(1), sp)}, nil, sp),
	})
	var sb strings.Builder
	if err := cfg.DumpText(&sb, g); err != nil {
		t.Fatal(err)
	}
	want := `Control flow graph:
Entry: 0
Exit:  3
Basic block: 0
  select basicblock 1 or 2 depending on (x < 2)
Basic block: 1
  write(1)
  jump to basicblock 3
Basic block: 3
Basic block: 2
  jump to basicblock 3
`
	if sb.String() != want {
		t.Errorf("dump:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestDumpDot(t *testing.T) {
	g := cfg.Lower([]ast.Stmt{
		ast.While(lt(id("x"), num(2)), []ast.Stmt{ast.Read("x", sp)}, sp),
	})
	var sb strings.Builder
	if err := cfg.DumpDot(&sb, g); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	for _, want := range []string{
		"digraph CFG {",
		`bb_0 -> bb_1[label="true",color=darkgreen]`,
		`bb_0 -> bb_2[label="false",color=red]`,
		`bb_1 -> bb_1[label="true",color=darkgreen]`,
		`read(x)\l`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dot output lacks %q:\n%s", want, out)
		}
	}
}
