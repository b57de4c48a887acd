package obfuscate_test

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"whilec/internal/cfg"
	"whilec/internal/interp"
	"whilec/internal/obfuscate"
	"whilec/internal/prng"
	"whilec/internal/symbols"
)

// corpus of programs with nested control flow; each entry lists inputs to try.
var corpus = []struct {
	name   string
	src    string
	inputs []string
}{
	{"straight", "program p natural x; begin x := 1 + 2; write(x) end", []string{""}},
	{"if", "program p begin if true then write(1) else write(2) endif end", []string{""}},
	{
		"nested if",
		`program p natural x; begin read(x);
			if x < 10 then
				if x % 2 = 0 then write(0) else write(1) endif
			else
				if x > 100 then write(100) endif
				write(x)
			endif
		end`,
		[]string{"4\n", "7\n", "50\n", "500\n"},
	},
	{
		"loops",
		`program p natural i; natural j; natural acc; boolean done_; begin
			read(i); acc := 0; done_ := false;
			while not done_ do
				j := 0;
				while j < i do
					if (acc + j) % 3 = 0 then acc := acc + j else acc := acc + 1 endif
					j := j + 1
				done
				i := i - 1;
				done_ := i = 0 or acc > 50
			done
			write(acc); write(done_)
		end`,
		[]string{"1\n", "3\n", "6\n", "12\n"},
	},
	{
		"collatz",
		`program p natural n; natural steps; begin read(n); steps := 0;
			while n > 1 do
				if n % 2 = 0 then n := n / 2 else n := 3 * n + 1 endif
				steps := steps + 1
			done
			write(steps)
		end`,
		[]string{"1\n", "6\n", "27\n"},
	},
}

func run(t *testing.T, g *cfg.Graph, syms *symbols.Table, input string) string {
	t.Helper()
	var out strings.Builder
	err := interp.RunGraph(context.Background(), g, syms, interp.Options{In: strings.NewReader(input), Out: &out, MaxSteps: 1_000_000})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestFlattenPreservesBehaviour(t *testing.T) {
	for _, tc := range corpus {
		t.Run(tc.name, func(t *testing.T) {
			for _, input := range tc.inputs {
				prog, syms, plain := build(t, tc.src)
				want := run(t, plain, syms, input)

				var tree strings.Builder
				if err := interp.RunProgram(context.Background(), prog, syms, interp.Options{In: strings.NewReader(input), Out: &tree}); err != nil {
					t.Fatal(err)
				}
				if tree.String() != want {
					t.Fatalf("tree %q != graph %q", tree.String(), want)
				}

				_, fsyms, flat := build(t, tc.src)
				obfuscate.Flatten(fsyms, flat)
				if err := cfg.Validate(flat); err != nil {
					t.Fatal(err)
				}
				if got := run(t, flat, fsyms, input); got != want {
					t.Errorf("input %q: flattened output %q, want %q", input, got, want)
				}
			}
		})
	}
}

func TestFlattenDispatchCompleteness(t *testing.T) {
	for _, tc := range corpus {
		t.Run(tc.name, func(t *testing.T) {
			_, syms, g := build(t, tc.src)
			before := make(map[cfg.BlockRef]cfg.BlockID, g.Len())
			for _, ref := range g.Refs() {
				before[ref] = g.ID(ref)
			}
			res := obfuscate.Flatten(syms, g)

			term, ok := g.Block(res.Dispatcher).Terminator()
			if !ok || term.Kind != cfg.InstrSwitcher {
				t.Fatalf("dispatcher = %+v", g.Block(res.Dispatcher).Instrs)
			}
			if term.Switcher.Var != res.Var {
				t.Errorf("switcher var = %q, want %q", term.Switcher.Var, res.Var)
			}
			if len(term.Switcher.Cases) != len(before) {
				t.Fatalf("cases = %d, want %d", len(term.Switcher.Cases), len(before))
			}
			for _, c := range term.Switcher.Cases {
				id, ok := before[c.Target]
				if !ok || uint32(id) != c.Value {
					t.Errorf("case %d -> ref %d does not match a pre-flatten block", c.Value, c.Target)
				}
				delete(before, c.Target)
			}
			if len(before) != 0 {
				t.Errorf("blocks missing from dispatch: %v", before)
			}

			for _, c := range term.Switcher.Cases {
				bb := g.Block(c.Target)
				last, ok := bb.Terminator()
				if !ok {
					continue // сток
				}
				if last.Kind != cfg.InstrJump || last.Jump.Target != res.Dispatcher {
					t.Errorf("bb_%d ends in %s, want jump to dispatcher", bb.ID, last.Kind)
				}
				prev := bb.Instrs[len(bb.Instrs)-2]
				if prev.Kind != cfg.InstrCAssign && prev.Kind != cfg.InstrAssign {
					t.Errorf("bb_%d: %s before the jump", bb.ID, prev.Kind)
				}
			}
			if g.Entry != res.NewEntry {
				t.Errorf("entry = %d, want new entry %d", g.Entry, res.NewEntry)
			}
		})
	}
}

func TestFlattenIfExample(t *testing.T) {
	_, syms, g := build(t, "program p begin if true then write(1) else write(2) endif end")
	res := obfuscate.Flatten(syms, g)
	term, _ := g.Block(res.Dispatcher).Terminator()
	if len(term.Switcher.Cases) != 4 {
		t.Fatalf("dispatcher has %d cases, want 4", len(term.Switcher.Cases))
	}
	values := make([]uint32, 0, 4)
	for _, c := range term.Switcher.Cases {
		values = append(values, c.Value)
	}
	if !slices.Equal(values, []uint32{0, 1, 2, 3}) {
		t.Errorf("case values = %v", values)
	}
	entry := g.Block(res.NewEntry)
	if len(entry.Instrs) != 2 || entry.Instrs[0].Kind != cfg.InstrAssign || entry.Instrs[0].Assign.Value.String() != "0" {
		t.Errorf("new entry = %+v", entry.Instrs)
	}
	if got := run(t, g, syms, ""); got != "1\n" {
		t.Errorf("output = %q, want 1", got)
	}
	sym, ok := syms.Lookup(res.Var)
	if !ok || sym.Type != symbols.Natural || sym.Line != -1 {
		t.Errorf("selector symbol = %+v, %v", sym, ok)
	}
}

func TestFlattenAvoidsNameClash(t *testing.T) {
	_, syms, g := build(t, "program p natural __bb_selector_; natural __bb_selector_x; begin __bb_selector_ := 1; write(__bb_selector_) end")
	res := obfuscate.Flatten(syms, g)
	if res.Var != "__bb_selector_xx" {
		t.Fatalf("var = %q", res.Var)
	}
	if got := run(t, g, syms, ""); got != "1\n" {
		t.Errorf("output = %q", got)
	}
}

func TestFlattenTwice(t *testing.T) {
	_, syms, g := build(t, corpus[3].src)
	want := run(t, g, syms.Clone(), "6\n")
	first := obfuscate.Flatten(syms, g)
	second := obfuscate.Flatten(syms, g)
	if first.Var == second.Var {
		t.Fatal("second flatten reused the dispatch variable")
	}
	if got := run(t, g, syms, "6\n"); got != want {
		t.Errorf("double flatten output %q, want %q", got, want)
	}
}

func TestFlattenThenRemapPreservesBehaviour(t *testing.T) {
	for _, tc := range corpus {
		for seed := uint64(0); seed < 3; seed++ {
			t.Run(fmt.Sprintf("%s/seed%d", tc.name, seed), func(t *testing.T) {
				for _, input := range tc.inputs {
					_, syms, plain := build(t, tc.src)
					want := run(t, plain, syms, input)

					_, fsyms, g := build(t, tc.src)
					obfuscate.Flatten(fsyms, g)
					obfuscate.RemapBlockIDs(g, prng.Fixed(seed).New())
					if err := cfg.Validate(g); err != nil {
						t.Fatal(err)
					}
					if got := run(t, g, fsyms, input); got != want {
						t.Errorf("input %q: output %q, want %q", input, got, want)
					}
				}
			})
		}
	}
}
