package cfg

import (
	"fmt"
	"io"
	"strings"
)

// DumpText writes a readable listing of the blocks reachable from Entry,
// in DFS preorder.
func DumpText(w io.Writer, g *Graph) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Control flow graph:\nEntry: %d\nExit:  %d\n", g.ID(g.Entry), g.ID(g.Exit))
	for _, ref := range g.Reachable() {
		bb := g.Block(ref)
		fmt.Fprintf(&sb, "Basic block: %d\n", bb.ID)
		for i := range bb.Instrs {
			sb.WriteString("  ")
			sb.WriteString(g.FormatInstr(&bb.Instrs[i]))
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatInstr renders one instruction on a single line.
func (g *Graph) FormatInstr(in *Instr) string {
	switch in.Kind {
	case InstrExpr:
		return in.Expr.String()
	case InstrAssign:
		return in.Assign.Name + " := " + in.Assign.Value.String()
	case InstrRead:
		return "read(" + in.Read.Name + ")"
	case InstrWrite:
		return "write(" + in.Write.Value.String() + ")"
	case InstrCAssign:
		c := in.CAssign
		return fmt.Sprintf("%s := %s ? %d : %d", c.Var, c.Cond, c.TrueValue, c.FalseValue)
	case InstrSelector:
		s := in.Selector
		return fmt.Sprintf("select basicblock %d or %d depending on %s", g.ID(s.True), g.ID(s.False), s.Cond)
	case InstrJump:
		return fmt.Sprintf("jump to basicblock %d", g.ID(in.Jump.Target))
	case InstrSwitcher:
		var sb strings.Builder
		fmt.Fprintf(&sb, "switch on %s:", in.Switcher.Var)
		for _, c := range in.Switcher.Cases {
			fmt.Fprintf(&sb, " %d -> %d;", c.Value, g.ID(c.Target))
		}
		return strings.TrimSuffix(sb.String(), ";")
	default:
		return in.Kind.String()
	}
}

// DumpDot writes the reachable graph in Graphviz format.
func DumpDot(w io.Writer, g *Graph) error {
	var sb strings.Builder
	sb.WriteString("digraph CFG {\n")
	sb.WriteString("  node [shape=\"box\",style=filled];\n")
	for _, ref := range g.Reachable() {
		bb := g.Block(ref)
		fmt.Fprintf(&sb, "  bb_%d [label=\"---  bb_%d  ---\\n\\n", bb.ID, bb.ID)
		for i := range bb.Instrs {
			sb.WriteString(dotEscape(g.FormatInstr(&bb.Instrs[i])))
			sb.WriteString("\\l")
		}
		sb.WriteString("\"]\n")

		term, ok := bb.Terminator()
		if !ok {
			continue
		}
		switch term.Kind {
		case InstrSelector:
			fmt.Fprintf(&sb, "  bb_%d -> bb_%d[label=\"true\",color=darkgreen]\n", bb.ID, g.ID(term.Selector.True))
			fmt.Fprintf(&sb, "  bb_%d -> bb_%d[label=\"false\",color=red]\n", bb.ID, g.ID(term.Selector.False))
		case InstrJump:
			fmt.Fprintf(&sb, "  bb_%d -> bb_%d\n", bb.ID, g.ID(term.Jump.Target))
		case InstrSwitcher:
			for _, c := range term.Switcher.Cases {
				fmt.Fprintf(&sb, "  bb_%d -> bb_%d[label=\"%d\"]\n", bb.ID, g.ID(c.Target), c.Value)
			}
		}
	}
	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func dotEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
