package interp

import (
	"context"
	"fmt"

	"whilec/internal/cfg"
	"whilec/internal/symbols"
)

// RunGraph executes g from its entry until a block without a transfer runs.
func RunGraph(ctx context.Context, g *cfg.Graph, syms *symbols.Table, opts Options) error {
	m := newMachine(ctx, syms, opts)
	cur := g.Entry
	for {
		if err := m.step(); err != nil {
			return err
		}
		next, err := m.block(g, g.Block(cur))
		if err != nil {
			return fmt.Errorf("bb_%d: %w", g.ID(cur), err)
		}
		if next == cfg.NoBlock {
			return nil
		}
		cur = next
	}
}

// block runs every instruction of bb and returns the next block, or NoBlock for a sink.
func (m *machine) block(g *cfg.Graph, bb *cfg.Block) (cfg.BlockRef, error) {
	for i := range bb.Instrs {
		in := &bb.Instrs[i]
		switch in.Kind {
		case cfg.InstrExpr:
			if _, err := m.eval(in.Expr); err != nil {
				return cfg.NoBlock, err
			}
		case cfg.InstrAssign:
			if err := m.assign(in.Assign.Name, in.Assign.Value); err != nil {
				return cfg.NoBlock, err
			}
		case cfg.InstrRead:
			if err := m.read(in.Read.Name); err != nil {
				return cfg.NoBlock, err
			}
		case cfg.InstrWrite:
			if err := m.write(in.Write.Value); err != nil {
				return cfg.NoBlock, err
			}
		case cfg.InstrCAssign:
			c, err := m.eval(in.CAssign.Cond)
			if err != nil {
				return cfg.NoBlock, err
			}
			v := in.CAssign.FalseValue
			if c != 0 {
				v = in.CAssign.TrueValue
			}
			m.vars[in.CAssign.Var] = v
		case cfg.InstrSelector:
			c, err := m.eval(in.Selector.Cond)
			if err != nil {
				return cfg.NoBlock, err
			}
			if c != 0 {
				return in.Selector.True, nil
			}
			return in.Selector.False, nil
		case cfg.InstrJump:
			return in.Jump.Target, nil
		case cfg.InstrSwitcher:
			v, ok := m.vars[in.Switcher.Var]
			if !ok {
				return cfg.NoBlock, fmt.Errorf("%w: %s", ErrUninitialized, in.Switcher.Var)
			}
			for _, c := range in.Switcher.Cases {
				if c.Value == v {
					return c.Target, nil
				}
			}
			return cfg.NoBlock, fmt.Errorf("switch on %s: no case for %d", in.Switcher.Var, v)
		default:
			panic(fmt.Errorf("interp: unknown instruction kind %v", in.Kind))
		}
	}
	return cfg.NoBlock, nil
}
