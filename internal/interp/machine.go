// Package interp executes While programs directly, either by walking the
// statement tree or by following a control flow graph block by block.
// Both walkers share one evaluator so their observable behaviour matches.
package interp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"whilec/internal/ast"
	"whilec/internal/sema"
	"whilec/internal/symbols"
)

var (
	ErrStepLimit      = errors.New("step limit exceeded")
	ErrDivisionByZero = errors.New("division by zero")
	ErrUninitialized  = errors.New("variable has not been initialized")
	ErrBadInput       = errors.New("malformed input")
)

// Options configure one run. MaxSteps bounds executed statements (tree)
// or blocks (graph); 0 means no limit.
type Options struct {
	In       io.Reader
	Out      io.Writer
	MaxSteps int
}

type machine struct {
	ctx   context.Context
	syms  *symbols.Table
	in    *bufio.Reader
	out   io.Writer
	vars  map[string]uint32
	limit int
	steps int
}

func newMachine(ctx context.Context, syms *symbols.Table, opts Options) *machine {
	m := &machine{
		ctx:   ctx,
		syms:  syms,
		out:   opts.Out,
		vars:  make(map[string]uint32, syms.Len()),
		limit: opts.MaxSteps,
	}
	if opts.In != nil {
		m.in = bufio.NewReader(opts.In)
	}
	if m.out == nil {
		m.out = io.Discard
	}
	return m
}

// step is called once per statement or block.
func (m *machine) step() error {
	if err := m.ctx.Err(); err != nil {
		return err
	}
	m.steps++
	if m.limit > 0 && m.steps > m.limit {
		return fmt.Errorf("%w (%d)", ErrStepLimit, m.limit)
	}
	return nil
}

func (m *machine) eval(e *ast.Expr) (uint32, error) {
	switch d := e.Data.(type) {
	case ast.NumberData:
		return d.Value, nil
	case ast.BoolData:
		return b2u(d.Value), nil
	case ast.IdentData:
		v, ok := m.vars[d.Name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUninitialized, d.Name)
		}
		return v, nil
	case ast.NotData:
		v, err := m.eval(d.Operand)
		if err != nil {
			return 0, err
		}
		return b2u(v == 0), nil
	case ast.BinaryData:
		l, err := m.eval(d.Left)
		if err != nil {
			return 0, err
		}
		r, err := m.eval(d.Right)
		if err != nil {
			return 0, err
		}
		return apply(d.Op, l, r)
	default:
		panic(fmt.Errorf("interp: unexpected expression kind %v", e.Kind))
	}
}

// apply computes l op r with 32-bit unsigned wrap-around.
func apply(op string, l, r uint32) (uint32, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l % r, nil
	case "<":
		return b2u(l < r), nil
	case ">":
		return b2u(l > r), nil
	case "<=":
		return b2u(l <= r), nil
	case ">=":
		return b2u(l >= r), nil
	case "and":
		return b2u(l != 0 && r != 0), nil
	case "or":
		return b2u(l != 0 || r != 0), nil
	case "=":
		return b2u(l == r), nil
	default:
		panic(fmt.Errorf("interp: unknown operator %q", op))
	}
}

func (m *machine) assign(name string, value *ast.Expr) error {
	v, err := m.eval(value)
	if err != nil {
		return err
	}
	m.vars[name] = v
	return nil
}

// read consumes one line: a decimal for naturals, "true" for a true boolean.
func (m *machine) read(name string) error {
	if m.in == nil {
		return fmt.Errorf("read(%s): %w: no input", name, io.EOF)
	}
	line, err := m.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return fmt.Errorf("read(%s): %w", name, err)
	}
	line = strings.TrimRight(line, "\r\n")
	switch m.syms.TypeOf(name) {
	case symbols.Boolean:
		m.vars[name] = b2u(line == "true")
	case symbols.Natural:
		v, err := strconv.ParseUint(strings.TrimSpace(line), 10, 32)
		if err != nil {
			return fmt.Errorf("read(%s): %w: %q", name, ErrBadInput, line)
		}
		m.vars[name] = uint32(v)
	default:
		return fmt.Errorf("read(%s): undeclared variable", name)
	}
	return nil
}

func (m *machine) write(value *ast.Expr) error {
	v, err := m.eval(value)
	if err != nil {
		return err
	}
	var text string
	if sema.TypeOf(m.syms, value) == symbols.Boolean {
		text = strconv.FormatBool(v != 0)
	} else {
		text = strconv.FormatUint(uint64(v), 10)
	}
	_, err = io.WriteString(m.out, text+"\n")
	return err
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
