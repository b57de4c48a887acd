package cfg

import (
	"fmt"

	"whilec/internal/ast"
)

// InstrKind enumerates IR instruction kinds.
type InstrKind uint8

const (
	// InstrExpr is a bare expression evaluated for its value.
	InstrExpr InstrKind = iota
	// InstrAssign stores an expression into a variable.
	InstrAssign
	// InstrRead reads a variable from the runtime.
	InstrRead
	// InstrWrite prints an expression through the runtime.
	InstrWrite
	// InstrCAssign stores one of two constants depending on a condition.
	// It is produced by flattening and is not a control transfer.
	InstrCAssign
	// InstrSelector is a two-way conditional transfer.
	InstrSelector
	// InstrJump is an unconditional transfer.
	InstrJump
	// InstrSwitcher is a multi-way transfer on the value of a variable.
	InstrSwitcher
)

func (k InstrKind) String() string {
	switch k {
	case InstrExpr:
		return "expr"
	case InstrAssign:
		return "assign"
	case InstrRead:
		return "read"
	case InstrWrite:
		return "write"
	case InstrCAssign:
		return "cassign"
	case InstrSelector:
		return "selector"
	case InstrJump:
		return "jump"
	case InstrSwitcher:
		return "switcher"
	default:
		return fmt.Sprintf("InstrKind(%d)", k)
	}
}

// Instr is a closed variant; only the payload matching Kind is meaningful.
type Instr struct {
	Kind InstrKind

	Expr     *ast.Expr
	Assign   AssignInstr
	Read     ReadInstr
	Write    WriteInstr
	CAssign  CAssignInstr
	Selector SelectorInstr
	Jump     JumpInstr
	Switcher SwitcherInstr
}

// AssignInstr stores Value into the variable Name.
type AssignInstr struct {
	Name  string
	Value *ast.Expr
}

// ReadInstr reads one input line into Name.
type ReadInstr struct {
	Name string
}

// WriteInstr prints Value followed by a newline.
type WriteInstr struct {
	Value *ast.Expr
}

// CAssignInstr: Var := Cond ? TrueValue : FalseValue.
type CAssignInstr struct {
	Var        string
	Cond       *ast.Expr
	TrueValue  uint32
	FalseValue uint32
}

// SelectorInstr branches to True or False on Cond. It ends a block.
type SelectorInstr struct {
	Cond  *ast.Expr
	True  BlockRef
	False BlockRef
}

// JumpInstr transfers control to Target unconditionally.
type JumpInstr struct {
	Target BlockRef
}

// SwitchCase dispatches to Target when the variable equals Value.
// Value is fixed when the case is built and is not updated by later renaming.
type SwitchCase struct {
	Value  uint32
	Target BlockRef
}

// SwitcherInstr jumps to the case whose Value equals Var. It ends a block.
type SwitcherInstr struct {
	Var   string
	Cases []SwitchCase
}

// IsTransfer reports whether the instruction ends a block.
func (in *Instr) IsTransfer() bool {
	switch in.Kind {
	case InstrSelector, InstrJump, InstrSwitcher:
		return true
	default:
		return false
	}
}

// Targets lists the blocks control may move to, in successor order.
func (in *Instr) Targets() []BlockRef {
	switch in.Kind {
	case InstrSelector:
		return []BlockRef{in.Selector.True, in.Selector.False}
	case InstrJump:
		return []BlockRef{in.Jump.Target}
	case InstrSwitcher:
		out := make([]BlockRef, len(in.Switcher.Cases))
		for i, c := range in.Switcher.Cases {
			out[i] = c.Target
		}
		return out
	default:
		return nil
	}
}

// ExprInstr evaluates e and discards the result.
func ExprInstr(e *ast.Expr) Instr {
	return Instr{Kind: InstrExpr, Expr: e}
}

// Assign builds name := value.
func Assign(name string, value *ast.Expr) Instr {
	return Instr{Kind: InstrAssign, Assign: AssignInstr{Name: name, Value: value}}
}

// Read builds read(name).
func Read(name string) Instr {
	return Instr{Kind: InstrRead, Read: ReadInstr{Name: name}}
}

// Write builds write(value).
func Write(value *ast.Expr) Instr {
	return Instr{Kind: InstrWrite, Write: WriteInstr{Value: value}}
}

// CAssign builds v := cond ? t : f.
func CAssign(v string, cond *ast.Expr, t, f uint32) Instr {
	return Instr{Kind: InstrCAssign, CAssign: CAssignInstr{Var: v, Cond: cond, TrueValue: t, FalseValue: f}}
}

// Selector builds a two-way branch on cond.
func Selector(cond *ast.Expr, t, f BlockRef) Instr {
	return Instr{Kind: InstrSelector, Selector: SelectorInstr{Cond: cond, True: t, False: f}}
}

// Jump builds an unconditional transfer to target.
func Jump(target BlockRef) Instr {
	return Instr{Kind: InstrJump, Jump: JumpInstr{Target: target}}
}

// Switcher builds a multi-way dispatch on v.
func Switcher(v string, cases []SwitchCase) Instr {
	return Instr{Kind: InstrSwitcher, Switcher: SwitcherInstr{Var: v, Cases: cases}}
}
