package ast

import (
	"fmt"
	"strconv"

	"whilec/internal/source"
)

// ExprKind enumerates expression forms.
type ExprKind uint8

const (
	// ExprNumber is a natural literal.
	ExprNumber ExprKind = iota
	// ExprBool is a boolean literal.
	ExprBool
	// ExprIdent is a variable reference.
	ExprIdent
	// ExprBinary is an infix operator application.
	ExprBinary
	// ExprNot is logical negation.
	ExprNot
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprBool:
		return "Bool"
	case ExprIdent:
		return "Ident"
	case ExprBinary:
		return "Binary"
	case ExprNot:
		return "Not"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// Expr is an expression node. Binary and Not nodes own their children.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is implemented by the payload of each ExprKind.
type ExprData interface {
	exprData()
}

type NumberData struct {
	Value uint32
}

func (NumberData) exprData() {}

type BoolData struct {
	Value bool
}

func (BoolData) exprData() {}

type IdentData struct {
	Name string
}

func (IdentData) exprData() {}

// BinaryData holds an operator symbol:
// + - * / % < <= > >= = and or.
type BinaryData struct {
	Op    string
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

type NotData struct {
	Operand *Expr
}

func (NotData) exprData() {}

func Number(v uint32, sp source.Span) *Expr {
	return &Expr{Kind: ExprNumber, Span: sp, Data: NumberData{Value: v}}
}

func Bool(v bool, sp source.Span) *Expr {
	return &Expr{Kind: ExprBool, Span: sp, Data: BoolData{Value: v}}
}

func Ident(name string, sp source.Span) *Expr {
	return &Expr{Kind: ExprIdent, Span: sp, Data: IdentData{Name: name}}
}

// Binary covers both operand spans.
func Binary(op string, left, right *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Span: left.Span.Cover(right.Span), Data: BinaryData{Op: op, Left: left, Right: right}}
}

func Not(operand *Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprNot, Span: sp.Cover(operand.Span), Data: NotData{Operand: operand}}
}

// Clone returns a deep copy sharing no nodes with e.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	out := &Expr{Kind: e.Kind, Span: e.Span}
	switch d := e.Data.(type) {
	case BinaryData:
		out.Data = BinaryData{Op: d.Op, Left: d.Left.Clone(), Right: d.Right.Clone()}
	case NotData:
		out.Data = NotData{Operand: d.Operand.Clone()}
	default:
		out.Data = e.Data
	}
	return out
}

// String renders e in source syntax, fully parenthesised.
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch d := e.Data.(type) {
	case NumberData:
		return strconv.FormatUint(uint64(d.Value), 10)
	case BoolData:
		return strconv.FormatBool(d.Value)
	case IdentData:
		return d.Name
	case BinaryData:
		return "(" + d.Left.String() + " " + d.Op + " " + d.Right.String() + ")"
	case NotData:
		return "not " + d.Operand.String()
	default:
		return "<invalid>"
	}
}
