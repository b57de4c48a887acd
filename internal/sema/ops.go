package sema

import (
	"fmt"

	"whilec/internal/ast"
	"whilec/internal/symbols"
)

// signature of a binary operator. Operand is Undefined for '=',
// which accepts any two operands of the same type.
type signature struct {
	operand symbols.Type
	result  symbols.Type
}

var binarySignatures = map[string]signature{
	"+":   {symbols.Natural, symbols.Natural},
	"-":   {symbols.Natural, symbols.Natural},
	"*":   {symbols.Natural, symbols.Natural},
	"/":   {symbols.Natural, symbols.Natural},
	"%":   {symbols.Natural, symbols.Natural},
	"<":   {symbols.Natural, symbols.Boolean},
	">":   {symbols.Natural, symbols.Boolean},
	"<=":  {symbols.Natural, symbols.Boolean},
	">=":  {symbols.Natural, symbols.Boolean},
	"and": {symbols.Boolean, symbols.Boolean},
	"or":  {symbols.Boolean, symbols.Boolean},
	"=":   {symbols.Undefined, symbols.Boolean},
}

// IsBinaryOp reports whether op is a known binary operator symbol.
func IsBinaryOp(op string) bool {
	_, ok := binarySignatures[op]
	return ok
}

// TypeOf returns the type of an expression that already passed Check.
// Undeclared names yield Undefined; an unknown operator panics.
func TypeOf(syms *symbols.Table, e *ast.Expr) symbols.Type {
	switch d := e.Data.(type) {
	case ast.NumberData:
		return symbols.Natural
	case ast.BoolData:
		return symbols.Boolean
	case ast.IdentData:
		return syms.TypeOf(d.Name)
	case ast.BinaryData:
		sig, ok := binarySignatures[d.Op]
		if !ok {
			panic(fmt.Errorf("sema: unknown binary operator %q", d.Op))
		}
		return sig.result
	case ast.NotData:
		return symbols.Boolean
	default:
		panic(fmt.Errorf("sema: unexpected expression kind %v", e.Kind))
	}
}
