package x86

import (
	"fmt"

	"whilec/internal/ast"
	"whilec/internal/sema"
	"whilec/internal/symbols"
)

// expr leaves the value of e in eax (al for booleans).
func (w *blockWriter) expr(e *ast.Expr) {
	switch d := e.Data.(type) {
	case ast.NumberData:
		w.literal(d.Value)
	case ast.BoolData:
		w.literal(b2u(d.Value))
	case ast.IdentData:
		w.linef("mov eax,[var_%s]", d.Name)
	case ast.BinaryData:
		w.expr(d.Left)
		w.line("push eax")
		w.expr(d.Right)
		w.line("mov ecx,eax")
		w.line("pop eax")
		if d.Op == "=" {
			w.eq(typeOf(w.e.syms, d.Left))
		} else {
			w.operator(d.Op)
		}
	case ast.NotData:
		w.expr(d.Operand)
		w.line("xor al,1")
	default:
		panic(fmt.Errorf("x86: unexpected expression kind %v", e.Kind))
	}
}

func (w *blockWriter) literal(v uint32) {
	if w.e.opts.MaskConstants {
		w.masked(v)
		return
	}
	w.linef("mov eax,%d", v)
}

// masked loads v into eax through Decode, keyed by the current block id.
func (w *blockWriter) masked(v uint32) {
	half := w.id / 2
	w.linef("mov eax, %d", Encode(v, w.id))
	w.linef("mov ebx, %d", w.id)
	w.line("xor eax, ebx")
	w.linef("sub eax, %d; encoded %d", half, v)
}

func (w *blockWriter) eq(operand symbols.Type) {
	if operand == symbols.Boolean {
		w.line("cmp al,cl")
	} else {
		w.line("cmp eax,ecx")
	}
	w.setIf("cmove")
}

// setIf materialises a flag as 0/1 in al.
func (w *blockWriter) setIf(cmov string) {
	w.line("mov al,0")
	w.line("mov cx,1")
	w.linef("%s ax,cx", cmov)
}

// operator expects the left operand in eax and the right one in ecx.
func (w *blockWriter) operator(op string) {
	switch op {
	case "+":
		w.line("add eax,ecx")
	case "-":
		w.line("sub eax,ecx")
	case "*":
		w.line("xor edx,edx")
		w.line("mul ecx")
	case "/":
		w.line("xor edx,edx")
		w.line("div ecx")
	case "%":
		w.line("xor edx,edx")
		w.line("div ecx")
		w.line("mov eax,edx")
	case "<", "<=", ">", ">=":
		w.line("cmp eax,ecx")
		w.setIf(unsignedCmov[op])
	case "and":
		// ecx: 0/1 справа; выбираем его, если слева 1
		w.line("cmp al,1")
		w.line("cmove ax,cx")
	case "or":
		w.line("cmp al,0")
		w.line("cmove ax,cx")
	default:
		panic(fmt.Errorf("x86: unsupported binary operator %q", op))
	}
}

var unsignedCmov = map[string]string{
	"<":  "cmovb",
	"<=": "cmovbe",
	">":  "cmova",
	">=": "cmovae",
}

func typeOf(syms *symbols.Table, e *ast.Expr) symbols.Type {
	return sema.TypeOf(syms, e)
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
