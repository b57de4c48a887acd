package ast

import (
	"fmt"

	"whilec/internal/source"
	"whilec/internal/symbols"
)

// StmtKind enumerates statement forms.
type StmtKind uint8

const (
	// StmtInvalid is the zero value; the parser never produces it.
	StmtInvalid StmtKind = iota
	StmtAssign
	StmtRead
	StmtWrite
	StmtIf
	StmtWhile
)

func (k StmtKind) String() string {
	switch k {
	case StmtInvalid:
		return "Invalid"
	case StmtAssign:
		return "Assign"
	case StmtRead:
		return "Read"
	case StmtWrite:
		return "Write"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	default:
		return fmt.Sprintf("StmtKind(%d)", k)
	}
}

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

type StmtData interface {
	stmtData()
}

type AssignData struct {
	Name     string
	NameSpan source.Span
	Value    *Expr
}

func (AssignData) stmtData() {}

type ReadData struct {
	Name     string
	NameSpan source.Span
}

func (ReadData) stmtData() {}

type WriteData struct {
	Value *Expr
}

func (WriteData) stmtData() {}

// IfData: Else is empty when the source had no else branch.
type IfData struct {
	Cond *Expr
	Then []Stmt
	Else []Stmt
}

func (IfData) stmtData() {}

type WhileData struct {
	Cond *Expr
	Body []Stmt
}

func (WhileData) stmtData() {}

// Decl is one variable declaration from the program header.
type Decl struct {
	Name string
	Type symbols.Type
	Span source.Span
}

// Program is a parsed source file.
type Program struct {
	Name  string
	Span  source.Span
	Decls []Decl
	Body  []Stmt
}
