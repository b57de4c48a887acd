package ast

import (
	"fmt"
	"io"
)

// Dump writes an indented tree of prog to w.
func Dump(w io.Writer, prog *Program) error {
	if _, err := fmt.Fprintf(w, "Program %s\n", prog.Name); err != nil {
		return err
	}
	for i, d := range prog.Decls {
		marker := "├─"
		if i == len(prog.Decls)-1 && len(prog.Body) == 0 {
			marker = "└─"
		}
		if _, err := fmt.Fprintf(w, "%s Decl: %s %s\n", marker, d.Type, d.Name); err != nil {
			return err
		}
	}
	return dumpStmts(w, prog.Body, "")
}

func dumpStmts(w io.Writer, stmts []Stmt, prefix string) error {
	for i := range stmts {
		marker, childPrefix := "├─", prefix+"│  "
		if i == len(stmts)-1 {
			marker, childPrefix = "└─", prefix+"   "
		}
		if err := dumpStmt(w, &stmts[i], prefix+marker+" ", childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func dumpStmt(w io.Writer, s *Stmt, head, prefix string) error {
	var err error
	switch d := s.Data.(type) {
	case AssignData:
		_, err = fmt.Fprintf(w, "%sAssign %s := %s\n", head, d.Name, d.Value)
	case ReadData:
		_, err = fmt.Fprintf(w, "%sRead %s\n", head, d.Name)
	case WriteData:
		_, err = fmt.Fprintf(w, "%sWrite %s\n", head, d.Value)
	case IfData:
		if _, err = fmt.Fprintf(w, "%sIf %s\n", head, d.Cond); err != nil {
			return err
		}
		if err = dumpBranch(w, "Then", d.Then, prefix, len(d.Else) == 0); err != nil {
			return err
		}
		if len(d.Else) > 0 {
			err = dumpBranch(w, "Else", d.Else, prefix, true)
		}
	case WhileData:
		if _, err = fmt.Fprintf(w, "%sWhile %s\n", head, d.Cond); err != nil {
			return err
		}
		err = dumpBranch(w, "Body", d.Body, prefix, true)
	default:
		_, err = fmt.Fprintf(w, "%s%s\n", head, s.Kind)
	}
	return err
}

func dumpBranch(w io.Writer, label string, stmts []Stmt, prefix string, last bool) error {
	marker, childPrefix := "├─", prefix+"│  "
	if last {
		marker, childPrefix = "└─", prefix+"   "
	}
	if _, err := fmt.Fprintf(w, "%s%s %s\n", prefix, marker, label); err != nil {
		return err
	}
	return dumpStmts(w, stmts, childPrefix)
}
