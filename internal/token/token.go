package token

import "whilec/internal/source"

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwProgram && t.Kind <= KwNot
}

// IsStmtStart reports whether the token can begin a statement.
func (t Token) IsStmtStart() bool {
	switch t.Kind {
	case Ident, KwRead, KwWrite, KwIf, KwWhile:
		return true
	default:
		return false
	}
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
