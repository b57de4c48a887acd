package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// NatLit represents a decimal natural literal.
	NatLit

	// KwProgram represents the 'program' keyword.
	KwProgram
	// KwBegin represents the 'begin' keyword.
	KwBegin
	// KwEnd represents the 'end' keyword.
	KwEnd
	// KwNatural represents the 'natural' type keyword.
	KwNatural
	// KwBoolean represents the 'boolean' type keyword.
	KwBoolean
	// KwTrue represents the 'true' literal.
	KwTrue
	// KwFalse represents the 'false' literal.
	KwFalse
	// KwRead represents the 'read' keyword.
	KwRead
	// KwWrite represents the 'write' keyword.
	KwWrite
	// KwIf represents the 'if' keyword.
	KwIf
	// KwThen represents the 'then' keyword.
	KwThen
	// KwElse represents the 'else' keyword.
	KwElse
	// KwEndif represents the 'endif' keyword.
	KwEndif
	// KwWhile represents the 'while' keyword.
	KwWhile
	// KwDo represents the 'do' keyword.
	KwDo
	// KwDone represents the 'done' keyword.
	KwDone
	// KwAnd represents the 'and' operator.
	KwAnd
	// KwOr represents the 'or' operator.
	KwOr
	// KwNot represents the 'not' operator.
	KwNot

	// Assign is ':='.
	Assign
	// Semicolon is ';'.
	Semicolon
	// LParen is '('.
	LParen
	// RParen is ')'.
	RParen
	// Plus is '+'.
	Plus
	// Minus is '-'.
	Minus
	// Star is '*'.
	Star
	// Slash is '/'.
	Slash
	// Percent is '%'.
	Percent
	// Lt is '<'.
	Lt
	// LtEq is '<='.
	LtEq
	// Gt is '>'.
	Gt
	// GtEq is '>='.
	GtEq
	// Eq is '='.
	Eq
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	NatLit:    "NatLit",
	KwProgram: "program",
	KwBegin:   "begin",
	KwEnd:     "end",
	KwNatural: "natural",
	KwBoolean: "boolean",
	KwTrue:    "true",
	KwFalse:   "false",
	KwRead:    "read",
	KwWrite:   "write",
	KwIf:      "if",
	KwThen:    "then",
	KwElse:    "else",
	KwEndif:   "endif",
	KwWhile:   "while",
	KwDo:      "do",
	KwDone:    "done",
	KwAnd:     "and",
	KwOr:      "or",
	KwNot:     "not",
	Assign:    ":=",
	Semicolon: ";",
	LParen:    "(",
	RParen:    ")",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	Eq:        "=",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
