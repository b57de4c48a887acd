package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynExpectType        Code = 2005
	SynUnclosedParen     Code = 2006
	SynExpectKeyword     Code = 2007
	SynNumberOverflow    Code = 2008
	SynTrailingInput     Code = 2009
	SynExpectAssignToken Code = 2010

	// Семантические
	SemaInfo             Code = 3000
	SemaUndefined        Code = 3001
	SemaRedeclared       Code = 3002
	SemaTypeMismatch     Code = 3003
	SemaConditionNotBool Code = 3004
	SemaOperandType      Code = 3005

	// Ввод/вывод
	IOLoadFileError Code = 4000

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectExpression:         "Expected expression",
	SynExpectType:               "Expected 'natural' or 'boolean'",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynExpectKeyword:            "Expected keyword",
	SynNumberOverflow:           "Natural literal does not fit in 32 bits",
	SynTrailingInput:            "Unexpected input after 'end'",
	SynExpectAssignToken:        "Expected ':='",
	SemaInfo:                    "Semantic information",
	SemaUndefined:               "Undefined variable",
	SemaRedeclared:              "Variable redeclared",
	SemaTypeMismatch:            "Type mismatch",
	SemaConditionNotBool:        "Condition is not boolean",
	SemaOperandType:             "Invalid operand type",
	IOLoadFileError:             "I/O load file error",
	ObsInfo:                     "Observability information",
	ObsTimings:                  "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
