package token

var keywords = map[string]Kind{
	"program": KwProgram,
	"begin":   KwBegin,
	"end":     KwEnd,
	"natural": KwNatural,
	"boolean": KwBoolean,
	"true":    KwTrue,
	"false":   KwFalse,
	"read":    KwRead,
	"write":   KwWrite,
	"if":      KwIf,
	"then":    KwThen,
	"else":    KwElse,
	"endif":   KwEndif,
	"while":   KwWhile,
	"do":      KwDo,
	"done":    KwDone,
	"and":     KwAnd,
	"or":      KwOr,
	"not":     KwNot,
}

// LookupKeyword возвращает вид токена, если ident — ключевое слово.
// Регистр важен: распознаются только lowercase версии.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
