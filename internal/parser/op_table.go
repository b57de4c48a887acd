package parser

import "whilec/internal/token"

// Таблица приоритетов бинарных операторов; больше — сильнее.
// Все операторы левоассоциативны, "not" сильнее любого бинарного.
const (
	precOr             = 1 // or
	precAnd            = 2 // and
	precEquality       = 3 // =
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / %
)

// binaryOp returns the operator symbol and precedence of k, or 0 if k is not binary.
func binaryOp(k token.Kind) (string, int) {
	switch k {
	case token.KwOr:
		return "or", precOr
	case token.KwAnd:
		return "and", precAnd
	case token.Eq:
		return "=", precEquality
	case token.Lt:
		return "<", precComparison
	case token.LtEq:
		return "<=", precComparison
	case token.Gt:
		return ">", precComparison
	case token.GtEq:
		return ">=", precComparison
	case token.Plus:
		return "+", precAdditive
	case token.Minus:
		return "-", precAdditive
	case token.Star:
		return "*", precMultiplicative
	case token.Slash:
		return "/", precMultiplicative
	case token.Percent:
		return "%", precMultiplicative
	default:
		return "", 0
	}
}
