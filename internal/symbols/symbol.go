package symbols

import "whilec/internal/source"

// Type is the static type of a While variable.
type Type uint8

const (
	// Undefined is the type of names that were never declared.
	Undefined Type = iota
	Boolean
	Natural
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Natural:
		return "natural"
	default:
		return "undefined"
	}
}

// Size is the storage size in bytes.
func (t Type) Size() int {
	switch t {
	case Boolean:
		return 1
	case Natural:
		return 4
	default:
		return 0
	}
}

// Symbol describes one declared variable. Line is -1 for compiler-generated names.
type Symbol struct {
	Line int
	Name string
	Type Type
	Span source.Span
}

// Synthetic reports whether the symbol was introduced by a pass rather than by source.
func (s Symbol) Synthetic() bool { return s.Line < 0 }
