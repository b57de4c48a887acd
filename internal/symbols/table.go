package symbols

import (
	"slices"
	"strings"
)

// Table maps variable names to their declarations. Names are unique.
type Table struct {
	byName map[string]Symbol
}

func NewTable() *Table {
	return &Table{byName: make(map[string]Symbol)}
}

// Declare adds sym. It returns the existing symbol and false when the name is taken.
func (t *Table) Declare(sym Symbol) (Symbol, bool) {
	if prev, ok := t.byName[sym.Name]; ok {
		return prev, false
	}
	t.byName[sym.Name] = sym
	return sym, true
}

func (t *Table) Lookup(name string) (Symbol, bool) {
	sym, ok := t.byName[name]
	return sym, ok
}

// TypeOf returns the declared type of name or Undefined.
func (t *Table) TypeOf(name string) Type {
	return t.byName[name].Type
}

func (t *Table) Len() int { return len(t.byName) }

// Names returns all names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Symbols returns all symbols ordered by name.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, 0, len(t.byName))
	for _, name := range t.Names() {
		out = append(out, t.byName[name])
	}
	return out
}

// UniqueName returns prefix, or prefix followed by as many 'x' as needed
// to avoid every declared name.
func (t *Table) UniqueName(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	for {
		if _, taken := t.byName[b.String()]; !taken {
			return b.String()
		}
		b.WriteByte('x')
	}
}

// Clone returns an independent copy; obfuscation passes add symbols.
func (t *Table) Clone() *Table {
	out := &Table{byName: make(map[string]Symbol, len(t.byName))}
	for k, v := range t.byName {
		out.byName[k] = v
	}
	return out
}
