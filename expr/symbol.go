package expr

import (
	"sort"
	"strings"
)

// Kind is the role of a symbol: either an unknown or a parameter.
type Kind uint8

const (
	// Unknown symbols are eliminated by the solver and receive a value in witnesses.
	Unknown = Kind(iota)
	// Parameter symbols are never eliminated and are left symbolic.
	Parameter
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Parameter:
		return "parameter"
	default:
		panic("invalid symbol kind")
	}
}

// A Symbol is a named quantity appearing in expressions.
// Two symbols are the same iff they have the same name and the same kind.
type Symbol struct {
	Name string
	Kind Kind
}

// NewUnknown returns the unknown called name.
func NewUnknown(name string) Symbol {
	return Symbol{Name: name, Kind: Unknown}
}

// NewParameter returns the parameter called name.
func NewParameter(name string) Symbol {
	return Symbol{Name: name, Kind: Parameter}
}

// IsUnknown is true iff s is an unknown.
func (s Symbol) IsUnknown() bool {
	return s.Kind == Unknown
}

func (s Symbol) String() string {
	return s.Name
}

// Compare returns -1, 0 or 1 depending on whether s sorts before, equal to or after o.
// Symbols are sorted by name, then unknowns before parameters.
func (s Symbol) Compare(o Symbol) int {
	if c := strings.Compare(s.Name, o.Name); c != 0 {
		return c
	}
	switch {
	case s.Kind < o.Kind:
		return -1
	case s.Kind > o.Kind:
		return 1
	default:
		return 0
	}
}

// SortSymbols sorts syms in place, according to Symbol.Compare.
func SortSymbols(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool { return syms[i].Compare(syms[j]) < 0 })
}

// FreeSymbols returns the sorted set of symbols occurring in any of the given expressions.
func FreeSymbols(exprs ...Expr) []Symbol {
	seen := make(map[Symbol]struct{})
	var res []Symbol
	for _, e := range exprs {
		for _, t := range e.terms {
			for _, v := range t.vars {
				if _, ok := seen[v]; !ok {
					seen[v] = struct{}{}
					res = append(res, v)
				}
			}
		}
	}
	SortSymbols(res)
	return res
}

// Unknowns returns the sorted set of unknowns occurring in any of the given expressions.
func Unknowns(exprs ...Expr) []Symbol {
	all := FreeSymbols(exprs...)
	res := all[:0]
	for _, s := range all {
		if s.IsUnknown() {
			res = append(res, s)
		}
	}
	return res
}
