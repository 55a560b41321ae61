package expr

import "strings"

// A Binding associates a symbol with the expression it stands for.
type Binding struct {
	Symbol Symbol
	Value  Expr
}

func (b Binding) String() string {
	return b.Symbol.Name + "=" + b.Value.String()
}

// A Substitution is an ordered list of bindings.
// A given symbol should be bound at most once; if it is not, the first binding wins.
type Substitution []Binding

// Lookup returns the expression bound to s, if any.
func (sub Substitution) Lookup(s Symbol) (Expr, bool) {
	for _, b := range sub {
		if b.Symbol == s {
			return b.Value, true
		}
	}
	return Expr{}, false
}

func (sub Substitution) String() string {
	strs := make([]string, len(sub))
	for i, b := range sub {
		strs[i] = b.String()
	}
	return "{" + strings.Join(strs, ", ") + "}"
}

func (sub Substitution) asMap() map[Symbol]Expr {
	m := make(map[Symbol]Expr, len(sub))
	for _, b := range sub {
		if _, ok := m[b.Symbol]; !ok {
			m[b.Symbol] = b.Value
		}
	}
	return m
}

// Substitute replaces in e every symbol bound in sub by its value.
// All replacements are done simultaneously: symbols appearing in the values of sub are not
// replaced themselves. The result is normalized.
func (e Expr) Substitute(sub Substitution) Expr {
	if len(sub) == 0 || len(e.terms) == 0 {
		return e
	}
	m := sub.asMap()
	var ts []term
	for _, t := range e.terms {
		var kept []Symbol
		prod := Expr{terms: []term{{coef: t.coef}}}
		replaced := false
		for _, v := range t.vars {
			if val, ok := m[v]; ok {
				prod = prod.Mul(val)
				replaced = true
			} else {
				kept = append(kept, v)
			}
		}
		if !replaced {
			ts = append(ts, t)
			continue
		}
		if len(kept) > 0 {
			prod = prod.Mul(Expr{terms: []term{{vars: kept, coef: one}}})
		}
		ts = append(ts, prod.terms...)
	}
	return collect(ts)
}
