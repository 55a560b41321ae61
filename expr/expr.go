package expr

import (
	"math/big"
	"sort"
	"strings"
)

// A term is a rational coefficient multiplied by a monomial.
type term struct {
	vars []Symbol // Sorted. A symbol appears k times in a k-th power. Empty for the constant term.
	coef *big.Rat // Never zero. Never modified once the term is built.
}

var one = big.NewRat(1, 1)

// compareMonomials orders monomials lexicographically, the constant monomial first.
func compareMonomials(a, b []Symbol) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// mergeMonomials returns the product of two monomials, as a new sorted slice.
func mergeMonomials(a, b []Symbol) []Symbol {
	res := make([]Symbol, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Compare(b[j]) <= 0 {
			res = append(res, a[i])
			i++
		} else {
			res = append(res, b[j])
			j++
		}
	}
	res = append(res, a[i:]...)
	return append(res, b[j:]...)
}

// An Expr is a polynomial with rational coefficients.
// The zero value is the null expression.
type Expr struct {
	terms []term // Sorted by monomial, no two terms share a monomial.
}

// collect normalizes ts into an expression: like terms are merged and null terms removed.
// It takes ownership of ts.
func collect(ts []term) Expr {
	sort.SliceStable(ts, func(i, j int) bool { return compareMonomials(ts[i].vars, ts[j].vars) < 0 })
	var res []term
	for _, t := range ts {
		if n := len(res); n > 0 && compareMonomials(res[n-1].vars, t.vars) == 0 {
			res[n-1].coef = new(big.Rat).Add(res[n-1].coef, t.coef)
			continue
		}
		res = append(res, t)
	}
	nonNull := res[:0]
	for _, t := range res {
		if t.coef.Sign() != 0 {
			nonNull = append(nonNull, t)
		}
	}
	if len(nonNull) == 0 {
		return Expr{}
	}
	return Expr{terms: nonNull}
}

// Zero returns the null expression.
func Zero() Expr {
	return Expr{}
}

// Int returns the constant expression n.
func Int(n int64) Expr {
	return Rat(big.NewRat(n, 1))
}

// Rat returns the constant expression r.
// r is copied and can be modified afterwards.
func Rat(r *big.Rat) Expr {
	if r.Sign() == 0 {
		return Expr{}
	}
	return Expr{terms: []term{{coef: new(big.Rat).Set(r)}}}
}

// Var returns the expression made of the single symbol s.
func Var(s Symbol) Expr {
	return Expr{terms: []term{{vars: []Symbol{s}, coef: one}}}
}

// Add returns e + o.
func (e Expr) Add(o Expr) Expr {
	if len(o.terms) == 0 {
		return e
	}
	if len(e.terms) == 0 {
		return o
	}
	ts := make([]term, 0, len(e.terms)+len(o.terms))
	ts = append(ts, e.terms...)
	return collect(append(ts, o.terms...))
}

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr {
	return e.Add(o.Neg())
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	return e.Scale(big.NewRat(-1, 1))
}

// Scale returns r*e.
func (e Expr) Scale(r *big.Rat) Expr {
	if r.Sign() == 0 || len(e.terms) == 0 {
		return Expr{}
	}
	ts := make([]term, len(e.terms))
	for i, t := range e.terms {
		ts[i] = term{vars: t.vars, coef: new(big.Rat).Mul(t.coef, r)}
	}
	return Expr{terms: ts}
}

// Mul returns e*o.
func (e Expr) Mul(o Expr) Expr {
	ts := make([]term, 0, len(e.terms)*len(o.terms))
	for _, a := range e.terms {
		for _, b := range o.terms {
			ts = append(ts, term{vars: mergeMonomials(a.vars, b.vars), coef: new(big.Rat).Mul(a.coef, b.coef)})
		}
	}
	return collect(ts)
}

// IsZero is true iff e is the null expression.
func (e Expr) IsZero() bool {
	return len(e.terms) == 0
}

// Constant returns the value of e and true if e does not depend on any symbol.
// Otherwise, it returns nil and false.
func (e Expr) Constant() (*big.Rat, bool) {
	switch {
	case len(e.terms) == 0:
		return new(big.Rat), true
	case len(e.terms) == 1 && len(e.terms[0].vars) == 0:
		return new(big.Rat).Set(e.terms[0].coef), true
	default:
		return nil, false
	}
}

// ConstantTerm returns the part of e that does not depend on any symbol.
func (e Expr) ConstantTerm() *big.Rat {
	if len(e.terms) > 0 && len(e.terms[0].vars) == 0 {
		return new(big.Rat).Set(e.terms[0].coef)
	}
	return new(big.Rat)
}

// LeadingCoefficient returns the coefficient of the first non-constant term of e,
// or nil if e is constant.
func (e Expr) LeadingCoefficient() *big.Rat {
	for _, t := range e.terms {
		if len(t.vars) > 0 {
			return new(big.Rat).Set(t.coef)
		}
	}
	return nil
}

// Has is true iff the symbol s occurs in e.
func (e Expr) Has(s Symbol) bool {
	for _, t := range e.terms {
		for _, v := range t.vars {
			if v == s {
				return true
			}
		}
	}
	return false
}

// Symbols returns the sorted list of symbols occurring in e.
func (e Expr) Symbols() []Symbol {
	return FreeSymbols(e)
}

// Compare is a total order on expressions.
// Its only purpose is to provide a deterministic order when sorting and deduplicating expressions:
// it is unrelated to the numerical values of the expressions.
func (e Expr) Compare(o Expr) int {
	for i := 0; i < len(e.terms) && i < len(o.terms); i++ {
		if c := compareMonomials(e.terms[i].vars, o.terms[i].vars); c != 0 {
			return c
		}
		if c := e.terms[i].coef.Cmp(o.terms[i].coef); c != 0 {
			return c
		}
	}
	switch {
	case len(e.terms) < len(o.terms):
		return -1
	case len(e.terms) > len(o.terms):
		return 1
	default:
		return 0
	}
}

// Equal is true iff e and o are the same polynomial.
func (e Expr) Equal(o Expr) bool {
	return e.Compare(o) == 0
}

// String returns a human-readable form of e, such as "2*x - 1/2*a*y + 3".
// Non-constant terms come first, in symbol order.
func (e Expr) String() string {
	if len(e.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	ordered := e.terms
	if len(e.terms[0].vars) == 0 {
		ordered = append(append([]term{}, e.terms[1:]...), e.terms[0])
	}
	for i, t := range ordered {
		abs := new(big.Rat).Abs(t.coef)
		switch {
		case i == 0 && t.coef.Sign() < 0:
			sb.WriteString("-")
		case i > 0 && t.coef.Sign() < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		if len(t.vars) == 0 {
			sb.WriteString(abs.RatString())
			continue
		}
		if abs.Cmp(one) != 0 {
			sb.WriteString(abs.RatString())
			sb.WriteString("*")
		}
		writeMonomial(&sb, t.vars)
	}
	return sb.String()
}

func writeMonomial(sb *strings.Builder, vars []Symbol) {
	for i := 0; i < len(vars); {
		j := i + 1
		for j < len(vars) && vars[j] == vars[i] {
			j++
		}
		if i > 0 {
			sb.WriteString("*")
		}
		sb.WriteString(vars[i].Name)
		if j-i > 1 {
			sb.WriteString("^")
			sb.WriteString(big.NewInt(int64(j - i)).String())
		}
		i = j
	}
}
