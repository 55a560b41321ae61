package solver

import (
	"math/big"
	"strings"

	"github.com/linfeas/linfeas/expr"
)

// A Solution associates unknowns with their value.
// Values are numbers, unless the system involved parameters, in which case they may depend on them.
type Solution map[expr.Symbol]expr.Expr

// Value returns the numerical value of s, if s is bound to a constant.
func (sol Solution) Value(s expr.Symbol) (*big.Rat, bool) {
	e, ok := sol[s]
	if !ok {
		return nil, false
	}
	return e.Constant()
}

// Symbols returns the bound unknowns, sorted.
func (sol Solution) Symbols() []expr.Symbol {
	res := make([]expr.Symbol, 0, len(sol))
	for s := range sol {
		res = append(res, s)
	}
	expr.SortSymbols(res)
	return res
}

// Substitution returns the bindings of sol, in symbol order.
func (sol Solution) Substitution() expr.Substitution {
	syms := sol.Symbols()
	res := make(expr.Substitution, len(syms))
	for i, s := range syms {
		res[i] = expr.Binding{Symbol: s, Value: sol[s]}
	}
	return res
}

// String returns the bindings of sol, such as "x=2 y=-1/2".
func (sol Solution) String() string {
	syms := sol.Symbols()
	strs := make([]string, len(syms))
	for i, s := range syms {
		strs[i] = s.Name + "=" + sol[s].String()
	}
	return strings.Join(strs, " ")
}
