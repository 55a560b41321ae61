package solver

import (
	"math/big"

	"github.com/linfeas/linfeas/expr"
)

// An extended value is either a finite expression, -inf or +inf.
type extended struct {
	inf int // -1 for -inf, 1 for +inf, 0 for a finite value
	val expr.Expr
}

var (
	minusInf = extended{inf: -1}
	plusInf  = extended{inf: 1}
	half     = big.NewRat(1, 2)
)

func finite(e expr.Expr) extended {
	return extended{val: e}
}

// compareValues compares two expressions numerically when their difference is constant.
// When it is not, because parameters are involved, the comparison cannot be decided and
// the structural order of the expressions is used instead.
func compareValues(a, b expr.Expr) int {
	if diff, ok := a.Sub(b).Constant(); ok {
		return diff.Sign()
	}
	return a.Compare(b)
}

func compareExtended(a, b extended) int {
	switch {
	case a.inf != 0 || b.inf != 0:
		switch {
		case a.inf < b.inf:
			return -1
		case a.inf > b.inf:
			return 1
		default:
			return 0
		}
	default:
		return compareValues(a.val, b.val)
	}
}

// minimum returns the smallest of exprs, or +inf if there is none.
func minimum(exprs []expr.Expr) extended {
	res := plusInf
	for _, e := range exprs {
		if v := finite(e); compareExtended(v, res) < 0 {
			res = v
		}
	}
	return res
}

// maximum returns the greatest of exprs, or -inf if there is none.
func maximum(exprs []expr.Expr) extended {
	res := minusInf
	for _, e := range exprs {
		if v := finite(e); compareExtended(v, res) > 0 {
			res = v
		}
	}
	return res
}

// pick returns a value for an unknown such that
// strict.lower < x < strict.upper and nonstrict.lower <= x <= nonstrict.upper.
// All bounds are supposed to be consistent, which is the case once elimination succeeded.
func pick(strict, nonstrict bounds) expr.Expr {
	strictUpper, upper := minimum(strict.upper), minimum(nonstrict.upper)
	strictLower, lower := maximum(strict.lower), maximum(nonstrict.lower)
	if lower.inf == 0 && upper.inf == 0 && compareValues(lower.val, upper.val) == 0 {
		return upper.val // Only one possible value
	}
	if compareExtended(lower, strictLower) > 0 {
		strictLower = lower
	}
	if compareExtended(upper, strictUpper) < 0 {
		strictUpper = upper
	}
	switch {
	case strictLower.inf < 0 && strictUpper.inf > 0:
		return expr.Zero()
	case strictLower.inf < 0:
		return strictUpper.val.Sub(expr.Int(1))
	case strictUpper.inf > 0:
		return strictLower.val.Add(expr.Int(1))
	default:
		return strictLower.val.Add(strictUpper.val).Scale(half)
	}
}

// witness replays the elimination steps backwards and assigns a value to each eliminated unknown.
// Unknowns from others that were not eliminated are not constrained by the inequalities
// and are bound to 0 first.
func (el *elimination) witness(others []expr.Symbol) Solution {
	sol := make(Solution)
	eliminated := make(map[expr.Symbol]bool, len(el.steps))
	for _, st := range el.steps {
		eliminated[st.x] = true
	}
	for _, u := range others {
		if !eliminated[u] {
			sol[u] = expr.Zero()
		}
	}
	for i := len(el.steps) - 1; i >= 0; i-- {
		st := el.steps[i]
		sub := sol.Substitution()
		sol[st.x] = pick(st.strict.substitute(sub), st.nonstrict.substitute(sub))
	}
	return sol
}
