package solver

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/linfeas/linfeas/expr"
)

// ErrInconsistent is returned when a set of equalities has no solution.
var ErrInconsistent = errors.New("inconsistent equalities")

// A Reduction is the solved form of a set of linear equalities.
type Reduction struct {
	// Pinned associates each solved unknown with an affine expression of the free unknowns and parameters.
	Pinned expr.Substitution
	// Free unknowns appear in the equalities but are not determined by them.
	Free []expr.Symbol
	// Residual equalities only involve parameters. They cannot be decided without a value
	// for those parameters and are kept as is.
	Residual []expr.Expr
}

// A row is the equality sum(coefs[j]*unknowns[j]) + rest = 0.
type row struct {
	coefs []*big.Rat
	rest  expr.Expr // Constant and parameter terms
}

// SolveEqualities solves the system eqs[i] = 0 for every unknown appearing in eqs,
// through Gauss-Jordan elimination over the rationals.
// Unknowns are used as pivots in symbol order.
// It returns an error wrapping ErrInconsistent if the equalities have no solution,
// and a *expr.CoefficientError if the coefficient of an unknown is not a number.
func SolveEqualities(eqs []expr.Expr) (Reduction, error) {
	unknowns := expr.Unknowns(eqs...)
	rows := make([]row, len(eqs))
	for i, e := range eqs {
		r := row{coefs: make([]*big.Rat, len(unknowns)), rest: e}
		for j, u := range unknowns {
			c, err := e.NumericCoefficient(u)
			if err != nil {
				return Reduction{}, err
			}
			r.coefs[j] = c
			r.rest = r.rest.Sub(expr.Var(u).Scale(c))
		}
		rows[i] = r
	}
	var pivots []int // For each pivot row, the column of its pivot
	isPivot := make([]bool, len(unknowns))
	for col := range unknowns {
		nb := len(pivots)
		p := -1
		for i := nb; i < len(rows); i++ {
			if rows[i].coefs[col].Sign() != 0 {
				p = i
				break
			}
		}
		if p == -1 { // Not a pivot: the unknown is free
			continue
		}
		rows[nb], rows[p] = rows[p], rows[nb]
		rows[nb].scale(new(big.Rat).Inv(rows[nb].coefs[col]))
		for i := range rows {
			if i != nb && rows[i].coefs[col].Sign() != 0 {
				rows[i].subMul(new(big.Rat).Set(rows[i].coefs[col]), rows[nb])
			}
		}
		pivots = append(pivots, col)
		isPivot[col] = true
	}
	var red Reduction
	for _, r := range rows[len(pivots):] { // All coefs are null in those rows
		if r.rest.IsZero() {
			continue
		}
		if _, ok := r.rest.Constant(); ok {
			return Reduction{}, fmt.Errorf("%w: %v = 0", ErrInconsistent, r.rest)
		}
		red.Residual = append(red.Residual, r.rest)
	}
	for i, col := range pivots {
		val := rows[i].rest.Neg()
		for j, c := range rows[i].coefs {
			if j != col && c.Sign() != 0 {
				val = val.Sub(expr.Var(unknowns[j]).Scale(c))
			}
		}
		red.Pinned = append(red.Pinned, expr.Binding{Symbol: unknowns[col], Value: val})
	}
	for j, u := range unknowns {
		if !isPivot[j] {
			red.Free = append(red.Free, u)
		}
	}
	return red, nil
}

// scale multiplies the whole row by f.
func (r *row) scale(f *big.Rat) {
	for j, c := range r.coefs {
		r.coefs[j] = new(big.Rat).Mul(c, f)
	}
	r.rest = r.rest.Scale(f)
}

// subMul subtracts f times the pivot row from r.
func (r *row) subMul(f *big.Rat, pivot row) {
	for j, c := range pivot.coefs {
		if c.Sign() != 0 {
			r.coefs[j] = new(big.Rat).Sub(r.coefs[j], new(big.Rat).Mul(f, c))
		}
	}
	r.rest = r.rest.Sub(pivot.rest.Scale(f))
}
