package solver

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sort"

	"github.com/linfeas/linfeas/expr"
)

// ErrResourceExhausted is returned when the number of inequalities generated during
// elimination exceeds the allowed ceiling.
// It is not a definitive answer: the caller may try another method.
var ErrResourceExhausted = errors.New("too many inequalities")

// bounds are the constraints on an unknown x at the time it was eliminated.
// Each lower bound l means x > l (or x >= l), each upper bound u means x < u (or x <= u).
type bounds struct {
	lower []expr.Expr
	upper []expr.Expr
}

func (b bounds) substitute(sub expr.Substitution) bounds {
	res := bounds{lower: make([]expr.Expr, len(b.lower)), upper: make([]expr.Expr, len(b.upper))}
	for i, e := range b.lower {
		res.lower[i] = e.Substitute(sub)
	}
	for i, e := range b.upper {
		res.upper[i] = e.Substitute(sub)
	}
	return res
}

// A step records the elimination of an unknown.
type step struct {
	x         expr.Symbol
	strict    bounds
	nonstrict bounds
}

// elimination runs the Fourier-Motzkin algorithm on a set of inequalities.
// It owns its slices and consumes them.
type elimination struct {
	strict    []expr.Expr // Each must be > 0
	nonstrict []expr.Expr // Each must be >= 0
	steps     []step      // Eliminated unknowns, in elimination order
	max       int
	stats     *Stats
	logger    *slog.Logger
}

// run eliminates unknowns until the system is either empty or trivially infeasible.
// Inequalities that only depend on parameters cannot be decided; they are ignored and
// the system is declared feasible.
func (el *elimination) run() (Status, error) {
	el.strict, el.nonstrict = canonical(el.strict), canonical(el.nonstrict)
	for {
		var ok bool
		if el.strict, ok = pruneConstants(el.strict, true); !ok {
			return Unsat, nil
		}
		if el.nonstrict, ok = pruneConstants(el.nonstrict, false); !ok {
			return Unsat, nil
		}
		if len(el.strict) == 0 && len(el.nonstrict) == 0 {
			return Sat, nil
		}
		x, ok := el.pickUnknown()
		if !ok {
			el.logger.Debug("undecided parametric inequalities considered feasible",
				slog.Int("strict", len(el.strict)),
				slog.Int("nonstrict", len(el.nonstrict)))
			return Sat, nil
		}
		if err := el.eliminate(x); err != nil {
			return Indet, err
		}
	}
}

// pruneConstants removes the constant inequalities that hold.
// It returns false if one of them does not hold.
func pruneConstants(ineqs []expr.Expr, strict bool) ([]expr.Expr, bool) {
	res := ineqs[:0]
	for _, e := range ineqs {
		val, ok := e.Constant()
		if !ok {
			res = append(res, e)
			continue
		}
		if sign := val.Sign(); sign < 0 || (strict && sign == 0) {
			return nil, false
		}
	}
	return res, true
}

// pickUnknown returns the unknown that appears in the fewest inequalities.
// Ties are broken by symbol order.
// It returns false if no unknown appears in the inequalities.
func (el *elimination) pickUnknown() (expr.Symbol, bool) {
	counts := make(map[expr.Symbol]int)
	for _, set := range [][]expr.Expr{el.strict, el.nonstrict} {
		for _, e := range set {
			for _, u := range expr.Unknowns(e) {
				counts[u]++
			}
		}
	}
	if len(counts) == 0 {
		return expr.Symbol{}, false
	}
	unknowns := make([]expr.Symbol, 0, len(counts))
	for u := range counts {
		unknowns = append(unknowns, u)
	}
	expr.SortSymbols(unknowns)
	best := unknowns[0]
	for _, u := range unknowns[1:] {
		if counts[u] < counts[best] {
			best = u
		}
	}
	return best, true
}

// eliminate removes x from the system. Each pair made of a lower bound and an upper bound
// on x yields a new inequality, which is strict unless both bounds are non-strict.
func (el *elimination) eliminate(x expr.Symbol) error {
	strict, strictBounds, err := split(el.strict, x)
	if err != nil {
		return err
	}
	nonstrict, nonstrictBounds, err := split(el.nonstrict, x)
	if err != nil {
		return err
	}
	el.steps = append(el.steps, step{x: x, strict: strictBounds, nonstrict: nonstrictBounds})
	nbKept := len(strict) + len(nonstrict)
	strict = appendDifferences(strict, strictBounds.upper, strictBounds.lower)
	strict = appendDifferences(strict, strictBounds.upper, nonstrictBounds.lower)
	strict = appendDifferences(strict, nonstrictBounds.upper, strictBounds.lower)
	nonstrict = appendDifferences(nonstrict, nonstrictBounds.upper, nonstrictBounds.lower)
	el.stats.NbEliminated++
	el.stats.NbGenerated += len(strict) + len(nonstrict) - nbKept
	el.strict, el.nonstrict = canonical(strict), canonical(nonstrict)
	if len(el.strict) > el.stats.MaxStrict {
		el.stats.MaxStrict = len(el.strict)
	}
	if len(el.nonstrict) > el.stats.MaxNonstrict {
		el.stats.MaxNonstrict = len(el.nonstrict)
	}
	el.logger.Debug("eliminated unknown",
		slog.String("unknown", x.Name),
		slog.Int("strict", len(el.strict)),
		slog.Int("nonstrict", len(el.nonstrict)))
	if len(el.strict) > el.max || len(el.nonstrict) > el.max {
		return fmt.Errorf("%w: %d strict and %d non-strict inequalities after eliminating %s",
			ErrResourceExhausted, len(el.strict), len(el.nonstrict), x)
	}
	return nil
}

// split separates the inequalities that do not depend on x from the bounds they put on x.
func split(ineqs []expr.Expr, x expr.Symbol) (kept []expr.Expr, b bounds, err error) {
	for _, e := range ineqs {
		c, err := e.NumericCoefficient(x)
		if err != nil {
			return nil, bounds{}, err
		}
		switch c.Sign() {
		case 0:
			kept = append(kept, e)
		case 1: // c*x + r > 0 means x > -r/c
			b.lower = append(b.lower, bound(e, x, c))
		default: // c*x + r > 0 means x < -r/c
			b.upper = append(b.upper, bound(e, x, c))
		}
	}
	b.lower, b.upper = unique(b.lower), unique(b.upper)
	return kept, b, nil
}

// bound returns x - e/c, i.e the value x is compared to in e = c*x + r.
func bound(e expr.Expr, x expr.Symbol, c *big.Rat) expr.Expr {
	return expr.Var(x).Sub(e.Scale(new(big.Rat).Inv(c)))
}

func appendDifferences(dst []expr.Expr, upper, lower []expr.Expr) []expr.Expr {
	for _, u := range upper {
		for _, l := range lower {
			dst = append(dst, u.Sub(l))
		}
	}
	return dst
}

// unique sorts exprs and removes duplicates.
func unique(exprs []expr.Expr) []expr.Expr {
	sort.Slice(exprs, func(i, j int) bool { return exprs[i].Compare(exprs[j]) < 0 })
	res := exprs[:0]
	for i, e := range exprs {
		if i == 0 || !e.Equal(res[len(res)-1]) {
			res = append(res, e)
		}
	}
	return res
}

// canonical scales each inequality by a positive factor so that its leading coefficient
// is 1 or -1, then removes duplicates.
// Inequalities that only differ by a positive factor are thus only kept once.
func canonical(ineqs []expr.Expr) []expr.Expr {
	for i, e := range ineqs {
		if c := e.LeadingCoefficient(); c != nil {
			ineqs[i] = e.Scale(c.Abs(c).Inv(c))
		}
	}
	return unique(ineqs)
}
