package solver

import (
	"errors"
	"strings"

	"github.com/linfeas/linfeas/expr"
)

// A System is a conjunction of linear constraints:
// strict inequalities e > 0, non-strict inequalities e >= 0 and equalities e = 0.
// The zero value is the empty system, which is trivially feasible.
//
// Systems are immutable: every method returns a new System and leaves its receiver unchanged.
// Solving a system never modifies it either, so a System can be solved several times,
// possibly from several goroutines.
type System struct {
	strict     []expr.Expr
	nonstrict  []expr.Expr
	equalities []expr.Expr
	reduction  Reduction // Solved form of equalities
	err        error     // Error met while solving equalities, reported when solving the system
}

// Impossible returns the canonical infeasible system, -1 > 0.
func Impossible() System {
	return System{}.Positive(expr.Int(-1))
}

// Positive returns s with the additional constraints e > 0 for each e in es.
func (s System) Positive(es ...expr.Expr) System {
	s.strict = append(s.strict[:len(s.strict):len(s.strict)], es...)
	return s
}

// Nonnegative returns s with the additional constraints e >= 0 for each e in es.
func (s System) Nonnegative(es ...expr.Expr) System {
	s.nonstrict = append(s.nonstrict[:len(s.nonstrict):len(s.nonstrict)], es...)
	return s
}

// Zero returns s with the additional constraints e = 0 for each e in es.
// All the equalities of the system are solved again; if they are inconsistent,
// the canonical infeasible system is returned instead.
// If an equality cannot be solved because the coefficient of an unknown is not a number,
// the error will be reported when the system is solved.
func (s System) Zero(es ...expr.Expr) System {
	if len(es) == 0 {
		return s
	}
	s.equalities = append(s.equalities[:len(s.equalities):len(s.equalities)], es...)
	red, err := SolveEqualities(s.equalities)
	switch {
	case errors.Is(err, ErrInconsistent):
		return Impossible()
	case err != nil:
		s.err = err
	default:
		s.reduction = red
	}
	return s
}

// Merge returns the conjunction of s and o.
func (s System) Merge(o System) System {
	res := s.Positive(o.strict...).Nonnegative(o.nonstrict...).Zero(o.equalities...)
	if res.err == nil {
		res.err = o.err
	}
	return res
}

// Strict returns the expressions that must be strictly positive.
func (s System) Strict() []expr.Expr {
	return append([]expr.Expr(nil), s.strict...)
}

// Nonstrict returns the expressions that must be nonnegative.
func (s System) Nonstrict() []expr.Expr {
	return append([]expr.Expr(nil), s.nonstrict...)
}

// Equalities returns the expressions that must be null.
func (s System) Equalities() []expr.Expr {
	return append([]expr.Expr(nil), s.equalities...)
}

// Reduction returns the solved form of the equalities of s.
func (s System) Reduction() Reduction {
	return s.reduction
}

// Empty is true iff s has no constraint at all.
func (s System) Empty() bool {
	return len(s.strict) == 0 && len(s.nonstrict) == 0 && len(s.equalities) == 0
}

// Unknowns returns the sorted list of unknowns appearing in the constraints of s.
func (s System) Unknowns() []expr.Symbol {
	all := make([]expr.Expr, 0, len(s.strict)+len(s.nonstrict)+len(s.equalities))
	all = append(all, s.strict...)
	all = append(all, s.nonstrict...)
	return expr.Unknowns(append(all, s.equalities...)...)
}

// Parameters returns the sorted list of parameters appearing in the constraints of s.
func (s System) Parameters() []expr.Symbol {
	all := make([]expr.Expr, 0, len(s.strict)+len(s.nonstrict)+len(s.equalities))
	all = append(all, s.strict...)
	all = append(all, s.nonstrict...)
	var res []expr.Symbol
	for _, sym := range expr.FreeSymbols(append(all, s.equalities...)...) {
		if !sym.IsUnknown() {
			res = append(res, sym)
		}
	}
	return res
}

// String returns the constraints of s, separated by " & ", such as "x + y > 0 & y >= 0 & x = 1".
// The empty system is "true".
func (s System) String() string {
	if s.Empty() {
		return "true"
	}
	strs := make([]string, 0, len(s.strict)+len(s.nonstrict)+len(s.equalities))
	for _, e := range s.strict {
		strs = append(strs, e.String()+" > 0")
	}
	for _, e := range s.nonstrict {
		strs = append(strs, e.String()+" >= 0")
	}
	for _, e := range s.equalities {
		strs = append(strs, e.String()+" = 0")
	}
	return strings.Join(strs, " & ")
}

// reduced returns the inequalities of s once the solved equalities have been substituted in them.
// Residual parametric equalities r = 0 are turned into r >= 0 and -r >= 0.
func (s System) reduced() (strict, nonstrict []expr.Expr, err error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	sub := s.reduction.Pinned
	strict = make([]expr.Expr, len(s.strict))
	for i, e := range s.strict {
		strict[i] = e.Substitute(sub)
	}
	nonstrict = make([]expr.Expr, len(s.nonstrict), len(s.nonstrict)+2*len(s.reduction.Residual))
	for i, e := range s.nonstrict {
		nonstrict[i] = e.Substitute(sub)
	}
	for _, r := range s.reduction.Residual {
		nonstrict = append(nonstrict, r, r.Neg())
	}
	return strict, nonstrict, nil
}

// HasSolution returns true iff s is feasible.
// The returned error, if any, wraps either ErrResourceExhausted or expr.ErrNonNumericCoefficient.
func (s System) HasSolution() (bool, error) {
	status, err := New(s).Solve()
	return status == Sat, err
}

// FindSolution returns a solution of s, or nil if s is infeasible.
func (s System) FindSolution() (Solution, error) {
	sv := New(s)
	status, err := sv.Solve()
	if err != nil || status != Sat {
		return nil, err
	}
	return sv.Model(), nil
}
