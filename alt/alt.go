package alt

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/linfeas/linfeas/expr"
	"github.com/linfeas/linfeas/solver"
)

// A Formula is a disjunction of linear constraint systems, called alternatives.
// The zero value is False.
// Formulas are immutable.
type Formula struct {
	alts []solver.System
}

// True returns the formula with a single, empty, alternative.
func True() Formula {
	return Formula{alts: []solver.System{{}}}
}

// False returns the formula with no alternative.
func False() Formula {
	return Formula{}
}

// Of returns the disjunction of the given systems.
func Of(systems ...solver.System) Formula {
	return Formula{alts: append([]solver.System(nil), systems...)}
}

// Positive returns the formula e > 0.
func Positive(e expr.Expr) Formula {
	return Of(solver.System{}.Positive(e))
}

// Negative returns the formula e < 0, i.e -e > 0.
func Negative(e expr.Expr) Formula {
	return Positive(e.Neg())
}

// Nonnegative returns the formula e >= 0.
func Nonnegative(e expr.Expr) Formula {
	return Of(solver.System{}.Nonnegative(e))
}

// Nonpositive returns the formula e <= 0, i.e -e >= 0.
func Nonpositive(e expr.Expr) Formula {
	return Nonnegative(e.Neg())
}

// Zero returns the formula e = 0.
func Zero(e expr.Expr) Formula {
	return Of(solver.System{}.Zero(e))
}

// Nonzero returns the formula e != 0, i.e e > 0 or e < 0.
func Nonzero(e expr.Expr) Formula {
	return Positive(e).Or(Negative(e))
}

// Or returns the disjunction of f and g: the alternatives of f, followed by the ones of g.
func (f Formula) Or(g Formula) Formula {
	alts := make([]solver.System, 0, len(f.alts)+len(g.alts))
	alts = append(alts, f.alts...)
	return Formula{alts: append(alts, g.alts...)}
}

// And returns the conjunction of f and g.
// Each alternative of f is merged with each alternative of g, in that order.
func (f Formula) And(g Formula) Formula {
	alts := make([]solver.System, 0, len(f.alts)*len(g.alts))
	for _, a := range f.alts {
		for _, b := range g.alts {
			alts = append(alts, a.Merge(b))
		}
	}
	return Formula{alts: alts}
}

// And returns the conjunction of the given formulas. The conjunction of no formula is True.
func And(fs ...Formula) Formula {
	res := True()
	for _, f := range fs {
		res = res.And(f)
	}
	return res
}

// Or returns the disjunction of the given formulas. The disjunction of no formula is False.
func Or(fs ...Formula) Formula {
	var res Formula
	for _, f := range fs {
		res = res.Or(f)
	}
	return res
}

// Alternatives returns the systems f is made of.
func (f Formula) Alternatives() []solver.System {
	return append([]solver.System(nil), f.alts...)
}

// Len returns the number of alternatives of f.
func (f Formula) Len() int {
	return len(f.alts)
}

// Parameters returns the sorted list of parameters appearing in f.
func (f Formula) Parameters() []expr.Symbol {
	seen := make(map[expr.Symbol]bool)
	var res []expr.Symbol
	for _, sys := range f.alts {
		for _, p := range sys.Parameters() {
			if !seen[p] {
				seen[p] = true
				res = append(res, p)
			}
		}
	}
	expr.SortSymbols(res)
	return res
}

// String returns f in the syntax understood by Parse, such as
//
//	param a; x - a > 0 & y >= 0 | -x > 0
//
// The formula without alternatives is "false".
func (f Formula) String() string {
	if len(f.alts) == 0 {
		return "false"
	}
	strs := make([]string, len(f.alts))
	for i, sys := range f.alts {
		strs[i] = sys.String()
	}
	res := strings.Join(strs, " | ")
	if params := f.Parameters(); len(params) != 0 {
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = p.Name
		}
		res = fmt.Sprintf("param %s; %s", strings.Join(names, ", "), res)
	}
	return res
}

// Solve solves the alternatives of f from left to right and stops at the first feasible one.
// The result holds the index of that alternative and its witness.
//
// If an alternative could not be solved because of the ceiling on the number of inequalities,
// the next ones are tried anyway. If none of them is feasible, the status is then solver.Indet and the
// error wraps solver.ErrResourceExhausted.
// If a coefficient of an unknown is not a number, solving stops immediately and
// the error wraps expr.ErrNonNumericCoefficient.
func (f Formula) Solve(opts solver.Options) (solver.Result, error) {
	return f.solve(opts, true)
}

func (f Formula) solve(opts solver.Options, withModel bool) (solver.Result, error) {
	logger := opts.Log()
	var exhausted error
	for i, sys := range f.alts {
		s := solver.New(sys)
		s.Options = opts
		status, err := s.Solve()
		if errors.Is(err, solver.ErrResourceExhausted) {
			logger.Debug("skipping alternative", slog.Int("alternative", i))
			if exhausted == nil {
				exhausted = err
			}
			continue
		}
		if err != nil {
			return solver.Result{Status: solver.Indet, Alternative: -1}, fmt.Errorf("could not solve alternative %d: %w", i, err)
		}
		if status == solver.Sat {
			res := solver.Result{Status: solver.Sat, Alternative: i}
			if withModel {
				res.Model = s.Model()
			}
			return res, nil
		}
	}
	if exhausted != nil {
		return solver.Result{Status: solver.Indet, Alternative: -1}, exhausted
	}
	return solver.Result{Status: solver.Unsat, Alternative: -1}, nil
}

// HasSolution returns true iff one of the alternatives of f is feasible.
func (f Formula) HasSolution() (bool, error) {
	res, err := f.solve(solver.Options{}, false)
	return res.Status == solver.Sat, err
}

// FindSolution returns a witness of the first feasible alternative of f, or nil if f is infeasible.
func (f Formula) FindSolution() (solver.Solution, error) {
	res, err := f.Solve(solver.Options{})
	if err != nil {
		return nil, err
	}
	return res.Model, nil
}
