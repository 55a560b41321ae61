package solver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/linfeas/linfeas/expr"
)

// Options drive the resolution of a system.
type Options struct {
	// MaxInequalities is the largest number of strict, or non-strict, inequalities
	// allowed during elimination. 0 means DefaultMaxInequalities.
	MaxInequalities int
	// Logger receives debug information about eliminations and warnings about aborted resolutions.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Log returns the logger of o, or slog.Default() if none was set.
func (o Options) Log() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) maxInequalities() int {
	if o.MaxInequalities <= 0 {
		return DefaultMaxInequalities
	}
	return o.MaxInequalities
}

// A Solver solves a given system. The system itself is never modified.
type Solver struct {
	Options
	Stats  Stats // Statistics about the solving process.
	sys    System
	status Status
	err    error
	el     *elimination
}

// New makes a solver for the given system, with default options.
// Options can be changed before calling Solve.
func New(sys System) *Solver {
	return &Solver{sys: sys}
}

// Solve decides whether the system is feasible and returns the corresponding status.
// Subsequent calls return the same result without solving the system again.
//
// If the number of inequalities exceeds the ceiling, the status is Indet and the error wraps
// ErrResourceExhausted. If an unknown to be eliminated has a coefficient that is not a number,
// the status is Indet and the error wraps expr.ErrNonNumericCoefficient.
//
// Note that inequalities that only depend on parameters are not decided: a system whose only
// remaining constraints are such inequalities is declared Sat, even if no value of the
// parameters satisfies them.
func (s *Solver) Solve() (Status, error) {
	if s.status != Indet || s.err != nil {
		return s.status, s.err
	}
	strict, nonstrict, err := s.sys.reduced()
	if err != nil {
		s.err = fmt.Errorf("could not solve equalities: %w", err)
		return Indet, s.err
	}
	s.el = &elimination{
		strict:    strict,
		nonstrict: nonstrict,
		max:       s.maxInequalities(),
		stats:     &s.Stats,
		logger:    s.Log(),
	}
	s.status, s.err = s.el.run()
	if errors.Is(s.err, ErrResourceExhausted) {
		s.Log().Warn("gave up solving linear inequalities", slog.Any("error", s.err))
	}
	return s.status, s.err
}

// Model returns a solution of the system.
// Every unknown of the system is bound, unknowns that are not constrained being bound to 0.
// It panics if the system was not solved or is not feasible.
func (s *Solver) Model() Solution {
	if s.status != Sat {
		panic("cannot call Model() from a non-Sat solver")
	}
	red := s.sys.reduction
	var others []expr.Symbol
	for _, u := range s.sys.Unknowns() {
		if _, pinned := red.Pinned.Lookup(u); !pinned {
			others = append(others, u)
		}
	}
	sol := s.el.witness(others)
	sub := sol.Substitution()
	for _, b := range red.Pinned {
		sol[b.Symbol] = b.Value.Substitute(sub)
	}
	return sol
}

// OutputModel writes the status and model, if any, on w, in a DIMACS-like format:
//
//	s SATISFIABLE
//	v x=2 y=-1 z=-1
func (s *Solver) OutputModel(w io.Writer) error {
	res := Result{Status: s.status, Alternative: -1}
	if s.status == Sat {
		res.Model = s.Model()
		res.Alternative = 0
	}
	return res.Write(w)
}

// Write writes r on w, in the format used by OutputModel.
// Unknowns are only listed if there are any.
func (r Result) Write(w io.Writer) error {
	var err error
	switch r.Status {
	case Sat:
		if len(r.Model) == 0 {
			_, err = fmt.Fprintf(w, "s SATISFIABLE\n")
		} else {
			_, err = fmt.Fprintf(w, "s SATISFIABLE\nv %s\n", r.Model)
		}
	case Unsat:
		_, err = fmt.Fprintf(w, "s UNSATISFIABLE\n")
	default:
		_, err = fmt.Fprintf(w, "s UNKNOWN\n")
	}
	if err != nil {
		return fmt.Errorf("could not write model: %v", err)
	}
	return nil
}
