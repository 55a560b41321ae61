package explain

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/linfeas/linfeas/expr"
	"github.com/linfeas/linfeas/solver"
)

// A Relation is the way an expression is compared to 0 in a constraint.
type Relation byte

const (
	// Greater means e > 0.
	Greater = Relation(iota)
	// GreaterOrEqual means e >= 0.
	GreaterOrEqual
	// Equal means e = 0.
	Equal
)

func (r Relation) String() string {
	switch r {
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	case Equal:
		return "="
	default:
		panic("invalid relation")
	}
}

// holds is true iff a value whose sign is given satisfies the relation.
func (r Relation) holds(sign int) bool {
	switch r {
	case Greater:
		return sign > 0
	case GreaterOrEqual:
		return sign >= 0
	default:
		return sign == 0
	}
}

// A Constraint is a single comparison between an expression and 0.
type Constraint struct {
	Expr     expr.Expr
	Relation Relation
}

func (c Constraint) String() string {
	return fmt.Sprintf("%v %v 0", c.Expr, c.Relation)
}

// Options is a set of options used when solving subproblems.
type Options struct {
	// MaxInequalities is passed to the solver. 0 means solver.DefaultMaxInequalities.
	MaxInequalities int
	// Logger receives information about the extraction process. If nil, slog.Default() is used.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o Options) solverOptions() solver.Options {
	return solver.Options{MaxInequalities: o.MaxInequalities, Logger: o.Logger}
}

// A Problem is a conjunction of constraints.
// Unlike solver.System, a Problem gives access to each of its constraints individually,
// so that subsets of them can be solved.
type Problem struct {
	Constraints []Constraint
	Options     Options
}

// NewProblem returns the problem made of the constraints of sys:
// strict inequalities first, then non-strict inequalities, then equalities.
func NewProblem(sys solver.System, opts Options) *Problem {
	pb := &Problem{Options: opts}
	for _, e := range sys.Strict() {
		pb.Constraints = append(pb.Constraints, Constraint{Expr: e, Relation: Greater})
	}
	for _, e := range sys.Nonstrict() {
		pb.Constraints = append(pb.Constraints, Constraint{Expr: e, Relation: GreaterOrEqual})
	}
	for _, e := range sys.Equalities() {
		pb.Constraints = append(pb.Constraints, Constraint{Expr: e, Relation: Equal})
	}
	return pb
}

// system returns the system made of the given constraints.
func system(cs []Constraint) solver.System {
	var strict, nonstrict, equalities []expr.Expr
	for _, c := range cs {
		switch c.Relation {
		case Greater:
			strict = append(strict, c.Expr)
		case GreaterOrEqual:
			nonstrict = append(nonstrict, c.Expr)
		default:
			equalities = append(equalities, c.Expr)
		}
	}
	return solver.System{}.Positive(strict...).Nonnegative(nonstrict...).Zero(equalities...)
}

// System returns the constraints of pb as a solver.System.
func (pb *Problem) System() solver.System {
	return system(pb.Constraints)
}

// feasible solves the conjunction of the given constraints.
// It returns an error if the solver could not decide.
func (pb *Problem) feasible(cs []Constraint) (bool, error) {
	s := solver.New(system(cs))
	s.Options = pb.Options.solverOptions()
	status, err := s.Solve()
	if err != nil {
		return false, fmt.Errorf("could not solve subproblem: %w", err)
	}
	return status == solver.Sat, nil
}

// String returns a representation of the problem, one constraint per line.
func (pb *Problem) String() string {
	lines := make([]string, len(pb.Constraints))
	for i, c := range pb.Constraints {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}
