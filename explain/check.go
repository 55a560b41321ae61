// Package explain provides facilities to check witnesses and understand infeasible systems.
package explain

import (
	"errors"
	"fmt"

	"github.com/linfeas/linfeas/solver"
)

// A Violation is a constraint that is not satisfied by a solution.
// Value is the expression of the constraint once the solution was substituted in it.
// If it is not constant, the solution did not bind all the unknowns of the constraint,
// or the constraint depends on parameters.
type Violation struct {
	Constraint Constraint
	Value      string
}

func (v Violation) String() string {
	return fmt.Sprintf("%v: got %s", v.Constraint, v.Value)
}

// Check substitutes the given solution in every constraint of sys and
// returns the constraints that do not hold.
// An empty list means the solution is valid.
func Check(sys solver.System, sol solver.Solution) ([]Violation, error) {
	if sol == nil {
		return nil, errors.New("no solution to check")
	}
	sub := sol.Substitution()
	var res []Violation
	for _, c := range NewProblem(sys, Options{}).Constraints {
		val := c.Expr.Substitute(sub)
		if v, ok := val.Constant(); ok && c.Relation.holds(v.Sign()) {
			continue
		}
		res = append(res, Violation{Constraint: c, Value: val.String()})
	}
	return res, nil
}
