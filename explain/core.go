package explain

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/linfeas/linfeas/alt"
	"github.com/linfeas/linfeas/solver"
)

// ErrFeasible is returned when trying to explain why a feasible problem is infeasible.
var ErrFeasible = errors.New("problem is feasible")

func (pb *Problem) checkInfeasible() error {
	ok, err := pb.feasible(pb.Constraints)
	if err != nil {
		return fmt.Errorf("could not extract core: %w", err)
	}
	if ok {
		return fmt.Errorf("could not extract core: %w", ErrFeasible)
	}
	return nil
}

// CoreDeletion returns a minimal infeasible subset of the problem using the deletion method.
// A minimal infeasible subset, or core, is an infeasible subset of the constraints such that,
// if any of its constraints is removed, the problem becomes feasible.
// The deletion algorithm solves exactly n+1 systems, where n is the number of constraints in the problem:
// each constraint is removed in turn, and is put back if the problem became feasible.
func (pb *Problem) CoreDeletion() (*Problem, error) {
	if err := pb.checkInfeasible(); err != nil {
		return nil, err
	}
	logger := pb.Options.logger()
	core := append([]Constraint(nil), pb.Constraints...)
	for i := 0; i < len(core); {
		candidate := append(append([]Constraint(nil), core[:i]...), core[i+1:]...)
		ok, err := pb.feasible(candidate)
		if err != nil {
			return nil, err
		}
		if ok { // Constraint is needed
			logger.Debug("constraint kept", slog.String("constraint", core[i].String()))
			i++
		} else {
			logger.Debug("constraint removed", slog.String("constraint", core[i].String()))
			core = candidate
		}
	}
	return &Problem{Constraints: core, Options: pb.Options}, nil
}

// CoreInsertion returns a minimal infeasible subset of the problem using the insertion method.
// Constraints are added one at a time until the problem becomes infeasible: the last one is then
// part of the core, and the ones after it can be ignored.
// If called on a problem that is already minimal, it will solve about n*n/2 systems, where
// n is the number of constraints of the problem.
// Constraints of the core appear in the same order as in pb.
func (pb *Problem) CoreInsertion() (*Problem, error) {
	if err := pb.checkInfeasible(); err != nil {
		return nil, err
	}
	logger := pb.Options.logger()
	inCore := make([]bool, len(pb.Constraints))
	var core []Constraint
	remaining := len(pb.Constraints) // Constraints after that index cannot be part of the core
	for {
		ok, err := pb.feasible(core)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		idx := 0
		current := append([]Constraint(nil), core...)
		for ok {
			current = append(current, pb.Constraints[idx])
			idx++
			if ok, err = pb.feasible(current); err != nil {
				return nil, err
			}
		}
		idx-- // The last added constraint made the problem infeasible
		core = append(core, pb.Constraints[idx])
		inCore[idx] = true
		logger.Debug("constraint added to core",
			slog.String("constraint", pb.Constraints[idx].String()),
			slog.Int("ignored", remaining-idx))
		remaining = idx
	}
	res := &Problem{Options: pb.Options}
	for i, c := range pb.Constraints {
		if inCore[i] {
			res.Constraints = append(res.Constraints, c)
		}
	}
	return res, nil
}

// Core returns a minimal infeasible subset of the problem.
// The exact algorithm used to compute it is not guaranteed. If you want to use a given algorithm,
// use the relevant methods.
func (pb *Problem) Core() (*Problem, error) {
	return pb.CoreDeletion()
}

// Core returns a minimal infeasible subset of the constraints of sys, as a system.
// It returns an error wrapping ErrFeasible if sys is feasible, or the error returned by the solver
// if one of the subsystems could not be solved.
func Core(sys solver.System, opts Options) (solver.System, error) {
	core, err := NewProblem(sys, opts).Core()
	if err != nil {
		return solver.System{}, err
	}
	return core.System(), nil
}

// Cores returns a minimal infeasible subset for each alternative of f.
// It fails if any alternative is feasible.
func Cores(f alt.Formula, opts Options) ([]solver.System, error) {
	alts := f.Alternatives()
	res := make([]solver.System, len(alts))
	for i, sys := range alts {
		core, err := Core(sys, opts)
		if err != nil {
			return nil, fmt.Errorf("alternative %d: %w", i, err)
		}
		res[i] = core
	}
	return res, nil
}
