/*
Package solver decides the feasibility of systems of linear constraints over the rationals,
and finds a solution when there is one.

A System is a conjunction of strict inequalities (e > 0), non-strict inequalities (e >= 0)
and equalities (e = 0), where each e is an expr.Expr. Expressions are affine in the unknowns;
they may also depend on parameters, which are never assigned a value.

Describing a system

A system is built by successive calls, each returning a new System:

    x, y, z := expr.NewUnknown("x"), expr.NewUnknown("y"), expr.NewUnknown("z")
    sys := solver.System{}.
        Positive(expr.Var(x).Add(expr.Var(y)), expr.Var(x).Add(expr.Var(z))).
        Zero(expr.Var(x).Add(expr.Var(y)).Add(expr.Var(z)))

Equalities are solved as soon as they are added, through Gaussian elimination.
If they are inconsistent, the system collapses to the canonical infeasible system, -1 > 0.

Solving a system

To solve a system, one simply creates a solver with said system.
The Solve() method then solves the problem and returns the corresponding status: Sat or Unsat.

    s := solver.New(sys)
    status, err := s.Solve()

The solved equalities are first substituted in the inequalities, then the Fourier-Motzkin
algorithm eliminates unknowns one at a time, always choosing the unknown that appears in the
fewest inequalities. The number of inequalities can grow exponentially with the number of
unknowns; if it exceeds Options.MaxInequalities, Solve gives up and returns an error wrapping
ErrResourceExhausted, with the Indet status.

If the status was Sat, the programmer can ask for a model, i.e an assignment that makes all the
constraints of the system true:

    m := s.Model()

For the above system, the status will be Sat and the model can be {x=2, y=-1, z=-1}.
Any point of the solution set may be returned; only its membership is guaranteed.

Parameters

Inequalities that only depend on parameters once all unknowns are eliminated cannot be decided.
They are considered to hold: a system may thus be declared feasible although no value of the
parameters makes it feasible. Unknowns must have numeric coefficients: eliminating an unknown
whose coefficient depends on a parameter is an error wrapping expr.ErrNonNumericCoefficient.
*/
package solver
