// Package alt offers disjunctions of linear constraint systems.
//
// The solver package decides conjunctions of linear constraints. However, many problems
// are naturally expressed with disjunctions: x != 0 means x < 0 or x > 0, and a constraint
// that only holds on one branch of a case split is a disjunction too.
//
// A Formula is a list of alternatives, each of them being a solver.System. It is feasible iff
// at least one of its alternatives is. Disjunctions simply concatenate alternatives, while
// conjunctions distribute over them: the conjunction of a formula with n alternatives and a formula
// with m alternatives has n*m alternatives. No simplification is ever done.
//
// For example, the formula
//
//	(x > 0 | x < 0) & x + y = 1
//
// can be written
//
//	x, y := expr.Var(expr.NewUnknown("x")), expr.Var(expr.NewUnknown("y"))
//	f := alt.Nonzero(x).And(alt.Zero(x.Add(y).Sub(expr.Int(1))))
//
// or parsed from its textual representation with Parse. It has two alternatives,
// "x > 0 & x + y - 1 = 0" and "-x > 0 & x + y - 1 = 0". Calling f.FindSolution() solves them
// from left to right and returns the witness of the first feasible one, here x=1 and y=0.
package alt
