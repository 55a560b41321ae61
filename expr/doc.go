/*
Package expr describes the symbolic expressions manipulated by the linfeas solver.

An expression is a polynomial with exact rational coefficients over a set of symbols.
Symbols play one of two roles: an Unknown is a quantity the solver has to find a value
for, a Parameter is left symbolic in the results. Most expressions are affine in the
unknowns, such as

    2*x - 1/2*y + a + 3

where x and y are unknowns and a is a parameter. A product of a parameter and an unknown
(a*x) is a parameterized coefficient: it can be built, printed and substituted, but the
solver refuses to eliminate x from such an expression, since the sign of its coefficient
is unknown.

Expressions are immutable values. All operations return new expressions and never modify
their operands, so they can be shared freely between systems and goroutines.

Building expressions

    x, y := expr.NewUnknown("x"), expr.NewUnknown("y")
    a := expr.NewParameter("a")
    e := expr.Var(x).Scale(big.NewRat(2, 1)).Sub(expr.Var(y)).Add(expr.Var(a))

Substituting

A Substitution is an ordered list of bindings. It is applied simultaneously:

    sub := expr.Substitution{{Symbol: y, Value: expr.Var(x).Neg()}}
    e.Substitute(sub) // 3*x + a
*/
package expr
