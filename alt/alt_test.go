package alt

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linfeas/linfeas/expr"
	"github.com/linfeas/linfeas/solver"
)

var (
	x = expr.Var(expr.NewUnknown("x"))
	y = expr.Var(expr.NewUnknown("y"))
	z = expr.Var(expr.NewUnknown("z"))
	a = expr.Var(expr.NewParameter("a"))
)

// holds is true iff sol satisfies one of the alternatives of f.
func holds(f Formula, sol solver.Solution) bool {
	sub := sol.Substitution()
	check := func(exprs []expr.Expr, ok func(sign int) bool) bool {
		for _, e := range exprs {
			val, isConst := e.Substitute(sub).Constant()
			if !isConst || !ok(val.Sign()) {
				return false
			}
		}
		return true
	}
	for _, sys := range f.Alternatives() {
		if check(sys.Strict(), func(s int) bool { return s > 0 }) &&
			check(sys.Nonstrict(), func(s int) bool { return s >= 0 }) &&
			check(sys.Equalities(), func(s int) bool { return s == 0 }) {
			return true
		}
	}
	return false
}

func TestAtomics(t *testing.T) {
	atomics := map[string]func(expr.Expr) Formula{
		"positive":    Positive,
		"negative":    Negative,
		"nonnegative": Nonnegative,
		"nonpositive": Nonpositive,
		"zero":        Zero,
		"nonzero":     Nonzero,
	}
	// For each atomic, whether it holds for -1, 0 and 1.
	expected := map[string][3]bool{
		"positive":    {false, false, true},
		"negative":    {true, false, false},
		"nonnegative": {false, true, true},
		"nonpositive": {true, true, false},
		"zero":        {false, true, false},
		"nonzero":     {true, false, true},
	}
	for name, atomic := range atomics {
		for i, val := range []int64{-1, 0, 1} {
			ok, err := atomic(expr.Int(val)).HasSolution()
			require.NoError(t, err)
			assert.Equal(t, expected[name][i], ok, "%s(%d)", name, val)
		}
	}
}

func TestDuality(t *testing.T) {
	for _, val := range []int64{-3, 0, 2} {
		e := expr.Int(val)
		zero, err := Zero(e).HasSolution()
		require.NoError(t, err)
		nonzero, err := Nonzero(e).HasSolution()
		require.NoError(t, err)
		assert.NotEqual(t, zero, nonzero, "for %d", val)
		pos, err := Positive(e).HasSolution()
		require.NoError(t, err)
		nonpos, err := Nonpositive(e).HasSolution()
		require.NoError(t, err)
		assert.NotEqual(t, pos, nonpos, "for %d", val)
	}
}

func TestConstants(t *testing.T) {
	assert.Equal(t, 1, True().Len())
	assert.Equal(t, 0, False().Len())
	assert.Equal(t, "true", True().String())
	assert.Equal(t, "false", False().String())
	assert.Equal(t, "false", Formula{}.String())
	assert.Equal(t, "true", And().String())
	assert.Equal(t, "false", Or().String())
	f := Positive(x)
	assert.Equal(t, f.String(), f.And(True()).String())
	assert.Equal(t, f.String(), f.Or(False()).String())
	assert.Equal(t, "false", f.And(False()).String())
}

func TestOrder(t *testing.T) {
	f := Positive(x).Or(Positive(y))
	g := Zero(z).Or(Nonnegative(z))
	assert.Equal(t, "x > 0 | y > 0 | z = 0 | z >= 0", f.Or(g).String())
	assert.Equal(t, "x > 0 & z = 0 | x > 0 & z >= 0 | y > 0 & z = 0 | y > 0 & z >= 0", f.And(g).String())
	assert.Equal(t, f.And(g).String(), And(f, g).String())
	assert.Equal(t, f.Or(g).String(), Or(f, g).String())
}

func alternativeStrings(f Formula) []string {
	var res []string
	for _, sys := range f.Alternatives() {
		res = append(res, sys.String())
	}
	sort.Strings(res)
	return res
}

func TestDistributivity(t *testing.T) {
	f := Positive(x)
	g := Nonnegative(y.Sub(x))
	h := Negative(z.Add(x))
	assert.Equal(t, f.And(g.Or(h)).String(), f.And(g).Or(f.And(h)).String())
	// With several alternatives, the same systems appear in a different order.
	f = Nonzero(x)
	assert.Equal(t, alternativeStrings(f.And(g.Or(h))), alternativeStrings(f.And(g).Or(f.And(h))))
}

func TestImmutability(t *testing.T) {
	f := Positive(x)
	g := f.Or(Positive(y))
	_ = f.And(Zero(z))
	alts := g.Alternatives()
	alts[0] = solver.Impossible()
	assert.Equal(t, "x > 0", f.String())
	assert.Equal(t, "x > 0 | y > 0", g.String())
}

func TestSolve(t *testing.T) {
	// y = -1 contradicts y >= 0, so the first alternative is infeasible.
	p := And(Positive(x.Add(y)), Zero(z.Add(x).Add(y)), Nonnegative(y), Zero(y.Add(expr.Int(1))))
	q := p.Or(Negative(y))
	ok, err := p.HasSolution()
	require.NoError(t, err)
	assert.False(t, ok)
	res, err := q.Solve(solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, solver.Sat, res.Status)
	assert.Equal(t, 1, res.Alternative)
	assert.Equal(t, "y=-1", res.Model.String())
	assert.True(t, holds(q, res.Model))

	sol, err := p.FindSolution()
	require.NoError(t, err)
	assert.Nil(t, sol)
	res, err = p.Solve(solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, solver.Unsat, res.Status)
	assert.Equal(t, -1, res.Alternative)

	res, err = False().Solve(solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, solver.Unsat, res.Status)
	res, err = True().Solve(solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, solver.Sat, res.Status)
	assert.Empty(t, res.Model)
}

func TestIdempotence(t *testing.T) {
	f := And(Positive(x.Add(y)), Positive(x.Add(z)), Zero(x.Add(y).Add(z))).Or(Negative(x))
	before := f.String()
	for i := 0; i < 2; i++ {
		sol, err := f.FindSolution()
		require.NoError(t, err)
		assert.True(t, holds(f, sol), "invalid witness %v", sol)
		ok, err := f.HasSolution()
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, before, f.String())
}

func TestFirstAlternativeWins(t *testing.T) {
	f := Positive(x.Sub(expr.Int(3))).Or(Negative(x))
	res, err := f.Solve(solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Alternative)
	assert.Equal(t, "x=4", res.Model.String())
	res, err = Negative(x).Or(f).Solve(solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Alternative)
	assert.Equal(t, "x=-1", res.Model.String())
}

// exhausting generates more than two inequalities whatever unknown is eliminated first.
var exhausting = And(
	Positive(x.Sub(y)),
	Positive(x.Sub(z)),
	Negative(x.Sub(expr.Int(1))),
	Negative(x.Sub(expr.Int(2))),
)

func TestResourceExhausted(t *testing.T) {
	opts := solver.Options{MaxInequalities: 2}
	res, err := exhausting.Or(Positive(x)).Solve(opts)
	require.NoError(t, err)
	assert.Equal(t, solver.Sat, res.Status)
	assert.Equal(t, 1, res.Alternative)

	res, err = exhausting.Or(Of(solver.Impossible())).Solve(opts)
	require.ErrorIs(t, err, solver.ErrResourceExhausted)
	assert.Equal(t, solver.Indet, res.Status)

	res, err = exhausting.Solve(solver.Options{})
	require.NoError(t, err)
	assert.Equal(t, solver.Sat, res.Status)
}

func TestNonNumericCoefficient(t *testing.T) {
	f := Positive(a.Mul(x)).Or(Positive(x))
	res, err := f.Solve(solver.Options{})
	require.ErrorIs(t, err, expr.ErrNonNumericCoefficient)
	var cerr *expr.CoefficientError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "x", cerr.Symbol.Name)
	assert.Equal(t, solver.Indet, res.Status)
	_, err = f.HasSolution()
	assert.ErrorIs(t, err, expr.ErrNonNumericCoefficient)
}

func TestParameters(t *testing.T) {
	f := Positive(x.Sub(a))
	assert.Equal(t, "param a; -a + x > 0", f.String())
	sol, err := f.FindSolution()
	require.NoError(t, err)
	assert.Equal(t, "a + 1", sol[expr.NewUnknown("x")].String())
}

func ExampleFormula_FindSolution() {
	x := expr.Var(expr.NewUnknown("x"))
	y := expr.Var(expr.NewUnknown("y"))
	f := Nonzero(x).And(Zero(x.Add(y).Sub(expr.Int(1))))
	fmt.Println(f)
	sol, err := f.FindSolution()
	if err != nil {
		fmt.Printf("could not solve: %v", err)
		return
	}
	fmt.Println(sol)
	// Output:
	// x > 0 & x + y - 1 = 0 | -x > 0 & x + y - 1 = 0
	// x=1 y=0
}
