package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linfeas/linfeas/expr"
	"github.com/linfeas/linfeas/solver"
)

func TestCheck(t *testing.T) {
	sys := solver.System{}.Positive(x.Add(y), x.Add(z)).Zero(x.Add(y).Add(z))
	sol, err := sys.FindSolution()
	require.NoError(t, err)
	violations, err := Check(sys, sol)
	require.NoError(t, err)
	assert.Empty(t, violations)

	bad := solver.Solution{
		expr.NewUnknown("x"): expr.Int(1),
		expr.NewUnknown("y"): expr.Int(-1),
		expr.NewUnknown("z"): expr.Int(1),
	}
	violations, err = Check(sys, bad)
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, "x + y > 0: got 0", violations[0].String())
	assert.Equal(t, "x + y + z = 0: got 1", violations[1].String())
}

func TestCheckViolations(t *testing.T) {
	sys := solver.System{}.Positive(x).Nonnegative(y.Sub(expr.Int(2))).Zero(z)
	sol := solver.Solution{
		expr.NewUnknown("x"): expr.Int(0),
		expr.NewUnknown("y"): expr.Int(1),
	}
	violations, err := Check(sys, sol)
	require.NoError(t, err)
	require.Len(t, violations, 3)
	assert.Equal(t, Greater, violations[0].Constraint.Relation)
	assert.Equal(t, "0", violations[0].Value)
	assert.Equal(t, GreaterOrEqual, violations[1].Constraint.Relation)
	assert.Equal(t, "-1", violations[1].Value)
	assert.Equal(t, Equal, violations[2].Constraint.Relation)
	assert.Equal(t, "z", violations[2].Value, "unbound unknowns are reported")

	_, err = Check(sys, nil)
	assert.Error(t, err)
}

func TestCheckModels(t *testing.T) {
	systems := []solver.System{
		solver.System{}.Positive(y.Sub(x), z.Sub(y), x.Sub(z).Add(expr.Int(1))),
		solver.System{}.Nonnegative(x.Sub(expr.Int(1)), x.Neg().Add(expr.Int(1))).Positive(y.Sub(x)),
		solver.System{}.Positive(x.Add(y), x.Add(z)),
		solver.System{}.Zero(x.Sub(y), y.Sub(expr.Int(3))).Positive(z.Sub(x)),
	}
	for _, sys := range systems {
		sol, err := sys.FindSolution()
		require.NoError(t, err)
		require.NotNil(t, sol, "%v should be feasible", sys)
		violations, err := Check(sys, sol)
		require.NoError(t, err)
		assert.Empty(t, violations, "invalid witness %v for %v", sol, sys)
	}
}
