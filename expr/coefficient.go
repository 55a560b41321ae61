package expr

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrNonNumericCoefficient is the error wrapped when the coefficient of a symbol
// had to be a number but was not.
var ErrNonNumericCoefficient = errors.New("non-numeric coefficient")

// A CoefficientError is returned when a symbol cannot be eliminated from an expression,
// because its coefficient is not a rational number.
// This is a precondition violation: the caller built an ill-formed system.
type CoefficientError struct {
	Symbol      Symbol // The symbol that was being eliminated
	Coefficient Expr   // Its coefficient
}

func (e *CoefficientError) Error() string {
	return fmt.Sprintf("coefficient of %s is not a number: %s", e.Symbol, e.Coefficient)
}

func (e *CoefficientError) Unwrap() error {
	return ErrNonNumericCoefficient
}

// A Coefficient is either a Rational or a Symbolic value.
type Coefficient interface {
	fmt.Stringer
	isCoefficient()
}

// Rational is a coefficient that is a plain rational number.
type Rational struct {
	Value *big.Rat
}

// Symbolic is a coefficient that depends on other symbols.
type Symbolic struct {
	Value Expr
}

func (Rational) isCoefficient() {}
func (Symbolic) isCoefficient() {}

func (r Rational) String() string { return r.Value.RatString() }
func (s Symbolic) String() string { return s.Value.String() }

// Coefficient returns the coefficient of s in e, i.e the expression c such that
// e = c*s + r, where s does not occur in r.
// If s occurs in e with a degree greater than one, the returned coefficient still contains s
// and is thus Symbolic.
func (e Expr) Coefficient(s Symbol) Coefficient {
	var ts []term
	for _, t := range e.terms {
		idx := -1
		for i, v := range t.vars {
			if v == s {
				idx = i
				break
			}
		}
		if idx == -1 {
			continue
		}
		vars := make([]Symbol, 0, len(t.vars)-1)
		vars = append(vars, t.vars[:idx]...)
		vars = append(vars, t.vars[idx+1:]...)
		ts = append(ts, term{vars: vars, coef: t.coef})
	}
	c := collect(ts)
	if val, ok := c.Constant(); ok {
		return Rational{Value: val}
	}
	return Symbolic{Value: c}
}

// NumericCoefficient returns the coefficient of s in e.
// It returns a *CoefficientError if that coefficient is not a rational number.
func (e Expr) NumericCoefficient(s Symbol) (*big.Rat, error) {
	switch c := e.Coefficient(s).(type) {
	case Rational:
		return c.Value, nil
	case Symbolic:
		return nil, &CoefficientError{Symbol: s, Coefficient: c.Value}
	default:
		panic("invalid coefficient type")
	}
}
