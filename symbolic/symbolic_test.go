// SPDX-License-Identifier: MIT
// Package symbolic_test contains unit tests for the expression tree.
package symbolic_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/gfcount/symbolic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_Simplify(t *testing.T) {
	x := symbolic.S("x")
	cases := []struct {
		name string
		expr symbolic.Expr
		want string
	}{
		{"fold constants", symbolic.AddOf(symbolic.N(1), symbolic.F(1, 2)), "3/2"},
		{"like terms", symbolic.AddOf(x, x), "2*x"},
		{"cancel", symbolic.AddOf(x, symbolic.Neg(x)), "0"},
		{"minus constant", symbolic.AddOf(x, symbolic.N(-1)), "x - 1"},
		{"i squared", symbolic.MulOf(symbolic.I, symbolic.I), "-1"},
		{"i cubed", symbolic.PowOf(symbolic.I, symbolic.N(3)), "-i"},
		{"sorted factors", symbolic.MulOf(symbolic.S("b"), symbolic.S("a"), symbolic.N(3)), "3*a*b"},
		{"perfect square root", symbolic.SqrtOf(symbolic.F(9, 4)), "3/2"},
		{"negative radicand", symbolic.SqrtOf(symbolic.N(-4)), "2*i"},
		{"surd", symbolic.SqrtOf(symbolic.N(5)), "sqrt(5)"},
		{"surd squared", symbolic.PowOf(symbolic.SqrtOf(symbolic.N(5)), symbolic.N(2)), "5"},
		{"exact power", symbolic.PowOf(symbolic.F(-2, 3), symbolic.N(3)), "-8/27"},
		{"binomial folds", symbolic.BinomialOf(symbolic.N(6), 2), "15"},
		{"binomial of one", symbolic.BinomialOf(x, 1), "x"},
		{"indicator folds", symbolic.IndicatorOf(symbolic.N(0)), "1"},
		{"float literal", symbolic.FloatOf(1.2345678), "1.2346"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.expr.String())
		})
	}
}

func TestLaTeX(t *testing.T) {
	n := symbolic.Index()
	assert.Equal(t, `\frac{1}{2}`, symbolic.F(1, 2).LaTeX())
	assert.Equal(t, `-\frac{3}{4}`, symbolic.F(-3, 4).LaTeX())
	assert.Equal(t, `\sqrt{5}`, symbolic.SqrtOf(symbolic.N(5)).LaTeX())
	assert.Equal(t, `\binom{n + 2}{3}`, symbolic.BinomialOf(symbolic.AddOf(n, symbolic.N(2)), 3).LaTeX())
	assert.Equal(t, `\delta_{n - 2}`, symbolic.At(2).LaTeX())
}

func TestSub_FoldsExactly(t *testing.T) {
	n := symbolic.Index()
	// (1/2)^(-n-1) at n = 3 is 16
	e := symbolic.PowOf(symbolic.F(1, 2), symbolic.AddOf(symbolic.Neg(n), symbolic.N(-1)))
	assert.Equal(t, "(1/2)^(-n - 1)", e.String())

	got := e.Sub(symbolic.IndexName, symbolic.N(3))
	v, ok := symbolic.AsRat(got)
	require.True(t, ok, got.String())
	assert.Equal(t, "16", v.RatString())
}

func TestEvaluate_Binet(t *testing.T) {
	n := symbolic.Index()
	sqrt5 := symbolic.SqrtOf(symbolic.N(5))
	phi := symbolic.AddOf(symbolic.F(1, 2), symbolic.MulOf(symbolic.F(1, 2), sqrt5))
	psi := symbolic.AddOf(symbolic.F(1, 2), symbolic.MulOf(symbolic.F(-1, 2), sqrt5))
	fib := symbolic.MulOf(
		symbolic.PowOf(sqrt5, symbolic.N(-1)),
		symbolic.AddOf(symbolic.PowOf(phi, n), symbolic.Neg(symbolic.PowOf(psi, n))),
	)

	want := []float64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	for i, w := range want {
		v, err := symbolic.Evaluate(fib, i)
		require.NoError(t, err)
		assert.InDelta(t, w, real(v), 1e-9, "n=%d", i)
		assert.InDelta(t, 0, imag(v), 1e-9, "n=%d", i)
	}
}

func TestEvaluate_BinomialAndIndicator(t *testing.T) {
	n := symbolic.Index()
	e := symbolic.AddOf(
		symbolic.BinomialOf(symbolic.AddOf(n, symbolic.N(2)), 3),
		symbolic.MulOf(symbolic.N(7), symbolic.At(2)),
	)
	assert.Equal(t, "binomial(n + 2, 3) + 7*delta(n - 2)", e.String())

	for _, tc := range []struct {
		n    int
		want float64
	}{{0, 0}, {1, 1}, {2, 4 + 7}, {3, 10}} {
		v, err := symbolic.Evaluate(e, tc.n)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, real(v), 1e-12, "n=%d", tc.n)
	}
}

func TestEvaluate_FloatKeepsFullPrecision(t *testing.T) {
	e := symbolic.MulOf(symbolic.FloatOf(math.Pi), symbolic.Index())
	v, err := symbolic.Evaluate(e, 2)
	require.NoError(t, err)
	assert.Equal(t, 2*math.Pi, real(v))
}

func TestEvaluate_ComplexPower(t *testing.T) {
	// i^n cycles with period 4
	e := symbolic.PowOf(symbolic.MulOf(symbolic.N(2), symbolic.I), symbolic.Index())
	v, err := symbolic.Evaluate(e, 3)
	require.NoError(t, err)
	assert.Less(t, cmplx.Abs(v-complex(0, -8)), 1e-12)
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := symbolic.Evaluate(symbolic.AddOf(symbolic.S("x"), symbolic.Index()), 1)
	require.ErrorIs(t, err, symbolic.ErrFreeSymbol)

	_, err = symbolic.Evaluate(symbolic.PowOf(symbolic.FloatOf(10), symbolic.Index()), 400)
	require.ErrorIs(t, err, symbolic.ErrNotFinite)
}

func TestEqual(t *testing.T) {
	x := symbolic.S("x")
	assert.True(t, symbolic.Equal(symbolic.AddOf(x, symbolic.N(1)), symbolic.AddOf(symbolic.N(1), x)))
	assert.False(t, symbolic.Equal(x, symbolic.S("y")))
}

func TestAddOf_FloatsThatPrintAlikeStayApart(t *testing.T) {
	sqrt2 := symbolic.SqrtOf(symbolic.N(2))
	a := symbolic.MulOf(symbolic.FloatOf(123456.7), sqrt2)
	b := symbolic.MulOf(symbolic.FloatOf(123459.9), sqrt2)
	require.Equal(t, a.String(), b.String())
	assert.False(t, symbolic.Equal(a, b))

	sum := symbolic.AddOf(a, b)
	v, ok := sum.Eval()
	require.True(t, ok)
	assert.InDelta(t, (123456.7+123459.9)*math.Sqrt2, real(v), 1e-6)

	// substitution re-simplifies through AddOf
	n := symbolic.Index()
	form := symbolic.AddOf(
		symbolic.MulOf(symbolic.FloatOf(0.123451), n),
		symbolic.MulOf(symbolic.FloatOf(0.123449), n),
	)
	got, err := symbolic.Evaluate(form, 10)
	require.NoError(t, err)
	assert.InDelta(t, 2.469, real(got), 1e-12)
}
