// SPDX-License-Identifier: MIT
// Package poly_test contains unit tests for exact sparse polynomials.
package poly_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/gfcount/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DropsZerosAndRejectsNegativeDegree(t *testing.T) {
	p, err := poly.New(map[int]*big.Rat{0: big.NewRat(1, 1), 3: new(big.Rat), 5: big.NewRat(-2, 3)})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5}, p.Degrees())
	assert.Equal(t, 5, p.Degree())

	_, err = poly.New(map[int]*big.Rat{-1: big.NewRat(1, 1)})
	require.ErrorIs(t, err, poly.ErrNegativeDegree)
}

func TestProcess_ZeroPolynomialIsEmpty(t *testing.T) {
	p := poly.Poly{0: new(big.Rat), 4: new(big.Rat)}
	q := poly.Process(p)
	assert.Empty(t, q)
	assert.True(t, q.IsZero())
	assert.Equal(t, -1, q.Degree())

	_, _, ok := poly.LeadingTerm(q)
	assert.False(t, ok)
}

func TestParse(t *testing.T) {
	p, err := poly.Parse([]string{"1", "", "-1/2", "0.25"})
	require.NoError(t, err)
	assert.Equal(t, "1 - 1/2*z^2 + 1/4*z^3", p.String())

	_, err = poly.Parse([]string{"x"})
	require.ErrorIs(t, err, poly.ErrBadCoefficient)
}

func TestMul_CancelsTerms(t *testing.T) {
	// (1 - z)(1 + z) = 1 - z^2
	got := poly.Mul(poly.FromInts(1, -1), poly.FromInts(1, 1))
	assert.True(t, got.Equal(poly.FromInts(1, 0, -1)), got.String())
	assert.NotContains(t, got, 1)
}

func TestDivMod(t *testing.T) {
	// z^3 - 1 = (z - 1)(z^2 + z + 1)
	q, r, err := poly.DivMod(poly.FromInts(-1, 0, 0, 1), poly.FromInts(-1, 1))
	require.NoError(t, err)
	assert.True(t, q.Equal(poly.FromInts(1, 1, 1)), q.String())
	assert.True(t, r.IsZero())

	// 1 - z over 1 - 2z: quotient 1/2, remainder 1/2
	q, r, err = poly.DivMod(poly.FromInts(1, -1), poly.FromInts(1, -2))
	require.NoError(t, err)
	assert.Equal(t, 0, big.NewRat(1, 2).Cmp(q.Coeff(0)))
	assert.Equal(t, 0, big.NewRat(1, 2).Cmp(r.Coeff(0)))
	assert.Equal(t, 0, r.Degree())

	_, _, err = poly.DivMod(poly.FromInts(1), poly.Poly{})
	require.ErrorIs(t, err, poly.ErrDivisionByZero)
}

func TestGCD_Monic(t *testing.T) {
	a := poly.Mul(poly.FromInts(1, -1), poly.FromInts(2, 3)) // (1-z)(2+3z)
	b := poly.Mul(poly.FromInts(1, -1), poly.FromInts(1, 1)) // (1-z)(1+z)
	g, err := poly.GCD(a, b)
	require.NoError(t, err)
	assert.True(t, g.Equal(poly.FromInts(-1, 1)), g.String())

	_, err = poly.GCD(poly.Poly{}, poly.Poly{})
	require.ErrorIs(t, err, poly.ErrDivisionByZero)
}

func TestSquareFree_MultiplicitiesSumToDegree(t *testing.T) {
	// (1 - z)^4 (1 + z) = 1 - 3z + 2z^2 + 2z^3 - 3z^4 + z^5
	p := poly.FromInts(1, -3, 2, 2, -3, 1)
	fs, err := poly.SquareFree(p)
	require.NoError(t, err)
	require.Len(t, fs, 2)

	assert.Equal(t, 1, fs[0].Multiplicity)
	assert.True(t, fs[0].Poly.Equal(poly.FromInts(1, 1)), fs[0].Poly.String())
	assert.Equal(t, 4, fs[1].Multiplicity)
	assert.True(t, fs[1].Poly.Equal(poly.FromInts(-1, 1)), fs[1].Poly.String())

	total := 0
	for _, f := range fs {
		total += f.Multiplicity * f.Poly.Degree()
	}
	assert.Equal(t, p.Degree(), total)
}

func TestSquareFree_Edges(t *testing.T) {
	fs, err := poly.SquareFree(poly.FromInts(7))
	require.NoError(t, err)
	assert.Empty(t, fs)

	_, err = poly.SquareFree(poly.Poly{})
	require.ErrorIs(t, err, poly.ErrZeroPolynomial)
}

func TestDerivativeAndFloat64s(t *testing.T) {
	p := poly.FromInts(1, -1, -1) // 1 - z - z^2
	assert.True(t, poly.Derivative(p).Equal(poly.FromInts(-1, -2)))
	assert.Equal(t, []float64{1, -1, -1}, p.Float64s())
}
