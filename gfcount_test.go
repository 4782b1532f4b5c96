// SPDX-License-Identifier: MIT
// Package gfcount_test contains end-to-end tests of the Enumerator over a
// static table of generating functions.
package gfcount_test

import (
	"math"
	"math/big"
	"testing"

	"github.com/katalvlaran/gfcount"
	"github.com/katalvlaran/gfcount/closedform"
	"github.com/katalvlaran/gfcount/poly"
	"github.com/katalvlaran/gfcount/roots"
	"github.com/katalvlaran/gfcount/series"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	separated    = "(00*1)*"
	complex12    = "(000)*(111)*(22)*(33)*(44)*"
	change       = "1*(22)*(333)*(4444)*(55555)*"
	fiveParts    = "11*11*11*11*11*"
	compositions = "(11*)*"
	lettersOrE   = "a*b*c*(dd)*|e"
	unexpandable = "broken"
)

func power(p poly.Poly, k int) poly.Poly {
	out := poly.FromInts(1)
	for i := 0; i < k; i++ {
		out = poly.Mul(out, p)
	}

	return out
}

func table() gfcount.StaticRationalizer {
	one := poly.FromInts(1)
	coins := one
	for d := 1; d <= 5; d++ {
		c := make([]int64, d+1)
		c[0], c[d] = 1, -1
		coins = poly.Mul(coins, poly.FromInts(c...))
	}

	return gfcount.StaticRationalizer{
		separated: {Rational: series.NewRational(poly.FromInts(1, -1), poly.FromInts(1, -1, -1))},
		complex12: {Rational: series.NewRational(one, poly.Mul(power(poly.FromInts(1, 0, 0, -1), 2), power(poly.FromInts(1, 0, -1), 3)))},
		change:    {Rational: series.NewRational(one, coins)},
		fiveParts: {Rational: series.NewRational(poly.FromInts(0, 0, 0, 0, 0, 1), power(poly.FromInts(1, -1), 5))},
		compositions: {
			Rational: series.NewRational(poly.FromInts(1, -1), poly.FromInts(1, -2)),
		},
		lettersOrE: {
			Rational: series.NewRational(one, poly.FromInts(1, -3, 2, 2, -3, 1)),
			Overflow: series.OverflowFromInts(map[int]int64{1: 1}),
		},
		unexpandable: {Rational: series.NewRational(one, poly.FromInts(0, 1))},
	}
}

func enumerator(t *testing.T, opts ...gfcount.Option) *gfcount.Enumerator {
	t.Helper()
	e, err := gfcount.New(table(), opts...)
	require.NoError(t, err)

	return e
}

func TestNew_NilRationalizer(t *testing.T) {
	_, err := gfcount.New(nil)
	require.ErrorIs(t, err, gfcount.ErrNilRationalizer)
}

func TestExact_Separated(t *testing.T) {
	e := enumerator(t)
	want := []int64{1, 0, 1, 1, 2, 3}
	for n, w := range want {
		got, err := e.Exact(separated, n)
		require.NoError(t, err)
		assert.Equal(t, w, got.Int64(), "n=%d", n)
	}
}

func TestExactRaw_IgnoresOverflow(t *testing.T) {
	e := enumerator(t)
	raw, err := e.ExactRaw(lettersOrE, 1)
	require.NoError(t, err)
	assert.Equal(t, "3", raw.RatString())

	full, err := e.Exact(lettersOrE, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), full.Int64())
}

func TestExactCoefficients_Restartable(t *testing.T) {
	e := enumerator(t)
	seq, err := e.ExactCoefficients(compositions)
	require.NoError(t, err)
	for run := 0; run < 2; run++ {
		var got []int64
		for v := range seq {
			got = append(got, v.Int64())
			if len(got) == 6 {
				break
			}
		}
		assert.Equal(t, []int64{1, 1, 2, 4, 8, 16}, got)
	}
}

func TestEnumerateCoefficients_AgreesWithExact(t *testing.T) {
	e := enumerator(t)
	for _, pattern := range []string{separated, complex12, change, fiveParts, compositions, lettersOrE} {
		t.Run(pattern, func(t *testing.T) {
			exact, err := e.ExactCoefficients(pattern)
			require.NoError(t, err)
			var want []int64
			for v := range exact {
				want = append(want, v.Int64())
				if len(want) == 20 {
					break
				}
			}

			algebraic, err := e.EnumerateCoefficients(pattern)
			require.NoError(t, err)
			var got []int64
			for v := range algebraic {
				got = append(got, int64(math.Round(v)))
				if len(got) == 20 {
					break
				}
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestAlgebraicForm_EvaluatesToExact(t *testing.T) {
	e := enumerator(t)
	for _, pattern := range []string{separated, complex12, change, fiveParts, compositions, lettersOrE} {
		t.Run(pattern, func(t *testing.T) {
			form, err := e.AlgebraicForm(pattern)
			require.NoError(t, err)
			for n := 0; n < 30; n++ {
				want, err := e.Exact(pattern, n)
				require.NoError(t, err)
				v, err := gfcount.EvaluateExpression(form, n)
				require.NoError(t, err)
				got := big.NewInt(int64(math.Round(real(v))))
				assert.Equal(t, want.String(), got.String(), "n=%d form=%s", n, form)
			}
		})
	}
}

func TestExtractCoefficientsAlgebraically_State(t *testing.T) {
	e := enumerator(t)
	f, s, err := e.ExtractCoefficientsAlgebraically(lettersOrE)
	require.NoError(t, err)
	assert.InDelta(t, 4, f(1), 1e-9)
	assert.Equal(t, roots.ClusterSet{{Value: -1, Multiplicity: 1}, {Value: 1, Multiplicity: 4}}, s.Analysis().Clusters)
}

func TestCompanionStrategy(t *testing.T) {
	e := enumerator(t, gfcount.WithRootStrategy(roots.StrategyCompanion))
	f, _, err := e.ExtractCoefficientsAlgebraically(separated)
	require.NoError(t, err)
	assert.Equal(t, 34.0, math.Round(f(10)))

	// the five-fold root at 1 is too loose to extrapolate from
	_, _, err = e.ExtractCoefficientsAlgebraically(complex12)
	require.ErrorIs(t, err, closedform.ErrCalibration)
}

func TestErrors(t *testing.T) {
	e := enumerator(t)
	_, err := e.Exact("nope", 1)
	require.ErrorIs(t, err, gfcount.ErrUnknownPattern)
	_, err = e.AlgebraicForm("nope")
	require.ErrorIs(t, err, gfcount.ErrUnknownPattern)

	_, err = e.Exact(unexpandable, 1)
	require.ErrorIs(t, err, series.ErrNotExpandable)
	_, err = e.EnumerateCoefficients(unexpandable)
	require.ErrorIs(t, err, series.ErrNotExpandable)

	_, err = e.Exact(separated, -1)
	require.ErrorIs(t, err, series.ErrNegativeIndex)
}

func TestWithLogger_RecordsCalibration(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	e := enumerator(t, gfcount.WithLogger(logger))

	_, err := e.AlgebraicForm(lettersOrE)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "closed form calibrated", entry.Message)
	assert.Equal(t, lettersOrE, entry.Data["pattern"])
	assert.Equal(t, 5, entry.Data["terms"])
	assert.Equal(t, 2, entry.Data["clusters"])
}

func TestOptions(t *testing.T) {
	e := enumerator(t,
		gfcount.WithLetters('a', 'b'),
		gfcount.WithThreshold(-1),
		gfcount.WithMaxCondition(1e10),
		gfcount.WithFormThreshold(1e-6),
	)
	o := e.Options()
	assert.Equal(t, []rune{'a', 'b'}, o.Letters)
	assert.Equal(t, 1e-3, o.Threshold)
	assert.Equal(t, 1e10, o.MaxCondition)
	assert.Equal(t, 1e-6, o.FormThreshold)
	assert.Equal(t, roots.StrategySquareFree, o.Strategy)
}
