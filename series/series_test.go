// SPDX-License-Identifier: MIT
// Package series_test contains unit tests for the exact coefficient engine.
package series_test

import (
	"math/big"
	"testing"

	"github.com/katalvlaran/gfcount/poly"
	"github.com/katalvlaran/gfcount/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separated is "(00*1)*": (1 - z)/(1 - z - z^2).
func separated() series.Rational {
	return series.NewRational(poly.FromInts(1, -1), poly.FromInts(1, -1, -1))
}

// lettersOrE is "a*b*c*(dd)*|e": 1/((1-z)^4 (1+z)) with the lone "e" as overflow.
func lettersOrE() (series.Rational, series.Overflow) {
	return series.NewRational(poly.FromInts(1), poly.FromInts(1, -3, 2, 2, -3, 1)),
		series.OverflowFromInts(map[int]int64{1: 1})
}

func ints(t *testing.T, seqLen int, r series.Rational, o series.Overflow) []int64 {
	t.Helper()
	out := make([]int64, seqLen)
	for n := range out {
		v, err := series.Exact(r, n, o)
		require.NoError(t, err)
		out[n] = v.Int64()
	}

	return out
}

func TestCoefficient_SeparatedStrings(t *testing.T) {
	assert.Equal(t, []int64{1, 0, 1, 1, 2, 3}, ints(t, 6, separated(), nil))
}

func TestCoefficient_LettersOrE(t *testing.T) {
	r, o := lettersOrE()
	// 1/((1-z)^4(1+z)) = 1, 3, 7, 13, 22, 34, ...; "e" adds one word at n=1
	assert.Equal(t, []int64{1, 4, 7, 13, 22, 34}, ints(t, 6, r, o))
}

func TestCoefficient_ZeroIndexIsTopOverBottom(t *testing.T) {
	cases := []series.Rational{
		series.NewRational(poly.FromInts(3, 1), poly.FromInts(2, -1)),
		series.NewRational(poly.FromInts(-5, 0, 7), poly.FromInts(3, 1, 1)),
		separated(),
	}
	for _, r := range cases {
		got, err := series.Coefficient(r, 0, nil, false)
		require.NoError(t, err)
		want := new(big.Rat).Quo(r.Num.Coeff(0), r.Den.Coeff(0))
		assert.Equal(t, 0, want.Cmp(got), "%s: want %s got %s", r, want, got)
	}
}

func TestCoefficient_RawValueIsNotRounded(t *testing.T) {
	// 1/(2 - z) = 1/2 + z/4 + ...
	r := series.NewRational(poly.FromInts(1), poly.FromInts(2, -1))
	got, err := series.Coefficient(r, 1, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "1/4", got.RatString())

	rounded, err := series.Coefficient(r, 0, nil, true)
	require.NoError(t, err)
	assert.Equal(t, "1", rounded.RatString())
}

func TestCoefficient_Errors(t *testing.T) {
	_, err := series.Coefficient(series.NewRational(poly.FromInts(1), poly.FromInts(0, 1)), 3, nil, true)
	require.ErrorIs(t, err, series.ErrNotExpandable)

	_, err = series.Coefficient(separated(), -1, nil, true)
	require.ErrorIs(t, err, series.ErrNegativeIndex)

	_, err = series.Coefficient(series.NewRational(poly.FromInts(1), poly.Poly{}), 0, nil, true)
	require.ErrorIs(t, err, series.ErrZeroDenominator)
}

func TestCoefficient_EmptyLanguageSkipsInversion(t *testing.T) {
	// the denominator would be rejected if inversion were attempted
	r := series.NewRational(poly.Poly{}, poly.FromInts(0, 1))
	o := series.OverflowFromInts(map[int]int64{2: 5})

	for n := 0; n < 10; n++ {
		got, err := series.Coefficient(r, n, o, true)
		require.NoError(t, err)
		want := int64(0)
		if n == 2 {
			want = 5
		}
		assert.Equal(t, 0, big.NewRat(want, 1).Cmp(got), "n=%d", n)
	}

	raw, err := series.Coefficient(r, 2, o, false)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.Sign(), "overflow must be ignored when disabled")
}

func TestRound_HalfAwayFromZero(t *testing.T) {
	for _, tc := range []struct {
		in   *big.Rat
		want int64
	}{
		{big.NewRat(5, 2), 3},
		{big.NewRat(-5, 2), -3},
		{big.NewRat(7, 3), 2},
		{big.NewRat(-7, 3), -2},
		{big.NewRat(0, 1), 0},
		{big.NewRat(41, 1), 41},
	} {
		assert.Equal(t, tc.want, series.Round(tc.in).Int64(), tc.in.String())
	}
}

func TestStream_MatchesRecomputation(t *testing.T) {
	r, o := lettersOrE()
	cases := []struct {
		name string
		r    series.Rational
		o    series.Overflow
	}{
		{"separated", separated(), nil},
		{"lettersOrE", r, o},
		{"fractional", series.NewRational(poly.FromInts(1, 2), poly.FromInts(3, -1, 0, 2)), series.OverflowFromInts(map[int]int64{0: 4})},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, use := range []bool{true, false} {
				slow, err := series.Coefficients(tc.r, tc.o, use)
				require.NoError(t, err)
				fast, err := series.Stream(tc.r, tc.o, use)
				require.NoError(t, err)

				var want []*big.Rat
				for v := range slow {
					want = append(want, v)
					if len(want) == 25 {
						break
					}
				}
				i := 0
				for v := range fast {
					require.Equal(t, 0, want[i].Cmp(v), "n=%d use=%v", i, use)
					i++
					if i == len(want) {
						break
					}
				}
			}
		})
	}
}

func TestStream_IsRestartable(t *testing.T) {
	seq, err := series.Stream(separated(), nil, true)
	require.NoError(t, err)
	for run := 0; run < 2; run++ {
		var got []string
		for v := range seq {
			got = append(got, v.RatString())
			if len(got) == 6 {
				break
			}
		}
		assert.Equal(t, []string{"1", "0", "1", "1", "2", "3"}, got)
	}
}

func TestExpansion_AllResumes(t *testing.T) {
	e, err := series.NewExpansion(separated(), nil, true)
	require.NoError(t, err)
	for n, v := range e.All() {
		if n == 2 {
			assert.Equal(t, "1", v.RatString())
			break
		}
	}
	assert.Equal(t, 3, e.Index())
	assert.Equal(t, "1", e.Next().RatString()) // c_3
	assert.Equal(t, "2", e.Next().RatString()) // c_4
}

func TestProper_FoldsPolynomialPartIntoOverflow(t *testing.T) {
	// (11*)*: (1 - z)/(1 - 2z) = 1/2 + (1/2)/(1 - 2z)
	r := series.NewRational(poly.FromInts(1, -1), poly.FromInts(1, -2))
	proper, o, err := series.Proper(r, nil)
	require.NoError(t, err)
	assert.Less(t, proper.Num.Degree(), proper.Den.Degree())
	assert.Equal(t, "1/2", o.At(0).RatString())

	for n := 0; n < 12; n++ {
		want, err := series.Exact(r, n, nil)
		require.NoError(t, err)
		got, err := series.Exact(proper, n, o)
		require.NoError(t, err)
		assert.Equal(t, want.String(), got.String(), "n=%d", n)
	}
}

func TestReduce_CancelsCommonFactor(t *testing.T) {
	// (1 - z^2)/(1 - z)^2 = (1 + z)/(1 - z)
	r := series.NewRational(poly.FromInts(1, 0, -1), poly.FromInts(1, -2, 1))
	red, err := series.Reduce(r)
	require.NoError(t, err)
	assert.True(t, red.Num.Equal(poly.FromInts(1, 1)), red.String())
	assert.True(t, red.Den.Equal(poly.FromInts(1, -1)), red.String())
}

func TestTruncate(t *testing.T) {
	got, err := series.Truncate(separated(), 6)
	require.NoError(t, err)
	require.Len(t, got, 6)
	assert.Equal(t, "3", got[5].RatString())
}
