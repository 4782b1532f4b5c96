// SPDX-License-Identifier: MIT

package series

import (
	"iter"
	"math/big"

	"github.com/katalvlaran/gfcount/poly"
)

// Coefficient extracts the coefficient of z^n in r, plus overflow[n] when
// useOverflow is set.
//
// Implementation:
//   - Stage 1: a structurally zero numerator short-circuits to the overflow
//     (no inversion is attempted, the denominator is not inspected).
//   - Stage 2: validate Den[0] != 0 and build P = Num/Den₀, Q = 1 − Den/Den₀.
//   - Stage 3: for i = 0..n accumulate [z^n] R with R = P·Q^i, R ← R·Q.
//   - Stage 4: add the overflow and round to the nearest integer when
//     useOverflow is set; otherwise return the raw exact value.
//
// The raw (useOverflow=false) value is what calibration consumes; it must
// not be rounded.
//
// Errors:
//   - ErrNegativeIndex, ErrZeroDenominator, ErrNotExpandable.
//
// Complexity:
//   - O(n) sparse products, each bounded by the (truncated) size of R.
func Coefficient(r Rational, n int, overflow Overflow, useOverflow bool) (*big.Rat, error) {
	if n < 0 {
		return nil, seriesErrorf(opCoefficient, ErrNegativeIndex)
	}
	if !useOverflow {
		overflow = nil
	}

	top := poly.Process(r.Num)
	if top.IsZero() {
		return finish(overflow.At(n), useOverflow), nil
	}
	if err := r.Validate(); err != nil {
		return nil, seriesErrorf(opCoefficient, err)
	}

	p, q := normalForm(top, r.Den)
	total := overflow.At(n)
	acc := p
	for i := 0; i <= n; i++ {
		if c, ok := acc[n]; ok {
			total.Add(total, c)
		}
		// every factor of Q raises the minimum degree by at least one
		acc = truncate(poly.Mul(acc, q), n)
		if acc.IsZero() {
			break
		}
	}

	return finish(total, useOverflow), nil
}

// Exact returns the rounded coefficient n of r including the overflow.
func Exact(r Rational, n int, overflow Overflow) (*big.Int, error) {
	v, err := Coefficient(r, n, overflow, true)
	if err != nil {
		return nil, err
	}

	return new(big.Int).Set(v.Num()), nil
}

// Coefficients returns an infinite, restartable sequence of Coefficient
// values for n = 0, 1, 2, ... Every element is recomputed independently;
// prefer Stream when walking many indices.
//
// Errors are reported once, up front, by validating r.
func Coefficients(r Rational, overflow Overflow, useOverflow bool) (iter.Seq[*big.Rat], error) {
	if !poly.Process(r.Num).IsZero() {
		if err := r.Validate(); err != nil {
			return nil, seriesErrorf(opCoefficients, err)
		}
	}

	return func(yield func(*big.Rat) bool) {
		for n := 0; ; n++ {
			v, err := Coefficient(r, n, overflow, useOverflow)
			if err != nil {
				// unreachable after validation
				return
			}
			if !yield(v) {
				return
			}
		}
	}, nil
}

// Round rounds x to the nearest integer, halves away from zero.
func Round(x *big.Rat) *big.Int {
	num := new(big.Int).Abs(x.Num())
	den := x.Denom()
	// floor((2|num| + den) / (2den))
	twice := new(big.Int).Lsh(num, 1)
	twice.Add(twice, den)
	out := new(big.Int).Quo(twice, new(big.Int).Lsh(den, 1))
	if x.Sign() < 0 {
		out.Neg(out)
	}

	return out
}

// normalForm returns P = top/bottom₀ and Q = 1 − bottom/bottom₀ (Q(0) = 0).
// bottom₀ must be non-zero.
func normalForm(top, bottom poly.Poly) (p, q poly.Poly) {
	inv := new(big.Rat).Inv(bottom.Coeff(0))
	p = poly.Scale(top, inv)
	q = poly.Scale(bottom, new(big.Rat).Neg(inv))
	delete(q, 0)

	return p, q
}

// truncate drops every term above degree n.
func truncate(p poly.Poly, n int) poly.Poly {
	for d := range p {
		if d > n {
			delete(p, d)
		}
	}

	return p
}

func finish(v *big.Rat, round bool) *big.Rat {
	if !round {
		return v
	}

	return new(big.Rat).SetInt(Round(v))
}
