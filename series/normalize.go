// SPDX-License-Identifier: MIT

package series

import (
	"math/big"

	"github.com/katalvlaran/gfcount/poly"
)

// Proper splits off the polynomial part of r: Num = T·Den + R with
// deg R < deg Den, so Num/Den = T + R/Den as power series. The coefficients
// of T are folded into a copy of overflow. The returned Rational is proper
// and keeps r's denominator; the expansion precondition is unchanged.
//
// Errors:
//   - ErrZeroDenominator if Den is identically zero.
func Proper(r Rational, overflow Overflow) (Rational, Overflow, error) {
	if r.Den.IsZero() {
		return Rational{}, nil, seriesErrorf(opProper, ErrZeroDenominator)
	}
	quo, rem, err := poly.DivMod(r.Num, r.Den)
	if err != nil {
		return Rational{}, nil, seriesErrorf(opProper, err)
	}

	out := overflow.Clone()
	for _, d := range quo.Degrees() {
		cur, ok := out[d]
		if !ok {
			cur = new(big.Rat)
		}
		cur.Add(cur, quo[d])
		if cur.Sign() == 0 {
			delete(out, d)
			continue
		}
		out[d] = cur
	}

	return Rational{Num: rem, Den: poly.Process(r.Den)}, out, nil
}

// Reduce cancels the common factor of Num and Den, returning coprime
// polynomials with the same power series. The denominator is rescaled so
// that Den[0] keeps its sign and magnitude. A zero numerator reduces to 0/1.
//
// Errors:
//   - ErrZeroDenominator, ErrNotExpandable.
func Reduce(r Rational) (Rational, error) {
	if err := r.Validate(); err != nil {
		return Rational{}, seriesErrorf(opReduce, err)
	}
	if poly.Process(r.Num).IsZero() {
		return Rational{Num: poly.Poly{}, Den: poly.FromInts(1)}, nil
	}

	g, err := poly.GCD(r.Num, r.Den)
	if err != nil {
		return Rational{}, seriesErrorf(opReduce, err)
	}
	num, _, err := poly.DivMod(r.Num, g)
	if err != nil {
		return Rational{}, seriesErrorf(opReduce, err)
	}
	den, _, err := poly.DivMod(r.Den, g)
	if err != nil {
		return Rational{}, seriesErrorf(opReduce, err)
	}

	// g(0) != 0 because Den(0) != 0, so both parts can be rescaled by it
	scale := new(big.Rat).Quo(r.Den.Coeff(0), den.Coeff(0))

	return Rational{Num: poly.Scale(num, scale), Den: poly.Scale(den, scale)}, nil
}
