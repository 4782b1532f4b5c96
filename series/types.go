// SPDX-License-Identifier: MIT

// Package series is the exact coefficient engine: it extracts power-series
// coefficients of a rational generating function top(z)/bottom(z) by formal
// inversion, using only exact rational arithmetic.
//
// The rational function is rewritten as P(z)/(1 − Q(z)) with
//
//	P(z) = top(z)/bottom(0),   Q(z) = 1 − bottom(z)/bottom(0),   Q(0) = 0,
//
// so that 1/(1 − Q) = Σ Q^i is a valid formal series and only i ≤ n can
// reach z^n. A finite Overflow correction adds exact values at a few indices
// the rational tail does not produce.
//
// Two producers are offered:
//   - Coefficient / Coefficients: each index is recomputed from scratch
//     (O(n) sparse multiplications per index).
//   - Expansion / Stream: a stateful iterator carrying the running series,
//     c_n = p_n + Σ_{j≥1} q_j·c_{n−j}, yielding the same values in O(deg Q)
//     per step.
//
// Nothing in this package touches floating point.
package series

import (
	"math/big"
	"sort"

	"github.com/katalvlaran/gfcount/poly"
)

// Rational is the pair (Num, Den) standing for Num(z)/Den(z).
// Expansion around zero requires Den[0] != 0.
type Rational struct {
	Num poly.Poly
	Den poly.Poly
}

// NewRational builds a Rational from already normalized polynomials.
func NewRational(num, den poly.Poly) Rational {
	return Rational{Num: poly.Process(num), Den: poly.Process(den)}
}

// Validate checks the expansion precondition.
//
// Errors:
//   - ErrZeroDenominator if Den is identically zero.
//   - ErrNotExpandable   if Den[0] == 0.
func (r Rational) Validate() error {
	if r.Den.IsZero() {
		return ErrZeroDenominator
	}
	if r.Den.Coeff(0).Sign() == 0 {
		return ErrNotExpandable
	}

	return nil
}

// String renders "(num)/(den)".
func (r Rational) String() string {
	return "(" + r.Num.String() + ")/(" + r.Den.String() + ")"
}

// Overflow is a finite correction: Overflow[n] is added to coefficient n.
type Overflow map[int]*big.Rat

// At returns a copy of the correction at n (zero when absent).
func (o Overflow) At(n int) *big.Rat {
	if c, ok := o[n]; ok && c != nil {
		return new(big.Rat).Set(c)
	}

	return new(big.Rat)
}

// Indices returns the populated indices in ascending order.
func (o Overflow) Indices() []int {
	idx := make([]int, 0, len(o))
	for n := range o {
		idx = append(idx, n)
	}
	sort.Ints(idx)

	return idx
}

// Clone returns a deep copy of o.
func (o Overflow) Clone() Overflow {
	out := make(Overflow, len(o))
	for n, c := range o {
		if c != nil {
			out[n] = new(big.Rat).Set(c)
		}
	}

	return out
}

// OverflowFromInts builds an Overflow from integer corrections.
func OverflowFromInts(values map[int]int64) Overflow {
	out := make(Overflow, len(values))
	for n, v := range values {
		out[n] = new(big.Rat).SetInt64(v)
	}

	return out
}
