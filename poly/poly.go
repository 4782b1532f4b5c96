// SPDX-License-Identifier: MIT

// Package poly implements exact sparse univariate polynomials over the
// rationals (math/big.Rat).
//
// Purpose:
//   - Hold the numerator/denominator of a rational generating function exactly.
//   - Supply the sparse primitives the coefficient engine depends on:
//     multiply, normalize (Process), leading-term and degree queries.
//   - Supply the exact algebra the root analyzer needs before it leaves the
//     exact world: derivative, division, GCD and square-free decomposition.
//
// Representation:
//   - Poly is a map degree → coefficient. A normalized Poly never stores a zero
//     coefficient; the zero polynomial is the empty (or nil) map.
//   - Values are treated as immutable: every kernel returns a fresh Poly and
//     never aliases the *big.Rat values of its inputs.
//
// Determinism:
//   - Map iteration never leaks into results: anything order-sensitive
//     (String, Dense, Degrees) walks degrees in ascending order.
package poly

import (
	"math/big"
	"sort"
	"strings"
)

// Poly is a sparse polynomial: Poly[d] is the coefficient of z^d.
type Poly map[int]*big.Rat

// New builds a normalized Poly from a degree→coefficient mapping.
// Zero coefficients are dropped and values are copied.
//
// Errors:
//   - ErrNegativeDegree if any key is negative.
func New(coeffs map[int]*big.Rat) (Poly, error) {
	out := make(Poly, len(coeffs))
	for d, c := range coeffs {
		if d < 0 {
			return nil, polyErrorf(opNew, ErrNegativeDegree)
		}
		if c == nil || c.Sign() == 0 {
			continue
		}
		out[d] = new(big.Rat).Set(c)
	}

	return out, nil
}

// FromInts builds a Poly from dense integer coefficients, index = degree.
//
//	FromInts(1, -1, -1) // 1 - z - z^2
func FromInts(coeffs ...int64) Poly {
	out := make(Poly, len(coeffs))
	for d, c := range coeffs {
		if c != 0 {
			out[d] = new(big.Rat).SetInt64(c)
		}
	}

	return out
}

// FromRats builds a Poly from dense rational coefficients, index = degree.
// Nil entries are treated as zero.
func FromRats(coeffs ...*big.Rat) Poly {
	out := make(Poly, len(coeffs))
	for d, c := range coeffs {
		if c != nil && c.Sign() != 0 {
			out[d] = new(big.Rat).Set(c)
		}
	}

	return out
}

// Parse builds a Poly from dense textual coefficients ("3", "-1/2", "0.25"),
// index = degree. Empty strings are treated as zero.
//
// Errors:
//   - ErrBadCoefficient if an entry is not an exact rational literal.
func Parse(coeffs []string) (Poly, error) {
	out := make(Poly, len(coeffs))
	for d, s := range coeffs {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		c, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, polyErrorf(opParse, ErrBadCoefficient)
		}
		if c.Sign() != 0 {
			out[d] = c
		}
	}

	return out, nil
}

// Monomial returns c·z^d.
func Monomial(d int, c *big.Rat) Poly {
	if c == nil || c.Sign() == 0 || d < 0 {
		return Poly{}
	}

	return Poly{d: new(big.Rat).Set(c)}
}

// Constant returns the degree-0 polynomial c.
func Constant(c *big.Rat) Poly { return Monomial(0, c) }

// Process strips structurally-zero terms. The result is empty iff p is
// identically zero.
func Process(p Poly) Poly {
	out := make(Poly, len(p))
	for d, c := range p {
		if c != nil && c.Sign() != 0 {
			out[d] = new(big.Rat).Set(c)
		}
	}

	return out
}

// IsZero reports whether p is the zero polynomial.
func (p Poly) IsZero() bool {
	for _, c := range p {
		if c != nil && c.Sign() != 0 {
			return false
		}
	}

	return true
}

// Coeff returns a copy of the coefficient of z^d (zero when absent).
func (p Poly) Coeff(d int) *big.Rat {
	if c, ok := p[d]; ok && c != nil {
		return new(big.Rat).Set(c)
	}

	return new(big.Rat)
}

// Degree returns the highest degree with a non-zero coefficient, or -1 for
// the zero polynomial.
func (p Poly) Degree() int {
	deg := -1
	for d, c := range p {
		if c != nil && c.Sign() != 0 && d > deg {
			deg = d
		}
	}

	return deg
}

// Degrees returns the degrees carrying non-zero coefficients, ascending.
func (p Poly) Degrees() []int {
	ds := make([]int, 0, len(p))
	for d, c := range p {
		if c != nil && c.Sign() != 0 {
			ds = append(ds, d)
		}
	}
	sort.Ints(ds)

	return ds
}

// LeadingTerm returns (degree, coefficient) of the highest non-zero term.
// ok is false for the zero polynomial.
func LeadingTerm(p Poly) (deg int, coeff *big.Rat, ok bool) {
	deg = p.Degree()
	if deg < 0 {
		return -1, new(big.Rat), false
	}

	return deg, p.Coeff(deg), true
}

// Clone returns a deep copy of p.
func (p Poly) Clone() Poly { return Process(p) }

// Equal reports whether p and q have identical non-zero coefficients.
func (p Poly) Equal(q Poly) bool {
	pd, qd := p.Degrees(), q.Degrees()
	if len(pd) != len(qd) {
		return false
	}
	for i, d := range pd {
		if qd[i] != d || p[d].Cmp(q[d]) != 0 {
			return false
		}
	}

	return true
}

// Dense returns the coefficient vector [c0, c1, ..., c_deg] as rationals.
// The zero polynomial yields an empty slice.
func (p Poly) Dense() []*big.Rat {
	deg := p.Degree()
	out := make([]*big.Rat, deg+1)
	for d := 0; d <= deg; d++ {
		out[d] = p.Coeff(d)
	}

	return out
}

// Float64s returns the dense coefficient vector rounded to float64.
// This is the single exit point from exact arithmetic into floating point.
func (p Poly) Float64s() []float64 {
	deg := p.Degree()
	out := make([]float64, deg+1)
	for d := 0; d <= deg; d++ {
		if c, ok := p[d]; ok && c != nil {
			out[d], _ = c.Float64()
		}
	}

	return out
}

// String renders p in ascending degree order, e.g. "1 - z - z^2".
func (p Poly) String() string {
	ds := p.Degrees()
	if len(ds) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, d := range ds {
		c := p[d]
		neg := c.Sign() < 0
		abs := new(big.Rat).Abs(c)
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		one := abs.Cmp(big.NewRat(1, 1)) == 0
		if d == 0 || !one {
			b.WriteString(abs.RatString())
		}
		if d > 0 {
			if !one {
				b.WriteString("*")
			}
			b.WriteString("z")
			if d > 1 {
				b.WriteString("^")
				b.WriteString(big.NewInt(int64(d)).String())
			}
		}
	}

	return b.String()
}
