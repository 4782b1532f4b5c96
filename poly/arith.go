// SPDX-License-Identifier: MIT
// Package poly: exact arithmetic kernels.
//
// Purpose:
//   - Sparse multiply/add/scale used by series inversion.
//   - Derivative, long division, monic GCD and Yun square-free decomposition
//     used to separate repeated denominator roots before any floating point.
//
// Complexity quicksheet (s = number of stored terms, d = degree):
//   - Add/Sub/Scale: O(s); Mul: O(s_a·s_b); DivMod: O(d_a·d_b); GCD: O(d²) steps.

package poly

import "math/big"

// Add returns a + b.
func Add(a, b Poly) Poly {
	out := Process(a)
	for d, c := range b {
		if c == nil || c.Sign() == 0 {
			continue
		}
		if cur, ok := out[d]; ok {
			cur.Add(cur, c)
			if cur.Sign() == 0 {
				delete(out, d)
			}
			continue
		}
		out[d] = new(big.Rat).Set(c)
	}

	return out
}

// Sub returns a - b.
func Sub(a, b Poly) Poly { return Add(a, Neg(b)) }

// Neg returns -p.
func Neg(p Poly) Poly {
	out := make(Poly, len(p))
	for d, c := range p {
		if c != nil && c.Sign() != 0 {
			out[d] = new(big.Rat).Neg(c)
		}
	}

	return out
}

// Scale returns k·p.
func Scale(p Poly, k *big.Rat) Poly {
	out := make(Poly, len(p))
	if k == nil || k.Sign() == 0 {
		return out
	}
	for d, c := range p {
		if c != nil && c.Sign() != 0 {
			out[d] = new(big.Rat).Mul(c, k)
		}
	}

	return out
}

// Mul returns the sparse product a·b.
// Each pair of stored terms contributes once; cancellations are pruned.
func Mul(a, b Poly) Poly {
	out := make(Poly, len(a)+len(b))
	if len(a) == 0 || len(b) == 0 {
		return out
	}
	// walk both operands in ascending degree order so big.Rat accumulation
	// order is reproducible
	ad, bd := a.Degrees(), b.Degrees()
	prod := new(big.Rat)
	for _, i := range ad {
		for _, j := range bd {
			prod.Mul(a[i], b[j])
			if cur, ok := out[i+j]; ok {
				cur.Add(cur, prod)
				continue
			}
			out[i+j] = new(big.Rat).Set(prod)
		}
	}
	for d, c := range out {
		if c.Sign() == 0 {
			delete(out, d)
		}
	}

	return out
}

// Shift returns p·z^k for k ≥ 0.
func Shift(p Poly, k int) Poly {
	out := make(Poly, len(p))
	for d, c := range p {
		if c != nil && c.Sign() != 0 {
			out[d+k] = new(big.Rat).Set(c)
		}
	}

	return out
}

// Derivative returns dp/dz.
func Derivative(p Poly) Poly {
	out := make(Poly, len(p))
	for d, c := range p {
		if d == 0 || c == nil || c.Sign() == 0 {
			continue
		}
		out[d-1] = new(big.Rat).Mul(c, new(big.Rat).SetInt64(int64(d)))
	}

	return out
}

// DivMod performs polynomial long division a = q·b + r with deg r < deg b.
//
// Errors:
//   - ErrDivisionByZero if b is the zero polynomial.
func DivMod(a, b Poly) (q, r Poly, err error) {
	bDeg, bLead, ok := LeadingTerm(b)
	if !ok {
		return nil, nil, polyErrorf(opDivMod, ErrDivisionByZero)
	}
	q = Poly{}
	r = Process(a)
	inv := new(big.Rat).Inv(bLead)
	for {
		rDeg, rLead, nonZero := LeadingTerm(r)
		if !nonZero || rDeg < bDeg {
			break
		}
		t := new(big.Rat).Mul(rLead, inv)
		shift := rDeg - bDeg
		q = Add(q, Monomial(shift, t))
		r = Sub(r, Shift(Scale(b, t), shift))
	}

	return q, r, nil
}

// Monic scales p so its leading coefficient is 1. The zero polynomial is
// returned unchanged.
func Monic(p Poly) Poly {
	_, lead, ok := LeadingTerm(p)
	if !ok {
		return Poly{}
	}

	return Scale(p, new(big.Rat).Inv(lead))
}

// GCD returns the monic greatest common divisor of a and b.
// GCD(0, 0) is reported as ErrDivisionByZero.
func GCD(a, b Poly) (Poly, error) {
	if a.IsZero() && b.IsZero() {
		return nil, polyErrorf(opGCD, ErrDivisionByZero)
	}
	x, y := Monic(a), Monic(b)
	for !y.IsZero() {
		_, rem, err := DivMod(x, y)
		if err != nil {
			return nil, polyErrorf(opGCD, err)
		}
		// keep remainders monic so coefficient growth stays bounded
		x, y = y, Monic(rem)
	}

	return Monic(x), nil
}

// Factor is one square-free component of a decomposition: Poly raised to
// Multiplicity.
type Factor struct {
	Poly         Poly
	Multiplicity int
}

// SquareFree computes Yun's square-free decomposition p = c·∏ A_i^i, where
// every A_i is monic, square-free and pairwise coprime. Only factors of
// positive degree are returned, ordered by ascending multiplicity; the sum of
// Multiplicity·deg(A_i) equals deg(p).
//
// Errors:
//   - ErrZeroPolynomial if p is identically zero.
func SquareFree(p Poly) ([]Factor, error) {
	if p.IsZero() {
		return nil, polyErrorf(opSquareFree, ErrZeroPolynomial)
	}
	if p.Degree() == 0 {
		return nil, nil
	}

	f := Monic(p)
	df := Derivative(f)
	a0, err := GCD(f, df)
	if err != nil {
		return nil, polyErrorf(opSquareFree, err)
	}
	b, _, err := DivMod(f, a0)
	if err != nil {
		return nil, polyErrorf(opSquareFree, err)
	}
	c, _, err := DivMod(df, a0)
	if err != nil {
		return nil, polyErrorf(opSquareFree, err)
	}
	d := Sub(c, Derivative(b))

	var out []Factor
	for i := 1; b.Degree() > 0; i++ {
		a, err := GCD(b, d)
		if err != nil {
			return nil, polyErrorf(opSquareFree, err)
		}
		if a.Degree() > 0 {
			out = append(out, Factor{Poly: a, Multiplicity: i})
		}
		if b, _, err = DivMod(b, a); err != nil {
			return nil, polyErrorf(opSquareFree, err)
		}
		if c, _, err = DivMod(d, a); err != nil {
			return nil, polyErrorf(opSquareFree, err)
		}
		d = Sub(c, Derivative(b))
	}

	return out, nil
}
