// SPDX-License-Identifier: MIT

// Package identify recognizes floating-point numbers as simple closed-form
// constants: integers, rationals p/q and quadratic surds (p + r*sqrt(d))/q.
//
// The search is a bounded integer-relation scan. Candidates are tried in
// order of height (integers, then rationals by denominator, then quadratics
// by the largest of their three coefficients) and the first one within
// tolerance wins. Callers are expected to validate the result against their
// own residual, because a low tolerance with many candidates will always
// find something.
package identify

import (
	"math"

	"github.com/katalvlaran/gfcount/symbolic"
)

// Options bounds the search.
//   - Tol: accept a candidate v when |x - v| <= Tol*max(1, |x|).
//   - MaxCoeff: bound on |p|, q and on the coefficients of the quadratic
//     a*x^2 + b*x + c (integers are not bounded).
type Options struct {
	Tol      float64
	MaxCoeff int
}

// Default tolerances: roots are identified tightly, closed-form constants
// loosely (they are re-checked against a threshold afterwards).
var (
	RootOptions = Options{Tol: 1e-4, MaxCoeff: 30}
	FormOptions = Options{Tol: 1e-3, MaxCoeff: 30}
)

// Result is a recognized constant.
type Result struct {
	Expr  symbolic.Expr
	Value float64 // float64 value of Expr
}

// Real looks for a simple constant close to x. ok is false when nothing
// within tolerance exists or x is not finite.
func Real(x float64, opt Options) (Result, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) || opt.Tol <= 0 {
		return Result{}, false
	}
	if opt.MaxCoeff < 1 {
		opt.MaxCoeff = 1
	}
	slack := opt.Tol * math.Max(1, math.Abs(x))
	near := func(v float64) bool { return math.Abs(x-v) <= slack }

	if p := math.Round(x); math.Abs(p) <= 1<<53 && near(p) {
		return Result{Expr: symbolic.N(int64(p)), Value: p}, true
	}
	if r, ok := rational(x, opt.MaxCoeff, near); ok {
		return r, true
	}

	return quadratic(x, opt.MaxCoeff, near)
}

func rational(x float64, maxCoeff int, near func(float64) bool) (Result, bool) {
	for q := 2; q <= maxCoeff; q++ {
		p := math.Round(x * float64(q))
		if math.Abs(p) > float64(maxCoeff) || gcd(int64(math.Abs(p)), int64(q)) != 1 {
			continue
		}
		v := p / float64(q)
		if near(v) {
			return Result{Expr: symbolic.F(int64(p), int64(q)), Value: v}, true
		}
	}

	return Result{}, false
}

// quadratic scans a*x^2 + b*x + c = 0 by increasing height
// h = max(a, |b|, |c|) <= maxCoeff, with a >= 1 and, inside one height,
// a ascending and b ordered 0, 1, -1, 2, -2, ...
func quadratic(x float64, maxCoeff int, near func(float64) bool) (Result, bool) {
	for h := 1; h <= maxCoeff; h++ {
		for a := 1; a <= h; a++ {
			for i := 0; i <= 2*h; i++ {
				b := (i + 1) / 2
				if i%2 == 0 {
					b = -b
				}
				if r, ok := quadraticRoot(x, a, b, h, near); ok {
					return r, true
				}
			}
		}
	}

	return Result{}, false
}

// quadraticRoot tries the single triple (a, b, c) of height h, with c the
// integer that best cancels a*x^2 + b*x.
func quadraticRoot(x float64, a, b, h int, near func(float64) bool) (Result, bool) {
	fa, fb := float64(a), float64(b)
	c := int(math.Round(-(fa*x*x + fb*x)))
	if max(a, abs(b), abs(c)) != h {
		return Result{}, false
	}
	disc := int64(b*b) - 4*int64(a)*int64(c)
	if disc <= 0 {
		return Result{}, false
	}
	m, free := squareFreePart(disc)
	if free == 1 {
		// rational roots are covered by the rational scan
		return Result{}, false
	}

	sq := float64(m) * math.Sqrt(float64(free))
	for _, sign := range [2]int64{1, -1} {
		v := (-fb + float64(sign)*sq) / (2 * fa)
		if !near(v) {
			continue
		}
		expr := symbolic.AddOf(
			symbolic.F(int64(-b), int64(2*a)),
			symbolic.MulOf(symbolic.F(sign*m, int64(2*a)), symbolic.SqrtOf(symbolic.N(free))),
		)

		return Result{Expr: expr, Value: v}, true
	}

	return Result{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// squareFreePart writes d = m^2 * free with free square-free.
func squareFreePart(d int64) (m, free int64) {
	m, free = 1, d
	for f := int64(2); f*f <= free; f++ {
		for free%(f*f) == 0 {
			free /= f * f
			m *= f
		}
	}

	return m, free
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
