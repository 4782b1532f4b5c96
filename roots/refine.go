// SPDX-License-Identifier: MIT

package roots

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/gfcount/identify"
	"github.com/katalvlaran/gfcount/symbolic"
)

const (
	refineSweeps = 2
	// flatDerivative stops refinement when ‖P'(roots)‖₂ falls below it.
	flatDerivative = 1e-5
	// acceptResidual accepts a recognized root outright when |P| is below it.
	acceptResidual = 1e-10
)

// Refine polishes roots with at most two Newton sweeps over the whole vector.
// Before each sweep it stops if ‖P'(roots)‖₂ < 1e-5. A root whose step is
// undefined (P' = 0) or not finite keeps its value.
//
// Refine is not a plain Newton iteration: a step that would increase |P| is
// also rejected, so a root never leaves a better approximation for a worse
// one. Near a multiple root, where Newton overshoots, the root then stays put.
// The input slice is not modified.
func Refine(p Dense, roots []complex128) []complex128 {
	out := append([]complex128(nil), roots...)
	d := p.Deriv()
	for sweep := 0; sweep < refineSweeps; sweep++ {
		if norm2(d, out) < flatDerivative {
			break
		}
		for i, r := range out {
			dv := d.Eval(r)
			if dv == 0 {
				continue
			}
			next := r - p.Eval(r)/dv
			if cmplx.IsNaN(next) || cmplx.IsInf(next) || p.residual(next) > p.residual(r) {
				continue
			}
			out[i] = next
		}
	}

	return out
}

func norm2(p Dense, zs []complex128) float64 {
	var s float64
	for _, z := range zs {
		a := cmplx.Abs(p.Eval(z))
		s += a * a
	}

	return math.Sqrt(s)
}

// Recognized is a root after recognition: Value is the numeric root that
// should be used from now on, Expr its symbolic form. Unresolved parts appear
// in Expr as Float literals.
type Recognized struct {
	Value      complex128
	Expr       symbolic.Expr
	Identified bool // the recognized candidate was accepted
}

// Recognize tries to snap each root to a simple constant. Real and imaginary
// parts are identified independently (identify.RootOptions); an unresolved
// part keeps its float value. The candidate replaces the root when
// |P(candidate)| < |P(root)| or |P(candidate)| < 1e-10.
func Recognize(p Dense, roots []complex128) []Recognized {
	out := make([]Recognized, len(roots))
	for i, r := range roots {
		reExpr, reVal := part(real(r))
		imExpr, imVal := part(imag(r))
		cand := complex(reVal, imVal)

		before, after := p.residual(r), p.residual(cand)
		if after < before || after < acceptResidual {
			out[i] = Recognized{
				Value:      cand,
				Expr:       symbolic.AddOf(reExpr, symbolic.MulOf(imExpr, symbolic.I)),
				Identified: true,
			}
			continue
		}
		out[i] = Recognized{Value: r, Expr: literal(r)}
	}

	return out
}

// CleanRoots is Recognize reduced to the numeric values.
func CleanRoots(p Dense, roots []complex128) []complex128 {
	rec := Recognize(p, roots)
	out := make([]complex128, len(rec))
	for i, r := range rec {
		out[i] = r.Value
	}

	return out
}

func part(x float64) (symbolic.Expr, float64) {
	if res, ok := identify.Real(x, identify.RootOptions); ok {
		return res.Expr, res.Value
	}

	return symbolic.FloatOf(x), x
}

func literal(z complex128) symbolic.Expr {
	return symbolic.AddOf(symbolic.FloatOf(real(z)), symbolic.MulOf(symbolic.FloatOf(imag(z)), symbolic.I))
}
