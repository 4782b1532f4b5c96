// SPDX-License-Identifier: MIT

package closedform

import (
	"math"

	"github.com/katalvlaran/gfcount/identify"
	"github.com/katalvlaran/gfcount/symbolic"
)

// InverseSymbolic turns a complex constant into an expression. Real and
// imaginary parts are identified separately (identify.FormOptions); an
// identification farther than threshold from the value is rejected and the
// part becomes a Float literal. threshold <= 0 selects DefaultFormThreshold.
func InverseSymbolic(z complex128, threshold float64) symbolic.Expr {
	if threshold <= 0 {
		threshold = DefaultFormThreshold
	}

	return symbolic.AddOf(
		inversePart(real(z), threshold),
		symbolic.MulOf(inversePart(imag(z), threshold), symbolic.I),
	)
}

func inversePart(x, threshold float64) symbolic.Expr {
	if r, ok := identify.Real(x, identify.FormOptions); ok && math.Abs(x-r.Value) <= threshold {
		return r.Expr
	}

	return symbolic.FloatOf(x)
}

// AlgebraicForm renders the closed form in the index n:
//
//	Σ_j w_j · C(n+k_j-1, k_j-1) · (-1)^k_j · ρ_j^(-n-k_j) + Σ_i o_i · delta(n-i)
//
// with every root and weight passed through InverseSymbolic and the overflow
// terms in ascending index order.
func (s *Solver) AlgebraicForm(threshold float64) symbolic.Expr {
	n := symbolic.Index()
	terms := make([]symbolic.Expr, 0, len(s.basis)+len(s.overflow))
	for j, t := range s.basis {
		sign := int64(1)
		if t.K%2 == 1 {
			sign = -1
		}
		terms = append(terms, symbolic.MulOf(
			InverseSymbolic(s.weights[j], threshold),
			symbolic.BinomialOf(symbolic.AddOf(n, symbolic.N(int64(t.K-1))), t.K-1),
			symbolic.N(sign),
			symbolic.PowOf(InverseSymbolic(t.Root, threshold), symbolic.AddOf(symbolic.Neg(n), symbolic.N(int64(-t.K)))),
		))
	}
	for _, i := range s.overflow.Indices() {
		terms = append(terms, symbolic.MulOf(symbolic.R(s.overflow.At(i)), symbolic.At(i)))
	}

	return symbolic.AddOf(terms...)
}
