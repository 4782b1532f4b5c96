// SPDX-License-Identifier: MIT

package roots

import (
	"math/cmplx"

	"github.com/katalvlaran/gfcount/poly"
)

// Dense is a float64 polynomial with ascending coefficients, trimmed so the
// last entry is non-zero. The zero polynomial is the empty slice.
type Dense []float64

// FromPoly converts an exact polynomial to its dense float form.
func FromPoly(p poly.Poly) Dense {
	return trim(p.Float64s())
}

func trim(c []float64) Dense {
	n := len(c)
	for n > 0 && c[n-1] == 0 {
		n--
	}
	out := make(Dense, n)
	copy(out, c[:n])

	return out
}

// Degree returns the degree, or -1 for the zero polynomial.
func (p Dense) Degree() int { return len(p) - 1 }

// Eval evaluates p at z with Horner's scheme.
func (p Dense) Eval(z complex128) complex128 {
	var acc complex128
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc*z + complex(p[i], 0)
	}

	return acc
}

// Deriv returns p'.
func (p Dense) Deriv() Dense {
	if len(p) <= 1 {
		return Dense{}
	}
	out := make([]float64, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = float64(i) * p[i]
	}

	return trim(out)
}

// residual is |p(z)|.
func (p Dense) residual(z complex128) float64 { return cmplx.Abs(p.Eval(z)) }
