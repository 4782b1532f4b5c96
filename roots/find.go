// SPDX-License-Identifier: MIT

package roots

import (
	"math/big"

	"github.com/katalvlaran/gfcount/poly"
	"gonum.org/v1/gonum/mat"
)

// FindRoots returns all deg(p) complex roots of p, repeated roots included.
//
// Implementation:
//   - StrategySquareFree: Yun decomposition p = c·∏ A_i^i over the rationals;
//     linear factors are solved exactly, the others through their companion
//     matrix; each root of A_i is emitted i times. Factors are visited in
//     ascending multiplicity.
//   - StrategyCompanion: eigenvalues of the companion matrix of p itself.
//
// Returns:
//   - an empty slice for a non-zero constant.
//
// Errors:
//   - ErrZeroPolynomial, ErrNoConvergence.
//
// Determinism:
//   - Output order is fixed for a given polynomial and strategy.
//
// Complexity:
//   - Time O(d³) for the eigen decomposition, Space O(d²).
func FindRoots(p poly.Poly, opts ...Option) ([]complex128, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	p = poly.Process(p)
	if p.IsZero() {
		return nil, rootsErrorf(opFind, ErrZeroPolynomial)
	}
	if p.Degree() == 0 {
		return []complex128{}, nil
	}

	if o.Strategy == StrategyCompanion {
		out, err := companionRoots(FromPoly(p))
		if err != nil {
			return nil, rootsErrorf(opFind, err)
		}

		return out, nil
	}

	factors, err := poly.SquareFree(p)
	if err != nil {
		return nil, rootsErrorf(opFind, err)
	}
	out := make([]complex128, 0, p.Degree())
	for _, f := range factors {
		rs, err := factorRoots(f.Poly)
		if err != nil {
			return nil, rootsErrorf(opFind, err)
		}
		for _, r := range rs {
			for i := 0; i < f.Multiplicity; i++ {
				out = append(out, r)
			}
		}
	}

	return out, nil
}

// factorRoots solves linear factors exactly and defers the rest to eigenvalues.
func factorRoots(f poly.Poly) ([]complex128, error) {
	if f.Degree() == 1 {
		r := new(big.Rat).Quo(f.Coeff(0), f.Coeff(1))
		v, _ := r.Neg(r).Float64()

		return []complex128{complex(v, 0)}, nil
	}

	return companionRoots(FromPoly(f))
}

// companionRoots returns the eigenvalues of the companion matrix of p:
// ones on the subdiagonal, last column -c_i/c_d.
func companionRoots(p Dense) ([]complex128, error) {
	d := p.Degree()
	if d < 1 {
		return []complex128{}, nil
	}
	lead := p[d]
	data := make([]float64, d*d)
	for i := 0; i < d; i++ {
		if i > 0 {
			data[i*d+i-1] = 1
		}
		data[i*d+d-1] = -p[i] / lead
	}

	var eig mat.Eigen
	if ok := eig.Factorize(mat.NewDense(d, d, data), mat.EigenNone); !ok {
		return nil, ErrNoConvergence
	}

	return eig.Values(nil), nil
}
