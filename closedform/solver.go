// SPDX-License-Identifier: MIT

package closedform

import (
	"fmt"
	"iter"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/gfcount/matrix"
	"github.com/katalvlaran/gfcount/roots"
	"github.com/katalvlaran/gfcount/series"
)

// Solver is a calibrated closed form. It is immutable after New and safe for
// concurrent readers.
type Solver struct {
	rational  series.Rational
	overflow  series.Overflow
	analysis  *roots.Analysis
	basis     roots.Basis
	weights   []complex128
	condition float64
}

// New builds the closed form of r plus overflow.
//
// Implementation:
//   - Stage 1: validate; optionally cancel common factors (series.Reduce).
//   - Stage 2: split off the polynomial part into the overflow (series.Proper).
//   - Stage 3: analyze the denominator roots (roots.Analyze) and collate the basis.
//   - Stage 4: calibrate the weights against the first d exact raw
//     coefficients (Fit).
//   - Stage 5: check the calibrated form against the next d exact raw
//     coefficients; a root found too loosely fits the window but drifts
//     after it.
//
// A zero numerator or a constant denominator yields an empty basis; the
// coefficients are then the overflow alone.
//
// Errors:
//   - series.ErrNotExpandable, series.ErrZeroDenominator.
//   - ErrBasisSize, and ErrCalibration together with matrix.ErrSingular or
//     matrix.ErrIllConditioned, or alone when the check of Stage 5 fails.
func New(r series.Rational, overflow series.Overflow, opts ...Option) (*Solver, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := r.Validate(); err != nil {
		return nil, closedformErrorf(opNew, err)
	}
	if o.Reduce {
		reduced, err := series.Reduce(r)
		if err != nil {
			return nil, closedformErrorf(opNew, err)
		}
		r = reduced
	}
	proper, ov, err := series.Proper(r, overflow)
	if err != nil {
		return nil, closedformErrorf(opNew, err)
	}

	s := &Solver{rational: proper, overflow: ov}
	if proper.Num.IsZero() {
		return s, nil
	}

	s.analysis, err = roots.Analyze(proper.Den, o.Threshold, roots.WithStrategy(o.Strategy))
	if err != nil {
		return nil, closedformErrorf(opNew, err)
	}
	s.basis = s.analysis.Basis

	d := proper.Den.Degree()
	if s.basis.Degree() != d {
		return nil, closedformErrorf(opNew, fmt.Errorf("%w: %d terms for degree %d", ErrBasisSize, s.basis.Degree(), d))
	}

	exact, err := series.Truncate(proper, 2*d)
	if err != nil {
		return nil, closedformErrorf(opNew, err)
	}
	targets := make([]complex128, 2*d)
	for i, v := range exact {
		f, _ := v.Float64()
		targets[i] = complex(f, 0)
	}

	s.weights, s.condition, err = Fit(s.basis, targets[:d], o.MaxCondition)
	if err != nil {
		return nil, closedformErrorf(opNew, err)
	}
	if err = s.verify(d, targets[d:]); err != nil {
		return nil, closedformErrorf(opNew, err)
	}

	return s, nil
}

// verifyTolerance is the relative error allowed between the calibrated form
// and an exact raw coefficient outside the fitted window.
const verifyTolerance = 1e-6

// verify compares the raw closed form at lo, lo+1, ... with want.
func (s *Solver) verify(lo int, want []complex128) error {
	got, err := s.raw(lo, lo+len(want))
	if err != nil {
		return calibrationErrorf(opVerify, err)
	}
	for i, w := range want {
		if cmplx.Abs(got[i]-w) > verifyTolerance*math.Max(1, cmplx.Abs(w)) {
			return fmt.Errorf("%s: %w: index %d: closed form %.6g, exact %g",
				opVerify, ErrCalibration, lo+i, real(got[i]), real(w))
		}
	}

	return nil
}

// raw evaluates Σ_j w_j·basis(n)_j for lo <= n < hi as one matrix-vector
// product over the stacked rows.
func (s *Solver) raw(lo, hi int) ([]complex128, error) {
	rows := make([][]complex128, 0, hi-lo)
	for n := lo; n < hi; n++ {
		rows = append(rows, Row(s.basis, n))
	}
	m, err := matrix.FromRows(rows)
	if err != nil {
		return nil, err
	}

	return matrix.MatVec(m, s.weights)
}

// Fit solves Σ_j w_j·basis(n)_j = targets[n] for n < len(basis) and returns
// the weights and the condition estimate of the system. maxCond <= 0 selects
// matrix.DefaultMaxCondition.
//
// Errors:
//   - ErrBasisSize if len(targets) != len(basis).
//   - ErrCalibration wrapping matrix.ErrSingular or matrix.ErrIllConditioned.
func Fit(basis roots.Basis, targets []complex128, maxCond float64) ([]complex128, float64, error) {
	d := len(basis)
	if len(targets) != d {
		return nil, 0, closedformErrorf(opFit, ErrBasisSize)
	}
	if d == 0 {
		return []complex128{}, 0, nil
	}

	m, err := matrix.NewDense(d, d)
	if err != nil {
		return nil, 0, calibrationErrorf(opFit, err)
	}
	for n := 0; n < d; n++ {
		if err = m.SetRow(n, Row(basis, n)); err != nil {
			return nil, 0, calibrationErrorf(opFit, err)
		}
	}

	w, cond, err := matrix.Solve(m, targets, maxCond)
	if err != nil {
		return nil, cond, calibrationErrorf(opFit, err)
	}

	return w, cond, nil
}

// Row evaluates the basis at index n:
// C(n+k-1, k-1) · (-1)^k · ρ^(-n-k) for every term (ρ, k).
func Row(basis roots.Basis, n int) []complex128 {
	out := make([]complex128, len(basis))
	for j, t := range basis {
		b := binomial(n+t.K-1, t.K-1)
		if t.K%2 == 1 {
			b = -b
		}
		out[j] = complex(b, 0) / ipow(t.Root, n+t.K)
	}

	return out
}

// Coefficient returns |basis(n)·w| + overflow[n]. Negative n gives 0; an
// index whose basis row overflows float64 gives +Inf.
func (s *Solver) Coefficient(n int) float64 {
	if n < 0 {
		return 0
	}
	var v float64
	if len(s.weights) > 0 {
		raw, err := s.raw(n, n+1)
		if err != nil {
			return math.Inf(1)
		}
		v = cmplx.Abs(raw[0])
	}
	if c := s.overflow.At(n); c.Sign() != 0 {
		f, _ := c.Float64()
		v += f
	}

	return v
}

// Coefficients yields Coefficient(0), Coefficient(1), ... without end.
// Every range over the sequence starts again from index 0.
func (s *Solver) Coefficients() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for n := 0; ; n++ {
			if !yield(s.Coefficient(n)) {
				return
			}
		}
	}
}

// Basis returns a copy of the collated basis.
func (s *Solver) Basis() roots.Basis { return append(roots.Basis(nil), s.basis...) }

// Weights returns a copy of the calibrated weights, aligned with Basis.
func (s *Solver) Weights() []complex128 { return append([]complex128(nil), s.weights...) }

// Overflow returns a copy of the overflow, polynomial part included.
func (s *Solver) Overflow() series.Overflow { return s.overflow.Clone() }

// Analysis returns the root analysis, or nil when the basis is empty.
func (s *Solver) Analysis() *roots.Analysis { return s.analysis }

// Rational returns the proper rational function the weights were fitted to.
func (s *Solver) Rational() series.Rational { return s.rational }

// Condition returns the condition estimate of the calibration system.
func (s *Solver) Condition() float64 { return s.condition }

// binomial returns C(n, k) as a float64; k <= 0 gives 1.
func binomial(n, k int) float64 {
	acc := 1.0
	for i := 1; i <= k; i++ {
		acc = acc * float64(n-k+i) / float64(i)
	}

	return acc
}

// ipow raises z to a non-negative integer power by binary exponentiation.
func ipow(z complex128, e int) complex128 {
	acc := complex(1, 0)
	for e > 0 {
		if e&1 == 1 {
			acc *= z
		}
		z *= z
		e >>= 1
	}

	return acc
}
