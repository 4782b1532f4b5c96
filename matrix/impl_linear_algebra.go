// SPDX-License-Identifier: MIT
// Package matrix provides the complex linear-algebra kernels used to
// calibrate closed forms: matrix-vector product, LU factorization with
// partial pivoting, triangular solves and a 1-norm condition estimate.
//
// Purpose:
//   - Declare canonical kernels and the operation tags used for error reporting.
//   - Keep every kernel deterministic: fixed loop orders, first-maximum pivot choice.
//
// Notes:
//   - All kernels use the central validators and wrap failures via matrixErrorf.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// DefaultMaxCondition is the condition-number bound above which Solve refuses
// to return a solution.
const DefaultMaxCondition = 1e13

// ZeroPivot is the sentinel for detecting an exactly zero pivot in LU.
const ZeroPivot = complex(0, 0)

// Operation name constants for unified error wrapping.
const (
	opMatVec = "MatVec"
	opLU     = "LU"
	opSolve  = "Solve"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
//
// Implementation:
//   - Stage 1: Wrap using fmt.Errorf("%s: %w", tag, err) to enable errors.Is/As.
//
// Complexity:
//   - Time O(1), Space O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = A·x for a rows×cols matrix and a vector of length cols.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m Matrix, x []complex128) ([]complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	rows, cols := m.Rows(), m.Cols()
	y := make([]complex128, rows)
	if d, ok := m.(*Dense); ok {
		for i := 0; i < rows; i++ {
			var sum complex128
			base := i * cols
			for j := 0; j < cols; j++ {
				sum += d.data[base+j] * x[j]
			}
			y[i] = sum
		}

		return y, nil
	}

	for i := 0; i < rows; i++ {
		var sum complex128
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			sum += v * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// LUFactors holds a packed PA = LU factorization: the strict lower triangle
// of lu stores L (unit diagonal implied), the upper triangle stores U and
// perm[i] is the source row of row i.
type LUFactors struct {
	n    int
	lu   []complex128
	perm []int
	norm float64 // 1-norm of the factored matrix
}

// LU factors a square matrix with partial (row) pivoting.
//
// Implementation:
//   - Stage 1: Validate (non-nil, square) and copy into a working buffer.
//   - Stage 2: For each column k pick the first row with maximal |a_ik| (i ≥ k),
//     swap it into place, then eliminate below the pivot.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf.
//   - ErrSingular when the chosen pivot is exactly zero.
//
// Determinism:
//   - Ties on pivot magnitude keep the topmost row.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func LU(m Matrix) (*LUFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}

	n := m.Rows()
	f := &LUFactors{n: n, lu: make([]complex128, n*n), perm: make([]int, n)}
	for i := 0; i < n; i++ {
		f.perm[i] = i
		for j := 0; j < n; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, matrixErrorf(opLU, err)
			}
			if !isFinite(v) {
				return nil, matrixErrorf(opLU, ErrNaNInf)
			}
			f.lu[i*n+j] = v
		}
	}
	f.norm = norm1(f.lu, n)

	a := f.lu
	for k := 0; k < n; k++ {
		// pivot search
		p, best := k, cmplx.Abs(a[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := cmplx.Abs(a[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if a[p*n+k] == ZeroPivot {
			return nil, matrixErrorf(opLU, ErrSingular)
		}
		if p != k {
			for j := 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			f.perm[k], f.perm[p] = f.perm[p], f.perm[k]
		}

		pivot := a[k*n+k]
		for i := k + 1; i < n; i++ {
			l := a[i*n+k] / pivot
			a[i*n+k] = l
			if l == 0 {
				continue
			}
			for j := k + 1; j < n; j++ {
				a[i*n+j] -= l * a[k*n+j]
			}
		}
	}

	return f, nil
}

// SolveVec solves A·x = b using the stored factors.
//
// Errors:
//   - ErrDimensionMismatch if len(b) != n; ErrNaNInf for non-finite b.
//
// Complexity:
//   - Time O(n²), Space O(n).
func (f *LUFactors) SolveVec(b []complex128) ([]complex128, error) {
	if err := ValidateVecLen(b, f.n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	if err := ValidateFiniteVec(b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	n, a := f.n, f.lu
	x := make([]complex128, n)
	// forward: L·y = P·b
	for i := 0; i < n; i++ {
		sum := b[f.perm[i]]
		for k := 0; k < i; k++ {
			sum -= a[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// backward: U·x = y
	for i := n - 1; i >= 0; i-- {
		sum := x[i]
		for k := i + 1; k < n; k++ {
			sum -= a[i*n+k] * x[k]
		}
		x[i] = sum / a[i*n+i]
	}

	return x, nil
}

// Cond estimates the 1-norm condition number ‖A‖₁·‖A⁻¹‖₁. The inverse norm is
// computed exactly, one column at a time, from solves against unit vectors.
// A non-finite result is reported as +Inf.
//
// Complexity:
//   - Time O(n³), Space O(n).
func (f *LUFactors) Cond() float64 {
	var invNorm float64
	e := make([]complex128, f.n)
	for j := 0; j < f.n; j++ {
		for i := range e {
			e[i] = 0
		}
		e[j] = 1
		col, err := f.SolveVec(e)
		if err != nil {
			return math.Inf(1)
		}
		var s float64
		for _, v := range col {
			s += cmplx.Abs(v)
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return math.Inf(1)
		}
		if s > invNorm {
			invNorm = s
		}
	}

	c := f.norm * invNorm
	if math.IsNaN(c) {
		return math.Inf(1)
	}

	return c
}

// Solve solves the square system A·x = b with partial pivoting and refuses
// ill-conditioned input. maxCond <= 0 selects DefaultMaxCondition. The
// condition estimate is returned alongside the solution, and also on
// ErrIllConditioned so callers can report it.
//
// Implementation:
//   - Stage 1: LU(m) (ErrSingular on an exactly zero pivot).
//   - Stage 2: Cond() against maxCond.
//   - Stage 3: SolveVec(b).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrDimensionMismatch, ErrNaNInf,
//     ErrSingular, ErrIllConditioned.
func Solve(m Matrix, b []complex128, maxCond float64) ([]complex128, float64, error) {
	if maxCond <= 0 {
		maxCond = DefaultMaxCondition
	}
	if err := ValidateSquare(m); err != nil {
		return nil, 0, matrixErrorf(opSolve, err)
	}
	if err := ValidateVecLen(b, m.Rows()); err != nil {
		return nil, 0, matrixErrorf(opSolve, err)
	}

	f, err := LU(m)
	if err != nil {
		return nil, math.Inf(1), matrixErrorf(opSolve, err)
	}
	cond := f.Cond()
	if cond > maxCond {
		return nil, cond, matrixErrorf(opSolve, fmt.Errorf("%w (cond %.3g > %.3g)", ErrIllConditioned, cond, maxCond))
	}
	x, err := f.SolveVec(b)
	if err != nil {
		return nil, cond, err
	}

	return x, cond, nil
}

// norm1 is the maximum absolute column sum of a row-major n×n buffer.
func norm1(a []complex128, n int) float64 {
	var best float64
	for j := 0; j < n; j++ {
		var s float64
		for i := 0; i < n; i++ {
			s += cmplx.Abs(a[i*n+j])
		}
		if s > best {
			best = s
		}
	}

	return best
}
