// SPDX-License-Identifier: MIT

// Package matrix provides a small dense complex matrix and the linear-algebra
// kernels needed to calibrate closed forms of rational generating functions.
//
// The matrix package provides:
//
//   - Dense, a row-major complex128 matrix with bounds-checked At/Set.
//   - MatVec, the matrix-vector product used to check a calibration against
//     coefficients beyond the fitted window.
//   - LU factorization with partial pivoting, triangular solves and a
//     1-norm condition estimate (LUFactors.Cond).
//   - Solve, which refuses exactly singular systems (ErrSingular) and
//     systems whose condition estimate exceeds a bound (ErrIllConditioned).
//
// Every kernel validates its operands and returns package sentinels wrapped
// with the operation name; match them with errors.Is.
package matrix
