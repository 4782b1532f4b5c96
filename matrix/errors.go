// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel panics on user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap with matrixErrorf(op, ErrX) so the
// operation shows up in the message; callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index/NaN -> dimension mismatch -> numerical (singular, ill-conditioned).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., MatVec with len(x) != Cols, or a ragged row literal.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf component where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when an exactly zero pivot remains after partial
	// pivoting: the system has no unique solution.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrIllConditioned is returned by Solve when the 1-norm condition number
	// exceeds the caller's bound: a solution exists numerically but cannot be
	// trusted, so none is returned.
	ErrIllConditioned = errors.New("matrix: matrix is ill-conditioned")
)
