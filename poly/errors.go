// SPDX-License-Identifier: MIT
// Package poly: sentinel error set.
// All constructors and arithmetic kernels return these sentinels (optionally
// wrapped with an operation tag via polyErrorf); callers match with errors.Is.

package poly

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeDegree is returned when a coefficient is keyed by a degree < 0.
	ErrNegativeDegree = errors.New("poly: negative degree")

	// ErrDivisionByZero is returned by DivMod/GCD-style kernels when the divisor
	// is the zero polynomial.
	ErrDivisionByZero = errors.New("poly: division by zero polynomial")

	// ErrZeroPolynomial signals that a non-zero polynomial was required
	// (e.g., square-free decomposition of 0 is undefined).
	ErrZeroPolynomial = errors.New("poly: zero polynomial")

	// ErrBadCoefficient is returned when a textual coefficient cannot be parsed
	// as an exact rational number.
	ErrBadCoefficient = errors.New("poly: invalid coefficient")
)

// Operation tags for uniform error wrapping.
const (
	opNew        = "New"
	opParse      = "Parse"
	opDivMod     = "DivMod"
	opGCD        = "GCD"
	opSquareFree = "SquareFree"
)

// polyErrorf wraps err with an operation tag ("Op: cause"). err must be non-nil.
func polyErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
