// SPDX-License-Identifier: MIT
// Package series: sentinel error set.
// Every exported function returns these sentinels wrapped with an operation
// tag ("Coefficient: series: ..."); callers match with errors.Is.

package series

import (
	"errors"
	"fmt"
)

var (
	// ErrNotExpandable signals that the denominator has a zero constant term:
	// the rational function has a pole at the origin and no power series there.
	// This is a precondition failure of the caller, never retried.
	ErrNotExpandable = errors.New("series: denominator vanishes at z=0")

	// ErrNegativeIndex is returned when a coefficient index n < 0 is requested.
	ErrNegativeIndex = errors.New("series: negative coefficient index")

	// ErrZeroDenominator is returned when the denominator is the zero polynomial.
	ErrZeroDenominator = errors.New("series: zero denominator")
)

const (
	opCoefficient  = "Coefficient"
	opCoefficients = "Coefficients"
	opExpansion    = "Expansion"
	opProper       = "Proper"
	opReduce       = "Reduce"
	opTruncate     = "Truncate"
)

func seriesErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
