// SPDX-License-Identifier: MIT

package gfcount

import (
	"fmt"

	"github.com/katalvlaran/gfcount/series"
)

// Rationalizer turns a pattern into its generating function: the rational
// tail Num/Den plus a finite overflow correction. letters selects the
// letters that count towards the length; nil means all of them.
type Rationalizer interface {
	Rationalize(pattern string, letters []rune) (series.Overflow, series.Rational, error)
}

// Entry is one precomputed generating function.
type Entry struct {
	Rational series.Rational
	Overflow series.Overflow
}

// StaticRationalizer is a fixed pattern → generating function table. It has
// one letter selection per pattern, so letters is ignored.
type StaticRationalizer map[string]Entry

// Rationalize looks pattern up.
//
// Errors:
//   - ErrUnknownPattern if the table has no entry for pattern.
func (s StaticRationalizer) Rationalize(pattern string, _ []rune) (series.Overflow, series.Rational, error) {
	e, ok := s[pattern]
	if !ok {
		return nil, series.Rational{}, fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
	}

	return e.Overflow.Clone(), e.Rational, nil
}
