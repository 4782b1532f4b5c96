// SPDX-License-Identifier: MIT

package symbolic

import (
	"errors"
	"fmt"
)

var (
	// ErrFreeSymbol is returned by Evaluate when a symbol other than the
	// index is still present after substitution.
	ErrFreeSymbol = errors.New("symbolic: expression has a free symbol")

	// ErrNotFinite is returned by Evaluate when the value overflows or is NaN.
	ErrNotFinite = errors.New("symbolic: value is not finite")
)

const opEvaluate = "Evaluate"

func symbolicErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
