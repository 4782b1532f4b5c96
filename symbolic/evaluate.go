// SPDX-License-Identifier: MIT

package symbolic

// Evaluate substitutes the index symbol n by the integer n and evaluates.
// Indicators are exact after substitution: delta(0) is 1, any other integer
// argument gives 0.
//
// Errors:
//   - ErrFreeSymbol when a symbol other than n remains.
//   - ErrNotFinite when the value overflows.
func Evaluate(expr Expr, n int) (complex128, error) {
	v, ok := expr.Sub(IndexName, N(int64(n))).Eval()
	if !ok {
		return 0, symbolicErrorf(opEvaluate, ErrFreeSymbol)
	}
	if !finite(v) {
		return 0, symbolicErrorf(opEvaluate, ErrNotFinite)
	}

	return v, nil
}
