// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer of complex128 with the explicit
//     index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Matrix is the minimal surface every kernel in this package consumes.
type Matrix interface {
	Rows() int
	Cols() int
	At(i, j int) (complex128, error)
	Set(i, j int, v complex128) error
	Clone() Matrix
}

// Dense is a concrete row-major complex matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int          // row and column counts (>0)
	data []complex128 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix.
//
// Errors:
//   - ErrInvalidDimensions if rows <= 0 or cols <= 0.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// FromRows builds a Dense from a rectangular row literal (copied).
//
// Errors:
//   - ErrInvalidDimensions for an empty literal, ErrDimensionMismatch for ragged rows,
//     ErrNaNInf for non-finite entries.
func FromRows(rows [][]complex128) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.c {
			return nil, fmt.Errorf("row %d: %w", i, ErrDimensionMismatch)
		}
		for j, v := range row {
			if !isFinite(v) {
				return nil, denseErrorf(ctxSet, i, j, ErrNaNInf)
			}
			m.data[i*m.c+j] = v
		}
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// indexOf validates (row,col) and returns the flat offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns element (row,col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[idx], nil
}

// Set writes element (row,col). Non-finite values are rejected with ErrNaNInf.
func (m *Dense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if !isFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// SetRow overwrites row i with v (len(v) must equal Cols).
func (m *Dense) SetRow(i int, v []complex128) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxSet, i, 0, ErrOutOfRange)
	}
	if len(v) != m.c {
		return denseErrorf(ctxSet, i, len(v), ErrDimensionMismatch)
	}
	for j, x := range v {
		if !isFinite(x) {
			return denseErrorf(ctxSet, i, j, ErrNaNInf)
		}
	}
	copy(m.data[i*m.c:(i+1)*m.c], v)

	return nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() Matrix {
	out := &Dense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	copy(out.data, m.data)

	return out
}

// String renders the matrix row by row.
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(_fmtSep)
			}
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

func isFinite(v complex128) bool {
	return !cmplx.IsNaN(v) && !math.IsInf(real(v), 0) && !math.IsInf(imag(v), 0)
}
