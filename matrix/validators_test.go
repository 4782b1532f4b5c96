// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/gfcount/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSquare covers nil inputs, square and non-square cases.
func TestValidateSquare(t *testing.T) {
	t.Parallel()

	dense := func(r, c int) matrix.Matrix {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}
	var typedNil *matrix.Dense

	tests := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"typed nil", typedNil, matrix.ErrNilMatrix},
		{"1x1", dense(1, 1), nil},
		{"3x3", dense(3, 3), nil},
		{"2x3", dense(2, 3), matrix.ErrNonSquare},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSquare(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
			} else {
				require.Truef(t, errors.Is(err, tc.want),
					"expected errors.Is(%v, %v)", err, tc.want)
			}
		})
	}
}

// TestValidateVectors covers the length and finiteness checks.
func TestValidateVectors(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateVecLen([]complex128{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen([]complex128{1}, 2), matrix.ErrDimensionMismatch)

	require.NoError(t, matrix.ValidateFiniteVec([]complex128{1, complex(0, -2)}))
	require.ErrorIs(t, matrix.ValidateFiniteVec([]complex128{complex(math.NaN(), 0)}), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFiniteVec([]complex128{complex(0, math.Inf(-1))}), matrix.ErrNaNInf)
}

// TestDense_RejectsNonFinite checks Set, SetRow and FromRows.
func TestDense_RejectsNonFinite(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(0, 0, complex(math.Inf(1), 0)), matrix.ErrNaNInf)
	require.ErrorIs(t, m.SetRow(1, []complex128{1, complex(math.NaN(), 0)}), matrix.ErrNaNInf)
	require.ErrorIs(t, m.SetRow(1, []complex128{1}), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, m.SetRow(2, []complex128{1, 2}), matrix.ErrOutOfRange)

	_, err = matrix.FromRows([][]complex128{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.FromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}
