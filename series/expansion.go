// SPDX-License-Identifier: MIT

package series

import (
	"iter"
	"math/big"

	"github.com/katalvlaran/gfcount/poly"
)

// Expansion is a stateful coefficient iterator. It carries the raw series
// values c_0..c_{n-1} of P/(1−Q) and produces c_n with the recurrence
//
//	c_n = p_n + Σ_{j=1..min(n, deg Q)} q_j · c_{n−j}
//
// which equals Σ_{i≤n} [z^n] P·Q^i, i.e. exactly what Coefficient returns.
// An Expansion is not safe for concurrent use.
type Expansion struct {
	p           poly.Poly  // P(z) = Num/Den₀ (sparse)
	q           []*big.Rat // dense q_1..q_deg, q[0] unused
	history     []*big.Rat // raw c_0..c_{n-1} (overflow excluded)
	overflow    Overflow
	useOverflow bool
	zeroTop     bool
}

// NewExpansion prepares an iterator positioned at n = 0.
//
// Errors:
//   - ErrZeroDenominator, ErrNotExpandable (only checked for a non-zero Num).
func NewExpansion(r Rational, overflow Overflow, useOverflow bool) (*Expansion, error) {
	e := &Expansion{useOverflow: useOverflow}
	if useOverflow {
		e.overflow = overflow.Clone()
	}

	top := poly.Process(r.Num)
	if top.IsZero() {
		e.zeroTop = true
		return e, nil
	}
	if err := r.Validate(); err != nil {
		return nil, seriesErrorf(opExpansion, err)
	}

	p, q := normalForm(top, r.Den)
	e.p = p
	deg := q.Degree()
	e.q = make([]*big.Rat, deg+1)
	for j := 1; j <= deg; j++ {
		e.q[j] = q.Coeff(j)
	}

	return e, nil
}

// Index returns the index of the value the next call to Next produces.
func (e *Expansion) Index() int { return len(e.history) }

// Next returns the coefficient at Index() and advances.
func (e *Expansion) Next() *big.Rat {
	n := len(e.history)
	raw := new(big.Rat)
	if !e.zeroTop {
		raw.Set(e.p.Coeff(n))
		term := new(big.Rat)
		for j := 1; j < len(e.q) && j <= n; j++ {
			if e.q[j].Sign() == 0 {
				continue
			}
			term.Mul(e.q[j], e.history[n-j])
			raw.Add(raw, term)
		}
	}
	e.history = append(e.history, raw)

	out := new(big.Rat).Set(raw)
	if e.useOverflow {
		out.Add(out, e.overflow.At(n))
	}

	return finish(out, e.useOverflow)
}

// All yields (index, value) pairs from the current position onwards.
// Breaking out of the loop leaves the Expansion positioned after the last
// yielded index, so a later All resumes there.
func (e *Expansion) All() iter.Seq2[int, *big.Rat] {
	return func(yield func(int, *big.Rat) bool) {
		for {
			n := e.Index()
			if !yield(n, e.Next()) {
				return
			}
		}
	}
}

// Stream returns an infinite, restartable sequence with the values of
// Coefficients; each range loop starts a fresh Expansion, so the cost is
// O(deg Q) per element instead of a full re-inversion.
func Stream(r Rational, overflow Overflow, useOverflow bool) (iter.Seq[*big.Rat], error) {
	if _, err := NewExpansion(r, overflow, useOverflow); err != nil {
		return nil, err
	}
	frozen := Rational{Num: poly.Process(r.Num), Den: poly.Process(r.Den)}
	ov := overflow.Clone()

	return func(yield func(*big.Rat) bool) {
		e, err := NewExpansion(frozen, ov, useOverflow)
		if err != nil {
			return
		}
		for {
			if !yield(e.Next()) {
				return
			}
		}
	}, nil
}

// Truncate returns the first n raw coefficients of r (overflow excluded, no
// rounding): the calibration targets of the closed-form solver.
func Truncate(r Rational, n int) ([]*big.Rat, error) {
	if n < 0 {
		return nil, seriesErrorf(opTruncate, ErrNegativeIndex)
	}
	e, err := NewExpansion(r, nil, false)
	if err != nil {
		return nil, seriesErrorf(opTruncate, err)
	}
	out := make([]*big.Rat, n)
	for i := range out {
		out[i] = e.Next()
	}

	return out, nil
}
