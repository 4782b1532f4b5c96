// SPDX-License-Identifier: MIT

package gfcount

import (
	"fmt"
	"iter"
	"math/big"

	"github.com/katalvlaran/gfcount/closedform"
	"github.com/katalvlaran/gfcount/series"
	"github.com/katalvlaran/gfcount/symbolic"
	"github.com/sirupsen/logrus"
)

// Operation tags for error wrapping.
const (
	opExact     = "Exact"
	opAlgebraic = "ExtractCoefficientsAlgebraically"
)

// Enumerator answers counting queries for patterns known to its
// Rationalizer. It holds no per-pattern state, so every query rationalizes
// again; keep the *closedform.Solver from ExtractCoefficientsAlgebraically
// to reuse a closed form. Safe for concurrent use if the Rationalizer is.
type Enumerator struct {
	rz   Rationalizer
	opts Options
}

// New builds an Enumerator over rz.
//
// Errors:
//   - ErrNilRationalizer if rz is nil.
func New(rz Rationalizer, opts ...Option) (*Enumerator, error) {
	if rz == nil {
		return nil, ErrNilRationalizer
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Enumerator{rz: rz, opts: o}, nil
}

// Options returns a copy of the configuration.
func (e *Enumerator) Options() Options {
	o := e.opts
	o.Letters = append([]rune(nil), o.Letters...)

	return o
}

func (e *Enumerator) rationalize(op, pattern string) (series.Overflow, series.Rational, error) {
	ov, r, err := e.rz.Rationalize(pattern, e.opts.Letters)
	if err != nil {
		return nil, series.Rational{}, fmt.Errorf("%s: %w", op, err)
	}

	return ov, r, nil
}

// Exact returns the number of words of length n in pattern's language.
//
// Errors:
//   - the Rationalizer's error; series.ErrNotExpandable, series.ErrNegativeIndex.
func (e *Enumerator) Exact(pattern string, n int) (*big.Int, error) {
	ov, r, err := e.rationalize(opExact, pattern)
	if err != nil {
		return nil, err
	}
	v, err := series.Exact(r, n, ov)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExact, err)
	}

	return v, nil
}

// ExactRaw returns coefficient n of the rational tail alone: overflow
// excluded and no rounding. This is the value the closed form is fitted to.
func (e *Enumerator) ExactRaw(pattern string, n int) (*big.Rat, error) {
	_, r, err := e.rationalize(opExact, pattern)
	if err != nil {
		return nil, err
	}
	v, err := series.Coefficient(r, n, nil, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExact, err)
	}

	return v, nil
}

// ExactCoefficients returns the infinite sequence Exact(pattern, 0),
// Exact(pattern, 1), ... Each range over it starts again from n = 0.
func (e *Enumerator) ExactCoefficients(pattern string) (iter.Seq[*big.Int], error) {
	ov, r, err := e.rationalize(opExact, pattern)
	if err != nil {
		return nil, err
	}
	stream, err := series.Stream(r, ov, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opExact, err)
	}

	return func(yield func(*big.Int) bool) {
		for v := range stream {
			if !yield(series.Round(v)) {
				return
			}
		}
	}, nil
}

// ExtractCoefficientsAlgebraically builds the closed form of pattern and
// returns its coefficient function together with the solver, which carries
// the roots, basis and weights.
//
// Errors:
//   - the Rationalizer's error, and everything closedform.New returns.
func (e *Enumerator) ExtractCoefficientsAlgebraically(pattern string) (func(int) float64, *closedform.Solver, error) {
	s, err := e.solver(pattern)
	if err != nil {
		return nil, nil, err
	}

	return s.Coefficient, s, nil
}

// EnumerateCoefficients returns the infinite, restartable sequence of
// closed-form coefficients of pattern.
func (e *Enumerator) EnumerateCoefficients(pattern string) (iter.Seq[float64], error) {
	s, err := e.solver(pattern)
	if err != nil {
		return nil, err
	}

	return s.Coefficients(), nil
}

// AlgebraicForm returns the closed form of pattern as an expression in n.
func (e *Enumerator) AlgebraicForm(pattern string) (symbolic.Expr, error) {
	s, err := e.solver(pattern)
	if err != nil {
		return nil, err
	}

	return s.AlgebraicForm(e.opts.FormThreshold), nil
}

func (e *Enumerator) solver(pattern string) (*closedform.Solver, error) {
	ov, r, err := e.rationalize(opAlgebraic, pattern)
	if err != nil {
		return nil, err
	}

	log := e.opts.Logger.WithFields(logrus.Fields{
		"pattern": pattern,
		"degree":  r.Den.Degree(),
	})
	s, err := closedform.New(r, ov,
		closedform.WithThreshold(e.opts.Threshold),
		closedform.WithMaxCondition(e.opts.MaxCondition),
		closedform.WithStrategy(e.opts.Strategy),
	)
	if err != nil {
		log.WithError(err).Debug("closed form failed")
		return nil, fmt.Errorf("%s: %w", opAlgebraic, err)
	}

	fields := logrus.Fields{
		"terms":     len(s.Basis()),
		"condition": s.Condition(),
	}
	if a := s.Analysis(); a != nil {
		fields["roots"] = a.Clean
		fields["clusters"] = len(a.Clusters)
	}
	log.WithFields(fields).Debug("closed form calibrated")

	return s, nil
}

// EvaluateExpression substitutes n into expr and resolves every indicator.
func EvaluateExpression(expr symbolic.Expr, n int) (complex128, error) {
	return symbolic.Evaluate(expr, n)
}
