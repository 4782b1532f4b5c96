// SPDX-License-Identifier: MIT

// Package closedform computes the closed form of the coefficients of a
// rational generating function from the roots of its denominator.
//
// For a proper P/Q whose denominator has clustered roots ρ with
// multiplicities m, the n-th coefficient is
//
//	c(n) = Σ_j w_j · C(n+k_j-1, k_j-1) · (-1)^k_j · ρ_j^(-n-k_j)
//
// over the collated (ρ_j, k_j) basis. The weights w are calibrated by
// solving the d×d system basis(n)·w = exact(n), n < d, with partial
// pivoting; the polynomial part of P/Q and the caller's overflow are added
// back as corrections at their own indices.
//
// Errors (sentinel):
//
//	– ErrCalibration  wraps every failure of the calibration solve.
//	– ErrBasisSize    if the multiplicity total differs from the degree.
//
// The numerical causes (matrix.ErrSingular, matrix.ErrIllConditioned) stay
// visible through errors.Is.
package closedform

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gfcount/matrix"
	"github.com/katalvlaran/gfcount/roots"
)

var (
	// ErrCalibration indicates that the weights could not be calibrated.
	ErrCalibration = errors.New("closedform: calibration failed")

	// ErrBasisSize indicates that the collated basis does not have one
	// column per unit of denominator degree.
	ErrBasisSize = errors.New("closedform: basis size does not match degree")
)

const (
	opNew    = "New"
	opFit    = "Fit"
	opVerify = "Verify"
)

func closedformErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func calibrationErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w: %w", tag, ErrCalibration, err)
}

// Default tuning.
const (
	// DefaultThreshold is the root clustering distance.
	DefaultThreshold = 1e-3
	// DefaultFormThreshold is the largest accepted distance between a
	// constant and its symbolic identification.
	DefaultFormThreshold = 1e-5
)

// Options configures New.
//
// Threshold    – clustering distance for roots; default 1e-3.
// MaxCondition – condition bound for the calibration solve; default 1e13.
// Strategy     – root-finding strategy; default roots.StrategySquareFree.
// Reduce       – cancel common factors of numerator and denominator first; default true.
type Options struct {
	Threshold    float64
	MaxCondition float64
	Strategy     roots.Strategy
	Reduce       bool
}

// Option represents a functional option for configuring New.
type Option func(*Options)

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Threshold:    DefaultThreshold,
		MaxCondition: matrix.DefaultMaxCondition,
		Strategy:     roots.StrategySquareFree,
		Reduce:       true,
	}
}

// WithThreshold sets the root clustering distance. Non-positive values are ignored.
func WithThreshold(t float64) Option {
	return func(o *Options) {
		if t > 0 {
			o.Threshold = t
		}
	}
}

// WithMaxCondition sets the condition bound. Non-positive values are ignored.
func WithMaxCondition(c float64) Option {
	return func(o *Options) {
		if c > 0 {
			o.MaxCondition = c
		}
	}
}

// WithStrategy selects the root-finding strategy.
func WithStrategy(s roots.Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithoutReduce keeps numerator and denominator as given.
func WithoutReduce() Option {
	return func(o *Options) {
		o.Reduce = false
	}
}
