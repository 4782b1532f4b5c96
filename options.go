// SPDX-License-Identifier: MIT

package gfcount

import (
	"errors"
	"io"

	"github.com/katalvlaran/gfcount/closedform"
	"github.com/katalvlaran/gfcount/matrix"
	"github.com/katalvlaran/gfcount/roots"
	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by the Enumerator.
var (
	// ErrUnknownPattern indicates that the Rationalizer has no generating
	// function for the requested pattern.
	ErrUnknownPattern = errors.New("gfcount: unknown pattern")

	// ErrNilRationalizer indicates that New was given no Rationalizer.
	ErrNilRationalizer = errors.New("gfcount: rationalizer is nil")
)

// Options configures an Enumerator.
//
//	– Letters:       letters that count towards the length (nil = all).
//	– Threshold:     root clustering distance; default 1e-3.
//	– FormThreshold: largest accepted error of a symbolic constant; default 1e-5.
//	– Strategy:      root-finding strategy; default roots.StrategySquareFree.
//	– MaxCondition:  calibration condition bound; default 1e13.
//	– Logger:        receives Debug records of every closed-form build.
type Options struct {
	Letters       []rune
	Threshold     float64
	FormThreshold float64
	Strategy      roots.Strategy
	MaxCondition  float64
	Logger        logrus.FieldLogger
}

// Option represents a functional option for configuring an Enumerator.
type Option func(*Options)

// DefaultOptions returns the default configuration; its logger discards
// everything.
func DefaultOptions() Options {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	return Options{
		Threshold:     closedform.DefaultThreshold,
		FormThreshold: closedform.DefaultFormThreshold,
		Strategy:      roots.StrategySquareFree,
		MaxCondition:  matrix.DefaultMaxCondition,
		Logger:        silent,
	}
}

// WithLetters restricts counting to the given letters.
func WithLetters(letters ...rune) Option {
	return func(o *Options) {
		o.Letters = append([]rune(nil), letters...)
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

// WithFormThreshold sets the acceptance distance of symbolic constants.
// Non-positive values are ignored.
func WithFormThreshold(t float64) Option {
	return func(o *Options) {
		if t > 0 {
			o.FormThreshold = t
		}
	}
}

// WithRootStrategy selects how denominator roots are found.
func WithRootStrategy(s roots.Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// WithMaxCondition sets the calibration condition bound. Non-positive values are ignored.
func WithMaxCondition(c float64) Option {
	return func(o *Options) {
		if c > 0 {
			o.MaxCondition = c
		}
	}
}

// WithLogger routes Debug records to l. A nil logger is ignored.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
