// SPDX-License-Identifier: MIT

// Package roots finds, refines, recognizes and clusters the roots of the
// denominator of a rational generating function, and collates them into the
// (root, k) basis used by closed forms.
//
// Pipeline (Analyze):
//
//	FindRoots → Refine → Recognize → Cluster → Collate
//
//   - FindRoots: eigenvalues of companion matrices (gonum mat.Eigen). The
//     default StrategySquareFree first splits the exact polynomial into
//     square-free factors, so a root of multiplicity m comes back as m
//     identical values; StrategyCompanion factors the whole polynomial at once
//     and returns the noisy clusters floating point produces.
//   - Refine: at most two Newton sweeps, skipped once the derivative is flat.
//   - Recognize: snap real and imaginary parts to simple constants when that
//     does not increase |P|.
//   - Cluster: ordered first-match-wins fold within a distance threshold.
//   - Collate: expand clusters to (root, k) terms sorted by real part, then
//     imaginary part, then k.
//
// Errors (sentinel):
//
//	– ErrZeroPolynomial  if the polynomial is identically zero.
//	– ErrNoConvergence   if the eigenvalue solver fails.
//	– ErrUnknownStrategy if a strategy name cannot be parsed.
package roots

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrZeroPolynomial indicates that roots of the zero polynomial were requested.
	ErrZeroPolynomial = errors.New("roots: zero polynomial")

	// ErrNoConvergence indicates that the eigenvalue decomposition did not converge.
	ErrNoConvergence = errors.New("roots: eigenvalue solver did not converge")

	// ErrUnknownStrategy indicates an unrecognized root-finding strategy name.
	ErrUnknownStrategy = errors.New("roots: unknown strategy")
)

const (
	opFind    = "FindRoots"
	opAnalyze = "Analyze"
	opParse   = "ParseStrategy"
)

func rootsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Strategy selects how FindRoots obtains eigenvalues.
type Strategy int

const (
	// StrategySquareFree factors the exact polynomial into square-free parts
	// before taking eigenvalues.
	StrategySquareFree Strategy = iota

	// StrategyCompanion takes the eigenvalues of the full companion matrix.
	StrategyCompanion
)

func (s Strategy) String() string {
	switch s {
	case StrategySquareFree:
		return "square-free"
	case StrategyCompanion:
		return "companion"
	}

	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy accepts "square-free" (or "squarefree") and "companion".
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "square-free", "squarefree":
		return StrategySquareFree, nil
	case "companion":
		return StrategyCompanion, nil
	}

	return 0, rootsErrorf(opParse, fmt.Errorf("%q: %w", name, ErrUnknownStrategy))
}

// Options configures FindRoots and Analyze.
//
// Strategy – root-finding strategy; default StrategySquareFree.
type Options struct {
	Strategy Strategy
}

// Option represents a functional option for configuring root finding.
type Option func(*Options)

// WithStrategy sets the root-finding strategy.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		o.Strategy = s
	}
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{Strategy: StrategySquareFree}
}

// Root is a cluster representative and its multiplicity.
type Root struct {
	Value        complex128
	Multiplicity int
}

// ClusterSet is an ordered list of clusters. Order is the order in which
// clusters were first opened.
type ClusterSet []Root

// Total returns the sum of multiplicities.
func (cs ClusterSet) Total() int {
	total := 0
	for _, r := range cs {
		total += r.Multiplicity
	}

	return total
}

// Term is one (root, k) column of the closed-form basis, 1 <= k <= multiplicity.
type Term struct {
	Root complex128
	K    int
}

// Basis is a collated list of terms.
type Basis []Term
