// SPDX-License-Identifier: MIT

package roots

import (
	"cmp"
	"math/cmplx"
	"slices"
)

// Cluster folds roots left to right into clusters. A root joins the first
// existing cluster whose representative lies within threshold (|a-b| <=
// threshold); the representative becomes whichever of the two has the
// smaller |P|, ties keeping the existing one, and stays in the same slot.
// A root matching no cluster opens a new one at the end.
//
// A replaced representative is not moved to the end of the set, so cluster
// order is order of first appearance. Basis order does not depend on it,
// since Collate sorts.
//
// The result depends on input order; callers must pass roots in a fixed order.
//
// Complexity:
//   - Time O(len(roots) · len(clusters)), Space O(len(clusters)).
func Cluster(p Dense, roots []complex128, threshold float64) ClusterSet {
	var cs ClusterSet
	for _, r := range roots {
		added := false
		for i := range cs {
			if cmplx.Abs(cs[i].Value-r) > threshold {
				continue
			}
			if p.residual(r) < p.residual(cs[i].Value) {
				cs[i].Value = r
			}
			cs[i].Multiplicity++
			added = true
			break
		}
		if !added {
			cs = append(cs, Root{Value: r, Multiplicity: 1})
		}
	}

	return cs
}

// Collate expands every cluster into the terms (root, 1) ... (root, m) and
// sorts them by real part, then imaginary part, then k.
func Collate(cs ClusterSet) Basis {
	out := make(Basis, 0, cs.Total())
	for _, r := range cs {
		for k := 1; k <= r.Multiplicity; k++ {
			out = append(out, Term{Root: r.Value, K: k})
		}
	}
	slices.SortStableFunc(out, func(a, b Term) int {
		if c := cmp.Compare(real(a.Root), real(b.Root)); c != 0 {
			return c
		}
		if c := cmp.Compare(imag(a.Root), imag(b.Root)); c != 0 {
			return c
		}

		return cmp.Compare(a.K, b.K)
	})

	return out
}

// Clusters folds a basis back into clusters of identical roots, in basis
// order. Collate(b.Clusters()) reproduces a collated b.
func (b Basis) Clusters() ClusterSet {
	var cs ClusterSet
	for _, t := range b {
		i := slices.IndexFunc(cs, func(r Root) bool { return r.Value == t.Root })
		if i < 0 {
			cs = append(cs, Root{Value: t.Root, Multiplicity: 1})
			continue
		}
		cs[i].Multiplicity++
	}

	return cs
}

// Degree is the number of terms, which equals the multiplicity total.
func (b Basis) Degree() int { return len(b) }
