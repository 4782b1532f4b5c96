// SPDX-License-Identifier: MIT

package roots

import "github.com/katalvlaran/gfcount/poly"

// Analysis records every stage of root analysis for one denominator.
type Analysis struct {
	Poly       Dense
	Raw        []complex128
	Refined    []complex128
	Recognized []Recognized
	Clean      []complex128
	Clusters   ClusterSet
	Basis      Basis
}

// Analyze runs FindRoots → Refine → Recognize → Cluster → Collate on den.
//
// Errors:
//   - whatever FindRoots returns, wrapped with the Analyze tag.
func Analyze(den poly.Poly, threshold float64, opts ...Option) (*Analysis, error) {
	raw, err := FindRoots(den, opts...)
	if err != nil {
		return nil, rootsErrorf(opAnalyze, err)
	}

	a := &Analysis{Poly: FromPoly(den), Raw: raw}
	a.Refined = Refine(a.Poly, raw)
	a.Recognized = Recognize(a.Poly, a.Refined)
	a.Clean = make([]complex128, len(a.Recognized))
	for i, r := range a.Recognized {
		a.Clean[i] = r.Value
	}
	a.Clusters = Cluster(a.Poly, a.Clean, threshold)
	a.Basis = Collate(a.Clusters)

	return a, nil
}
