// SPDX-License-Identifier: MIT

package config

import "strconv"

func ints(cs ...int64) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = strconv.FormatInt(c, 10)
	}

	return out
}

// Catalog returns the built-in series: languages whose closed forms
// exercise golden-ratio roots, complex roots of unity, high multiplicities
// and overflow corrections.
func Catalog() []Series {
	return []Series{
		{
			// words over {0,1} starting with 0, ending with 1, no "11"
			Name:        "separated",
			Pattern:     "(00*1)*",
			Numerator:   ints(1, -1),
			Denominator: ints(1, -1, -1),
		},
		{
			// 1/((1-z^3)^2 (1-z^2)^3)
			Name:        "roots-of-unity",
			Pattern:     "(000)*(111)*(22)*(33)*(44)*",
			Numerator:   ints(1),
			Denominator: ints(1, 0, -3, -2, 3, 6, 0, -6, -3, 2, 3, 0, -1),
		},
		{
			// ways to give change with coins 1..5
			Name:        "change",
			Pattern:     "1*(22)*(333)*(4444)*(55555)*",
			Numerator:   ints(1),
			Denominator: ints(1, -1, -1, 0, 0, 1, 1, 1, -1, -1, -1, 0, 0, 1, 1, -1),
		},
		{
			// compositions of n into exactly five parts
			Name:        "five-parts",
			Pattern:     "11*11*11*11*11*",
			Numerator:   ints(0, 0, 0, 0, 0, 1),
			Denominator: ints(1, -5, 10, -10, 5, -1),
		},
		{
			Name:        "compositions",
			Pattern:     "(11*)*",
			Numerator:   ints(1, -1),
			Denominator: ints(1, -2),
		},
		{
			// 1/((1-z)^4 (1+z)) and the lone word "e"
			Name:        "letters-or-e",
			Pattern:     "a*b*c*(dd)*|e",
			Numerator:   ints(1),
			Denominator: ints(1, -3, 2, 2, -3, 1),
			Overflow:    map[string]string{"1": "1"},
		},
	}
}
