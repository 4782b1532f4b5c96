// SPDX-License-Identifier: MIT

package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// ---------- Add ----------

// Add is a sum of at least two terms.
type Add struct{ terms []Expr }

// Terms returns the summands.
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

// AddOf builds a simplified sum. Nested sums are flattened, exact constants
// are folded, and terms that differ only by a rational coefficient are
// combined. Term order is first appearance, with the constant last.
func AddOf(terms ...Expr) Expr {
	type group struct {
		coeff *big.Rat
		rest  Expr
	}
	var (
		groups   []*group
		byKey    = map[string]*group{}
		constant = new(big.Rat)
		fl       float64
		hasFloat bool
	)

	var visit func(t Expr)
	visit = func(t Expr) {
		switch v := t.(type) {
		case *Add:
			for _, u := range v.terms {
				visit(u)
			}
		case *Num:
			constant.Add(constant, v.val)
		case *Float:
			fl += v.val
			hasFloat = true
		default:
			c, rest := splitCoeff(t)
			k := key(rest)
			g, ok := byKey[k]
			if !ok {
				g = &group{coeff: new(big.Rat), rest: rest}
				byKey[k] = g
				groups = append(groups, g)
			}
			g.coeff.Add(g.coeff, c)
		}
	}
	for _, t := range terms {
		visit(t)
	}

	out := make([]Expr, 0, len(groups)+1)
	for _, g := range groups {
		if g.coeff.Sign() == 0 {
			continue
		}
		out = append(out, MulOf(R(g.coeff), g.rest))
	}
	if hasFloat {
		c, _ := constant.Float64()
		if v := fl + c; v != 0 {
			out = append(out, FloatOf(v))
		}
	} else if constant.Sign() != 0 {
		out = append(out, R(constant))
	}

	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}

	return &Add{terms: out}
}

// splitCoeff separates a leading rational coefficient from a product.
func splitCoeff(t Expr) (*big.Rat, Expr) {
	m, ok := t.(*Mul)
	if !ok {
		return big.NewRat(1, 1), t
	}
	c, ok := numOf(m.factors[0])
	if !ok {
		return big.NewRat(1, 1), t
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return c, rest[0]
	}

	return c, &Mul{factors: rest}
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		switch {
		case i == 0:
			b.WriteString(s)
		case strings.HasPrefix(s, "-"):
			b.WriteString(" - ")
			b.WriteString(s[1:])
		default:
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}

	return b.String()
}

func (a *Add) LaTeX() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		switch {
		case i == 0:
			b.WriteString(s)
		case strings.HasPrefix(s, "-"):
			b.WriteString(" - ")
			b.WriteString(s[1:])
		default:
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}

	return b.String()
}

func (a *Add) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(name, value)
	}

	return AddOf(out...)
}

func (a *Add) Eval() (complex128, bool) {
	var acc complex128
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return 0, false
		}
		acc += v
	}

	return acc, true
}

// ---------- Mul ----------

// Mul is a product of at least two factors. A numeric coefficient, when
// present, is always the first factor.
type Mul struct{ factors []Expr }

// Factors returns the factors.
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

// MulOf builds a simplified product: nested products are flattened, exact
// constants folded, powers of i reduced, and the remaining factors sorted by
// their printed form (exact key on ties).
func MulOf(factors ...Expr) Expr {
	var (
		coeff    = big.NewRat(1, 1)
		fl       = 1.0
		hasFloat bool
		imags    int
		others   []Expr
	)

	var visit func(f Expr)
	visit = func(f Expr) {
		switch v := f.(type) {
		case *Mul:
			for _, u := range v.factors {
				visit(u)
			}
		case *Num:
			coeff.Mul(coeff, v.val)
		case *Float:
			fl *= v.val
			hasFloat = true
		case imagUnit:
			imags++
		default:
			others = append(others, f)
		}
	}
	for _, f := range factors {
		visit(f)
	}

	switch imags % 4 {
	case 2, 3:
		coeff.Neg(coeff)
	}
	if coeff.Sign() == 0 {
		return N(0)
	}

	sort.SliceStable(others, func(i, j int) bool {
		si, sj := others[i].String(), others[j].String()
		if si != sj {
			return si < sj
		}
		return key(others[i]) < key(others[j])
	})
	if imags%2 == 1 {
		others = append(others, I)
	}

	out := make([]Expr, 0, len(others)+1)
	if hasFloat {
		c, _ := coeff.Float64()
		v := c * fl
		if v == 0 {
			return N(0)
		}
		if v != 1 || len(others) == 0 {
			out = append(out, FloatOf(v))
		}
	} else if coeff.Cmp(big.NewRat(1, 1)) != 0 || len(others) == 0 {
		out = append(out, R(coeff))
	}
	out = append(out, others...)

	if len(out) == 1 {
		return out[0]
	}

	return &Mul{factors: out}
}

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

func (m *Mul) String() string {
	parts := make([]string, 0, len(m.factors))
	prefix := ""
	for i, f := range m.factors {
		if i == 0 {
			if c, ok := numOf(f); ok && c.Cmp(big.NewRat(-1, 1)) == 0 {
				prefix = "-"
				continue
			}
		}
		if _, isAdd := f.(*Add); isAdd {
			parts = append(parts, "("+f.String()+")")
			continue
		}
		parts = append(parts, f.String())
	}

	return prefix + strings.Join(parts, "*")
}

func (m *Mul) LaTeX() string {
	parts := make([]string, 0, len(m.factors))
	prefix := ""
	for i, f := range m.factors {
		if i == 0 {
			if c, ok := numOf(f); ok && c.Cmp(big.NewRat(-1, 1)) == 0 {
				prefix = "-"
				continue
			}
		}
		if _, isAdd := f.(*Add); isAdd {
			parts = append(parts, `\left(`+f.LaTeX()+`\right)`)
			continue
		}
		parts = append(parts, f.LaTeX())
	}

	return prefix + strings.Join(parts, " ")
}

func (m *Mul) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(name, value)
	}

	return MulOf(out...)
}

func (m *Mul) Eval() (complex128, bool) {
	acc := complex(1, 0)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return 0, false
		}
		acc *= v
	}

	return acc, true
}
