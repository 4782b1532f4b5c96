// SPDX-License-Identifier: MIT

package symbolic

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
)

// maxExactExponent bounds the integer exponents folded exactly on rationals.
const maxExactExponent = 4096

var half = big.NewRat(1, 2)

// ---------- Pow ----------

// Pow is base^exp.
type Pow struct{ base, exp Expr }

// Base returns the base.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the exponent.
func (p *Pow) Exp() Expr { return p.exp }

// PowOf builds a simplified power. Rational bases with integer exponents fold
// exactly, square roots of perfect squares fold, the square root of a
// negative rational becomes i*sqrt(|r|), and powers of i reduce mod 4.
func PowOf(base, exp Expr) Expr {
	e, expNum := numOf(exp)
	if expNum {
		if e.Sign() == 0 {
			return N(1)
		}
		if e.Cmp(big.NewRat(1, 1)) == 0 {
			return base
		}
	}

	switch b := base.(type) {
	case *Num:
		if b.IsOne() {
			return N(1)
		}
		if !expNum {
			break
		}
		if e.IsInt() && e.Num().IsInt64() {
			if v, ok := ratPow(b.val, e.Num().Int64()); ok {
				return R(v)
			}
			break
		}
		if e.Cmp(half) == 0 {
			return sqrtRat(b.val)
		}
	case imagUnit:
		if expNum && e.IsInt() && e.Num().IsInt64() {
			k := e.Num().Int64() % 4
			if k < 0 {
				k += 4
			}
			return MulOf(ipowImag(int(k))...)
		}
	case *Float:
		if expNum && e.IsInt() && e.Num().IsInt64() {
			return FloatOf(real(ipow(complex(b.val, 0), e.Num().Int64())))
		}
	case *Pow:
		// (x^a)^k = x^(a*k) only for integer k
		if expNum && e.IsInt() {
			return PowOf(b.base, MulOf(b.exp, exp))
		}
	}

	return &Pow{base: base, exp: exp}
}

// SqrtOf returns base^(1/2).
func SqrtOf(base Expr) Expr { return PowOf(base, R(half)) }

func ratPow(r *big.Rat, e int64) (*big.Rat, bool) {
	if e > maxExactExponent || e < -maxExactExponent {
		return nil, false
	}
	if r.Sign() == 0 {
		if e < 0 {
			return nil, false
		}
		return new(big.Rat), true
	}
	neg := e < 0
	if neg {
		e = -e
	}
	k := big.NewInt(e)
	num := new(big.Int).Exp(r.Num(), k, nil)
	den := new(big.Int).Exp(r.Denom(), k, nil)
	if neg {
		num, den = den, num
	}

	return new(big.Rat).SetFrac(num, den), true
}

// sqrtRat folds sqrt(p/q) when p and q are perfect squares and pulls i out
// of negative radicands.
func sqrtRat(r *big.Rat) Expr {
	if r.Sign() < 0 {
		return MulOf(I, sqrtRat(new(big.Rat).Neg(r)))
	}
	p, q := r.Num(), r.Denom()
	sp, sq := new(big.Int).Sqrt(p), new(big.Int).Sqrt(q)
	if new(big.Int).Mul(sp, sp).Cmp(p) == 0 && new(big.Int).Mul(sq, sq).Cmp(q) == 0 {
		return R(new(big.Rat).SetFrac(sp, sq))
	}

	return &Pow{base: R(r), exp: R(half)}
}

func ipowImag(k int) []Expr {
	switch k {
	case 0:
		return []Expr{N(1)}
	case 1:
		return []Expr{I}
	case 2:
		return []Expr{N(-1)}
	default:
		return []Expr{N(-1), I}
	}
}

func (p *Pow) isSqrt() bool {
	e, ok := numOf(p.exp)
	return ok && e.Cmp(half) == 0
}

// needsParens reports whether e must be wrapped when used as a power base.
func needsParens(e Expr) bool {
	switch v := e.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return v.val.Sign() < 0 || !v.val.IsInt()
	case *Float:
		return v.val < 0
	}

	return false
}

func (p *Pow) String() string {
	base := p.base.String()
	if p.isSqrt() {
		return "sqrt(" + base + ")"
	}
	if needsParens(p.base) {
		base = "(" + base + ")"
	}
	exp := p.exp.String()
	switch p.exp.(type) {
	case *Sym, imagUnit:
	default:
		if _, ok := numOf(p.exp); !ok || !isNonNegInt(p.exp) {
			exp = "(" + exp + ")"
		}
	}

	return base + "^" + exp
}

func (p *Pow) LaTeX() string {
	if p.isSqrt() {
		return `\sqrt{` + p.base.LaTeX() + `}`
	}
	base := p.base.LaTeX()
	if needsParens(p.base) {
		base = `\left(` + base + `\right)`
	}

	return base + "^{" + p.exp.LaTeX() + "}"
}

func isNonNegInt(e Expr) bool {
	v, ok := numOf(e)
	return ok && v.IsInt() && v.Sign() >= 0
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return PowOf(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Pow) Eval() (complex128, bool) {
	b, ok := p.base.Eval()
	if !ok {
		return 0, false
	}
	e, ok := p.exp.Eval()
	if !ok {
		return 0, false
	}
	if k, isInt := integral(e); isInt {
		return ipow(b, k), true
	}
	if imag(b) == 0 && real(b) >= 0 && imag(e) == 0 {
		return complex(math.Pow(real(b), real(e)), 0), true
	}

	return cmplx.Pow(b, e), true
}

// ---------- Binomial ----------

// Binomial is C(top, k) for a fixed non-negative integer k, read as the
// polynomial top(top-1)...(top-k+1)/k! so it is defined for any top.
type Binomial struct {
	top Expr
	k   int
}

// BinomialOf returns C(top, k). k < 0 gives 0; k == 0 gives 1; a rational
// top folds exactly.
func BinomialOf(top Expr, k int) Expr {
	if k < 0 {
		return N(0)
	}
	if k == 0 {
		return N(1)
	}
	if t, ok := numOf(top); ok {
		acc := big.NewRat(1, 1)
		for j := 0; j < k; j++ {
			f := new(big.Rat).Sub(t, big.NewRat(int64(j), 1))
			acc.Mul(acc, f)
			acc.Quo(acc, big.NewRat(int64(j+1), 1))
		}
		return R(acc)
	}
	if k == 1 {
		return top
	}

	return &Binomial{top: top, k: k}
}

func (b *Binomial) String() string {
	return "binomial(" + b.top.String() + ", " + strconv.Itoa(b.k) + ")"
}

func (b *Binomial) LaTeX() string {
	return `\binom{` + b.top.LaTeX() + `}{` + strconv.Itoa(b.k) + `}`
}

func (b *Binomial) Sub(name string, value Expr) Expr {
	return BinomialOf(b.top.Sub(name, value), b.k)
}

func (b *Binomial) Eval() (complex128, bool) {
	t, ok := b.top.Eval()
	if !ok {
		return 0, false
	}
	acc := complex(1, 0)
	for j := 0; j < b.k; j++ {
		acc *= (t - complex(float64(j), 0)) / complex(float64(j+1), 0)
	}

	return acc, true
}

// ---------- Indicator ----------

// Indicator is the Kronecker delta: 1 when its argument is zero, else 0.
type Indicator struct{ arg Expr }

// IndicatorOf returns delta(arg). A rational argument folds to 0 or 1.
func IndicatorOf(arg Expr) Expr {
	if v, ok := numOf(arg); ok {
		if v.Sign() == 0 {
			return N(1)
		}
		return N(0)
	}

	return &Indicator{arg: arg}
}

// At returns delta(n - j), which is 1 exactly at index j.
func At(j int) Expr {
	return IndicatorOf(AddOf(Index(), N(int64(-j))))
}

func (d *Indicator) String() string { return "delta(" + d.arg.String() + ")" }

func (d *Indicator) LaTeX() string { return `\delta_{` + d.arg.LaTeX() + `}` }

func (d *Indicator) Sub(name string, value Expr) Expr {
	return IndicatorOf(d.arg.Sub(name, value))
}

func (d *Indicator) Eval() (complex128, bool) {
	v, ok := d.arg.Eval()
	if !ok {
		return 0, false
	}
	if v == 0 {
		return 1, true
	}

	return 0, true
}
