// SPDX-License-Identifier: MIT

// Package symbolic is a small expression tree for closed forms of sequence
// coefficients: exact rationals, float literals, the imaginary unit, symbols,
// sums, products, powers, binomials in a symbol and the Kronecker indicator.
//
// Constructors (AddOf, MulOf, PowOf, ...) simplify as they build, so exact
// numeric sub-expressions fold to a single Num and printing is stable.
// Every node renders as plain text (String) and LaTeX, supports substitution
// (Sub) and numeric evaluation (Eval) in complex128.
package symbolic

import (
	"math"
	"math/big"
	"math/cmplx"
	"strconv"
	"strings"
)

// IndexName is the symbol the coefficient index is bound to.
const IndexName = "n"

// floatDigits is the number of significant digits printed for Float literals.
const floatDigits = 5

// Expr is a node of the expression tree. Values are immutable.
type Expr interface {
	String() string
	LaTeX() string
	// Sub replaces every occurrence of the named symbol by value and re-simplifies.
	Sub(name string, value Expr) Expr
	// Eval returns the numeric value; ok is false while a free symbol remains.
	Eval() (complex128, bool)
}

// Equal reports structural equality of two simplified expressions. Float
// literals compare by their full float64 value, not their printed digits.
func Equal(a, b Expr) bool { return key(a) == key(b) }

// key is an exact identity for e. It matches String except that Float
// literals are written with every digit, so two floats that print alike
// never collide.
func key(e Expr) string {
	switch v := e.(type) {
	case *Float:
		return "float(" + strconv.FormatFloat(v.val, 'g', -1, 64) + ")"
	case *Add:
		parts := make([]string, len(v.terms))
		for i, t := range v.terms {
			parts[i] = key(t)
		}
		return "add(" + strings.Join(parts, ", ") + ")"
	case *Mul:
		parts := make([]string, len(v.factors))
		for i, f := range v.factors {
			parts[i] = key(f)
		}
		return "mul(" + strings.Join(parts, ", ") + ")"
	case *Pow:
		return "pow(" + key(v.base) + ", " + key(v.exp) + ")"
	case *Binomial:
		return "binomial(" + key(v.top) + ", " + strconv.Itoa(v.k) + ")"
	case *Indicator:
		return "delta(" + key(v.arg) + ")"
	default:
		return e.String()
	}
}

// ---------- Num ----------

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// N returns the integer constant n.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F returns the fraction p/q. q must be non-zero.
func F(p, q int64) *Num { return &Num{val: big.NewRat(p, q)} }

// R wraps a copy of r.
func R(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

// Rat returns a copy of the value.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

func (n *Num) IsZero() bool { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool  { return n.val.IsInt() && n.val.Num().IsInt64() && n.val.Num().Int64() == 1 }

func (n *Num) String() string { return n.val.RatString() }

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	num := new(big.Int).Abs(n.val.Num())
	s := `\frac{` + num.String() + `}{` + n.val.Denom().String() + `}`
	if n.val.Sign() < 0 {
		return "-" + s
	}

	return s
}

func (n *Num) Sub(string, Expr) Expr { return n }

func (n *Num) Eval() (complex128, bool) {
	f, _ := n.val.Float64()

	return complex(f, 0), true
}

func numOf(e Expr) (*big.Rat, bool) {
	if n, ok := e.(*Num); ok {
		return n.val, true
	}

	return nil, false
}

// AsRat reports whether e is an exact rational constant and returns a copy.
func AsRat(e Expr) (*big.Rat, bool) {
	v, ok := numOf(e)
	if !ok {
		return nil, false
	}

	return new(big.Rat).Set(v), true
}

// ---------- Float ----------

// Float is an inexact literal. It prints with five significant digits but
// evaluates with the full float64 it was built from.
type Float struct{ val float64 }

// FloatOf returns the literal v.
func FloatOf(v float64) *Float { return &Float{val: v} }

// Value returns the stored float64.
func (f *Float) Value() float64 { return f.val }

func (f *Float) String() string { return strconv.FormatFloat(f.val, 'g', floatDigits, 64) }

func (f *Float) LaTeX() string { return f.String() }

func (f *Float) Sub(string, Expr) Expr { return f }

func (f *Float) Eval() (complex128, bool) { return complex(f.val, 0), true }

// ---------- imaginary unit ----------

type imagUnit struct{}

// I is the imaginary unit.
var I Expr = imagUnit{}

func (imagUnit) String() string           { return "i" }
func (imagUnit) LaTeX() string            { return "i" }
func (imagUnit) Sub(string, Expr) Expr    { return I }
func (imagUnit) Eval() (complex128, bool) { return 1i, true }

// ---------- Sym ----------

// Sym is a named free symbol.
type Sym struct{ name string }

// S returns the symbol called name.
func S(name string) *Sym { return &Sym{name: name} }

// Index returns the coefficient index symbol n.
func Index() *Sym { return S(IndexName) }

func (s *Sym) Name() string   { return s.name }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string  { return s.name }

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}

	return s
}

func (s *Sym) Eval() (complex128, bool) { return 0, false }

// ---------- numeric helpers ----------

// ipow raises z to an integer power by binary exponentiation.
func ipow(z complex128, e int64) complex128 {
	if e < 0 {
		return 1 / ipow(z, -e)
	}
	acc := complex(1, 0)
	for e > 0 {
		if e&1 == 1 {
			acc *= z
		}
		z *= z
		e >>= 1
	}

	return acc
}

// integral reports whether z is a real integer that fits in int64 and returns it.
func integral(z complex128) (int64, bool) {
	if imag(z) != 0 || math.IsInf(real(z), 0) || math.IsNaN(real(z)) {
		return 0, false
	}
	r := real(z)
	if r != math.Trunc(r) || math.Abs(r) > 1<<53 {
		return 0, false
	}

	return int64(r), true
}

func finite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}
