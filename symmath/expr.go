// Package symmath is a small deterministic symbolic algebra kernel built on
// exact rational arithmetic. It covers the capability set the moment
// expansion pipeline needs: n-ary sums and products, powers, ln/exp, partial
// differentiation, substitution, expansion and a linear solver.
//
// Expressions are immutable. Constructors simplify eagerly, and both sum
// terms and product factors are kept in a deterministic order, so two
// expressions assembled along different routes from the same algebra reach
// the same structure and compare Equal.
package symmath

import (
	"fmt"
	"math/big"
)

// Expr is an immutable symbolic expression.
type Expr interface {
	// Simplify returns the canonical form of the expression.
	Simplify() Expr
	// String renders the expression; the output parses back via Parse.
	String() string
	// Sub substitutes value for every occurrence of the named symbol.
	Sub(name string, value Expr) Expr
	// Diff returns the partial derivative with respect to the named symbol.
	Diff(name string) Expr
	// Eval reduces the expression to a number if it contains no symbols.
	Eval() (*Num, bool)
	// Equal is structural equality of canonical forms.
	Equal(other Expr) bool
}

// ============================================================
// Num — exact rational constant
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func F(p, q int64) *Num {
	if q == 0 {
		panic("symmath: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func NumFromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }
func (n *Num) Eval() (*Num, bool)    { return n, true }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }

func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat    { return new(big.Rat).Set(n.val) }
func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

var ratOne = new(big.Rat).SetInt64(1)

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }

func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("symmath: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}

// numIntPow raises a to an integer power with exact arithmetic.
func numIntPow(a *Num, e int64) *Num {
	if e < 0 {
		return numRecip(numIntPow(a, -e))
	}
	out := N(1)
	for i := int64(0); i < e; i++ {
		out = numMul(out, a)
	}
	return out
}

// Factorial returns n! as an exact constant.
func Factorial(n int) *Num {
	if n < 0 {
		panic(fmt.Sprintf("symmath: factorial of %d", n))
	}
	out := N(1)
	for i := 2; i <= n; i++ {
		out = numMul(out, N(int64(i)))
	}
	return out
}

// ============================================================
// Sym — named symbol
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) Name() string   { return s.name }

func (s *Sym) Sub(name string, value Expr) Expr {
	if s.name == name {
		return value
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Eval() (*Num, bool)    { return nil, false }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }

// ============================================================
// package-level conveniences
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }

func Sub(e Expr, name string, value Expr) Expr { return e.Sub(name, value).Simplify() }

func Diff(e Expr, name string) Expr { return e.Diff(name).Simplify() }

// DiffN applies Diff n times.
func DiffN(e Expr, name string, n int) Expr {
	out := e
	for i := 0; i < n; i++ {
		out = Diff(out, name)
	}
	return out
}

func isZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsZero()
}

func isOne(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.IsOne()
}
