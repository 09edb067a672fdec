package symmath

import (
	"math"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Add — n-ary sum
// ============================================================

type Add struct{ terms []Expr }

// AddOf builds the canonical sum of the given terms: nested sums are
// flattened, like terms are collected by their non-numeric part, and the
// surviving terms are ordered deterministically.
func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	type slot struct {
		coeff *Num
		body  Expr
	}
	acc := N(0)
	byKey := map[string]*slot{}
	keys := []string{}
	for _, t := range flat {
		if n, ok := t.(*Num); ok {
			acc = numAdd(acc, n)
			continue
		}
		coeff, body := splitCoeff(t)
		key := body.String()
		if s, ok := byKey[key]; ok {
			s.coeff = numAdd(s.coeff, coeff)
		} else {
			byKey[key] = &slot{coeff: coeff, body: body}
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([]Expr, 0, len(keys)+1)
	for _, key := range keys {
		s := byKey[key]
		if s.coeff.IsZero() {
			continue
		}
		if s.coeff.IsOne() {
			out = append(out, s.body)
		} else {
			out = append(out, MulOf(s.coeff, s.body))
		}
	}
	if !acc.IsZero() {
		out = append(out, acc)
	}
	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

// splitCoeff separates a leading numeric coefficient from a term.
func splitCoeff(e Expr) (*Num, Expr) {
	m, ok := e.(*Mul)
	if !ok || len(m.factors) < 2 {
		return N(1), e
	}
	coeff, ok := m.factors[0].(*Num)
	if !ok {
		return N(1), e
	}
	rest := m.factors[1:]
	if len(rest) == 1 {
		return coeff, rest[0]
	}
	return coeff, &Mul{factors: rest}
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		neg, mag := splitSign(t)
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(mag.String())
	}
	return b.String()
}

// splitSign reports whether a term carries a negative numeric coefficient
// and returns its magnitude for rendering.
func splitSign(e Expr) (bool, Expr) {
	switch v := e.(type) {
	case *Num:
		if v.IsNegative() {
			return true, numNeg(v)
		}
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok && c.IsNegative() {
			pos := numNeg(c)
			rest := v.factors[1:]
			if pos.IsOne() && len(rest) == 1 {
				return true, rest[0]
			}
			if pos.IsOne() {
				return true, &Mul{factors: rest}
			}
			return true, &Mul{factors: append([]Expr{pos}, rest...)}
		}
	}
	return false, e
}

func (a *Add) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(name, value)
	}
	return AddOf(out...)
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return AddOf(out...)
}

func (a *Add) Eval() (*Num, bool) {
	acc := N(0)
	for _, t := range a.terms {
		v, ok := t.Eval()
		if !ok {
			return nil, false
		}
		acc = numAdd(acc, v)
	}
	return acc, true
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

// Terms exposes the term list read-only.
func (a *Add) Terms() []Expr { return a.terms }

// ============================================================
// Mul — n-ary product
// ============================================================

type Mul struct{ factors []Expr }

// MulOf builds the canonical product of the given factors: nested products
// are flattened, numeric factors fold into a single leading coefficient, and
// factors sharing a base merge by adding exponents.
func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	type slot struct {
		base Expr
		exps []Expr
	}
	coeff := N(1)
	byKey := map[string]*slot{}
	keys := []string{}
	for _, f := range flat {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		base, exp := Expr(f), Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		if s, ok := byKey[key]; ok {
			s.exps = append(s.exps, exp)
		} else {
			byKey[key] = &slot{base: base, exps: []Expr{exp}}
			keys = append(keys, key)
		}
	}
	if coeff.IsZero() {
		return N(0)
	}

	factors := make([]Expr, 0, len(keys))
	for _, key := range keys {
		s := byKey[key]
		f := PowOf(s.base, AddOf(s.exps...))
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		factors = append(factors, f)
	}
	if coeff.IsZero() {
		return N(0)
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i].String() < factors[j].String() })

	if len(factors) == 0 {
		return coeff
	}
	if coeff.IsOne() {
		if len(factors) == 1 {
			return factors[0]
		}
		return &Mul{factors: factors}
	}
	return &Mul{factors: append([]Expr{coeff}, factors...)}
}

func (m *Mul) String() string {
	parts := make([]string, len(m.factors))
	for i, f := range m.factors {
		if _, ok := f.(*Add); ok {
			parts[i] = "(" + f.String() + ")"
		} else {
			parts[i] = f.String()
		}
	}
	return strings.Join(parts, "*")
}

func (m *Mul) Sub(name string, value Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(name, value)
	}
	return MulOf(out...)
}

func (m *Mul) Diff(name string) Expr {
	// Product rule over all factors.
	terms := make([]Expr, len(m.factors))
	for i := range m.factors {
		parts := make([]Expr, 0, len(m.factors))
		parts = append(parts, m.factors[i].Diff(name))
		for j, f := range m.factors {
			if j != i {
				parts = append(parts, f)
			}
		}
		terms[i] = MulOf(parts...)
	}
	return AddOf(terms...)
}

func (m *Mul) Eval() (*Num, bool) {
	acc := N(1)
	for _, f := range m.factors {
		v, ok := f.Eval()
		if !ok {
			return nil, false
		}
		acc = numMul(acc, v)
	}
	return acc, true
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

// Factors exposes the factor list read-only.
func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Pow — base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok {
		if en.IsZero() {
			return N(1)
		}
		if en.IsOne() {
			return base
		}
	}
	if bn, ok := base.(*Num); ok {
		if bn.IsZero() {
			// 0^0 and 0^negative stay unevaluated.
			if en, ok := exp.(*Num); ok && !en.IsZero() && !en.IsNegative() {
				return N(0)
			}
			return &Pow{base: base, exp: exp}
		}
		if bn.IsOne() {
			return N(1)
		}
		if en, ok := exp.(*Num); ok && en.IsInteger() {
			if e := en.val.Num().Int64(); e >= -64 && e <= 64 {
				return numIntPow(bn, e)
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		return PowOf(inner.base, MulOf(inner.exp, exp))
	}
	return &Pow{base: base, exp: exp}
}

func (p *Pow) String() string {
	baseStr := p.base.String()
	switch p.base.(type) {
	case *Add, *Mul:
		baseStr = "(" + baseStr + ")"
	}
	expStr := p.exp.String()
	if n, ok := p.exp.(*Num); !ok || !n.IsInteger() || n.IsNegative() {
		expStr = "(" + expStr + ")"
	}
	return baseStr + "^" + expStr
}

func (p *Pow) Sub(name string, value Expr) Expr {
	return PowOf(p.base.Sub(name, value), p.exp.Sub(name, value))
}

func (p *Pow) Diff(name string) Expr {
	if _, ok := p.exp.(*Num); ok {
		// d(u^c) = c*u^(c-1)*u'
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), p.base.Diff(name))
	}
	if _, ok := p.base.(*Num); ok {
		// d(c^v) = c^v*ln(c)*v'
		return MulOf(PowOf(p.base, p.exp), LnOf(p.base), p.exp.Diff(name))
	}
	// d(u^v) = u^v*(v'*ln(u) + v*u'/u)
	return MulOf(PowOf(p.base, p.exp), AddOf(
		MulOf(p.exp.Diff(name), LnOf(p.base)),
		MulOf(p.exp, p.base.Diff(name), PowOf(p.base, N(-1))),
	))
}

// Eval stays within exact arithmetic: non-integer exponents have no exact
// rational value in general and report failure instead of approximating.
func (p *Pow) Eval() (*Num, bool) {
	b, okB := p.base.Eval()
	e, okE := p.exp.Eval()
	if !okB || !okE || !e.IsInteger() {
		return nil, false
	}
	v := e.val.Num().Int64()
	if v < -64 || v > 64 || (b.IsZero() && v <= 0) {
		return nil, false
	}
	return numIntPow(b, v), true
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) Base() Expr     { return p.base }
func (p *Pow) Exponent() Expr { return p.exp }

// ============================================================
// Func — ln and exp
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func LnOf(arg Expr) Expr  { return (&Func{name: "ln", arg: arg}).Simplify() }
func ExpOf(arg Expr) Expr { return (&Func{name: "exp", arg: arg}).Simplify() }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	switch f.name {
	case "ln":
		if isOne(arg) {
			return N(0)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if isZero(arg) {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) Sub(name string, value Expr) Expr {
	return (&Func{name: f.name, arg: f.arg.Sub(name, value)}).Simplify()
}

func (f *Func) Diff(name string) Expr {
	du := f.arg.Diff(name)
	switch f.name {
	case "ln":
		return MulOf(PowOf(f.arg, N(-1)), du)
	case "exp":
		return MulOf(ExpOf(f.arg), du)
	}
	panic("symmath: unknown function " + f.name)
}

func (f *Func) Eval() (*Num, bool) {
	v, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	var out float64
	switch f.name {
	case "ln":
		out = math.Log(v.Float64())
	case "exp":
		out = math.Exp(v.Float64())
	default:
		return nil, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return nil, false
	}
	r := new(big.Rat).SetFloat64(out)
	if r == nil {
		return nil, false
	}
	return &Num{val: r}, true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }
