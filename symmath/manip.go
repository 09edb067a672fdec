package symmath

import (
	"fmt"
	"sort"
)

// Expand distributes products over sums and unrolls small nonnegative
// integer powers, then simplifies.
func Expand(e Expr) Expr { return expand(e.Simplify()).Simplify() }

func expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = expand(t)
		}
		return AddOf(out...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = expand(f)
		}
		for i, f := range factors {
			a, ok := f.(*Add)
			if !ok {
				continue
			}
			rest := make([]Expr, 0, len(factors)-1)
			for j, g := range factors {
				if j != i {
					rest = append(rest, g)
				}
			}
			terms := make([]Expr, len(a.terms))
			for k, t := range a.terms {
				terms[k] = expand(MulOf(append([]Expr{t}, rest...)...))
			}
			return AddOf(terms...)
		}
		return MulOf(factors...)
	case *Pow:
		base := expand(v.base)
		// Integer powers of sums multiply out term by term. The term
		// lists are combined directly; routing the partial products
		// back through MulOf would re-merge them into the original
		// power and never terminate.
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			if e := n.val.Num().Int64(); e >= 2 && e <= 16 {
				if a, ok := base.(*Add); ok {
					acc := []Expr{N(1)}
					for i := int64(0); i < e; i++ {
						next := make([]Expr, 0, len(acc)*len(a.terms))
						for _, x := range acc {
							for _, t := range a.terms {
								next = append(next, MulOf(x, t))
							}
						}
						acc = next
					}
					return AddOf(acc...)
				}
			}
		}
		return PowOf(base, expand(v.exp))
	}
	return e
}

// FreeSymbols returns the set of symbol names occurring in the expression.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

// FreeSymbolList returns the free symbols in sorted order.
func FreeSymbolList(e Expr) []string {
	set := FreeSymbols(e)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

// Contains reports whether the named symbol occurs in the expression.
func Contains(e Expr, name string) bool {
	_, ok := FreeSymbols(e)[name]
	return ok
}

// SolveFor solves expr == 0 for the named symbol, which must occur linearly.
// It returns the unique solution, or an error when the symbol is absent,
// occurs non-linearly, or its coefficient vanishes.
func SolveFor(expr Expr, name string) (Expr, error) {
	expr = Expand(expr)
	if !Contains(expr, name) {
		return nil, fmt.Errorf("symmath: %s does not occur in %s", name, expr)
	}
	coeff := Diff(expr, name)
	if Contains(coeff, name) {
		return nil, fmt.Errorf("symmath: %s occurs non-linearly in %s", name, expr)
	}
	if isZero(coeff) {
		return nil, fmt.Errorf("symmath: coefficient of %s vanishes in %s", name, expr)
	}
	rest := Sub(expr, name, N(0))
	return MulOf(N(-1), rest, PowOf(coeff, N(-1))).Simplify(), nil
}

// Substitution is one symbol replacement.
type Substitution struct {
	Name  string
	Value Expr
}

// SubstituteAll applies the substitutions in order and simplifies the result.
func SubstituteAll(e Expr, subs []Substitution) Expr {
	for _, s := range subs {
		e = e.Sub(s.Name, s.Value)
	}
	return e.Simplify()
}
