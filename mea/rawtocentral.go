package mea

import (
	"momex/moments"
	"momex/symmath"
)

// RawToCentral expresses every order ≥ 2 central moment in raw moments and
// means, one expression per order ≥ 2 central counter entry, via the
// alternating binomial expansion M_n = Σ_{k ≤ n} C(n,k)·(−1)^|n−k|·μ^(n−k)·⟨x^k⟩.
func RawToCentral(central, raw moments.Counter, species []string) []symmath.Expr {
	higher := central.OfMinOrder(2)
	out := make([]symmath.Expr, len(higher))
	for i, n := range higher {
		terms := make([]symmath.Expr, 0, len(raw))
		for _, k := range raw {
			if !n.Index.Covers(k.Index) {
				continue
			}
			diff := n.Index.Minus(k.Index)
			terms = append(terms, symmath.MulOf(
				kChooseE(n.Index, k.Index),
				signPow(diff.Order()),
				meanPower(species, diff),
				k.Symbol,
			))
		}
		out[i] = symmath.Expand(symmath.AddOf(terms...))
	}
	return out
}
