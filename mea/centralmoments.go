package mea

import (
	"momex/moments"
	"momex/symmath"
)

// signPow is (−1)^n.
func signPow(n int) symmath.Expr {
	if n%2 != 0 {
		return symmath.N(-1)
	}
	return symmath.N(1)
}

// meanPower is the product of species variables raised to the powers of the
// index, the α = μ^(n−k) factor of the central moment product rule.
func meanPower(species []string, ix moments.Index) symmath.Expr {
	factors := make([]symmath.Expr, 0, len(ix))
	for i, p := range ix {
		if p > 0 {
			factors = append(factors, symmath.PowOf(symmath.S(species[i]), symmath.N(int64(p))))
		}
	}
	return symmath.MulOf(factors...)
}

// meanPowerDerivative is the time derivative of meanPower(n−k) as a row over
// the central counter, obtained by the chain rule through the mean equations.
func meanPowerDerivative(alpha symmath.Expr, dmu *symmath.Matrix, species []string, width int) []symmath.Expr {
	row := make([]symmath.Expr, width)
	for c := range row {
		row[c] = symmath.N(0)
	}
	for i, s := range species {
		partial := symmath.Diff(alpha, s)
		if partial.Equal(symmath.N(0)) {
			continue
		}
		for c := range row {
			row[c] = symmath.AddOf(row[c], symmath.MulOf(partial, dmu.At(i, c)))
		}
	}
	return row
}

// CentralMomentDerivatives builds the time derivatives of the order ≥ 2
// central moments, one row per such moment and one column per central
// counter entry. Each central moment M_n = Σ_{k ≤ n} C(n,k)·(−1)^|n−k|·α·β
// with α = μ^(n−k) and β = ⟨x^k⟩ differentiates by the product rule; dβ/dt
// comes from the mixed moment equations and dα/dt from the mean equations.
// The raw moment symbols β left in the result are eliminated afterwards.
func CentralMomentDerivatives(central, raw moments.Counter, dmu *symmath.Matrix, species []string, props []symmath.Expr, stoich [][]int) *symmath.Matrix {
	higher := central.OfMinOrder(2)
	if len(higher) == 0 {
		// First-order truncation: the system is the mean equations alone.
		return nil
	}
	out := symmath.NewMatrix(len(higher), len(central))
	for rowIdx, n := range higher {
		row := make([]symmath.Expr, len(central))
		for c := range row {
			row[c] = symmath.N(0)
		}
		for _, k := range raw {
			if !n.Index.Covers(k.Index) {
				continue
			}
			diff := n.Index.Minus(k.Index)
			weight := symmath.MulOf(kChooseE(n.Index, k.Index), signPow(diff.Order()))
			alpha := meanPower(species, diff)
			dalpha := meanPowerDerivative(alpha, dmu, species, len(central))
			var dbeta []symmath.Expr
			if k.Order() > 0 {
				dbeta = MixedMomentDerivatives(props, central, stoich, species, k.Index)
			}
			for c := range row {
				term := symmath.MulOf(k.Symbol, dalpha[c])
				if dbeta != nil {
					term = symmath.AddOf(term, symmath.MulOf(alpha, dbeta[c]))
				}
				row[c] = symmath.AddOf(row[c], symmath.MulOf(weight, term))
			}
		}
		for c := range row {
			out.Set(rowIdx, c, symmath.Simplify(row[c]))
		}
	}
	return out
}
