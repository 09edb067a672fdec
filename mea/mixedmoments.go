package mea

import (
	"gonum.org/v1/gonum/stat/combin"

	"momex/moments"
	"momex/symmath"
)

// kChooseE is the product of componentwise binomial coefficients C(k_i, e_i).
func kChooseE(k, e moments.Index) symmath.Expr {
	prod := 1
	for i := range e {
		prod *= combin.Binomial(k[i], e[i])
	}
	return symmath.N(int64(prod))
}

// sPowE is the product of stoichiometry entries of one reaction raised to
// the componentwise powers of e.
func sPowE(stoich [][]int, reaction int, e moments.Index) symmath.Expr {
	prod := int64(1)
	for i, p := range e {
		prod *= intPow(int64(stoich[i][reaction]), p)
	}
	return symmath.N(prod)
}

func intPow(base int64, exp int) int64 {
	out := int64(1)
	for i := 0; i < exp; i++ {
		out *= base
	}
	return out
}

// shiftedPropensity is the integrand x^(k−e)·a(x) of one jump contribution:
// the propensity multiplied by the species variables raised to the residual
// powers k−e.
func shiftedPropensity(species []string, k, e moments.Index, prop symmath.Expr) symmath.Expr {
	factors := []symmath.Expr{prop}
	for i := range k {
		if d := k[i] - e[i]; d > 0 {
			factors = append(factors, symmath.PowOf(symmath.S(species[i]), symmath.N(int64(d))))
		}
	}
	return symmath.MulOf(factors...)
}

// MixedMomentDerivatives builds the time derivative of the raw mixed moment
// ⟨x^k⟩ as a row over the central counter: summing over reactions and over
// the sub-indexes e of k, each jump contributes s^e·C(k,e)·⟨x^(k−e)·a(x)⟩,
// with the expectation Taylor-expanded about the mean.
func MixedMomentDerivatives(props []symmath.Expr, central moments.Counter, stoich [][]int, species []string, k moments.Index) []symmath.Expr {
	row := make([]symmath.Expr, len(central))
	for c := range row {
		row[c] = symmath.N(0)
	}
	for r, prop := range props {
		for _, e := range moments.SubIndexes(k) {
			weight := symmath.MulOf(sPowE(stoich, r, e), kChooseE(k, e))
			if symmath.Simplify(weight).Equal(symmath.N(0)) {
				continue
			}
			terms := taylorVector(species, shiftedPropensity(species, k, e, prop), central)
			for c := range row {
				row[c] = symmath.AddOf(row[c], symmath.MulOf(weight, terms[c]))
			}
		}
	}
	for c := range row {
		row[c] = symmath.Simplify(row[c])
	}
	return row
}
