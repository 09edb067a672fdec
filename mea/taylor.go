// Package mea derives the closed ODE system for the statistical moments of
// a stochastic reaction network by the moment expansion approximation:
// counters enumerate the participating moments, the propensities are
// Taylor-expanded about the mean, raw moments are eliminated in favour of
// central ones, and a closure strategy truncates the moment hierarchy.
package mea

import (
	"momex/moments"
	"momex/symmath"
)

// deriveByIndex takes the mixed partial derivative of expr with respect to
// the species variables, to the order given per entry of the index.
func deriveByIndex(expr symmath.Expr, species []string, ix moments.Index) symmath.Expr {
	out := expr
	for i, n := range ix {
		out = symmath.DiffN(out, species[i], n)
	}
	return out
}

// oneOverFactorial is the Taylor coefficient 1/(ix_0!·ix_1!·...).
func oneOverFactorial(ix moments.Index) symmath.Expr {
	parts := make([]symmath.Expr, len(ix))
	for i, n := range ix {
		parts[i] = symmath.Factorial(n)
	}
	return symmath.PowOf(symmath.MulOf(parts...), symmath.N(-1))
}

// taylorVector is the column of Taylor terms of expr over the counter: one
// scaled mixed partial per counter entry, the weight that multiplies the
// corresponding central moment in the expansion about the mean.
func taylorVector(species []string, expr symmath.Expr, counter moments.Counter) []symmath.Expr {
	out := make([]symmath.Expr, len(counter))
	for c, m := range counter {
		out[c] = symmath.MulOf(oneOverFactorial(m.Index), deriveByIndex(expr, species, m.Index))
	}
	return out
}

// RawMomentDerivatives builds the time derivatives of the species means as
// a matrix with one row per species and one column per central counter
// entry: the entry is the coefficient multiplying that central moment.
// Species untouched by every reaction get an identically zero row.
func RawMomentDerivatives(species []string, props []symmath.Expr, central moments.Counter, stoich [][]int) *symmath.Matrix {
	te := symmath.NewMatrix(len(props), len(central))
	for r, prop := range props {
		col := taylorVector(species, prop, central)
		for c, v := range col {
			te.Set(r, c, v)
		}
	}
	return symmath.MatrixFromInts(stoich).Mul(te)
}
