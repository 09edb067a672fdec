package mea

import (
	"momex/moments"
	"momex/symmath"
)

// zeroClosure closes the hierarchy by setting every moment above the
// truncation order to zero. The counters never generate such moments, so
// the derived equations pass through unchanged.
type zeroClosure struct{}

func (z *zeroClosure) Kind() ClosureKind { return ClosureZero }

func (z *zeroClosure) Close(central *symmath.Matrix, dmu *symmath.Matrix, rawToCentral []symmath.Expr,
	species []string, nCounter, kCounter moments.Counter) ([]symmath.Expr, []symmath.Expr, []moments.Index, error) {
	rhs := massFluctuationKinetics(dmu, central, nCounter)
	lhs, moms := stateMoments(nCounter, kCounter)
	for i := range rhs {
		rhs[i] = symmath.Expand(rhs[i])
	}
	return lhs, rhs, moms, nil
}
