package mea

import (
	"momex/moments"
	"momex/symmath"
)

// normalClosure retains the mean and covariance equations and replaces
// every higher central moment by its multivariate normal value: odd
// moments vanish and even moments expand into sums over pair partitions of
// covariances (Isserlis' theorem).
type normalClosure struct{}

func (n *normalClosure) Kind() ClosureKind { return ClosureNormal }

func (n *normalClosure) Close(central *symmath.Matrix, dmu *symmath.Matrix, rawToCentral []symmath.Expr,
	species []string, nCounter, kCounter moments.Counter) ([]symmath.Expr, []symmath.Expr, []moments.Index, error) {
	rhs := massFluctuationKinetics(dmu, central, nCounter)
	lhs, moms := stateMoments(nCounter, kCounter)

	var subs []symmath.Substitution
	for _, m := range nCounter.OfMinOrder(3) {
		sym, ok := m.Symbol.(*symmath.Sym)
		if !ok {
			continue
		}
		subs = append(subs, symmath.Substitution{
			Name:  sym.Name(),
			Value: closedNormalMoment(m.Index, nCounter),
		})
	}

	lhs, rhs, moms = retainUpToOrder(lhs, rhs, moms, 2, subs)
	return lhs, rhs, moms, nil
}

// closedNormalMoment is the central moment of a multivariate normal with
// the counter's covariances: zero for odd order, the Isserlis pair
// partition sum for even order.
func closedNormalMoment(ix moments.Index, nCounter moments.Counter) symmath.Expr {
	if ix.Order()%2 != 0 {
		return symmath.N(0)
	}
	slots := make([]int, 0, ix.Order())
	for i, p := range ix {
		for j := 0; j < p; j++ {
			slots = append(slots, i)
		}
	}
	return symmath.Simplify(isserlis(slots, len(ix), nCounter))
}

// isserlis sums over the pairings of the first slot with each remaining
// slot, recursing on the rest.
func isserlis(slots []int, species int, nCounter moments.Counter) symmath.Expr {
	if len(slots) == 0 {
		return symmath.N(1)
	}
	first, rest := slots[0], slots[1:]
	terms := make([]symmath.Expr, 0, len(rest))
	for j := range rest {
		remaining := make([]int, 0, len(rest)-1)
		remaining = append(remaining, rest[:j]...)
		remaining = append(remaining, rest[j+1:]...)
		terms = append(terms, symmath.MulOf(
			covarianceSymbol(nCounter, species, first, rest[j]),
			isserlis(remaining, species, nCounter),
		))
	}
	return symmath.AddOf(terms...)
}
