package mea

import (
	"fmt"

	"momex/moments"
	"momex/symmath"
)

// eliminateRawMoments rewrites the central moment derivative matrix so that
// no raw moment symbol of order above one remains. Each order ≥ 2 raw moment
// is solved for from the raw-to-central conversion of the central moment
// with the same index, then substituted back highest order first so that
// solutions for lower orders never reintroduce an already eliminated symbol.
func eliminateRawMoments(exprs *symmath.Matrix, rawToCentral []symmath.Expr, central, raw moments.Counter) (*symmath.Matrix, error) {
	if exprs == nil {
		return nil, nil
	}
	higher := central.OfMinOrder(2)
	rawByKey := raw.ByIndex()

	subs := make([]symmath.Substitution, 0, len(higher))
	for i, n := range higher {
		rm, ok := rawByKey[n.Index.Key()]
		if !ok {
			return nil, fmt.Errorf("mea: no raw moment with index %s", n.Index.Key())
		}
		sym, ok := rm.Symbol.(*symmath.Sym)
		if !ok {
			return nil, fmt.Errorf("mea: raw moment %s has no symbol to solve for", n.Index.Key())
		}
		eq := symmath.AddOf(rawToCentral[i], symmath.MulOf(symmath.N(-1), n.Symbol))
		sol, err := symmath.SolveFor(eq, sym.Name())
		if err != nil {
			return nil, &SolveError{Symbol: sym.Name(), Err: err}
		}
		subs = append(subs, symmath.Substitution{Name: sym.Name(), Value: sol})
	}

	out := exprs
	for i := len(subs) - 1; i >= 0; i-- {
		s := subs[i]
		out = out.Map(func(e symmath.Expr) symmath.Expr {
			return symmath.Simplify(e.Sub(s.Name, s.Value))
		})
	}
	return out.Map(symmath.Expand), nil
}
