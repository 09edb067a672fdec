package mea

import (
	"momex/moments"
	"momex/symmath"
)

// logNormalClosure retains the mean and covariance equations and replaces
// every higher central moment by its multivariate log-normal value. The
// closed raw moment of a log-normal vector reduces to an exact rational
// product of means and covariance ratios; the higher central moments follow
// from it through the binomial raw-to-central conversion.
type logNormalClosure struct{}

func (l *logNormalClosure) Kind() ClosureKind { return ClosureLogNormal }

func (l *logNormalClosure) Close(central *symmath.Matrix, dmu *symmath.Matrix, rawToCentral []symmath.Expr,
	species []string, nCounter, kCounter moments.Counter) ([]symmath.Expr, []symmath.Expr, []moments.Index, error) {
	rhs := massFluctuationKinetics(dmu, central, nCounter)
	lhs, moms := stateMoments(nCounter, kCounter)

	rawSubs := make([]symmath.Substitution, 0)
	for _, m := range kCounter.OfMinOrder(2) {
		sym, ok := m.Symbol.(*symmath.Sym)
		if !ok {
			continue
		}
		rawSubs = append(rawSubs, symmath.Substitution{
			Name:  sym.Name(),
			Value: closedLogNormalRawMoment(m.Index, species, nCounter),
		})
	}

	higher := nCounter.OfMinOrder(2)
	var subs []symmath.Substitution
	for i, m := range higher {
		if m.Order() < 3 {
			continue
		}
		sym, ok := m.Symbol.(*symmath.Sym)
		if !ok {
			continue
		}
		closed := symmath.Expand(symmath.SubstituteAll(rawToCentral[i], rawSubs))
		subs = append(subs, symmath.Substitution{Name: sym.Name(), Value: closed})
	}

	lhs, rhs, moms = retainUpToOrder(lhs, rhs, moms, 2, subs)
	return lhs, rhs, moms, nil
}

// closedLogNormalRawMoment is the raw moment ⟨x^n⟩ of a multivariate
// log-normal vector with the counter's means and covariances:
//
//	∏_i μ_i^n_i · ∏_i (1 + C_ii/μ_i²)^(n_i(n_i−1)/2) · ∏_{i<j} (1 + C_ij/(μ_i·μ_j))^(n_i·n_j)
func closedLogNormalRawMoment(ix moments.Index, species []string, nCounter moments.Counter) symmath.Expr {
	factors := make([]symmath.Expr, 0, 2*len(ix))
	for i, p := range ix {
		if p == 0 {
			continue
		}
		mu := symmath.S(species[i])
		factors = append(factors, symmath.PowOf(mu, symmath.N(int64(p))))
		if e := p * (p - 1) / 2; e > 0 {
			variance := covarianceSymbol(nCounter, len(ix), i, i)
			ratio := symmath.AddOf(symmath.N(1), symmath.MulOf(variance, symmath.PowOf(mu, symmath.N(-2))))
			factors = append(factors, symmath.PowOf(ratio, symmath.N(int64(e))))
		}
	}
	for i := 0; i < len(ix); i++ {
		for j := i + 1; j < len(ix); j++ {
			e := ix[i] * ix[j]
			if e == 0 {
				continue
			}
			cov := covarianceSymbol(nCounter, len(ix), i, j)
			ratio := symmath.AddOf(symmath.N(1), symmath.MulOf(
				cov,
				symmath.PowOf(symmath.S(species[i]), symmath.N(-1)),
				symmath.PowOf(symmath.S(species[j]), symmath.N(-1)),
			))
			factors = append(factors, symmath.PowOf(ratio, symmath.N(int64(e))))
		}
	}
	return symmath.Expand(symmath.MulOf(factors...))
}
