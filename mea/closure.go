package mea

import (
	"fmt"

	"momex/moments"
	"momex/symmath"
)

// ClosureKind selects the strategy used to truncate the moment hierarchy.
type ClosureKind int

const (
	// ClosureZero keeps every derived equation and discards nothing
	// beyond the truncation the counters already impose.
	ClosureZero ClosureKind = iota
	// ClosureNormal retains means and covariances and replaces higher
	// central moments by their multivariate normal values.
	ClosureNormal
	// ClosureLogNormal retains means and covariances and replaces higher
	// moments by their multivariate log-normal values.
	ClosureLogNormal
)

func (k ClosureKind) String() string {
	switch k {
	case ClosureZero:
		return "zero"
	case ClosureNormal:
		return "normal"
	case ClosureLogNormal:
		return "log-normal"
	}
	return "unknown"
}

// Closure turns the derived coefficient matrices into the final equation
// system: right-hand sides, matching state symbols and the moment each
// row describes.
type Closure interface {
	Kind() ClosureKind
	Close(central *symmath.Matrix, dmu *symmath.Matrix, rawToCentral []symmath.Expr,
		species []string, nCounter, kCounter moments.Counter) (lhs, rhs []symmath.Expr, moms []moments.Index, err error)
}

// NewClosure builds the closure for the given kind. The normal and
// log-normal strategies need at least covariances to close against, so
// they reject truncation orders below two.
func NewClosure(kind ClosureKind, maxOrder int) (Closure, error) {
	switch kind {
	case ClosureZero:
		return &zeroClosure{}, nil
	case ClosureNormal, ClosureLogNormal:
		if maxOrder < 2 {
			return nil, fmt.Errorf("mea: %s closure needs truncation order >= 2, got %d", kind, maxOrder)
		}
		if kind == ClosureNormal {
			return &normalClosure{}, nil
		}
		return &logNormalClosure{}, nil
	}
	return nil, &ClosureKindError{Kind: kind}
}

// momentSymbols is the central counter rendered as a symbol vector, the
// right factor of every coefficient row.
func momentSymbols(nCounter moments.Counter) []symmath.Expr {
	out := make([]symmath.Expr, len(nCounter))
	for i, m := range nCounter {
		out[i] = m.Symbol
	}
	return out
}

func dot(row, syms []symmath.Expr) symmath.Expr {
	terms := make([]symmath.Expr, len(row))
	for i := range row {
		terms[i] = symmath.MulOf(row[i], syms[i])
	}
	return symmath.Simplify(symmath.AddOf(terms...))
}

// massFluctuationKinetics collapses the coefficient matrices into one
// right-hand side per equation: species mean rows first, then the order ≥ 2
// central moment rows, each dotted with the central moment symbol vector.
// A nil central matrix means a first-order truncation with mean rows only.
func massFluctuationKinetics(dmu, central *symmath.Matrix, nCounter moments.Counter) []symmath.Expr {
	syms := momentSymbols(nCounter)
	out := make([]symmath.Expr, 0, dmu.Rows())
	for i := 0; i < dmu.Rows(); i++ {
		out = append(out, dot(dmu.Row(i), syms))
	}
	if central != nil {
		for i := 0; i < central.Rows(); i++ {
			out = append(out, dot(central.Row(i), syms))
		}
	}
	return out
}

// stateMoments pairs each equation row with its state symbol and moment
// index: the species means in species order, then the order ≥ 2 central
// moments in counter order. The mean rows of the kinetics vector follow the
// stoichiometry rows, so the unit indexes must be walked per species rather
// than in counter order.
func stateMoments(nCounter, kCounter moments.Counter) (lhs []symmath.Expr, moms []moments.Index) {
	byKey := kCounter.ByIndex()
	width := 0
	if len(kCounter) > 0 {
		width = len(kCounter[0].Index)
	}
	for i := 0; i < width; i++ {
		ix := make(moments.Index, width)
		ix[i] = 1
		m := byKey[ix.Key()]
		lhs = append(lhs, m.Symbol)
		moms = append(moms, m.Index.Clone())
	}
	for _, m := range nCounter.OfMinOrder(2) {
		lhs = append(lhs, m.Symbol)
		moms = append(moms, m.Index.Clone())
	}
	return lhs, moms
}

// covarianceSymbol is the order-2 central moment symbol pairing species i
// and j (the variance symbol when i == j).
func covarianceSymbol(nCounter moments.Counter, species int, i, j int) symmath.Expr {
	ix := make(moments.Index, species)
	ix[i]++
	ix[j]++
	m, ok := nCounter.ByIndex()[ix.Key()]
	if !ok {
		return symmath.N(0)
	}
	return m.Symbol
}

// retainUpToOrder keeps the equations whose moment order is at most max,
// applying the substitutions to the surviving right-hand sides.
func retainUpToOrder(lhs, rhs []symmath.Expr, moms []moments.Index, max int, subs []symmath.Substitution) ([]symmath.Expr, []symmath.Expr, []moments.Index) {
	keptLHS := make([]symmath.Expr, 0, len(lhs))
	keptRHS := make([]symmath.Expr, 0, len(rhs))
	keptMoms := make([]moments.Index, 0, len(moms))
	for i, m := range moms {
		if m.Order() > max {
			continue
		}
		keptLHS = append(keptLHS, lhs[i])
		keptRHS = append(keptRHS, symmath.Expand(symmath.SubstituteAll(rhs[i], subs)))
		keptMoms = append(keptMoms, m)
	}
	return keptLHS, keptRHS, keptMoms
}
