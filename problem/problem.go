// Package problem holds the final artifact of a moment expansion run: the
// closed ODE system pairing each state symbol with its time derivative,
// together with the model constants and the moment each row describes.
package problem

import (
	"fmt"

	"momex/moments"
	"momex/symmath"
)

// ODEProblem is the immutable, validated ODE system. Row i pairs the state
// symbol LHS[i] with its derivative RHS[i] and the moment Moments[i]; rows
// are ordered means first, then higher moments in counter order.
type ODEProblem struct {
	lhs       []symmath.Expr
	rhs       []symmath.Expr
	constants []string
	moms      []moments.Index
	rowOf     map[string]int
}

// ValidationError reports mismatched vector lengths at assembly.
type ValidationError struct {
	LHS     int
	RHS     int
	Moments int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("problem: %d left-hand sides, %d right-hand sides and %d moments; all three counts must match and be positive",
		e.LHS, e.RHS, e.Moments)
}

// New assembles and validates an ODEProblem. The inputs are copied; the
// returned problem never changes.
func New(lhs, rhs []symmath.Expr, constants []string, moms []moments.Index) (*ODEProblem, error) {
	if len(lhs) == 0 || len(lhs) != len(rhs) || len(lhs) != len(moms) {
		return nil, &ValidationError{LHS: len(lhs), RHS: len(rhs), Moments: len(moms)}
	}
	p := &ODEProblem{
		lhs:       append([]symmath.Expr(nil), lhs...),
		rhs:       append([]symmath.Expr(nil), rhs...),
		constants: append([]string(nil), constants...),
		moms:      make([]moments.Index, len(moms)),
		rowOf:     make(map[string]int, len(moms)),
	}
	for i, m := range moms {
		p.moms[i] = m.Clone()
		p.rowOf[m.Key()] = i
	}
	return p, nil
}

// Size is the number of equations.
func (p *ODEProblem) Size() int { return len(p.lhs) }

// LHS returns a copy of the state symbol vector.
func (p *ODEProblem) LHS() []symmath.Expr { return append([]symmath.Expr(nil), p.lhs...) }

// RHS returns a copy of the derivative vector.
func (p *ODEProblem) RHS() []symmath.Expr { return append([]symmath.Expr(nil), p.rhs...) }

// Constants returns a copy of the constant names.
func (p *ODEProblem) Constants() []string { return append([]string(nil), p.constants...) }

// Moments returns a copy of the per-row moment indexes.
func (p *ODEProblem) Moments() []moments.Index {
	out := make([]moments.Index, len(p.moms))
	for i, m := range p.moms {
		out[i] = m.Clone()
	}
	return out
}

// RowOf returns the row describing the given moment.
func (p *ODEProblem) RowOf(ix moments.Index) (int, bool) {
	row, ok := p.rowOf[ix.Key()]
	return row, ok
}
