// Package model describes a stochastic chemical reaction network: named
// species, symbolic reaction propensities and an integer stoichiometry
// matrix, validated for shape before any derivation starts.
package model

import (
	"fmt"

	"momex/symmath"
)

// Model is a reaction network description. Stoichiometry rows correspond to
// species and columns to reactions; entry (i, r) is the net change of
// species i when reaction r fires.
type Model struct {
	Name          string
	Species       []string
	Constants     []string
	Propensities  []symmath.Expr
	Stoichiometry [][]int
}

// Reactions is the number of reactions in the network.
func (m *Model) Reactions() int { return len(m.Propensities) }

// ShapeError reports a disagreement between the dimensions of the species
// list, the propensity vector and the stoichiometry matrix.
type ShapeError struct {
	Species      int
	Propensities int
	Rows         int
	Cols         int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("model: shape mismatch: %d species, %d propensities, stoichiometry %dx%d (want rows == species and cols == propensities)",
		e.Species, e.Propensities, e.Rows, e.Cols)
}

// Validate checks the network shape: the stoichiometry matrix must have one
// row per species and one column per propensity, with no ragged rows.
func (m *Model) Validate() error {
	if len(m.Species) == 0 || len(m.Propensities) == 0 {
		return m.shapeError()
	}
	if len(m.Stoichiometry) != len(m.Species) {
		return m.shapeError()
	}
	for _, row := range m.Stoichiometry {
		if len(row) != len(m.Propensities) {
			return m.shapeError()
		}
	}
	return nil
}

func (m *Model) shapeError() error {
	cols := 0
	if len(m.Stoichiometry) > 0 {
		cols = len(m.Stoichiometry[0])
	}
	return &ShapeError{
		Species:      len(m.Species),
		Propensities: len(m.Propensities),
		Rows:         len(m.Stoichiometry),
		Cols:         cols,
	}
}
