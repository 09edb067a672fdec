package model

import "momex/symmath"

// Reference networks used as fixtures across the test suite and as worked
// examples for consumers.

// Dimerisation is the one-species dimerisation network: two monomers bind
// reversibly into a dimer tracked only through the free monomer count.
func Dimerisation() *Model {
	y0 := symmath.S("y_0")
	return &Model{
		Name:      "dimerisation",
		Species:   []string{"y_0"},
		Constants: []string{"c_0", "c_1", "c_2"},
		Propensities: []symmath.Expr{
			// c_0*y_0*(y_0 - 1)
			symmath.MulOf(symmath.S("c_0"), y0, symmath.AddOf(y0, symmath.N(-1))),
			// c_1*(1/2)*(c_2 - y_0)
			symmath.MulOf(symmath.S("c_1"), symmath.F(1, 2), symmath.AddOf(symmath.S("c_2"), symmath.MulOf(symmath.N(-1), y0))),
		},
		Stoichiometry: [][]int{{-2, 2}},
	}
}

// MichaelisMenten is the two-species enzyme kinetics network.
func MichaelisMenten() *Model {
	y0, y1 := symmath.S("y_0"), symmath.S("y_1")
	total := symmath.AddOf(symmath.N(301), symmath.MulOf(symmath.N(-1), y0), symmath.MulOf(symmath.N(-1), y1))
	return &Model{
		Name:      "michaelis-menten",
		Species:   []string{"y_0", "y_1"},
		Constants: []string{"c_0", "c_1", "c_2"},
		Propensities: []symmath.Expr{
			// c_0*y_0*(120 - 301 + y_0 + y_1)
			symmath.MulOf(symmath.S("c_0"), y0, symmath.AddOf(symmath.N(-181), y0, y1)),
			// c_1*(301 - y_0 - y_1)
			symmath.MulOf(symmath.S("c_1"), total),
			// c_2*(301 - y_0 - y_1)
			symmath.MulOf(symmath.S("c_2"), total),
		},
		Stoichiometry: [][]int{
			{-1, 1, 0},
			{0, 0, 1},
		},
	}
}

// P53 is the three-species p53/Mdm2 feedback network with a Hill-type
// degradation propensity.
func P53() *Model {
	y0, y1, y2 := symmath.S("y_0"), symmath.S("y_1"), symmath.S("y_2")
	return &Model{
		Name:      "p53",
		Species:   []string{"y_0", "y_1", "y_2"},
		Constants: []string{"c_0", "c_1", "c_2", "c_3", "c_4", "c_5", "c_6"},
		Propensities: []symmath.Expr{
			symmath.S("c_0"),
			symmath.MulOf(symmath.S("c_1"), y0),
			// c_2*y_0*y_2/(y_0 + c_6)
			symmath.MulOf(symmath.S("c_2"), y0, y2, symmath.PowOf(symmath.AddOf(y0, symmath.S("c_6")), symmath.N(-1))),
			symmath.MulOf(symmath.S("c_3"), y0),
			symmath.MulOf(symmath.S("c_4"), y1),
			symmath.MulOf(symmath.S("c_5"), y2),
		},
		Stoichiometry: [][]int{
			{1, -1, -1, 0, 0, 0},
			{0, 0, 0, 1, -1, 0},
			{0, 0, 0, 0, 1, -1},
		},
	}
}

// Hes1 is the three-species Hes1 transcriptional oscillator with a
// repressive Hill propensity.
func Hes1() *Model {
	y0, y1, y2 := symmath.S("y_0"), symmath.S("y_1"), symmath.S("y_2")
	rate := symmath.F(3, 100)
	return &Model{
		Name:      "hes1",
		Species:   []string{"y_0", "y_1", "y_2"},
		Constants: []string{"c_0", "c_1", "c_2", "c_3"},
		Propensities: []symmath.Expr{
			symmath.MulOf(rate, y0),
			symmath.MulOf(rate, y1),
			symmath.MulOf(rate, y2),
			symmath.MulOf(symmath.S("c_3"), y1),
			symmath.MulOf(symmath.S("c_2"), y0),
			// 1/(1 + (y_2/c_0)^2)
			symmath.PowOf(symmath.AddOf(symmath.N(1), symmath.PowOf(symmath.MulOf(y2, symmath.PowOf(symmath.S("c_0"), symmath.N(-1))), symmath.N(2))), symmath.N(-1)),
		},
		Stoichiometry: [][]int{
			{-1, 0, 0, 0, 0, 1},
			{0, -1, 0, -1, 1, 0},
			{0, 0, -1, 1, 0, 0},
		},
	}
}
