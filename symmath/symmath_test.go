package symmath_test

import (
	"testing"

	"momex/symmath"
)

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := symmath.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := symmath.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	result := symmath.Diff(symmath.N(5), "x")
	if result.String() != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", result.String())
	}
}

func TestNum_Eval(t *testing.T) {
	n, ok := symmath.N(7).Eval()
	if !ok || n.String() != "7" {
		t.Errorf("Num.Eval() should succeed with same value")
	}
}

func TestFactorial(t *testing.T) {
	if got := symmath.Factorial(5).String(); got != "120" {
		t.Errorf("5! should be 120, got %s", got)
	}
	if got := symmath.Factorial(0).String(); got != "1" {
		t.Errorf("0! should be 1, got %s", got)
	}
}

// ============================================================
// Sym tests
// ============================================================

func TestSym_String(t *testing.T) {
	x := symmath.S("x")
	if x.String() != "x" {
		t.Errorf("want x, got %s", x.String())
	}
}

func TestSym_Sub_Match(t *testing.T) {
	result := symmath.Sub(symmath.S("x"), "x", symmath.N(3))
	if result.String() != "3" {
		t.Errorf("want 3, got %s", result.String())
	}
}

func TestSym_Sub_NoMatch(t *testing.T) {
	result := symmath.Sub(symmath.S("x"), "y", symmath.N(3))
	if result.String() != "x" {
		t.Errorf("want x, got %s", result.String())
	}
}

func TestSym_Diff_Self(t *testing.T) {
	result := symmath.Diff(symmath.S("x"), "x")
	if result.String() != "1" {
		t.Errorf("d/dx(x) should be 1, got %s", result.String())
	}
}

func TestSym_Diff_Other(t *testing.T) {
	result := symmath.Diff(symmath.S("y"), "x")
	if result.String() != "0" {
		t.Errorf("d/dx(y) should be 0, got %s", result.String())
	}
}

// ============================================================
// Add tests
// ============================================================

func TestAdd_Simple(t *testing.T) {
	expr := symmath.AddOf(symmath.S("x"), symmath.N(3))
	if expr.String() != "x + 3" {
		t.Errorf("want 'x + 3', got %s", expr.String())
	}
}

func TestAdd_CollapseToZero(t *testing.T) {
	expr := symmath.AddOf(symmath.N(1), symmath.N(-1))
	if expr.String() != "0" {
		t.Errorf("want 0, got %s", expr.String())
	}
}

func TestAdd_LikeTerms(t *testing.T) {
	expr := symmath.AddOf(symmath.S("x"), symmath.S("x"))
	if expr.String() != "2*x" {
		t.Errorf("want '2*x', got %s", expr.String())
	}
}

func TestAdd_LikeTermsCancel(t *testing.T) {
	x := symmath.S("x")
	expr := symmath.AddOf(x, symmath.MulOf(symmath.N(-1), x))
	if expr.String() != "0" {
		t.Errorf("x - x should be 0, got %s", expr.String())
	}
}

func TestAdd_OrderIndependent(t *testing.T) {
	a := symmath.AddOf(symmath.S("a"), symmath.S("b"), symmath.N(2))
	b := symmath.AddOf(symmath.N(2), symmath.S("b"), symmath.S("a"))
	if !a.Equal(b) {
		t.Errorf("sums assembled in different orders should be equal: %s vs %s", a, b)
	}
}

func TestAdd_Diff(t *testing.T) {
	// d/dx(x^2 + 3x + 1) = 2x + 3
	x := symmath.S("x")
	expr := symmath.AddOf(symmath.PowOf(x, symmath.N(2)), symmath.MulOf(symmath.N(3), x), symmath.N(1))
	d := symmath.Diff(expr, "x")
	if d.String() != "2*x + 3" {
		t.Errorf("want '2*x + 3', got %s", d.String())
	}
}

func TestAdd_NegativeRendering(t *testing.T) {
	expr := symmath.AddOf(symmath.S("x"), symmath.MulOf(symmath.N(-2), symmath.S("y")))
	if expr.String() != "x - 2*y" {
		t.Errorf("want 'x - 2*y', got %s", expr.String())
	}
}

// ============================================================
// Mul tests
// ============================================================

func TestMul_MergePowers(t *testing.T) {
	x := symmath.S("x")
	expr := symmath.MulOf(x, x)
	if expr.String() != "x^2" {
		t.Errorf("x*x should be x^2, got %s", expr.String())
	}
}

func TestMul_CancelPowers(t *testing.T) {
	x := symmath.S("x")
	expr := symmath.MulOf(symmath.PowOf(x, symmath.N(2)), symmath.PowOf(x, symmath.N(-2)))
	if expr.String() != "1" {
		t.Errorf("x^2*x^-2 should be 1, got %s", expr.String())
	}
}

func TestMul_ZeroAnnihilates(t *testing.T) {
	expr := symmath.MulOf(symmath.S("x"), symmath.N(0), symmath.S("y"))
	if expr.String() != "0" {
		t.Errorf("want 0, got %s", expr.String())
	}
}

func TestMul_CoefficientFolds(t *testing.T) {
	expr := symmath.MulOf(symmath.N(2), symmath.S("x"), symmath.N(3))
	if expr.String() != "6*x" {
		t.Errorf("want '6*x', got %s", expr.String())
	}
}

func TestMul_Diff_ProductRule(t *testing.T) {
	// d/dx(x*y) = y
	expr := symmath.MulOf(symmath.S("x"), symmath.S("y"))
	d := symmath.Diff(expr, "x")
	if d.String() != "y" {
		t.Errorf("d/dx(x*y) should be y, got %s", d.String())
	}
}

// ============================================================
// Pow tests
// ============================================================

func TestPow_ExponentZero(t *testing.T) {
	expr := symmath.PowOf(symmath.S("x"), symmath.N(0))
	if expr.String() != "1" {
		t.Errorf("x^0 should be 1, got %s", expr.String())
	}
}

func TestPow_ExponentOne(t *testing.T) {
	expr := symmath.PowOf(symmath.S("x"), symmath.N(1))
	if expr.String() != "x" {
		t.Errorf("x^1 should be x, got %s", expr.String())
	}
}

func TestPow_NumericFolds(t *testing.T) {
	expr := symmath.PowOf(symmath.N(2), symmath.N(10))
	if expr.String() != "1024" {
		t.Errorf("2^10 should be 1024, got %s", expr.String())
	}
}

func TestPow_NegativeExponentFolds(t *testing.T) {
	expr := symmath.PowOf(symmath.N(2), symmath.N(-2))
	if expr.String() != "1/4" {
		t.Errorf("2^-2 should be 1/4, got %s", expr.String())
	}
}

func TestPow_Diff(t *testing.T) {
	// d/dx(x^3) = 3x^2
	d := symmath.Diff(symmath.PowOf(symmath.S("x"), symmath.N(3)), "x")
	if d.String() != "3*x^2" {
		t.Errorf("want '3*x^2', got %s", d.String())
	}
}

func TestPow_Diff_Reciprocal(t *testing.T) {
	// d/dx(1/(x + c)) = -(x + c)^-2
	x := symmath.S("x")
	expr := symmath.PowOf(symmath.AddOf(x, symmath.S("c")), symmath.N(-1))
	d := symmath.Diff(expr, "x")
	want := symmath.MulOf(symmath.N(-1), symmath.PowOf(symmath.AddOf(x, symmath.S("c")), symmath.N(-2)))
	if !d.Equal(want) {
		t.Errorf("want %s, got %s", want, d)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_LnExpInverse(t *testing.T) {
	x := symmath.S("x")
	if got := symmath.LnOf(symmath.ExpOf(x)); got.String() != "x" {
		t.Errorf("ln(exp(x)) should be x, got %s", got)
	}
	if got := symmath.ExpOf(symmath.LnOf(x)); got.String() != "x" {
		t.Errorf("exp(ln(x)) should be x, got %s", got)
	}
}

func TestFunc_Diff_Ln(t *testing.T) {
	d := symmath.Diff(symmath.LnOf(symmath.S("x")), "x")
	if d.String() != "x^(-1)" {
		t.Errorf("d/dx(ln x) should be x^(-1), got %s", d.String())
	}
}

// ============================================================
// Expand / SolveFor tests
// ============================================================

func TestExpand_Square(t *testing.T) {
	x := symmath.S("x")
	expr := symmath.Expand(symmath.PowOf(symmath.AddOf(x, symmath.N(1)), symmath.N(2)))
	want := symmath.AddOf(symmath.PowOf(x, symmath.N(2)), symmath.MulOf(symmath.N(2), x), symmath.N(1))
	if !expr.Equal(want) {
		t.Errorf("want %s, got %s", want, expr)
	}
}

func TestExpand_Distribute(t *testing.T) {
	x, y := symmath.S("x"), symmath.S("y")
	expr := symmath.Expand(symmath.MulOf(x, symmath.AddOf(y, symmath.N(2))))
	want := symmath.AddOf(symmath.MulOf(x, y), symmath.MulOf(symmath.N(2), x))
	if !expr.Equal(want) {
		t.Errorf("want %s, got %s", want, expr)
	}
}

func TestExpand_SquareOfShiftedSymbol(t *testing.T) {
	// (y_0 + 1)^2 must terminate and multiply out fully.
	y0 := symmath.S("y_0")
	expr := symmath.Expand(symmath.PowOf(symmath.AddOf(y0, symmath.N(1)), symmath.N(2)))
	want := symmath.AddOf(symmath.PowOf(y0, symmath.N(2)), symmath.MulOf(symmath.N(2), y0), symmath.N(1))
	if !expr.Equal(want) {
		t.Errorf("want %s, got %s", want, expr)
	}
}

func TestExpand_CubeOfSum(t *testing.T) {
	a, b := symmath.S("a"), symmath.S("b")
	expr := symmath.Expand(symmath.PowOf(symmath.AddOf(a, b), symmath.N(3)))
	want := symmath.AddOf(
		symmath.PowOf(a, symmath.N(3)),
		symmath.MulOf(symmath.N(3), symmath.PowOf(a, symmath.N(2)), b),
		symmath.MulOf(symmath.N(3), a, symmath.PowOf(b, symmath.N(2))),
		symmath.PowOf(b, symmath.N(3)),
	)
	if !expr.Equal(want) {
		t.Errorf("want %s, got %s", want, expr)
	}
}

func TestExpand_RepeatedSumFactors(t *testing.T) {
	// A product of identical sums canonicalizes to a power first and must
	// still expand.
	s := symmath.AddOf(symmath.S("a"), symmath.N(1))
	expr := symmath.Expand(symmath.MulOf(s, s))
	want := symmath.AddOf(symmath.PowOf(symmath.S("a"), symmath.N(2)), symmath.MulOf(symmath.N(2), symmath.S("a")), symmath.N(1))
	if !expr.Equal(want) {
		t.Errorf("want %s, got %s", want, expr)
	}
}

func TestExpand_NegativePowerUntouched(t *testing.T) {
	expr := symmath.PowOf(symmath.AddOf(symmath.S("x"), symmath.S("c")), symmath.N(-2))
	if !symmath.Expand(expr).Equal(expr) {
		t.Errorf("negative powers of sums should pass through, got %s", symmath.Expand(expr))
	}
}

func TestPow_Eval_NonIntegerExponent(t *testing.T) {
	expr := symmath.PowOf(symmath.N(2), symmath.F(1, 2))
	if _, ok := expr.Eval(); ok {
		t.Errorf("a non-integer exponent has no exact value and must not evaluate")
	}
}

func TestSolveFor_Linear(t *testing.T) {
	// 2x - 6 == 0  =>  x == 3
	expr := symmath.AddOf(symmath.MulOf(symmath.N(2), symmath.S("x")), symmath.N(-6))
	sol, err := symmath.SolveFor(expr, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.String() != "3" {
		t.Errorf("want 3, got %s", sol.String())
	}
}

func TestSolveFor_Symbolic(t *testing.T) {
	// a*x - b == 0  =>  x == b/a
	expr := symmath.AddOf(
		symmath.MulOf(symmath.S("a"), symmath.S("x")),
		symmath.MulOf(symmath.N(-1), symmath.S("b")),
	)
	sol, err := symmath.SolveFor(expr, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := symmath.MulOf(symmath.S("b"), symmath.PowOf(symmath.S("a"), symmath.N(-1)))
	if !sol.Equal(want) {
		t.Errorf("want %s, got %s", want, sol)
	}
}

func TestSolveFor_Absent(t *testing.T) {
	if _, err := symmath.SolveFor(symmath.S("y"), "x"); err == nil {
		t.Errorf("solving for an absent symbol should fail")
	}
}

func TestSolveFor_NonLinear(t *testing.T) {
	expr := symmath.PowOf(symmath.S("x"), symmath.N(2))
	if _, err := symmath.SolveFor(expr, "x"); err == nil {
		t.Errorf("solving a quadratic should fail")
	}
}

func TestSubstituteAll_InOrder(t *testing.T) {
	// x -> y, then y -> 2: both applied in sequence.
	expr := symmath.SubstituteAll(symmath.S("x"), []symmath.Substitution{
		{Name: "x", Value: symmath.S("y")},
		{Name: "y", Value: symmath.N(2)},
	})
	if expr.String() != "2" {
		t.Errorf("want 2, got %s", expr.String())
	}
}

func TestFreeSymbols(t *testing.T) {
	expr := symmath.AddOf(symmath.MulOf(symmath.S("a"), symmath.S("x")), symmath.LnOf(symmath.S("b")))
	got := symmath.FreeSymbolList(expr)
	want := []string{"a", "b", "x"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("want %v, got %v", want, got)
		}
	}
}

// ============================================================
// Matrix tests
// ============================================================

func TestMatrix_Mul(t *testing.T) {
	s := symmath.MatrixFromInts([][]int{{1, -1}})
	m := symmath.NewMatrix(2, 1)
	m.Set(0, 0, symmath.S("a"))
	m.Set(1, 0, symmath.S("b"))
	out := s.Mul(m)
	want := symmath.AddOf(symmath.S("a"), symmath.MulOf(symmath.N(-1), symmath.S("b")))
	if !out.At(0, 0).Equal(want) {
		t.Errorf("want %s, got %s", want, out.At(0, 0))
	}
}

func TestMatrix_RowIsCopy(t *testing.T) {
	m := symmath.NewMatrix(1, 2)
	m.Set(0, 0, symmath.S("a"))
	row := m.Row(0)
	row[0] = symmath.N(0)
	if m.At(0, 0).String() != "a" {
		t.Errorf("mutating a returned row should not affect the matrix")
	}
}

// ============================================================
// Parse tests
// ============================================================

func TestParse_RoundTrip(t *testing.T) {
	exprs := []symmath.Expr{
		symmath.AddOf(symmath.PowOf(symmath.S("x"), symmath.N(2)), symmath.MulOf(symmath.N(2), symmath.S("x")), symmath.N(1)),
		symmath.MulOf(symmath.S("c_2"), symmath.S("y_0"), symmath.PowOf(symmath.AddOf(symmath.S("c_6"), symmath.S("y_0")), symmath.N(-1))),
		symmath.F(-3, 7),
		symmath.LnOf(symmath.AddOf(symmath.S("x"), symmath.N(1))),
	}
	for _, want := range exprs {
		got, err := symmath.Parse(want.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", want.String(), err)
		}
		if !got.Equal(want) {
			t.Errorf("round trip of %q gave %q", want.String(), got.String())
		}
	}
}

func TestParse_DoubleStarPower(t *testing.T) {
	got, err := symmath.Parse("x**2 + 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := symmath.AddOf(symmath.PowOf(symmath.S("x"), symmath.N(2)), symmath.N(1))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestParse_Division(t *testing.T) {
	got, err := symmath.Parse("x/y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := symmath.MulOf(symmath.S("x"), symmath.PowOf(symmath.S("y"), symmath.N(-1)))
	if !got.Equal(want) {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, input := range []string{"", "x +", "(x", "1..2", "*x"} {
		if _, err := symmath.Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}
