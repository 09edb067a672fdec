package symmath

import (
	"fmt"
	"strings"
)

// Matrix is a dense symbolic matrix. The zero value of every entry is the
// constant 0.
type Matrix struct {
	rows, cols int
	data       [][]Expr
}

func NewMatrix(rows, cols int) *Matrix {
	if rows < 1 || cols < 1 {
		panic(fmt.Sprintf("symmath: invalid matrix shape %dx%d", rows, cols))
	}
	data := make([][]Expr, rows)
	for i := range data {
		data[i] = make([]Expr, cols)
		for j := range data[i] {
			data[i][j] = N(0)
		}
	}
	return &Matrix{rows: rows, cols: cols, data: data}
}

// MatrixFromInts builds a matrix of integer constants, one row per inner
// slice. All rows must have equal length.
func MatrixFromInts(rows [][]int) *Matrix {
	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			panic(fmt.Sprintf("symmath: ragged matrix row %d", i))
		}
		for j, v := range row {
			m.data[i][j] = N(int64(v))
		}
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) At(i, j int) Expr {
	m.check(i, j)
	return m.data[i][j]
}

func (m *Matrix) Set(i, j int, v Expr) {
	m.check(i, j)
	m.data[i][j] = v
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("symmath: index [%d,%d] out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []Expr {
	m.check(i, 0)
	out := make([]Expr, m.cols)
	copy(out, m.data[i])
	return out
}

// Mul returns the matrix product m·other.
func (m *Matrix) Mul(other *Matrix) *Matrix {
	if m.cols != other.rows {
		panic(fmt.Sprintf("symmath: cannot multiply %dx%d by %dx%d", m.rows, m.cols, other.rows, other.cols))
	}
	out := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < other.cols; j++ {
			terms := make([]Expr, m.cols)
			for k := 0; k < m.cols; k++ {
				terms[k] = MulOf(m.data[i][k], other.data[k][j])
			}
			out.data[i][j] = AddOf(terms...)
		}
	}
	return out
}

// Map returns a new matrix with f applied to every entry.
func (m *Matrix) Map(f func(Expr) Expr) *Matrix {
	out := NewMatrix(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[i][j] = f(m.data[i][j])
		}
	}
	return out
}

func (m *Matrix) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(m.data[i][j].String())
		}
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}
