// Package moments models multi-index moments of a reaction network and
// generates the ordered counters that enumerate them up to a truncation
// order.
//
// The canonical counter order is ascending total order, ties broken by
// ascending lexicographic comparison of the index tuple. This order fixes
// the row correspondence between the left- and right-hand sides of the
// derived ODE system and is stable across re-derivation.
package moments

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/combin"

	"momex/symmath"
)

// Index is a multi-index of nonnegative integers, one entry per species.
type Index []int

// Order is the total order of the index, the sum of its entries.
func (ix Index) Order() int {
	sum := 0
	for _, v := range ix {
		sum += v
	}
	return sum
}

// Key renders the index as an underscore-joined tuple, e.g. "2_0_1".
func (ix Index) Key() string {
	parts := make([]string, len(ix))
	for i, v := range ix {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, "_")
}

// Covers reports whether every entry of other is bounded by the
// corresponding entry of ix.
func (ix Index) Covers(other Index) bool {
	if len(ix) != len(other) {
		return false
	}
	for i, v := range other {
		if v > ix[i] {
			return false
		}
	}
	return true
}

// Minus returns the componentwise difference ix − other.
func (ix Index) Minus(other Index) Index {
	out := make(Index, len(ix))
	for i := range ix {
		out[i] = ix[i] - other[i]
	}
	return out
}

// Clone returns an independent copy.
func (ix Index) Clone() Index {
	out := make(Index, len(ix))
	copy(out, ix)
	return out
}

// less is the canonical counter order.
func less(a, b Index) bool {
	if ao, bo := a.Order(), b.Order(); ao != bo {
		return ao < bo
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Moment pairs a multi-index with the symbol standing for the corresponding
// expectation. The order-0 moment carries the constant 1; order-1 raw
// moments carry the species symbol itself.
type Moment struct {
	Index  Index
	Symbol symmath.Expr
}

// Order is the total order of the moment's index.
func (m Moment) Order() int { return m.Index.Order() }

// Counter is an ordered sequence of moments.
type Counter []Moment

// OfMinOrder returns the moments with order at least min, preserving order.
func (c Counter) OfMinOrder(min int) Counter {
	out := make(Counter, 0, len(c))
	for _, m := range c {
		if m.Order() >= min {
			out = append(out, m)
		}
	}
	return out
}

// ByIndex returns a lookup from index key to moment.
func (c Counter) ByIndex() map[string]Moment {
	out := make(map[string]Moment, len(c))
	for _, m := range c {
		out[m.Index.Key()] = m
	}
	return out
}

// OrderError reports an invalid counter request.
type OrderError struct {
	Order   int
	Species int
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("moments: invalid counter request: truncation order %d, %d species (both must be at least 1)", e.Order, e.Species)
}

// RawSymbol is the deterministic symbol for the raw moment of the given
// index among the named species.
func RawSymbol(ix Index, species []string) symmath.Expr {
	switch ix.Order() {
	case 0:
		return symmath.N(1)
	case 1:
		for i, v := range ix {
			if v == 1 {
				return symmath.S(species[i])
			}
		}
	}
	return symmath.S("x_" + ix.Key())
}

// CentralSymbol is the deterministic symbol for the central moment of the
// given index.
func CentralSymbol(ix Index) symmath.Expr {
	if ix.Order() == 0 {
		return symmath.N(1)
	}
	return symmath.S("yx_" + ix.Key())
}

// NewCounters generates the raw ("k") and central ("n") counters for the
// given species up to the truncation order. The raw counter holds every
// index with total order in [0, order]; the central counter mirrors it but
// omits order-1 entries, whose central moments vanish identically.
func NewCounters(species []string, order int) (raw, central Counter, err error) {
	if order < 1 || len(species) < 1 {
		return nil, nil, &OrderError{Order: order, Species: len(species)}
	}

	lens := make([]int, len(species))
	for i := range lens {
		lens[i] = order + 1
	}
	universe := make([]Index, 0)
	for _, tuple := range combin.Cartesian(lens) {
		ix := Index(tuple).Clone()
		if ix.Order() <= order {
			universe = append(universe, ix)
		}
	}
	sort.SliceStable(universe, func(i, j int) bool { return less(universe[i], universe[j]) })

	raw = make(Counter, 0, len(universe))
	central = make(Counter, 0, len(universe))
	for _, ix := range universe {
		raw = append(raw, Moment{Index: ix, Symbol: RawSymbol(ix, species)})
		if ix.Order() != 1 {
			central = append(central, Moment{Index: ix, Symbol: CentralSymbol(ix)})
		}
	}
	return raw, central, nil
}

// SubIndexes enumerates every index e with 0 ≤ e ≤ k componentwise and
// |e| ≥ 1, in canonical order. These are the e-vectors of the mixed-moment
// sums; the all-zero vector carries no jump contribution and is omitted.
func SubIndexes(k Index) []Index {
	lens := make([]int, len(k))
	for i, v := range k {
		lens[i] = v + 1
	}
	out := make([]Index, 0)
	for _, tuple := range combin.Cartesian(lens) {
		ix := Index(tuple).Clone()
		if ix.Order() >= 1 {
			out = append(out, ix)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
