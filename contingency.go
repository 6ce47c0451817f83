// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
)

// Tables with at least this many observations are tested with
// Pearson's chi-square; smaller tables with Fisher's exact test.
const chiSquareMinTotal = 1000

// table2x2 is a sex x outcome contingency table: row 0 is female,
// row 1 is male.
type table2x2 [2][2]float64

func newTable(f0, f1, m0, m1 int) table2x2 {
	return table2x2{
		{float64(f0), float64(f1)},
		{float64(m0), float64(m1)},
	}
}

func (t table2x2) total() float64 {
	return t[0][0] + t[0][1] + t[1][0] + t[1][1]
}

// withoutZeros returns t with every zero cell replaced by 1. This
// keeps the tests defined on degenerate tables at the cost of biasing
// loci with extreme counts.
func (t table2x2) withoutZeros() table2x2 {
	for i := range t {
		for j := range t[i] {
			if t[i][j] == 0 {
				t[i][j] = 1
			}
		}
	}
	return t
}

type testKind int

const (
	testFisher testKind = iota
	testChiSquare
)

func (t table2x2) testKind() testKind {
	if t.total() >= chiSquareMinTotal {
		return testChiSquare
	}
	return testFisher
}

// independenceTest returns the test statistic (chi-square statistic,
// or Fisher's conditional MLE odds ratio) and two-sided p-value for
// t. The test is selected on the observed total; zero cells are
// replaced before testing.
func independenceTest(t table2x2) (stat, p float64) {
	kind := t.testKind()
	t = t.withoutZeros()
	if kind == testChiSquare {
		return chiSquareTest(t)
	}
	return fisherTest(t)
}

var chisquared1 = distuv.ChiSquared{K: 1}

// chiSquareTest is Pearson's test without continuity correction.
func chiSquareTest(t table2x2) (stat, p float64) {
	n := t.total()
	rows := [2]float64{t[0][0] + t[0][1], t[1][0] + t[1][1]}
	cols := [2]float64{t[0][0] + t[1][0], t[0][1] + t[1][1]}
	for i := range t {
		for j := range t[i] {
			exp := rows[i] * cols[j] / n
			d := t[i][j] - exp
			stat += d * d / exp
		}
	}
	return stat, chisquared1.Survival(stat)
}

// hypergeom is the (noncentral) hypergeometric distribution of the
// top-left cell of a 2x2 table with fixed margins.
type hypergeom struct {
	lo, hi int
	logd   []float64 // central log density at lo..hi
}

func newHypergeom(t table2x2) *hypergeom {
	m := int(t[0][0] + t[1][0]) // column 0 total
	n := int(t[0][1] + t[1][1]) // column 1 total
	k := int(t[0][0] + t[0][1]) // row 0 total
	h := &hypergeom{lo: k - n, hi: k}
	if h.lo < 0 {
		h.lo = 0
	}
	if h.hi > m {
		h.hi = m
	}
	norm := combin.LogGeneralizedBinomial(float64(m+n), float64(k))
	for x := h.lo; x <= h.hi; x++ {
		h.logd = append(h.logd, combin.LogGeneralizedBinomial(float64(m), float64(x))+
			combin.LogGeneralizedBinomial(float64(n), float64(k-x))-norm)
	}
	return h
}

// density returns the probabilities of lo..hi with noncentrality
// (odds ratio) ncp.
func (h *hypergeom) density(ncp float64) []float64 {
	d := make([]float64, len(h.logd))
	max := math.Inf(-1)
	logncp := math.Log(ncp)
	for i, ld := range h.logd {
		d[i] = ld
		if ncp != 1 {
			d[i] += logncp * float64(h.lo+i)
		}
		if d[i] > max {
			max = d[i]
		}
	}
	sum := 0.0
	for i := range d {
		d[i] = math.Exp(d[i] - max)
		sum += d[i]
	}
	for i := range d {
		d[i] /= sum
	}
	return d
}

func (h *hypergeom) mean(ncp float64) float64 {
	if ncp == 0 {
		return float64(h.lo)
	} else if math.IsInf(ncp, 1) {
		return float64(h.hi)
	}
	mean := 0.0
	for i, d := range h.density(ncp) {
		mean += d * float64(h.lo+i)
	}
	return mean
}

// mle returns the conditional maximum likelihood estimate of the odds
// ratio given the observed top-left cell x.
func (h *hypergeom) mle(x int) float64 {
	if x == h.lo {
		return 0
	} else if x == h.hi {
		return math.Inf(1)
	}
	fx := float64(x)
	mu := h.mean(1)
	switch {
	case mu > fx:
		return bisect(func(t float64) float64 { return h.mean(t) - fx }, 0, 1)
	case mu < fx:
		return 1 / bisect(func(t float64) float64 { return h.mean(1/t) - fx }, 1e-16, 1)
	default:
		return 1
	}
}

// bisect finds a root of f in [a, b], where f(a) and f(b) have
// opposite signs.
func bisect(f func(float64) float64, a, b float64) float64 {
	fa := f(a)
	for i := 0; i < 200 && b-a > 1e-14*(1+math.Abs(a)); i++ {
		mid := (a + b) / 2
		fm := f(mid)
		if fm == 0 {
			return mid
		}
		if (fm < 0) == (fa < 0) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return (a + b) / 2
}

// fisherTest is Fisher's exact test. The two-sided p-value sums the
// probabilities of all tables no more likely than the observed one.
func fisherTest(t table2x2) (oddsRatio, p float64) {
	h := newHypergeom(t)
	x := int(t[0][0])
	d := h.density(1)
	limit := d[x-h.lo] * (1 + 1e-7)
	for _, di := range d {
		if di <= limit {
			p += di
		}
	}
	if p > 1 {
		p = 1
	}
	return h.mle(x), p
}
