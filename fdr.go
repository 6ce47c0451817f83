// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// adjustBH returns Benjamini-Hochberg adjusted p-values, in the same
// order as p. NaN inputs are returned as NaN and do not count toward
// the number of tests.
func adjustBH(p []float64) []float64 {
	adj := make([]float64, len(p))
	var vals []float64
	var pos []int
	for i, pi := range p {
		if math.IsNaN(pi) {
			adj[i] = math.NaN()
		} else {
			vals = append(vals, pi)
			pos = append(pos, i)
		}
	}
	// ascending; ties get the same adjusted value in any order
	rank := make([]int, len(vals))
	floats.Argsort(vals, rank)
	n := float64(len(vals))
	min := math.Inf(1)
	for k := len(vals) - 1; k >= 0; k-- {
		if v := n / float64(k+1) * vals[k]; v < min {
			min = v
		}
		adj[pos[rank[k]]] = math.Min(1, min)
	}
	return adj
}
