// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"math"
	"math/rand"
	"sort"

	"gopkg.in/check.v1"
)

type fdrSuite struct{}

var _ = check.Suite(&fdrSuite{})

func (s *fdrSuite) TestKnownValues(c *check.C) {
	adj := adjustBH([]float64{0.01, 0.02, 0.03, 0.04, 0.05})
	for i, v := range adj {
		c.Check(math.Abs(v-0.05) < 1e-15, check.Equals, true, check.Commentf("i=%d v=%v", i, v))
	}

	adj = adjustBH([]float64{0.001, 0.5, math.NaN(), 0.04})
	c.Check(math.Abs(adj[0]-0.003) < 1e-15, check.Equals, true, check.Commentf("%v", adj))
	c.Check(math.Abs(adj[1]-0.5) < 1e-15, check.Equals, true, check.Commentf("%v", adj))
	c.Check(math.IsNaN(adj[2]), check.Equals, true)
	c.Check(math.Abs(adj[3]-0.06) < 1e-15, check.Equals, true, check.Commentf("%v", adj))
}

func (s *fdrSuite) TestTiesAndOrder(c *check.C) {
	adj := adjustBH([]float64{0.04, math.NaN(), 0.01, 0.04, 0.03})
	want := []float64{0.04, math.NaN(), 0.04, 0.04, 0.04}
	for i, v := range adj {
		if math.IsNaN(want[i]) {
			c.Check(math.IsNaN(v), check.Equals, true)
			continue
		}
		c.Check(math.Abs(v-want[i]) < 1e-15, check.Equals, true, check.Commentf("i=%d v=%v", i, v))
	}
}

func (s *fdrSuite) TestCappedAtOne(c *check.C) {
	adj := adjustBH([]float64{0.9, 0.8, 0.7})
	for _, v := range adj {
		c.Check(v <= 1, check.Equals, true)
	}
	c.Check(adj[0], check.Equals, 0.9)
}

func (s *fdrSuite) TestEmpty(c *check.C) {
	c.Check(adjustBH(nil), check.HasLen, 0)
	adj := adjustBH([]float64{math.NaN(), math.NaN()})
	c.Check(math.IsNaN(adj[0]) && math.IsNaN(adj[1]), check.Equals, true)
}

func (s *fdrSuite) TestMonotoneAndBounded(c *check.C) {
	r := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		p := make([]float64, 1+r.Intn(200))
		for i := range p {
			switch r.Intn(10) {
			case 0:
				p[i] = math.NaN()
			case 1:
				p[i] = r.Float64() * 1e-6
			default:
				p[i] = r.Float64()
			}
		}
		adj := adjustBH(p)
		c.Assert(adj, check.HasLen, len(p))
		order := make([]int, 0, len(p))
		for i, pi := range p {
			if math.IsNaN(pi) {
				c.Check(math.IsNaN(adj[i]), check.Equals, true)
				continue
			}
			c.Check(adj[i] >= pi && adj[i] <= 1, check.Equals, true, check.Commentf("p=%v adj=%v", pi, adj[i]))
			order = append(order, i)
		}
		sort.SliceStable(order, func(a, b int) bool { return p[order[a]] < p[order[b]] })
		for k := 1; k < len(order); k++ {
			c.Check(adj[order[k]] >= adj[order[k-1]], check.Equals, true)
		}
	}
}
