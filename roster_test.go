// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"errors"
	"strings"

	"gopkg.in/check.v1"
)

type rosterSuite struct{}

var _ = check.Suite(&rosterSuite{})

func (s *rosterSuite) TestRead(c *check.C) {
	roster, err := ReadSexRoster(strings.NewReader("id,sex\ns1,F\ns2,M\ns3,\ns4,unknown\ns5\n s6 , M \n"))
	c.Assert(err, check.IsNil)
	c.Check(roster, check.DeepEquals, SexRoster{
		"s1": SexFemale,
		"s2": SexMale,
		"s3": SexUnknown,
		"s4": SexUnknown,
		"s5": SexUnknown,
		"s6": SexMale,
	})

	roster, err = ReadSexRoster(strings.NewReader("s1\tF\ns2\tM\n"))
	c.Assert(err, check.IsNil)
	c.Check(roster, check.HasLen, 2)

	_, err = ReadSexRoster(strings.NewReader("s1,F\ns1,M\n"))
	c.Check(err, check.ErrorMatches, `line 2: duplicate sample id "s1"`)
}

func (s *rosterSuite) TestPartition(c *check.C) {
	gm := &GenotypeMatrix{
		LocusIDs:  []string{"L1", "L2"},
		SampleIDs: []string{"m1", "f1", "u1", "f2", "x"},
		Calls: [][]int8{
			{0, 1, 2, Missing, 1},
			{2, 2, 0, 1, Missing},
		},
	}
	female, male, err := Partition(gm, SexRoster{"m1": SexMale, "f1": SexFemale, "f2": SexFemale, "u1": SexUnknown})
	c.Assert(err, check.IsNil)
	c.Check(female.SampleIDs, check.DeepEquals, []string{"f1", "f2"})
	c.Check(female.LocusIDs, check.DeepEquals, []string{"L1", "L2"})
	c.Check(female.Calls, check.DeepEquals, [][]int8{{1, Missing}, {2, 1}})
	c.Check(male.SampleIDs, check.DeepEquals, []string{"m1"})
	c.Check(male.Calls, check.DeepEquals, [][]int8{{0}, {2}})
	// source is not modified
	c.Check(gm.Calls[0], check.DeepEquals, []int8{0, 1, 2, Missing, 1})
}

func (s *rosterSuite) TestPartitionOneSex(c *check.C) {
	gm := &GenotypeMatrix{LocusIDs: []string{"L1"}, SampleIDs: []string{"f1"}, Calls: [][]int8{{1}}}
	female, male, err := Partition(gm, SexRoster{"f1": SexFemale})
	c.Assert(err, check.IsNil)
	c.Check(female.Calls, check.DeepEquals, [][]int8{{1}})
	c.Check(male.Calls, check.DeepEquals, [][]int8{{}})
}

func (s *rosterSuite) TestPartitionNoSexes(c *check.C) {
	gm := &GenotypeMatrix{LocusIDs: []string{"L1"}, SampleIDs: []string{"f1"}, Calls: [][]int8{{1}}}
	for _, roster := range []SexRoster{nil, {"f1": SexUnknown}} {
		_, _, err := Partition(gm, roster)
		var cfgErr *ConfigurationError
		c.Check(errors.As(err, &cfgErr), check.Equals, true)
	}
}

func (s *rosterSuite) TestParseSystem(c *check.C) {
	sys, err := ParseSystem("zw")
	c.Check(err, check.IsNil)
	c.Check(sys, check.Equals, SystemZW)
	c.Check(sys.HeterogameticName(), check.Equals, "w.linked")
	c.Check(SystemXY.HomogameticName(), check.Equals, "x.linked")
	for _, bad := range []string{"", "ZW", "xo"} {
		_, err = ParseSystem(bad)
		var cfgErr *ConfigurationError
		c.Check(errors.As(err, &cfgErr), check.Equals, true, check.Commentf("%q", bad))
	}
}
