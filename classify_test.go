// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"gopkg.in/check.v1"
)

type classifySuite struct{}

var _ = check.Suite(&classifySuite{})

func writeTestInputs(c *check.C, dir string) (genotypes, samples string) {
	gm, xy, _ := testMatrix()
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "locus\t%s\n", strings.Join(gm.SampleIDs, "\t"))
	for i, calls := range gm.Calls {
		buf.WriteString(gm.LocusIDs[i])
		for _, call := range calls {
			if call == Missing {
				buf.WriteString("\tNA")
			} else {
				fmt.Fprintf(&buf, "\t%d", call)
			}
		}
		buf.WriteString("\n")
	}
	genotypes = dir + "/genotypes.tsv"
	c.Assert(ioutil.WriteFile(genotypes, buf.Bytes(), 0644), check.IsNil)

	buf.Reset()
	buf.WriteString("id,sex\n")
	for _, id := range gm.SampleIDs {
		sex := xy[id].String()
		if sex == "unknown" {
			sex = ""
		}
		fmt.Fprintf(&buf, "%s,%s\n", id, sex)
	}
	samples = dir + "/samples.csv"
	c.Assert(ioutil.WriteFile(samples, buf.Bytes(), 0644), check.IsNil)
	return
}

type recordingPlotter struct{ rt *ResultTable }

func (p *recordingPlotter) Plot(w io.Writer, rt *ResultTable) error {
	p.rt = rt
	_, err := io.WriteString(w, "plot")
	return err
}

func (s *classifySuite) TestClassify(c *check.C) {
	tmpdir := c.MkDir()
	genotypes, samples := writeTestInputs(c, tmpdir)
	plotter := &recordingPlotter{}
	var stdout, stderr bytes.Buffer
	exited := (&classifyCmd{plotter: plotter}).RunCommand("sexlinked classify", []string{
		"-system", "xy",
		"-ncores", "3",
		"-i", genotypes,
		"-samples", samples,
		"-o-numpy", tmpdir + "/result.npy",
		"-plot", tmpdir + "/plot.html",
	}, bytes.NewReader(nil), &stdout, &stderr)
	c.Check(exited, check.Equals, 0, check.Commentf("stderr: %s", stderr.String()))
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	c.Check(lines, check.HasLen, 11)
	c.Check(lines[1+testLocusHeterogametic], check.Matches, `locus3\t4\t.*\tTRUE\tFALSE\t.*`)
	c.Assert(plotter.rt, check.NotNil)
	c.Check(plotter.rt.Partitions().Gametolog, check.HasLen, 1)
	buf, err := ioutil.ReadFile(tmpdir + "/plot.html")
	c.Check(err, check.IsNil)
	c.Check(string(buf), check.Equals, "plot")
	_, err = os.Stat(tmpdir + "/result.npy")
	c.Check(err, check.IsNil)
}

func (s *classifySuite) TestStdinAndOutputFile(c *check.C) {
	tmpdir := c.MkDir()
	genotypes, samples := writeTestInputs(c, tmpdir)
	in, err := os.Open(genotypes)
	c.Assert(err, check.IsNil)
	defer in.Close()
	exited := (&classifyCmd{}).RunCommand("sexlinked classify", []string{
		"-system=zw", "-samples", samples, "-o", tmpdir + "/out.tsv",
	}, in, ioutil.Discard, os.Stderr)
	c.Check(exited, check.Equals, 0)
	buf, err := ioutil.ReadFile(tmpdir + "/out.tsv")
	c.Check(err, check.IsNil)
	c.Check(string(buf), check.Matches, `locus\tindex\t.*\tw\.linked\t(?s:.*)`)
}

func (s *classifySuite) TestConfigurationErrors(c *check.C) {
	tmpdir := c.MkDir()
	genotypes, samples := writeTestInputs(c, tmpdir)
	for _, trial := range []struct {
		args   []string
		stderr string
	}{
		{[]string{"-i", genotypes, "-samples", samples}, "configuration error: system must be specified.*"},
		{[]string{"-system", "zz", "-i", genotypes, "-samples", samples}, `configuration error: system must be zw or xy, not "zz".*`},
		{[]string{"-system", "xy", "-ncores", "0", "-i", genotypes, "-samples", samples}, "configuration error: ncores must be a positive integer.*"},
		{[]string{"-system", "xy", "-i", genotypes}, "must specify -samples.*"},
		{[]string{"-system", "xy", "-i", genotypes, "-samples", samples, "-o-numpy", "-"}, "-o-numpy and -plot need a file name.*"},
		{[]string{"-system", "xy", "-i", genotypes, "-samples", samples, "-plot", "-"}, "-o-numpy and -plot need a file name.*"},
	} {
		var stderr bytes.Buffer
		exited := (&classifyCmd{}).RunCommand("sexlinked classify", trial.args, bytes.NewReader(nil), ioutil.Discard, &stderr)
		c.Check(exited, check.Equals, 1, check.Commentf("%v", trial.args))
		c.Check(stderr.String(), check.Matches, "(?s)"+trial.stderr)
	}
	exited := (&classifyCmd{}).RunCommand("sexlinked classify", []string{"-system", "xy", "extra"}, bytes.NewReader(nil), ioutil.Discard, ioutil.Discard)
	c.Check(exited, check.Equals, 2)
}
