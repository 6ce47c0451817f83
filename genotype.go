// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/kshedden/gonpy"
)

// Missing is the genotype call value for a missing (unscored)
// genotype.
const Missing int8 = -1

// GenotypeMatrix holds one row of calls per locus. Calls[i][j] is the
// call for locus i in sample j: 0 or 2 (homozygous), 1
// (heterozygous), or Missing.
type GenotypeMatrix struct {
	LocusIDs  []string
	SampleIDs []string
	Calls     [][]int8
}

func (gm *GenotypeMatrix) Loci() int { return len(gm.Calls) }

// columns returns a new matrix with the given sample columns, in the
// given order. Row order and locus IDs are unchanged.
func (gm *GenotypeMatrix) columns(cols []int) *GenotypeMatrix {
	sub := &GenotypeMatrix{
		LocusIDs:  gm.LocusIDs,
		SampleIDs: make([]string, len(cols)),
		Calls:     make([][]int8, len(gm.Calls)),
	}
	for i, col := range cols {
		sub.SampleIDs[i] = gm.SampleIDs[col]
	}
	for row, calls := range gm.Calls {
		out := make([]int8, len(cols))
		for i, col := range cols {
			out[i] = calls[col]
		}
		sub.Calls[row] = out
	}
	return sub
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// openInput opens fnm for reading ("-" means stdin). Files ending in
// .gz are decompressed.
func openInput(fnm string, stdin io.Reader) (io.ReadCloser, error) {
	var f io.ReadCloser
	if fnm == "-" {
		f = ioutil.NopCloser(stdin)
	} else {
		var err error
		f, err = os.Open(fnm)
		if err != nil {
			return nil, err
		}
	}
	if !strings.HasSuffix(fnm, ".gz") {
		return f, nil
	}
	gz, err := pgzip.NewReader(bufio.NewReaderSize(f, 4*1024*1024))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	return &gunzipCloser{Reader: gz, gz: gz, f: f}, nil
}

type gunzipCloser struct {
	io.Reader
	gz *pgzip.Reader
	f  io.Closer
}

func (gc *gunzipCloser) Close() error {
	err := gc.gz.Close()
	if err2 := gc.f.Close(); err == nil {
		err = err2
	}
	return err
}

func parseCall(s string) (int8, bool) {
	switch s {
	case "0":
		return 0, true
	case "1":
		return 1, true
	case "2":
		return 2, true
	case "", "NA", "-", ".", "-1":
		return Missing, true
	}
	return 0, false
}

// ReadGenotypeMatrix reads a delimited text matrix. The first line is
// a header whose first field is ignored and whose remaining fields
// are sample IDs. Each following line is a locus ID followed by one
// call per sample. Fields are separated by tabs, or by commas if the
// header has no tabs.
func ReadGenotypeMatrix(r io.Reader) (*GenotypeMatrix, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 64*1024*1024)
	gm := &GenotypeMatrix{}
	sep := "\t"
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if gm.SampleIDs == nil {
			if !strings.Contains(line, "\t") {
				sep = ","
			}
			fields := strings.Split(line, sep)
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: header has no sample columns", lineNum)
			}
			if dup, ok := duplicateID(fields[1:]); ok {
				return nil, fmt.Errorf("line %d: duplicate sample id %q", lineNum, dup)
			}
			gm.SampleIDs = fields[1:]
			continue
		}
		fields := strings.Split(line, sep)
		if len(fields) != len(gm.SampleIDs)+1 {
			return nil, fmt.Errorf("line %d: %d fields, expected %d", lineNum, len(fields), len(gm.SampleIDs)+1)
		}
		calls := make([]int8, len(gm.SampleIDs))
		for i, field := range fields[1:] {
			call, ok := parseCall(strings.TrimSpace(field))
			if !ok {
				return nil, fmt.Errorf("line %d column %d: invalid genotype call %q", lineNum, i+2, field)
			}
			calls[i] = call
		}
		gm.LocusIDs = append(gm.LocusIDs, fields[0])
		gm.Calls = append(gm.Calls, calls)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if gm.SampleIDs == nil {
		return nil, fmt.Errorf("empty genotype matrix")
	}
	return gm, nil
}

// duplicateID returns the first id that appears more than once.
func duplicateID(ids []string) (string, bool) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id, true
		}
		seen[id] = true
	}
	return "", false
}

// ReadGenotypeNumpy reads a 2-D int8 .npy array (loci x samples, -1
// for missing). Loci are named 1..N.
func ReadGenotypeNumpy(r io.Reader, sampleIDs []string) (*GenotypeMatrix, error) {
	npy, err := gonpy.NewReader(r)
	if err != nil {
		return nil, err
	}
	if len(npy.Shape) != 2 {
		return nil, fmt.Errorf("numpy genotype matrix has shape %v, expected 2 dimensions", npy.Shape)
	}
	rows, cols := npy.Shape[0], npy.Shape[1]
	if cols != len(sampleIDs) {
		return nil, fmt.Errorf("numpy genotype matrix has %d columns but %d sample IDs were given", cols, len(sampleIDs))
	}
	if dup, ok := duplicateID(sampleIDs); ok {
		return nil, fmt.Errorf("duplicate sample id %q", dup)
	}
	data, err := npy.GetInt8()
	if err != nil {
		return nil, err
	}
	gm := &GenotypeMatrix{
		LocusIDs:  make([]string, rows),
		SampleIDs: sampleIDs,
		Calls:     make([][]int8, rows),
	}
	for row := 0; row < rows; row++ {
		calls := data[row*cols : (row+1)*cols]
		for col, call := range calls {
			if call < Missing || call > 2 {
				return nil, fmt.Errorf("numpy genotype matrix row %d col %d: invalid genotype call %d", row, col, call)
			}
		}
		gm.LocusIDs[row] = strconv.Itoa(row + 1)
		gm.Calls[row] = calls
	}
	return gm, nil
}

// readLines returns the non-empty lines of fnm.
func readLines(fnm string) ([]string, error) {
	buf, err := ioutil.ReadFile(fnm)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(buf), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
