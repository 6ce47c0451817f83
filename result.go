// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kshedden/gonpy"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
	"gonum.org/v1/gonum/stat"
)

// ResultTable holds one record per input locus, in input order.
type ResultTable struct {
	System  System
	Records []LocusRecord
}

// Partitions groups the records of a ResultTable by category. Every
// record appears in exactly one view.
type Partitions struct {
	HeterogameticLinked []*LocusRecord
	SexBiased           []*LocusRecord
	HomogameticLinked   []*LocusRecord
	Gametolog           []*LocusRecord
	Autosomal           []*LocusRecord
}

func (rt *ResultTable) Partitions() Partitions {
	var p Partitions
	for i := range rt.Records {
		rec := &rt.Records[i]
		switch rec.Category() {
		case CategoryHeterogameticLinked:
			p.HeterogameticLinked = append(p.HeterogameticLinked, rec)
		case CategorySexBiased:
			p.SexBiased = append(p.SexBiased, rec)
		case CategoryHomogameticLinked:
			p.HomogameticLinked = append(p.HomogameticLinked, rec)
		case CategoryGametolog:
			p.Gametolog = append(p.Gametolog, rec)
		default:
			p.Autosomal = append(p.Autosomal, rec)
		}
	}
	return p
}

func (p Partitions) view(cat Category) []*LocusRecord {
	switch cat {
	case CategoryHeterogameticLinked:
		return p.HeterogameticLinked
	case CategorySexBiased:
		return p.SexBiased
	case CategoryHomogameticLinked:
		return p.HomogameticLinked
	case CategoryGametolog:
		return p.Gametolog
	default:
		return p.Autosomal
	}
}

var categories = []Category{
	CategoryHeterogameticLinked,
	CategorySexBiased,
	CategoryHomogameticLinked,
	CategoryGametolog,
	CategoryAutosomal,
}

// CategorySummary describes the loci in one partition. Means skip
// NaN values, and are NaN for an empty partition.
type CategorySummary struct {
	Category            Category
	Loci                int
	MeanScoringRateF    float64
	MeanScoringRateM    float64
	MeanHeterozygosityF float64
	MeanHeterozygosityM float64
}

type Summary []CategorySummary

func (rt *ResultTable) Summary() Summary {
	parts := rt.Partitions()
	var sum Summary
	for _, cat := range categories {
		view := parts.view(cat)
		sum = append(sum, CategorySummary{
			Category:            cat,
			Loci:                len(view),
			MeanScoringRateF:    meanOf(view, func(rec *LocusRecord) float64 { return rec.ScoringRateF }),
			MeanScoringRateM:    meanOf(view, func(rec *LocusRecord) float64 { return rec.ScoringRateM }),
			MeanHeterozygosityF: meanOf(view, func(rec *LocusRecord) float64 { return rec.HeterozygosityF }),
			MeanHeterozygosityM: meanOf(view, func(rec *LocusRecord) float64 { return rec.HeterozygosityM }),
		})
	}
	return sum
}

func meanOf(view []*LocusRecord, field func(*LocusRecord) float64) float64 {
	x := make([]float64, 0, len(view))
	for _, rec := range view {
		if v := field(rec); !math.IsNaN(v) {
			x = append(x, v)
		}
	}
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// Log writes one line per category to the logger.
func (sum Summary) Log(sys System) {
	for _, cs := range sum {
		name := cs.Category.String()
		switch cs.Category {
		case CategoryHeterogameticLinked:
			name = sys.HeterogameticName()
		case CategoryHomogameticLinked:
			name = sys.HomogameticName()
		}
		log.WithFields(log.Fields{
			"scoringRate.F":    cs.MeanScoringRateF,
			"scoringRate.M":    cs.MeanScoringRateM,
			"heterozygosity.F": cs.MeanHeterozygosityF,
			"heterozygosity.M": cs.MeanHeterozygosityM,
		}).Infof("%s: %d loci", name, cs.Loci)
	}
}

type columnKind int

const (
	intColumn columnKind = iota
	floatColumn
	boolColumn
)

type column struct {
	name  string
	kind  columnKind
	value func(*LocusRecord) float64
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// columns returns the numeric output columns (everything except the
// locus ID), named for sys.
func columns(sys System) []column {
	hetLinked := func(rec *LocusRecord) float64 { return b2f(rec.WLinked) }
	homLinked := func(rec *LocusRecord) float64 { return b2f(rec.ZLinked) }
	if sys == SystemXY {
		hetLinked = func(rec *LocusRecord) float64 { return b2f(rec.YLinked) }
		homLinked = func(rec *LocusRecord) float64 { return b2f(rec.XLinked) }
	}
	return []column{
		{"index", intColumn, func(rec *LocusRecord) float64 { return float64(rec.Index) }},
		{"count.F.miss", intColumn, func(rec *LocusRecord) float64 { return float64(rec.CountFMiss) }},
		{"count.M.miss", intColumn, func(rec *LocusRecord) float64 { return float64(rec.CountMMiss) }},
		{"count.F.scored", intColumn, func(rec *LocusRecord) float64 { return float64(rec.CountFScored) }},
		{"count.M.scored", intColumn, func(rec *LocusRecord) float64 { return float64(rec.CountMScored) }},
		{"scoringRate.F", floatColumn, func(rec *LocusRecord) float64 { return rec.ScoringRateF }},
		{"scoringRate.M", floatColumn, func(rec *LocusRecord) float64 { return rec.ScoringRateM }},
		{"ratio", floatColumn, func(rec *LocusRecord) float64 { return rec.Ratio }},
		{"p.value", floatColumn, func(rec *LocusRecord) float64 { return rec.PValue }},
		{"p.adjusted", floatColumn, func(rec *LocusRecord) float64 { return rec.PAdjusted }},
		{sys.HeterogameticName(), boolColumn, hetLinked},
		{"sex.biased", boolColumn, func(rec *LocusRecord) float64 { return b2f(rec.SexBiased) }},
		{"count.F.het", intColumn, func(rec *LocusRecord) float64 { return float64(rec.CountFHet) }},
		{"count.M.het", intColumn, func(rec *LocusRecord) float64 { return float64(rec.CountMHet) }},
		{"count.F.hom", intColumn, func(rec *LocusRecord) float64 { return float64(rec.CountFHom) }},
		{"count.M.hom", intColumn, func(rec *LocusRecord) float64 { return float64(rec.CountMHom) }},
		{"heterozygosity.F", floatColumn, func(rec *LocusRecord) float64 { return rec.HeterozygosityF }},
		{"heterozygosity.M", floatColumn, func(rec *LocusRecord) float64 { return rec.HeterozygosityM }},
		{"stat", floatColumn, func(rec *LocusRecord) float64 { return rec.Stat }},
		{"stat.p.value", floatColumn, func(rec *LocusRecord) float64 { return rec.StatPValue }},
		{"stat.p.adjusted", floatColumn, func(rec *LocusRecord) float64 { return rec.StatPAdjusted }},
		{sys.HomogameticName(), boolColumn, homLinked},
		{"gametolog", boolColumn, func(rec *LocusRecord) float64 { return b2f(rec.Gametolog) }},
	}
}

func formatValue(kind columnKind, v float64) string {
	switch {
	case kind == boolColumn && v != 0:
		return "TRUE"
	case kind == boolColumn:
		return "FALSE"
	case kind == intColumn:
		return strconv.Itoa(int(v))
	case math.IsNaN(v):
		return "NA"
	case math.IsInf(v, 1):
		return "Inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// WriteTSV writes a header line and one line per record.
func (rt *ResultTable) WriteTSV(w io.Writer) error {
	bufw := bufio.NewWriter(w)
	cols := columns(rt.System)
	names := []string{"locus"}
	for _, col := range cols {
		names = append(names, col.name)
	}
	fmt.Fprintln(bufw, strings.Join(names, "\t"))
	for i := range rt.Records {
		rec := &rt.Records[i]
		bufw.WriteString(rec.Locus)
		for _, col := range cols {
			bufw.WriteByte('\t')
			bufw.WriteString(formatValue(col.kind, col.value(rec)))
		}
		bufw.WriteByte('\n')
	}
	return bufw.Flush()
}

// WriteNumpy writes the numeric columns as a float64 matrix with one
// row per record. Booleans are 0/1; NaN is preserved.
func (rt *ResultTable) WriteNumpy(w io.Writer) error {
	cols := columns(rt.System)
	out := make([]float64, 0, len(rt.Records)*len(cols))
	for i := range rt.Records {
		for _, col := range cols {
			out = append(out, col.value(&rt.Records[i]))
		}
	}
	bufw := bufio.NewWriter(w)
	npw, err := gonpy.NewWriter(nopCloser{bufw})
	if err != nil {
		return err
	}
	npw.Shape = []int{len(rt.Records), len(cols)}
	log.WithFields(log.Fields{
		"rows": len(rt.Records),
		"cols": len(cols),
	}).Debug("writing numpy result matrix")
	err = npw.WriteFloat64(out)
	if err != nil {
		return err
	}
	return bufw.Flush()
}

// Digest returns the blake2b-256 hash of the TSV encoding. Identical
// inputs yield identical digests.
func (rt *ResultTable) Digest() ([blake2b.Size256]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return [blake2b.Size256]byte{}, err
	}
	if err := rt.WriteTSV(h); err != nil {
		return [blake2b.Size256]byte{}, err
	}
	var sum [blake2b.Size256]byte
	copy(sum[:], h.Sum(nil))
	return sum, nil
}
