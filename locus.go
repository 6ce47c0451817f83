// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"math"
)

// Significance level for FDR-adjusted p-values, and the maximum
// scoring rate in the sex lacking a heterogametic-linked locus.
const (
	alpha             = 0.01
	maxAbsentCallRate = 0.10
)

// LocusState tracks a locus through the two test families.
type LocusState int

const (
	StateUnclassified LocusState = iota
	StateCallRateTested
	StateExcludedFromHetTest // flagged by the call-rate classifier
	StateHetTested
	StateFinal
)

func (s LocusState) String() string {
	switch s {
	case StateUnclassified:
		return "unclassified"
	case StateCallRateTested:
		return "call-rate-tested"
	case StateExcludedFromHetTest:
		return "excluded-from-het-test"
	case StateHetTested:
		return "het-tested"
	case StateFinal:
		return "final"
	}
	return "invalid"
}

// Category is the final classification of a locus.
type Category int

const (
	CategoryAutosomal Category = iota
	CategoryHeterogameticLinked
	CategorySexBiased
	CategoryHomogameticLinked
	CategoryGametolog
)

var categoryNames = [...]string{
	CategoryAutosomal:           "autosomal",
	CategoryHeterogameticLinked: "heterogametic-linked",
	CategorySexBiased:           "sex-biased",
	CategoryHomogameticLinked:   "homogametic-linked",
	CategoryGametolog:           "gametolog",
}

func (c Category) String() string { return categoryNames[c] }

// LocusRecord holds everything computed for one locus. Field names
// follow the output columns (CountFMiss is count.F.miss, etc).
type LocusRecord struct {
	Index int // 1-based, input order
	Locus string
	State LocusState

	CountFMiss   int
	CountMMiss   int
	CountFScored int
	CountMScored int
	ScoringRateF float64
	ScoringRateM float64
	Ratio        float64
	PValue       float64
	PAdjusted    float64

	WLinked   bool
	YLinked   bool
	SexBiased bool

	CountFHet       int
	CountMHet       int
	CountFHom       int
	CountMHom       int
	HeterozygosityF float64
	HeterozygosityM float64
	Stat            float64
	StatPValue      float64
	StatPAdjusted   float64

	ZLinked   bool
	XLinked   bool
	Gametolog bool
}

func newLocusRecord(index int, locus string) LocusRecord {
	nan := math.NaN()
	return LocusRecord{
		Index:           index,
		Locus:           locus,
		ScoringRateF:    nan,
		ScoringRateM:    nan,
		Ratio:           nan,
		PValue:          nan,
		PAdjusted:       nan,
		HeterozygosityF: nan,
		HeterozygosityM: nan,
		Stat:            nan,
		StatPValue:      nan,
		StatPAdjusted:   nan,
	}
}

func (rec *LocusRecord) HeterogameticLinked() bool { return rec.WLinked || rec.YLinked }
func (rec *LocusRecord) HomogameticLinked() bool   { return rec.ZLinked || rec.XLinked }

// Category returns the first matching category, in classification
// order.
func (rec *LocusRecord) Category() Category {
	switch {
	case rec.HeterogameticLinked():
		return CategoryHeterogameticLinked
	case rec.SexBiased:
		return CategorySexBiased
	case rec.HomogameticLinked():
		return CategoryHomogameticLinked
	case rec.Gametolog:
		return CategoryGametolog
	default:
		return CategoryAutosomal
	}
}

// rate returns num/(num+other), or NaN if both are zero.
func rate(num, other int) float64 {
	if num+other == 0 {
		return math.NaN()
	}
	return float64(num) / float64(num+other)
}

// significant is false for NaN.
func significant(padj float64) bool {
	return padj <= alpha
}
