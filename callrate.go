// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import "math"

// testCallRate fills in the call-rate block of rec from the female
// and male calls at one locus. If either sex has no individuals at
// all, the ratio and p-value are NaN.
func testCallRate(rec *LocusRecord, female, male []int8) {
	rec.CountFMiss, rec.CountFScored = countScored(female)
	rec.CountMMiss, rec.CountMScored = countScored(male)
	rec.ScoringRateF = rate(rec.CountFScored, rec.CountFMiss)
	rec.ScoringRateM = rate(rec.CountMScored, rec.CountMMiss)
	rec.State = StateCallRateTested
	if len(female) == 0 || len(male) == 0 {
		rec.Ratio, rec.PValue = math.NaN(), math.NaN()
		return
	}
	rec.Ratio, rec.PValue = independenceTest(newTable(
		rec.CountFMiss, rec.CountFScored,
		rec.CountMMiss, rec.CountMScored))
}

func countScored(calls []int8) (miss, scored int) {
	for _, call := range calls {
		if call == Missing {
			miss++
		} else {
			scored++
		}
	}
	return
}

// classifyCallRate adjusts the call-rate p-values and sets the
// heterogametic-linked and sex-biased flags. Flagged loci are
// excluded from the heterozygosity test.
func classifyCallRate(recs []LocusRecord, sys System) {
	p := make([]float64, len(recs))
	for i := range recs {
		p[i] = recs[i].PValue
	}
	for i, padj := range adjustBH(p) {
		rec := &recs[i]
		rec.PAdjusted = padj
		if !significant(padj) {
			continue
		}
		switch sys {
		case SystemZW:
			rec.WLinked = rec.ScoringRateM <= maxAbsentCallRate
		case SystemXY:
			rec.YLinked = rec.ScoringRateF <= maxAbsentCallRate
		}
		rec.SexBiased = !rec.HeterogameticLinked()
		rec.State = StateExcludedFromHetTest
	}
}
