// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

// testHeterozygosity fills in the heterozygosity block of rec. Counts
// and rates are filled in for every locus, but loci already flagged
// by the call-rate classifier keep NaN statistic and p-value.
func testHeterozygosity(rec *LocusRecord, female, male []int8) {
	rec.CountFHet, rec.CountFHom = countHet(female)
	rec.CountMHet, rec.CountMHom = countHet(male)
	rec.HeterozygosityF = rate(rec.CountFHet, rec.CountFHom)
	rec.HeterozygosityM = rate(rec.CountMHet, rec.CountMHom)
	if rec.State == StateExcludedFromHetTest {
		return
	}
	rec.Stat, rec.StatPValue = independenceTest(newTable(
		rec.CountFHet, rec.CountFHom,
		rec.CountMHet, rec.CountMHom))
	rec.State = StateHetTested
}

func countHet(calls []int8) (het, hom int) {
	for _, call := range calls {
		switch call {
		case 1:
			het++
		case 0, 2:
			hom++
		}
	}
	return
}

// classifyHeterozygosity adjusts the heterozygosity p-values and sets
// the homogametic-linked and gametolog flags.
func classifyHeterozygosity(recs []LocusRecord, sys System) {
	p := make([]float64, len(recs))
	for i := range recs {
		p[i] = recs[i].StatPValue
	}
	for i, padj := range adjustBH(p) {
		rec := &recs[i]
		rec.StatPAdjusted = padj
		rec.State = StateFinal
		if !significant(padj) {
			continue
		}
		// The homogametic sex carries two copies, so a homogametic-
		// linked locus is more heterozygous there. Anything else
		// significant is read as a gametolog.
		switch sys {
		case SystemZW:
			rec.ZLinked = rec.HeterozygosityM > rec.HeterozygosityF
		case SystemXY:
			rec.XLinked = rec.HeterozygosityF > rec.HeterozygosityM
		}
		rec.Gametolog = !rec.HomogameticLinked()
	}
}
