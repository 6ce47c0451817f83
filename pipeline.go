// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Classifier classifies loci as sex-linked or autosomal by comparing
// call rate and heterozygosity between females and males.
type Classifier struct {
	System System
	// Workers is the number of goroutines used for the per-locus
	// tests. Zero means 1.
	Workers int
}

func (c *Classifier) validate() error {
	if !c.System.valid() {
		_, err := ParseSystem(string(c.System))
		return err
	}
	if c.Workers < 0 {
		return configErrorf("number of workers must be positive, not %d", c.Workers)
	}
	return nil
}

// Classify runs both test families over every locus of gm and returns
// one record per locus, in input order. It fails with a
// *ConfigurationError if the classifier or roster is unusable, and
// returns no partial results if interrupted.
func (c *Classifier) Classify(ctx context.Context, gm *GenotypeMatrix, roster SexRoster) (*ResultTable, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if len(gm.LocusIDs) != len(gm.Calls) {
		return nil, fmt.Errorf("genotype matrix has %d locus IDs but %d rows", len(gm.LocusIDs), len(gm.Calls))
	}
	female, male, err := Partition(gm, roster)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"loci":    gm.Loci(),
		"females": len(female.SampleIDs),
		"males":   len(male.SampleIDs),
		"dropped": len(gm.SampleIDs) - len(female.SampleIDs) - len(male.SampleIDs),
	}).Info("partitioned samples by sex")

	recs := make([]LocusRecord, gm.Loci())
	for i := range recs {
		recs[i] = newLocusRecord(i+1, gm.LocusIDs[i])
	}

	t0 := time.Now()
	err = forEachLocus(ctx, c.Workers, len(recs), func(i int) error {
		testCallRate(&recs[i], female.Calls[i], male.Calls[i])
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("call rate test: %w", err)
	}
	classifyCallRate(recs, c.System)
	log.Infof("call rate tests done in %v", time.Since(t0))

	t0 = time.Now()
	err = forEachLocus(ctx, c.Workers, len(recs), func(i int) error {
		testHeterozygosity(&recs[i], female.Calls[i], male.Calls[i])
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("heterozygosity test: %w", err)
	}
	classifyHeterozygosity(recs, c.System)
	log.Infof("heterozygosity tests done in %v", time.Since(t0))

	if log.IsLevelEnabled(log.DebugLevel) {
		for i := range recs {
			rec := &recs[i]
			if cat := rec.Category(); cat != CategoryAutosomal {
				log.Debugf("locus %d %s: %s (p.adjusted=%g stat.p.adjusted=%g)", rec.Index, rec.Locus, cat, rec.PAdjusted, rec.StatPAdjusted)
			}
		}
	}
	return &ResultTable{System: c.System, Records: recs}, nil
}
