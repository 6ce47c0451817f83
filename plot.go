// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sexlinked

import (
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Plotter renders a classified ResultTable.
type Plotter interface {
	Plot(w io.Writer, rt *ResultTable) error
}

const (
	colorBackground = "#a0a0a0"
	colorHighlight1 = "#d7301f"
	colorHighlight2 = "#2b8cbe"
)

// htmlPlotter writes an HTML page with two scatter plots: female vs.
// male scoring rate, highlighting loci flagged by call rate, and
// female vs. male heterozygosity, highlighting loci flagged by
// heterozygosity.
type htmlPlotter struct{}

func (htmlPlotter) Plot(w io.Writer, rt *ResultTable) error {
	parts := rt.Partitions()
	scoring := func(rec *LocusRecord) (float64, float64) { return rec.ScoringRateF, rec.ScoringRateM }
	het := func(rec *LocusRecord) (float64, float64) { return rec.HeterozygosityF, rec.HeterozygosityM }

	var notCallRateFlagged []*LocusRecord
	notCallRateFlagged = append(notCallRateFlagged, parts.Autosomal...)
	notCallRateFlagged = append(notCallRateFlagged, parts.HomogameticLinked...)
	notCallRateFlagged = append(notCallRateFlagged, parts.Gametolog...)

	page := components.NewPage()
	page.AddCharts(
		scatterPlot("Call rate by sex", "scoringRate.F", "scoringRate.M", scoring, []scatterSeries{
			{"autosomal", colorBackground, notCallRateFlagged},
			{rt.System.HeterogameticName(), colorHighlight1, parts.HeterogameticLinked},
			{"sex.biased", colorHighlight2, parts.SexBiased},
		}),
		scatterPlot("Heterozygosity by sex", "heterozygosity.F", "heterozygosity.M", het, []scatterSeries{
			{"autosomal", colorBackground, parts.Autosomal},
			{rt.System.HomogameticName(), colorHighlight1, parts.HomogameticLinked},
			{"gametolog", colorHighlight2, parts.Gametolog},
		}),
	)
	return page.Render(w)
}

type scatterSeries struct {
	name  string
	color string
	recs  []*LocusRecord
}

func scatterPlot(title, xname, yname string, xy func(*LocusRecord) (float64, float64), series []scatterSeries) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xname, Type: "value", Min: 0, Max: 1}),
		charts.WithYAxisOpts(opts.YAxis{Name: yname, Type: "value", Min: 0, Max: 1}),
	)
	for _, s := range series {
		data := make([]opts.ScatterData, 0, len(s.recs))
		for _, rec := range s.recs {
			x, y := xy(rec)
			if math.IsNaN(x) || math.IsNaN(y) {
				continue
			}
			data = append(data, opts.ScatterData{Name: rec.Locus, Value: []float64{x, y}, SymbolSize: 6})
		}
		scatter.AddSeries(s.name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}))
	}
	return scatter
}
