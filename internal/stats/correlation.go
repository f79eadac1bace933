package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// ComponentCorrelation is one pairwise Pearson coefficient between two
// component score columns.
type ComponentCorrelation struct {
	First       model.Component `json:"component_1"`
	Second      model.Component `json:"component_2"`
	Correlation float64         `json:"correlation"`
}

// CorrelationAnalysis holds the strongest pairwise component correlations.
type CorrelationAnalysis struct {
	Strongest []ComponentCorrelation `json:"strongest_correlations"`
	Average   float64                `json:"average_correlation"`
}

// Correlation computes Pearson correlation between every pair of component
// score columns over the scored cases and keeps the ten pairs with the
// largest absolute coefficient. Average is the signed mean over all
// computable pairs. Degenerate pairs, where either column has zero variance,
// are skipped. Nil when fewer than two scored cases exist or no pair is
// computable.
func (a *Aggregator) Correlation() *CorrelationAnalysis {
	columns := a.scoreColumns()
	if columns == nil {
		return nil
	}

	comps := model.Components()
	var pairs []ComponentCorrelation
	sum := 0.0
	for i := 0; i < len(comps); i++ {
		for j := i + 1; j < len(comps); j++ {
			r := stat.Correlation(columns[i], columns[j], nil)
			if math.IsNaN(r) {
				continue
			}
			pairs = append(pairs, ComponentCorrelation{
				First:       comps[i],
				Second:      comps[j],
				Correlation: r,
			})
			sum += r
		}
	}
	if len(pairs) == 0 {
		return nil
	}
	sort.Slice(pairs, func(i, j int) bool {
		return math.Abs(pairs[i].Correlation) > math.Abs(pairs[j].Correlation)
	})
	avg := sum / float64(len(pairs))
	if len(pairs) > 10 {
		pairs = pairs[:10]
	}
	return &CorrelationAnalysis{Strongest: pairs, Average: avg}
}

// scoreColumns transposes scored cases into 13 per-component columns, or nil
// when fewer than two cases carry scores.
func (a *Aggregator) scoreColumns() [][]float64 {
	scored := 0
	for _, c := range a.cases {
		if c.Scores != nil {
			scored++
		}
	}
	if scored < 2 {
		return nil
	}
	columns := make([][]float64, model.NumComponents)
	for i := range columns {
		columns[i] = make([]float64, 0, scored)
	}
	for _, c := range a.cases {
		if c.Scores == nil {
			continue
		}
		for i, comp := range model.Components() {
			columns[i] = append(columns[i], c.Scores.Components[comp].Score)
		}
	}
	return columns
}
