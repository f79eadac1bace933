// Package stats computes descriptive statistics over the scored case table:
// violation rates, group-bys, component correlation, temporal buckets, and
// cluster analysis. Every analysis returns a defined empty result (never an
// error) when the table holds too little data; consumers treat an empty
// analysis as "insufficient data".
package stats

import (
	"sort"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// Aggregator runs analyses over a snapshot of the case table.
type Aggregator struct {
	cases []model.FailureCase
}

// NewAggregator wraps a full-table read for analysis.
func NewAggregator(cases []model.FailureCase) *Aggregator {
	return &Aggregator{cases: cases}
}

// NameCount pairs a group value with its case count, for stable top-N lists.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Analysis bundles every analysis over one table snapshot.
type Analysis struct {
	ComponentFrequency map[string]ComponentStats `json:"component_analysis"`
	Geographic         *GeographicAnalysis       `json:"geographic_analysis,omitempty"`
	Sector             *SectorAnalysis           `json:"sector_analysis,omitempty"`
	Correlation        *CorrelationAnalysis      `json:"correlation_analysis,omitempty"`
	Temporal           *TemporalAnalysis         `json:"temporal_analysis,omitempty"`
	Cluster            *ClusterAnalysis          `json:"cluster_analysis,omitempty"`
	TotalCases         int                       `json:"total_cases"`
}

// Comprehensive runs all analyses.
func (a *Aggregator) Comprehensive() *Analysis {
	return &Analysis{
		ComponentFrequency: a.ComponentFrequency(),
		Geographic:         a.Geographic(),
		Sector:             a.Sector(),
		Correlation:        a.Correlation(),
		Temporal:           a.Temporal(),
		Cluster:            a.Cluster(),
		TotalCases:         len(a.cases),
	}
}

// topN returns the n most frequent values in counts, ties broken by name for
// determinism.
func topN(counts map[string]int, n int) []NameCount {
	out := make([]NameCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, NameCount{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
