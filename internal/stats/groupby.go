package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// GroupStats summarizes the scored cases sharing one group value.
type GroupStats struct {
	Count             int     `json:"count"`
	AverageScore      float64 `json:"average_score"`
	StdDeviation      float64 `json:"std_deviation"`
	AveragePercentage float64 `json:"average_percentage"`
	PercentageStd     float64 `json:"percentage_std_deviation"`
}

// GeographicAnalysis groups scored cases by country.
type GeographicAnalysis struct {
	CountryStatistics map[string]GroupStats `json:"country_statistics"`
	TotalCountries    int                   `json:"total_countries"`
	MostCommon        []NameCount           `json:"most_common_countries"`
}

// SectorAnalysis groups scored cases by business sector.
type SectorAnalysis struct {
	SectorStatistics       map[string]GroupStats `json:"sector_statistics"`
	TotalSectors           int                   `json:"total_sectors"`
	MostCommon             []NameCount           `json:"most_common_sectors"`
	AverageEvidenceQuality float64               `json:"average_evidence_quality"`
}

// Geographic returns per-country score statistics and the ten most common
// countries. Cases with an empty country or no scores are skipped; nil when
// nothing qualifies.
func (a *Aggregator) Geographic() *GeographicAnalysis {
	groups := a.groupBy(func(c *model.FailureCase) string { return c.LocationCountry })
	if len(groups) == 0 {
		return nil
	}
	out := &GeographicAnalysis{
		CountryStatistics: make(map[string]GroupStats, len(groups)),
		TotalCountries:    len(groups),
	}
	counts := make(map[string]int, len(groups))
	for name, members := range groups {
		out.CountryStatistics[name] = summarize(members)
		counts[name] = len(members)
	}
	out.MostCommon = topN(counts, 10)
	return out
}

// Sector returns per-sector score statistics, the ten most common sectors,
// and the mean evidence quality across every case carrying one.
func (a *Aggregator) Sector() *SectorAnalysis {
	groups := a.groupBy(func(c *model.FailureCase) string { return c.Sector })
	if len(groups) == 0 {
		return nil
	}
	out := &SectorAnalysis{
		SectorStatistics: make(map[string]GroupStats, len(groups)),
		TotalSectors:     len(groups),
	}
	counts := make(map[string]int, len(groups))
	for name, members := range groups {
		out.SectorStatistics[name] = summarize(members)
		counts[name] = len(members)
	}
	out.MostCommon = topN(counts, 10)

	var quality []float64
	for _, c := range a.cases {
		if c.EvidenceQuality > 0 {
			quality = append(quality, float64(c.EvidenceQuality))
		}
	}
	if len(quality) > 0 {
		out.AverageEvidenceQuality = stat.Mean(quality, nil)
	}
	return out
}

func (a *Aggregator) groupBy(key func(*model.FailureCase) string) map[string][]*model.FailureCase {
	groups := make(map[string][]*model.FailureCase)
	for i := range a.cases {
		c := &a.cases[i]
		k := key(c)
		if k == "" || c.Scores == nil {
			continue
		}
		groups[k] = append(groups[k], c)
	}
	return groups
}

func summarize(members []*model.FailureCase) GroupStats {
	totals := make([]float64, 0, len(members))
	pcts := make([]float64, 0, len(members))
	for _, c := range members {
		totals = append(totals, c.Scores.TotalScore)
		pcts = append(pcts, c.Scores.Percentage)
	}
	gs := GroupStats{
		Count:             len(members),
		AverageScore:      stat.Mean(totals, nil),
		AveragePercentage: stat.Mean(pcts, nil),
	}
	if len(members) > 1 {
		gs.StdDeviation = stat.StdDev(totals, nil)
		gs.PercentageStd = stat.StdDev(pcts, nil)
	}
	return gs
}
