package stats

import (
	"gonum.org/v1/gonum/stat"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// ComponentStats summarizes one CIRF component across all scored cases.
type ComponentStats struct {
	Violations    int     `json:"violations"`
	TotalCases    int     `json:"total_cases"`
	ViolationRate float64 `json:"violation_rate"`
	AverageScore  float64 `json:"average_score"`
	StdDeviation  float64 `json:"std_deviation"`
}

// ComponentFrequency reports, per component, how many scored cases show a
// clear violation (score 0.0), the violation rate over scored cases, and the
// mean and sample standard deviation of the score. Cases with no stored
// scores are excluded from every component's totals.
func (a *Aggregator) ComponentFrequency() map[string]ComponentStats {
	out := make(map[string]ComponentStats, model.NumComponents)
	for _, comp := range model.Components() {
		var scores []float64
		violations := 0
		for _, c := range a.cases {
			if c.Scores == nil {
				continue
			}
			s := c.Scores.Components[comp].Score
			scores = append(scores, s)
			if s == model.ScoreViolated {
				violations++
			}
		}
		cs := ComponentStats{Violations: violations, TotalCases: len(scores)}
		if len(scores) > 0 {
			cs.ViolationRate = float64(violations) / float64(len(scores))
			cs.AverageScore = stat.Mean(scores, nil)
		}
		if len(scores) > 1 {
			cs.StdDeviation = stat.StdDev(scores, nil)
		}
		out[comp.Display()] = cs
	}
	return out
}
