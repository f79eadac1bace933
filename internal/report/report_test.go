package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirf-research/cirf-cli/internal/model"
	"github.com/cirf-research/cirf-cli/internal/stats"
	"github.com/cirf-research/cirf-cli/internal/store"
)

func scoredCase(country, sector string, first float64) model.FailureCase {
	scores := model.NewCaseScore(map[model.Component]model.ComponentScore{
		model.ComponentEconomicValue: {Score: first, Confidence: 0.8},
	})
	return model.FailureCase{
		Title:           "case",
		LocationCountry: country,
		Sector:          sector,
		EvidenceQuality: model.EvidenceMedium,
		Scores:          &scores,
		ExtractionDate:  time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestFormat_FullReport(t *testing.T) {
	cases := []model.FailureCase{
		scoredCase("Canada", "tourism", model.ScoreViolated),
		scoredCase("Canada", "tourism", model.ScoreViolated),
		scoredCase("Australia", "crafts", model.ScoreSatisfied),
	}
	analysis := stats.NewAggregator(cases).Comprehensive()
	dbStats := &store.Stats{
		TotalCases: 3,
		ByCountry:  map[string]int{"Canada": 2, "Australia": 1},
		BySector:   map[string]int{"tourism": 2, "crafts": 1},
	}

	out := Format(analysis, dbStats, time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC))

	assert.Contains(t, out, "# Cultural Innovation Resilience Framework (CIRF) Analysis Report")
	assert.Contains(t, out, "Generated: 2025-08-01 09:30:00")
	assert.Contains(t, out, "Total failure cases analyzed: 3")
	assert.Contains(t, out, "## CIRF Component Violation Analysis")
	assert.Contains(t, out, "Economic Value")
	assert.Contains(t, out, "## Geographic Distribution")
	assert.Contains(t, out, "- Canada: 2 cases")
	assert.Contains(t, out, "## Sector Analysis")
	assert.Contains(t, out, "Tourism") // title-cased sector
	assert.Contains(t, out, "## Collection Timeline")

	// Below the clustering minimum, so the section is absent.
	assert.NotContains(t, out, "## Failure Pattern Clusters")
}

func TestFormat_EmptyDataset(t *testing.T) {
	analysis := stats.NewAggregator(nil).Comprehensive()

	out := Format(analysis, &store.Stats{}, time.Now())

	require.Contains(t, out, "Total failure cases analyzed: 0")
	assert.NotContains(t, out, "## Geographic Distribution")
	assert.NotContains(t, out, "## Component Correlations")
}

func TestFormat_ViolationOrdering(t *testing.T) {
	cases := []model.FailureCase{
		scoredCase("Canada", "tourism", model.ScoreViolated),
		scoredCase("Canada", "tourism", model.ScoreViolated),
	}
	analysis := stats.NewAggregator(cases).Comprehensive()

	out := Format(analysis, nil, time.Now())

	// Economic Value is the only violated component, so it leads the list.
	section := out[strings.Index(out, "### Most Frequently Violated Components"):]
	lines := strings.Split(section, "\n")
	require.Greater(t, len(lines), 1)
	assert.Contains(t, lines[1], "Economic Value")
	assert.Contains(t, lines[1], "100.0%")
}
