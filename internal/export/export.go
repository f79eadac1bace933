// Package export writes the case table to CSV and XLSX files for analysis in
// external tools. Both formats share the storage column order.
package export

import (
	"strconv"
	"time"

	"github.com/cirf-research/cirf-cli/internal/model"
	"github.com/cirf-research/cirf-cli/internal/store"
)

// Header returns the export column names.
func Header() []string {
	return store.CaseColumns()
}

// Row flattens a case into string cells in Header order. Unscored cases get
// empty score cells, matching their NULL storage representation.
func Row(fc *model.FailureCase) []string {
	row := []string{
		strconv.FormatInt(fc.ID, 10),
		fc.SourceType,
		fc.Citation,
		fc.Title,
		fc.Authors,
		formatDate(fc.PublicationDate),
		fc.URL,
		fc.LocationCountry,
		fc.LocationRegion,
		fc.CulturalContext,
		fc.Sector,
		formatDate(fc.FailureDate),
		fc.FailureType,
		fc.Description,
		fc.DetailedAnalysis,
		strconv.Itoa(fc.EvidenceQuality),
	}
	for _, c := range model.Components() {
		if fc.Scores == nil {
			row = append(row, "")
			continue
		}
		row = append(row, formatScore(fc.Scores.Components[c].Score))
	}
	if fc.Scores == nil {
		row = append(row, "", "", "")
	} else {
		row = append(row,
			formatScore(fc.Scores.TotalScore),
			formatScore(fc.Scores.Percentage),
			formatScore(fc.Scores.Confidence),
		)
	}
	return append(row, fc.Notes, fc.ExtractionDate.UTC().Format(time.RFC3339))
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
