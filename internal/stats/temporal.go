package stats

import (
	"time"
)

// TemporalAnalysis buckets cases by extraction date.
type TemporalAnalysis struct {
	ByYear   map[int]TemporalBucket    `json:"cases_by_year"`
	ByMonth  map[string]TemporalBucket `json:"cases_by_month"`
	Timeline *CollectionWindow         `json:"collection_window,omitempty"`
}

// TemporalBucket holds the case count and mean total score for one period.
// AverageScore covers only scored cases; it is zero when none are scored.
type TemporalBucket struct {
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
}

// CollectionWindow is the span between the earliest and latest extraction.
type CollectionWindow struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	TotalDays int       `json:"total_days"`
}

type bucketAcc struct {
	count  int
	scored int
	sum    float64
}

func (b *bucketAcc) add(total float64, hasScore bool) {
	b.count++
	if hasScore {
		b.scored++
		b.sum += total
	}
}

func (b bucketAcc) bucket() TemporalBucket {
	out := TemporalBucket{Count: b.count}
	if b.scored > 0 {
		out.AverageScore = b.sum / float64(b.scored)
	}
	return out
}

// Temporal buckets cases by extraction year and by calendar month
// ("2025-07"), and reports the overall collection window. Cases with a zero
// extraction date are skipped; nil when none remain.
func (a *Aggregator) Temporal() *TemporalAnalysis {
	years := make(map[int]*bucketAcc)
	months := make(map[string]*bucketAcc)
	var first, last time.Time
	seen := 0
	for _, c := range a.cases {
		t := c.ExtractionDate
		if t.IsZero() {
			continue
		}
		seen++
		var total float64
		if c.Scores != nil {
			total = c.Scores.TotalScore
		}
		y, m := t.Year(), t.Format("2006-01")
		if years[y] == nil {
			years[y] = &bucketAcc{}
		}
		if months[m] == nil {
			months[m] = &bucketAcc{}
		}
		years[y].add(total, c.Scores != nil)
		months[m].add(total, c.Scores != nil)
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}
	if seen == 0 {
		return nil
	}
	out := &TemporalAnalysis{
		ByYear:  make(map[int]TemporalBucket, len(years)),
		ByMonth: make(map[string]TemporalBucket, len(months)),
		Timeline: &CollectionWindow{
			Start:     first,
			End:       last,
			TotalDays: int(last.Sub(first).Hours() / 24),
		},
	}
	for y, acc := range years {
		out.ByYear[y] = acc.bucket()
	}
	for m, acc := range months {
		out.ByMonth[m] = acc.bucket()
	}
	return out
}
