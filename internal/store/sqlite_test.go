package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirf-research/cirf-cli/internal/config"
	"github.com/cirf-research/cirf-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testCase(title, url string) *model.FailureCase {
	scores := model.NewCaseScore(map[model.Component]model.ComponentScore{
		model.ComponentEconomicValue:     {Score: model.ScoreViolated, Confidence: 0.8},
		model.ComponentCulturalIntegrity: {Score: model.ScoreSatisfied, Confidence: 0.7},
	})
	return &model.FailureCase{
		SourceType:      "Academic",
		Title:           title,
		URL:             url,
		LocationCountry: "Canada",
		Sector:          "tourism",
		FailureType:     "bankruptcy",
		Description:     "A cooperative that closed.",
		EvidenceQuality: model.EvidenceMedium,
		Scores:          &scores,
		ExtractionDate:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestSQLite_UpsertCase_Idempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	fc := testCase("Craft failure", "https://example.org/1")
	id1, err := st.UpsertCase(ctx, fc)
	require.NoError(t, err)
	require.Positive(t, id1)

	// Second write with the same (url, title) replaces the row, same id.
	fc.LocationCountry = "Australia"
	id2, err := st.UpsertCase(ctx, fc)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	cases, err := st.AllCases(ctx, CaseFilter{})
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "Australia", cases[0].LocationCountry)
}

func TestSQLite_UpsertCase_DistinctTitles(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	id1, err := st.UpsertCase(ctx, testCase("First", "https://example.org/1"))
	require.NoError(t, err)
	id2, err := st.UpsertCase(ctx, testCase("Second", "https://example.org/1"))
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestSQLite_ScoreRoundTrip(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	fc := testCase("Scored", "https://example.org/s")
	_, err := st.UpsertCase(ctx, fc)
	require.NoError(t, err)

	cases, err := st.AllCases(ctx, CaseFilter{})
	require.NoError(t, err)
	require.Len(t, cases, 1)
	got := cases[0].Scores
	require.NotNil(t, got)

	assert.InDelta(t, fc.Scores.TotalScore, got.TotalScore, 1e-9)
	assert.InDelta(t, fc.Scores.Percentage, got.Percentage, 1e-9)
	assert.Equal(t, model.ScoreViolated, got.Components[model.ComponentEconomicValue].Score)
	assert.Equal(t, model.ScoreSatisfied, got.Components[model.ComponentCulturalIntegrity].Score)
}

func TestSQLite_UnscoredCase(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	fc := testCase("Unscored", "https://example.org/u")
	fc.Scores = nil
	_, err := st.UpsertCase(ctx, fc)
	require.NoError(t, err)

	cases, err := st.AllCases(ctx, CaseFilter{})
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Nil(t, cases[0].Scores)
}

func TestSQLite_AllCases_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := testCase("A", "https://example.org/a")
	b := testCase("B", "https://example.org/b")
	b.LocationCountry = "Australia"
	b.Sector = "crafts"
	b.EvidenceQuality = model.EvidenceHigh
	for _, fc := range []*model.FailureCase{a, b} {
		_, err := st.UpsertCase(ctx, fc)
		require.NoError(t, err)
	}

	byCountry, err := st.AllCases(ctx, CaseFilter{Country: "Australia"})
	require.NoError(t, err)
	require.Len(t, byCountry, 1)
	assert.Equal(t, "B", byCountry[0].Title)

	bySector, err := st.AllCases(ctx, CaseFilter{Sector: "tourism"})
	require.NoError(t, err)
	require.Len(t, bySector, 1)
	assert.Equal(t, "A", bySector[0].Title)

	byQuality, err := st.AllCases(ctx, CaseFilter{MinQuality: model.EvidenceHigh})
	require.NoError(t, err)
	require.Len(t, byQuality, 1)
	assert.Equal(t, "B", byQuality[0].Title)

	limited, err := st.AllCases(ctx, CaseFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLite_CountBy(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	a := testCase("A", "https://example.org/a")
	b := testCase("B", "https://example.org/b")
	b.LocationCountry = "Australia"
	for _, fc := range []*model.FailureCase{a, b} {
		_, err := st.UpsertCase(ctx, fc)
		require.NoError(t, err)
	}

	counts, err := st.CountBy(ctx, "location_country")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Canada": 1, "Australia": 1}, counts)
}

func TestSQLite_CountBy_RejectsUnknownColumn(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.CountBy(context.Background(), "title; DROP TABLE failures")
	require.Error(t, err)
}

func TestSQLite_AverageBy(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertCase(ctx, testCase("A", "https://example.org/a"))
	require.NoError(t, err)

	avgs, err := st.AverageBy(ctx, "total_score", "location_country")
	require.NoError(t, err)
	require.Contains(t, avgs, "Canada")
	assert.InDelta(t, 6.5, avgs["Canada"], 1e-6)

	_, err = st.AverageBy(ctx, "notes", "location_country")
	require.Error(t, err)
}

func TestSQLite_Stats(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	_, err := st.UpsertCase(ctx, testCase("A", "https://example.org/a"))
	require.NoError(t, err)

	stats, err := st.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCases)
	assert.Equal(t, 1, stats.ByCountry["Canada"])
	assert.Equal(t, 1, stats.BySector["tourism"])
}

func TestSQLite_SearchLog(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	entries := []model.SearchLogEntry{
		{RunID: "run-1", SearchTerm: "first query", Source: "semantic_scholar", Timestamp: base, ResultsFound: 3, Status: model.SearchStatusSuccess},
		{RunID: "run-1", SearchTerm: "second query", Source: "semantic_scholar", Timestamp: base.Add(time.Second), ResultsFound: 0, Status: model.SearchStatusFailed},
	}
	for i := range entries {
		require.NoError(t, st.LogSearch(ctx, &entries[i]))
	}

	got, err := st.RecentSearches(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, "second query", got[0].SearchTerm)
	assert.Equal(t, model.SearchStatusFailed, got[0].Status)
	assert.Equal(t, "run-1", got[0].RunID)
	assert.Equal(t, 3, got[1].ResultsFound)

	one, err := st.RecentSearches(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.StoreConfig{Driver: "nosql"})
	require.Error(t, err)
}
