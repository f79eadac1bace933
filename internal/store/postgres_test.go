package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &PostgresStore{pool: mock}, mock
}

// upsertArgs matches the full failures column list, pinning title and url
// and accepting anything for the rest.
func upsertArgs(title, url string) []any {
	args := make([]any, len(caseColumns()))
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	args[2] = title
	args[5] = url
	return args
}

func TestPostgres_UpsertCase(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`INSERT INTO failures .* ON CONFLICT \(url, title\) DO UPDATE SET .* RETURNING id`).
		WithArgs(upsertArgs("Craft failure", "https://example.org/1")...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(7)))

	fc := testCase("Craft failure", "https://example.org/1")
	id, err := s.UpsertCase(context.Background(), fc)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpsertCase_Error(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`INSERT INTO failures`).
		WithArgs(upsertArgs("X", "https://example.org/x")...).
		WillReturnError(assert.AnError)

	_, err := s.UpsertCase(context.Background(), testCase("X", "https://example.org/x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert case")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_LogSearch(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	ts := time.Now().UTC()
	mock.ExpectExec(`INSERT INTO search_log`).
		WithArgs("run-1", "a query", "semantic_scholar", ts, 5, model.SearchStatusSuccess).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.LogSearch(context.Background(), &model.SearchLogEntry{
		RunID:        "run-1",
		SearchTerm:   "a query",
		Source:       "semantic_scholar",
		Timestamp:    ts,
		ResultsFound: 5,
		Status:       model.SearchStatusSuccess,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_RecentSearches(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	ts := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "run_id", "search_term", "source", "timestamp", "results_found", "status"}).
		AddRow(int64(2), "run-1", "second", "semantic_scholar", ts, 0, model.SearchStatusFailed).
		AddRow(int64(1), "run-1", "first", "semantic_scholar", ts.Add(-time.Minute), 3, model.SearchStatusSuccess)

	mock.ExpectQuery(`SELECT id, run_id, search_term, source, timestamp, results_found, status\s+FROM search_log`).
		WithArgs(10).
		WillReturnRows(rows)

	entries, err := s.RecentSearches(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].SearchTerm)
	assert.Equal(t, 3, entries[1].ResultsFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CountBy_RejectsUnknownColumn(t *testing.T) {
	s, _ := newMockPostgresStore(t)

	_, err := s.CountBy(context.Background(), "notes")
	require.Error(t, err)
}

func TestPostgres_Stats(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM failures`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT location_country::TEXT, COUNT\(\*\)`).
		WillReturnRows(pgxmock.NewRows([]string{"location_country", "count"}).AddRow("Canada", 2).AddRow("Australia", 1))
	mock.ExpectQuery(`SELECT sector::TEXT, COUNT\(\*\)`).
		WillReturnRows(pgxmock.NewRows([]string{"sector", "count"}).AddRow("tourism", 3))

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalCases)
	assert.Equal(t, 2, st.ByCountry["Canada"])
	assert.Equal(t, 3, st.BySector["tourism"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
