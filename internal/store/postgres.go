package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/cirf-research/cirf-cli/internal/db"
	"github.com/cirf-research/cirf-cli/internal/model"
)

// PostgresStore implements Store using pgxpool. It mirrors the SQLite schema
// so either backend can hold the research dataset.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

func postgresMigration() string {
	var scoreCols strings.Builder
	for _, c := range model.Components() {
		fmt.Fprintf(&scoreCols, "\t%s DOUBLE PRECISION,\n", c.Column())
	}

	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS failures (
	id                BIGSERIAL PRIMARY KEY,
	source_type       TEXT NOT NULL DEFAULT '',
	citation          TEXT NOT NULL DEFAULT '',
	title             TEXT NOT NULL DEFAULT '',
	authors           TEXT NOT NULL DEFAULT '',
	publication_date  TIMESTAMPTZ,
	url               TEXT NOT NULL DEFAULT '',
	location_country  TEXT NOT NULL DEFAULT '',
	location_region   TEXT NOT NULL DEFAULT '',
	cultural_context  TEXT NOT NULL DEFAULT '',
	sector            TEXT NOT NULL DEFAULT '',
	failure_date      TIMESTAMPTZ,
	failure_type      TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	detailed_analysis TEXT NOT NULL DEFAULT '',
	evidence_quality  INTEGER NOT NULL DEFAULT 0,
%s	total_score       DOUBLE PRECISION,
	percentage        DOUBLE PRECISION,
	confidence_score  DOUBLE PRECISION,
	notes             TEXT NOT NULL DEFAULT '',
	extraction_date   TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE(url, title)
);

CREATE TABLE IF NOT EXISTS search_log (
	id            BIGSERIAL PRIMARY KEY,
	run_id        TEXT NOT NULL DEFAULT '',
	search_term   TEXT NOT NULL,
	source        TEXT NOT NULL,
	timestamp     TIMESTAMPTZ NOT NULL DEFAULT now(),
	results_found INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_failures_country ON failures(location_country);
CREATE INDEX IF NOT EXISTS idx_failures_sector ON failures(sector);
CREATE INDEX IF NOT EXISTS idx_search_log_timestamp ON search_log(timestamp);
`, scoreCols.String())
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration())
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) UpsertCase(ctx context.Context, fc *model.FailureCase) (int64, error) {
	cols := caseColumns()

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	var updates []string
	for _, col := range cols {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	query := fmt.Sprintf(
		`INSERT INTO failures (%s) VALUES (%s)
		 ON CONFLICT (url, title) DO UPDATE SET %s
		 RETURNING id`,
		strings.Join(cols, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "),
	)

	var id int64
	if err := s.pool.QueryRow(ctx, query, caseArgs(fc)...).Scan(&id); err != nil {
		return 0, eris.Wrapf(err, "postgres: upsert case %q", fc.Title)
	}
	return id, nil
}

func (s *PostgresStore) AllCases(ctx context.Context, filter CaseFilter) ([]model.FailureCase, error) {
	query := fmt.Sprintf(`SELECT %s FROM failures WHERE 1=1`, strings.Join(CaseColumns(), ", "))
	var args []any
	argNum := 1

	appendArg := func(clause string, v any) {
		query += fmt.Sprintf(clause, argNum)
		args = append(args, v)
		argNum++
	}

	if filter.Country != "" {
		appendArg(` AND location_country = $%d`, filter.Country)
	}
	if filter.Sector != "" {
		appendArg(` AND sector = $%d`, filter.Sector)
	}
	if filter.SourceType != "" {
		appendArg(` AND source_type = $%d`, filter.SourceType)
	}
	if filter.MinQuality > 0 {
		appendArg(` AND evidence_quality >= $%d`, filter.MinQuality)
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		appendArg(` LIMIT $%d`, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list cases")
	}
	defer rows.Close()

	var cases []model.FailureCase
	for rows.Next() {
		fc, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, *fc)
	}
	return cases, eris.Wrap(rows.Err(), "postgres: list cases iterate")
}

func (s *PostgresStore) CountBy(ctx context.Context, column string) (map[string]int, error) {
	if err := checkGroupColumn(column); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s::TEXT, COUNT(*) FROM failures GROUP BY %s ORDER BY COUNT(*) DESC`,
		column, column,
	)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: count by %s", column)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key sql.NullString
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan count")
		}
		counts[key.String] = n
	}
	return counts, eris.Wrap(rows.Err(), "postgres: count iterate")
}

func (s *PostgresStore) AverageBy(ctx context.Context, column, groupBy string) (map[string]float64, error) {
	if err := checkValueColumn(column); err != nil {
		return nil, err
	}
	if err := checkGroupColumn(groupBy); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s::TEXT, AVG(%s) FROM failures WHERE %s IS NOT NULL GROUP BY %s`,
		groupBy, column, column, groupBy,
	)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: average %s by %s", column, groupBy)
	}
	defer rows.Close()

	avgs := make(map[string]float64)
	for rows.Next() {
		var key sql.NullString
		var avg sql.NullFloat64
		if err := rows.Scan(&key, &avg); err != nil {
			return nil, eris.Wrap(err, "postgres: scan average")
		}
		avgs[key.String] = avg.Float64
	}
	return avgs, eris.Wrap(rows.Err(), "postgres: average iterate")
}

func (s *PostgresStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}

	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM failures`).Scan(&st.TotalCases); err != nil {
		return nil, eris.Wrap(err, "postgres: count cases")
	}

	var err error
	if st.ByCountry, err = s.CountBy(ctx, "location_country"); err != nil {
		return nil, err
	}
	if st.BySector, err = s.CountBy(ctx, "sector"); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *PostgresStore) LogSearch(ctx context.Context, entry *model.SearchLogEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO search_log (run_id, search_term, source, timestamp, results_found, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.RunID, entry.SearchTerm, entry.Source, ts, entry.ResultsFound, entry.Status,
	)
	return eris.Wrap(err, "postgres: log search")
}

func (s *PostgresStore) RecentSearches(ctx context.Context, limit int) ([]model.SearchLogEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, run_id, search_term, source, timestamp, results_found, status
		 FROM search_log ORDER BY timestamp DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: recent searches")
	}
	defer rows.Close()

	var entries []model.SearchLogEntry
	for rows.Next() {
		var e model.SearchLogEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.SearchTerm, &e.Source, &e.Timestamp, &e.ResultsFound, &e.Status); err != nil {
			return nil, eris.Wrap(err, "postgres: scan search entry")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "postgres: searches iterate")
}
