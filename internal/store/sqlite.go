package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// caseColumns returns the failure-case column list in declared schema order:
// descriptive fields, one score column per rubric component, then the
// aggregate score columns. Exported through CaseColumns for file export.
func caseColumns() []string {
	cols := []string{
		"source_type", "citation", "title", "authors", "publication_date",
		"url", "location_country", "location_region", "cultural_context",
		"sector", "failure_date", "failure_type", "description",
		"detailed_analysis", "evidence_quality",
	}
	for _, c := range model.Components() {
		cols = append(cols, c.Column())
	}
	cols = append(cols, "total_score", "percentage", "confidence_score", "notes", "extraction_date")
	return cols
}

// CaseColumns returns the full export column order: id first, then the
// declared schema order.
func CaseColumns() []string {
	return append([]string{"id"}, caseColumns()...)
}

func sqliteMigration() string {
	var scoreCols strings.Builder
	for _, c := range model.Components() {
		fmt.Fprintf(&scoreCols, "\t%s REAL,\n", c.Column())
	}

	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS failures (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	source_type       TEXT NOT NULL DEFAULT '',
	citation          TEXT NOT NULL DEFAULT '',
	title             TEXT NOT NULL DEFAULT '',
	authors           TEXT NOT NULL DEFAULT '',
	publication_date  DATETIME,
	url               TEXT NOT NULL DEFAULT '',
	location_country  TEXT NOT NULL DEFAULT '',
	location_region   TEXT NOT NULL DEFAULT '',
	cultural_context  TEXT NOT NULL DEFAULT '',
	sector            TEXT NOT NULL DEFAULT '',
	failure_date      DATETIME,
	failure_type      TEXT NOT NULL DEFAULT '',
	description       TEXT NOT NULL DEFAULT '',
	detailed_analysis TEXT NOT NULL DEFAULT '',
	evidence_quality  INTEGER NOT NULL DEFAULT 0,
%s	total_score       REAL,
	percentage        REAL,
	confidence_score  REAL,
	notes             TEXT NOT NULL DEFAULT '',
	extraction_date   DATETIME NOT NULL DEFAULT (datetime('now')),
	UNIQUE(url, title)
);

CREATE TABLE IF NOT EXISTS search_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL DEFAULT '',
	search_term   TEXT NOT NULL,
	source        TEXT NOT NULL,
	timestamp     DATETIME NOT NULL DEFAULT (datetime('now')),
	results_found INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_failures_country ON failures(location_country);
CREATE INDEX IF NOT EXISTS idx_failures_sector ON failures(sector);
CREATE INDEX IF NOT EXISTS idx_search_log_timestamp ON search_log(timestamp);
`, scoreCols.String())
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration())
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpsertCase inserts a failure case or replaces the existing row with the same
// (url, title). The replacement is whole-row: rescoring a document overwrites
// all prior values rather than patching individual components.
func (s *SQLiteStore) UpsertCase(ctx context.Context, fc *model.FailureCase) (int64, error) {
	cols := caseColumns()
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	var updates []string
	for _, col := range cols {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", col, col))
	}

	query := fmt.Sprintf(
		`INSERT INTO failures (%s) VALUES (%s)
		 ON CONFLICT(url, title) DO UPDATE SET %s
		 RETURNING id`,
		strings.Join(cols, ", "), placeholders, strings.Join(updates, ", "),
	)

	var id int64
	err := s.db.QueryRowContext(ctx, query, caseArgs(fc)...).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: upsert case %q", fc.Title)
	}
	return id, nil
}

// caseArgs flattens a FailureCase into values matching caseColumns order.
func caseArgs(fc *model.FailureCase) []any {
	extraction := fc.ExtractionDate
	if extraction.IsZero() {
		extraction = time.Now().UTC()
	}

	args := []any{
		fc.SourceType, fc.Citation, fc.Title, fc.Authors, nullTime(fc.PublicationDate),
		fc.URL, fc.LocationCountry, fc.LocationRegion, fc.CulturalContext,
		fc.Sector, nullTime(fc.FailureDate), fc.FailureType, fc.Description,
		fc.DetailedAnalysis, fc.EvidenceQuality,
	}
	for _, c := range model.Components() {
		if fc.Scores == nil {
			args = append(args, nil)
			continue
		}
		args = append(args, fc.Scores.Components[c].Score)
	}
	if fc.Scores == nil {
		args = append(args, nil, nil, nil)
	} else {
		args = append(args, fc.Scores.TotalScore, fc.Scores.Percentage, fc.Scores.Confidence)
	}
	return append(args, fc.Notes, extraction)
}

func (s *SQLiteStore) AllCases(ctx context.Context, filter CaseFilter) ([]model.FailureCase, error) {
	query := fmt.Sprintf(`SELECT %s FROM failures WHERE 1=1`, strings.Join(CaseColumns(), ", "))
	var args []any

	if filter.Country != "" {
		query += ` AND location_country = ?`
		args = append(args, filter.Country)
	}
	if filter.Sector != "" {
		query += ` AND sector = ?`
		args = append(args, filter.Sector)
	}
	if filter.SourceType != "" {
		query += ` AND source_type = ?`
		args = append(args, filter.SourceType)
	}
	if filter.MinQuality > 0 {
		query += ` AND evidence_quality >= ?`
		args = append(args, filter.MinQuality)
	}
	query += ` ORDER BY id`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list cases")
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
	return cases, eris.Wrap(rows.Err(), "sqlite: list cases iterate")
}

func (s *SQLiteStore) CountBy(ctx context.Context, column string) (map[string]int, error) {
	if err := checkGroupColumn(column); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT CAST(%s AS TEXT), COUNT(*) FROM failures GROUP BY %s ORDER BY COUNT(*) DESC`,
		column, column,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: count by %s", column)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key sql.NullString
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan count")
		}
		counts[key.String] = n
	}
	return counts, eris.Wrap(rows.Err(), "sqlite: count iterate")
}

func (s *SQLiteStore) AverageBy(ctx context.Context, column, groupBy string) (map[string]float64, error) {
	if err := checkValueColumn(column); err != nil {
		return nil, err
	}
	if err := checkGroupColumn(groupBy); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT CAST(%s AS TEXT), AVG(%s) FROM failures WHERE %s IS NOT NULL GROUP BY %s`,
		groupBy, column, column, groupBy,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: average %s by %s", column, groupBy)
	}
	defer rows.Close()

	avgs := make(map[string]float64)
	for rows.Next() {
		var key sql.NullString
		var avg sql.NullFloat64
		if err := rows.Scan(&key, &avg); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan average")
		}
		avgs[key.String] = avg.Float64
	}
	return avgs, eris.Wrap(rows.Err(), "sqlite: average iterate")
}

func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	st := &Stats{}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM failures`).Scan(&st.TotalCases); err != nil {
		return nil, eris.Wrap(err, "sqlite: count cases")
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

func (s *SQLiteStore) LogSearch(ctx context.Context, entry *model.SearchLogEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_log (run_id, search_term, source, timestamp, results_found, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.SearchTerm, entry.Source, ts, entry.ResultsFound, entry.Status,
	)
	return eris.Wrap(err, "sqlite: log search")
}

func (s *SQLiteStore) RecentSearches(ctx context.Context, limit int) ([]model.SearchLogEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, search_term, source, timestamp, results_found, status
		 FROM search_log ORDER BY timestamp DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: recent searches")
	}
	defer rows.Close()

	var entries []model.SearchLogEntry
	for rows.Next() {
		var e model.SearchLogEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.SearchTerm, &e.Source, &e.Timestamp, &e.ResultsFound, &e.Status); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan search entry")
		}
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "sqlite: searches iterate")
}

// helpers

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

type scannable interface {
	Scan(dest ...any) error
}

// scanCase reads a full failures row in CaseColumns order. Score columns are
// nullable; a row with all score columns NULL represents an unscored case.
func scanCase(row scannable) (*model.FailureCase, error) {
	var fc model.FailureCase
	var pubDate, failDate sql.NullTime
	scoreVals := make([]sql.NullFloat64, model.NumComponents)
	var total, pct, conf sql.NullFloat64

	dest := []any{
		&fc.ID, &fc.SourceType, &fc.Citation, &fc.Title, &fc.Authors, &pubDate,
		&fc.URL, &fc.LocationCountry, &fc.LocationRegion, &fc.CulturalContext,
		&fc.Sector, &failDate, &fc.FailureType, &fc.Description,
		&fc.DetailedAnalysis, &fc.EvidenceQuality,
	}
	for i := range scoreVals {
		dest = append(dest, &scoreVals[i])
	}
	dest = append(dest, &total, &pct, &conf, &fc.Notes, &fc.ExtractionDate)

	if err := row.Scan(dest...); err != nil {
		return nil, eris.Wrap(err, "sqlite: scan case")
	}

	if pubDate.Valid {
		fc.PublicationDate = &pubDate.Time
	}
	if failDate.Valid {
		fc.FailureDate = &failDate.Time
	}
	fc.Scores = rebuildScores(scoreVals, conf)

	return &fc, nil
}

// rebuildScores reassembles a CaseScore from stored columns. Per-component
// confidences are not persisted, so every component carries the stored
// aggregate confidence; NewCaseScore then recomputes the derived fields from
// the component scores, preserving the total/percentage invariant.
func rebuildScores(scoreVals []sql.NullFloat64, conf sql.NullFloat64) *model.CaseScore {
	scored := false
	for _, v := range scoreVals {
		if v.Valid {
			scored = true
			break
		}
	}
	if !scored {
		return nil
	}

	components := make(map[model.Component]model.ComponentScore, model.NumComponents)
	for i, c := range model.Components() {
		score := model.ScoreMixed
		if scoreVals[i].Valid {
			score = scoreVals[i].Float64
		}
		components[c] = model.ComponentScore{Score: score, Confidence: conf.Float64}
	}
	cs := model.NewCaseScore(components)
	return &cs
}
