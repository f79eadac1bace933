// Package store persists scored failure cases and the search audit log.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/cirf-research/cirf-cli/internal/config"
	"github.com/cirf-research/cirf-cli/internal/model"
)

// CaseFilter narrows AllCases scans. Zero value means no filtering.
type CaseFilter struct {
	Country    string `json:"country,omitempty"`
	Sector     string `json:"sector,omitempty"`
	SourceType string `json:"source_type,omitempty"`
	MinQuality int    `json:"min_quality,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// Stats summarizes the stored dataset.
type Stats struct {
	TotalCases int            `json:"total_cases"`
	ByCountry  map[string]int `json:"by_country"`
	BySector   map[string]int `json:"by_sector"`
}

// Store is the case repository contract the analysis core depends on.
// Writes are single-row upserts keyed on UNIQUE(url, title); no multi-step
// transactions are required.
type Store interface {
	// Cases
	UpsertCase(ctx context.Context, fc *model.FailureCase) (int64, error)
	AllCases(ctx context.Context, filter CaseFilter) ([]model.FailureCase, error)
	CountBy(ctx context.Context, column string) (map[string]int, error)
	AverageBy(ctx context.Context, column, groupBy string) (map[string]float64, error)
	Stats(ctx context.Context) (*Stats, error)

	// Search log (append-only)
	LogSearch(ctx context.Context, entry *model.SearchLogEntry) error
	RecentSearches(ctx context.Context, limit int) ([]model.SearchLogEntry, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs the configured store backend.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(context.Background(), cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}

// groupColumns are the columns CountBy and AverageBy may group on.
var groupColumns = map[string]bool{
	"location_country": true,
	"location_region":  true,
	"sector":           true,
	"source_type":      true,
	"failure_type":     true,
	"evidence_quality": true,
}

// valueColumns are the numeric columns AverageBy may aggregate.
var valueColumns = map[string]bool{
	"total_score":      true,
	"percentage":       true,
	"confidence_score": true,
	"evidence_quality": true,
}

func init() {
	for _, c := range model.Components() {
		valueColumns[c.Column()] = true
	}
}

// checkGroupColumn guards group-by identifiers interpolated into SQL.
func checkGroupColumn(column string) error {
	if !groupColumns[column] {
		return eris.Errorf("store: column %q not allowed for grouping", column)
	}
	return nil
}

// checkValueColumn guards aggregate identifiers interpolated into SQL.
func checkValueColumn(column string) error {
	if !valueColumns[column] {
		return eris.Errorf("store: column %q not allowed for aggregation", column)
	}
	return nil
}
