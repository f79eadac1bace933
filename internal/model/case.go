package model

import "time"

// Evidence quality grades, ordinal 1-3.
const (
	EvidenceLow    = 1
	EvidenceMedium = 2
	EvidenceHigh   = 3
)

// Document is a raw record acquired from a source, before scoring.
type Document struct {
	Title      string `json:"title"`
	Abstract   string `json:"abstract"`
	URL        string `json:"url"`
	SourceName string `json:"source_name"`
	Authors    string `json:"authors"`
	Citation   string `json:"citation"`
}

// FailureCase is one documented cultural enterprise failure, scored against
// the CIRF rubric. Scores is nil for cases persisted before scoring.
type FailureCase struct {
	ID               int64      `json:"id"`
	SourceType       string     `json:"source_type"`
	Citation         string     `json:"citation"`
	Title            string     `json:"title"`
	Authors          string     `json:"authors"`
	PublicationDate  *time.Time `json:"publication_date,omitempty"`
	URL              string     `json:"url"`
	LocationCountry  string     `json:"location_country"`
	LocationRegion   string     `json:"location_region"`
	CulturalContext  string     `json:"cultural_context"`
	Sector           string     `json:"sector"`
	FailureDate      *time.Time `json:"failure_date,omitempty"`
	FailureType      string     `json:"failure_type"`
	Description      string     `json:"description"`
	DetailedAnalysis string     `json:"detailed_analysis"`
	EvidenceQuality  int        `json:"evidence_quality"`
	Scores           *CaseScore `json:"scores,omitempty"`
	Notes            string     `json:"notes"`
	ExtractionDate   time.Time  `json:"extraction_date"`
}

// Search log statuses.
const (
	SearchStatusSuccess = "success"
	SearchStatusFailed  = "failed"
)

// SearchLogEntry records one query issued during a collection run. The log is
// append-only.
type SearchLogEntry struct {
	ID           int64     `json:"id"`
	RunID        string    `json:"run_id"`
	SearchTerm   string    `json:"search_term"`
	Source       string    `json:"source"`
	Timestamp    time.Time `json:"timestamp"`
	ResultsFound int       `json:"results_found"`
	Status       string    `json:"status"`
}
