package scorer

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cirf-research/cirf-cli/internal/model"
)

// evidenceVocabulary is the subset of failure indicators that qualifies a
// long document for the highest evidence grade.
var evidenceVocabulary = []string{"failure", "collapse", "closure"}

// Processor turns source documents into scored FailureCase records. It holds
// no state beyond the scorer and does not persist anything; storage is the
// caller's concern, which keeps the scoring core independent of network and
// database timing.
type Processor struct {
	scorer *Scorer
}

// NewProcessor wraps a Scorer for document processing.
func NewProcessor(s *Scorer) *Processor {
	return &Processor{scorer: s}
}

// Process builds a FailureCase from a document. The analysis input is the
// concatenated title and abstract, never raw markup.
func (p *Processor) Process(doc model.Document) model.FailureCase {
	analysisText := strings.TrimSpace(doc.Title + " " + doc.Abstract)

	scores, info := p.scorer.AnalyzeText(analysisText)

	fc := model.FailureCase{
		SourceType:       sourceTypeOrUnknown(doc.SourceName),
		Citation:         doc.Citation,
		Title:            doc.Title,
		Authors:          doc.Authors,
		URL:              doc.URL,
		LocationCountry:  info.Location,
		Sector:           info.Sector,
		FailureType:      info.FailureType,
		Description:      doc.Abstract,
		DetailedAnalysis: analysisText,
		EvidenceQuality:  gradeEvidence(analysisText),
		Scores:           &scores,
		ExtractionDate:   time.Now().UTC(),
	}

	zap.L().Debug("processor: scored document",
		zap.String("title", doc.Title),
		zap.Float64("total_score", scores.TotalScore),
		zap.Int("evidence_quality", fc.EvidenceQuality),
	)

	return fc
}

// gradeEvidence assigns the ordinal 1-3 reliability grade: 3 for long text
// mentioning the failure vocabulary, 2 for medium-length text, 1 otherwise.
func gradeEvidence(text string) int {
	if len(text) > 500 && containsAny(strings.ToLower(text), evidenceVocabulary) {
		return model.EvidenceHigh
	}
	if len(text) > 200 {
		return model.EvidenceMedium
	}
	return model.EvidenceLow
}

func containsAny(textLower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(textLower, t) {
			return true
		}
	}
	return false
}

func sourceTypeOrUnknown(source string) string {
	if source == "" {
		return "Unknown"
	}
	return source
}
