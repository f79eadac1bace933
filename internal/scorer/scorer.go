package scorer

import (
	"math"
	"strings"

	"github.com/cirf-research/cirf-cli/internal/config"
	"github.com/cirf-research/cirf-cli/internal/model"
)

// Scorer converts free text into a CIRF CaseScore. It performs no I/O and
// never fails: any input, including empty or non-language noise, produces a
// structurally valid result. Scoring is deterministic, so independent
// documents can be scored concurrently without coordination.
type Scorer struct {
	keywords  *KeywordTable
	cfg       config.ScorerConfig
	sentiment *sentimentAnalyzer
	geoTerms  []string
	sectors   []string
}

// New creates a Scorer with the given keyword table and thresholds.
// Geographic and sector terms feed the key-info extraction only.
func New(keywords *KeywordTable, cfg config.ScorerConfig, geoTerms, sectorTerms []string) *Scorer {
	return &Scorer{
		keywords:  keywords,
		cfg:       cfg,
		sentiment: newSentimentAnalyzer(),
		geoTerms:  append([]string(nil), geoTerms...),
		sectors:   append([]string(nil), sectorTerms...),
	}
}

// NewDefault creates a Scorer with the published keyword table, default
// thresholds, and the standard geographic/sector vocabularies.
func NewDefault() *Scorer {
	return New(DefaultKeywordTable(), DefaultConfig(),
		[]string{
			"Canada", "Australia", "New Zealand", "United States",
			"Africa", "Asia", "Europe", "Latin America",
		},
		[]string{
			"tourism", "crafts", "artisan", "heritage", "museum",
			"festival", "cooperative", "social enterprise",
		},
	)
}

// AnalyzeComponent scores one CIRF component against the text.
//
// Presence is keyword density (case-insensitive substring hits per word)
// scaled and saturated at 1.0; one hit per hundred words already saturates.
// Sentiment is averaged over the sentences that mention a keyword. The
// decision table is evaluated in order, first match wins:
//
//	strong presence + negative sentiment -> violated (0.0)
//	strong presence + positive sentiment -> satisfied (1.0)
//	weak presence                        -> mixed evidence (0.5)
//	otherwise                            -> no evidence (0.5, low confidence)
func (s *Scorer) AnalyzeComponent(text string, component model.Component) model.ComponentScore {
	keywords := s.keywords.Keywords(component)
	if len(keywords) == 0 {
		return model.ComponentScore{Score: model.ScoreMixed, Confidence: 0}
	}

	textLower := strings.ToLower(text)

	keywordCount := 0
	for _, kw := range keywords {
		keywordCount += strings.Count(textLower, strings.ToLower(kw))
	}

	totalWords := len(strings.Fields(text))
	if totalWords < 1 {
		totalWords = 1
	}
	density := float64(keywordCount) / float64(totalWords)
	presence := math.Min(density*s.cfg.DensityScale, 1.0)

	avgSentiment := s.keywordSentiment(text, keywords)

	switch {
	case presence > s.cfg.PresenceThreshold && avgSentiment < -s.cfg.SentimentThreshold:
		return model.ComponentScore{Score: model.ScoreViolated, Confidence: presence * s.cfg.ViolationConfidence}
	case presence > s.cfg.PresenceThreshold && avgSentiment > s.cfg.SentimentThreshold:
		return model.ComponentScore{Score: model.ScoreSatisfied, Confidence: presence * s.cfg.SatisfactionConfidence}
	case presence > s.cfg.WeakPresenceThreshold:
		return model.ComponentScore{Score: model.ScoreMixed, Confidence: presence * s.cfg.MixedConfidence}
	default:
		return model.ComponentScore{Score: model.ScoreMixed, Confidence: s.cfg.NoEvidenceConfidence}
	}
}

// keywordSentiment averages polarity over sentences containing at least one
// keyword. Returns 0 when no sentence is relevant.
func (s *Scorer) keywordSentiment(text string, keywords []string) float64 {
	var sum float64
	var n int

	for _, sentence := range splitSentences(text) {
		sentenceLower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if strings.Contains(sentenceLower, strings.ToLower(kw)) {
				sum += s.sentiment.polarity(sentence)
				n++
				break
			}
		}
	}

	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// AnalyzeText runs the full CIRF analysis: key-info extraction plus one
// AnalyzeComponent pass per rubric component. Empty input yields a zero-value
// CaseScore and empty KeyInfo; that is a valid degenerate result, not an error.
func (s *Scorer) AnalyzeText(text string) (model.CaseScore, KeyInfo) {
	if text == "" {
		return model.CaseScore{}, KeyInfo{}
	}

	info := s.ExtractKeyInfo(text)

	components := make(map[model.Component]model.ComponentScore, model.NumComponents)
	for _, c := range model.Components() {
		components[c] = s.AnalyzeComponent(text, c)
	}

	return model.NewCaseScore(components), info
}
