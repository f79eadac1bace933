package scorer

import (
	"strings"

	"github.com/jonreiter/govader"
)

// sentimentAnalyzer scores sentence polarity with the VADER lexicon.
// VADER's compound score is already normalized to [-1, 1].
type sentimentAnalyzer struct {
	scores func(string) govader.Sentiment
}

func newSentimentAnalyzer() *sentimentAnalyzer {
	analyzer := govader.NewSentimentIntensityAnalyzer()
	return &sentimentAnalyzer{scores: analyzer.PolarityScores}
}

// polarity returns the compound polarity of a sentence in [-1, 1].
func (sa *sentimentAnalyzer) polarity(sentence string) float64 {
	return sa.scores(sentence).Compound
}

// splitSentences breaks text into sentences on terminal punctuation.
// Abbreviation handling is deliberately naive; over-splitting only shortens
// the windows sentiment is averaged over and does not change keyword counts.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		b.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()

	return sentences
}
