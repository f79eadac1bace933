package scorer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirf-research/cirf-cli/internal/model"
)

func TestAnalyzeComponent_Violation(t *testing.T) {
	s := NewDefault()

	text := "The market failure was a total disaster. The market collapsed horribly and everything was lost."
	cs := s.AnalyzeComponent(text, model.ComponentEconomicValue)

	assert.Equal(t, model.ScoreViolated, cs.Score)
	assert.InDelta(t, 0.8, cs.Confidence, 1e-9) // saturated presence * violation confidence
}

func TestAnalyzeComponent_Satisfaction(t *testing.T) {
	s := NewDefault()

	text := "The market thrived and profit grew wonderfully. Revenue was excellent and the market was a great success."
	cs := s.AnalyzeComponent(text, model.ComponentEconomicValue)

	assert.Equal(t, model.ScoreSatisfied, cs.Score)
	assert.InDelta(t, 0.7, cs.Confidence, 1e-9)
}

func TestAnalyzeComponent_WeakPresence(t *testing.T) {
	s := NewDefault()

	// One keyword hit diluted across ~1500 filler words lands between the
	// weak and strong presence thresholds.
	text := strings.Repeat("lorem ipsum dolor sit amet ", 300) + "revenue"
	cs := s.AnalyzeComponent(text, model.ComponentEconomicValue)

	assert.Equal(t, model.ScoreMixed, cs.Score)
	assert.Less(t, cs.Confidence, 0.2)
	assert.Greater(t, cs.Confidence, 0.0)
}

func TestAnalyzeComponent_NoEvidence(t *testing.T) {
	s := NewDefault()

	cs := s.AnalyzeComponent("the cat sat on the mat", model.ComponentEconomicValue)

	assert.Equal(t, model.ScoreMixed, cs.Score)
	assert.InDelta(t, 0.2, cs.Confidence, 1e-9)
}

func TestAnalyzeText_EmptyInput(t *testing.T) {
	s := NewDefault()

	scores, info := s.AnalyzeText("")

	assert.Zero(t, scores)
	assert.Zero(t, info)
}

func TestAnalyzeText_FullRubric(t *testing.T) {
	s := NewDefault()

	scores, _ := s.AnalyzeText("The heritage tourism cooperative in Canada went bankrupt after revenue collapsed.")

	require.Len(t, scores.Components, model.NumComponents)
	for c, cs := range scores.Components {
		assert.Contains(t, []float64{model.ScoreViolated, model.ScoreMixed, model.ScoreSatisfied}, cs.Score, "component %s", c)
		assert.GreaterOrEqual(t, cs.Confidence, 0.0)
		assert.LessOrEqual(t, cs.Confidence, 1.0)
	}
	assert.InDelta(t, scores.TotalScore/model.NumComponents*100, scores.Percentage, 1e-9)
}

func TestExtractKeyInfo(t *testing.T) {
	s := NewDefault()

	info := s.ExtractKeyInfo("Reports describe how Maple Heritage Cooperative in Canada faced bankruptcy and closure after its tourism season collapsed.")

	assert.Equal(t, "Maple Heritage Cooperative", info.BusinessName)
	assert.Equal(t, "Canada", info.Location)
	assert.Contains(t, info.Sector, "tourism")
	assert.Contains(t, info.FailureType, "bankruptcy")
	assert.Contains(t, info.FailureType, "closure")
}

func TestExtractKeyInfo_NothingFound(t *testing.T) {
	s := NewDefault()

	info := s.ExtractKeyInfo("nothing of interest here")

	assert.Zero(t, info)
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))

	bad := DefaultConfig()
	bad.PresenceThreshold = 1.5
	require.Error(t, ValidateConfig(bad))

	inverted := DefaultConfig()
	inverted.WeakPresenceThreshold = inverted.PresenceThreshold + 0.1
	require.Error(t, ValidateConfig(inverted))
}
