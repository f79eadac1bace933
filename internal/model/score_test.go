package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCaseScore_DerivedFields(t *testing.T) {
	input := map[Component]ComponentScore{
		ComponentEconomicValue:     {Score: ScoreViolated, Confidence: 0.8},
		ComponentCulturalIntegrity: {Score: ScoreSatisfied, Confidence: 0.7},
		ComponentAdaptability:      {Score: ScoreMixed, Confidence: 0.5},
	}

	cs := NewCaseScore(input)

	require.Len(t, cs.Components, NumComponents)

	// 0.0 + 1.0 + 0.5 + ten defaulted mixed components.
	assert.InDelta(t, 1.5+10*0.5, cs.TotalScore, 1e-9)
	assert.InDelta(t, cs.TotalScore/NumComponents*100, cs.Percentage, 1e-9)

	// Missing components default to mixed with the neutral confidence.
	def := cs.Components[ComponentGenerativeCapacity]
	assert.Equal(t, ScoreMixed, def.Score)
	assert.InDelta(t, 0.2, def.Confidence, 1e-9)

	wantConf := (0.8 + 0.7 + 0.5 + 10*0.2) / NumComponents
	assert.InDelta(t, wantConf, cs.Confidence, 1e-9)
}

func TestNewCaseScore_EmptyInput(t *testing.T) {
	cs := NewCaseScore(nil)

	require.Len(t, cs.Components, NumComponents)
	assert.InDelta(t, 6.5, cs.TotalScore, 1e-9)
	assert.InDelta(t, 50.0, cs.Percentage, 1e-9)
	assert.InDelta(t, 0.2, cs.Confidence, 1e-9)
}

func TestCaseScore_VectorOrder(t *testing.T) {
	cs := NewCaseScore(map[Component]ComponentScore{
		ComponentEconomicValue:      {Score: ScoreViolated},
		ComponentGenerativeCapacity: {Score: ScoreSatisfied},
	})

	v := cs.Vector()
	require.Len(t, v, NumComponents)
	assert.Equal(t, ScoreViolated, v[0])
	assert.Equal(t, ScoreSatisfied, v[NumComponents-1])
}

func TestParseComponent(t *testing.T) {
	c, err := ParseComponent("economic_value")
	require.NoError(t, err)
	assert.Equal(t, ComponentEconomicValue, c)
	assert.Equal(t, "Economic Value", c.Display())
	assert.Equal(t, "score_economic_value", c.Column())

	_, err = ParseComponent("profitability")
	require.Error(t, err)
}

func TestComponents_StableOrder(t *testing.T) {
	first := Components()
	second := Components()
	assert.Equal(t, first, second)
	assert.Equal(t, ComponentEconomicValue, first[0])
	assert.Len(t, first, NumComponents)
}
