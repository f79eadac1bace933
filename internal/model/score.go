package model

// Component score levels. Scores are categorical: a component is either
// clearly violated, clearly satisfied, or the evidence is mixed.
const (
	ScoreViolated  = 0.0
	ScoreMixed     = 0.5
	ScoreSatisfied = 1.0
)

// neutralConfidence is the confidence assigned when a component has no
// evidence at all.
const neutralConfidence = 0.2

// ComponentScore is one component's assessment for one case.
type ComponentScore struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// CaseScore is the full CIRF assessment of one case. TotalScore, Percentage,
// and Confidence are derived from Components and must never be set directly;
// NewCaseScore is the only constructor.
type CaseScore struct {
	Components map[Component]ComponentScore `json:"components"`
	TotalScore float64                      `json:"total_score"`
	Percentage float64                      `json:"percentage"`
	Confidence float64                      `json:"confidence"`
}

// NewCaseScore builds a CaseScore from per-component assessments. Components
// missing from the input default to a mixed score with neutral confidence, so
// the result always covers the full rubric. TotalScore is the sum of the 13
// scores, Percentage its share of the maximum, and Confidence the mean
// component confidence.
func NewCaseScore(scores map[Component]ComponentScore) CaseScore {
	cs := CaseScore{Components: make(map[Component]ComponentScore, NumComponents)}
	confSum := 0.0
	for _, c := range Components() {
		s, ok := scores[c]
		if !ok {
			s = ComponentScore{Score: ScoreMixed, Confidence: neutralConfidence}
		}
		cs.Components[c] = s
		cs.TotalScore += s.Score
		confSum += s.Confidence
	}
	cs.Percentage = cs.TotalScore / NumComponents * 100
	cs.Confidence = confSum / NumComponents
	return cs
}

// Vector returns the 13 component scores in rubric order.
func (cs *CaseScore) Vector() []float64 {
	v := make([]float64, NumComponents)
	for i, c := range Components() {
		v[i] = cs.Components[c].Score
	}
	return v
}
