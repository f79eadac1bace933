// Package scorer maps free text onto the 13-component CIRF rubric using
// keyword-density and sentence-sentiment heuristics.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/cirf-research/cirf-cli/internal/config"
)

// DefaultConfig returns the scoring thresholds the framework was published
// with. Kept in config rather than hard-coded: the constants are heuristic
// and may need recalibration.
func DefaultConfig() config.ScorerConfig {
	return config.ScorerConfig{
		PresenceThreshold:      0.1,
		WeakPresenceThreshold:  0.05,
		SentimentThreshold:     0.1,
		DensityScale:           100,
		ViolationConfidence:    0.8,
		SatisfactionConfidence: 0.7,
		MixedConfidence:        0.5,
		NoEvidenceConfidence:   0.2,
	}
}

// ValidateConfig checks that a ScorerConfig is internally consistent.
func ValidateConfig(c config.ScorerConfig) error {
	var errs []string

	unitInterval := map[string]float64{
		"presence_threshold":      c.PresenceThreshold,
		"weak_presence_threshold": c.WeakPresenceThreshold,
		"sentiment_threshold":     c.SentimentThreshold,
		"violation_confidence":    c.ViolationConfidence,
		"satisfaction_confidence": c.SatisfactionConfidence,
		"mixed_confidence":        c.MixedConfidence,
		"no_evidence_confidence":  c.NoEvidenceConfidence,
	}
	for name, v := range unitInterval {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Sprintf("%s must be in [0, 1]", name))
		}
	}

	if c.WeakPresenceThreshold > c.PresenceThreshold {
		errs = append(errs, "weak_presence_threshold must be <= presence_threshold")
	}
	if c.DensityScale <= 0 {
		errs = append(errs, "density_scale must be > 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
