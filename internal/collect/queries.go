package collect

import (
	"strings"

	"github.com/cirf-research/cirf-cli/internal/config"
)

// GenerateQueries expands the configured primary search terms with geographic
// and sector modifiers. Each primary term appears bare, then once per
// modifier. Duplicates (case-insensitive) are dropped, order is preserved.
func GenerateQueries(cfg config.CollectConfig) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" {
			return
		}
		key := strings.ToLower(q)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}

	for _, term := range cfg.PrimaryTerms {
		add(term)
		for _, geo := range cfg.GeographicModifiers {
			add(term + " " + geo)
		}
		for _, sector := range cfg.SectorModifiers {
			add(term + " " + sector)
		}
	}
	return out
}
