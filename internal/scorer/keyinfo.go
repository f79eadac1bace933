package scorer

import (
	"regexp"
	"strings"
)

// KeyInfo is best-effort descriptive metadata pulled from raw text. It
// pre-fills FailureCase fields and carries no correctness guarantee.
type KeyInfo struct {
	BusinessName string `json:"business_name"`
	Location     string `json:"location"`
	Sector       string `json:"sector"`
	FailureType  string `json:"failure_type"`
}

// businessNameRe matches capitalized phrases ending in a company designator,
// e.g. "Acme Crafts Co." or "Red River Heritage Cooperative".
var businessNameRe = regexp.MustCompile(
	`\b[A-Z][a-z]+ (?:[A-Z][a-z]+ )*(?:Enterprise|Company|Co\.|Ltd|Inc|Corporation|Corp|Business|Venture|Project|Initiative|Cooperative)`,
)

// ExtractKeyInfo scans text for a candidate enterprise name, known geographic
// and sector terms, and failure-indicator words.
func (s *Scorer) ExtractKeyInfo(text string) KeyInfo {
	textLower := strings.ToLower(text)

	var info KeyInfo
	if m := businessNameRe.FindString(text); m != "" {
		info.BusinessName = m
	}

	info.Location = joinMatches(textLower, s.geoTerms)
	info.Sector = joinMatches(textLower, s.sectors)
	info.FailureType = joinMatches(textLower, FailureIndicators)

	return info
}

// joinMatches returns a comma-joined list of terms present in textLower.
func joinMatches(textLower string, terms []string) string {
	var found []string
	for _, t := range terms {
		if strings.Contains(textLower, strings.ToLower(t)) {
			found = append(found, t)
		}
	}
	return strings.Join(found, ", ")
}
