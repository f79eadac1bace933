package scorer

import "github.com/cirf-research/cirf-cli/internal/model"

// KeywordTable maps each CIRF component to its indicator keyword list.
// The table is built once at startup and treated as immutable; Keywords
// returns a copy so callers cannot mutate the shared lists.
type KeywordTable struct {
	keywords map[model.Component][]string
}

// NewKeywordTable copies the given mapping into an immutable table.
func NewKeywordTable(keywords map[model.Component][]string) *KeywordTable {
	kt := &KeywordTable{keywords: make(map[model.Component][]string, len(keywords))}
	for c, list := range keywords {
		kt.keywords[c] = append([]string(nil), list...)
	}
	return kt
}

// Keywords returns the keyword list for a component.
func (kt *KeywordTable) Keywords(c model.Component) []string {
	return append([]string(nil), kt.keywords[c]...)
}

// DefaultKeywordTable returns the published CIRF component vocabulary.
func DefaultKeywordTable() *KeywordTable {
	return NewKeywordTable(map[model.Component][]string{
		model.ComponentEconomicValue: {
			"revenue", "profit", "income", "sales", "market", "financial",
			"sustainable", "viable", "economic", "commercial", "business model",
		},
		model.ComponentCulturalIntegrity: {
			"authentic", "traditional", "heritage", "cultural", "preserve",
			"respect", "accurate", "genuine", "original", "indigenous",
		},
		model.ComponentAdaptability: {
			"flexible", "adapt", "change", "respond", "evolve", "modify",
			"adjust", "responsive", "adaptable", "pivot",
		},
		model.ComponentSocialEmpowerment: {
			"community", "capacity", "skills", "leadership", "participation",
			"empowerment", "training", "education", "development",
		},
		model.ComponentCommunityBenefit: {
			"benefit", "positive", "improve", "help", "support", "local",
			"community", "impact", "contribution", "value",
		},
		model.ComponentCulturalProtection: {
			"protect", "safeguard", "preserve", "maintain", "heritage",
			"tradition", "conservation", "cultural protection",
		},
		model.ComponentCommunityRelevance: {
			"relevant", "appropriate", "needed", "wanted", "aligned",
			"suitable", "meaningful", "significant", "important",
		},
		model.ComponentSustainableDevelopment: {
			"sustainable", "long-term", "environmental", "future", "viable",
			"sustainability", "green", "eco-friendly",
		},
		model.ComponentDignityEmpowerment: {
			"dignity", "respect", "self-determination", "autonomy", "control",
			"empowerment", "independence", "self-reliance",
		},
		model.ComponentProtectiveCapacity: {
			"protect", "defend", "safeguard", "secure", "shield", "guard",
			"protection", "safety", "security",
		},
		model.ComponentAdaptiveCapacity: {
			"adapt", "flexible", "responsive", "adjust", "modify", "resilient",
			"adaptation", "flexibility", "agility",
		},
		model.ComponentTransformativeCapacity: {
			"transform", "innovate", "change", "evolve", "develop", "create",
			"innovation", "transformation", "evolution",
		},
		model.ComponentGenerativeCapacity: {
			"generate", "create", "produce", "develop", "build", "establish",
			"generation", "creation", "productivity",
		},
	})
}

// FailureIndicators is the fixed vocabulary used for failure-type extraction
// and evidence-quality grading.
var FailureIndicators = []string{
	"bankruptcy", "closure", "failed", "collapse", "shutdown",
	"terminated", "discontinued", "abandoned", "unsuccessful",
}
