// Package model defines the core CIRF domain types: the 13 resilience
// components, per-case scores, collected documents, and failure case records.
package model

import "github.com/rotisserie/eris"

// Component identifies one of the 13 CIRF resilience components. The string
// value is the canonical snake_case identifier used in storage column names
// and exports.
type Component string

const (
	ComponentEconomicValue          Component = "economic_value"
	ComponentCulturalIntegrity      Component = "cultural_integrity"
	ComponentAdaptability           Component = "adaptability"
	ComponentSocialEmpowerment      Component = "social_empowerment"
	ComponentCommunityBenefit       Component = "community_benefit"
	ComponentCulturalProtection     Component = "cultural_protection"
	ComponentCommunityRelevance     Component = "community_relevance"
	ComponentSustainableDevelopment Component = "sustainable_development"
	ComponentDignityEmpowerment     Component = "dignity_empowerment"
	ComponentProtectiveCapacity     Component = "protective_capacity"
	ComponentAdaptiveCapacity       Component = "adaptive_capacity"
	ComponentTransformativeCapacity Component = "transformative_capacity"
	ComponentGenerativeCapacity     Component = "generative_capacity"
)

// NumComponents is the size of the CIRF rubric.
const NumComponents = 13

// components holds the rubric order. Every vector, column list, and export
// follows this order.
var components = [NumComponents]Component{
	ComponentEconomicValue,
	ComponentCulturalIntegrity,
	ComponentAdaptability,
	ComponentSocialEmpowerment,
	ComponentCommunityBenefit,
	ComponentCulturalProtection,
	ComponentCommunityRelevance,
	ComponentSustainableDevelopment,
	ComponentDignityEmpowerment,
	ComponentProtectiveCapacity,
	ComponentAdaptiveCapacity,
	ComponentTransformativeCapacity,
	ComponentGenerativeCapacity,
}

// Components returns all components in rubric order.
func Components() []Component {
	return components[:]
}

var displayNames = map[Component]string{
	ComponentEconomicValue:          "Economic Value",
	ComponentCulturalIntegrity:      "Cultural Integrity",
	ComponentAdaptability:           "Adaptability",
	ComponentSocialEmpowerment:      "Social Empowerment",
	ComponentCommunityBenefit:       "Community Benefit",
	ComponentCulturalProtection:     "Cultural Protection",
	ComponentCommunityRelevance:     "Community Relevance",
	ComponentSustainableDevelopment: "Sustainable Development",
	ComponentDignityEmpowerment:     "Dignity & Empowerment",
	ComponentProtectiveCapacity:     "Protective Capacity",
	ComponentAdaptiveCapacity:       "Adaptive Capacity",
	ComponentTransformativeCapacity: "Transformative Capacity",
	ComponentGenerativeCapacity:     "Generative Capacity",
}

// Display returns the human-readable component name used in reports.
func (c Component) Display() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// Column returns the score column name for this component.
func (c Component) Column() string {
	return "score_" + string(c)
}

// ParseComponent resolves a canonical identifier to a Component.
func ParseComponent(s string) (Component, error) {
	c := Component(s)
	if _, ok := displayNames[c]; !ok {
		return "", eris.Errorf("model: unknown component %q", s)
	}
	return c, nil
}
