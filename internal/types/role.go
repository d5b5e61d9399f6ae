// Package types provides type definitions for structured data used throughout the skill-twin engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// RoleProfile is the static requirement and market metadata for one target role.
// RequiredSkills is ordered by hiring priority.
type RoleProfile struct {
	Name           string   `json:"name" yaml:"name" validate:"required"`
	RequiredSkills []string `json:"required_skills" yaml:"required_skills"`
	EmergingSkills []string `json:"emerging_skills,omitempty" yaml:"emerging_skills,omitempty"`
	SalaryBand     string   `json:"salary_band,omitempty" yaml:"salary_band,omitempty"`
	DemandLevel    string   `json:"demand_level,omitempty" yaml:"demand_level,omitempty"`
	GrowthRate     string   `json:"growth_rate,omitempty" yaml:"growth_rate,omitempty"`
}
