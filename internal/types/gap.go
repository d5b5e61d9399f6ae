// Package types provides type definitions for structured data used throughout the skill-twin engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// GapReport is the structured difference between a candidate's skills and a role's requirements.
// MatchedSkills and MissingSkills together hold every required skill exactly once,
// in the role's declared priority order.
type GapReport struct {
	Role            string   `json:"role,omitempty"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	MatchScore      int      `json:"match_score"`
	EmergingMatched []string `json:"emerging_matched,omitempty"`
	EmergingMissing []string `json:"emerging_missing,omitempty"`
}

// GapPlan pairs a gap report with the roadmap generated from it.
type GapPlan struct {
	RunID   string    `json:"run_id,omitempty"`
	Report  GapReport `json:"report"`
	Roadmap Roadmap   `json:"roadmap"`
}
