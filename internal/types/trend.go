// Package types provides type definitions for structured data used throughout the skill-twin engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SkillTrend aggregates one canonical skill over a batch of resolved postings.
type SkillTrend struct {
	Skill            string `json:"skill"`
	Frequency        int    `json:"frequency"`
	SourceDiversity  int    `json:"source_diversity"`
	CredibilityScore int    `json:"credibility_score"`
}

// TrendReport is the response to a trend request.
type TrendReport struct {
	RunID             string       `json:"run_id,omitempty"`
	TaxonomyVersion   string       `json:"taxonomy_version,omitempty"`
	PostingsReceived  int          `json:"postings_received"`
	PostingsResolved  int          `json:"postings_resolved"`
	DuplicatesDropped int          `json:"duplicates_dropped"`
	TrendingTitle     string       `json:"trending_title"`
	Trends            []SkillTrend `json:"trends"`
}
