// Package types provides type definitions for structured data used throughout the skill-twin engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"strings"
	"time"
)

// Source identifies the job board a posting was received from.
type Source string

// Known posting sources. Anything else is folded into SourceAggregator.
const (
	SourceLinkedIn   Source = "LinkedIn"
	SourceNaukri     Source = "Naukri"
	SourceIndeed     Source = "Indeed"
	SourceGlassdoor  Source = "Glassdoor"
	SourceGreenhouse Source = "Greenhouse"
	SourceLever      Source = "Lever"
	SourceWorkday    Source = "Workday"
	SourceAggregator Source = "Aggregator"
)

var knownSources = map[string]Source{
	"linkedin":   SourceLinkedIn,
	"naukri":     SourceNaukri,
	"indeed":     SourceIndeed,
	"glassdoor":  SourceGlassdoor,
	"greenhouse": SourceGreenhouse,
	"lever":      SourceLever,
	"workday":    SourceWorkday,
	"aggregator": SourceAggregator,
}

// ParseSource maps a free-text source name to a known Source.
// Unknown and empty values map to SourceAggregator.
func ParseSource(s string) Source {
	if src, ok := knownSources[strings.ToLower(strings.TrimSpace(s))]; ok {
		return src
	}
	return SourceAggregator
}

// UnmarshalJSON decodes a source leniently so a single bad record never fails a batch.
func (s *Source) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Non-string values (numbers, objects) are treated as unknown sources
		*s = SourceAggregator
		return nil //nolint:nilerr // tolerant decoding
	}
	*s = ParseSource(raw)
	return nil
}

// RawPosting is a single job advertisement as received from a source feed.
type RawPosting struct {
	ID         string    `json:"id"`
	Source     Source    `json:"source"`
	Title      string    `json:"title"`
	RawSkills  []string  `json:"raw_skills"`
	ObservedAt time.Time `json:"observed_at"`
}

// ResolvedPosting is a RawPosting after title and skill normalization.
// CanonicalTitle is empty when the title had no exact alias.
type ResolvedPosting struct {
	ID              string    `json:"id"`
	Source          Source    `json:"source"`
	Title           string    `json:"title"`
	CanonicalTitle  string    `json:"canonical_title,omitempty"`
	CanonicalSkills []string  `json:"canonical_skills"`
	ObservedAt      time.Time `json:"observed_at"`
}

// DisplayTitle returns the canonical title when one was assigned, otherwise the raw title.
func (p *ResolvedPosting) DisplayTitle() string {
	if p.CanonicalTitle != "" {
		return p.CanonicalTitle
	}
	return p.Title
}

// CanonicalSkill is a normalized skill entity with the aliases that feed into it.
type CanonicalSkill struct {
	CanonicalName string   `json:"canonical_name" yaml:"canonical_name"`
	Aliases       []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}
