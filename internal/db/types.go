package db

import (
	"time"

	"github.com/google/uuid"
)

// TrendRun is the header row of a stored trend report.
type TrendRun struct {
	ID                uuid.UUID `json:"id"`
	TaxonomyVersion   string    `json:"taxonomy_version"`
	PostingsReceived  int       `json:"postings_received"`
	PostingsResolved  int       `json:"postings_resolved"`
	DuplicatesDropped int       `json:"duplicates_dropped"`
	TrendingTitle     string    `json:"trending_title"`
	CreatedAt         time.Time `json:"created_at"`
}

// DefaultListLimit caps ListTrendRuns when no limit is given.
const DefaultListLimit = 50
