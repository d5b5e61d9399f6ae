// Package types provides type definitions for structured data used throughout the skill-twin engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// TrendRequest asks for scored skill trends over a batch of raw postings.
// An empty batch is valid and yields an empty report.
type TrendRequest struct {
	Postings []RawPosting `json:"postings" validate:"max=20000"`
	TopK     int          `json:"top_k,omitempty" validate:"gte=0,lte=500"`
}

// GapRequest asks for a gap report and roadmap for one candidate against one role.
// Either Role (a configured role name) or RoleProfile (an inline profile) must be given.
type GapRequest struct {
	CandidateSkills []string     `json:"candidate_skills" validate:"max=1000,dive,max=200"`
	Role            string       `json:"role,omitempty" validate:"required_without=RoleProfile"`
	RoleProfile     *RoleProfile `json:"role_profile,omitempty"`
	HorizonWeeks    int          `json:"horizon_weeks,omitempty" validate:"gte=0,lte=104"`
}

// ExtractRequest carries free text (resume, syllabus) to run through a skill extractor.
type ExtractRequest struct {
	Text string `json:"text" validate:"required,max=200000"`
}

// ExtractResponse lists extracted skills split by whether the taxonomy recognizes them.
type ExtractResponse struct {
	Skills    []string `json:"skills"`
	Validated []string `json:"validated"`
	Uncertain []string `json:"uncertain"`
}

// ValidateSkillsRequest asks which of the given skills the taxonomy recognizes.
type ValidateSkillsRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,required"`
}

// Validate validates the TrendRequest using the validator.
func (r *TrendRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the GapRequest using the validator.
func (r *GapRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ExtractRequest using the validator.
func (r *ExtractRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ValidateSkillsRequest using the validator.
func (r *ValidateSkillsRequest) Validate() error {
	return validate.Struct(r)
}
