package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-twin-engine/internal/extract"
	"github.com/jonathan/skill-twin-engine/internal/gap"
	"github.com/jonathan/skill-twin-engine/internal/pipeline"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation error: skills - failed required", (&ErrValidation{Field: "skills", Message: "failed required"}).Error())
	assert.Equal(t, "trend run not found: abc", (&ErrNotFound{Resource: "trend run", ID: "abc"}).Error())
	assert.Equal(t, "stored runs is not available on this server", (&ErrUnavailable{Feature: "stored runs"}).Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", &ErrValidation{Field: "x", Message: "y"}, http.StatusBadRequest},
		{"not found", &ErrNotFound{Resource: "plan", ID: "1"}, http.StatusNotFound},
		{"unknown role", fmt.Errorf("%w: %q", pipeline.ErrUnknownRole, "Astronaut"), http.StatusNotFound},
		{"collapsing requirements", &gap.DuplicateRequirementError{Role: "r", First: "React", Duplicate: "ReactJS", Canonical: "React"}, http.StatusBadRequest},
		{"unavailable", &ErrUnavailable{Feature: "stored runs"}, http.StatusServiceUnavailable},
		{"model call", &extract.ModelError{Label: "resume", Cause: errors.New("quota")}, http.StatusBadGateway},
		{"model answer", fmt.Errorf("wrapped: %w", &extract.AnswerError{Label: "resume", Excerpt: "bad json"}), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	req := types.GapRequest{
		CandidateSkills: []string{"Go"},
		RoleProfile:     &types.RoleProfile{RequiredSkills: []string{"Go"}},
	}
	err := validationError(req.Validate())

	var ve *ErrValidation
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "role_profile.name", ve.Field)
	assert.Equal(t, "failed required", ve.Message)

	err = validationError(errors.New("unexpected EOF"))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "body", ve.Field)
}

func TestJSONFieldPath(t *testing.T) {
	assert.Equal(t, "top_k", jsonFieldPath("TrendRequest.TopK"))
	assert.Equal(t, "candidate_skills[3]", jsonFieldPath("GapRequest.CandidateSkills[3]"))
	assert.Equal(t, "text", jsonFieldPath("Text"))
}
