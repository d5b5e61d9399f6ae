package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrendRequest_Validate(t *testing.T) {
	assert.NoError(t, (&TrendRequest{}).Validate(), "empty batch is valid")
	assert.NoError(t, (&TrendRequest{TopK: 6}).Validate())
	assert.Error(t, (&TrendRequest{TopK: -1}).Validate())
}

func TestGapRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     GapRequest
		wantErr bool
	}{
		{
			name: "role name",
			req:  GapRequest{CandidateSkills: []string{"Python"}, Role: "Data Scientist"},
		},
		{
			name: "inline profile",
			req: GapRequest{
				CandidateSkills: []string{"Python"},
				RoleProfile:     &RoleProfile{Name: "Custom", RequiredSkills: []string{"Go"}},
			},
		},
		{
			name:    "no role",
			req:     GapRequest{CandidateSkills: []string{"Python"}},
			wantErr: true,
		},
		{
			name:    "inline profile without name",
			req:     GapRequest{RoleProfile: &RoleProfile{RequiredSkills: []string{"Go"}}},
			wantErr: true,
		},
		{
			name:    "negative horizon",
			req:     GapRequest{Role: "Data Scientist", HorizonWeeks: -2},
			wantErr: true,
		},
		{
			name:    "skill too long",
			req:     GapRequest{Role: "Data Scientist", CandidateSkills: []string{strings.Repeat("x", 201)}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExtractAndValidateSkillsRequests(t *testing.T) {
	assert.Error(t, (&ExtractRequest{}).Validate())
	assert.NoError(t, (&ExtractRequest{Text: "Python, SQL"}).Validate())

	assert.Error(t, (&ValidateSkillsRequest{}).Validate())
	assert.Error(t, (&ValidateSkillsRequest{Skills: []string{""}}).Validate())
	assert.NoError(t, (&ValidateSkillsRequest{Skills: []string{"Go"}}).Validate())
}
