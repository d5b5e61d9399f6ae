package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"single", "Python", []string{"Python"}},
		{"trims and drops blanks", " Python , ,SQL ,", []string{"Python", "SQL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSkills(tt.input))
		})
	}
}

func TestGapCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --role flag",
			args:        []string{"gap", "--skills", "Python"},
			errorString: "required",
		},
		{
			name:        "Both skills and resume",
			args:        []string{"gap", "--role", "Data Scientist", "--skills", "Python", "--resume", "cv.txt"},
			errorString: "cannot use both",
		},
		{
			name:        "Unknown role",
			args:        []string{"gap", "--role", "Astronaut", "--skills", "Python"},
			errorString: "Astronaut",
		},
		{
			name:        "LLM without key",
			args:        []string{"gap", "--role", "Data Scientist", "--resume", "gap_test.go", "--llm"},
			errorString: "API key",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := command(binaryPath, tt.args...).CombinedOutput()
			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}

func TestGapCommand_Success(t *testing.T) {
	binaryPath := getBinaryPath(t)
	outputFile := filepath.Join(t.TempDir(), "plan.json")

	output, err := command(binaryPath, "gap", "--role", "data scientist", "--skills", "Python,SQL", "--out", outputFile).CombinedOutput()
	require.NoError(t, err, "command failed: %s", string(output))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var plan types.GapPlan
	require.NoError(t, json.Unmarshal(data, &plan))
	assert.Equal(t, "Data Scientist", plan.Report.Role)
	assert.Equal(t, []string{"Python", "SQL"}, plan.Report.MatchedSkills)
	assert.Equal(t, []string{"Machine Learning", "TensorFlow", "Pandas", "Statistics"}, plan.Report.MissingSkills)
	assert.Equal(t, 33, plan.Report.MatchScore)
	assert.Equal(t, 8, plan.Roadmap.HorizonWeeks)
	assert.Len(t, plan.Roadmap.Steps, 5)
}

func TestGapCommand_Resume(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	resume := filepath.Join(tmpDir, "resume.txt")
	require.NoError(t, os.WriteFile(resume, []byte("Built ETL jobs in Python and SQL; trained models with TensorFlow."), 0644))

	output, err := command(binaryPath, "gap", "--role", "Data Scientist", "--resume", resume, "--horizon", "12").CombinedOutput()
	require.NoError(t, err, "command failed: %s", string(output))

	var plan types.GapPlan
	require.NoError(t, json.Unmarshal(output, &plan))
	assert.Equal(t, []string{"Python", "SQL", "TensorFlow"}, plan.Report.MatchedSkills)
	assert.Equal(t, 12, plan.Roadmap.HorizonWeeks)
}
