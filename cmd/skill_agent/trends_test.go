package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-twin-engine/internal/config"
	"github.com/jonathan/skill-twin-engine/internal/feed"
	"github.com/jonathan/skill-twin-engine/internal/logger"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

const scenarioPostings = `[
	{"id": "a", "source": "LinkedIn", "title": "React Developer", "raw_skills": ["React.js", "Redux", "CSS3"]},
	{"id": "b", "source": "Indeed", "title": "React Developer", "raw_skills": ["React", "Redux", "CSS"]}
]`

func TestTrendSources(t *testing.T) {
	t.Cleanup(func() {
		trendsInputs, trendsURLs, trendsSource, trendsBrowser = nil, nil, "", false
	})
	trendsInputs = []string{"a.json"}
	trendsURLs = []string{"https://boards.greenhouse.io/acme"}
	trendsSource = "LinkedIn"
	trendsBrowser = true

	cfg := config.Config{Sources: []config.SourceConfig{{Name: "nightly", Kind: config.SourceKindFile, Path: "b.json"}}}
	sources, err := trendSources(cfg, logger.Nop())
	require.NoError(t, err)
	require.Len(t, sources, 3)

	file, ok := sources[0].(*feed.FileSource)
	require.True(t, ok)
	assert.Equal(t, "a.json", file.Path)
	assert.Equal(t, "LinkedIn", file.Source)

	html, ok := sources[1].(*feed.HTMLSource)
	require.True(t, ok)
	assert.True(t, html.UseBrowser)

	assert.Equal(t, "nightly", sources[2].Name())
}

func TestTrendSources_InvalidURL(t *testing.T) {
	t.Cleanup(func() { trendsURLs = nil })
	trendsURLs = []string{"ftp://example.com/jobs"}

	_, err := trendSources(config.Config{}, logger.Nop())
	assert.Error(t, err)
}

func TestTrendsCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "No sources",
			args:        []string{"trends"},
			errorString: "no posting sources",
		},
		{
			name:        "Negative top-k",
			args:        []string{"trends", "--in", "x.json", "--top-k", "-1"},
			errorString: "--top-k must be non-negative",
		},
		{
			name:        "Missing input file",
			args:        []string{"trends", "--in", "/nonexistent/postings.json"},
			errorString: "postings.json",
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

func TestTrendsCommand_Success(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()

	inputFile := filepath.Join(tmpDir, "postings.json")
	require.NoError(t, os.WriteFile(inputFile, []byte(scenarioPostings), 0644))
	outputFile := filepath.Join(tmpDir, "out", "trends.json")

	for _, stream := range []bool{false, true} {
		args := []string{"trends", "--in", inputFile, "--out", outputFile}
		if stream {
			args = append(args, "--stream")
		}
		output, err := command(binaryPath, args...).CombinedOutput()
		require.NoError(t, err, "command failed: %s", string(output))

		data, err := os.ReadFile(outputFile)
		require.NoError(t, err)

		var report types.TrendReport
		require.NoError(t, json.Unmarshal(data, &report))
		assert.Equal(t, 2, report.PostingsReceived)
		assert.Equal(t, 2, report.PostingsResolved)
		assert.Equal(t, "Frontend", report.TrendingTitle)
		skills := make([]string, 0, len(report.Trends))
		for _, trend := range report.Trends {
			skills = append(skills, trend.Skill)
		}
		assert.Contains(t, skills, "React")
		assert.Contains(t, skills, "CSS")
	}
}
