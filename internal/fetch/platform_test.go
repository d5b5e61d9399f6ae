package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

func TestDetectSource(t *testing.T) {
	tests := []struct {
		url      string
		expected types.Source
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", types.SourceGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", types.SourceGreenhouse},
		{"https://jobs.lever.co/company/job-id", types.SourceLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/careers", types.SourceWorkday},
		{"https://www.linkedin.com/jobs/search?keywords=go", types.SourceLinkedIn},
		{"https://www.naukri.com/golang-jobs", types.SourceNaukri},
		{"https://in.indeed.com/jobs?q=python", types.SourceIndeed},
		{"https://www.glassdoor.co.in/Job/index.htm", types.SourceGlassdoor},
		{"https://jobs.example.com/listing", types.SourceAggregator},
		{"://bad", types.SourceAggregator},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectSource(tt.url))
		})
	}
}
