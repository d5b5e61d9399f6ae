package fetch

import (
	"net/url"
	"strings"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

var hostSources = []struct {
	fragment string
	source   types.Source
}{
	{"greenhouse.io", types.SourceGreenhouse},
	{"lever.co", types.SourceLever},
	{"workday.com", types.SourceWorkday},
	{"myworkdayjobs.com", types.SourceWorkday},
	{"linkedin.com", types.SourceLinkedIn},
	{"naukri.com", types.SourceNaukri},
	{"indeed.", types.SourceIndeed},
	{"glassdoor.", types.SourceGlassdoor},
}

// DetectSource identifies the job board behind a URL.
// Unrecognized hosts map to types.SourceAggregator.
func DetectSource(urlStr string) types.Source {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return types.SourceAggregator
	}
	host := strings.ToLower(parsed.Host)
	for _, hs := range hostSources {
		if strings.Contains(host, hs.fragment) {
			return hs.source
		}
	}
	return types.SourceAggregator
}
