package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

const minTitleTokenLength = 3

// InferTrendingTitle returns the most frequent title token across the batch.
// Each posting contributes its canonical title, or its raw title when it has
// none. Tokens of two characters or fewer and stop words are ignored, ties go
// to the token seen first, and the first-seen spelling is reported.
// The result is advisory. An empty batch yields NoSignal.
func InferTrendingTitle(resolved []types.ResolvedPosting, tax *taxonomy.Taxonomy) string {
	type tally struct {
		surface string
		count   int
		order   int
	}
	counts := make(map[string]*tally)

	for i := range resolved {
		for _, field := range strings.Fields(resolved[i].DisplayTitle()) {
			token := strings.Trim(field, "()[]{},;:\"'|/-")
			if utf8.RuneCountInString(token) < minTitleTokenLength {
				continue
			}
			if tax != nil && tax.IsStopWord(token) {
				continue
			}
			key := strings.ToLower(token)
			t, ok := counts[key]
			if !ok {
				t = &tally{surface: token, order: len(counts)}
				counts[key] = t
			}
			t.count++
		}
	}

	var best *tally
	for _, t := range counts {
		if best == nil || t.count > best.count || (t.count == best.count && t.order < best.order) {
			best = t
		}
	}
	if best == nil {
		return NoSignal
	}
	return best.surface
}
