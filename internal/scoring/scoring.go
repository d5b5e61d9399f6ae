// Package scoring aggregates resolved postings into ranked skill trends.
package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// DefaultTopK is the number of trends kept by Score when no K is configured.
const DefaultTopK = 6

// NoSignal is the trending title reported for a batch with no usable title tokens.
const NoSignal = "No Signal"

const (
	credibilityFloor = 20
	credibilityCap   = 99
)

// Scorer ranks skills by how many postings mention them.
type Scorer struct {
	topK int
}

// New returns a Scorer keeping the top k trends. k <= 0 selects DefaultTopK.
func New(k int) *Scorer {
	if k <= 0 {
		k = DefaultTopK
	}
	return &Scorer{topK: k}
}

// TopK returns the configured cut-off.
func (s *Scorer) TopK() int {
	return s.topK
}

// Credibility converts a posting frequency into a bounded percentage:
// min(round(frequency/total*100)+20, 99). An empty batch scores 0.
// The floor and cap are heuristics kept for compatibility with existing reports.
func Credibility(frequency, total int) int {
	if total <= 0 || frequency <= 0 {
		return 0
	}
	score := int(math.Round(float64(frequency)/float64(total)*100)) + credibilityFloor
	if score > credibilityCap {
		return credibilityCap
	}
	return score
}

// Score returns the top K trends.
func (s *Scorer) Score(resolved []types.ResolvedPosting) []types.SkillTrend {
	trends := ScoreAll(resolved)
	if len(trends) > s.topK {
		trends = trends[:s.topK]
	}
	return trends
}

type aggregate struct {
	name     string
	postings int
	sources  map[types.Source]struct{}
}

// ScoreAll returns every skill's trend, ranked by frequency desc, source
// diversity desc, then name asc.
func ScoreAll(resolved []types.ResolvedPosting) []types.SkillTrend {
	total := len(resolved)
	byKey := make(map[string]*aggregate)

	for i := range resolved {
		p := &resolved[i]
		counted := make(map[string]struct{}, len(p.CanonicalSkills))
		for _, skill := range p.CanonicalSkills {
			key := taxonomy.Normalize(skill)
			if key == "" {
				continue
			}
			if _, dup := counted[key]; dup {
				continue
			}
			counted[key] = struct{}{}

			agg, ok := byKey[key]
			if !ok {
				agg = &aggregate{name: skill, sources: make(map[types.Source]struct{})}
				byKey[key] = agg
			}
			agg.postings++
			agg.sources[p.Source] = struct{}{}
		}
	}

	trends := make([]types.SkillTrend, 0, len(byKey))
	for _, agg := range byKey {
		trends = append(trends, types.SkillTrend{
			Skill:            agg.name,
			Frequency:        agg.postings,
			SourceDiversity:  len(agg.sources),
			CredibilityScore: Credibility(agg.postings, total),
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		a, b := trends[i], trends[j]
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if a.SourceDiversity != b.SourceDiversity {
			return a.SourceDiversity > b.SourceDiversity
		}
		ak, bk := strings.ToLower(a.Skill), strings.ToLower(b.Skill)
		if ak != bk {
			return ak < bk
		}
		return a.Skill < b.Skill
	})
	return trends
}
