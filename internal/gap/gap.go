// Package gap compares a candidate's skills with a role's requirements.
package gap

import (
	"fmt"
	"math"

	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// Analyzer canonicalizes both sides through one taxonomy before comparing.
type Analyzer struct {
	tax *taxonomy.Taxonomy
}

// New returns an Analyzer bound to tax.
func New(tax *taxonomy.Taxonomy) *Analyzer {
	return &Analyzer{tax: tax}
}

// DuplicateRequirementError reports two required skills of one role that
// resolve to the same canonical skill, e.g. "React" and "ReactJS".
type DuplicateRequirementError struct {
	Role      string
	First     string
	Duplicate string
	Canonical string
}

func (e *DuplicateRequirementError) Error() string {
	return fmt.Sprintf("role %q: required skills %q and %q both resolve to %q", e.Role, e.First, e.Duplicate, e.Canonical)
}

// CheckRequirements rejects a role whose required skills collapse under the
// taxonomy. Analyze would report such a pair once, so callers that need
// matched and missing to cover RequiredSkills exactly check first.
func (a *Analyzer) CheckRequirements(role types.RoleProfile) error {
	first := make(map[string]string, len(role.RequiredSkills))
	for _, s := range role.RequiredSkills {
		key, ok := a.requirementKey(s)
		if !ok {
			continue
		}
		if prev, dup := first[key]; dup {
			canonical, _ := a.tax.ResolveSkill(s)
			return &DuplicateRequirementError{Role: role.Name, First: prev, Duplicate: s, Canonical: canonical}
		}
		first[key] = s
	}
	return nil
}

// Analyze splits role.RequiredSkills into matched and missing, keeping the
// role's priority order. Only canonical identity counts as a match.
// A role with no requirements scores 100. Requirements that resolve to one
// canonical skill are reported once, under the first spelling; see
// CheckRequirements.
func (a *Analyzer) Analyze(candidate []string, role types.RoleProfile) types.GapReport {
	have := make(map[string]struct{}, len(candidate))
	for _, s := range candidate {
		if key, ok := a.key(s); ok {
			have[key] = struct{}{}
		}
	}

	matched, missing := a.split(role.RequiredSkills, have)
	emergingMatched, emergingMissing := a.split(role.EmergingSkills, have)

	report := types.GapReport{
		Role:          role.Name,
		MatchedSkills: matched,
		MissingSkills: missing,
		MatchScore:    100,
	}
	if len(role.EmergingSkills) > 0 {
		report.EmergingMatched = emergingMatched
		report.EmergingMissing = emergingMissing
	}
	if required := len(matched) + len(missing); required > 0 {
		report.MatchScore = int(math.Round(float64(len(matched)) / float64(required) * 100))
	}
	return report
}

// split walks skills in order, dropping repeats that canonicalize to the same entity.
func (a *Analyzer) split(skills []string, have map[string]struct{}) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	seen := make(map[string]struct{}, len(skills))

	for _, s := range skills {
		key, ok := a.requirementKey(s)
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if _, ok := have[key]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

// requirementKey is key, except that a requirement the taxonomy would discard
// still has to be reported under its normalized spelling.
func (a *Analyzer) requirementKey(skill string) (string, bool) {
	if key, ok := a.key(skill); ok {
		return key, true
	}
	key := taxonomy.Normalize(skill)
	return key, key != ""
}

func (a *Analyzer) key(skill string) (string, bool) {
	canonical, ok := a.tax.ResolveSkill(skill)
	if !ok {
		return "", false
	}
	return taxonomy.Normalize(canonical), true
}
