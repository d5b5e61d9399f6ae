// Package taxonomy resolves raw skill and title strings to canonical entities.
//
// A Taxonomy is immutable once constructed and safe for concurrent use.
// Replacing it mid-process goes through a Holder, which swaps whole tables.
package taxonomy

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

//go:embed default.yaml
var defaultDocument []byte

// minTokenLength is the shortest normalized token that can name a skill.
const minTokenLength = 2

// Document is the on-disk shape of a taxonomy (YAML or JSON).
type Document struct {
	Version   string                 `json:"version" yaml:"version"`
	Skills    []types.CanonicalSkill `json:"skills" yaml:"skills"`
	Titles    []TitleAlias           `json:"titles,omitempty" yaml:"titles,omitempty"`
	StopWords []string               `json:"stop_words,omitempty" yaml:"stop_words,omitempty"`
}

// TitleAlias maps exact title variants to one canonical title.
type TitleAlias struct {
	CanonicalTitle string   `json:"canonical_title" yaml:"canonical_title"`
	Aliases        []string `json:"aliases" yaml:"aliases"`
}

// Taxonomy holds the alias tables used for skill and title resolution.
type Taxonomy struct {
	version      string
	digest       string
	skills       []types.CanonicalSkill
	skillAliases map[string]string // normalized alias or canonical name -> canonical name
	compact      map[string]string // alias key without spaces -> canonical name
	titleAliases map[string]string // normalized title -> canonical title
	stopWords    map[string]struct{}
}

// Normalize lower-cases s and collapses all whitespace runs to single spaces.
// Canonical names and aliases are compared by their normalized form.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// New builds a Taxonomy from a document, rejecting ambiguous or unusable tables.
func New(doc Document) (*Taxonomy, error) {
	t := &Taxonomy{
		version:      doc.Version,
		skillAliases: make(map[string]string),
		compact:      make(map[string]string),
		titleAliases: make(map[string]string),
		stopWords:    make(map[string]struct{}, len(doc.StopWords)),
	}
	if t.version == "" {
		t.version = "unversioned"
	}

	for _, w := range doc.StopWords {
		if key := Normalize(w); key != "" {
			t.stopWords[key] = struct{}{}
		}
	}

	// Canonical names first so an alias colliding with another canonical name is caught
	for _, s := range doc.Skills {
		name := strings.Join(strings.Fields(s.CanonicalName), " ")
		key := Normalize(name)
		if utf8.RuneCountInString(key) < minTokenLength {
			return nil, &ConfigError{Message: fmt.Sprintf("canonical skill %q is shorter than %d characters", s.CanonicalName, minTokenLength)}
		}
		if t.IsStopWord(key) {
			return nil, &ConfigError{Message: fmt.Sprintf("canonical skill %q is a stop word", s.CanonicalName)}
		}
		if existing, ok := t.skillAliases[key]; ok {
			return nil, &ConfigError{Message: fmt.Sprintf("canonical skill %q duplicates %q", name, existing)}
		}
		t.skillAliases[key] = name
		t.skills = append(t.skills, types.CanonicalSkill{CanonicalName: name})
	}

	for i, s := range doc.Skills {
		canonical := t.skills[i].CanonicalName
		for _, alias := range s.Aliases {
			key := Normalize(alias)
			if key == "" {
				continue
			}
			if t.IsStopWord(key) {
				return nil, &ConfigError{Message: fmt.Sprintf("alias %q of %q is a stop word", alias, canonical)}
			}
			if existing, ok := t.skillAliases[key]; ok {
				if existing == canonical {
					continue
				}
				return nil, &ConfigError{Message: fmt.Sprintf("alias %q maps to both %q and %q", alias, existing, canonical)}
			}
			t.skillAliases[key] = canonical
			t.skills[i].Aliases = append(t.skills[i].Aliases, alias)
		}
	}

	// Space-stripped index: first registration wins so lookups stay deterministic
	for _, s := range t.skills {
		for _, name := range append([]string{s.CanonicalName}, s.Aliases...) {
			c := strings.ReplaceAll(Normalize(name), " ", "")
			if _, ok := t.compact[c]; !ok {
				t.compact[c] = s.CanonicalName
			}
		}
	}

	for _, ta := range doc.Titles {
		canonical := strings.Join(strings.Fields(ta.CanonicalTitle), " ")
		if canonical == "" {
			return nil, &ConfigError{Message: "title alias group has an empty canonical title"}
		}
		for _, alias := range append([]string{canonical}, ta.Aliases...) {
			key := Normalize(alias)
			if key == "" {
				continue
			}
			if existing, ok := t.titleAliases[key]; ok && existing != canonical {
				return nil, &ConfigError{Message: fmt.Sprintf("title alias %q maps to both %q and %q", alias, existing, canonical)}
			}
			t.titleAliases[key] = canonical
		}
	}

	t.digest = t.computeDigest()
	return t, nil
}

// computeDigest hashes the resolved tables in sorted order, so two documents
// that resolve identically share a digest regardless of layout or version label.
func (t *Taxonomy) computeDigest() string {
	h := sha256.New()
	writeTable := func(tag string, m map[string]string) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(h, "%s\x00%s\x00%s\n", tag, k, m[k])
		}
	}
	writeTable("skill", t.skillAliases)
	writeTable("title", t.titleAliases)

	stop := make(map[string]string, len(t.stopWords))
	for w := range t.stopWords {
		stop[w] = ""
	}
	writeTable("stop", stop)

	return hex.EncodeToString(h.Sum(nil))
}

// Default returns the embedded default taxonomy.
func Default() *Taxonomy {
	t, err := Parse(defaultDocument, "default.yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return t
}

// Version is the label the table was published under, recorded on stored runs.
func (t *Taxonomy) Version() string {
	return t.version
}

// Digest is a hex sha256 over the resolved alias, title and stop-word tables.
// Tables that resolve differently never share a digest, even under one Version.
func (t *Taxonomy) Digest() string {
	return t.digest
}

// Skills returns a copy of the canonical skill entries with their aliases.
func (t *Taxonomy) Skills() []types.CanonicalSkill {
	out := make([]types.CanonicalSkill, len(t.skills))
	for i, s := range t.skills {
		out[i] = types.CanonicalSkill{
			CanonicalName: s.CanonicalName,
			Aliases:       append([]string(nil), s.Aliases...),
		}
	}
	return out
}

// IsStopWord reports whether token (in any case or spacing) is a configured stop word.
func (t *Taxonomy) IsStopWord(token string) bool {
	_, ok := t.stopWords[Normalize(token)]
	return ok
}

// ResolveSkill maps a raw skill token to its canonical name.
// It returns false when the token is discarded (too short or a stop word).
// Tokens with no alias become their own canonical entity, keeping their
// original casing with surrounding and repeated whitespace removed.
func (t *Taxonomy) ResolveSkill(raw string) (string, bool) {
	key := Normalize(raw)
	if utf8.RuneCountInString(key) < minTokenLength {
		return "", false
	}
	if _, stop := t.stopWords[key]; stop {
		return "", false
	}
	if canonical, ok := t.skillAliases[key]; ok {
		return canonical, true
	}
	return strings.Join(strings.Fields(raw), " "), true
}

// ResolveTitle maps a raw title to its canonical title by exact normalized match.
// Titles without an alias return false and are left for keyword bucketing.
func (t *Taxonomy) ResolveTitle(raw string) (string, bool) {
	canonical, ok := t.titleAliases[Normalize(raw)]
	return canonical, ok
}

// Classify splits skills into those the taxonomy recognizes (returned by
// canonical name) and the rest (returned trimmed). Both lists are deduplicated
// and keep first-seen order.
func (t *Taxonomy) Classify(skills []string) (validated, uncertain []string) {
	validated = []string{}
	uncertain = []string{}
	seen := make(map[string]bool)

	for _, s := range skills {
		trimmed := strings.Join(strings.Fields(s), " ")
		if trimmed == "" {
			continue
		}
		if canonical, ok := t.lookupKnown(trimmed); ok {
			if !seen[Normalize(canonical)] {
				seen[Normalize(canonical)] = true
				validated = append(validated, canonical)
			}
			continue
		}
		if !seen[Normalize(trimmed)] {
			seen[Normalize(trimmed)] = true
			uncertain = append(uncertain, trimmed)
		}
	}
	return validated, uncertain
}

// Vocabulary returns every normalized alias and canonical name mapped to its canonical name.
func (t *Taxonomy) Vocabulary() map[string]string {
	out := make(map[string]string, len(t.skillAliases))
	for k, v := range t.skillAliases {
		out[k] = v
	}
	return out
}

func (t *Taxonomy) lookupKnown(skill string) (string, bool) {
	key := Normalize(skill)
	if canonical, ok := t.skillAliases[key]; ok {
		return canonical, true
	}
	canonical, ok := t.compact[strings.ReplaceAll(key, " ", "")]
	return canonical, ok
}
