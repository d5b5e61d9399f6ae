// Package extract turns free text (a resume, a syllabus) into a list of skill strings.
package extract

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/skill-twin-engine/internal/logger"
	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
)

// Extractor yields the skills mentioned in text.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]string, error)
}

// KeywordExtractor finds taxonomy vocabulary in text.
type KeywordExtractor struct {
	terms []term
}

type term struct {
	phrase    string
	canonical string
	// cased terms only match where the text spells them with a capital letter.
	cased bool
}

// CasedTerms are vocabulary phrases that double as ordinary English words or
// common abbreviations. Lowercase occurrences ("go the extra mile", "get some
// rest") are prose, so these only count when written with a capital letter.
var CasedTerms = []string{
	"go", "next", "rest", "spring", "swift", "rust", "express", "node",
	"flask", "ruby", "oracle", "bootstrap", "agile", "rn", "ts", "cv", "dl",
}

// NewKeywordExtractor indexes every alias and canonical name of tax.
func NewKeywordExtractor(tax *taxonomy.Taxonomy) *KeywordExtractor {
	cased := make(map[string]bool, len(CasedTerms))
	for _, w := range CasedTerms {
		cased[taxonomy.Normalize(w)] = true
	}
	vocab := tax.Vocabulary()
	terms := make([]term, 0, len(vocab))
	for phrase, canonical := range vocab {
		terms = append(terms, term{phrase: phrase, canonical: canonical, cased: cased[phrase]})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].phrase < terms[j].phrase })
	return &KeywordExtractor{terms: terms}
}

type match struct {
	start, end int
	canonical  string
}

// Extract returns canonical names of every vocabulary term appearing in text
// as a whole word, case-insensitively, in order of first appearance. Where
// terms overlap, the longer one wins. CasedTerms need a capital letter.
func (e *KeywordExtractor) Extract(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	collapsed := strings.Join(strings.Fields(text), " ")
	norm := strings.ToLower(collapsed)
	// Lowercasing can change byte lengths outside ASCII; surface checks need
	// the two strings aligned.
	aligned := len(norm) == len(collapsed)

	var matches []match
	for _, t := range e.terms {
		for offset := 0; offset < len(norm); {
			idx := strings.Index(norm[offset:], t.phrase)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(t.phrase)
			if isBoundary(norm, start, end) && (!t.cased || aligned && hasUpper(collapsed[start:end])) {
				matches = append(matches, match{start: start, end: end, canonical: t.canonical})
			}
			offset = start + 1
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].start != matches[j].start {
			return matches[i].start < matches[j].start
		}
		return matches[i].end > matches[j].end
	})

	skills := []string{}
	seen := make(map[string]bool)
	covered := -1
	for _, m := range matches {
		if m.start < covered {
			continue
		}
		covered = m.end
		if seen[m.canonical] {
			continue
		}
		seen[m.canonical] = true
		skills = append(skills, m.canonical)
	}
	return skills, nil
}

func isBoundary(s string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:start])
		if isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		r, _ := utf8.DecodeRuneInString(s[end:])
		if isWordRune(r) {
			return false
		}
	}
	return true
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Fallback tries Primary and falls back to Secondary when it fails.
type Fallback struct {
	Primary   Extractor
	Secondary Extractor
	Logger    *logger.Logger
}

// Extract runs Primary, then Secondary on error. Context errors are not retried.
func (f *Fallback) Extract(ctx context.Context, text string) ([]string, error) {
	skills, err := f.Primary.Extract(ctx, text)
	if err == nil {
		return skills, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if f.Logger != nil {
		f.Logger.Warn("primary skill extractor failed, using fallback", "error", err)
	}
	return f.Secondary.Extract(ctx, text)
}
