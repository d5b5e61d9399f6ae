package feed

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/skill-twin-engine/internal/fetch"
	"github.com/jonathan/skill-twin-engine/internal/logger"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// Selectors locate postings inside a job-board listing page.
type Selectors struct {
	Card   string
	Title  string
	Skills string
	// IDAttrs are card attributes tried in order for the posting id.
	IDAttrs []string
}

// DefaultSelectors covers common job-board listing markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Card:    "[data-job-id], .job-card, .job-posting, .job-listing, article.job, li.job",
		Title:   "[data-job-title], .job-title, .posting-title, h2, h3",
		Skills:  "[data-skill], .skill, .skills li, .tag, .tags li, .chip",
		IDAttrs: []string{"data-job-id", "data-id", "id"},
	}
}

// HTMLSource scrapes postings from a job-board listing page.
type HTMLSource struct {
	Label string
	URL   string
	// Source labels the postings. Empty means detect from the URL host.
	Source     string
	UseBrowser bool
	Selectors  *Selectors
	Options    *fetch.Options
	Logger     *logger.Logger
	// Now stamps postings that carry no <time datetime> value.
	Now func() time.Time
}

// Name returns the label, or the URL when no label is set.
func (s *HTMLSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return s.URL
}

// Fetch downloads (or renders) the page and parses its postings.
func (s *HTMLSource) Fetch(ctx context.Context) ([]types.RawPosting, error) {
	html, err := s.load(ctx)
	if err != nil {
		return nil, &Error{Source: s.Name(), Message: "failed to load page", Cause: err}
	}

	source := fetch.DetectSource(s.URL)
	if s.Source != "" {
		source = types.ParseSource(s.Source)
	}
	sel := DefaultSelectors()
	if s.Selectors != nil {
		sel = *s.Selectors
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	postings, err := ParsePostings(strings.NewReader(html), source, sel, now().UTC())
	if err != nil {
		return nil, &Error{Source: s.Name(), Message: "failed to parse page", Cause: err}
	}
	return postings, nil
}

func (s *HTMLSource) load(ctx context.Context) (string, error) {
	if s.UseBrowser {
		timeout := fetch.DefaultTimeout
		if s.Options != nil && s.Options.Timeout > 0 {
			timeout = s.Options.Timeout
		}
		return fetch.Render(ctx, s.URL, timeout, s.Logger)
	}
	result, err := fetch.URL(ctx, s.URL, s.Options)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// ParsePostings extracts one RawPosting per card. Cards with neither a
// title nor any skills are skipped.
func ParsePostings(r io.Reader, source types.Source, sel Selectors, observedAt time.Time) ([]types.RawPosting, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	postings := []types.RawPosting{}
	doc.Find(sel.Card).Each(func(_ int, card *goquery.Selection) {
		// Nested cards are read through their outermost match.
		if card.ParentsFiltered(sel.Card).Length() > 0 {
			return
		}
		p := types.RawPosting{
			ID:         cardID(card, sel.IDAttrs),
			Source:     source,
			Title:      cardTitle(card, sel.Title),
			RawSkills:  cardSkills(card, sel.Skills),
			ObservedAt: cardTime(card, observedAt),
		}
		if p.Title == "" && len(p.RawSkills) == 0 {
			return
		}
		postings = append(postings, p)
	})
	return postings, nil
}

func cardID(card *goquery.Selection, attrs []string) string {
	for _, attr := range attrs {
		if v, ok := card.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func cardTitle(card *goquery.Selection, selector string) string {
	if v, ok := card.Attr("data-job-title"); ok && strings.TrimSpace(v) != "" {
		return collapse(v)
	}
	return collapse(card.Find(selector).First().Text())
}

func cardSkills(card *goquery.Selection, selector string) []string {
	skills := []string{}
	if v, ok := card.Attr("data-skills"); ok {
		for _, part := range strings.Split(v, ",") {
			if s := collapse(part); s != "" {
				skills = append(skills, s)
			}
		}
	}
	card.Find(selector).Each(func(_ int, el *goquery.Selection) {
		text := el.Text()
		if v, ok := el.Attr("data-skill"); ok && strings.TrimSpace(v) != "" {
			text = v
		}
		if s := collapse(text); s != "" {
			skills = append(skills, s)
		}
	})
	return skills
}

func cardTime(card *goquery.Selection, fallback time.Time) time.Time {
	if v, ok := card.Find("time[datetime]").First().Attr("datetime"); ok {
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(v)); err == nil {
			return t.UTC()
		}
		if t, err := time.Parse(time.DateOnly, strings.TrimSpace(v)); err == nil {
			return t.UTC()
		}
	}
	return fallback
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
