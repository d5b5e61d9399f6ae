package roadmap

import (
	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
)

// CatalogEntry lists learning material for one skill.
type CatalogEntry struct {
	Skill         string   `json:"skill" yaml:"skill"`
	Resources     []string `json:"resources,omitempty" yaml:"resources,omitempty"`
	Prerequisites []string `json:"prerequisites,omitempty" yaml:"prerequisites,omitempty"`
}

// Catalog is a static lookup of resources and prerequisites by skill name.
// Lookups are case- and whitespace-insensitive.
type Catalog struct {
	entries map[string]CatalogEntry
}

var defaultPrerequisites = []string{"Basic programming knowledge"}

// NewCatalog indexes entries. A later entry for the same skill replaces an earlier one.
func NewCatalog(entries []CatalogEntry) *Catalog {
	c := &Catalog{entries: make(map[string]CatalogEntry, len(entries))}
	for _, e := range entries {
		c.entries[taxonomy.Normalize(e.Skill)] = e
	}
	return c
}

// DefaultCatalog returns the built-in resource catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog([]CatalogEntry{
		{Skill: "Python", Resources: []string{"Python.org docs", "Automate the Boring Stuff", "Real Python"}},
		{Skill: "Java", Resources: []string{"Oracle Java Docs", "Java Programming tutorials", "Codecademy Java"}},
		{Skill: "JavaScript", Resources: []string{"MDN Web Docs", "JavaScript.info", "Eloquent JavaScript"}},
		{
			Skill:         "React",
			Resources:     []string{"React Official Docs", "React Tutorial", "Fullstack React"},
			Prerequisites: []string{"JavaScript", "HTML", "CSS"},
		},
		{Skill: "SQL", Resources: []string{"SQLBolt", "Mode Analytics", "W3Schools SQL"}},
		{
			Skill:         "AWS",
			Resources:     []string{"AWS Free Tier", "AWS Training", "A Cloud Guru"},
			Prerequisites: []string{"Cloud computing basics", "Networking fundamentals"},
		},
		{
			Skill:         "Docker",
			Resources:     []string{"Docker Docs", "Docker Mastery", "Play with Docker"},
			Prerequisites: []string{"Linux basics", "Command line"},
		},
		{Skill: "Machine Learning", Prerequisites: []string{"Python", "Statistics", "Mathematics"}},
	})
}

// Resources returns the catalog resources for skill, or generic search suggestions.
func (c *Catalog) Resources(skill string) []string {
	if e, ok := c.entries[taxonomy.Normalize(skill)]; ok && len(e.Resources) > 0 {
		return append([]string(nil), e.Resources...)
	}
	return []string{
		"Search " + skill + " tutorials on YouTube",
		skill + " official documentation",
	}
}

// Prerequisites returns the catalog prerequisites for skill, or a generic baseline.
func (c *Catalog) Prerequisites(skill string) []string {
	if e, ok := c.entries[taxonomy.Normalize(skill)]; ok && len(e.Prerequisites) > 0 {
		return append([]string(nil), e.Prerequisites...)
	}
	return append([]string(nil), defaultPrerequisites...)
}
