package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/skill-twin-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTaxonomy(t *testing.T) *Taxonomy {
	t.Helper()
	tax, err := New(Document{
		Version: "test-1",
		Skills: []types.CanonicalSkill{
			{CanonicalName: "React", Aliases: []string{"React.js", "ReactJS"}},
			{CanonicalName: "CSS", Aliases: []string{"CSS3"}},
			{CanonicalName: "JavaScript", Aliases: []string{"Java Script", "JS"}},
			{CanonicalName: "Node.js", Aliases: []string{"Node JS"}},
		},
		Titles: []TitleAlias{
			{CanonicalTitle: "Frontend Engineer (React)", Aliases: []string{"React Developer"}},
		},
		StopWords: []string{"engineer", "senior", "remote"},
	})
	require.NoError(t, err)
	return tax
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lower cases", "React", "react"},
		{"trims", "  Go  ", "go"},
		{"collapses inner whitespace", "Java \t  Script", "java script"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestResolveSkill(t *testing.T) {
	tax := testTaxonomy(t)

	tests := []struct {
		name      string
		input     string
		expected  string
		discarded bool
	}{
		{"alias maps to canonical", "React.js", "React", false},
		{"alias is case insensitive", "REACTJS", "React", false},
		{"canonical resolves to itself", "react", "React", false},
		{"alias with extra whitespace", "  java   script ", "JavaScript", false},
		{"unknown token keeps surface form", "  Redux ", "Redux", false},
		{"unknown multi-word token collapses spaces", "Design   Systems", "Design Systems", false},
		{"single character discarded", "C", "", true},
		{"empty discarded", "   ", "", true},
		{"stop word discarded", "Senior", "", true},
		{"stop word with whitespace discarded", " remote ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tax.ResolveSkill(tt.input)
			assert.Equal(t, !tt.discarded, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveSkill_Idempotent(t *testing.T) {
	tax := Default()

	inputs := []string{"React.js", "golang", "K8s", "Java Script", "CSS3", "Redux", "postgres", "Some New Thing", "ML"}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			first, ok := tax.ResolveSkill(input)
			require.True(t, ok)
			second, ok := tax.ResolveSkill(first)
			require.True(t, ok)
			assert.Equal(t, first, second)
		})
	}
}

func TestResolveTitle(t *testing.T) {
	tax := testTaxonomy(t)

	got, ok := tax.ResolveTitle("react   developer")
	assert.True(t, ok)
	assert.Equal(t, "Frontend Engineer (React)", got)

	got, ok = tax.ResolveTitle("Frontend Engineer (React)")
	assert.True(t, ok)
	assert.Equal(t, "Frontend Engineer (React)", got)

	_, ok = tax.ResolveTitle("Senior React Developer at Acme")
	assert.False(t, ok, "titles only resolve by exact normalized match")
}

func TestNew_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{
			name: "alias maps to two canonicals",
			doc: Document{Version: "v", Skills: []types.CanonicalSkill{
				{CanonicalName: "React", Aliases: []string{"RJS"}},
				{CanonicalName: "Redux", Aliases: []string{"rjs"}},
			}},
		},
		{
			name: "alias equals another canonical",
			doc: Document{Version: "v", Skills: []types.CanonicalSkill{
				{CanonicalName: "React"},
				{CanonicalName: "Preact", Aliases: []string{"react"}},
			}},
		},
		{
			name: "duplicate canonical",
			doc: Document{Version: "v", Skills: []types.CanonicalSkill{
				{CanonicalName: "Go"},
				{CanonicalName: " go "},
			}},
		},
		{
			name: "canonical too short",
			doc:  Document{Version: "v", Skills: []types.CanonicalSkill{{CanonicalName: "R"}}},
		},
		{
			name: "canonical is a stop word",
			doc: Document{
				Version:   "v",
				Skills:    []types.CanonicalSkill{{CanonicalName: "Engineer"}},
				StopWords: []string{"engineer"},
			},
		},
		{
			name: "alias is a stop word",
			doc: Document{
				Version:   "v",
				Skills:    []types.CanonicalSkill{{CanonicalName: "Go", Aliases: []string{"Remote"}}},
				StopWords: []string{"remote"},
			},
		},
		{
			name: "title alias maps to two titles",
			doc: Document{Version: "v", Titles: []TitleAlias{
				{CanonicalTitle: "Frontend Engineer", Aliases: []string{"UI Dev"}},
				{CanonicalTitle: "Designer", Aliases: []string{"ui dev"}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, err := New(tt.doc)
			require.Error(t, err)
			assert.Nil(t, tax)

			var ce *ConfigError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestNew_RepeatedAliasSameCanonical(t *testing.T) {
	tax, err := New(Document{Version: "v", Skills: []types.CanonicalSkill{
		{CanonicalName: "Kubernetes", Aliases: []string{"K8s", "K8S", "kubernetes"}},
	}})
	require.NoError(t, err)

	got, ok := tax.ResolveSkill("k8s")
	assert.True(t, ok)
	assert.Equal(t, "Kubernetes", got)
	assert.Equal(t, []string{"K8s"}, tax.Skills()[0].Aliases)
}

func TestNew_EmptyVersion(t *testing.T) {
	tax, err := New(Document{})
	require.NoError(t, err)
	assert.Equal(t, "unversioned", tax.Version())
}

func TestDefault(t *testing.T) {
	tax := Default()
	assert.Equal(t, "2026.10-default", tax.Version())

	cases := map[string]string{
		"React.js":    "React",
		"ReactJS":     "React",
		"React 18":    "React",
		"Java Script": "JavaScript",
		"CSS3":        "CSS",
		"HTML":        "HTML5",
		"golang":      "Go",
		"k8s":         "Kubernetes",
	}
	for raw, want := range cases {
		got, ok := tax.ResolveSkill(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, stop := range []string{"engineer", "developer", "senior", "junior", "remote", "full", "time", "software",
		"technical", "support", "design", "team", "lead", "manager", "application", "systems"} {
		assert.True(t, tax.IsStopWord(stop), stop)
	}

	title, ok := tax.ResolveTitle("Frontend Engr - React")
	assert.True(t, ok)
	assert.Equal(t, "Frontend Engineer (React)", title)

	title, ok = tax.ResolveTitle("Sr. React Engineer")
	assert.True(t, ok)
	assert.Equal(t, "Senior Frontend Engineer", title)
}

func TestClassify(t *testing.T) {
	tax := testTaxonomy(t)

	validated, uncertain := tax.Classify([]string{"reactjs", "NodeJS", "React", "Quantum Basketry", "  ", "quantum basketry", "css3"})

	assert.Equal(t, []string{"React", "Node.js", "CSS"}, validated)
	assert.Equal(t, []string{"Quantum Basketry"}, uncertain)
}

func TestClassify_Empty(t *testing.T) {
	validated, uncertain := testTaxonomy(t).Classify(nil)
	assert.NotNil(t, validated)
	assert.NotNil(t, uncertain)
	assert.Empty(t, validated)
	assert.Empty(t, uncertain)
}

func TestVocabulary_IsCopy(t *testing.T) {
	tax := testTaxonomy(t)
	vocab := tax.Vocabulary()
	assert.Equal(t, "React", vocab["react.js"])
	assert.Equal(t, "JavaScript", vocab["javascript"])

	vocab["react.js"] = "Vue"
	got, _ := tax.ResolveSkill("react.js")
	assert.Equal(t, "React", got)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "taxonomy.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`version: "y1"
skills:
  - canonical_name: React
    aliases: [React.js]
stop_words: [remote]
`), 0o644))

	jsonPath := filepath.Join(dir, "taxonomy.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"version":"j1","skills":[{"canonical_name":"CSS","aliases":["CSS3"]}]}`), 0o644))

	t.Run("yaml", func(t *testing.T) {
		tax, err := Load(yamlPath)
		require.NoError(t, err)
		assert.Equal(t, "y1", tax.Version())
		got, ok := tax.ResolveSkill("react.js")
		assert.True(t, ok)
		assert.Equal(t, "React", got)
		assert.True(t, tax.IsStopWord("Remote"))
	})

	t.Run("json", func(t *testing.T) {
		tax, err := Load(jsonPath)
		require.NoError(t, err)
		assert.Equal(t, "j1", tax.Version())
		got, _ := tax.ResolveSkill("css3")
		assert.Equal(t, "CSS", got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yaml"))
		var ce *ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Contains(t, ce.Error(), "nope.yaml")
	})

	t.Run("schema violation", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("skills: []\n"), 0o644))
		_, err := Load(bad)
		var ce *ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, bad, ce.Path)
	})

	t.Run("ambiguous alias carries path", func(t *testing.T) {
		bad := filepath.Join(dir, "ambiguous.yaml")
		require.NoError(t, os.WriteFile(bad, []byte(`version: "a"
skills:
  - canonical_name: React
    aliases: [rjs]
  - canonical_name: Redux
    aliases: [RJS]
`), 0o644))
		_, err := Load(bad)
		var ce *ConfigError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, bad, ce.Path)
		assert.Contains(t, ce.Message, "RJS")
	})
}

func TestHolder(t *testing.T) {
	first := testTaxonomy(t)
	second, err := New(Document{Version: "test-2"})
	require.NoError(t, err)

	h := NewHolder(first)
	assert.Same(t, first, h.Load())

	prev := h.Swap(second)
	assert.Same(t, first, prev)
	assert.Equal(t, "test-2", h.Load().Version())

	// a snapshot taken before the swap keeps resolving with the old table
	got, _ := prev.ResolveSkill("reactjs")
	assert.Equal(t, "React", got)
}

func TestDigest(t *testing.T) {
	base := Document{
		Version:   "v1",
		Skills:    []types.CanonicalSkill{{CanonicalName: "React"}, {CanonicalName: "Go", Aliases: []string{"golang"}}},
		StopWords: []string{"senior"},
	}
	a, err := New(base)
	require.NoError(t, err)
	assert.Len(t, a.Digest(), 64)

	relabeled := base
	relabeled.Version = "v2"
	relabeled.Skills = []types.CanonicalSkill{{CanonicalName: "Go", Aliases: []string{"Golang"}}, {CanonicalName: "React"}}
	b, err := New(relabeled)
	require.NoError(t, err)
	assert.Equal(t, a.Digest(), b.Digest(), "order, alias casing and version do not change the tables")

	aliased := base
	aliased.Skills = []types.CanonicalSkill{{CanonicalName: "React", Aliases: []string{"React.js"}}, {CanonicalName: "Go", Aliases: []string{"golang"}}}
	c, err := New(aliased)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), c.Digest())

	stop := base
	stop.StopWords = []string{"senior", "remote"}
	d, err := New(stop)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), d.Digest())
}
