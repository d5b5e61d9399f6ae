package roadmap

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonathan/skill-twin-engine/internal/llm"
	"github.com/jonathan/skill-twin-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapFinder struct {
	mu      sync.Mutex
	results map[string][]string
	fail    map[string]bool
	calls   []string
}

func (f *mapFinder) Find(_ context.Context, skill string) ([]string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, skill)
	f.mu.Unlock()
	if f.fail[skill] {
		return nil, errors.New("lookup failed")
	}
	return f.results[skill], nil
}

func TestEnrich(t *testing.T) {
	rm := New(nil).Generate(types.GapReport{MissingSkills: []string{"Docker", "Rust", "SQL"}}, 4)
	finder := &mapFinder{
		results: map[string][]string{"Docker": {"Docker Deep Dive"}},
		fail:    map[string]bool{"Rust": true},
	}

	enriched, err := Enrich(context.Background(), rm, finder)

	require.Error(t, err)
	assert.ErrorContains(t, err, "resources for Rust")
	assert.ElementsMatch(t, []string{"Docker", "Rust", "SQL"}, finder.calls, "terminal step is never looked up")

	assert.Equal(t, []string{"Docker Deep Dive"}, enriched.Steps[0].Resources)
	assert.Equal(t, rm.Steps[1].Resources, enriched.Steps[1].Resources, "failed lookup keeps catalog resources")
	assert.Equal(t, rm.Steps[2].Resources, enriched.Steps[2].Resources, "empty result keeps catalog resources")

	assert.Equal(t, []string{"Docker Docs", "Docker Mastery", "Play with Docker"}, rm.Steps[0].Resources, "input is not mutated")
}

func TestEnrich_AllSucceed(t *testing.T) {
	rm := New(nil).Generate(types.GapReport{MissingSkills: []string{"Go"}}, 1)
	enriched, err := Enrich(context.Background(), rm, &mapFinder{results: map[string][]string{"Go": {"Go by Example"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go by Example"}, enriched.Steps[0].Resources)
	assert.True(t, enriched.Steps[1].IsTerminal())
}

func TestEnrich_Cancelled(t *testing.T) {
	rm := New(nil).Generate(types.GapReport{MissingSkills: []string{"Go"}}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := Enrich(ctx, rm, &mapFinder{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, rm, out)
}

type stubLLM struct {
	response string
	prompt   string
}

func (s *stubLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompt = prompt
	return s.response, nil
}

func (s *stubLLM) Close() error { return nil }

func TestLLMResourceFinder(t *testing.T) {
	client := &stubLLM{response: `{"resources": [
		{"platform": "YouTube", "title": "Kubernetes Crash Course", "url": "https://youtube.example/k8s", "is_free": true},
		{"platform": "Coursera", "title": "Kubernetes Specialization", "url": "", "is_free": false},
		{"platform": "Blog", "title": "  "}
	]}`}

	found, err := NewLLMResourceFinder(client).Find(context.Background(), "Kubernetes")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"YouTube: Kubernetes Crash Course (https://youtube.example/k8s) [free]",
		"Coursera: Kubernetes Specialization",
	}, found)
	assert.Contains(t, client.prompt, `"Kubernetes"`)
}

func TestLLMResourceFinder_BadJSON(t *testing.T) {
	_, err := NewLLMResourceFinder(&stubLLM{response: "sorry"}).Find(context.Background(), "Go")
	assert.Error(t, err)
}
