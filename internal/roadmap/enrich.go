package roadmap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-twin-engine/internal/llm"
	"github.com/jonathan/skill-twin-engine/internal/prompts"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// maxConcurrentLookups bounds parallel ResourceFinder calls per roadmap.
const maxConcurrentLookups = 4

// ResourceFinder supplies learning resources for a skill from an external service.
// Results are treated as opaque strings.
type ResourceFinder interface {
	Find(ctx context.Context, skill string) ([]string, error)
}

// Enrich returns a copy of rm whose skill steps carry resources from finder.
// A step whose lookup fails or returns nothing keeps its catalog resources;
// those failures are joined into the returned error alongside a usable roadmap.
func Enrich(ctx context.Context, rm types.Roadmap, finder ResourceFinder) (types.Roadmap, error) {
	out := rm
	out.Steps = make([]types.RoadmapStep, len(rm.Steps))
	copy(out.Steps, rm.Steps)

	errs := make([]error, len(out.Steps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)

	for i := range out.Steps {
		step := &out.Steps[i]
		if step.IsTerminal() || step.TargetSkill == "" {
			continue
		}
		g.Go(func() error {
			found, err := finder.Find(gctx, step.TargetSkill)
			if err != nil {
				errs[i] = fmt.Errorf("resources for %s: %w", step.TargetSkill, err)
				return nil
			}
			if len(found) > 0 {
				step.Resources = found
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return rm, err
	}
	return out, errors.Join(errs...)
}

// LLMResourceFinder asks the language model for resources.
type LLMResourceFinder struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMResourceFinder returns a finder backed by client.
func NewLLMResourceFinder(client llm.Client) *LLMResourceFinder {
	return &LLMResourceFinder{client: client, tier: llm.TierLite}
}

type resourceResponse struct {
	Resources []struct {
		Platform string `json:"platform"`
		Title    string `json:"title"`
		URL      string `json:"url"`
		IsFree   bool   `json:"is_free"`
	} `json:"resources"`
}

// Find returns resources formatted as "Platform: Title (url)", marking free ones.
func (f *LLMResourceFinder) Find(ctx context.Context, skill string) ([]string, error) {
	prompt, err := prompts.Render(prompts.SkillsFile, prompts.KeyFindResources, map[string]string{"Skill": skill})
	if err != nil {
		return nil, err
	}

	var resp resourceResponse
	if err := llm.GenerateInto(ctx, f.client, prompt, f.tier, &resp); err != nil {
		return nil, err
	}

	out := make([]string, 0, len(resp.Resources))
	for _, r := range resp.Resources {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}
		entry := title
		if r.Platform != "" {
			entry = r.Platform + ": " + entry
		}
		if r.URL != "" {
			entry += " (" + r.URL + ")"
		}
		if r.IsFree {
			entry += " [free]"
		}
		out = append(out, entry)
	}
	return out, nil
}
