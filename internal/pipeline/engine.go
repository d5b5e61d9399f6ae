// Package pipeline composes the taxonomy, ingestion, scoring, gap, and
// roadmap stages into trend and gap-plan runs.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/skill-twin-engine/internal/cache"
	"github.com/jonathan/skill-twin-engine/internal/gap"
	"github.com/jonathan/skill-twin-engine/internal/ingestion"
	"github.com/jonathan/skill-twin-engine/internal/logger"
	"github.com/jonathan/skill-twin-engine/internal/roadmap"
	"github.com/jonathan/skill-twin-engine/internal/roles"
	"github.com/jonathan/skill-twin-engine/internal/scoring"
	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// ErrUnknownRole is returned when a plan names a role the catalog does not have.
var ErrUnknownRole = errors.New("unknown role")

// Store persists finished runs. *db.DB satisfies it.
type Store interface {
	SaveTrendReport(ctx context.Context, report *types.TrendReport) (uuid.UUID, error)
	SaveGapPlan(ctx context.Context, plan *types.GapPlan) (uuid.UUID, error)
}

// ProgressEvent reports a finished stage.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called after each stage when configured.
type ProgressCallback func(event ProgressEvent)

// Options configures an Engine. Only Taxonomy and Roles are required.
type Options struct {
	Taxonomy     *taxonomy.Holder
	Roles        *roles.Catalog
	TopK         int
	HorizonWeeks int
	Catalog      *roadmap.Catalog
	Finder       roadmap.ResourceFinder
	Store        Store
	Cache        cache.Cache
	Logger       *logger.Logger
	OnProgress   ProgressCallback
}

// Engine runs trend and gap requests. It holds no per-run state, so one
// Engine serves concurrent requests.
type Engine struct {
	opts      Options
	generator *roadmap.Generator
	log       *logger.Logger
}

// New validates opts and returns an Engine.
func New(opts Options) (*Engine, error) {
	if opts.Taxonomy == nil || opts.Taxonomy.Load() == nil {
		return nil, fmt.Errorf("pipeline: taxonomy is required")
	}
	if opts.Roles == nil {
		return nil, fmt.Errorf("pipeline: role catalog is required")
	}
	checker := gap.New(opts.Taxonomy.Load())
	for _, role := range opts.Roles.List() {
		if err := checker.CheckRequirements(role); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}
	if opts.TopK <= 0 {
		opts.TopK = scoring.DefaultTopK
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		opts:      opts,
		generator: roadmap.New(opts.Catalog),
		log:       log.With("component", "pipeline"),
	}, nil
}

// Taxonomy returns the taxonomy currently in effect.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy {
	return e.opts.Taxonomy.Load()
}

// Roles returns the role catalog.
func (e *Engine) Roles() *roles.Catalog {
	return e.opts.Roles
}

// ReloadTaxonomy loads path and swaps it in for subsequent runs.
// Runs already in flight keep the snapshot they started with.
func (e *Engine) ReloadTaxonomy(path string) error {
	next := taxonomy.Default()
	if path != "" {
		loaded, err := taxonomy.Load(path)
		if err != nil {
			return err
		}
		next = loaded
	}
	prev := e.opts.Taxonomy.Swap(next)
	e.log.Info("taxonomy reloaded", "previous_version", prev.Version(), "version", next.Version(), "digest", next.Digest())
	return nil
}

// WithProgress returns a copy of e that reports stages to cb.
// The copy shares the taxonomy holder, store and cache with e.
func (e *Engine) WithProgress(cb ProgressCallback) *Engine {
	c := *e
	c.opts.OnProgress = cb
	return &c
}

func (e *Engine) emit(stage, message, runID string) {
	if e.opts.OnProgress != nil {
		e.opts.OnProgress(ProgressEvent{Stage: stage, Message: message, RunID: runID})
	}
}

// Trends ingests a batch and scores it. topK <= 0 uses the engine default.
// Cached results are returned as-is; persistence and cache failures are
// logged and never fail the run.
func (e *Engine) Trends(ctx context.Context, postings []types.RawPosting, topK int) (*types.TrendReport, error) {
	tax := e.opts.Taxonomy.Load()
	if topK <= 0 {
		topK = e.opts.TopK
	}

	key := e.cacheKey(tax, topK, postings)
	if report := e.cached(ctx, key); report != nil {
		return report, nil
	}

	res := ingestion.New(tax).Ingest(postings)
	e.emit("ingest", fmt.Sprintf("Resolved %d of %d postings", len(res.Postings), res.Received), "")

	report, err := e.score(ctx, tax, res, topK)
	if err != nil {
		return nil, err
	}
	e.store(ctx, key, report)
	return report, nil
}

// StreamTrends consumes postings from ch until it closes, then scores the batch.
// wait, when non-nil, reports whether the producer finished cleanly; it is
// called after ch closes and an error discards the batch before anything is
// stored. Cancelling ctx also discards the partial batch.
func (e *Engine) StreamTrends(ctx context.Context, ch <-chan types.RawPosting, topK int, wait func() error) (*types.TrendReport, error) {
	tax := e.opts.Taxonomy.Load()
	if topK <= 0 {
		topK = e.opts.TopK
	}

	res, err := ingestion.New(tax).Stream(ctx, ch)
	if err != nil {
		e.log.Warn("streamed batch discarded", "error", err)
		return nil, err
	}
	if wait != nil {
		if err := wait(); err != nil {
			e.log.Warn("streamed batch discarded, producer failed", "postings_received", res.Received, "error", err)
			return nil, err
		}
	}
	e.emit("ingest", fmt.Sprintf("Resolved %d of %d streamed postings", len(res.Postings), res.Received), "")

	report, err := e.score(ctx, tax, res, topK)
	if err != nil {
		return nil, err
	}
	e.store(ctx, "", report)
	return report, nil
}

func (e *Engine) score(ctx context.Context, tax *taxonomy.Taxonomy, res ingestion.Result, topK int) (*types.TrendReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &types.TrendReport{
		TaxonomyVersion:   tax.Version(),
		PostingsReceived:  res.Received,
		PostingsResolved:  len(res.Postings),
		DuplicatesDropped: res.Duplicates,
		TrendingTitle:     scoring.InferTrendingTitle(res.Postings, tax),
		Trends:            scoring.New(topK).Score(res.Postings),
	}
	e.emit("score", fmt.Sprintf("Scored %d skills, trending title %q", len(report.Trends), report.TrendingTitle), "")

	e.log.Info("trend run complete",
		"taxonomy_version", report.TaxonomyVersion,
		"postings_received", report.PostingsReceived,
		"postings_resolved", report.PostingsResolved,
		"duplicates_dropped", report.DuplicatesDropped,
		"trends", len(report.Trends),
	)
	return report, nil
}

func (e *Engine) cacheKey(tax *taxonomy.Taxonomy, topK int, postings []types.RawPosting) string {
	if e.opts.Cache == nil {
		return ""
	}
	key, err := cache.Key(tax.Version(), tax.Digest(), topK, postings)
	if err != nil {
		e.log.Warn("cache key failed", "error", err)
		return ""
	}
	return key
}

func (e *Engine) cached(ctx context.Context, key string) *types.TrendReport {
	if key == "" {
		return nil
	}
	report, ok, err := e.opts.Cache.Get(ctx, key)
	if err != nil {
		e.log.Warn("cache lookup failed", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	e.log.Debug("trend report served from cache", "key", key)
	e.emit("cache", "Served from cache", report.RunID)
	return report
}

func (e *Engine) store(ctx context.Context, key string, report *types.TrendReport) {
	if e.opts.Store != nil {
		id, err := e.opts.Store.SaveTrendReport(ctx, report)
		if err != nil {
			e.log.Warn("failed to persist trend report", "error", err)
		} else {
			report.RunID = id.String()
			e.emit("persist", "Saved trend report", report.RunID)
		}
	}
	if key != "" {
		if err := e.opts.Cache.Set(ctx, key, report); err != nil {
			e.log.Warn("failed to cache trend report", "key", key, "error", err)
		}
	}
}

// PlanForRole looks roleName up in the catalog and runs Plan.
func (e *Engine) PlanForRole(ctx context.Context, candidate []string, roleName string, horizonWeeks int) (*types.GapPlan, error) {
	role, ok := e.opts.Roles.Get(roleName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, roleName)
	}
	return e.Plan(ctx, candidate, role, horizonWeeks)
}

// Plan analyzes the gap between candidate and role and generates a roadmap.
// A role whose requirements collapse under the taxonomy is rejected with a
// *gap.DuplicateRequirementError. horizonWeeks == 0 uses the engine default. When a ResourceFinder is
// configured its resources replace catalog entries where it has any.
func (e *Engine) Plan(ctx context.Context, candidate []string, role types.RoleProfile, horizonWeeks int) (*types.GapPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tax := e.opts.Taxonomy.Load()
	if horizonWeeks == 0 {
		horizonWeeks = e.opts.HorizonWeeks
	}

	analyzer := gap.New(tax)
	if err := analyzer.CheckRequirements(role); err != nil {
		return nil, err
	}
	report := analyzer.Analyze(candidate, role)
	e.emit("gap", fmt.Sprintf("Matched %d of %d required skills", len(report.MatchedSkills), len(report.MatchedSkills)+len(report.MissingSkills)), "")

	rm := e.generator.Generate(report, horizonWeeks)
	if e.opts.Finder != nil && len(report.MissingSkills) > 0 {
		enriched, err := roadmap.Enrich(ctx, rm, e.opts.Finder)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			e.log.Warn("resource lookup incomplete", "role", role.Name, "error", err)
		}
		rm = enriched
	}
	e.emit("roadmap", fmt.Sprintf("Planned %d steps over %d weeks", len(rm.Steps), rm.TotalWeeks), "")

	plan := &types.GapPlan{Report: report, Roadmap: rm}
	if e.opts.Store != nil {
		id, err := e.opts.Store.SaveGapPlan(ctx, plan)
		if err != nil {
			e.log.Warn("failed to persist gap plan", "error", err)
		} else {
			plan.RunID = id.String()
		}
	}

	e.log.Info("gap plan complete",
		"role", role.Name,
		"match_score", report.MatchScore,
		"missing", len(report.MissingSkills),
		"total_weeks", rm.TotalWeeks,
	)
	return plan, nil
}
