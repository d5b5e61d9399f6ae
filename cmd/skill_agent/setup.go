package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/skill-twin-engine/internal/cache"
	"github.com/jonathan/skill-twin-engine/internal/config"
	"github.com/jonathan/skill-twin-engine/internal/db"
	"github.com/jonathan/skill-twin-engine/internal/llm"
	"github.com/jonathan/skill-twin-engine/internal/logger"
	"github.com/jonathan/skill-twin-engine/internal/observability"
	"github.com/jonathan/skill-twin-engine/internal/pipeline"
	"github.com/jonathan/skill-twin-engine/internal/roadmap"
	"github.com/jonathan/skill-twin-engine/internal/roles"
	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
)

// loadSettings merges the config file, environment, global flags and defaults.
func loadSettings() (config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if taxonomyPath != "" {
		cfg.TaxonomyPath = taxonomyPath
	}
	if rolesPath != "" {
		cfg.RolesPath = rolesPath
	}
	if verbose {
		cfg.Verbose = true
	}
	cfg.ApplyEnv()

	merged := cfg.MergeWithDefaults(config.Config{})
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// loadTables loads the taxonomy and role catalog. Empty paths use the embedded defaults.
func loadTables(cfg config.Config) (*taxonomy.Taxonomy, *roles.Catalog, error) {
	tax := taxonomy.Default()
	if cfg.TaxonomyPath != "" {
		loaded, err := taxonomy.Load(cfg.TaxonomyPath)
		if err != nil {
			return nil, nil, err
		}
		tax = loaded
	}

	catalog := roles.Default()
	if cfg.RolesPath != "" {
		loaded, err := roles.Load(cfg.RolesPath)
		if err != nil {
			return nil, nil, err
		}
		catalog = loaded
	}
	return tax, catalog, nil
}

// newLogger builds a logger; CLI commands stay quiet unless --verbose is set.
func newLogger(cfg config.Config, quiet bool) (*logger.Logger, error) {
	if quiet && !cfg.Verbose {
		return logger.Nop(), nil
	}
	return logger.New(cfg.LogMode)
}

// runtime bundles an engine with the resources it owns.
type runtime struct {
	engine  *pipeline.Engine
	db      *db.DB
	log     *logger.Logger
	closers []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

type engineOptions struct {
	persist      bool
	withFinder   bool
	quietLogging bool
}

// buildRuntime wires tables, optional PostgreSQL store, Redis cache and LLM
// resource finder into a pipeline engine.
func buildRuntime(ctx context.Context, cfg config.Config, eo engineOptions) (*runtime, error) {
	tax, catalog, err := loadTables(cfg)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg, eo.quietLogging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{log: log, closers: []func(){log.Sync}}
	opts := pipeline.Options{
		Taxonomy:     taxonomy.NewHolder(tax),
		Roles:        catalog,
		TopK:         cfg.TopK,
		HorizonWeeks: cfg.HorizonWeeks,
		Logger:       log,
	}

	if eo.persist && cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		rt.closers = append(rt.closers, database.Close)
		if err := database.EnsureSchema(ctx); err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to prepare database schema: %w", err)
		}
		rt.db = database
		opts.Store = database
	}

	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.TTL())
		if err != nil {
			log.Warn("redis unavailable, continuing without cache", "error", err)
		} else {
			rt.closers = append(rt.closers, func() { _ = rc.Close() })
			opts.Cache = rc
		}
	}

	if eo.withFinder && cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		rt.closers = append(rt.closers, func() { _ = client.Close() })
		opts.Finder = roadmap.NewLLMResourceFinder(client)
	}

	engine, err := pipeline.New(opts)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.engine = engine
	return rt, nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// printer writes verbose summaries to stderr so stdout stays machine-readable.
func printer() *observability.Printer {
	return observability.NewPrinter(os.Stderr)
}
