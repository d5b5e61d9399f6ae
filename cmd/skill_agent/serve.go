package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-twin-engine/internal/extract"
	"github.com/jonathan/skill-twin-engine/internal/server"
)

var (
	servePort   int
	serveUseLLM bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the engine as a REST API.

Endpoints:
  GET  /health           - Health check
  GET  /roles            - List target roles
  GET  /roles/{name}     - Required skills for one role
  POST /trends           - Rank skill trends for a batch of postings
  POST /trends/stream    - Same, with progress as Server-Sent Events
  GET  /trends/{id}      - Stored trend report (requires DATABASE_URL)
  POST /gap              - Gap report and learning roadmap
  GET  /gap/{id}         - Stored gap plan (requires DATABASE_URL)
  POST /skills/extract   - Extract skills from text
  POST /skills/validate  - Split skills into recognized and unrecognized

Send SIGHUP to reload the taxonomy file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveUseLLM, "llm", false, "Extract skills with the model when an API key is configured")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := buildRuntime(ctx, cfg, engineOptions{persist: true, withFinder: true})
	if err != nil {
		return err
	}

	srvCfg := server.Config{
		Port:         cfg.Port,
		Engine:       rt.engine,
		TaxonomyPath: cfg.TaxonomyPath,
		Logger:       rt.log,
		OnShutdown:   []func(){rt.Close},
	}
	if rt.db != nil {
		srvCfg.Runs = rt.db
	}
	if serveUseLLM {
		var ex extract.Extractor
		var closeFn func()
		ex, closeFn, err = newExtractor(ctx, cfg, rt.engine.Taxonomy(), true, rt.log)
		if err != nil {
			rt.Close()
			return err
		}
		srvCfg.Extractor = ex
		srvCfg.OnShutdown = append([]func(){closeFn}, srvCfg.OnShutdown...)
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		rt.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	rt.log.Info("starting server", "port", cfg.Port, "taxonomy", rt.engine.Taxonomy().Version(),
		"roles", rt.engine.Roles().Len(), "persistence", rt.db != nil)
	return srv.Start(ctx)
}
