package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-twin-engine/internal/config"
	"github.com/jonathan/skill-twin-engine/internal/extract"
	"github.com/jonathan/skill-twin-engine/internal/llm"
	"github.com/jonathan/skill-twin-engine/internal/logger"
	"github.com/jonathan/skill-twin-engine/internal/taxonomy"
)

var (
	gapRole    string
	gapSkills  string
	gapResume  string
	gapUseLLM  bool
	gapHorizon int
	gapOut     string
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Compare a candidate's skills with a target role and plan the learning roadmap",
	RunE:  runGap,
}

func init() {
	gapCmd.Flags().StringVarP(&gapRole, "role", "r", "", "Target role name, e.g. \"Data Scientist\" (required)")
	gapCmd.Flags().StringVarP(&gapSkills, "skills", "s", "", "Comma-separated candidate skills")
	gapCmd.Flags().StringVar(&gapResume, "resume", "", "Plain-text resume to extract candidate skills from")
	gapCmd.Flags().BoolVar(&gapUseLLM, "llm", false, "Extract resume skills with the model (requires GEMINI_API_KEY)")
	gapCmd.Flags().IntVar(&gapHorizon, "horizon", 0, "Roadmap horizon in weeks (default from config, 8)")
	gapCmd.Flags().StringVarP(&gapOut, "out", "o", "", "Output file (default: stdout)")

	if err := gapCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(gapCmd)
}

func runGap(cmd *cobra.Command, _ []string) error {
	if gapSkills != "" && gapResume != "" {
		return fmt.Errorf("cannot use both --skills and --resume")
	}
	if gapHorizon < 0 {
		return fmt.Errorf("--horizon must be non-negative")
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := buildRuntime(ctx, cfg, engineOptions{persist: true, withFinder: true, quietLogging: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	candidate := splitSkills(gapSkills)
	if gapResume != "" {
		text, err := os.ReadFile(gapResume)
		if err != nil {
			return fmt.Errorf("failed to read resume: %w", err)
		}
		ex, closeFn, err := newExtractor(ctx, cfg, rt.engine.Taxonomy(), gapUseLLM, rt.log)
		if err != nil {
			return err
		}
		defer closeFn()
		candidate, err = ex.Extract(ctx, string(text))
		if err != nil {
			return fmt.Errorf("skill extraction failed: %w", err)
		}
	}

	plan, err := rt.engine.PlanForRole(ctx, candidate, gapRole, gapHorizon)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		p := printer()
		p.PrintGapReport(&plan.Report)
		p.PrintRoadmap(&plan.Roadmap)
	}
	if err := writeJSON(gapOut, plan); err != nil {
		return err
	}
	if gapOut != "" {
		fmt.Fprintf(os.Stderr, "Gap plan saved to %s (%d missing skills, %d weeks)\n",
			gapOut, len(plan.Report.MissingSkills), plan.Roadmap.TotalWeeks)
	}
	return nil
}

// splitSkills splits a comma-separated list, dropping blank entries.
func splitSkills(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// newExtractor returns the keyword extractor, or the model extractor with
// keyword fallback when useLLM is set.
func newExtractor(ctx context.Context, cfg config.Config, tax *taxonomy.Taxonomy, useLLM bool, log *logger.Logger) (extract.Extractor, func(), error) {
	keyword := extract.NewKeywordExtractor(tax)
	if !useLLM {
		return keyword, func() {}, nil
	}
	if cfg.APIKey == "" {
		return nil, nil, fmt.Errorf("--llm requires an API key (set GEMINI_API_KEY or api_key in the config file)")
	}

	llmConfig := llm.DefaultConfig()
	client, err := llm.NewGeminiClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	ex := &extract.Fallback{
		Primary:   extract.NewLLMExtractor(client, llmConfig, extract.DefaultLabel),
		Secondary: keyword,
		Logger:    log,
	}
	return ex, func() { _ = client.Close() }, nil
}
