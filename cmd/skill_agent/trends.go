package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-twin-engine/internal/config"
	"github.com/jonathan/skill-twin-engine/internal/feed"
	"github.com/jonathan/skill-twin-engine/internal/fetch"
	"github.com/jonathan/skill-twin-engine/internal/logger"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

var (
	trendsInputs     []string
	trendsURLs       []string
	trendsBrowser    bool
	trendsSource     string
	trendsTopK       int
	trendsOut        string
	trendsStream     bool
	trendsSkipFailed bool
	trendsMaxPar     int
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Aggregate job postings into ranked skill trends",
	Long: "Reads postings from JSON files, job board pages, and the sources listed in the config file, " +
		"resolves them against the taxonomy and prints the credibility-ranked trend report as JSON.",
	RunE: runTrends,
}

func init() {
	trendsCmd.Flags().StringSliceVarP(&trendsInputs, "in", "i", nil, "JSON file of postings (repeatable)")
	trendsCmd.Flags().StringSliceVar(&trendsURLs, "url", nil, "Job board page to scrape (repeatable)")
	trendsCmd.Flags().BoolVar(&trendsBrowser, "browser", false, "Render --url pages with headless Chrome")
	trendsCmd.Flags().StringVar(&trendsSource, "source", "", "Override the source label of every posting read from --in/--url")
	trendsCmd.Flags().IntVar(&trendsTopK, "top-k", 0, "Number of skills to report (default from config, 6)")
	trendsCmd.Flags().StringVarP(&trendsOut, "out", "o", "", "Output file (default: stdout)")
	trendsCmd.Flags().BoolVar(&trendsStream, "stream", false, "Resolve postings as they arrive instead of after all sources finish")
	trendsCmd.Flags().BoolVar(&trendsSkipFailed, "skip-failed", false, "Continue when a source fails")
	trendsCmd.Flags().IntVar(&trendsMaxPar, "max-parallel", 4, "Maximum sources fetched concurrently")

	rootCmd.AddCommand(trendsCmd)
}

func runTrends(cmd *cobra.Command, _ []string) error {
	if trendsTopK < 0 {
		return fmt.Errorf("--top-k must be non-negative")
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := buildRuntime(ctx, cfg, engineOptions{persist: true, quietLogging: true})
	if err != nil {
		return err
	}
	defer rt.Close()

	sources, err := trendSources(cfg, rt.log)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		return fmt.Errorf("no posting sources: pass --in, --url, or list sources in the config file")
	}

	opts := feed.Options{SkipFailed: trendsSkipFailed, MaxParallel: trendsMaxPar, Logger: rt.log}

	var report *types.TrendReport
	if trendsStream {
		postings, wait := feed.Stream(ctx, sources, opts)
		report, err = rt.engine.StreamTrends(ctx, postings, trendsTopK, wait)
	} else {
		var postings []types.RawPosting
		postings, err = feed.Collect(ctx, sources, opts)
		if err != nil {
			return err
		}
		report, err = rt.engine.Trends(ctx, postings, trendsTopK)
	}
	if err != nil {
		return fmt.Errorf("trend analysis failed: %w", err)
	}

	if cfg.Verbose {
		printer().PrintTrendReport(report)
	}
	if err := writeJSON(trendsOut, report); err != nil {
		return err
	}
	if trendsOut != "" {
		fmt.Fprintf(os.Stderr, "Trend report saved to %s (%d of %d postings resolved)\n",
			trendsOut, report.PostingsResolved, report.PostingsReceived)
	}
	return nil
}

// trendSources builds feeds from the command-line flags followed by the
// sources listed in the config file.
func trendSources(cfg config.Config, log *logger.Logger) ([]feed.Source, error) {
	var entries []config.SourceConfig
	for _, path := range trendsInputs {
		entries = append(entries, config.SourceConfig{Kind: config.SourceKindFile, Path: path, Source: trendsSource})
	}
	for _, u := range trendsURLs {
		if err := fetch.ValidateURL(u); err != nil {
			return nil, err
		}
		entries = append(entries, config.SourceConfig{
			Kind:       config.SourceKindHTML,
			URL:        u,
			Source:     trendsSource,
			UseBrowser: trendsBrowser,
		})
	}
	entries = append(entries, cfg.Sources...)

	return feed.FromConfig(entries, fetch.DefaultOptions(), log)
}
