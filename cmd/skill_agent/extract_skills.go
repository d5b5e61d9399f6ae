package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-twin-engine/internal/types"
)

var (
	extractInput  string
	extractUseLLM bool
	extractOut    string
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract skills from a resume or job description",
	Long: "Finds skills in a plain-text document and splits them into those the taxonomy " +
		"recognizes and those it does not.",
	RunE: runExtractSkills,
}

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Plain-text input file (required)")
	extractSkillsCmd.Flags().BoolVar(&extractUseLLM, "llm", false, "Extract with the model, falling back to keyword matching")
	extractSkillsCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Output file (default: stdout)")

	if err := extractSkillsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	text, err := os.ReadFile(extractInput)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	tax, _, err := loadTables(cfg)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ex, closeFn, err := newExtractor(ctx, cfg, tax, extractUseLLM, log)
	if err != nil {
		return err
	}
	defer closeFn()

	skills, err := ex.Extract(ctx, string(text))
	if err != nil {
		return fmt.Errorf("skill extraction failed: %w", err)
	}
	validated, uncertain := tax.Classify(skills)

	if cfg.Verbose {
		printer().PrintSkillClassification(validated, uncertain)
	}
	return writeJSON(extractOut, types.ExtractResponse{Skills: skills, Validated: validated, Uncertain: uncertain})
}
