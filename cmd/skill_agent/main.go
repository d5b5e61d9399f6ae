// Package main provides the skill_agent CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	taxonomyPath string
	rolesPath    string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "skill_agent",
	Short: "Skill trend and gap-analysis engine",
	Long: "skill_agent aggregates job postings into credibility-scored skill trends, " +
		"compares a candidate's skills against a target role, and turns the gap into a week-by-week learning roadmap.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&taxonomyPath, "taxonomy", "", "Path to skill taxonomy file (default: embedded)")
	rootCmd.PersistentFlags().StringVar(&rolesPath, "roles", "", "Path to role profiles file (default: embedded)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
