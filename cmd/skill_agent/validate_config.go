package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate the config file and the taxonomy and role tables it references",
	Long: "Loads --config (when given), applies --taxonomy/--roles overrides and checks " +
		"every table against its schema. Nothing is written.",
	RunE: runValidateConfig,
}

func init() {
	rootCmd.AddCommand(validateConfigCmd)
}

func runValidateConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	tax, catalog, err := loadTables(cfg)
	if err != nil {
		return err
	}

	origin := configPath
	if origin == "" {
		origin = "(no config file)"
	}
	fmt.Printf("Config OK: %s\n", origin)
	fmt.Printf("  taxonomy %s (%d skills)\n", tax.Version(), len(tax.Skills()))
	fmt.Printf("  %d roles, %d sources\n", catalog.Len(), len(cfg.Sources))
	return nil
}
