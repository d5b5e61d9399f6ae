package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rolesJSON bool

var rolesCmd = &cobra.Command{
	Use:   "roles [name]",
	Short: "List target roles or show one role's required skills",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRoles,
}

func init() {
	rolesCmd.Flags().BoolVar(&rolesJSON, "json", false, "Print as JSON")

	rootCmd.AddCommand(rolesCmd)
}

func runRoles(_ *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	_, catalog, err := loadTables(cfg)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if rolesJSON {
			return writeJSON("", catalog.List())
		}
		for _, name := range catalog.Names() {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	}

	role, ok := catalog.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown role %q", args[0])
	}
	if rolesJSON {
		return writeJSON("", role)
	}
	p := printer()
	p.PrintRoleProfile(&role)
	return nil
}
