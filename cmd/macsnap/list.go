package main

import (
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items grouped by category",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	m := newApp(os.Stdout, settings)

	cat, err := m.LoadCatalog(settings.CatalogDir)
	if err != nil {
		return err
	}
	m.PrintCatalog(cat)
	return nil
}
