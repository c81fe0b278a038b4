package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan [item-id...]",
	Short: "Show the execution order without running anything",
	Long: `Plan resolves the selection's dependencies and prints the order
items would be installed in, marking items pulled in as dependencies.
No scripts run.`,
	ValidArgsFunction: completeItemIDs,
	RunE:              runPlan,
}

var (
	planDefaults bool
	planAll      bool
)

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().BoolVar(&planDefaults, "defaults", false, "plan the catalog's default selection")
	planCmd.Flags().BoolVar(&planAll, "all", false, "plan every catalog item")
}

func runPlan(_ *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	m := newApp(os.Stdout, settings)

	cat, err := m.LoadCatalog(settings.CatalogDir)
	if err != nil {
		return err
	}

	selected := args
	switch {
	case len(args) > 0:
	case planAll:
		selected = cat.IDs()
	case planDefaults:
		selected = cat.DefaultSelection()
	default:
		return fmt.Errorf("nothing to plan: pass item ids, --defaults or --all")
	}

	plan, err := m.Plan(cat, selected)
	if err != nil {
		return err
	}
	m.PrintPlan(cat, plan)
	return nil
}
