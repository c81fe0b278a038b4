package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/macsnap/macsnap/internal/domain/catalog"
	"github.com/macsnap/macsnap/internal/domain/engine"
	"github.com/macsnap/macsnap/internal/tui"
)

var installCmd = &cobra.Command{
	Use:   "install [item-id...]",
	Short: "Install and configure the selected items",
	Long: `Install resolves the selection's dependencies into an ordered plan
and drives each item through validate, install and configure.

With item ids as arguments the selection is exactly those items plus
their dependencies. Without arguments an interactive picker opens,
unless --defaults or --all chooses for you.

Exit status: 0 when every item succeeded, 1 when some failed, 2 when
all failed or the run could not start.`,
	ValidArgsFunction: completeItemIDs,
	RunE:              runInstall,
}

var (
	installDefaults    bool
	installAll         bool
	installReconfigure bool
)

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().BoolVar(&installDefaults, "defaults", false, "install the catalog's default selection")
	installCmd.Flags().BoolVar(&installAll, "all", false, "install every catalog item")
	installCmd.Flags().BoolVar(&installReconfigure, "reconfigure", false, "run configure even for items already satisfied")
}

func runInstall(_ *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	policy := engine.PolicyAlwaysReconfigure
	if !installReconfigure {
		policy, err = engine.ParseReconfigurePolicy(settings.ReconfigurePolicy)
		if err != nil {
			return err
		}
	}

	m := newApp(os.Stdout, settings).WithPolicy(policy)

	cat, err := m.LoadCatalog(settings.CatalogDir)
	if err != nil {
		return err
	}

	selected, err := selectItems(cat, args)
	if err != nil {
		return err
	}

	// An empty selection (cancelled picker, no defaults) resolves to an
	// empty plan and is reported through the same writer as everything
	// else.
	plan, err := m.Plan(cat, selected)
	if err != nil {
		return err
	}
	m.PrintPlan(cat, plan)
	if plan.IsEmpty() {
		return nil
	}

	// Interrupts stop scheduling between items; the item in flight is
	// recorded as cancelled.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary := m.Install(ctx, cat, plan)
	m.PrintSummary(summary)

	if code := summary.Verdict.ExitCode(); code != 0 {
		return &exitStatusError{code: code}
	}
	return nil
}

// selectItems determines the selection: explicit ids, a flag-driven
// selection, or the interactive picker.
func selectItems(cat *catalog.Catalog, args []string) ([]string, error) {
	switch {
	case len(args) > 0:
		return args, nil
	case installAll:
		return cat.IDs(), nil
	case installDefaults:
		return cat.DefaultSelection(), nil
	default:
		result, err := tui.RunSelection(cat)
		if err != nil {
			return nil, fmt.Errorf("interactive selection unavailable: %w (pass item ids or --defaults)", err)
		}
		if result.Cancelled {
			return nil, nil
		}
		return result.IDs, nil
	}
}

// completeItemIDs offers catalog ids for shell completion.
func completeItemIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	settings, err := loadSettings()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cat, err := catalog.NewLoader().Load(settings.CatalogDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, item := range cat.Items() {
		completions = append(completions, fmt.Sprintf("%s\t%s", item.ID, item.Name))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
