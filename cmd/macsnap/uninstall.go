package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <item-id>...",
	Short: "Run the uninstall script of the named items",
	Long: `Uninstall runs each named item's uninstall script, in the order
given. Dependencies are not followed: only the items you name are
touched. Items without an uninstall script are reported as uninstalled
without running anything.`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeItemIDs,
	RunE:              runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(_ *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	m := newApp(os.Stdout, settings)

	cat, err := m.LoadCatalog(settings.CatalogDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := m.Uninstall(ctx, cat, args)
	if err != nil {
		return err
	}
	m.PrintSummary(summary)

	if code := summary.Verdict.ExitCode(); code != 0 {
		return &exitStatusError{code: code}
	}
	return nil
}
