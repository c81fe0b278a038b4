package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/macsnap/macsnap/internal/adapters/logging"
	"github.com/macsnap/macsnap/internal/adapters/script"
	"github.com/macsnap/macsnap/internal/app"
	"github.com/macsnap/macsnap/internal/domain/catalog"
	"github.com/macsnap/macsnap/internal/domain/config"
	"github.com/macsnap/macsnap/internal/ports"
)

var (
	// Global flags
	cfgFile    string
	catalogDir string
	verbose    bool
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "macsnap",
	Short: "A scriptable macOS machine setup engine",
	Long: `MacSnap installs and configures a machine from a catalog of YAML
item definitions.

Each item carries validate, install and configure scripts. MacSnap
resolves the selection's dependencies into an ordered plan, skips items
whose validate script reports them already present, and installs and
configures the rest.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default: ./macsnap.toml, then ~/.config/macsnap/macsnap.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog", "", "catalog directory holding item definitions")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	registerFlagCompletions()
}

// exitStatusError carries the run verdict's exit code through cobra.
// The run summary has already been printed when it surfaces.
type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// loadSettings merges the settings file with the global flags; flags win.
func loadSettings() (config.Settings, error) {
	var settings config.Settings
	var err error
	if cfgFile != "" {
		settings, err = config.Load(cfgFile)
	} else {
		settings, err = config.Discover()
	}
	if err != nil {
		return config.Settings{}, err
	}

	if catalogDir != "" {
		settings.CatalogDir = catalogDir
	}
	if logFormat != "" {
		settings.Log.Format = logFormat
	}
	if verbose {
		settings.Log.Level = "debug"
	}
	return settings, nil
}

// buildLogger creates the console logger described by the settings.
// Logs go to stderr so they never mix with plan and summary output.
func buildLogger(settings config.Settings) ports.Logger {
	return logging.NewConsoleLogger(
		logging.WithLevel(parseLevel(settings.Log.Level)),
		logging.WithJSONFormat(settings.Log.Format == "json"),
	)
}

func parseLevel(s string) ports.Level {
	switch s {
	case "debug":
		return ports.LevelDebug
	case "warn":
		return ports.LevelWarn
	case "error":
		return ports.LevelError
	default:
		return ports.LevelInfo
	}
}

// newApp builds the application with settings applied; tests stub it.
var newApp = func(out io.Writer, settings config.Settings) *app.MacSnap {
	m := app.New(out)
	if settings.Shell != "" {
		m = m.WithRunner(script.NewBashRunner(script.WithInterpreter(settings.Shell)))
	}
	return m.WithLogger(buildLogger(settings))
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		msg := loadErr.Message
		if loadErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", loadErr.Context)
		}
		if loadErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", loadErr.Suggestion)
		}
		if verbose && loadErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", loadErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"text\tHuman-readable log lines",
			"json\tOne JSON object per line",
		}, cobra.ShellCompDirectiveNoFileComp
	})
}
