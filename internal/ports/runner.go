// Package ports defines interfaces for the engine's external dependencies.
package ports

import (
	"context"
	"fmt"
	"time"
)

// ScriptEnv carries the per-item values exposed to a running script.
// Every field is published as an environment variable (ITEM_CONFIG_DIR,
// ITEM_ID, ITEM_NAME, ITEM_TYPE, ITEM_CATEGORY).
type ScriptEnv struct {
	ItemID    string
	ItemName  string
	ItemType  string
	Category  string
	ConfigDir string
}

// ScriptResult represents the outcome of one script invocation.
// The exit code is the subprocess's raw code; the runner never
// assigns meaning to it.
type ScriptResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success returns true if the script exited with code 0.
func (r ScriptResult) Success() bool {
	return r.ExitCode == 0
}

// ScriptRunner executes a script body as an isolated subprocess.
// A non-zero exit is a normal result, not an error; the error return is
// reserved for scripts that could not run at all (see LaunchError).
type ScriptRunner interface {
	Run(ctx context.Context, env ScriptEnv, body string) (ScriptResult, error)
}

// LaunchError reports a script that never started: missing interpreter,
// permission problems, or a cancelled context before exec. It is distinct
// from a script that ran and exited non-zero.
type LaunchError struct {
	Interpreter string
	Cause       error
}

// Error returns the formatted error message.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("script failed to launch (interpreter %s): %v", e.Interpreter, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *LaunchError) Unwrap() error {
	return e.Cause
}
