// Package script provides the subprocess-backed script runner.
package script

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/macsnap/macsnap/internal/ports"
)

// DefaultInterpreter is the shell used to execute script bodies.
const DefaultInterpreter = "/bin/bash"

// brewPaths are prepended to PATH when absent so brew and mas resolve
// for scripts regardless of how the engine itself was launched.
const brewPaths = "/opt/homebrew/bin:/usr/local/bin"

// BashRunner executes script bodies with a fixed shell interpreter.
// The body is streamed on the interpreter's standard input, so no
// temporary file is created and there is nothing to clean up.
type BashRunner struct {
	interpreter string
}

// BashRunnerOption configures the runner.
type BashRunnerOption func(*BashRunner)

// WithInterpreter overrides the shell interpreter path.
func WithInterpreter(path string) BashRunnerOption {
	return func(r *BashRunner) {
		r.interpreter = path
	}
}

// NewBashRunner creates a runner using /bin/bash.
func NewBashRunner(opts ...BashRunnerOption) *BashRunner {
	r := &BashRunner{interpreter: DefaultInterpreter}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one script body and returns its captured output and raw
// exit code. A non-zero exit is a normal result; the error return is
// non-nil only when the subprocess could not start, in which case it is
// a *ports.LaunchError.
func (r *BashRunner) Run(ctx context.Context, env ports.ScriptEnv, body string) (ports.ScriptResult, error) {
	cmd := exec.CommandContext(ctx, r.interpreter)
	cmd.Stdin = strings.NewReader("set -e\n" + body + "\n")
	cmd.Env = buildEnv(env)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := ports.ScriptResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, &ports.LaunchError{Interpreter: r.interpreter, Cause: err}
	}

	return result, nil
}

// buildEnv copies the process environment and adds the per-item
// variables of the script contract.
func buildEnv(env ports.ScriptEnv) []string {
	out := make([]string, 0, len(os.Environ())+6)
	path := os.Getenv("PATH")

	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "PATH=") {
			continue
		}
		out = append(out, kv)
	}

	if !strings.Contains(path, "/opt/homebrew/bin") {
		path = brewPaths + ":" + path
	}

	out = append(out,
		"PATH="+path,
		"ITEM_CONFIG_DIR="+env.ConfigDir,
		"ITEM_ID="+env.ItemID,
		"ITEM_NAME="+env.ItemName,
		"ITEM_TYPE="+env.ItemType,
		"ITEM_CATEGORY="+env.Category,
	)
	return out
}

// Ensure BashRunner implements ports.ScriptRunner.
var _ ports.ScriptRunner = (*BashRunner)(nil)
