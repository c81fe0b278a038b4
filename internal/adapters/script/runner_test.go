package script

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsnap/macsnap/internal/ports"
)

func TestBashRunner_Success(t *testing.T) {
	runner := NewBashRunner()

	result, err := runner.Run(context.Background(), ports.ScriptEnv{}, "echo hello")
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Equal(t, "hello\n", result.Stdout)
}

func TestBashRunner_ExitCodePassedThroughUnmodified(t *testing.T) {
	runner := NewBashRunner()

	result, err := runner.Run(context.Background(), ports.ScriptEnv{}, "exit 42")
	require.NoError(t, err, "non-zero exit is a result, not an error")
	assert.Equal(t, 42, result.ExitCode)
	assert.False(t, result.Success())
}

func TestBashRunner_StderrCapturedSeparately(t *testing.T) {
	runner := NewBashRunner()

	result, err := runner.Run(context.Background(), ports.ScriptEnv{}, "echo out; echo err >&2; exit 1")
	require.NoError(t, err)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
	assert.Equal(t, 1, result.ExitCode)
}

func TestBashRunner_ItemEnvironmentContract(t *testing.T) {
	runner := NewBashRunner()
	configDir := t.TempDir()
	require.True(t, filepath.IsAbs(configDir))

	env := ports.ScriptEnv{
		ItemID:    "trackpad",
		ItemName:  "Trackpad Settings",
		ItemType:  "system_config",
		Category:  "System",
		ConfigDir: configDir,
	}

	result, err := runner.Run(context.Background(), env,
		`printf '%s|%s|%s|%s|%s' "$ITEM_CONFIG_DIR" "$ITEM_ID" "$ITEM_NAME" "$ITEM_TYPE" "$ITEM_CATEGORY"`)
	require.NoError(t, err)
	assert.Equal(t, configDir+"|trackpad|Trackpad Settings|system_config|System", result.Stdout)
}

func TestBashRunner_SetEAbortsOnFirstFailure(t *testing.T) {
	runner := NewBashRunner()

	result, err := runner.Run(context.Background(), ports.ScriptEnv{}, "false\necho unreachable")
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.NotContains(t, result.Stdout, "unreachable")
}

func TestBashRunner_LaunchErrorDistinctFromExit(t *testing.T) {
	runner := NewBashRunner(WithInterpreter("/nonexistent/interpreter"))

	_, err := runner.Run(context.Background(), ports.ScriptEnv{}, "echo hi")
	require.Error(t, err)

	var launchErr *ports.LaunchError
	assert.True(t, errors.As(err, &launchErr))
	assert.Equal(t, "/nonexistent/interpreter", launchErr.Interpreter)
}
