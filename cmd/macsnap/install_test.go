package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsnap/macsnap/internal/app"
	"github.com/macsnap/macsnap/internal/domain/config"
	"github.com/macsnap/macsnap/internal/ports"
)

type stubRunner struct {
	exits map[string]int
}

func (r *stubRunner) Run(_ context.Context, _ ports.ScriptEnv, body string) (ports.ScriptResult, error) {
	return ports.ScriptResult{ExitCode: r.exits[body]}, nil
}

const testItemDoc = `
id: jq
name: jq
type: brew
category: cli
validate: |
  check jq
install: |
  get jq
`

func writeTestCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jq.yml"), []byte(testItemDoc), 0o644))
	return dir
}

// withTestApp points the commands at a temp catalog and a stubbed
// runner, restoring the globals afterwards.
func withTestApp(t *testing.T, dir string, runner ports.ScriptRunner) *bytes.Buffer {
	t.Helper()

	out := &bytes.Buffer{}
	prevNewApp := newApp
	prevCatalogDir := catalogDir
	prevCfgFile := cfgFile
	newApp = func(_ io.Writer, _ config.Settings) *app.MacSnap {
		return app.New(out).WithRunner(runner)
	}
	catalogDir = dir
	cfgFile = ""

	t.Cleanup(func() {
		newApp = prevNewApp
		catalogDir = prevCatalogDir
		cfgFile = prevCfgFile
	})
	return out
}

func TestRunInstallSuccess(t *testing.T) {
	dir := writeTestCatalog(t)
	runner := &stubRunner{exits: map[string]int{"check jq\n": 1}}
	out := withTestApp(t, dir, runner)

	err := runInstall(installCmd, []string{"jq"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Execution plan (1 items)")
	assert.Contains(t, out.String(), "1 succeeded, 0 failed")
}

func TestRunInstallFailureExitStatus(t *testing.T) {
	dir := writeTestCatalog(t)
	runner := &stubRunner{exits: map[string]int{"check jq\n": 1, "get jq\n": 1}}
	out := withTestApp(t, dir, runner)

	err := runInstall(installCmd, []string{"jq"})
	require.Error(t, err)

	var statusErr *exitStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 1, statusErr.code)
	assert.Contains(t, out.String(), "Partial failure")
}

func TestRunInstallEmptySelection(t *testing.T) {
	dir := writeTestCatalog(t) // no item is selected_by_default
	out := withTestApp(t, dir, &stubRunner{exits: map[string]int{}})

	prev := installDefaults
	installDefaults = true
	t.Cleanup(func() { installDefaults = prev })

	err := runInstall(installCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Nothing to install.")
}

func TestRunInstallUnknownItem(t *testing.T) {
	dir := writeTestCatalog(t)
	withTestApp(t, dir, &stubRunner{exits: map[string]int{}})

	err := runInstall(installCmd, []string{"ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRunPlanRequiresSelection(t *testing.T) {
	dir := writeTestCatalog(t)
	withTestApp(t, dir, &stubRunner{exits: map[string]int{}})

	err := runPlan(planCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--defaults")
}

func TestRunUninstallWithoutScript(t *testing.T) {
	dir := writeTestCatalog(t)
	out := withTestApp(t, dir, &stubRunner{exits: map[string]int{}})

	err := runUninstall(uninstallCmd, []string{"jq"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "uninstalled")
}

func TestRunListGroupsByCategory(t *testing.T) {
	dir := writeTestCatalog(t)
	out := withTestApp(t, dir, &stubRunner{exits: map[string]int{}})

	err := runList(listCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "cli")
	assert.Contains(t, out.String(), "jq")
}
