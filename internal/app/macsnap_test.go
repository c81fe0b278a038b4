package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsnap/macsnap/internal/domain/engine"
	"github.com/macsnap/macsnap/internal/ports"
)

// scriptedRunner maps script bodies to exit codes.
type scriptedRunner struct {
	exits map[string]int
	calls []string
}

func (r *scriptedRunner) Run(_ context.Context, env ports.ScriptEnv, body string) (ports.ScriptResult, error) {
	r.calls = append(r.calls, env.ItemID)
	return ports.ScriptResult{ExitCode: r.exits[body]}, nil
}

func writeCatalog(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, doc := range docs {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	}
	return dir
}

const jqDoc = `
id: jq
name: jq
type: brew
category: cli
validate: |
  check jq
install: |
  get jq
`

const ripgrepDoc = `
id: ripgrep
name: ripgrep
type: brew
category: cli
dependencies: [jq]
validate: |
  check rg
install: |
  get rg
`

func TestLoadCatalogRejectsBrokenReferences(t *testing.T) {
	dir := writeCatalog(t, map[string]string{
		"cli/ripgrep.yml": ripgrepDoc, // depends on jq, which is absent
	})

	m := New(&bytes.Buffer{})
	_, err := m.LoadCatalog(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jq")
	assert.Contains(t, err.Error(), "ripgrep")
}

func TestInstallEndToEnd(t *testing.T) {
	dir := writeCatalog(t, map[string]string{
		"cli/jq.yml":      jqDoc,
		"cli/ripgrep.yml": ripgrepDoc,
	})

	runner := &scriptedRunner{exits: map[string]int{
		"check jq\n": 1, "check rg\n": 1, // both need install
	}}
	m := New(&bytes.Buffer{}).WithRunner(runner)

	cat, err := m.LoadCatalog(dir)
	require.NoError(t, err)

	plan, err := m.Plan(cat, []string{"ripgrep"})
	require.NoError(t, err)
	assert.Equal(t, []string{"jq", "ripgrep"}, plan.IDs())

	summary := m.Install(context.Background(), cat, plan)
	assert.Equal(t, engine.VerdictSuccess, summary.Verdict)
	assert.Equal(t, 0, summary.Verdict.ExitCode())
	assert.Equal(t, 2, summary.Succeeded())
}

func TestInstallFailureCascade(t *testing.T) {
	dir := writeCatalog(t, map[string]string{
		"cli/jq.yml":      jqDoc,
		"cli/ripgrep.yml": ripgrepDoc,
	})

	runner := &scriptedRunner{exits: map[string]int{
		"check jq\n": 1, "get jq\n": 1, // jq install fails, ripgrep skipped
	}}
	m := New(&bytes.Buffer{}).WithRunner(runner)

	cat, err := m.LoadCatalog(dir)
	require.NoError(t, err)
	plan, err := m.Plan(cat, []string{"jq", "ripgrep"})
	require.NoError(t, err)

	summary := m.Install(context.Background(), cat, plan)
	assert.Equal(t, engine.VerdictPartialFailure, summary.Verdict)
	assert.Equal(t, 1, summary.Verdict.ExitCode())
	require.Len(t, summary.Failures, 2)
	assert.Equal(t, engine.StateInstallFailed, summary.Failures[0].State)
	assert.Equal(t, engine.StateSkippedDependencyFailed, summary.Failures[1].State)
}

func TestUninstallUnknownItem(t *testing.T) {
	dir := writeCatalog(t, map[string]string{"cli/jq.yml": jqDoc})
	m := New(&bytes.Buffer{}).WithRunner(&scriptedRunner{exits: map[string]int{}})

	cat, err := m.LoadCatalog(dir)
	require.NoError(t, err)

	_, err = m.Uninstall(context.Background(), cat, []string{"jq", "ghost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestUninstallRunsPerItem(t *testing.T) {
	dir := writeCatalog(t, map[string]string{"cli/jq.yml": jqDoc + "uninstall: |\n  drop jq\n"})
	runner := &scriptedRunner{exits: map[string]int{}}
	m := New(&bytes.Buffer{}).WithRunner(runner)

	cat, err := m.LoadCatalog(dir)
	require.NoError(t, err)

	summary, err := m.Uninstall(context.Background(), cat, []string{"jq"})
	require.NoError(t, err)
	assert.Equal(t, engine.VerdictSuccess, summary.Verdict)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, engine.StateUninstalled, summary.Outcomes[0].State)
}

func TestPrintPlanMarksPulledDependencies(t *testing.T) {
	dir := writeCatalog(t, map[string]string{
		"cli/jq.yml":      jqDoc,
		"cli/ripgrep.yml": ripgrepDoc,
	})

	var out bytes.Buffer
	m := New(&out).WithRunner(&scriptedRunner{exits: map[string]int{}})
	cat, err := m.LoadCatalog(dir)
	require.NoError(t, err)
	plan, err := m.Plan(cat, []string{"ripgrep"})
	require.NoError(t, err)

	m.PrintPlan(cat, plan)
	assert.Contains(t, out.String(), "required by ripgrep")
}

func TestPrintSummaryShowsVerdict(t *testing.T) {
	var out bytes.Buffer
	m := New(&out)

	agg := engine.NewAggregator()
	agg.Record(engine.ItemOutcome{ItemID: "jq", State: engine.StateDone})
	agg.Record(engine.ItemOutcome{
		ItemID: "rg",
		State:  engine.StateInstallFailed,
		Reason: "install script for \"rg\" exited with code 1",
	})
	m.PrintSummary(agg.Summarize())

	assert.Contains(t, out.String(), "1 succeeded, 1 failed")
	assert.Contains(t, out.String(), "Partial failure")
	assert.Contains(t, out.String(), "exited with code 1")
}
