// Package app wires the catalog loader, resolver and executor into the
// operations the commands expose.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/macsnap/macsnap/internal/adapters/script"
	"github.com/macsnap/macsnap/internal/domain/catalog"
	"github.com/macsnap/macsnap/internal/domain/engine"
	"github.com/macsnap/macsnap/internal/domain/resolve"
	"github.com/macsnap/macsnap/internal/ports"
)

// MacSnap is the application orchestrator behind every command.
type MacSnap struct {
	loader   *catalog.Loader
	resolver *resolve.Resolver
	executor *engine.Executor
	out      io.Writer
}

// New creates a MacSnap application using the real bash script runner.
func New(out io.Writer) *MacSnap {
	return &MacSnap{
		loader:   catalog.NewLoader(),
		resolver: resolve.NewResolver(),
		executor: engine.NewExecutor(script.NewBashRunner()),
		out:      out,
	}
}

// WithRunner replaces the script runner; tests inject fakes here.
func (m *MacSnap) WithRunner(runner ports.ScriptRunner) *MacSnap {
	m.executor = engine.NewExecutor(runner)
	return m
}

// WithLogger attaches a logger to phase execution.
func (m *MacSnap) WithLogger(logger ports.Logger) *MacSnap {
	m.executor = m.executor.WithLogger(logger)
	return m
}

// WithPolicy sets the reconfigure policy for this run.
func (m *MacSnap) WithPolicy(policy engine.ReconfigurePolicy) *MacSnap {
	m.executor = m.executor.WithPolicy(policy)
	return m
}

// LoadCatalog loads every item definition under dir and verifies all
// dependency references resolve, so a broken reference surfaces before
// any script runs regardless of what was selected.
func (m *MacSnap) LoadCatalog(dir string) (*catalog.Catalog, error) {
	cat, err := m.loader.Load(dir)
	if err != nil {
		return nil, err
	}
	if err := resolve.ValidateReferences(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Plan resolves the selection into a dependency-ordered execution plan.
func (m *MacSnap) Plan(cat *catalog.Catalog, selected []string) (*resolve.ExecutionPlan, error) {
	return m.resolver.Resolve(cat, selected)
}

// Install runs the plan and returns the aggregated run summary.
func (m *MacSnap) Install(ctx context.Context, cat *catalog.Catalog, plan *resolve.ExecutionPlan) engine.RunSummary {
	aggregator := engine.NewAggregator()
	aggregator.RecordAll(m.executor.Execute(ctx, cat, plan))
	return aggregator.Summarize()
}

// Uninstall runs the uninstall script of each named item, in the order
// given. Unknown ids fail before anything runs.
func (m *MacSnap) Uninstall(ctx context.Context, cat *catalog.Catalog, ids []string) (engine.RunSummary, error) {
	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		item, ok := cat.Get(id)
		if !ok {
			return engine.RunSummary{}, fmt.Errorf("unknown item %q", id)
		}
		items = append(items, item)
	}

	aggregator := engine.NewAggregator()
	for _, item := range items {
		if ctx.Err() != nil {
			break
		}
		aggregator.Record(m.executor.Uninstall(ctx, item))
	}
	return aggregator.Summarize(), nil
}
