package app

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/macsnap/macsnap/internal/domain/catalog"
	"github.com/macsnap/macsnap/internal/domain/engine"
	"github.com/macsnap/macsnap/internal/domain/resolve"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	skipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// PrintPlan outputs the execution order, marking items pulled in as
// dependencies rather than selected.
func (m *MacSnap) PrintPlan(cat *catalog.Catalog, plan *resolve.ExecutionPlan) {
	if plan.IsEmpty() {
		m.printf("Nothing to install.\n")
		return
	}

	m.printf("%s\n\n", headerStyle.Render(fmt.Sprintf("Execution plan (%d items)", plan.Len())))
	for i, id := range plan.IDs() {
		name := id
		if item, ok := cat.Get(id); ok {
			name = item.Name
		}
		line := fmt.Sprintf("  %2d. %s %s", i+1, id, dimStyle.Render("("+name+")"))
		if by := plan.PulledInBy(id); by != "" {
			line += " " + dimStyle.Render("← required by "+by)
		}
		m.printf("%s\n", line)
	}
}

// PrintSummary outputs the per-item results and the run verdict.
func (m *MacSnap) PrintSummary(summary engine.RunSummary) {
	m.printf("\n%s\n\n", headerStyle.Render("Run "+summary.RunID.String()))

	for _, outcome := range summary.Outcomes {
		m.printf("  %s %s%s\n",
			stateMark(outcome.State), outcome.ItemID,
			dimStyle.Render(" "+outcome.State.String()))
		if outcome.Reason != "" && !outcome.State.Success() {
			m.printf("      %s\n", failStyle.Render(outcome.Reason))
		}
	}

	m.printf("\n%d succeeded, %d failed.\n", summary.Succeeded(), summary.Failed())
	switch summary.Verdict {
	case engine.VerdictSuccess:
		m.printf("%s\n", okStyle.Render("Success."))
	case engine.VerdictPartialFailure:
		m.printf("%s\n", skipStyle.Render("Partial failure."))
	default:
		m.printf("%s\n", failStyle.Render("Total failure."))
	}
}

// PrintCatalog lists every item grouped by category.
func (m *MacSnap) PrintCatalog(cat *catalog.Catalog) {
	for _, category := range cat.Categories() {
		m.printf("%s\n", categoryStyle.Render(category))
		for _, item := range cat.ItemsByCategory(category) {
			marker := " "
			if item.SelectedByDefault {
				marker = "*"
			}
			line := fmt.Sprintf("  %s %-24s %s", marker, item.ID, item.Name)
			if len(item.Dependencies) > 0 {
				deps := append([]string(nil), item.Dependencies...)
				sort.Strings(deps)
				line += dimStyle.Render(fmt.Sprintf("  needs %v", deps))
			}
			m.printf("%s\n", line)
		}
		m.printf("\n")
	}
	m.printf("%s\n", dimStyle.Render("* selected by default"))
}

func stateMark(state engine.ItemState) string {
	switch {
	case state.Success():
		return okStyle.Render("✓")
	case state == engine.StateSkippedDependencyFailed:
		return skipStyle.Render("-")
	default:
		return failStyle.Render("✗")
	}
}

func (m *MacSnap) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}
