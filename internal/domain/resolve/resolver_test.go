package resolve

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/macsnap/macsnap/internal/domain/catalog"
)

func buildCatalog(t *testing.T, deps map[string][]string, order ...string) *catalog.Catalog {
	t.Helper()
	items := make([]catalog.Item, 0, len(order))
	for _, id := range order {
		items = append(items, catalog.Item{
			ID:           id,
			Name:         id,
			Category:     "Test",
			Type:         catalog.TypeShellScript,
			Dependencies: deps[id],
		})
	}
	cat, err := catalog.New(items)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return cat
}

func TestResolver_ChainSelectionExpandsTransitively(t *testing.T) {
	// A (no deps), B (deps: [A]), C (deps: [B]); selecting C yields [A B C].
	cat := buildCatalog(t, map[string][]string{
		"B": {"A"},
		"C": {"B"},
	}, "A", "B", "C")

	plan, err := NewResolver().Resolve(cat, []string{"C"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"A", "B", "C"}
	if !reflect.DeepEqual(plan.IDs(), want) {
		t.Errorf("plan = %v, want %v", plan.IDs(), want)
	}

	if plan.PulledInBy("C") != "" {
		t.Error("C was selected directly")
	}
	if plan.PulledInBy("B") != "C" {
		t.Errorf("B pulled in by %q, want C", plan.PulledInBy("B"))
	}
}

func TestResolver_DependenciesPrecedeDependents(t *testing.T) {
	cat := buildCatalog(t, map[string][]string{
		"editor":    {"brew"},
		"linter":    {"brew", "editor"},
		"terminal":  {"brew"},
		"dotfiles":  {"terminal"},
		"formatter": {"editor"},
	}, "brew", "editor", "linter", "terminal", "dotfiles", "formatter")

	plan, err := NewResolver().Resolve(cat, []string{"linter", "dotfiles", "formatter"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	pos := make(map[string]int)
	for i, id := range plan.IDs() {
		pos[id] = i
	}

	for _, item := range cat.Items() {
		if !plan.Contains(item.ID) {
			continue
		}
		for _, dep := range item.Dependencies {
			if pos[dep] >= pos[item.ID] {
				t.Errorf("dependency %q scheduled at %d, after dependent %q at %d",
					dep, pos[dep], item.ID, pos[item.ID])
			}
		}
	}
}

func TestResolver_TieBreakFollowsSelectionOrder(t *testing.T) {
	// Three independent items: the plan preserves the selection order,
	// not catalog order.
	cat := buildCatalog(t, nil, "x", "y", "z")

	plan, err := NewResolver().Resolve(cat, []string{"z", "x", "y"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"z", "x", "y"}
	if !reflect.DeepEqual(plan.IDs(), want) {
		t.Errorf("plan = %v, want %v", plan.IDs(), want)
	}
}

func TestResolver_Deterministic(t *testing.T) {
	cat := buildCatalog(t, map[string][]string{
		"b": {"a"},
		"c": {"a"},
		"d": {"b", "c"},
	}, "a", "b", "c", "d")

	first, err := NewResolver().Resolve(cat, []string{"d", "c"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := NewResolver().Resolve(cat, []string{"d", "c"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !reflect.DeepEqual(first.IDs(), second.IDs()) {
		t.Errorf("plans differ: %v vs %v", first.IDs(), second.IDs())
	}
}

func TestResolver_NoDuplicatesWhenSelectionOverlaps(t *testing.T) {
	cat := buildCatalog(t, map[string][]string{
		"b": {"a"},
	}, "a", "b")

	plan, err := NewResolver().Resolve(cat, []string{"a", "b", "a"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	want := []string{"a", "b"}
	if !reflect.DeepEqual(plan.IDs(), want) {
		t.Errorf("plan = %v, want %v", plan.IDs(), want)
	}
}

func TestResolver_UnknownSelectionAndReference(t *testing.T) {
	cat := buildCatalog(t, map[string][]string{
		"b": {"ghost"},
	}, "a", "b")

	_, err := NewResolver().Resolve(cat, []string{"b", "phantom"})
	if err == nil {
		t.Fatal("Resolve() should fail")
	}

	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("error should be *DependencyError, got %T", err)
	}
	if depErr.Kind != KindUnknownReference {
		t.Fatalf("Kind = %q, want %q", depErr.Kind, KindUnknownReference)
	}

	want := []string{"ghost", "phantom"}
	if !reflect.DeepEqual(depErr.IDs(), want) {
		t.Errorf("IDs() = %v, want %v", depErr.IDs(), want)
	}
}

func TestResolver_CycleNamesExactlyItsMembers(t *testing.T) {
	// d -> e -> f -> d is a cycle; g hangs off the cycle but is not on it.
	cat := buildCatalog(t, map[string][]string{
		"d": {"e"},
		"e": {"f"},
		"f": {"d"},
		"g": {"d"},
	}, "d", "e", "f", "g")

	_, err := NewResolver().Resolve(cat, []string{"g"})
	if err == nil {
		t.Fatal("Resolve() should fail")
	}

	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("error should be *DependencyError, got %T", err)
	}
	if depErr.Kind != KindCycle {
		t.Fatalf("Kind = %q, want %q", depErr.Kind, KindCycle)
	}

	got := append([]string(nil), depErr.Cycle...)
	sort.Strings(got)
	want := []string{"d", "e", "f"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cycle members = %v, want %v (set equality)", got, want)
	}
}

func TestResolver_SelfDependencyIsACycle(t *testing.T) {
	cat := buildCatalog(t, map[string][]string{
		"a": {"a"},
	}, "a")

	_, err := NewResolver().Resolve(cat, []string{"a"})

	var depErr *DependencyError
	if !errors.As(err, &depErr) || depErr.Kind != KindCycle {
		t.Fatalf("want cycle error, got %v", err)
	}
	if !reflect.DeepEqual(depErr.Cycle, []string{"a"}) {
		t.Errorf("cycle = %v, want [a]", depErr.Cycle)
	}
}

func TestResolver_CycleOutsideSelectionIgnored(t *testing.T) {
	// The executed subgraph is acyclic even though the catalog has a
	// cycle elsewhere.
	cat := buildCatalog(t, map[string][]string{
		"x": {"y"},
		"y": {"x"},
		"b": {"a"},
	}, "a", "b", "x", "y")

	plan, err := NewResolver().Resolve(cat, []string{"b"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !reflect.DeepEqual(plan.IDs(), []string{"a", "b"}) {
		t.Errorf("plan = %v, want [a b]", plan.IDs())
	}
}

func TestValidateReferences(t *testing.T) {
	cat := buildCatalog(t, map[string][]string{
		"b": {"a", "missing1"},
		"a": {"missing2"},
	}, "a", "b")

	err := ValidateReferences(cat)
	if err == nil {
		t.Fatal("ValidateReferences() should fail")
	}

	var depErr *DependencyError
	if !errors.As(err, &depErr) {
		t.Fatalf("error should be *DependencyError, got %T", err)
	}
	want := []string{"missing1", "missing2"}
	if !reflect.DeepEqual(depErr.IDs(), want) {
		t.Errorf("IDs() = %v, want %v", depErr.IDs(), want)
	}

	ok := buildCatalog(t, map[string][]string{"b": {"a"}}, "a", "b")
	if err := ValidateReferences(ok); err != nil {
		t.Errorf("ValidateReferences() on a valid catalog = %v", err)
	}
}
