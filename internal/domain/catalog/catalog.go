package catalog

import "sort"

// Catalog is the full set of loaded item definitions for a run.
// It is immutable after construction.
type Catalog struct {
	items map[string]Item
	order []string // document discovery order
}

// New builds a Catalog from items, rejecting duplicate ids.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{
		items: make(map[string]Item, len(items)),
		order: make([]string, 0, len(items)),
	}
	for _, item := range items {
		if existing, ok := c.items[item.ID]; ok {
			return nil, NewIDDuplicateError(item.ID, existing.SourceFile, item.SourceFile)
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}
	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Get retrieves an item by id.
func (c *Catalog) Get(id string) (Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// IDs returns all item ids in discovery order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Items returns all items in discovery order.
func (c *Catalog) Items() []Item {
	out := make([]Item, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Categories returns the distinct category names, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, item := range c.items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	sort.Strings(out)
	return out
}

// ItemsByCategory returns the items in a category, sorted by name.
func (c *Catalog) ItemsByCategory(category string) []Item {
	out := make([]Item, 0)
	for _, id := range c.order {
		if item := c.items[id]; item.Category == category {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// DefaultSelection returns the ids of items marked selected_by_default,
// in discovery order.
func (c *Catalog) DefaultSelection() []string {
	out := make([]string, 0)
	for _, id := range c.order {
		if c.items[id].SelectedByDefault {
			out = append(out, id)
		}
	}
	return out
}
