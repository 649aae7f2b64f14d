package menu

// Registry indexes the menu tree by item ID.
type Registry struct {
	nodes   map[string]Item
	parents map[string]string
}

// BuildRegistry walks root and records every item and its parent.
func BuildRegistry(root Item) *Registry {
	r := &Registry{
		nodes:   make(map[string]Item),
		parents: make(map[string]string),
	}
	var walk func(parent string, item Item)
	walk = func(parent string, item Item) {
		r.nodes[item.ID] = item
		if parent != "" {
			r.parents[item.ID] = parent
		}
		for _, child := range item.Submenu {
			walk(item.ID, child)
		}
	}
	walk("", root)
	return r
}

// Find locates an item by ID.
func (r *Registry) Find(id string) (Item, bool) {
	item, ok := r.nodes[id]
	return item, ok
}

// Path returns the chain of items from the root down to id, inclusive.
func (r *Registry) Path(id string) []Item {
	if _, ok := r.nodes[id]; !ok {
		return nil
	}
	var chain []Item
	for cur := id; cur != ""; cur = r.parents[cur] {
		chain = append([]Item{r.nodes[cur]}, chain...)
	}
	return chain
}
