package consolidate

import (
	"fmt"

	"codeatlas/internal/types"
)

// RewriteReferences remaps every component's dependency and dependent lists
// through the old-id to new-id table. Unmapped ids pass through unchanged,
// references to the component itself and to ids absent from the post-merge
// graph are dropped, and the result is de-duplicated in order. References
// that already pointed at nonexistent ids disappear here too.
func RewriteReferences(components []types.Component, idMap map[string]string) []types.Component {
	valid := make(map[string]struct{}, len(components))
	for _, c := range components {
		valid[c.ID] = struct{}{}
	}

	out := make([]types.Component, len(components))
	for i, c := range components {
		c.Dependencies = rewriteList(c.Dependencies, idMap, valid, c.ID)
		c.Dependents = rewriteList(c.Dependents, idMap, valid, c.ID)
		out[i] = c
	}
	return out
}

func rewriteList(ids []string, idMap map[string]string, valid map[string]struct{}, self string) []string {
	if len(ids) == 0 {
		return nil
	}
	var out []string
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if mapped, ok := idMap[id]; ok {
			id = mapped
		}
		if id == self {
			continue
		}
		if _, ok := valid[id]; !ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RecomputeCategories rebuilds the category list from scratch by counting
// components per category string, in first-seen order.
func RecomputeCategories(components []types.Component) []types.Category {
	counts := make(map[string]int, len(components))
	var order []string
	for _, c := range components {
		if c.Category == "" {
			continue
		}
		if _, ok := counts[c.Category]; !ok {
			order = append(order, c.Category)
		}
		counts[c.Category]++
	}
	out := make([]types.Category, 0, len(order))
	for _, name := range order {
		out = append(out, types.Category{
			Name:        name,
			Description: fmt.Sprintf("Contains %d component(s)", counts[name]),
		})
	}
	return out
}
