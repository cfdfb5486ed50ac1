// Package consolidate reduces a fine-grained component graph into a small
// curated set of components: a deterministic directory-based pass, followed
// by an optional AI-assisted clustering pass that is structurally validated
// before being applied.
package consolidate

import (
	"codeatlas/internal/types"
	"codeatlas/internal/utils"
)

// MergeGroup is the single shape both passes feed into the merge resolver:
// the rule-based pass builds one per directory, the AI pass builds one per
// validated cluster.
type MergeGroup struct {
	TargetID      string
	TargetName    string
	TargetPurpose string
	Members       []types.Component
}

// GroupByDirectory partitions components by normalized parent directory,
// preserving first-seen bucket order.
func GroupByDirectory(components []types.Component) []MergeGroup {
	byDir := make(map[string]int, len(components))
	var groups []MergeGroup
	for _, c := range components {
		dir := utils.ParentDir(c.Path)
		idx, ok := byDir[dir]
		if !ok {
			idx = len(groups)
			byDir[dir] = idx
			id, name := utils.Slug(dir), utils.DisplayName(dir)
			if dir == "" {
				// Repo-root components have no parent segment to name
				// the group after.
				id, name = "root", "Root"
			}
			groups = append(groups, MergeGroup{
				TargetID:   id,
				TargetName: name,
			})
		}
		groups[idx].Members = append(groups[idx].Members, c)
	}
	return groups
}
