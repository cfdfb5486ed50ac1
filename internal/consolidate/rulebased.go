package consolidate

import (
	"fmt"
	"log"

	"codeatlas/internal/types"
)

// RuleBased performs the deterministic directory merge: group by parent
// directory, merge each multi-member group, rewrite references, and rebuild
// the category list. It cannot fail; an empty graph returns unchanged, and
// a graph where every directory already holds one component is a fixed
// point.
func RuleBased(graph types.ComponentGraph) types.ComponentGraph {
	if len(graph.Components) == 0 {
		return graph
	}
	out := applyMergeGroups(graph, GroupByDirectory(graph.Components))
	log.Printf("consolidate: rule-based pass %d -> %d components", len(graph.Components), len(out.Components))
	return out
}

// applyMergeGroups runs the merge resolver over each group and re-derives a
// consistent graph: unique ids for merge targets, an old-to-new id table
// for the rewriter, and a recomputed category list. Components of the input
// graph that appear in no group pass through untouched.
func applyMergeGroups(graph types.ComponentGraph, groups []MergeGroup) types.ComponentGraph {
	claimed := make(map[string]struct{})
	for _, g := range groups {
		for _, m := range g.Members {
			claimed[m.ID] = struct{}{}
		}
	}
	var passThrough []types.Component
	for _, c := range graph.Components {
		if _, ok := claimed[c.ID]; !ok {
			passThrough = append(passThrough, c)
		}
	}

	// Reserve ids kept by pass-through and single-member components before
	// merge targets pick theirs; id uniqueness is a hard invariant.
	used := make(map[string]struct{}, len(graph.Components))
	for _, c := range passThrough {
		used[c.ID] = struct{}{}
	}
	for _, g := range groups {
		if len(g.Members) == 1 {
			used[g.Members[0].ID] = struct{}{}
		}
	}

	idMap := make(map[string]string)
	components := make([]types.Component, 0, len(groups)+len(passThrough))
	for _, g := range groups {
		if len(g.Members) == 0 {
			continue
		}
		if len(g.Members) == 1 {
			components = append(components, g.Members[0])
			continue
		}
		g.TargetID = uniqueID(g.TargetID, used)
		for _, m := range g.Members {
			idMap[m.ID] = g.TargetID
		}
		components = append(components, Merge(g))
	}
	components = append(components, passThrough...)

	components = RewriteReferences(components, idMap)

	return types.ComponentGraph{
		Project:           graph.Project,
		Components:        components,
		Categories:        RecomputeCategories(components),
		Domains:           graph.Domains,
		ArchitectureNotes: graph.ArchitectureNotes,
	}
}

// uniqueID claims id in used, suffixing -2, -3, ... on collision.
func uniqueID(id string, used map[string]struct{}) string {
	if id == "" {
		id = "component"
	}
	candidate := id
	for n := 2; ; n++ {
		if _, taken := used[candidate]; !taken {
			used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", id, n)
	}
}
