package consolidate

import (
	"log"

	"codeatlas/internal/types"
)

// ApplyClusters merges the graph along validated AI cluster assignments,
// using the same merge resolver and reference rewriter as the rule-based
// pass. Cluster member ids must name components of the graph; anything the
// clusters fail to claim passes through untouched.
func ApplyClusters(graph types.ComponentGraph, clusters []types.ClusterGroup) types.ComponentGraph {
	if len(clusters) == 0 {
		return graph
	}
	groups := make([]MergeGroup, 0, len(clusters))
	for _, cl := range clusters {
		g := MergeGroup{
			TargetID:      cl.ID,
			TargetName:    cl.Name,
			TargetPurpose: cl.Purpose,
		}
		for _, id := range cl.MemberIDs {
			if c, ok := graph.ComponentByID(id); ok {
				g.Members = append(g.Members, c)
			}
		}
		if len(g.Members) == 0 {
			continue
		}
		groups = append(groups, g)
	}
	out := applyMergeGroups(graph, groups)
	log.Printf("consolidate: cluster pass %d -> %d components", len(graph.Components), len(out.Components))
	return out
}
