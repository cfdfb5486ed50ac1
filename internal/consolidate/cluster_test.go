package consolidate

import (
	"testing"

	"codeatlas/internal/types"
)

func clusterGraph() types.ComponentGraph {
	return types.ComponentGraph{
		Project: "demo",
		Components: []types.Component{
			{ID: "auth", Name: "Auth", Path: "src/auth", Purpose: "identity", Category: "core", Dependencies: []string{"db"}},
			{ID: "api", Name: "API", Path: "src/api", Purpose: "transport", Category: "core", Dependencies: []string{"auth", "db"}},
			{ID: "db", Name: "DB", Path: "src/db", Purpose: "storage", Category: "infra", Dependents: []string{"auth", "api"}},
			{ID: "util", Name: "Util", Path: "src/util", Purpose: "helpers", Category: "infra"},
		},
	}
}

func TestApplyClusters(t *testing.T) {
	clusters := []types.ClusterGroup{
		{ID: "entry", Name: "Entry", MemberIDs: []string{"auth", "api"}, Purpose: "request handling"},
		{ID: "data", Name: "Data", MemberIDs: []string{"db", "util"}},
	}
	out := ApplyClusters(clusterGraph(), clusters)
	if len(out.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(out.Components))
	}

	entry, ok := out.ComponentByID("entry")
	if !ok {
		t.Fatalf("entry cluster missing from output")
	}
	if entry.Purpose != "request handling" {
		t.Fatalf("cluster purpose must win, got %q", entry.Purpose)
	}
	if len(entry.Dependencies) != 1 || entry.Dependencies[0] != "data" {
		t.Fatalf("entry dependencies = %v, want [data]", entry.Dependencies)
	}
	assertGraphConsistent(t, out)
	assertProvenanceCovers(t, clusterGraph(), out)
}

func TestApplyClustersLeavesUnclaimedAlone(t *testing.T) {
	clusters := []types.ClusterGroup{
		{ID: "entry", MemberIDs: []string{"auth", "api"}},
	}
	out := ApplyClusters(clusterGraph(), clusters)
	if len(out.Components) != 3 {
		t.Fatalf("expected 3 components, got %d", len(out.Components))
	}
	if _, ok := out.ComponentByID("util"); !ok {
		t.Fatalf("unclaimed component must pass through")
	}
}

func TestApplyClustersSkipsUnknownOnlyClusters(t *testing.T) {
	clusters := []types.ClusterGroup{
		{ID: "phantom", MemberIDs: []string{"ghost"}},
	}
	out := ApplyClusters(clusterGraph(), clusters)
	if len(out.Components) != 4 {
		t.Fatalf("expected the graph unchanged, got %d components", len(out.Components))
	}
}

func TestApplyClustersNoClusters(t *testing.T) {
	in := clusterGraph()
	out := ApplyClusters(in, nil)
	if len(out.Components) != len(in.Components) {
		t.Fatalf("nil clusters must return the graph unchanged")
	}
}
