package consolidate

import (
	"reflect"
	"testing"

	"codeatlas/internal/types"
)

func parseComponents() []types.Component {
	return []types.Component{
		{ID: "auth", Name: "Auth", Purpose: "identity"},
		{ID: "api", Name: "API", Purpose: "transport"},
		{ID: "db", Name: "DB", Purpose: "storage"},
	}
}

func memberSets(clusters []types.ClusterGroup) map[string][]string {
	out := make(map[string][]string, len(clusters))
	for _, cl := range clusters {
		out[cl.ID] = cl.MemberIDs
	}
	return out
}

func TestParseClusterResponseFenced(t *testing.T) {
	raw := "Here is the grouping:\n```json\n" +
		`{"clusters": [{"id": "core", "name": "Core", "memberIds": ["auth", "api"], "purpose": "entry"}]}` +
		"\n```\n"
	clusters := ParseClusterResponse(raw, parseComponents())
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters (core + db singleton), got %d", len(clusters))
	}
	sets := memberSets(clusters)
	if want := []string{"auth", "api"}; !reflect.DeepEqual(sets["core"], want) {
		t.Fatalf("core members = %v, want %v", sets["core"], want)
	}
	if want := []string{"db"}; !reflect.DeepEqual(sets["db"], want) {
		t.Fatalf("db singleton members = %v, want %v", sets["db"], want)
	}
}

func TestParseClusterResponseDropsUnknownIDs(t *testing.T) {
	raw := `{"clusters": [{"id": "core", "memberIds": ["auth", "ghost", "api"]}]}`
	clusters := ParseClusterResponse(raw, parseComponents())
	sets := memberSets(clusters)
	if want := []string{"auth", "api"}; !reflect.DeepEqual(sets["core"], want) {
		t.Fatalf("core members = %v, want %v", sets["core"], want)
	}
}

func TestParseClusterResponseFirstClaimWins(t *testing.T) {
	raw := `{"clusters": [
		{"id": "first", "memberIds": ["auth", "api"]},
		{"id": "second", "memberIds": ["api", "db"]}
	]}`
	clusters := ParseClusterResponse(raw, parseComponents())
	sets := memberSets(clusters)
	if want := []string{"auth", "api"}; !reflect.DeepEqual(sets["first"], want) {
		t.Fatalf("first members = %v, want %v", sets["first"], want)
	}
	if want := []string{"db"}; !reflect.DeepEqual(sets["second"], want) {
		t.Fatalf("second members = %v, want %v", sets["second"], want)
	}
}

func TestParseClusterResponseDropsEmptiedClusters(t *testing.T) {
	raw := `{"clusters": [
		{"id": "real", "memberIds": ["auth", "api", "db"]},
		{"id": "phantom", "memberIds": ["ghost", "auth"]}
	]}`
	clusters := ParseClusterResponse(raw, parseComponents())
	if len(clusters) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].ID != "real" {
		t.Fatalf("unexpected cluster id %q", clusters[0].ID)
	}
}

func TestParseClusterResponsePartitionsEveryID(t *testing.T) {
	raw := `{"clusters": [{"id": "core", "memberIds": ["api"]}]}`
	components := parseComponents()
	clusters := ParseClusterResponse(raw, components)

	claimed := make(map[string]int)
	for _, cl := range clusters {
		for _, id := range cl.MemberIDs {
			claimed[id]++
		}
	}
	for _, c := range components {
		if claimed[c.ID] != 1 {
			t.Fatalf("component %q claimed %d times, want exactly once", c.ID, claimed[c.ID])
		}
	}
}

func TestParseClusterResponseUnusable(t *testing.T) {
	for _, raw := range []string{
		"",
		"I could not group these components, sorry.",
		"```json\nnot json at all\n```",
		`{"clusters": "oops"}`,
	} {
		if clusters := ParseClusterResponse(raw, parseComponents()); clusters != nil {
			t.Errorf("ParseClusterResponse(%q) = %v, want nil", raw, clusters)
		}
	}
}

func TestParseClusterResponseSlugsIDs(t *testing.T) {
	raw := `{"clusters": [{"id": "Core Services!", "memberIds": ["auth", "api", "db"]}]}`
	clusters := ParseClusterResponse(raw, parseComponents())
	if len(clusters) != 1 || clusters[0].ID != "core-services" {
		t.Fatalf("expected slugged id, got %+v", clusters)
	}
}

func TestParseClusterResponseFallsBackToNameThenMember(t *testing.T) {
	raw := `{"clusters": [
		{"name": "Data Layer", "memberIds": ["db"]},
		{"memberIds": ["auth", "api"]}
	]}`
	clusters := ParseClusterResponse(raw, parseComponents())
	sets := memberSets(clusters)
	if _, ok := sets["data-layer"]; !ok {
		t.Fatalf("expected name-derived id, got %v", sets)
	}
	if _, ok := sets["auth"]; !ok {
		t.Fatalf("expected first-member id, got %v", sets)
	}
}
