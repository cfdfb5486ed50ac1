package types

import (
	"reflect"
	"testing"
)

func TestMaxComplexity(t *testing.T) {
	cases := []struct {
		a, b, want Complexity
	}{
		{ComplexityLow, ComplexityHigh, ComplexityHigh},
		{ComplexityHigh, ComplexityLow, ComplexityHigh},
		{ComplexityMedium, ComplexityMedium, ComplexityMedium},
		{Complexity("unknown"), ComplexityLow, ComplexityLow},
		{ComplexityLow, Complexity(""), ComplexityLow},
	}
	for _, c := range cases {
		if got := MaxComplexity(c.a, c.b); got != c.want {
			t.Errorf("MaxComplexity(%q, %q) = %q, want %q", c.a, c.b, got, c.want)
		}
	}
}

func TestProvenance(t *testing.T) {
	fresh := Component{ID: "auth"}
	if got := fresh.Provenance(); !reflect.DeepEqual(got, []string{"auth"}) {
		t.Fatalf("fresh component provenance = %v", got)
	}
	merged := Component{ID: "src-auth", MergedFrom: []string{"login", "session"}}
	if got := merged.Provenance(); !reflect.DeepEqual(got, []string{"login", "session"}) {
		t.Fatalf("merged component provenance = %v", got)
	}
}

func TestComponentByID(t *testing.T) {
	g := ComponentGraph{Components: []Component{{ID: "a"}, {ID: "b"}}}
	if c, ok := g.ComponentByID("b"); !ok || c.ID != "b" {
		t.Fatalf("ComponentByID(b) = %+v, %v", c, ok)
	}
	if _, ok := g.ComponentByID("missing"); ok {
		t.Fatalf("ComponentByID(missing) unexpectedly found")
	}
}
