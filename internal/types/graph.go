package types

// Complexity is an ordered label: low < medium < high.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// Rank maps a complexity to its position in the total order.
// Unknown values rank below "low" so they never win a merge.
func (c Complexity) Rank() int {
	switch c {
	case ComplexityLow:
		return 1
	case ComplexityMedium:
		return 2
	case ComplexityHigh:
		return 3
	default:
		return 0
	}
}

// MaxComplexity returns the higher of two complexity values.
func MaxComplexity(a, b Complexity) Complexity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Component is one documentable unit of the codebase: a file or directory
// with a purpose, key files, directed dependency edges, and metadata.
type Component struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Path         string     `json:"path"`
	Purpose      string     `json:"purpose"`
	KeyFiles     []string   `json:"key_files,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty"`
	Dependents   []string   `json:"dependents,omitempty"`
	Complexity   Complexity `json:"complexity"`
	Category     string     `json:"category"`
	Domain       string     `json:"domain,omitempty"`

	// MergedFrom lists the original component ids absorbed into this one.
	// Absent for components that never took part in a merge.
	MergedFrom []string `json:"merged_from,omitempty"`
}

// Provenance returns the original ids this component stands for:
// its MergedFrom chain, or its own id when it was never merged.
func (c Component) Provenance() []string {
	if len(c.MergedFrom) > 0 {
		return c.MergedFrom
	}
	return []string{c.ID}
}

// Category groups components by a free-text label. The description is
// mechanically recomputed after every consolidation pass.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DomainGroup is an optional large-repo grouping label.
type DomainGroup struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ComponentGraph is the full discovered (or consolidated) picture of one
// project. A consolidation pass replaces the graph wholesale; earlier
// snapshots stay valid for comparison.
type ComponentGraph struct {
	Project           string        `json:"project"`
	Components        []Component   `json:"components"`
	Categories        []Category    `json:"categories,omitempty"`
	Domains           []DomainGroup `json:"domains,omitempty"`
	ArchitectureNotes string        `json:"architecture_notes,omitempty"`
}

// ComponentByID returns the component with the given id, if present.
func (g ComponentGraph) ComponentByID(id string) (Component, bool) {
	for _, c := range g.Components {
		if c.ID == id {
			return c, true
		}
	}
	return Component{}, false
}
