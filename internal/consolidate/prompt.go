package consolidate

import (
	"fmt"
	"strings"

	"codeatlas/internal/types"
)

// BuildClusteringPrompt renders the instruction block for the clustering
// call: one line per component plus the output contract. Pure templating,
// no side effects.
func BuildClusteringPrompt(components []types.Component, project string, targetCount int) string {
	var buf strings.Builder

	writeSection(&buf, "PURPOSE", fmt.Sprintf(
		"Group the components of the %q codebase into at most %d clusters of components that belong together for documentation purposes.",
		project, targetCount))

	var list strings.Builder
	for _, c := range components {
		fmt.Fprintf(&list, "- %s: %s — %s\n", c.ID, c.Path, c.Purpose)
	}
	writeSection(&buf, "COMPONENTS", list.String())

	writeSection(&buf, "RULES", strings.Join([]string{
		"- Every component id must appear in exactly one cluster.",
		"- Prefer fewer, broader clusters over many narrow ones.",
		"- A cluster with a single member is acceptable.",
		"- Cluster ids are short kebab-case identifiers.",
	}, "\n"))

	writeSection(&buf, "OUTPUT_FORMAT", strings.TrimSpace(`
Respond with one JSON object and nothing else:
{
  "clusters": [
    {"id": "string", "name": "string", "memberIds": ["string"], "purpose": "string"}
  ]
}`))

	return strings.TrimSpace(buf.String()) + "\n"
}

func writeSection(buf *strings.Builder, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
