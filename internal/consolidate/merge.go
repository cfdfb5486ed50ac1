package consolidate

import (
	"fmt"
	"strings"

	"codeatlas/internal/types"
	"codeatlas/internal/utils"
)

// Merge combines a non-empty group of components into one, applying the
// deterministic tie-break policies for every attribute. A single-member
// group passes through unchanged with no provenance assigned.
func Merge(g MergeGroup) types.Component {
	if len(g.Members) == 1 {
		return g.Members[0]
	}

	memberIDs := make(map[string]struct{}, len(g.Members))
	for _, m := range g.Members {
		memberIDs[m.ID] = struct{}{}
	}

	out := types.Component{
		ID:         g.TargetID,
		Name:       g.TargetName,
		Path:       sharedPath(g.Members),
		Complexity: types.ComplexityLow,
	}

	var (
		keyFiles   []string
		deps       []string
		dependents []string
		seenFile   = map[string]struct{}{}
		seenDep    = map[string]struct{}{}
		seenDept   = map[string]struct{}{}
	)
	for _, m := range g.Members {
		for _, f := range m.KeyFiles {
			if _, ok := seenFile[f]; ok {
				continue
			}
			seenFile[f] = struct{}{}
			keyFiles = append(keyFiles, f)
		}
		// Edges into the merging members themselves would become
		// self-references; drop them before the rewriter even runs.
		for _, d := range m.Dependencies {
			if _, self := memberIDs[d]; self {
				continue
			}
			if _, ok := seenDep[d]; ok {
				continue
			}
			seenDep[d] = struct{}{}
			deps = append(deps, d)
		}
		for _, d := range m.Dependents {
			if _, self := memberIDs[d]; self {
				continue
			}
			if _, ok := seenDept[d]; ok {
				continue
			}
			seenDept[d] = struct{}{}
			dependents = append(dependents, d)
		}
		out.Complexity = types.MaxComplexity(out.Complexity, m.Complexity)
	}
	out.KeyFiles = keyFiles
	out.Dependencies = deps
	out.Dependents = dependents

	out.Category = dominantCategory(g.Members)
	if g.TargetPurpose != "" {
		out.Purpose = g.TargetPurpose
	} else {
		out.Purpose = combinedPurpose(g.Members)
	}
	out.Domain = sharedDomain(g.Members)
	out.MergedFrom = flattenProvenance(g.Members)
	return out
}

// dominantCategory picks the most frequent category; ties go to the first
// one encountered in a single left-to-right scan.
func dominantCategory(members []types.Component) string {
	counts := make(map[string]int, len(members))
	firstSeen := make(map[string]int, len(members))
	best := ""
	bestCount := 0
	for i, m := range members {
		if _, ok := firstSeen[m.Category]; !ok {
			firstSeen[m.Category] = i
		}
		counts[m.Category]++
		if counts[m.Category] > bestCount ||
			(counts[m.Category] == bestCount && firstSeen[m.Category] < firstSeen[best]) {
			best = m.Category
			bestCount = counts[m.Category]
		}
	}
	return best
}

// combinedPurpose keeps a shared purpose verbatim; otherwise it joins up
// to 3 distinct purposes and notes how many more exist.
func combinedPurpose(members []types.Component) string {
	var distinct []string
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, ok := seen[m.Purpose]; ok {
			continue
		}
		seen[m.Purpose] = struct{}{}
		distinct = append(distinct, m.Purpose)
	}
	if len(distinct) == 1 {
		return distinct[0]
	}
	if len(distinct) <= 3 {
		return strings.Join(distinct, "; ")
	}
	return strings.Join(distinct[:3], "; ") + fmt.Sprintf(" (+%d more)", len(distinct)-3)
}

// sharedDomain survives the merge only when every member carries the same
// non-empty domain.
func sharedDomain(members []types.Component) string {
	domain := members[0].Domain
	if domain == "" {
		return ""
	}
	for _, m := range members[1:] {
		if m.Domain != domain {
			return ""
		}
	}
	return domain
}

// flattenProvenance folds each member's own chain (or its id) into one
// de-duplicated list, keeping provenance transitive across repeated passes.
func flattenProvenance(members []types.Component) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, m := range members {
		for _, id := range m.Provenance() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}

// sharedPath returns the members' common path when they agree, else the
// first member's parent directory serves as the merged path.
func sharedPath(members []types.Component) string {
	first := members[0].Path
	same := true
	for _, m := range members[1:] {
		if m.Path != first {
			same = false
			break
		}
	}
	if same {
		return first
	}
	return commonDir(members)
}

func commonDir(members []types.Component) string {
	dir := ""
	for i, m := range members {
		d := utils.ParentDir(m.Path)
		if i == 0 {
			dir = d
			continue
		}
		dir = commonPrefixDir(dir, d)
	}
	return dir
}

func commonPrefixDir(a, b string) string {
	if a == b {
		return a
	}
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	var shared []string
	for i := 0; i < n; i++ {
		if as[i] != bs[i] {
			break
		}
		shared = append(shared, as[i])
	}
	return strings.Join(shared, "/")
}
