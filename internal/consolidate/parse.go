package consolidate

import (
	"codeatlas/internal/types"
	"codeatlas/internal/util/jsonutil"
	"codeatlas/internal/utils"
)

// ParseClusterResponse validates and repairs a raw clustering response
// against the authoritative component list. The response may be wrapped in
// prose or a code fence; when no JSON object can be extracted or parsed the
// result is an empty list, which callers treat as "nothing usable".
//
// Otherwise the returned clusters partition the component id set exactly:
// unknown member ids are dropped, conflicting claims go to the earliest
// cluster in the response, clusters left empty are discarded, and every
// unclaimed component gets a singleton cluster of its own.
func ParseClusterResponse(raw string, components []types.Component) []types.ClusterGroup {
	obj, ok := jsonutil.ExtractObject(raw)
	if !ok {
		return nil
	}
	var resp types.ClusterResponse
	if err := jsonutil.UnmarshalFlex([]byte(obj), &resp); err != nil {
		return nil
	}

	known := make(map[string]types.Component, len(components))
	for _, c := range components {
		known[c.ID] = c
	}

	var (
		out     []types.ClusterGroup
		claimed = make(map[string]struct{}, len(components))
		usedIDs = make(map[string]struct{}, len(resp.Clusters))
	)
	for _, cl := range resp.Clusters {
		var members []string
		for _, id := range cl.MemberIDs {
			if _, ok := known[id]; !ok {
				continue
			}
			if _, taken := claimed[id]; taken {
				continue
			}
			claimed[id] = struct{}{}
			members = append(members, id)
		}
		if len(members) == 0 {
			continue
		}
		id := utils.Slug(cl.ID)
		if id == "" {
			id = utils.Slug(cl.Name)
		}
		if id == "" {
			id = members[0]
		}
		out = append(out, types.ClusterGroup{
			ID:        uniqueID(id, usedIDs),
			Name:      cl.Name,
			MemberIDs: members,
			Purpose:   cl.Purpose,
		})
	}

	// Every component the response omitted becomes its own cluster.
	for _, c := range components {
		if _, ok := claimed[c.ID]; ok {
			continue
		}
		out = append(out, types.ClusterGroup{
			ID:        c.ID,
			Name:      c.Name,
			MemberIDs: []string{c.ID},
			Purpose:   c.Purpose,
		})
	}
	return out
}
