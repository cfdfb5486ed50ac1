package types

// ClusterGroup is a transient merge proposal produced while parsing an AI
// clustering response. It is consumed immediately by the cluster merger and
// never persisted.
type ClusterGroup struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds"`
	Purpose   string   `json:"purpose"`
}

// ClusterResponse is the wire shape expected from the clustering call:
// one JSON object with a clusters array, possibly wrapped in a Markdown
// code fence.
type ClusterResponse struct {
	Clusters []ClusterGroup `json:"clusters"`
}
