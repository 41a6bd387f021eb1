package normalize

import "github.com/agenthands/smartform/internal/core/model"

// Result is the normalized form of one request's node list.
type Result struct {
	Merged   []model.Node `json:"nodes"`
	PageName string       `json:"pageName"`
}

// Process merges ITEM runs and resolves the page name from the merged list.
// It cannot fail; malformed records are rejected before they get here.
func Process(nodes []model.Node) Result {
	merged := MergeItems(nodes)
	return Result{
		Merged:   merged,
		PageName: ResolvePageName(merged),
	}
}
