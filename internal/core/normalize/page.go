package normalize

import (
	"strings"

	"github.com/agenthands/smartform/internal/core/model"
)

// ResolvePageName returns the display name of the first page marker that
// yields one, or "" when none does.
//
// For a marker at depth d its subtree is searched first for a CAPTION or
// INAME node with a non-empty payload. Failing that, the marker's own
// name/iname/caption attributes are tried. A marker that yields nothing
// does not stop the scan: it resumes at the node right after the marker.
func ResolvePageName(nodes []model.Node) string {
	for i, n := range nodes {
		if !IsPageMarker(n) {
			continue
		}
		if name := SubtreeName(nodes, i); name != "" {
			return name
		}
	}
	return ""
}

// SubtreeName looks up the display name of the node at index i: the first
// captioned descendant, else a naming attribute of the node itself.
func SubtreeName(nodes []model.Node, i int) string {
	if name := captionIn(nodes, i); name != "" {
		return name
	}
	return nameAttribute(nodes[i])
}

func captionIn(nodes []model.Node, i int) string {
	depth := nodes[i].Depth
	for _, n := range nodes[i+1:] {
		if n.Depth <= depth {
			break
		}
		if !isCaption(n) {
			continue
		}
		if text := strings.TrimSpace(n.TextPayload); text != "" {
			return text
		}
	}
	return ""
}

func nameAttribute(n model.Node) string {
	for _, a := range n.Attributes {
		if !isNameAttribute(a) {
			continue
		}
		if v := strings.TrimSpace(a.Value); v != "" {
			return v
		}
	}
	return ""
}

// SubtreeEnd returns the index one past the last descendant of nodes[i].
func SubtreeEnd(nodes []model.Node, i int) int {
	depth := nodes[i].Depth
	j := i + 1
	for j < len(nodes) && nodes[j].Depth > depth {
		j++
	}
	return j
}
