// Package hierarchy regroups a normalized node list into pages, windows and
// elements, and checks that an explanation result honours that grouping.
package hierarchy

import (
	"github.com/agenthands/smartform/internal/core/model"
	"github.com/agenthands/smartform/internal/core/normalize"
)

// Build groups nodes under the single page named pageName.
//
// A window owns every following node deeper than itself, up to the next node
// at its depth or shallower. Nodes outside any window are kept at page level;
// page markers are not elements. pageName is copied verbatim, even when empty.
func Build(nodes []model.Node, pageName string) model.PageTree {
	tree := model.PageTree{
		PageName: pageName,
		Windows:  []model.WindowGroup{},
	}

	for i := 0; i < len(nodes); {
		n := nodes[i]
		switch {
		case normalize.IsWindowMarker(n):
			end := normalize.SubtreeEnd(nodes, i)
			w := model.WindowGroup{
				Name:     normalize.SubtreeName(nodes, i),
				Path:     n.Path,
				Elements: make([]model.Element, 0, end-i-1),
			}
			for _, member := range nodes[i+1 : end] {
				w.Elements = append(w.Elements, ElementOf(member))
			}
			tree.Windows = append(tree.Windows, w)
			i = end
		case normalize.IsPageMarker(n):
			i++
		default:
			tree.Elements = append(tree.Elements, ElementOf(n))
			i++
		}
	}
	return tree
}

// ElementOf copies the pass-through fields of n. The narrative fields are
// left empty for the explanation engine.
func ElementOf(n model.Node) model.Element {
	attrs := make([]model.Attribute, len(n.Attributes))
	copy(attrs, n.Attributes)
	return model.Element{
		ElemName:    n.ElemName,
		Path:        n.Path,
		NodeType:    n.NodeType,
		Attributes:  attrs,
		TextPayload: n.TextPayload,
	}
}

// Rows flattens nodes into the legacy row table shape.
func Rows(nodes []model.Node) []model.FieldRow {
	rows := make([]model.FieldRow, 0, len(nodes))
	for _, n := range nodes {
		attrs := make([]model.Attribute, len(n.Attributes))
		copy(attrs, n.Attributes)
		rows = append(rows, model.FieldRow{
			ElemName:   n.ElemName,
			Path:       n.Path,
			NodeType:   n.NodeType,
			Attributes: attrs,
		})
	}
	return rows
}
