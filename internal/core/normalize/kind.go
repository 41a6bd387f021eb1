// Package normalize prepares a linearized SmartForm node list for
// explanation: it merges fragmented ITEM runs and resolves the page name.
//
// Every function relies on the list being a pre-order traversal of the
// extracted tree. Subtree boundaries are found by depth comparison only, so
// nothing here may reorder nodes.
package normalize

import (
	"strings"

	"github.com/agenthands/smartform/internal/core/model"
)

// Canon is the single normalization applied before any name or type
// comparison.
func Canon(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

const (
	kindItem     = "ITEM"
	kindPage     = "PAGE"
	kindWindow   = "WINDOW"
	kindNodeType = "NODETYPE"
	kindCaption  = "CAPTION"
	kindIName    = "INAME"

	typePage   = "PA"
	typeWindow = "WI"
)

// IsItem reports whether n takes part in ITEM run merging.
func IsItem(n model.Node) bool {
	return Canon(n.ElemName) == kindItem
}

// IsPageMarker reports whether n opens a page.
func IsPageMarker(n model.Node) bool {
	switch {
	case Canon(n.ElemName) == kindPage:
		return true
	case Canon(n.ElemName) == kindNodeType && Canon(n.TextPayload) == typePage:
		return true
	default:
		return Canon(n.NodeType) == typePage
	}
}

// IsWindowMarker reports whether n opens a window.
func IsWindowMarker(n model.Node) bool {
	return Canon(n.ElemName) == kindWindow || Canon(n.NodeType) == typeWindow
}

func isCaption(n model.Node) bool {
	name := Canon(n.ElemName)
	return name == kindCaption || name == kindIName
}

func isNameAttribute(a model.Attribute) bool {
	switch strings.ToLower(strings.TrimSpace(a.Name)) {
	case "name", "iname", "caption":
		return true
	}
	return false
}
