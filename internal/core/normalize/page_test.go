package normalize

import (
	"testing"

	"github.com/agenthands/smartform/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestResolvePageName(t *testing.T) {
	tests := []struct {
		name  string
		nodes []model.Node
		want  string
	}{
		{
			name: "caption under page",
			nodes: []model.Node{
				{ElemName: "PAGE", Depth: 0},
				{ElemName: "CAPTION", Depth: 1, TextPayload: "Invoice Page"},
				{ElemName: "WINDOW", Depth: 1},
			},
			want: "Invoice Page",
		},
		{
			name: "no page markers",
			nodes: []model.Node{
				{ElemName: "WINDOW", Depth: 0},
				{ElemName: "CAPTION", Depth: 1, TextPayload: "Main"},
				{ElemName: "ITEM", Depth: 1, TextPayload: "PA"},
			},
			want: "",
		},
		{
			name: "iname attribute fallback",
			nodes: []model.Node{
				{ElemName: "PAGE", Depth: 0, Attributes: []model.Attribute{{Name: "iname", Value: "Summary"}}},
				{ElemName: "WINDOW", Depth: 1},
			},
			want: "Summary",
		},
		{
			name: "iname element is trimmed",
			nodes: []model.Node{
				{ElemName: "page", Depth: 1},
				{ElemName: "Iname", Depth: 2, TextPayload: "  FIRST  "},
			},
			want: "FIRST",
		},
		{
			name: "nodetype element with PA payload",
			nodes: []model.Node{
				{ElemName: "NODE", Depth: 1},
				{ElemName: "NODETYPE", Depth: 2, TextPayload: " pa "},
				{ElemName: "CAPTION", Depth: 3, TextPayload: "Nested"},
			},
			want: "Nested",
		},
		{
			name: "nodeType field PA",
			nodes: []model.Node{
				{ElemName: "NODE", NodeType: "pa", Depth: 1},
				{ElemName: "CAPTION", Depth: 2, TextPayload: "By type"},
			},
			want: "By type",
		},
		{
			name: "caption outside subtree ignored",
			nodes: []model.Node{
				{ElemName: "PAGE", Depth: 1},
				{ElemName: "WINDOW", Depth: 2},
				{ElemName: "CAPTION", Depth: 1, TextPayload: "Sibling"},
			},
			want: "",
		},
		{
			name: "blank captions skipped",
			nodes: []model.Node{
				{ElemName: "PAGE", Depth: 0},
				{ElemName: "CAPTION", Depth: 1, TextPayload: "   "},
				{ElemName: "INAME", Depth: 2, TextPayload: "Deep"},
			},
			want: "Deep",
		},
		{
			name: "descendant caption preferred over attribute",
			nodes: []model.Node{
				{ElemName: "PAGE", Depth: 0, Attributes: []model.Attribute{{Name: "name", Value: "attr"}}},
				{ElemName: "CAPTION", Depth: 1, TextPayload: "child"},
			},
			want: "child",
		},
		{
			name: "attribute names matched loosely and blank values skipped",
			nodes: []model.Node{
				{ElemName: "PAGE", Depth: 0, Attributes: []model.Attribute{
					{Name: "type", Value: "X"},
					{Name: " Caption ", Value: "  "},
					{Name: "NAME", Value: " Totals "},
				}},
			},
			want: "Totals",
		},
		{
			name: "failed marker falls through to later marker",
			nodes: []model.Node{
				{ElemName: "PAGE", Depth: 0},
				{ElemName: "WINDOW", Depth: 1},
				{ElemName: "PAGE", Depth: 0},
				{ElemName: "CAPTION", Depth: 1, TextPayload: "Second"},
			},
			want: "Second",
		},
		{
			name: "nested marker inside rejected page is still eligible",
			nodes: []model.Node{
				{ElemName: "PAGE", Depth: 0},
				{ElemName: "NODE", NodeType: "PA", Depth: 1},
				{ElemName: "INAME", Depth: 2, TextPayload: "Inner"},
			},
			// the outer page finds Inner through its own subtree first
			want: "Inner",
		},
		{
			name:  "empty list",
			nodes: nil,
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolvePageName(tc.nodes))
		})
	}
}

func TestResolvePageName_FirstMatchWins(t *testing.T) {
	nodes := []model.Node{
		{ElemName: "PAGE", Depth: 0},
		{ElemName: "CAPTION", Depth: 1, TextPayload: "First"},
		{ElemName: "PAGE", Depth: 0},
		{ElemName: "CAPTION", Depth: 1, TextPayload: "Second"},
	}
	assert.Equal(t, "First", ResolvePageName(nodes))
}

func TestResolvePageName_Deterministic(t *testing.T) {
	nodes := []model.Node{
		{ElemName: "PAGE", Depth: 0, Attributes: []model.Attribute{{Name: "caption", Value: "Cover"}}},
		{ElemName: "WINDOW", Depth: 1},
		{ElemName: "ITEM", Depth: 2, TextPayload: "x"},
	}
	first := ResolvePageName(nodes)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ResolvePageName(nodes))
	}
	assert.Equal(t, "Cover", first)
}

func TestSubtreeEnd(t *testing.T) {
	nodes := []model.Node{
		{Depth: 0},
		{Depth: 1},
		{Depth: 2},
		{Depth: 1},
		{Depth: 0},
	}
	assert.Equal(t, 4, SubtreeEnd(nodes, 0))
	assert.Equal(t, 3, SubtreeEnd(nodes, 1))
	assert.Equal(t, 3, SubtreeEnd(nodes, 2))
	assert.Equal(t, 5, SubtreeEnd(nodes, 4))
}

func TestMarkers(t *testing.T) {
	assert.True(t, IsPageMarker(model.Node{ElemName: " page "}))
	assert.False(t, IsPageMarker(model.Node{ElemName: "NODETYPE", TextPayload: "WI"}))
	assert.True(t, IsWindowMarker(model.Node{ElemName: "Window"}))
	assert.True(t, IsWindowMarker(model.Node{NodeType: "wi"}))
	assert.False(t, IsWindowMarker(model.Node{ElemName: "WINDOWS"}))
	assert.True(t, IsItem(model.Node{ElemName: "item\t"}))
}
