package model

// PageTree is the page -> window -> element grouping handed to the
// explanation engine. PageName is the resolved name verbatim, possibly "".
type PageTree struct {
	PageName string        `json:"pageName" yaml:"pageName"`
	Windows  []WindowGroup `json:"windows" yaml:"windows"`
	Elements []Element     `json:"elements,omitempty" yaml:"elements,omitempty"` // nodes outside any window
}

type WindowGroup struct {
	Name     string    `json:"name" yaml:"name"`
	Path     string    `json:"path" yaml:"path"`
	Elements []Element `json:"elements" yaml:"elements"`
}

// Element carries the node fields unmodified plus the three narrative
// fields the explanation engine fills in.
type Element struct {
	ElemName    string      `json:"elemName" yaml:"elemName"`
	Path        string      `json:"path" yaml:"path"`
	NodeType    string      `json:"nodeType" yaml:"nodeType"`
	Attributes  []Attribute `json:"attributes" yaml:"attributes"`
	TextPayload string      `json:"textPayload" yaml:"textPayload"`
	Mapping     string      `json:"mapping" yaml:"mapping"`
	Coding      string      `json:"coding" yaml:"coding"`
	Usage       string      `json:"usage" yaml:"usage"`
}

// FieldRow is one entry of the flat row table.
type FieldRow struct {
	ElemName   string      `json:"elemName"`
	Path       string      `json:"path"`
	NodeType   string      `json:"nodeType"`
	Attributes []Attribute `json:"attributes"`
}
