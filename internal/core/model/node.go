package model

type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Node is one record of a SmartForm tree linearized in pre-order.
// ParentID is not checked against the list; dangling references are tolerated.
type Node struct {
	ID          int         `json:"id" yaml:"id"`
	ParentID    int         `json:"parentId" yaml:"parentId"`
	Depth       int         `json:"depth" yaml:"depth"`
	Path        string      `json:"path" yaml:"path"`
	ElemName    string      `json:"elemName" yaml:"elemName"`
	ElemNs      string      `json:"elemNs" yaml:"elemNs"`
	NodeType    string      `json:"nodeType" yaml:"nodeType"`
	Attributes  []Attribute `json:"attributes" yaml:"attributes"`
	TextPayload string      `json:"textPayload" yaml:"textPayload"`
}

// Clone returns a copy whose attribute slice does not alias n's.
func (n Node) Clone() Node {
	c := n
	if n.Attributes != nil {
		c.Attributes = make([]Attribute, len(n.Attributes))
		copy(c.Attributes, n.Attributes)
	}
	return c
}
