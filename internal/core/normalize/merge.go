package normalize

import "github.com/agenthands/smartform/internal/core/model"

type mergeState int

const (
	idle mergeState = iota
	inRun
)

// itemMerger collapses runs of consecutive ITEM nodes. It has two states:
// idle, and inRun with the accumulated node in acc.
type itemMerger struct {
	state mergeState
	acc   model.Node
	out   []model.Node
}

func (m *itemMerger) feed(n model.Node) {
	switch {
	case IsItem(n) && m.state == idle:
		m.acc = n.Clone()
		m.state = inRun
	case IsItem(n):
		m.acc.TextPayload += "\n" + n.TextPayload
		m.acc.Attributes = append(m.acc.Attributes, n.Attributes...)
	default:
		m.flush()
		m.out = append(m.out, n)
	}
}

func (m *itemMerger) flush() {
	if m.state == inRun {
		m.out = append(m.out, m.acc)
		m.acc = model.Node{}
		m.state = idle
	}
}

// MergeItems returns a new list where every maximal run of consecutive ITEM
// nodes is replaced by its first node, with the payloads of the rest
// appended on new lines and their attributes appended in order.
// The input is left untouched.
func MergeItems(nodes []model.Node) []model.Node {
	m := &itemMerger{out: make([]model.Node, 0, len(nodes))}
	for _, n := range nodes {
		m.feed(n)
	}
	m.flush()
	return m.out
}
