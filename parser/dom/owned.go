package dom

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Node is a finalized node: its payload and the children it
// exclusively owns. There is no parent link, structurally, so the
// finalized tree cannot contain cycles and dropping the root releases
// everything below it.
type Node struct {
	Data     NodeData
	Children []*Node
}

// OwnedDom is the artifact of a completed parse: the owned document
// tree, the parse diagnostics in encounter order, and the frozen
// quirks mode.
type OwnedDom struct {
	Document   *Node
	Errors     []string
	QuirksMode QuirksMode
}

// Finalize consumes the Sink and converts the subgraph reachable from
// the document root into an owned tree. Nodes that were detached or
// orphaned during parsing and never reattached are not visited; their
// storage is released with the Sink's node table. Every handle issued
// by the Sink is invalid afterwards, and any further Sink call panics.
func (s *Sink) Finalize() *OwnedDom {
	if s.finalized {
		panic("domsink: Finalize called twice")
	}

	// The conversion walk doubles as the liveness walk: it visits
	// exactly the reachable nodes, and the visited set catches any
	// child aliased into two parents before it can become a cycle in
	// the owned tree.
	live := make([]bool, len(s.nodes))
	doc := s.convert(s.document, live)

	allocated := len(s.nodes)
	survived := 0
	for _, ok := range live {
		if ok {
			survived++
		}
	}

	s.finalized = true
	s.nodes = nil
	s.log.WithFields(logrus.Fields{
		"nodes":    allocated,
		"live":     survived,
		"orphaned": allocated - survived,
		"errors":   len(s.errors),
	}).Debug("finalized document")

	return &OwnedDom{
		Document:   doc,
		Errors:     s.errors,
		QuirksMode: s.quirksMode,
	}
}

// convert moves the payload and children of the node at h into a fresh
// owned node. Payload structs move by pointer, so the conversion is
// linear in the number of live nodes and never re-copies text or
// attribute data.
func (s *Sink) convert(h Handle, live []bool) *Node {
	if live[h] {
		panic(fmt.Sprintf("domsink: node %d reachable through two parents", h))
	}
	live[h] = true

	m := &s.nodes[h]
	owned := &Node{Data: m.data}
	m.data = NodeData{}
	if len(m.children) > 0 {
		owned.Children = make([]*Node, len(m.children))
		for i, c := range m.children {
			owned.Children[i] = s.convert(c, live)
		}
	}
	return owned
}
