package parser

import (
	"github.com/heathj/domsink/parser/dom"
)

// TreeSink is the tree-mutation contract the tree-construction stage
// drives while it consumes tokens. *dom.Sink is the implementation;
// the interface exists so the state machine depends only on the
// protocol.
type TreeSink interface {
	Document() dom.Handle
	CreateElement(name string, attrs []dom.Attribute) dom.Handle
	CreateComment(text string) dom.Handle
	Append(parent dom.Handle, child dom.NodeOrText)
	AppendBeforeSibling(sibling dom.Handle, child dom.NodeOrText)
	AppendDoctypeToDocument(name, publicID, systemID string)
	AddAttrsIfMissing(target dom.Handle, attrs []dom.Attribute)
	RemoveFromParent(target dom.Handle)
	ReparentChildren(node, newParent dom.Handle)
	HasParent(h dom.Handle) bool
	SameNode(x, y dom.Handle) bool
	ElemName(h dom.Handle) string
	SetQuirksMode(mode dom.QuirksMode)
	ParseError(msg string)
}

var _ TreeSink = (*dom.Sink)(nil)

type insertionPointKind uint

const (
	appendTo insertionPointKind = iota
	beforeSibling
)

// InsertionPoint is where the tree-construction stage decided a node
// or character run goes: at the end of a parent's children, or
// immediately before a sibling. Foster parenting surfaces here only as
// a BeforeSibling point.
type InsertionPoint struct {
	kind insertionPointKind
	node dom.Handle
}

// AppendTo inserts at the end of parent's children.
func AppendTo(parent dom.Handle) InsertionPoint {
	return InsertionPoint{kind: appendTo, node: parent}
}

// BeforeSibling inserts immediately before sibling.
func BeforeSibling(sibling dom.Handle) InsertionPoint {
	return InsertionPoint{kind: beforeSibling, node: sibling}
}

// Insert executes the insertion against the sink.
func (p InsertionPoint) Insert(sink TreeSink, child dom.NodeOrText) {
	switch p.kind {
	case appendTo:
		sink.Append(p.node, child)
	case beforeSibling:
		sink.AppendBeforeSibling(p.node, child)
	}
}
