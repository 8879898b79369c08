package dom

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// QuirksMode is the document compatibility mode decided by the tree
// constructor while it processes the doctype and frozen at
// finalization.
type QuirksMode string

const (
	NoQuirks      QuirksMode = "no-quirks"
	LimitedQuirks QuirksMode = "limited-quirks"
	Quirks        QuirksMode = "quirks"
)

// NodeOrText is the argument of the two insertion operations: either
// an already-allocated node or a run of character data that the Sink
// may coalesce into a neighboring text node instead of allocating.
type NodeOrText struct {
	node   Handle
	text   string
	isNode bool
}

// AppendNode wraps an existing node for insertion.
func AppendNode(h Handle) NodeOrText {
	return NodeOrText{node: h, isNode: true}
}

// AppendText wraps a character run for insertion.
func AppendText(text string) NodeOrText {
	return NodeOrText{text: text}
}

// Sink owns every node allocated during a single parse and exposes the
// tree-mutation contract the tree-construction stage drives. All
// structural references are indices into the flat node table, so a
// node's storage survives detachment until the whole Sink is consumed
// by Finalize.
//
// A Sink is not safe for concurrent use; the parsing pipeline is
// single-threaded per document.
type Sink struct {
	nodes      []mutableNode
	document   Handle
	errors     []string
	quirksMode QuirksMode
	hasDoctype bool
	finalized  bool
	log        *logrus.Entry
}

// SinkOption configures a Sink at construction.
type SinkOption func(*Sink)

// WithLogger routes the Sink's debug logging through the given entry.
func WithLogger(log *logrus.Entry) SinkOption {
	return func(s *Sink) {
		s.log = log
	}
}

// NewSink creates an empty Sink holding only the document root.
func NewSink(opts ...SinkOption) *Sink {
	s := &Sink{
		document:   NullHandle,
		quirksMode: NoQuirks,
		log:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.document = s.NewNode(newDocument())
	return s
}

// at resolves a handle to its storage slot. Every mutation funnels
// through here so stale handles from a finalized Sink fail fast.
func (s *Sink) at(h Handle) *mutableNode {
	if s.finalized {
		panic("domsink: use of Sink after Finalize")
	}
	if h < 0 || int(h) >= len(s.nodes) {
		panic(fmt.Sprintf("domsink: invalid handle %d", h))
	}
	return &s.nodes[h]
}

// NewNode allocates storage for a node with no parent and no children
// and returns its handle.
func (s *Sink) NewNode(data NodeData) Handle {
	if s.finalized {
		panic("domsink: use of Sink after Finalize")
	}
	s.nodes = append(s.nodes, mutableNode{data: data, parent: NullHandle})
	return Handle(len(s.nodes) - 1)
}

// CreateElement allocates an element node for a start tag.
func (s *Sink) CreateElement(name string, attrs []Attribute) Handle {
	return s.NewNode(NewElement(name, attrs))
}

// CreateComment allocates a comment node.
func (s *Sink) CreateComment(text string) Handle {
	return s.NewNode(NewComment(text))
}

// Document returns the handle of the document root.
func (s *Sink) Document() Handle {
	return s.document
}

// SameNode reports whether two handles refer to the same node. Node
// identity is handle identity, never payload equality.
func (s *Sink) SameNode(x, y Handle) bool {
	return x == y
}

// HasParent reports whether the node is attached to a parent.
func (s *Sink) HasParent(h Handle) bool {
	return !s.at(h).parent.IsNull()
}

// ElemName returns the qualified name of an element node. Calling it
// on any other node kind is a contract violation by the tree
// constructor.
func (s *Sink) ElemName(h Handle) string {
	n := s.at(h)
	if n.data.Type != ElementNode {
		panic(fmt.Sprintf("domsink: ElemName on a %s node", n.data.Type))
	}
	return n.data.Element.Name
}

// NodeData returns the payload of a node, for callers that inspect the
// tree while it is still being built.
func (s *Sink) NodeData(h Handle) NodeData {
	return s.at(h).data
}

// SetQuirksMode records the document compatibility mode.
func (s *Sink) SetQuirksMode(mode QuirksMode) {
	if s.finalized {
		panic("domsink: use of Sink after Finalize")
	}
	s.quirksMode = mode
	s.log.WithField("mode", mode).Debug("quirks mode set")
}

// ParseError appends a recoverable diagnostic to the error log.
// Diagnostics never affect tree structure.
func (s *Sink) ParseError(msg string) {
	if s.finalized {
		panic("domsink: use of Sink after Finalize")
	}
	s.errors = append(s.errors, msg)
	s.log.WithField("err", msg).Debug("parse error")
}

// attach links child as the last child of parent. The child must be
// detached; silently stealing it would corrupt the old parent's child
// list.
func (s *Sink) attach(parent, child Handle) {
	c := s.at(child)
	if !c.parent.IsNull() {
		panic(fmt.Sprintf("domsink: append of node %d which already has parent %d", child, c.parent))
	}
	c.parent = parent
	p := s.at(parent)
	p.children = append(p.children, child)
}

// appendToExistingText merges text into h when h is a text node,
// reporting whether the merge happened.
func (s *Sink) appendToExistingText(h Handle, text string) bool {
	n := s.at(h)
	if n.data.Type != TextNode {
		return false
	}
	n.data.Text.Data += text
	return true
}

// parentAndIndex locates the parent of child and the child's position
// in the parent's child sequence.
func (s *Sink) parentAndIndex(child Handle) (Handle, int, bool) {
	parent := s.at(child).parent
	if parent.IsNull() {
		return NullHandle, 0, false
	}
	for i, c := range s.at(parent).children {
		if c == child {
			return parent, i, true
		}
	}
	panic(fmt.Sprintf("domsink: node %d has parent %d but is not among its children", child, parent))
}

// Append inserts child as the last child of parent. A character run is
// merged into parent's trailing text node when there is one, so
// incremental tokenization never fragments text into per-character
// nodes.
func (s *Sink) Append(parent Handle, child NodeOrText) {
	if !child.isNode {
		if kids := s.at(parent).children; len(kids) > 0 {
			if s.appendToExistingText(kids[len(kids)-1], child.text) {
				return
			}
		}
		s.attach(parent, s.NewNode(NewText(child.text)))
		return
	}
	s.attach(parent, child.node)
}

// AppendBeforeSibling inserts child immediately before sibling, which
// must be attached to a parent. A character run merges into the text
// node preceding the insertion point when there is one. The tree
// constructor guarantees no text node ever immediately follows an
// insertion point, so a forward merge is never attempted and that
// guarantee is not re-checked here.
//
// A node child that is already attached elsewhere is moved: it is
// detached from its old parent and inserted in one step, as happens
// when misnested content is relocated.
func (s *Sink) AppendBeforeSibling(sibling Handle, child NodeOrText) {
	parent, i, ok := s.parentAndIndex(sibling)
	if !ok {
		panic(fmt.Sprintf("domsink: AppendBeforeSibling on node %d which has no parent", sibling))
	}

	var h Handle
	if child.isNode {
		h = child.node
		if !s.at(h).parent.IsNull() {
			s.unparent(h)
			// The removal may have shifted the sibling's position.
			parent, i, ok = s.parentAndIndex(sibling)
			if !ok {
				panic(fmt.Sprintf("domsink: AppendBeforeSibling sibling %d lost its parent", sibling))
			}
		}
	} else {
		if i > 0 && s.appendToExistingText(s.at(parent).children[i-1], child.text) {
			return
		}
		h = s.NewNode(NewText(child.text))
	}

	s.at(h).parent = parent
	p := s.at(parent)
	p.children = append(p.children, NullHandle)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = h
}

// AppendDoctypeToDocument appends a doctype node directly under the
// document root. The tree constructor only ever emits one doctype.
func (s *Sink) AppendDoctypeToDocument(name, publicID, systemID string) {
	if s.hasDoctype {
		panic("domsink: document already has a doctype")
	}
	s.hasDoctype = true
	s.attach(s.document, s.NewNode(NewDoctype(name, publicID, systemID)))
}

// AddAttrsIfMissing adds each attribute whose name is not already
// present on the target element, preserving the values that were set
// first. Duplicated and foster-parented tags re-announce attributes;
// the earliest value wins. No-op when target is not an element.
func (s *Sink) AddAttrsIfMissing(target Handle, attrs []Attribute) {
	n := s.at(target)
	if n.data.Type != ElementNode {
		return
	}
	e := n.data.Element
	for _, a := range attrs {
		if !e.HasAttr(a.Name) {
			e.Attributes = append(e.Attributes, a)
		}
	}
}

// unparent removes target from its parent's child sequence and clears
// its parent. No-op for a detached node.
func (s *Sink) unparent(target Handle) {
	parent, i, ok := s.parentAndIndex(target)
	if !ok {
		return
	}
	p := s.at(parent)
	p.children = append(p.children[:i], p.children[i+1:]...)
	s.at(target).parent = NullHandle
}

// RemoveFromParent detaches target from the tree. Its storage stays in
// the Sink; the node can be reattached later or left for the finalizer
// to discard. Idempotent.
func (s *Sink) RemoveFromParent(target Handle) {
	s.unparent(target)
}

// ReparentChildren moves the entire ordered child sequence of node to
// the end of newParent's children. Used to dissolve an element while
// keeping its content in document order.
func (s *Sink) ReparentChildren(node, newParent Handle) {
	src := s.at(node)
	moved := src.children
	src.children = nil
	for _, c := range moved {
		s.at(c).parent = newParent
	}
	dst := s.at(newParent)
	dst.children = append(dst.children, moved...)
}
