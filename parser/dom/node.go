package dom

import (
	"golang.org/x/net/html/atom"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	DocumentTypeNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "doctype"
	}
	return "unknown"
}

// Attribute is a single name/value pair on an element. The order of
// the containing slice is the order the attributes were set.
type Attribute struct {
	Name  string
	Value string
}

// Element is the payload of an element node. Atom is the x/net atom
// for Name when one exists, zero otherwise; Name is authoritative.
type Element struct {
	Name       string
	Atom       atom.Atom
	Attributes []Attribute
}

// HasAttr reports whether an attribute with the given name exists.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute, if present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Text is the payload of a text node. Data is mutated in place when
// adjacent character runs are coalesced.
type Text struct {
	Data string
}

// Comment is the payload of a comment node.
type Comment struct {
	Data string
}

// DocumentType is the payload of a doctype node.
type DocumentType struct {
	Name     string
	PublicID string
	SystemID string
}

// NodeData is the tagged payload of a node: a Type discriminant plus
// the matching variant struct. Exactly the pointer selected by Type is
// non-nil, except for DocumentNode which carries no payload.
type NodeData struct {
	Type NodeType

	*Element
	*Text
	*Comment
	*DocumentType
}

// NewElement builds an element payload, resolving the x/net atom for
// well-known names.
func NewElement(name string, attrs []Attribute) NodeData {
	return NodeData{
		Type: ElementNode,
		Element: &Element{
			Name:       name,
			Atom:       atom.Lookup([]byte(name)),
			Attributes: attrs,
		},
	}
}

// NewText builds a text payload.
func NewText(data string) NodeData {
	return NodeData{Type: TextNode, Text: &Text{Data: data}}
}

// NewComment builds a comment payload.
func NewComment(data string) NodeData {
	return NodeData{Type: CommentNode, Comment: &Comment{Data: data}}
}

// NewDoctype builds a doctype payload.
func NewDoctype(name, publicID, systemID string) NodeData {
	return NodeData{
		Type: DocumentTypeNode,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: publicID,
			SystemID: systemID,
		},
	}
}

func newDocument() NodeData {
	return NodeData{Type: DocumentNode}
}

// Handle identifies a node in a Sink's node table. Handles are only
// meaningful against the Sink that issued them and become invalid when
// that Sink is finalized.
type Handle int

// NullHandle is the absent-node value, used for the parent of a
// detached node and for the root's parent.
const NullHandle Handle = -1

// IsNull reports whether h refers to no node.
func (h Handle) IsNull() bool {
	return h == NullHandle
}

// mutableNode is a node as stored during parsing: payload plus the
// structural fields an owned tree cannot carry.
type mutableNode struct {
	data     NodeData
	parent   Handle
	children []Handle
}
