package dom

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TraversalScope selects whether serialization emits the node itself
// or only its contents.
type TraversalScope uint

const (
	IncludeNode TraversalScope = iota
	ChildrenOnly
)

// Void elements have no end tag and no content.
// https://html.spec.whatwg.org/multipage/syntax.html#void-elements
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Param: true,
	atom.Source: true, atom.Track: true, atom.Wbr: true,
}

// Children of these elements are written without escaping.
var rawTextElements = map[atom.Atom]bool{
	atom.Iframe: true, atom.Noembed: true, atom.Noframes: true,
	atom.Noscript: true, atom.Plaintext: true, atom.Script: true,
	atom.Style: true, atom.Xmp: true,
}

// Serialize writes the markup form of n to w. The output streams
// through a buffered writer; the whole document is never held in
// memory. A document node can only be serialized with ChildrenOnly.
func Serialize(w io.Writer, n *Node, scope TraversalScope) error {
	ser := &serializer{w: bufio.NewWriter(w)}
	if err := ser.serialize(n, scope); err != nil {
		return err
	}
	return errors.Wrap(ser.w.Flush(), "flushing serialized markup")
}

// Serialize renders the document's contents as markup.
func (d *OwnedDom) Serialize(w io.Writer) error {
	return Serialize(w, d.Document, ChildrenOnly)
}

type serializer struct {
	w *bufio.Writer
}

func (s *serializer) serialize(n *Node, scope TraversalScope) error {
	switch n.Data.Type {
	case ElementNode:
		e := n.Data.Element
		if scope == IncludeNode {
			if err := s.startElem(e); err != nil {
				return err
			}
		}
		if err := s.children(n, rawTextElements[e.Atom]); err != nil {
			return err
		}
		if scope == IncludeNode && !voidElements[e.Atom] {
			if err := s.endElem(e); err != nil {
				return err
			}
		}
		return nil

	case DocumentNode:
		if scope == IncludeNode {
			return errors.New("cannot serialize a document node itself")
		}
		return s.children(n, false)

	case DocumentTypeNode:
		if scope == ChildrenOnly {
			return nil
		}
		return s.writeAll("<!DOCTYPE ", n.Data.DocumentType.Name, ">")

	case TextNode:
		if scope == ChildrenOnly {
			return nil
		}
		return s.writeAll(html.EscapeString(n.Data.Text.Data))

	case CommentNode:
		if scope == ChildrenOnly {
			return nil
		}
		return s.writeAll("<!--", n.Data.Comment.Data, "-->")
	}
	return errors.Errorf("cannot serialize node of type %s", n.Data.Type)
}

func (s *serializer) children(n *Node, raw bool) error {
	for _, child := range n.Children {
		if raw && child.Data.Type == TextNode {
			if err := s.writeAll(child.Data.Text.Data); err != nil {
				return err
			}
			continue
		}
		if err := s.serialize(child, IncludeNode); err != nil {
			return err
		}
	}
	return nil
}

func (s *serializer) startElem(e *Element) error {
	if err := s.writeAll("<", e.Name); err != nil {
		return err
	}
	for _, a := range e.Attributes {
		if err := s.writeAll(" ", a.Name, `="`, html.EscapeString(a.Value), `"`); err != nil {
			return err
		}
	}
	return s.writeAll(">")
}

func (s *serializer) endElem(e *Element) error {
	return s.writeAll("</", e.Name, ">")
}

func (s *serializer) writeAll(parts ...string) error {
	for _, p := range parts {
		if _, err := s.w.WriteString(p); err != nil {
			return errors.Wrap(err, "writing markup")
		}
	}
	return nil
}
