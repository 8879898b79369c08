package dom

import (
	"fmt"
	"strconv"
	"strings"

	tp "github.com/xlab/treeprint"
)

// Dump renders the document tree in a human-readable form for logs and
// test failures. Not a markup serialization; use Serialize for that.
func (d *OwnedDom) Dump() string {
	t := tp.New()
	t.SetValue(fmt.Sprintf("#document (%s)", d.QuirksMode))
	for _, c := range d.Document.Children {
		c.dump(t)
	}
	return t.String()
}

// Dump renders the subtree rooted at n in a human-readable form.
func (n *Node) Dump() string {
	t := tp.New()
	t.SetValue(n.label())
	for _, c := range n.Children {
		c.dump(t)
	}
	return t.String()
}

func (n *Node) dump(t tp.Tree) {
	if len(n.Children) == 0 {
		t.AddNode(n.label())
		return
	}
	b := t.AddBranch(n.label())
	for _, c := range n.Children {
		c.dump(b)
	}
}

func (n *Node) label() string {
	switch n.Data.Type {
	case ElementNode:
		e := n.Data.Element
		var b strings.Builder
		b.WriteString("<")
		b.WriteString(e.Name)
		for _, a := range e.Attributes {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		b.WriteString(">")
		return b.String()
	case TextNode:
		return strconv.Quote(n.Data.Text.Data)
	case CommentNode:
		return "<!--" + n.Data.Comment.Data + "-->"
	case DocumentTypeNode:
		return "<!DOCTYPE " + n.Data.DocumentType.Name + ">"
	case DocumentNode:
		return "#document"
	}
	return "#unknown"
}
