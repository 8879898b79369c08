package dom

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPage(t *testing.T) *OwnedDom {
	t.Helper()
	s := NewSink()
	s.AppendDoctypeToDocument("html", "", "")
	htmlElem := s.CreateElement("html", []Attribute{{Name: "lang", Value: "en"}})
	s.Append(s.Document(), AppendNode(htmlElem))
	head := s.CreateElement("head", nil)
	s.Append(htmlElem, AppendNode(head))
	body := s.CreateElement("body", nil)
	s.Append(htmlElem, AppendNode(body))
	s.Append(body, AppendText("Hello, "))
	s.Append(body, AppendText("world"))
	s.Append(body, AppendNode(s.CreateComment("cut here")))
	s.Append(body, AppendNode(s.CreateElement("br", nil)))
	return s.Finalize()
}

func TestSerializeRoundTrip(t *testing.T) {
	d := buildPage(t)

	var b strings.Builder
	require.NoError(t, d.Serialize(&b))

	want := `<!DOCTYPE html><html lang="en"><head></head><body>Hello, world<!--cut here--><br></body></html>`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s\n%s", diff, d.Dump())
	}
}

func TestSerializeDocumentIncludeNodeFails(t *testing.T) {
	d := buildPage(t)

	var b strings.Builder
	err := Serialize(&b, d.Document, IncludeNode)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document")
}

func TestSerializeElementScopes(t *testing.T) {
	s := NewSink()
	div := s.CreateElement("div", []Attribute{{Name: "id", Value: "d"}})
	s.Append(s.Document(), AppendNode(div))
	s.Append(div, AppendText("in"))
	d := s.Finalize()
	elem := d.Document.Children[0]

	var b strings.Builder
	require.NoError(t, Serialize(&b, elem, IncludeNode))
	assert.Equal(t, `<div id="d">in</div>`, b.String())

	b.Reset()
	require.NoError(t, Serialize(&b, elem, ChildrenOnly))
	assert.Equal(t, "in", b.String())
}

func TestSerializeLeafChildrenOnlyIsEmpty(t *testing.T) {
	s := NewSink()
	s.AppendDoctypeToDocument("html", "", "")
	body := s.CreateElement("body", nil)
	s.Append(s.Document(), AppendNode(body))
	s.Append(body, AppendText("x"))
	s.Append(body, AppendNode(s.CreateComment("c")))
	d := s.Finalize()

	for _, leaf := range []*Node{
		d.Document.Children[0],             // doctype
		d.Document.Children[1].Children[0], // text
		d.Document.Children[1].Children[1], // comment
	} {
		var b strings.Builder
		require.NoError(t, Serialize(&b, leaf, ChildrenOnly))
		assert.Empty(t, b.String())
	}
}

func TestSerializeEscapesTextAndAttributes(t *testing.T) {
	s := NewSink()
	p := s.CreateElement("p", []Attribute{{Name: "title", Value: `say "hi"`}})
	s.Append(s.Document(), AppendNode(p))
	s.Append(p, AppendText("1 < 2 & 3"))
	d := s.Finalize()

	var b strings.Builder
	require.NoError(t, d.Serialize(&b))
	assert.Equal(t, `<p title="say &#34;hi&#34;">1 &lt; 2 &amp; 3</p>`, b.String())
}

func TestSerializeRawTextElements(t *testing.T) {
	s := NewSink()
	script := s.CreateElement("script", nil)
	s.Append(s.Document(), AppendNode(script))
	s.Append(script, AppendText("if (a < b) { go(); }"))
	d := s.Finalize()

	var b strings.Builder
	require.NoError(t, d.Serialize(&b))
	assert.Equal(t, "<script>if (a < b) { go(); }</script>", b.String())
}

func TestSerializeVoidElementHasNoEndTag(t *testing.T) {
	s := NewSink()
	img := s.CreateElement("img", []Attribute{{Name: "src", Value: "x.png"}})
	s.Append(s.Document(), AppendNode(img))
	d := s.Finalize()

	var b strings.Builder
	require.NoError(t, d.Serialize(&b))
	assert.Equal(t, `<img src="x.png">`, b.String())
}

func TestSerializeStreams(t *testing.T) {
	d := buildPage(t)

	// Output goes through the caller's io.Writer, never a returned
	// string, so serialization works against sinks of any size.
	var w countingWriter
	require.NoError(t, d.Serialize(&w))
	assert.NotZero(t, w.n)
}

type countingWriter struct {
	n int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += len(p)
	return len(p), nil
}
