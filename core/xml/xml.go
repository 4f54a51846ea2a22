// Package xml wraps the generic XML engine (antchfx/xmlquery) behind the
// document and node views the TTX layer builds on.
//
// Two behaviors differ from a general-purpose DOM:
//   - Serialization is faithful rather than pretty-printed: text node data
//     is written verbatim, with no whitespace trimming or indentation, so
//     content that the layer above stores pre-escaped survives byte-for-byte.
//   - Nodes are non-owning views. A Node never copies or re-parents the
//     underlying engine node except through AppendChild.
package xml

import (
	"bytes"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/ttx/core/encoding"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML node (element, text, comment).
type Node struct {
	node *xmlquery.Node
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	reader := bytes.NewReader(data)
	root, err := xmlquery.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// NewDocument builds an empty document holding only the XML declaration.
func NewDocument() *Document {
	root := &xmlquery.Node{Type: xmlquery.DocumentNode}
	decl := &xmlquery.Node{
		Type: xmlquery.DeclarationNode,
		Data: "xml",
	}
	xmlquery.AddAttr(decl, "version", "1.0")
	xmlquery.AddChild(root, decl)
	return &Document{root: root}
}

// Root returns the root element of the document.
func (d *Document) Root() *Node {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Node{node: child}
		}
	}
	return nil
}

// AppendRoot attaches an element as a child of the document node itself.
func (d *Document) AppendRoot(n *Node) {
	if d.root == nil || n == nil || n.node == nil {
		return
	}
	xmlquery.AddChild(d.root, n.node)
}

// XPath executes an XPath query and returns matching nodes.
func (d *Document) XPath(expr string) ([]*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	nodes, err := xmlquery.QueryAll(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}

	result := make([]*Node, len(nodes))
	for i, n := range nodes {
		result[i] = &Node{node: n}
	}
	return result, nil
}

// XPathFirst executes an XPath query and returns the first matching node,
// or nil when nothing matches.
func (d *Document) XPathFirst(expr string) (*Node, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath: %w", err)
	}

	node, err := xmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query failed: %w", err)
	}
	if node == nil {
		return nil, nil
	}
	return &Node{node: node}, nil
}

// Serialize converts the document back to XML bytes.
// Text node data is written verbatim; attribute values are escaped.
func (d *Document) Serialize() []byte {
	if d.root == nil {
		return nil
	}
	var buf bytes.Buffer
	writeNode(&buf, d.root)
	return buf.Bytes()
}

// writeNode recursively writes an XML node without reformatting.
func writeNode(w *bytes.Buffer, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.DocumentNode:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeNode(w, child)
		}

	case xmlquery.DeclarationNode:
		w.WriteString("<?xml")
		for _, attr := range n.Attr {
			w.WriteString(" ")
			w.WriteString(attrName(attr))
			w.WriteString("=\"")
			w.WriteString(encoding.EscapeAttr(attr.Value))
			w.WriteString("\"")
		}
		w.WriteString("?>\n")

	case xmlquery.ElementNode:
		w.WriteString("<")
		w.WriteString(elementName(n))
		for _, attr := range n.Attr {
			w.WriteString(" ")
			w.WriteString(attrName(attr))
			w.WriteString("=\"")
			w.WriteString(encoding.EscapeAttr(attr.Value))
			w.WriteString("\"")
		}

		if n.FirstChild == nil {
			w.WriteString("/>")
			return
		}

		w.WriteString(">")
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeNode(w, child)
		}
		w.WriteString("</")
		w.WriteString(elementName(n))
		w.WriteString(">")

	case xmlquery.TextNode:
		// Verbatim. The content layer owns escaping.
		w.WriteString(n.Data)

	case xmlquery.CharDataNode:
		w.WriteString("<![CDATA[")
		w.WriteString(n.Data)
		w.WriteString("]]>")

	case xmlquery.CommentNode:
		w.WriteString("<!--")
		w.WriteString(n.Data)
		w.WriteString("-->")
	}
}

func elementName(n *xmlquery.Node) string {
	if n.Prefix != "" {
		return n.Prefix + ":" + n.Data
	}
	return n.Data
}

func attrName(attr xmlquery.Attr) string {
	if attr.Name.Space != "" {
		return attr.Name.Space + ":" + attr.Name.Local
	}
	return attr.Name.Local
}

// NewElement creates a detached element node.
func NewElement(name string) *Node {
	return &Node{node: &xmlquery.Node{
		Type: xmlquery.ElementNode,
		Data: name,
	}}
}

// NewText creates a detached text node holding data verbatim.
func NewText(data string) *Node {
	return &Node{node: &xmlquery.Node{
		Type: xmlquery.TextNode,
		Data: data,
	}}
}

// AppendChild attaches child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	if n.node == nil || child == nil || child.node == nil {
		return
	}
	xmlquery.AddChild(n.node, child.node)
}

// Name returns the element name.
func (n *Node) Name() string {
	if n.node == nil {
		return ""
	}
	return n.node.Data
}

// IsElement reports whether the node is an element.
func (n *Node) IsElement() bool {
	return n.node != nil && n.node.Type == xmlquery.ElementNode
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n.node != nil && n.node.Type == xmlquery.TextNode
}

// Attr returns the value of a specific attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

// HasAttr reports whether the attribute is present, distinguishing an
// absent attribute from one holding an empty value.
func (n *Node) HasAttr(name string) bool {
	if n.node == nil {
		return false
	}
	for _, attr := range n.node.Attr {
		if attr.Name.Local == name {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute value, adding the attribute when absent.
func (n *Node) SetAttr(name, value string) {
	if n.node == nil {
		return
	}
	for i, attr := range n.node.Attr {
		if attr.Name.Local == name {
			n.node.Attr[i].Value = value
			return
		}
	}
	xmlquery.AddAttr(n.node, name, value)
}

// Attributes returns all attributes of the node in document order.
func (n *Node) Attributes() map[string]string {
	if n.node == nil {
		return nil
	}
	attrs := make(map[string]string)
	for _, attr := range n.node.Attr {
		attrs[attr.Name.Local] = attr.Value
	}
	return attrs
}

// Children returns the child element nodes.
func (n *Node) Children() []*Node {
	if n.node == nil {
		return nil
	}
	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Node{node: child})
		}
	}
	return children
}

// ChildNodes returns every child node, text runs included.
func (n *Node) ChildNodes() []*Node {
	if n.node == nil {
		return nil
	}
	var children []*Node
	for child := n.node.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, &Node{node: child})
	}
	return children
}

// RawText returns the concatenated data of the node's text descendants,
// verbatim. For a text node it is the node's own data.
func (n *Node) RawText() string {
	if n.node == nil {
		return ""
	}
	var buf bytes.Buffer
	rawText(n.node, &buf)
	return buf.String()
}

func rawText(n *xmlquery.Node, buf *bytes.Buffer) {
	if n.Type == xmlquery.TextNode || n.Type == xmlquery.CharDataNode {
		buf.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		rawText(child, buf)
	}
}

// SetTextData replaces a text node's data verbatim. No-op for elements.
func (n *Node) SetTextData(data string) {
	if n.node == nil || n.node.Type != xmlquery.TextNode {
		return
	}
	n.node.Data = data
}

// WalkText applies fn to the data of every text node in the subtree,
// replacing each node's data with the function's result.
func (n *Node) WalkText(fn func(string) string) {
	if n.node == nil {
		return
	}
	walkText(n.node, fn)
}

func walkText(n *xmlquery.Node, fn func(string) string) {
	if n.Type == xmlquery.TextNode {
		n.Data = fn(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkText(child, fn)
	}
}
