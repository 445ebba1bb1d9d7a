// Package xml is a thin query layer over parsed XML used by the markup
// handlers. It wraps xmlquery so the handlers speak in documents and nodes
// rather than raw node pointers, and adds the direct-child scoping the
// witness markup requires.
package xml

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Node represents an XML element node.
type Node struct {
	node *xmlquery.Node
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// First returns the first node matching the XPath expression, or nil when
// nothing matches or the expression is invalid.
func (d *Document) First(expr string) *Node {
	if d == nil || d.root == nil {
		return nil
	}
	if _, err := xpath.Compile(expr); err != nil {
		return nil
	}
	n, err := xmlquery.Query(d.root, expr)
	if err != nil || n == nil {
		return nil
	}
	return &Node{node: n}
}

// FindText returns the trimmed inner text of the first node matching the
// XPath expression. A missing node yields the empty string, never an error,
// so callers can extract optional fields independently.
func (d *Document) FindText(expr string) string {
	n := d.First(expr)
	if n == nil {
		return ""
	}
	return n.Text()
}

// Name returns the element name.
func (n *Node) Name() string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.Data
}

// Text returns the trimmed text content of the node and its descendants.
func (n *Node) Text() string {
	if n == nil || n.node == nil {
		return ""
	}
	return strings.TrimSpace(n.node.InnerText())
}

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	if n == nil || n.node == nil {
		return ""
	}
	return n.node.SelectAttr(name)
}

// DirectChildren returns the element children of n with the given name, in
// document order. Only immediate children are considered; elements nested
// deeper are never picked up. An empty name matches every element child.
func (n *Node) DirectChildren(name string) []*Node {
	if n == nil || n.node == nil {
		return nil
	}
	var out []*Node
	for c := n.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if name != "" && c.Data != name {
			continue
		}
		out = append(out, &Node{node: c})
	}
	return out
}

// ChildText returns the trimmed text of the first direct child with the
// given name, or "" when absent.
func (n *Node) ChildText(name string) string {
	for _, c := range n.DirectChildren(name) {
		return c.Text()
	}
	return ""
}

// OwnText returns the trimmed concatenation of the node's immediate text
// children, excluding text inside child elements.
func (n *Node) OwnText() string {
	if n == nil || n.node == nil {
		return ""
	}
	var b strings.Builder
	for c := n.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
