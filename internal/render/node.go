package render

import (
	"slices"
	"strings"
)

// NodeType identifies what a view node represents
type NodeType string

const (
	NodePanel       NodeType = "panel"
	NodeSection     NodeType = "section"
	NodeHeading     NodeType = "heading"
	NodeText        NodeType = "text"
	NodeStrong      NodeType = "strong"
	NodeField       NodeType = "field"
	NodeBadge       NodeType = "badge"
	NodeBar         NodeType = "bar"
	NodeEmoji       NodeType = "emoji"
	NodePlaceholder NodeType = "placeholder"
	NodeError       NodeType = "error"
	NodeList        NodeType = "list"
	NodeItem        NodeType = "item"
)

// Node is one element of a rendered result. Renderers build trees of nodes;
// backends turn them into terminal text or HTML.
type Node struct {
	Type     NodeType
	ID       string  // region identifier, set on full-analysis sections
	Class    string  // visual class (badge-pt, sentimento-positivo, ...)
	Label    string  // field name, rank prefix or bar caption
	Text     string
	Width    float64 // bar fill in percent
	Children []*Node
}

func newNode(t NodeType, text string, children ...*Node) *Node {
	return &Node{Type: t, Text: text, Children: children}
}

// Walk visits n and its descendants depth-first, stopping a branch when fn returns false
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node carrying the given ID
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node of type t in document order
func (n *Node) FindAll(t NodeType) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Type == t {
			out = append(out, c)
		}
		return true
	})
	return out
}

// HasClass reports whether class appears in the node's space-separated class list
func (n *Node) HasClass(class string) bool {
	return slices.Contains(strings.Fields(n.Class), class)
}
