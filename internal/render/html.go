package render

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML serializes n into a markup fragment using the same class names the
// web front end styles.
func HTML(n *Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, toHTML(n)); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func element(a atom.Atom, class string, children ...*html.Node) *html.Node {
	el := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: class})
	}
	for _, c := range children {
		el.AppendChild(c)
	}
	return el
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func toHTML(n *Node) *html.Node {
	var el *html.Node

	switch n.Type {
	case NodeHeading:
		el = element(atom.H3, n.Class, textNode(n.Text))
	case NodeStrong:
		el = element(atom.Strong, n.Class, textNode(n.Text))
	case NodeText:
		el = element(atom.Div, n.Class)
		if n.Label != "" {
			el.AppendChild(element(atom.Strong, "", textNode(n.Label)))
			el.AppendChild(textNode(" "))
		}
		el.AppendChild(textNode(n.Text))
	case NodeField:
		el = element(atom.Span, n.Class,
			element(atom.Strong, "", textNode(n.Label+":")),
			textNode(" "+n.Text),
		)
	case NodeBadge:
		el = element(atom.Span, n.Class, textNode(n.Text))
	case NodeBar:
		fill := element(atom.Div, "confidence-fill")
		fill.Attr = append(fill.Attr, html.Attribute{
			Key: "style",
			Val: "width: " + strconv.FormatFloat(n.Width, 'f', 1, 64) + "%",
		})
		el = element(atom.Div, "confidence",
			element(atom.Div, n.Class, fill),
			element(atom.Span, "score", textNode(n.Text)),
		)
	case NodeEmoji:
		el = element(atom.Div, "emoji "+n.Class, textNode(n.Text))
	case NodePlaceholder:
		el = element(atom.P, n.Class, textNode(n.Text))
	case NodeError:
		el = element(atom.P, "erro", textNode(n.Text))
	default:
		el = element(atom.Div, n.Class)
		if n.Text != "" {
			el.AppendChild(textNode(n.Text))
		}
	}

	if n.ID != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "id", Val: n.ID})
	}
	for _, c := range n.Children {
		el.AppendChild(toHTML(c))
	}
	return el
}
