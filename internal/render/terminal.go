package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary  = lipgloss.AdaptiveColor{Light: "#4b0082", Dark: "#b19cd9"}
	colorGreen    = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed      = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff5f5f"}
	colorGray     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorBadgeBg  = lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}
	colorBarEmpty = lipgloss.AdaptiveColor{Light: "#cccccc", Dark: "#444444"}

	styleHeading     = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleStrong      = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleLabel       = lipgloss.NewStyle().Bold(true)
	styleSubtle      = lipgloss.NewStyle().Foreground(colorGray)
	stylePlaceholder = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	styleError       = lipgloss.NewStyle().Foreground(colorRed)
	styleBadge       = lipgloss.NewStyle().Background(colorBadgeBg).Padding(0, 1)
	styleBarFill     = lipgloss.NewStyle().Foreground(colorPrimary)
	styleBarEmpty    = lipgloss.NewStyle().Foreground(colorBarEmpty)

	sentimentStyles = map[string]lipgloss.Style{
		"sentimento-positivo": lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
		"sentimento-negativo": lipgloss.NewStyle().Bold(true).Foreground(colorRed),
		"sentimento-neutro":   lipgloss.NewStyle().Bold(true).Foreground(colorGray),
	}
)

const (
	maxBarWidth = 30
	minBarWidth = 10
)

// Terminal renders n with lipgloss styling, wrapped to width columns (0 = no wrap)
func Terminal(n *Node, width int) string {
	r := textRenderer{styled: true, width: width}
	return r.wrap(r.node(n))
}

// PlainText renders n without any escape sequences
func PlainText(n *Node) string {
	r := textRenderer{}
	return r.node(n)
}

type textRenderer struct {
	styled bool
	width  int
}

func (r textRenderer) style(s lipgloss.Style, str string) string {
	if !r.styled {
		return str
	}
	return s.Render(str)
}

func (r textRenderer) wrap(s string) string {
	if !r.styled || r.width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(r.width).Render(s)
}

func (r textRenderer) node(n *Node) string {
	if n == nil {
		return ""
	}

	switch n.Type {
	case NodeHeading:
		return r.style(styleHeading, n.Text)
	case NodeStrong:
		return r.style(styleStrong, n.Text)
	case NodeText:
		text := n.Text
		for class, st := range sentimentStyles {
			if n.HasClass(class) {
				text = r.style(st, text)
			}
		}
		if n.Label != "" {
			return r.style(styleLabel, n.Label) + " " + text
		}
		return text
	case NodeField:
		return r.style(styleLabel, n.Label+":") + " " + n.Text
	case NodeBadge:
		if !r.styled {
			return "[" + n.Text + "]"
		}
		return styleBadge.Render(n.Text)
	case NodeBar:
		return r.bar(n)
	case NodeEmoji:
		return n.Text
	case NodePlaceholder:
		return r.style(stylePlaceholder, n.Text)
	case NodeError:
		return r.style(styleError, n.Text)
	case NodeItem:
		return r.item(n)
	case NodeSection:
		return r.children(n, "\n")
	case NodeList, NodePanel:
		return r.children(n, "\n\n")
	}
	return n.Text
}

func (r textRenderer) children(n *Node, sep string) string {
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if s := r.node(c); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// item puts the first child on its own line and the remaining ones on a meta line
func (r textRenderer) item(n *Node) string {
	if len(n.Children) == 0 {
		return ""
	}
	if n.HasClass("classificacao-item") {
		return r.children(n, "  ")
	}

	head := r.node(n.Children[0])
	if len(n.Children) == 1 {
		return head
	}
	meta := make([]string, 0, len(n.Children)-1)
	for _, c := range n.Children[1:] {
		meta = append(meta, r.node(c))
	}
	return head + "\n   " + strings.Join(meta, r.style(styleSubtle, "  ·  "))
}

func (r textRenderer) bar(n *Node) string {
	cells := maxBarWidth
	if r.width > 0 {
		cells = min(maxBarWidth, max(minBarWidth, r.width/3))
	}
	filled := int(math.Round(math.Max(0, math.Min(100, n.Width)) / 100 * float64(cells)))

	if !r.styled {
		return "[" + strings.Repeat("#", filled) + strings.Repeat(".", cells-filled) + "] " + n.Text
	}
	return styleBarFill.Render(strings.Repeat("█", filled)) +
		styleBarEmpty.Render(strings.Repeat("░", cells-filled)) + " " + n.Text
}
