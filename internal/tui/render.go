package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/nlpbrowser/internal/keybinds"
	"github.com/studiowebux/nlpbrowser/internal/render"
	"github.com/studiowebux/nlpbrowser/internal/view"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleBanner = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the form above the results panel
func (m Model) renderMain() string {
	boxWidth := m.width - BoxBorderWidth

	header := m.renderHeader()

	inputBorder, resultsBorder := colorGray, colorGray
	if m.focus == FocusInput {
		inputBorder = colorGreen
	} else {
		resultsBorder = colorGreen
	}

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorder).
		Width(boxWidth).
		Render(m.input.View())

	resultsBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(resultsBorder).
		Padding(0, 1).
		Width(boxWidth).
		Height(m.resultsView.Height).
		Render(m.renderResults())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		inputBox,
		resultsBox,
		m.renderStatusBar(),
	)
}

// renderHeader shows the title, the top-k label and the analysis shortcuts
func (m Model) renderHeader() string {
	title := styleTitle.Render("NLP Browser")
	if m.version != "" {
		title += styleSubtle.Render(" " + m.version)
	}
	title += styleSubtle.Render("  " + m.backend.BaseURL())
	topK := fmt.Sprintf("Top-K: %d", m.topK)
	if m.healthLabel != "" {
		topK += styleSubtle.Render("  ·  serviço " + m.healthLabel)
	}

	shortcuts := []string{
		m.shortcut(keybinds.ActionFullAnalysis, "Análise Completa"),
		m.shortcut(keybinds.ActionSearchSimilar, "Similares"),
		m.shortcut(keybinds.ActionClassify, "Classificar"),
		m.shortcut(keybinds.ActionSentiment, "Sentimento"),
		m.shortcut(keybinds.ActionClear, "Limpar"),
	}

	spacing := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(topK))
	line1 := title + strings.Repeat(" ", spacing) + topK
	line2 := styleSubtle.Render(strings.Join(shortcuts, "  "))
	return line1 + "\n" + line2
}

// shortcut renders "[key] label" using the first key bound to action
func (m Model) shortcut(action keybinds.Action, label string) string {
	keys := m.keybinds.GetBinding(keybinds.ContextInput, action)
	if len(keys) == 0 {
		return label
	}
	return fmt.Sprintf("[%s] %s", keys[0], label)
}

// renderResults shows the loading line, the error banner or the viewport
func (m Model) renderResults() string {
	var parts []string
	if m.view.LoadingVisible() {
		parts = append(parts, m.spinner.View()+" "+styleWarning.Render("Analisando..."))
	}
	if banner := m.view.ErrorMessage(); banner != "" {
		parts = append(parts, styleBanner.Render(banner))
	}
	if m.view.ResultsVisible() {
		parts = append(parts, m.resultsView.View())
	}
	if len(parts) == 0 {
		return styleSubtle.Render("Digite um texto e escolha uma análise.")
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderStatusBar() string {
	left := m.panelLabel()

	right := ""
	if m.errorMsg != "" {
		right = styleError.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		if strings.Contains(m.statusMsg, "concluída") || strings.Contains(m.statusMsg, "copiado") {
			right = styleSuccess.Render(m.statusMsg)
		} else {
			right = m.statusMsg
		}
	} else {
		right = styleSubtle.Render(fmt.Sprintf("TAB alterna foco | %s ajuda | %s sair",
			m.keybinds.GetBindingString(keybinds.ContextInput, keybinds.ActionOpenHelp),
			m.keybinds.GetBindingString(keybinds.ContextInput, keybinds.ActionQuit)))
	}

	spacing := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", spacing) + right
}

// panelLabel names the current view state for the status bar
func (m Model) panelLabel() string {
	switch state := m.view.State(); state {
	case view.StateNone:
		return styleSubtle.Render("pronto")
	case view.StateLoading:
		return styleWarning.Render("carregando")
	case view.StateError:
		return styleError.Render("erro")
	default:
		kind, _ := m.view.VisiblePanel()
		return styleSuccess.Render(kind.Label())
	}
}

// updateLayout sizes the widgets to the terminal
func (m *Model) updateLayout() {
	innerWidth := m.width - BoxBorderWidth
	m.input.SetWidth(max(InputMinWidth, innerWidth))

	used := HeaderLines + InputHeight + BoxBorderWidth*2 + StatusBarLines
	m.resultsView.Width = max(InputMinWidth, innerWidth-BoxPaddingWidth)
	m.resultsView.Height = max(3, m.height-used)

	m.helpView.Width = max(InputMinWidth, m.width-ModalWidthMargin)
	m.helpView.Height = max(3, m.height-ModalHeightMargin)
}

// updateResultsView re-renders the visible panel into the viewport
func (m *Model) updateResultsView() {
	node := m.view.Content()
	if node == nil {
		m.resultsView.SetContent("")
		return
	}
	m.resultsView.SetContent(render.Terminal(node, m.resultsView.Width))
}

// updateHelpView lists every binding grouped by category
func (m *Model) updateHelpView() {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("NLP Browser - Atalhos"))
	sb.WriteString("\n")

	category := ""
	for _, info := range keybinds.AllActions() {
		if info.Action == keybinds.ActionNoOp {
			continue
		}
		keys := m.keybinds.GetBinding(keybinds.ContextResults, info.Action)
		if len(keys) == 0 {
			keys = m.keybinds.GetBinding(keybinds.ContextHelp, info.Action)
		}
		if len(keys) == 0 {
			continue
		}
		if info.Category != category {
			category = info.Category
			sb.WriteString("\n" + styleWarning.Render(strings.ToUpper(category)) + "\n")
		}
		sb.WriteString(fmt.Sprintf("  %-24s %s\n", strings.Join(keys, ", "), info.Description))
	}

	sb.WriteString("\n" + styleSubtle.Render("Personalize em ~/.nlpbrowser/keybinds.json"))
	m.helpView.SetContent(sb.String())
}

// renderHelp renders the help overlay
func (m Model) renderHelp() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Padding(0, 1).
		Width(m.width - BoxBorderWidth).
		Render(m.helpView.View())
	return box + "\n" + styleSubtle.Render("ESC fecha | ↑/↓ rola")
}

// renderErrorDetail shows the untruncated error with its hint
func (m Model) renderErrorDetail() string {
	content := styleBanner.Render("Detalhes do erro") + "\n\n" +
		lipgloss.NewStyle().Width(m.width-ModalWidthMargin).Render(m.fullErrorMsg)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Padding(1, 2).
		Width(m.width - BoxBorderWidth).
		Render(content)
	return box + "\n" + styleSubtle.Render("ESC fecha")
}
