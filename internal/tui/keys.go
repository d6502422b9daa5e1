package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/nlpbrowser/internal/keybinds"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c always quits, whatever the bindings say
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeErrorDetail:
		return m.handleErrorDetailKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// keyContext returns the keybind context for the focused element
func (m *Model) keyContext() keybinds.Context {
	if m.focus == FocusResults {
		return keybinds.ContextResults
	}
	return keybinds.ContextInput
}

// handleNormalKeys resolves bound actions; unbound keys go to the focused widget
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(m.keyContext(), msg.String())
	if !ok {
		return m.forwardKey(msg)
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionFullAnalysis:
		return m.startAnalysis(types.KindFull)
	case keybinds.ActionSearchSimilar:
		return m.startAnalysis(types.KindSimilar)
	case keybinds.ActionClassify:
		return m.startAnalysis(types.KindClassification)
	case keybinds.ActionSentiment:
		return m.startAnalysis(types.KindSentiment)
	case keybinds.ActionClear:
		return m.clearForm()

	case keybinds.ActionTopKUp:
		return m.adjustTopK(1)
	case keybinds.ActionTopKDown:
		return m.adjustTopK(-1)

	case keybinds.ActionSwitchFocus:
		if m.focus == FocusInput {
			m.setFocus(FocusResults)
		} else {
			m.setFocus(FocusInput)
		}
		return nil

	case keybinds.ActionScrollUp:
		m.resultsView.LineUp(1)
	case keybinds.ActionScrollDown:
		m.resultsView.LineDown(1)
	case keybinds.ActionPageUp:
		m.resultsView.ViewUp()
	case keybinds.ActionPageDown:
		m.resultsView.ViewDown()
	case keybinds.ActionGoToTop:
		m.resultsView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.resultsView.GotoBottom()

	case keybinds.ActionCopyResult:
		return m.copyResult()
	case keybinds.ActionHealthCheck:
		return m.checkHealth()
	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.helpView.GotoTop()
		return nil
	}

	return nil
}

// forwardKey passes an unbound key to the focused widget
func (m *Model) forwardKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == FocusInput {
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	// "enter" on the results opens the full error when one is shown
	if msg.String() == "enter" && m.fullErrorMsg != "" {
		m.mode = ModeErrorDetail
	}
	return nil
}

// handleHelpKeys handles keyboard input in the help overlay
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal, keybinds.ActionOpenHelp:
		m.mode = ModeNormal
	case keybinds.ActionScrollUp:
		m.helpView.LineUp(1)
	case keybinds.ActionScrollDown:
		m.helpView.LineDown(1)
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		m.Cleanup()
		return tea.Quit
	}
	return nil
}

// handleErrorDetailKeys closes the error detail modal
func (m *Model) handleErrorDetailKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter", "q":
		m.mode = ModeNormal
	}
	return nil
}
