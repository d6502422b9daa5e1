package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/nlpbrowser/internal/cli"
	"github.com/studiowebux/nlpbrowser/internal/input"
	"github.com/studiowebux/nlpbrowser/internal/render"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// startAnalysis validates the form and sends one request for kind.
// A blank prompt only raises the banner; nothing is sent.
func (m *Model) startAnalysis(kind types.AnalysisKind) tea.Cmd {
	req, err := input.NewRequest(kind, m.input.Value(), m.topK)
	if err != nil {
		m.view.Reject(err)
		m.updateResultsView()
		return m.setErrorMessage(err.Error())
	}

	// a newer gesture supersedes the request still in flight
	if m.requestCancelFunc != nil {
		m.requestCancelFunc()
	}
	ticket := m.view.Begin(kind)
	ctx, cancel := context.WithCancel(context.Background())
	m.requestCancelFunc = cancel

	m.errorMsg = ""
	m.fullErrorMsg = ""
	m.statusMsg = fmt.Sprintf("%s em andamento...", kind.Label())
	m.updateResultsView()
	m.logger.Debug("analysis started", "kind", kind, "ticket", ticket, "top_k", req.TopK)

	backend := m.backend
	run := func() tea.Msg {
		start := time.Now()
		payload, err := cli.Execute(ctx, backend, kind, req)
		return analysisDoneMsg{
			ticket:   ticket,
			kind:     kind,
			payload:  payload,
			err:      err,
			duration: time.Since(start),
		}
	}
	return tea.Batch(m.spinner.Tick, run)
}

// clearForm resets the text, top-k and results, and refocuses the input
func (m *Model) clearForm() tea.Cmd {
	if m.requestCancelFunc != nil {
		m.requestCancelFunc()
		m.requestCancelFunc = nil
	}
	m.view.Clear()
	m.input.Reset()
	m.topK = m.cfg.ClampTopK(m.cfg.DefaultTopK)
	m.setFocus(FocusInput)
	m.errorMsg = ""
	m.fullErrorMsg = ""
	m.updateResultsView()
	return m.setStatusMessage("Formulário limpo")
}

// adjustTopK moves top-k by delta within the configured range
func (m *Model) adjustTopK(delta int) tea.Cmd {
	next := m.cfg.ClampTopK(m.topK + delta)
	if next == m.topK {
		return m.setStatusMessage(fmt.Sprintf("Top-K já está no limite (%d-%d)", m.cfg.TopKMin, m.cfg.TopKMax))
	}
	m.topK = next
	return m.setStatusMessage(fmt.Sprintf("Top-K: %d", m.topK))
}

// copyResult copies the visible result as plain text
func (m *Model) copyResult() tea.Cmd {
	node := m.view.Content()
	if node == nil {
		return m.setErrorMessage("Nenhum resultado para copiar")
	}

	text := render.PlainText(node)
	copyFn := m.copyFn
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			return errorMsg(fmt.Sprintf("Falha ao copiar: %v", err))
		}
		return statusMsg("Resultado copiado para a área de transferência")
	}
}

// checkHealth queries the backend health route
func (m *Model) checkHealth() tea.Cmd {
	backend := m.backend
	m.statusMsg = "Verificando serviço..."
	return func() tea.Msg {
		status, err := backend.Health(context.Background())
		return healthCheckedMsg{status: status, err: err}
	}
}

// setFocus moves keyboard focus between the text area and the results
func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}
