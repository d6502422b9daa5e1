package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/nlpbrowser/internal/analytics"
	"github.com/studiowebux/nlpbrowser/internal/client"
	"github.com/studiowebux/nlpbrowser/internal/config"
	"github.com/studiowebux/nlpbrowser/internal/keybinds"
	"github.com/studiowebux/nlpbrowser/internal/render"
	"github.com/studiowebux/nlpbrowser/internal/types"
	"github.com/studiowebux/nlpbrowser/internal/view"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeHelp
	ModeErrorDetail
)

// Focus is the form element receiving plain keys
type Focus int

const (
	FocusInput Focus = iota
	FocusResults
)

// Backend is the analysis service as seen by the TUI
type Backend interface {
	BaseURL() string
	SearchSimilar(ctx context.Context, prompt string, topK int) ([]types.SimilarItem, error)
	Classify(ctx context.Context, prompt string) (*types.ClassificationResult, error)
	Sentiment(ctx context.Context, prompt string) (*types.SentimentResult, error)
	FullAnalysis(ctx context.Context, prompt string, topK int) (*types.FullAnalysisResult, error)
	Health(ctx context.Context) (*types.HealthStatus, error)
}

var _ Backend = (*client.Client)(nil)

// Model represents the TUI state
type Model struct {
	// Core state
	backend          Backend
	keybinds         *keybinds.Registry
	analyticsManager *analytics.Manager
	view             *view.Controller
	logger           *slog.Logger
	mode             Mode
	focus            Focus
	version          string

	// Form
	cfg   *config.Config
	input textarea.Model
	topK  int

	// Results
	spinner     spinner.Model
	resultsView viewport.Model
	helpView    viewport.Model

	// Request cancellation for the in-flight analysis
	requestCancelFunc context.CancelFunc

	// Clipboard writer, replaced in tests
	copyFn func(string) error

	// UI state
	width          int
	height         int
	statusMsg      string
	fullStatusMsg  string
	errorMsg       string // Truncated error for footer
	fullErrorMsg   string // Full error with hint for the detail modal
	messageTimeout time.Duration
	healthLabel    string
}

// Init starts the cursor blink
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Cleanup cancels the pending request and closes the analytics database
func (m *Model) Cleanup() {
	if m.requestCancelFunc != nil {
		m.requestCancelFunc()
		m.requestCancelFunc = nil
	}
	if m.analyticsManager != nil {
		if err := m.analyticsManager.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing analytics database: %v\n", err)
		}
		m.analyticsManager = nil
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.updateResultsView()

	case spinner.TickMsg:
		// the spinner keeps ticking only while a request is pending
		if m.view.LoadingVisible() {
			m.spinner, cmd = m.spinner.Update(msg)
		}

	case analysisDoneMsg:
		cmd = m.applyAnalysis(msg)

	case healthCheckedMsg:
		if msg.err != nil {
			m.healthLabel = "offline"
			cmd = m.setErrorMessage(describe("Serviço indisponível", msg.err))
		} else {
			m.healthLabel = msg.status.Status
			if !msg.status.NLPInitialized {
				m.healthLabel += " (modelos não inicializados)"
			}
			cmd = m.setStatusMessage(fmt.Sprintf("Serviço %s", m.healthLabel))
		}

	case statusMsg:
		cmd = m.setStatusMessage(string(msg))

	case errorMsg:
		cmd = m.setErrorMessage(string(msg))

	case clearStatusMsg:
		m.statusMsg = ""
		m.fullStatusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""
		m.fullErrorMsg = ""

	default:
		// cursor blink and other widget messages
		if m.focus == FocusInput {
			m.input, cmd = m.input.Update(msg)
		}
	}

	return m, cmd
}

// applyAnalysis hands a finished request to the view controller. Answers
// for a superseded or cleared request are dropped.
func (m *Model) applyAnalysis(msg analysisDoneMsg) tea.Cmd {
	if msg.ticket != m.view.Pending() {
		m.logger.Debug("discarding stale result", "ticket", msg.ticket, "pending", m.view.Pending(), "kind", msg.kind)
		return nil
	}
	m.requestCancelFunc = nil

	if msg.err != nil {
		m.view.Fail(msg.ticket, msg.err)
		m.updateResultsView()
		return m.setErrorMessage(describe(msg.kind.Label(), msg.err))
	}

	node, err := render.ForKind(msg.kind, msg.payload)
	if err != nil {
		m.view.Fail(msg.ticket, err)
		m.updateResultsView()
		return m.setErrorMessage(err.Error())
	}

	m.view.Succeed(msg.ticket, msg.kind, node)
	m.updateResultsView()
	m.resultsView.GotoTop()
	m.errorMsg = ""
	m.fullErrorMsg = ""
	return m.setStatusMessage(fmt.Sprintf("%s concluída em %s", msg.kind.Label(), msg.duration.Round(time.Millisecond)))
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeErrorDetail:
		return m.renderErrorDetail()
	default:
		return m.renderMain()
	}
}

// Custom message types
type analysisDoneMsg struct {
	ticket   view.Ticket
	kind     types.AnalysisKind
	payload  any
	err      error
	duration time.Duration
}

type healthCheckedMsg struct {
	status *types.HealthStatus
	err    error
}

type statusMsg string
type errorMsg string
type clearStatusMsg struct{}
type clearErrorMsg struct{}

// describe joins a message with the client's hint for err, if it has one
func describe(prefix string, err error) string {
	msg := fmt.Sprintf("%s: %v", prefix, err)
	if hint := client.Describe(err); hint != "" {
		msg += " - " + hint
	}
	return msg
}

// Helper methods for setting messages with optional timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.fullStatusMsg = msg
	m.statusMsg = truncate(msg, MaxFooterMessage)

	if m.messageTimeout > 0 {
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})
	}
	return nil
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.fullErrorMsg = msg
	m.errorMsg = truncate(msg, MaxFooterMessage)

	if m.messageTimeout > 0 {
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearErrorMsg{}
		})
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
