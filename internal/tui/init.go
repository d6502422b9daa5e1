package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/nlpbrowser/internal/analytics"
	"github.com/studiowebux/nlpbrowser/internal/config"
	"github.com/studiowebux/nlpbrowser/internal/keybinds"
	"github.com/studiowebux/nlpbrowser/internal/view"
)

// Options configures a TUI session
type Options struct {
	Backend   Backend
	Config    *config.Config
	Keybinds  *keybinds.Registry // nil uses the defaults
	Analytics *analytics.Manager // nil when analytics are disabled
	Logger    *slog.Logger
	Version   string
}

// New creates a new TUI model
func New(opts Options) (Model, error) {
	if opts.Backend == nil {
		return Model{}, fmt.Errorf("backend is required")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{
			DefaultTopK: config.DefaultTopK,
			TopKMin:     config.DefaultTopKMin,
			TopKMax:     config.DefaultTopKMax,
		}
	}
	registry := opts.Keybinds
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := textarea.New()
	input.Placeholder = "Digite ou cole o texto para análise..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(InputHeight)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleWarning

	m := Model{
		backend:          opts.Backend,
		keybinds:         registry,
		analyticsManager: opts.Analytics,
		view:             view.New(),
		logger:           logger,
		mode:             ModeNormal,
		focus:            FocusInput,
		version:          opts.Version,
		input:            input,
		cfg:              cfg,
		spinner:          spin,
		resultsView:      viewport.New(80, 20),
		helpView:         viewport.New(80, 20),
		copyFn:           clipboard.WriteAll,
		messageTimeout:   time.Duration(cfg.MessageTimeout) * time.Second,
	}
	m.topK = cfg.ClampTopK(cfg.DefaultTopK)
	m.updateHelpView()

	return m, nil
}

// Run starts the TUI and blocks until the user quits
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.Cleanup()

	// pass a pointer since Update uses a pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
