// Package view tracks which part of the result area is visible.
//
// The controller mirrors the web page it replaces: a loading indicator, an
// error banner and one result panel per analysis kind, of which at most one
// is shown. Each request is tagged with a Ticket so that an answer arriving
// after a newer request was issued, or after a clear, is dropped instead of
// overwriting the view.
package view

import (
	"github.com/studiowebux/nlpbrowser/internal/render"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// ErrorPrefix is prepended to every message shown in the error banner
const ErrorPrefix = "❌ Erro: "

// State is the coarse state of the result area
type State int

const (
	StateNone State = iota
	StateLoading
	StateError
	StateSimilar
	StateClassification
	StateSentiment
	StateFull
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateSimilar:
		return "similar"
	case StateClassification:
		return "classification"
	case StateSentiment:
		return "sentiment"
	case StateFull:
		return "full"
	default:
		return "none"
	}
}

// StateFor returns the display state showing kind's panel
func StateFor(kind types.AnalysisKind) State {
	switch kind {
	case types.KindSimilar:
		return StateSimilar
	case types.KindClassification:
		return StateClassification
	case types.KindSentiment:
		return StateSentiment
	case types.KindFull:
		return StateFull
	}
	return StateNone
}

// Ticket identifies one issued request. The zero Ticket is never issued.
type Ticket uint64

// Controller owns the visibility of the loading indicator, the error banner
// and the result panels. It is not safe for concurrent use; the TUI update
// loop is its only caller.
type Controller struct {
	issued  Ticket
	pending Ticket
	kind    types.AnalysisKind // kind of the pending request

	loading bool
	errMsg  string
	errOn   bool
	results bool
	panel   types.AnalysisKind
	content *render.Node
}

// New returns a controller in StateNone
func New() *Controller {
	return &Controller{}
}

// Begin hides results and error, shows the loading indicator and issues a
// ticket for the request about to be sent. Any earlier ticket becomes stale.
func (c *Controller) Begin(kind types.AnalysisKind) Ticket {
	c.issued++
	c.pending = c.issued
	c.kind = kind

	c.loading = true
	c.errOn = false
	c.errMsg = ""
	c.hideResults()
	return c.pending
}

// Succeed shows kind's panel with content if t is still the pending ticket.
// It reports whether the result was applied.
func (c *Controller) Succeed(t Ticket, kind types.AnalysisKind, content *render.Node) bool {
	if !c.current(t) || kind != c.kind {
		return false
	}
	c.pending = 0

	c.loading = false
	c.errOn = false
	c.errMsg = ""
	c.results = true
	c.panel = kind
	c.content = content
	return true
}

// Fail shows err in the banner if t is still the pending ticket.
// Result panels stay hidden.
func (c *Controller) Fail(t Ticket, err error) bool {
	if !c.current(t) {
		return false
	}
	c.pending = 0

	c.loading = false
	c.hideResults()
	c.showError(err)
	return true
}

// Reject shows a validation failure. No ticket is involved since nothing
// was sent, and the panels are left as they are.
func (c *Controller) Reject(err error) {
	c.loading = false
	c.showError(err)
}

// Clear hides everything and drops any pending request
func (c *Controller) Clear() {
	c.pending = 0
	c.kind = ""
	c.loading = false
	c.errOn = false
	c.errMsg = ""
	c.hideResults()
}

// Pending returns the ticket awaiting an answer, or 0
func (c *Controller) Pending() Ticket {
	return c.pending
}

// State returns the coarse state. A visible error banner takes precedence
// over a panel left visible by Reject.
func (c *Controller) State() State {
	switch {
	case c.loading:
		return StateLoading
	case c.errOn:
		return StateError
	case c.results:
		return StateFor(c.panel)
	default:
		return StateNone
	}
}

// PanelVisible reports whether kind's panel is shown
func (c *Controller) PanelVisible(kind types.AnalysisKind) bool {
	return c.results && c.panel == kind
}

// Panels returns the visibility of every panel
func (c *Controller) Panels() map[types.AnalysisKind]bool {
	out := make(map[types.AnalysisKind]bool, len(types.AllKinds))
	for _, k := range types.AllKinds {
		out[k] = c.PanelVisible(k)
	}
	return out
}

// VisiblePanel returns the shown panel's kind and whether one is shown
func (c *Controller) VisiblePanel() (types.AnalysisKind, bool) {
	return c.panel, c.results
}

func (c *Controller) ResultsVisible() bool { return c.results }
func (c *Controller) LoadingVisible() bool { return c.loading }
func (c *Controller) ErrorVisible() bool   { return c.errOn }

// ErrorMessage returns the banner text, or "" when the banner is hidden
func (c *Controller) ErrorMessage() string {
	if !c.errOn {
		return ""
	}
	return ErrorPrefix + c.errMsg
}

// Content returns the visible panel's rendered result, or nil
func (c *Controller) Content() *render.Node {
	if !c.results {
		return nil
	}
	return c.content
}

func (c *Controller) current(t Ticket) bool {
	return t != 0 && t == c.pending
}

func (c *Controller) hideResults() {
	c.results = false
	c.panel = ""
	c.content = nil
}

func (c *Controller) showError(err error) {
	c.errOn = true
	c.errMsg = ""
	if err != nil {
		c.errMsg = err.Error()
	}
}
