package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/nlpbrowser/internal/client"
	"github.com/studiowebux/nlpbrowser/internal/config"
	"github.com/studiowebux/nlpbrowser/internal/input"
	"github.com/studiowebux/nlpbrowser/internal/types"
	"github.com/studiowebux/nlpbrowser/internal/view"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f5":
		return tea.KeyMsg{Type: tea.KeyF5}
	case "f6":
		return tea.KeyMsg{Type: tea.KeyF6}
	case "alt+up":
		return tea.KeyMsg{Type: tea.KeyUp, Alt: true}
	case "alt+down":
		return tea.KeyMsg{Type: tea.KeyDown, Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_InitializesDefaultState(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())

	AssertModelField(t, "mode", m.mode, ModeNormal)
	AssertModelField(t, "focus", m.focus, FocusInput)
	AssertModelField(t, "topK", m.topK, 5)
	AssertModelField(t, "view state", m.view.State(), view.StateNone)
	AssertModelField(t, "input", m.input.Value(), "")
}

func TestNew_RequiresBackend(t *testing.T) {
	_, err := New(Options{})
	AssertError(t, err)
}

func TestStartAnalysis_BlankPromptIsRejected(t *testing.T) {
	backend := newFakeBackend()
	m, _ := CreateTestModel(t, backend)
	m.input.SetValue("   \n\t ")

	for _, kind := range []types.AnalysisKind{types.KindSimilar, types.KindClassification, types.KindSentiment, types.KindFull} {
		m.startAnalysis(kind)
	}

	AssertModelField(t, "backend calls", len(backend.calls), 0)
	AssertModelField(t, "banner", m.view.ErrorMessage(), view.ErrorPrefix+input.EmptyInputMessage)
	AssertModelField(t, "loading", m.view.LoadingVisible(), false)
	AssertModelField(t, "pending", m.view.Pending(), view.Ticket(0))
}

func TestStartAnalysis_RejectKeepsShownPanel(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())
	m.input.SetValue("ótimo")
	m.Update(doneMsg(t, m.startAnalysis(types.KindSentiment)))

	m.input.SetValue("")
	m.startAnalysis(types.KindSentiment)

	AssertModelField(t, "sentiment panel", m.view.PanelVisible(types.KindSentiment), true)
	AssertModelField(t, "error visible", m.view.ErrorVisible(), true)
}

func TestFullAnalysis_ShowsOnlyTheFullPanel(t *testing.T) {
	backend := newFakeBackend()
	m, _ := CreateTestModel(t, backend)
	m.input.SetValue("  Adorei o produto  ")

	cmd := m.startAnalysis(types.KindFull)
	AssertModelField(t, "loading", m.view.LoadingVisible(), true)
	AssertModelField(t, "results visible while loading", m.view.ResultsVisible(), false)

	m.Update(doneMsg(t, cmd))

	AssertModelField(t, "prompt sent", backend.lastPrompt, "Adorei o produto")
	AssertModelField(t, "top_k sent", backend.lastTopK, 5)
	AssertModelField(t, "loading", m.view.LoadingVisible(), false)
	for kind, visible := range m.view.Panels() {
		AssertModelField(t, string(kind)+" visible", visible, kind == types.KindFull)
	}
	if !strings.Contains(m.statusMsg, "Análise Completa concluída") {
		t.Errorf("statusMsg = %q, want completion message", m.statusMsg)
	}
	if !strings.Contains(m.resultsView.View(), "Elogio") {
		t.Errorf("results view does not show the category:\n%s", m.resultsView.View())
	}
}

func TestEachKind_SendsOneMatchingRequest(t *testing.T) {
	tests := []struct {
		key  string
		kind types.AnalysisKind
	}{
		{"f5", types.KindFull},
		{"ctrl+s", types.KindSimilar},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			backend := newFakeBackend()
			m, _ := CreateTestModel(t, backend)
			m.input.SetValue("texto")

			_, cmd := m.Update(key(tt.key))
			m.Update(doneMsg(t, cmd))

			AssertModelField(t, "calls", len(backend.calls), 1)
			AssertModelField(t, "kind", backend.calls[0], tt.kind)
			AssertModelField(t, "panel", m.view.PanelVisible(tt.kind), true)
		})
	}
}

func TestApplyAnalysis_DropsSupersededResult(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())
	m.input.SetValue("texto")

	first := m.startAnalysis(types.KindSimilar)
	second := m.startAnalysis(types.KindClassification)

	m.Update(doneMsg(t, first))
	AssertModelField(t, "similar panel after stale answer", m.view.PanelVisible(types.KindSimilar), false)
	AssertModelField(t, "still loading", m.view.LoadingVisible(), true)

	m.Update(doneMsg(t, second))
	AssertModelField(t, "classification panel", m.view.PanelVisible(types.KindClassification), true)
	AssertModelField(t, "similar panel", m.view.PanelVisible(types.KindSimilar), false)
}

func TestClearForm_DiscardsPendingResult(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())
	m.input.SetValue("texto")
	m.topK = 9
	m.setFocus(FocusResults)

	cmd := m.startAnalysis(types.KindFull)
	m.Update(key("ctrl+l"))
	m.Update(doneMsg(t, cmd))

	AssertModelField(t, "state", m.view.State(), view.StateNone)
	AssertModelField(t, "input", m.input.Value(), "")
	AssertModelField(t, "topK", m.topK, 5)
	AssertModelField(t, "focus", m.focus, FocusInput)
	AssertModelField(t, "cancel func", m.requestCancelFunc == nil, true)
}

func TestApplyAnalysis_ErrorShowsBanner(t *testing.T) {
	backend := newFakeBackend()
	backend.err = &client.RequestError{Status: 500, Path: types.PathClassify, Detail: "NLP Processor não inicializado"}
	m, _ := CreateTestModel(t, backend)
	m.input.SetValue("texto")

	m.Update(doneMsg(t, m.startAnalysis(types.KindClassification)))

	AssertModelField(t, "state", m.view.State(), view.StateError)
	AssertModelField(t, "banner", m.view.ErrorMessage(), view.ErrorPrefix+"Erro 500")
	AssertModelField(t, "results visible", m.view.ResultsVisible(), false)
	if !strings.HasPrefix(m.fullErrorMsg, "Classificação: Erro 500") {
		t.Errorf("fullErrorMsg = %q", m.fullErrorMsg)
	}
}

func TestApplyAnalysis_TransportError(t *testing.T) {
	backend := newFakeBackend()
	backend.err = &client.TransportError{Op: "send", Path: types.PathSentiment, Err: errors.New("connection refused")}
	m, _ := CreateTestModel(t, backend)
	m.input.SetValue("texto")

	m.Update(doneMsg(t, m.startAnalysis(types.KindSentiment)))

	AssertModelField(t, "banner", m.view.ErrorMessage(), view.ErrorPrefix+"connection refused")
}

func TestAdjustTopK_StaysWithinRange(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())
	m.setFocus(FocusResults)

	for i := 0; i < 30; i++ {
		m.Update(key("+"))
	}
	AssertModelField(t, "topK after raising", m.topK, 20)
	if !strings.Contains(m.statusMsg, "limite") {
		t.Errorf("statusMsg = %q, want limit notice", m.statusMsg)
	}

	for i := 0; i < 30; i++ {
		m.Update(key("alt+down"))
	}
	AssertModelField(t, "topK after lowering", m.topK, 1)

	m.Update(key("alt+up"))
	AssertModelField(t, "topK", m.topK, 2)
}

func TestAdjustTopK_UsesConfiguredRange(t *testing.T) {
	cfg := &config.Config{DefaultTopK: 12, TopKMin: 2, TopKMax: 8}
	m, err := New(Options{Backend: newFakeBackend(), Config: cfg})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	AssertModelField(t, "initial topK", m.topK, 8)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m.setFocus(FocusResults)
	m.Update(key("+"))
	AssertModelField(t, "topK after raising", m.topK, 8)
	if !strings.Contains(m.statusMsg, "(2-8)") {
		t.Errorf("statusMsg = %q, want the configured range", m.statusMsg)
	}

	for i := 0; i < 10; i++ {
		m.Update(key("alt+down"))
	}
	AssertModelField(t, "topK after lowering", m.topK, 2)

	m.clearForm()
	AssertModelField(t, "topK after clear", m.topK, 8)
}

func TestKeys_FocusAndTyping(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())

	m.Update(key("a"))
	AssertModelField(t, "input after typing", m.input.Value(), "a")

	m.Update(key("tab"))
	AssertModelField(t, "focus", m.focus, FocusResults)

	// plain keys no longer reach the text area
	m.Update(key("b"))
	AssertModelField(t, "input", m.input.Value(), "a")

	m.Update(key("esc"))
	AssertModelField(t, "focus after esc", m.focus, FocusInput)

	m.Update(key("esc"))
	AssertModelField(t, "focus", m.focus, FocusResults)
}

func TestKeys_HelpOverlay(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())

	m.Update(key("f1"))
	AssertModelField(t, "mode", m.mode, ModeHelp)
	if !strings.Contains(m.View(), "Análise completa") {
		t.Error("help overlay does not list the full analysis action")
	}

	m.Update(key("esc"))
	AssertModelField(t, "mode", m.mode, ModeNormal)
}

func TestKeys_CtrlCQuits(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())

	_, cmd := m.Update(key("ctrl+c"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}

func TestCopyResult(t *testing.T) {
	m, copied := CreateTestModel(t, newFakeBackend())

	m.copyResult()
	AssertModelField(t, "errorMsg", m.errorMsg, "Nenhum resultado para copiar")

	m.input.SetValue("texto")
	m.Update(doneMsg(t, m.startAnalysis(types.KindClassification)))

	_, cmd := m.Update(key("ctrl+y"))
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}

	if len(*copied) != 1 || !strings.Contains((*copied)[0], "Elogio") {
		t.Errorf("copied = %v", *copied)
	}
	if !strings.Contains(m.statusMsg, "copiado") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestHealthCheck(t *testing.T) {
	backend := newFakeBackend()
	m, _ := CreateTestModel(t, backend)

	_, cmd := m.Update(key("f6"))
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}
	AssertModelField(t, "healthLabel", m.healthLabel, "online")

	backend.healthErr = &client.TransportError{Op: "send", Path: types.PathHealth, Err: errors.New("connection refused")}
	_, cmd = m.Update(key("f6"))
	for _, msg := range drain(cmd) {
		m.Update(msg)
	}
	AssertModelField(t, "healthLabel", m.healthLabel, "offline")
	if m.errorMsg == "" {
		t.Error("expected an error message for an unreachable service")
	}
}

func TestView_RendersForm(t *testing.T) {
	m, _ := CreateTestModel(t, newFakeBackend())

	out := m.View()
	for _, want := range []string{"NLP Browser", "Top-K: 5", "http://localhost:8000"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m.input.SetValue("")
	m.startAnalysis(types.KindFull)
	if !strings.Contains(m.View(), input.EmptyInputMessage) {
		t.Error("View() does not show the validation banner")
	}
}

func TestTruncate(t *testing.T) {
	AssertModelField(t, "short", truncate("abc", 10), "abc")
	AssertModelField(t, "long", truncate("ação completa", 6), "açã...")
}
