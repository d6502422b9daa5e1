package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// fakeBackend answers every analysis from canned values and records calls
type fakeBackend struct {
	calls      []types.AnalysisKind
	lastPrompt string
	lastTopK   int
	err        error
	healthErr  error

	similar        []types.SimilarItem
	classification *types.ClassificationResult
	sentiment      *types.SentimentResult
}

func newFakeBackend() *fakeBackend {
	similar := []types.SimilarItem{
		{ID: "doc_0", Text: "Adorei o atendimento", Category: "Elogio", Similarity: 0.82, Language: "pt"},
		{ID: "doc_1", Text: "Entrega rápida e produto ótimo", Category: "Elogio", Similarity: 0.41, Language: "pt"},
	}
	return &fakeBackend{
		similar: similar,
		classification: &types.ClassificationResult{
			Category:   "Elogio",
			Confidence: 0.91,
			AllCategories: []types.CategoryScore{
				{Category: "Elogio", Score: 0.91},
				{Category: "Reclamação", Score: 0.09},
			},
		},
		sentiment: &types.SentimentResult{Label: "Positivo", OriginalLabel: "4 stars", Confidence: 0.75},
	}
}

func (f *fakeBackend) record(kind types.AnalysisKind, prompt string, topK int) {
	f.calls = append(f.calls, kind)
	f.lastPrompt = prompt
	f.lastTopK = topK
}

func (f *fakeBackend) BaseURL() string { return "http://localhost:8000" }

func (f *fakeBackend) SearchSimilar(_ context.Context, prompt string, topK int) ([]types.SimilarItem, error) {
	f.record(types.KindSimilar, prompt, topK)
	if f.err != nil {
		return nil, f.err
	}
	return f.similar, nil
}

func (f *fakeBackend) Classify(_ context.Context, prompt string) (*types.ClassificationResult, error) {
	f.record(types.KindClassification, prompt, 0)
	if f.err != nil {
		return nil, f.err
	}
	return f.classification, nil
}

func (f *fakeBackend) Sentiment(_ context.Context, prompt string) (*types.SentimentResult, error) {
	f.record(types.KindSentiment, prompt, 0)
	if f.err != nil {
		return nil, f.err
	}
	return f.sentiment, nil
}

func (f *fakeBackend) FullAnalysis(_ context.Context, prompt string, topK int) (*types.FullAnalysisResult, error) {
	f.record(types.KindFull, prompt, topK)
	if f.err != nil {
		return nil, f.err
	}
	return &types.FullAnalysisResult{
		Prompt:         prompt,
		SimilarItems:   f.similar,
		Classification: *f.classification,
		Sentiment:      *f.sentiment,
	}, nil
}

func (f *fakeBackend) Health(context.Context) (*types.HealthStatus, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return &types.HealthStatus{Status: "online", NLPInitialized: true}, nil
}

// CreateTestModel creates a Model backed by backend with a recording clipboard
func CreateTestModel(t *testing.T, backend Backend) (*Model, *[]string) {
	t.Helper()

	m, err := New(Options{Backend: backend, Version: "test-version"})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}

	var copied []string
	m.copyFn = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	return &m, &copied
}

// drain runs cmd and any batched commands, returning every message produced
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// doneMsg extracts the analysis result from the messages of a command
func doneMsg(t *testing.T, cmd tea.Cmd) analysisDoneMsg {
	t.Helper()
	for _, msg := range drain(cmd) {
		if done, ok := msg.(analysisDoneMsg); ok {
			return done
		}
	}
	t.Fatal("command produced no analysisDoneMsg")
	return analysisDoneMsg{}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

// AssertError verifies that an error occurred
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Error("Expected error but got nil")
	}
}
