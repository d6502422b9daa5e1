package keybinds

import (
	"testing"
)

func TestMatch_ContextThenGlobal(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name    string
		context Context
		key     string
		want    Action
		found   bool
	}{
		{"global from input", ContextInput, "ctrl+j", ActionFullAnalysis, true},
		{"ctrl+enter alias", ContextInput, "ctrl+enter", ActionFullAnalysis, true},
		{"function key", ContextResults, "f3", ActionClassify, true},
		{"plain key in results", ContextResults, "q", ActionQuit, true},
		{"plain key ignored in input", ContextInput, "q", "", false},
		{"esc leaves input", ContextInput, "esc", ActionSwitchFocus, true},
		{"help close", ContextHelp, "esc", ActionCloseModal, true},
		{"unbound", ContextGlobal, "f12", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Match(tt.context, tt.key)
			if got != tt.want || ok != tt.found {
				t.Errorf("Match(%s, %q) = (%q, %v), want (%q, %v)", tt.context, tt.key, got, ok, tt.want, tt.found)
			}
		})
	}
}

func TestMatch_NoOpDisables(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(ContextResults, "q", ActionNoOp)

	if _, ok := r.Match(ContextResults, "q"); ok {
		t.Error("noop binding should not match")
	}
	if r.HasBinding(ContextResults, "q") {
		t.Error("HasBinding should be false for noop")
	}
}

func TestGetBindingString(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.GetBindingString(ContextGlobal, ActionSearchSimilar); got != "ctrl+s, f2" {
		t.Errorf("GetBindingString() = %q", got)
	}
	// falls back to global
	if got := r.GetBindingString(ContextInput, ActionClear); got != "ctrl+l" {
		t.Errorf("GetBindingString() = %q", got)
	}
	if got := r.GetBindingString(ContextInput, ActionGoToTop); got != "unbound" {
		t.Errorf("GetBindingString() = %q, want unbound", got)
	}
}

func TestCloneAndMerge(t *testing.T) {
	base := NewDefaultRegistry()
	clone := base.Clone()
	clone.Register(ContextGlobal, "f9", ActionFullAnalysis)

	if base.HasBinding(ContextGlobal, "f9") {
		t.Error("Clone should not share maps with the original")
	}

	base.Merge(clone)
	if action, _ := base.Match(ContextGlobal, "f9"); action != ActionFullAnalysis {
		t.Errorf("Merge() did not copy binding, got %q", action)
	}
}

func TestListBindings_IncludesGlobal(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextResults, "q", ActionQuit)

	got := r.ListBindings(ContextResults)
	if len(got) != 2 {
		t.Fatalf("ListBindings() returned %d bindings, want 2", len(got))
	}
	if got[0].Context != ContextResults || got[1].Context != ContextGlobal {
		t.Errorf("ListBindings() order = %+v", got)
	}
}
