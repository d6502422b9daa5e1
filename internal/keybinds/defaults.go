package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerInputBindings(r)
	registerResultsBindings(r)
	registerHelpBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes.
// Modifier and function keys only, so typing in the text area is never hijacked.
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "ctrl+q", ActionQuit)

	// ctrl+enter is indistinguishable from enter on most terminals; they send LF (ctrl+j)
	r.RegisterMultiple(ContextGlobal, []string{"ctrl+enter", "ctrl+j", "f5"}, ActionFullAnalysis)
	r.RegisterMultiple(ContextGlobal, []string{"ctrl+s", "f2"}, ActionSearchSimilar)
	r.RegisterMultiple(ContextGlobal, []string{"ctrl+t", "f3"}, ActionClassify)
	r.RegisterMultiple(ContextGlobal, []string{"ctrl+o", "f4"}, ActionSentiment)
	r.Register(ContextGlobal, "ctrl+l", ActionClear)

	r.RegisterMultiple(ContextGlobal, []string{"alt+up", "alt+right"}, ActionTopKUp)
	r.RegisterMultiple(ContextGlobal, []string{"alt+down", "alt+left"}, ActionTopKDown)

	r.Register(ContextGlobal, "tab", ActionSwitchFocus)
	r.Register(ContextGlobal, "ctrl+y", ActionCopyResult)
	r.Register(ContextGlobal, "f6", ActionHealthCheck)
	r.Register(ContextGlobal, "f1", ActionOpenHelp)
}

// registerInputBindings: the text area consumes plain keys itself
func registerInputBindings(r *Registry) {
	r.Register(ContextInput, "esc", ActionSwitchFocus)
}

// registerResultsBindings sets up viewport navigation once the results have focus
func registerResultsBindings(r *Registry) {
	r.RegisterMultiple(ContextResults, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextResults, []string{"down", "j"}, ActionScrollDown)
	r.RegisterMultiple(ContextResults, []string{"pgup", "b"}, ActionPageUp)
	r.RegisterMultiple(ContextResults, []string{"pgdown", " "}, ActionPageDown)
	r.RegisterMultiple(ContextResults, []string{"home", "g"}, ActionGoToTop)
	r.RegisterMultiple(ContextResults, []string{"end", "G"}, ActionGoToBottom)
	r.Register(ContextResults, "+", ActionTopKUp)
	r.Register(ContextResults, "-", ActionTopKDown)
	r.Register(ContextResults, "c", ActionCopyResult)
	r.Register(ContextResults, "?", ActionOpenHelp)
	r.Register(ContextResults, "q", ActionQuit)
	r.Register(ContextResults, "esc", ActionSwitchFocus)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?", "f1"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionScrollDown)
}
