package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal  Context = "global"  // Available everywhere
	ContextInput   Context = "input"   // Text area focused
	ContextResults Context = "results" // Result viewport focused
	ContextHelp    Context = "help"    // Help overlay
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)

	// Analysis actions
	ActionFullAnalysis  Action = "full_analysis"  // Run combined analysis
	ActionSearchSimilar Action = "search_similar" // Search similar texts
	ActionClassify      Action = "classify"       // Classify text
	ActionSentiment     Action = "sentiment"      // Analyze sentiment
	ActionClear         Action = "clear"          // Reset input, top-k and results

	// Form controls
	ActionTopKUp      Action = "top_k_up"     // Increase top-k
	ActionTopKDown    Action = "top_k_down"   // Decrease top-k
	ActionSwitchFocus Action = "switch_focus" // Toggle input/results focus

	// Result viewport
	ActionScrollUp   Action = "scroll_up"
	ActionScrollDown Action = "scroll_down"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionGoToTop    Action = "go_to_top"
	ActionGoToBottom Action = "go_to_bottom"

	// Misc
	ActionCopyResult  Action = "copy_result"  // Copy plain-text result to clipboard
	ActionHealthCheck Action = "health_check" // Query backend health
	ActionOpenHelp    Action = "open_help"    // Open help overlay
	ActionCloseModal  Action = "close_modal"  // Close help overlay
	ActionNoOp        Action = "noop"         // No operation (unbind a default)
)

// ActionInfo contains metadata about an action
type ActionInfo struct {
	Action      Action
	Description string
	Category    string
}

var actionInfos = []ActionInfo{
	{ActionFullAnalysis, "Análise completa", "Análise"},
	{ActionSearchSimilar, "Buscar textos similares", "Análise"},
	{ActionClassify, "Classificar", "Análise"},
	{ActionSentiment, "Analisar sentimento", "Análise"},
	{ActionClear, "Limpar", "Análise"},
	{ActionTopKUp, "Aumentar top-k", "Formulário"},
	{ActionTopKDown, "Diminuir top-k", "Formulário"},
	{ActionSwitchFocus, "Alternar foco", "Formulário"},
	{ActionScrollUp, "Rolar para cima", "Resultados"},
	{ActionScrollDown, "Rolar para baixo", "Resultados"},
	{ActionPageUp, "Página acima", "Resultados"},
	{ActionPageDown, "Página abaixo", "Resultados"},
	{ActionGoToTop, "Início", "Resultados"},
	{ActionGoToBottom, "Fim", "Resultados"},
	{ActionCopyResult, "Copiar resultado", "Resultados"},
	{ActionHealthCheck, "Verificar serviço", "Geral"},
	{ActionOpenHelp, "Ajuda", "Geral"},
	{ActionCloseModal, "Fechar", "Geral"},
	{ActionQuit, "Sair", "Geral"},
	{ActionQuitForce, "Forçar saída", "Geral"},
	{ActionNoOp, "Nenhuma ação", "Geral"},
}

// AllActions returns the known actions in help order
func AllActions() []ActionInfo {
	out := make([]ActionInfo, len(actionInfos))
	copy(out, actionInfos)
	return out
}

// GetActionInfo returns human-readable information about an action
func GetActionInfo(action Action) ActionInfo {
	for _, info := range actionInfos {
		if info.Action == action {
			return info
		}
	}
	return ActionInfo{action, string(action), "Unknown"}
}

// IsKnownAction reports whether action is one the TUI handles
func IsKnownAction(action Action) bool {
	return GetActionInfo(action).Category != "Unknown"
}
