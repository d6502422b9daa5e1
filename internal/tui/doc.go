/*
Package tui implements the interactive terminal front end of nlpbrowser.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - model.go: Core state, messages and the Update loop
  - keys.go: Keyboard input handling and keybind routing
  - actions.go: Side effects (analysis requests, health check, clipboard)
  - render.go: View rendering for the form, results and overlays

# View State

Visibility of the loading indicator, error banner and result panels is
owned by a view.Controller. Every analysis gesture calls Begin and gets a
ticket; the tea.Cmd performing the HTTP call carries that ticket back in
its message. Answers for anything but the latest ticket are dropped, so a
slow earlier request can never overwrite a newer one.

# Keybind System

Keys are resolved through a keybinds.Registry:
  - ContextInput while the text area has focus (plain keys type text)
  - ContextResults while the result viewport has focus
  - ContextHelp inside the help overlay
  - ContextGlobal as the fallback for all of them

User overrides are read from ~/.nlpbrowser/keybinds.json.
*/
package tui
