/*
Package keybinds provides customizable keyboard binding management.

Bindings live in contexts. Global bindings use modifier and function keys
only, so they work while the text area has focus; the results context adds
plain-key navigation once the result viewport is focused. A key bound in a
specific context shadows the same key in the global context.

Users override defaults in ~/.nlpbrowser/keybinds.json. The file is JSON
with comments allowed:

	{
	  // run the full analysis with F9 as well
	  "global": { "f9": "full_analysis" },
	  "results": { "q": "noop" }
	}

Binding a key to "noop" disables it. LoadOrDefault validates the file
before applying it and rejects unknown actions or malformed keys.
*/
package keybinds
