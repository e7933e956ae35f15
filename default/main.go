// Package defaults provides embedded default assets (system prompt and config).
package defaults

import _ "embed"

// DefaultPrompt is the fixed system preamble sent before every user turn.
//
//go:embed default_prompt.md
var DefaultPrompt string

//go:embed default_config.json
var DefaultConfigJSON []byte
