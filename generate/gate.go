package generate

import (
	"strings"
	"unicode/utf8"

	asklet "github.com/Paranoid-AF/asklet"
)

// Query is one invocation of the plugin by the host.
type Query struct {
	// Search is the raw query text, action keyword prefix included.
	Search string
	// ActionKeyword is empty for global (keyword-less) queries.
	ActionKeyword string
	// Deferred marks the debounced pass the host runs once typing pauses.
	// Only this pass may reach the network.
	Deferred bool
}

// Suppression explains why a query was not sent. The zero value means the
// query triggers.
type Suppression string

const (
	SuppressNone      Suppression = ""
	SuppressEmpty     Suppression = "empty query"
	SuppressGlobal    Suppression = "global query"
	SuppressNoMarker  Suppression = "missing end marker"
	SuppressImmediate Suppression = "immediate pass"
)

// Check evaluates the gate and reports the first reason to suppress q.
func Check(q Query, cfg *asklet.Config) Suppression {
	switch {
	case q.Search == "":
		return SuppressEmpty
	case q.ActionKeyword == "":
		return SuppressGlobal
	case gated(cfg) && !strings.HasSuffix(q.Search, cfg.Marker()):
		return SuppressNoMarker
	case !q.Deferred:
		return SuppressImmediate
	}
	return SuppressNone
}

// ShouldTrigger reports whether q should be sent to the chat endpoint.
func ShouldTrigger(q Query, cfg *asklet.Config) bool {
	return Check(q, cfg) == SuppressNone
}

// Trigger evaluates the gate and returns the utterance to send.
//
// With gating on, exactly one trailing character is trimmed from the full
// search text, keyword included, even when the end marker is longer than
// one character.
func Trigger(q Query, cfg *asklet.Config) (string, bool) {
	if !ShouldTrigger(q, cfg) {
		return "", false
	}
	if !gated(cfg) {
		return q.Search, true
	}
	_, size := utf8.DecodeLastRuneInString(q.Search)
	return q.Search[:len(q.Search)-size], true
}

func gated(cfg *asklet.Config) bool {
	return cfg != nil && cfg.EndMarkerEnabled
}
