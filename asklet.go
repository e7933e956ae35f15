// Package asklet defines the request/response types for asklet IPC.
// Messages are JSON-encoded and sent over a Unix domain socket, one per line.
package asklet

// Request types carried in the "type" field. An empty type is a query.
const (
	TypeQuery       = "query"
	TypeActivate    = "activate"
	TypeContextMenu = "context_menu"
	TypeTheme       = "theme"
	TypeSettings    = "settings"
)

// Request is a query sent from the host to the daemon.
type Request struct {
	// Type is empty or "query".
	Type string `json:"type,omitempty"`
	// RequestID is a per-session incrementing identifier assigned by the host.
	// The daemon echoes it back in the response for ordering.
	RequestID int `json:"request_id"`
	// Search is the raw query text, including the action keyword prefix.
	Search string `json:"search"`
	// ActionKeyword is the keyword the query was scoped to. Empty means a
	// global query.
	ActionKeyword string `json:"action_keyword"`
	// Deferred is true only for the debounced pass the host runs after
	// the user stops typing.
	Deferred bool `json:"deferred"`
	// SessionID identifies the host session.
	SessionID string `json:"session_id"`
}

// Result is a single presentable entry returned to the host.
type Result struct {
	// Title is the headline shown in the host's result list.
	Title string `json:"title"`
	// SubTitle carries the answer text (or the failure message).
	SubTitle string `json:"subtitle"`
	// IcoPath is the theme-appropriate icon path.
	IcoPath string `json:"ico_path,omitempty"`
	// ContextData is the text the result's action copies. Hosts send it
	// back in an ActivateRequest.
	ContextData string `json:"context_data"`
}

// Response is sent from the daemon back to the host.
type Response struct {
	// RequestID is echoed from the request for ordering on the host side.
	RequestID int `json:"request_id"`
	// Results holds zero or one result.
	Results []Result `json:"results"`
	// Error is set when the round trip to the chat endpoint failed.
	Error *Error `json:"error,omitempty"`
}

// Error describes a daemon-side error returned to the host.
type Error struct {
	// Code is a machine-readable error identifier (e.g. "api_error", "parse_error").
	Code string `json:"code"`
	// Message is a human-readable error description.
	Message string `json:"message"`
}

// ActivateRequest asks the daemon to run a result's action, i.e. copy
// ContextData to the clipboard.
type ActivateRequest struct {
	// Type is always "activate".
	Type        string `json:"type"`
	ContextData string `json:"context_data"`
}

// ActivateResponse reports whether the action succeeded.
type ActivateResponse struct {
	OK    bool   `json:"ok"`
	Error *Error `json:"error,omitempty"`
}

// ContextMenuRequest asks for the context menu entries of a result.
type ContextMenuRequest struct {
	// Type is always "context_menu".
	Type        string `json:"type"`
	ContextData string `json:"context_data"`
}

// ContextMenuResponse lists the context menu entries.
type ContextMenuResponse struct {
	Results []Result `json:"results"`
}

// ThemeRequest notifies the daemon that the host theme changed.
type ThemeRequest struct {
	// Type is always "theme".
	Type  string `json:"type"`
	Theme string `json:"theme"`
}

// ThemeResponse acknowledges a ThemeRequest.
type ThemeResponse struct {
	OK    bool   `json:"ok"`
	Error *Error `json:"error,omitempty"`
}

// SettingsRequest is sent from the host for settings operations.
type SettingsRequest struct {
	// Type is always "settings".
	Type string `json:"type"`
	// Action is one of "options", "update", "defaults", "reload" or "validate".
	Action string `json:"action"`
	// Options carries the new values for the "update" action.
	Options []Option `json:"options,omitempty"`
}

// SettingsResponse is sent in response to a SettingsRequest.
type SettingsResponse struct {
	// Options is the host-facing option list, API key masked.
	Options []Option `json:"options,omitempty"`
	// Warnings contains configuration warnings (for "validate").
	Warnings []string `json:"warnings,omitempty"`
	// Error is set when the operation fails.
	Error *Error `json:"error,omitempty"`
}
