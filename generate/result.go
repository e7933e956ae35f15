package generate

import (
	"log/slog"

	asklet "github.com/Paranoid-AF/asklet"
	"github.com/atotto/clipboard"
)

const (
	// CopyTitle is the title of an answer result.
	CopyTitle = "Click to copy the answer"
	// CopyMenuTitle is the title of the copy entry in a result's context menu.
	CopyMenuTitle = "Copy (Enter)"
	// FailureTitle is the title of the degraded result shown when the chat
	// round trip fails.
	FailureTitle = "Failed to get an answer"
)

// Clipboard receives the text of an activated result.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Result is a presentable entry for the host. Action runs when the user
// activates it and reports whether it succeeded.
type Result struct {
	Title       string
	SubTitle    string
	IcoPath     string
	ContextData string
	Action      func() bool
}

// Wire converts r to its IPC form.
func (r Result) Wire() asklet.Result {
	return asklet.Result{
		Title:       r.Title,
		SubTitle:    r.SubTitle,
		IcoPath:     r.IcoPath,
		ContextData: r.ContextData,
	}
}

// WireResults converts results to their IPC form. The slice is never nil.
func WireResults(results []Result) []asklet.Result {
	out := make([]asklet.Result, 0, len(results))
	for _, r := range results {
		out = append(out, r.Wire())
	}
	return out
}

// BuildResult assembles the result for a sanitized reply.
func BuildResult(displayText, iconPath string, cb Clipboard) Result {
	return Result{
		Title:       CopyTitle,
		SubTitle:    displayText,
		IcoPath:     iconPath,
		ContextData: displayText,
		Action:      CopyAction(displayText, cb),
	}
}

// BuildFailure assembles the degraded result for a failed round trip.
// Activating it copies the error message.
func BuildFailure(err error, iconPath string, cb Clipboard) Result {
	msg := err.Error()
	return Result{
		Title:       FailureTitle,
		SubTitle:    msg,
		IcoPath:     iconPath,
		ContextData: msg,
		Action:      CopyAction(msg, cb),
	}
}

// ContextMenu returns the context menu entries for a result's context data.
func ContextMenu(text, iconPath string, cb Clipboard) []Result {
	return []Result{{
		Title:       CopyMenuTitle,
		IcoPath:     iconPath,
		ContextData: text,
		Action:      CopyAction(text, cb),
	}}
}

// CopyAction returns an action that copies text to cb.
func CopyAction(text string, cb Clipboard) func() bool {
	return func() bool {
		if err := cb.WriteAll(text); err != nil {
			slog.Warn("failed to copy to clipboard", "error", err)
			return false
		}
		return true
	}
}
