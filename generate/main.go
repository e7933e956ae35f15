// Package generate implements the query pipeline: the completion gate, the
// chat round trip, reply sanitizing and result building.
package generate

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	asklet "github.com/Paranoid-AF/asklet"
	defaults "github.com/Paranoid-AF/asklet/default"
	"github.com/Paranoid-AF/asklet/settings"
)

// Engine runs queries against the current settings snapshot.
type Engine struct {
	store        *settings.Store
	cache        *ReplyCache
	clipboard    Clipboard
	customPrompt string // loaded custom prompt (empty = use default)
}

// NewEngine creates a new query engine reading settings from store.
// A nil clipboard uses the system clipboard.
func NewEngine(store *settings.Store, cb Clipboard) *Engine {
	if cb == nil {
		cb = SystemClipboard{}
	}

	customPrompt := loadCustomPrompt()
	if customPrompt == "" {
		slog.Debug("no custom prompt, using built-in default")
	}

	return &Engine{
		store:        store,
		cache:        NewReplyCache(),
		clipboard:    cb,
		customPrompt: customPrompt,
	}
}

// loadCustomPrompt loads a custom system prompt.
// Returns empty string if no custom prompt exists.
func loadCustomPrompt() string {
	promptPath := asklet.PromptPath()
	data, err := os.ReadFile(promptPath)
	if err != nil {
		return ""
	}
	slog.Info("loaded custom prompt", "path", promptPath)
	return string(data)
}

// Close releases resources held by the engine.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// Store returns the settings store the engine reads from.
func (e *Engine) Store() *settings.Store {
	return e.store
}

// Clipboard returns the clipboard results copy to.
func (e *Engine) Clipboard() Clipboard {
	return e.clipboard
}

// SystemPrompt returns the system preamble sent before every user turn.
func (e *Engine) SystemPrompt() string {
	prompt := e.customPrompt
	if prompt == "" {
		prompt = defaults.DefaultPrompt
	}
	return strings.TrimRight(prompt, " \t\n")
}

// QueryResult holds every intermediate value of a query, for logging.
type QueryResult struct {
	Query      Query
	Suppressed Suppression
	Utterance  string
	RawReply   string
	Reply      string
	Cached     bool
	Results    []Result
	Err        error
	Elapsed    time.Duration
}

// Query runs q through the pipeline. It returns no results and no error
// when the gate suppresses q, and no results with an ErrTransport or
// ErrParse error when the round trip fails.
func (e *Engine) Query(ctx context.Context, q Query, iconPath string) ([]Result, error) {
	r := e.QueryVerbose(ctx, q, iconPath)
	return r.Results, r.Err
}

// QueryVerbose is like Query but returns the intermediate values as well.
func (e *Engine) QueryVerbose(ctx context.Context, q Query, iconPath string) *QueryResult {
	start := time.Now()
	cfg := e.store.Read()
	result := &QueryResult{Query: q}

	result.Suppressed = Check(q, cfg)
	if result.Suppressed != SuppressNone {
		slog.Debug("query suppressed", "reason", string(result.Suppressed), "deferred", q.Deferred)
		return result
	}
	utterance, _ := Trigger(q, cfg)
	result.Utterance = utterance

	baseURL := asklet.ResolveBaseURL(cfg)
	model := asklet.ResolveModel(cfg)
	ttl := cfg.CacheTTL()

	if ttl > 0 {
		if reply, ok := e.cache.Get(baseURL, model, utterance); ok {
			slog.Debug("reply cache hit", "model", model)
			result.Reply = reply
			result.Cached = true
			result.Results = []Result{BuildResult(reply, iconPath, e.clipboard)}
			result.Elapsed = time.Since(start)
			return result
		}
	}

	gen := NewGenerator(baseURL, asklet.ResolveAPIKey(cfg), model, cfg.Timeout())
	systemPrompt := e.SystemPrompt()

	slog.Debug("prompt", "model", model, "system", systemPrompt, "user", utterance)

	raw, err := gen.Generate(ctx, systemPrompt, utterance)
	result.Elapsed = time.Since(start)
	if err != nil {
		slog.Error("generation error", "error", err, "elapsed", result.Elapsed)
		result.Err = err
		return result
	}

	result.RawReply = raw
	result.Reply = StripThinking(raw)
	e.cache.Set(baseURL, model, utterance, result.Reply, ttl)

	slog.Debug("reply", "raw", raw, "elapsed", result.Elapsed)

	result.Results = []Result{BuildResult(result.Reply, iconPath, e.clipboard)}
	return result
}
