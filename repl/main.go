// Command asklet-repl is an interactive test REPL for asklet queries.
// The gate is evaluated on every keystroke, the way a launcher's immediate
// pass would, and Enter runs the deferred pass. Structured TOML results are
// written to stdout.
//
// Usage:
//
//	./asklet-repl             # interactive, TOML on screen
//	./asklet-repl > log.toml  # prompt on screen, TOML to file
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	asklet "github.com/Paranoid-AF/asklet"
	"github.com/Paranoid-AF/asklet/generate"
	"github.com/Paranoid-AF/asklet/settings"
)

const prompt = "> "

func main() {
	keyword := flag.String("keyword", "ai", "action keyword; queries without it are global")
	verbose := flag.Bool("verbose", false, "log debug output to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := asklet.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	store := settings.NewStore(cfg)

	engine := generate.NewEngine(store, nil)
	defer engine.Close()

	editor, err := NewEditor()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer editor.Close()

	tty := editor.Tty()
	kw := *keyword

	editor.Hint = func(text string) string {
		return gateHint(generate.Query{Search: text, ActionKeyword: keywordOf(text, kw)}, store.Read())
	}

	fmt.Fprintf(tty, "\033[2J\033[H") // clear screen
	fmt.Fprintf(tty, "asklet repl\r\n")
	fmt.Fprintf(tty, "model: %s  endpoint: %s\r\n", asklet.ResolveModel(cfg), asklet.ResolveBaseURL(cfg))
	if cfg.EndMarkerEnabled {
		fmt.Fprintf(tty, "end marker: %q\r\n", cfg.Marker())
	}
	for _, w := range asklet.ValidateConfig(cfg) {
		fmt.Fprintf(tty, "warning: %s\r\n", w)
	}
	fmt.Fprintf(tty, "\r\ncommands:\r\n")
	fmt.Fprintf(tty, "  :keyword <kw>  set the action keyword (empty: none)\r\n")
	fmt.Fprintf(tty, "  :copy          copy the last answer\r\n")
	fmt.Fprintf(tty, "  :settings      show settings\r\n")
	fmt.Fprintf(tty, "  :quit          exit\r\n\r\n")

	// stdout writer: converts \n → \r\n when stdout is a terminal (raw mode),
	// passes \n through unchanged when redirected to a file.
	out := termWriter(os.Stdout)

	var last []generate.Result

	for {
		text, err := editor.ReadLine(prompt)
		if err == io.EOF || err == ErrInterrupt {
			break
		}
		if err != nil {
			fmt.Fprintf(tty, "read error: %v\r\n", err)
			break
		}

		if text == "" {
			continue
		}

		if text == ":quit" || text == ":q" {
			break
		}

		if text == ":keyword" || strings.HasPrefix(text, ":keyword ") {
			kw = strings.TrimSpace(strings.TrimPrefix(text, ":keyword"))
			fmt.Fprintf(tty, "keyword: %q\r\n\r\n", kw)
			continue
		}

		if text == ":copy" {
			if len(last) == 0 {
				fmt.Fprintf(tty, "nothing to copy\r\n\r\n")
			} else if last[0].Action() {
				fmt.Fprintf(tty, "copied\r\n\r\n")
			}
			continue
		}

		if text == ":settings" {
			for _, opt := range store.Options() {
				fmt.Fprintf(tty, "  %-14s %s\r\n", opt.Key, opt.TextValue)
			}
			fmt.Fprintf(tty, "\r\n")
			continue
		}

		q := generate.Query{Search: text, ActionKeyword: keywordOf(text, kw), Deferred: true}
		result := engine.QueryVerbose(context.Background(), q, "")

		// Show brief summary on tty.
		switch {
		case result.Err != nil:
			fmt.Fprintf(tty, "error [%s]: %s\r\n", generate.ErrorCode(result.Err), result.Err)
		case result.Suppressed != generate.SuppressNone:
			fmt.Fprintf(tty, "(suppressed: %s)\r\n", result.Suppressed)
		default:
			last = result.Results
			for _, line := range strings.Split(result.Reply, "\n") {
				fmt.Fprintf(tty, "  %s\r\n", line)
			}
			if result.Cached {
				fmt.Fprintf(tty, "  (cached)\r\n")
			}
		}
		fmt.Fprintf(tty, "\r\n")

		// TOML output to stdout (crlfWriter handles raw mode).
		if err := writeEntry(out, result); err != nil {
			slog.Warn("failed to write transcript", "error", err)
		}
	}
}

// keywordOf returns kw when text is scoped to it, as a launcher does for
// "kw question" input, and "" for a global query.
func keywordOf(text, kw string) string {
	if kw != "" && strings.HasPrefix(text, kw+" ") {
		return kw
	}
	return ""
}

// gateHint describes what the deferred pass would do with q.
func gateHint(q generate.Query, cfg *asklet.Config) string {
	q.Deferred = true
	switch generate.Check(q, cfg) {
	case generate.SuppressNone:
		return "⏎ ask"
	case generate.SuppressEmpty:
		return ""
	case generate.SuppressGlobal:
		return "no keyword"
	case generate.SuppressNoMarker:
		return fmt.Sprintf("end with %q to ask", cfg.Marker())
	}
	return ""
}
