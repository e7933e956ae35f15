package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/term"

	"github.com/Paranoid-AF/asklet/generate"
)

// termWriter wraps a file and converts \n to \r\n when the file is a terminal
// (needed because raw mode disables the kernel's NL→CRNL translation).
// When the file is redirected, \n passes through unchanged.
func termWriter(f *os.File) io.Writer {
	if term.IsTerminal(int(f.Fd())) {
		return &crlfWriter{w: f}
	}
	return f
}

type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	replaced := bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
	_, err := c.w.Write(replaced)
	return len(p), err // report original length to caller
}

// entry is one query in the transcript.
type entry struct {
	Request requestEntry `toml:"request"`
	Gate    gateEntry    `toml:"gate"`
	Reply   *replyEntry  `toml:"reply,omitempty"`
	Error   *errorEntry  `toml:"error,omitempty"`
}

type requestEntry struct {
	Timestamp     time.Time `toml:"timestamp"`
	Search        string    `toml:"search"`
	ActionKeyword string    `toml:"action_keyword"`
	Deferred      bool      `toml:"deferred"`
}

type gateEntry struct {
	Triggered  bool   `toml:"triggered"`
	Suppressed string `toml:"suppressed,omitempty"`
	Utterance  string `toml:"utterance,omitempty"`
}

type replyEntry struct {
	Raw       string `toml:"raw"`
	Display   string `toml:"display"`
	Cached    bool   `toml:"cached"`
	ElapsedMS int64  `toml:"elapsed_ms"`
}

type errorEntry struct {
	Code      string `toml:"code"`
	Message   string `toml:"message"`
	ElapsedMS int64  `toml:"elapsed_ms"`
}

func newEntry(now time.Time, result *generate.QueryResult) entry {
	q := result.Query
	e := entry{
		Request: requestEntry{
			Timestamp:     now.Truncate(time.Second),
			Search:        q.Search,
			ActionKeyword: q.ActionKeyword,
			Deferred:      q.Deferred,
		},
		Gate: gateEntry{
			Triggered:  result.Suppressed == generate.SuppressNone,
			Suppressed: string(result.Suppressed),
			Utterance:  result.Utterance,
		},
	}

	switch {
	case result.Err != nil:
		e.Error = &errorEntry{
			Code:      generate.ErrorCode(result.Err),
			Message:   result.Err.Error(),
			ElapsedMS: result.Elapsed.Milliseconds(),
		}
	case result.Suppressed == generate.SuppressNone:
		e.Reply = &replyEntry{
			Raw:       result.RawReply,
			Display:   result.Reply,
			Cached:    result.Cached,
			ElapsedMS: result.Elapsed.Milliseconds(),
		}
	}
	return e
}

// writeEntry writes a single TOML-formatted entry to w.
func writeEntry(w io.Writer, result *generate.QueryResult) error {
	fmt.Fprintf(w, "# %s\n\n", strings.Repeat("═", 60))

	if err := toml.NewEncoder(w).Encode(newEntry(time.Now(), result)); err != nil {
		return fmt.Errorf("encode transcript entry: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}
