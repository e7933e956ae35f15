// Package client talks to a running askletd over its Unix socket.
package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	asklet "github.com/Paranoid-AF/asklet"
)

// DefaultTimeout bounds a whole round trip, including the chat request the
// daemon makes on our behalf.
const DefaultTimeout = 60 * time.Second

// ErrNoResponse is returned when the daemon closes the connection without
// answering, e.g. because the request was superseded by a newer one.
var ErrNoResponse = errors.New("no response from daemon")

// Client sends one request per connection, like the host does.
type Client struct {
	SocketPath string
	Timeout    time.Duration
}

// New creates a client for the socket at path. An empty path resolves the
// default socket.
func New(path string) *Client {
	if path == "" {
		path = asklet.SocketPath()
	}
	return &Client{SocketPath: path, Timeout: DefaultTimeout}
}

// Query sends a query request.
func (c *Client) Query(ctx context.Context, req *asklet.Request) (*asklet.Response, error) {
	var resp asklet.Response
	if err := c.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Activate asks the daemon to copy contextData.
func (c *Client) Activate(ctx context.Context, contextData string) (*asklet.ActivateResponse, error) {
	var resp asklet.ActivateResponse
	req := &asklet.ActivateRequest{Type: asklet.TypeActivate, ContextData: contextData}
	if err := c.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ContextMenu fetches the context menu for contextData.
func (c *Client) ContextMenu(ctx context.Context, contextData string) (*asklet.ContextMenuResponse, error) {
	var resp asklet.ContextMenuResponse
	req := &asklet.ContextMenuRequest{Type: asklet.TypeContextMenu, ContextData: contextData}
	if err := c.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Theme reports a theme change.
func (c *Client) Theme(ctx context.Context, theme string) (*asklet.ThemeResponse, error) {
	var resp asklet.ThemeResponse
	req := &asklet.ThemeRequest{Type: asklet.TypeTheme, Theme: theme}
	if err := c.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Settings runs a settings action.
func (c *Client) Settings(ctx context.Context, action string, opts []asklet.Option) (*asklet.SettingsResponse, error) {
	var resp asklet.SettingsResponse
	req := &asklet.SettingsRequest{Type: asklet.TypeSettings, Action: action, Options: opts}
	if err := c.call(ctx, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) call(ctx context.Context, req, resp any) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.SocketPath)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", c.SocketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}
	// Unblock the read when ctx is cancelled without a deadline.
	stop := context.AfterFunc(ctx, func() { conn.SetDeadline(time.Now()) })
	defer stop()

	data, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("send request: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read response: %w", err)
		}
		return ErrNoResponse
	}
	if err := json.Unmarshal(scanner.Bytes(), resp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
