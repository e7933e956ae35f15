package main

import (
	"bufio"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"os"
	"sync"

	asklet "github.com/Paranoid-AF/asklet"
)

// Handler serves the requests the daemon understands.
type Handler interface {
	Query(ctx context.Context, req *asklet.Request) *asklet.Response
	Activate(contextData string) *asklet.ActivateResponse
	ContextMenu(contextData string) *asklet.ContextMenuResponse
	Theme(theme string) *asklet.ThemeResponse
	Settings(req *asklet.SettingsRequest) *asklet.SettingsResponse
	Close()
}

// sessionEntry tracks a cancellable in-flight request for a session.
type sessionEntry struct {
	requestID int
	cancel    context.CancelFunc
}

// Server listens on a Unix domain socket for host requests.
type Server struct {
	listener net.Listener
	sockPath string
	handler  Handler

	mu       sync.Mutex
	sessions map[string]sessionEntry
}

// envelope peeks at the request type.
type envelope struct {
	Type string `json:"type"`
}

// NewServer creates a new IPC server bound to the given socket path.
func NewServer(sockPath string, handler Handler) (*Server, error) {
	// Remove stale socket file if it exists
	if err := os.Remove(sockPath); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	listener, err := net.Listen("unix", sockPath)
	if err != nil {
		return nil, err
	}

	return &Server{
		listener: listener,
		sockPath: sockPath,
		handler:  handler,
		sessions: make(map[string]sessionEntry),
	}, nil
}

// Serve accepts connections and handles requests.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

// Close shuts down the server and handler, and removes the socket file.
func (s *Server) Close() {
	s.handler.Close()
	s.listener.Close()
	os.Remove(s.sockPath)
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		return
	}

	raw := scanner.Bytes()
	slog.Debug("request", "data", string(raw))

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		slog.Warn("invalid request", "error", err)
		return
	}

	switch env.Type {
	case "", asklet.TypeQuery:
		var req asklet.Request
		if err := json.Unmarshal(raw, &req); err != nil {
			slog.Warn("invalid query request", "error", err)
			return
		}
		s.handleQuery(conn, &req)

	case asklet.TypeActivate:
		var req asklet.ActivateRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			slog.Warn("invalid activate request", "error", err)
			return
		}
		writeJSON(conn, s.handler.Activate(req.ContextData))

	case asklet.TypeContextMenu:
		var req asklet.ContextMenuRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			slog.Warn("invalid context menu request", "error", err)
			return
		}
		writeJSON(conn, s.handler.ContextMenu(req.ContextData))

	case asklet.TypeTheme:
		var req asklet.ThemeRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			slog.Warn("invalid theme request", "error", err)
			return
		}
		writeJSON(conn, s.handler.Theme(req.Theme))

	case asklet.TypeSettings:
		var req asklet.SettingsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			slog.Warn("invalid settings request", "error", err)
			return
		}
		writeJSON(conn, s.handler.Settings(&req))

	default:
		slog.Warn("unknown request type", "type", env.Type)
		writeJSON(conn, &asklet.Response{
			Results: []asklet.Result{},
			Error:   &asklet.Error{Code: "invalid_request", Message: "unknown request type: " + env.Type},
		})
	}
}

func (s *Server) handleQuery(conn net.Conn, req *asklet.Request) {
	// Cancel any in-flight request for this session and create a new context.
	ctx, cancel := context.WithCancel(context.Background())
	sid := req.SessionID
	reqID := req.RequestID
	if sid != "" {
		s.mu.Lock()
		if prev, ok := s.sessions[sid]; ok {
			prev.cancel()
		}
		s.sessions[sid] = sessionEntry{requestID: reqID, cancel: cancel}
		s.mu.Unlock()
	}
	defer func() {
		cancel()
		if sid != "" {
			s.mu.Lock()
			if cur, ok := s.sessions[sid]; ok && cur.requestID == reqID {
				delete(s.sessions, sid)
			}
			s.mu.Unlock()
		}
	}()

	resp := s.handler.Query(ctx, req)

	// Superseded: the host has already moved on.
	if ctx.Err() != nil {
		return
	}

	resp.RequestID = req.RequestID
	if resp.Results == nil {
		resp.Results = []asklet.Result{}
	}
	writeJSON(conn, resp)
}

func writeJSON(conn net.Conn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal response", "error", err)
		return
	}

	slog.Debug("response", "data", string(data))

	conn.Write(append(data, '\n'))
}
