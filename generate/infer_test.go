package generate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerateRequestShape(t *testing.T) {
	ep := newStubEndpoint(t, http.StatusOK, chatReply("pong"))
	gen := NewGenerator(ep.URL+"/", "sk-1234", "test-model", 5*time.Second)

	got, err := gen.Generate(context.Background(), "be brief", "ai ping")
	if err != nil {
		t.Fatal(err)
	}
	if got != "pong" {
		t.Errorf("expected %q, got %q", "pong", got)
	}

	reqs := ep.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	req := reqs[0]
	if req.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", req.Method)
	}
	if req.Path != "/chat/completions" {
		t.Errorf("expected /chat/completions, got %s", req.Path)
	}
	if req.Auth != "Bearer sk-1234" {
		t.Errorf("expected bearer auth, got %q", req.Auth)
	}
	if req.Body.Model != "test-model" {
		t.Errorf("expected model test-model, got %q", req.Body.Model)
	}
	if req.Body.Temperature != 0.9 {
		t.Errorf("expected temperature 0.9, got %v", req.Body.Temperature)
	}
	if req.Body.ResponseFormat == nil || req.Body.ResponseFormat.Type != "text" {
		t.Errorf("expected text response format, got %+v", req.Body.ResponseFormat)
	}
	if len(req.Body.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(req.Body.Messages))
	}
	if m := req.Body.Messages[0]; m.Role != "system" || m.Content != "be brief" {
		t.Errorf("unexpected system message %+v", m)
	}
	if m := req.Body.Messages[1]; m.Role != "user" || m.Content != "ai ping" {
		t.Errorf("unexpected user message %+v", m)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error with api body", http.StatusInternalServerError, `{"error":{"message":"boom","type":"server_error"}}`, ErrTransport},
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"bad key","type":"invalid_request_error"}}`, ErrTransport},
		{"bad gateway html", http.StatusBadGateway, `<html>bad gateway</html>`, ErrTransport},
		{"bad gateway empty body", http.StatusBadGateway, ``, ErrTransport},
		{"unavailable empty body", http.StatusServiceUnavailable, ``, ErrTransport},
		{"unavailable truncated json", http.StatusServiceUnavailable, `{"error":`, ErrTransport},
		{"malformed json", http.StatusOK, `not json`, ErrParse},
		{"truncated json", http.StatusOK, `{"choices":[`, ErrParse},
		{"empty body", http.StatusOK, ``, ErrParse},
		{"no choices", http.StatusOK, `{"choices":[]}`, ErrParse},
		{"missing choices", http.StatusOK, `{"id":"x"}`, ErrParse},
		{"missing content", http.StatusOK, `{"choices":[{"message":{"role":"assistant"}}]}`, ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep := newStubEndpoint(t, tt.status, tt.body)
			gen := NewGenerator(ep.URL, "k", "m", 5*time.Second)

			got, err := gen.Generate(context.Background(), "sys", "user")
			if err == nil {
				t.Fatalf("expected error, got reply %q", got)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if got != "" {
				t.Errorf("expected empty reply on error, got %q", got)
			}
		})
	}
}

func TestGenerateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	gen := NewGenerator(url, "k", "m", 2*time.Second)
	_, err := gen.Generate(context.Background(), "sys", "user")
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
	if ErrorCode(err) != "api_error" {
		t.Errorf("expected api_error code, got %q", ErrorCode(err))
	}
}

func TestGeneratePlaceholderBaseURL(t *testing.T) {
	gen := NewGenerator("null", "null", "null", 2*time.Second)
	_, err := gen.Generate(context.Background(), "sys", "user")
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected transport error for placeholder config, got %v", err)
	}
}

func TestGenerateTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	gen := NewGenerator(srv.URL, "k", "m", 50*time.Millisecond)
	_, err := gen.Generate(context.Background(), "sys", "user")
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected transport error on timeout, got %v", err)
	}
}

func TestGenerateCancelled(t *testing.T) {
	ep := newStubEndpoint(t, http.StatusOK, chatReply("late"))
	gen := NewGenerator(ep.URL, "k", "m", 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gen.Generate(ctx, "sys", "user")
	if !errors.Is(err, ErrTransport) {
		t.Errorf("expected transport error for cancelled context, got %v", err)
	}
}

func TestErrorCode(t *testing.T) {
	if got := ErrorCode(classifyError(errors.New("dial tcp: refused"))); got != "api_error" {
		t.Errorf("expected api_error, got %q", got)
	}
	if got := ErrorCode(errors.Join(ErrParse)); got != "parse_error" {
		t.Errorf("expected parse_error, got %q", got)
	}
}
