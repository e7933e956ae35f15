package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"testing"
	"time"

	asklet "github.com/Paranoid-AF/asklet"
)

var testSocketCounter atomic.Int64

// fakeDaemon answers each connection with reply(requestLine). A nil reply
// closes the connection without answering.
func fakeDaemon(t *testing.T, reply func(line []byte) any) string {
	t.Helper()
	n := testSocketCounter.Add(1)
	sockPath := fmt.Sprintf("/tmp/asklet-c%d-%d.sock", os.Getpid(), n)
	os.Remove(sockPath)
	ln, err := net.Listen("unix", sockPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		ln.Close()
		os.Remove(sockPath)
	})

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				if !scanner.Scan() {
					return
				}
				v := reply(scanner.Bytes())
				if v == nil {
					return
				}
				data, _ := json.Marshal(v)
				conn.Write(append(data, '\n'))
			}()
		}
	}()
	return sockPath
}

func TestQueryRoundTrip(t *testing.T) {
	sock := fakeDaemon(t, func(line []byte) any {
		var req asklet.Request
		if err := json.Unmarshal(line, &req); err != nil {
			t.Errorf("invalid request: %v", err)
		}
		return &asklet.Response{
			RequestID: req.RequestID,
			Results:   []asklet.Result{{Title: "Click to copy the answer", SubTitle: "echo " + req.Search}},
		}
	})

	resp, err := New(sock).Query(context.Background(), &asklet.Request{RequestID: 4, Search: "ai hi."})
	if err != nil {
		t.Fatal(err)
	}
	if resp.RequestID != 4 {
		t.Errorf("expected request_id 4, got %d", resp.RequestID)
	}
	if len(resp.Results) != 1 || resp.Results[0].SubTitle != "echo ai hi." {
		t.Errorf("unexpected results %+v", resp.Results)
	}
}

func TestTypedRequests(t *testing.T) {
	var got atomic.Value
	sock := fakeDaemon(t, func(line []byte) any {
		got.Store(string(line))
		var env struct {
			Type   string `json:"type"`
			Action string `json:"action"`
		}
		json.Unmarshal(line, &env)
		switch env.Type {
		case asklet.TypeActivate, asklet.TypeTheme:
			return map[string]bool{"ok": true}
		case asklet.TypeContextMenu:
			return &asklet.ContextMenuResponse{Results: []asklet.Result{{Title: "Copy (Enter)"}}}
		case asklet.TypeSettings:
			return &asklet.SettingsResponse{Warnings: []string{env.Action}}
		}
		return nil
	})
	c := New(sock)
	ctx := context.Background()

	act, err := c.Activate(ctx, "Paris")
	if err != nil || !act.OK {
		t.Errorf("activate: ok=%v err=%v", act != nil && act.OK, err)
	}
	if s := got.Load().(string); s != `{"type":"activate","context_data":"Paris"}` {
		t.Errorf("unexpected activate payload %s", s)
	}

	menu, err := c.ContextMenu(ctx, "Paris")
	if err != nil || len(menu.Results) != 1 {
		t.Errorf("context menu: %+v %v", menu, err)
	}

	theme, err := c.Theme(ctx, "Light")
	if err != nil || !theme.OK {
		t.Errorf("theme: %+v %v", theme, err)
	}

	settings, err := c.Settings(ctx, "validate", nil)
	if err != nil || len(settings.Warnings) != 1 || settings.Warnings[0] != "validate" {
		t.Errorf("settings: %+v %v", settings, err)
	}
}

func TestNoResponse(t *testing.T) {
	sock := fakeDaemon(t, func([]byte) any { return nil })

	_, err := New(sock).Query(context.Background(), &asklet.Request{RequestID: 1})
	if !errors.Is(err, ErrNoResponse) {
		t.Errorf("expected ErrNoResponse, got %v", err)
	}
}

func TestTimeout(t *testing.T) {
	sock := fakeDaemon(t, func([]byte) any {
		time.Sleep(time.Second)
		return nil
	})

	c := New(sock)
	c.Timeout = 50 * time.Millisecond
	start := time.Now()
	_, err := c.Query(context.Background(), &asklet.Request{RequestID: 1})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("expected timeout to cut the call short, took %v", elapsed)
	}
}

func TestDaemonNotRunning(t *testing.T) {
	_, err := New("/tmp/asklet-does-not-exist.sock").Query(context.Background(), &asklet.Request{})
	if err == nil {
		t.Fatal("expected connect error")
	}
}

func TestNewResolvesDefaultSocket(t *testing.T) {
	t.Setenv("ASKLET_SOCKET", "/custom/asklet.sock")
	if got := New("").SocketPath; got != "/custom/asklet.sock" {
		t.Errorf("expected /custom/asklet.sock, got %s", got)
	}
}
