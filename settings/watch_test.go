package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	asklet "github.com/Paranoid-AF/asklet"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewStore(nil)

	w, err := NewWatcher(store, path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	data := `{"base_url":"https://reloaded.example.com/v1","end_marker":"#","end_marker_enabled":true}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool {
		return store.Read().BaseURL == "https://reloaded.example.com/v1"
	})
	cfg := store.Read()
	if cfg.EndMarker != "#" || !cfg.EndMarkerEnabled {
		t.Errorf("unexpected reloaded config %+v", cfg)
	}
	if cfg.APIKey != asklet.Placeholder {
		t.Errorf("expected missing fields filled with defaults, got %q", cfg.APIKey)
	}
}

func TestWatcherKeepsConfigOnInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewStore(&asklet.Config{BaseURL: "https://keep"})

	w, err := NewWatcher(store, path)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	if got := store.Read().BaseURL; got != "https://keep" {
		t.Errorf("expected config to be kept, got %q", got)
	}
}
