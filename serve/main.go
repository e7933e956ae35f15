// Command askletd is the asklet daemon.
// It listens on a Unix domain socket for queries from a launcher host,
// forwards complete queries to the configured chat endpoint, and returns
// the answer as a copyable result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	asklet "github.com/Paranoid-AF/asklet"
	"github.com/Paranoid-AF/asklet/generate"
	"github.com/Paranoid-AF/asklet/plugin"
	"github.com/Paranoid-AF/asklet/settings"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	verbose := flag.Bool("verbose", false, "log every request and response")
	persist := flag.Bool("persist", true, "save settings updates to the config file")
	iconLight := flag.String("icon-light", "Images/asklet.light.png", "icon shown on light themes")
	iconDark := flag.String("icon-dark", "Images/asklet.dark.png", "icon shown on dark themes")
	theme := flag.String("theme", string(plugin.ThemeDark), "initial host theme")
	flag.Parse()

	if *showVersion {
		fmt.Println("askletd", Version)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := asklet.LoadConfig()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "path", asklet.ConfigPath(), "error", err)
		cfg = asklet.DefaultConfig()
	}
	for _, w := range asklet.ValidateConfig(cfg) {
		slog.Warn("config", "warning", w)
	}

	store := settings.NewStore(cfg)
	p := plugin.New(generate.NewEngine(store, nil), *persist)
	p.Init(plugin.Metadata{IcoPathLight: *iconLight, IcoPathDark: *iconDark}, plugin.Theme(*theme))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	watcher, err := settings.NewWatcher(store, asklet.ConfigPath())
	if err != nil {
		slog.Warn("config watcher disabled", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	socketPath := asklet.SocketPath()

	slog.Info("starting", "socket", socketPath)

	srv, err := NewServer(socketPath, newPluginHandler(p))
	if err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("shutting down")
		stop()
		srv.Close()
		os.Exit(0)
	}()

	slog.Info("ready")
	if err := srv.Serve(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
