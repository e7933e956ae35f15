// Package plugin adapts the query engine to a launcher host's plugin
// lifecycle: init with icon metadata, theme changes, queries, settings and
// context menus.
package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	asklet "github.com/Paranoid-AF/asklet"
	"github.com/Paranoid-AF/asklet/generate"
)

// Theme is the host's current color theme.
type Theme string

// Host themes.
const (
	ThemeLight             Theme = "Light"
	ThemeDark              Theme = "Dark"
	ThemeHighContrastOne   Theme = "HighContrastOne"
	ThemeHighContrastTwo   Theme = "HighContrastTwo"
	ThemeHighContrastBlack Theme = "HighContrastBlack"
	ThemeHighContrastWhite Theme = "HighContrastWhite"
)

// light reports whether icons for light backgrounds should be used.
func (t Theme) light() bool {
	return t == ThemeLight || t == ThemeHighContrastWhite
}

// Metadata is what the host hands over at init.
type Metadata struct {
	IcoPathLight string `json:"ico_path_light"`
	IcoPathDark  string `json:"ico_path_dark"`
}

// Plugin is the host-facing surface of asklet.
type Plugin struct {
	engine *generate.Engine
	// persist writes settings updates to the config file.
	persist bool

	mu      sync.RWMutex
	meta    Metadata
	theme   Theme
	icon    string
}

// New creates a plugin around engine. When persist is set, settings
// updates are saved to the config file as well.
func New(engine *generate.Engine, persist bool) *Plugin {
	return &Plugin{engine: engine, persist: persist}
}

// Init records the host metadata and initial theme.
func (p *Plugin) Init(meta Metadata, theme Theme) {
	p.mu.Lock()
	p.meta = meta
	p.mu.Unlock()
	p.OnThemeChanged(theme)
}

// OnThemeChanged switches the icon used for new results.
func (p *Plugin) OnThemeChanged(theme Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.theme = theme
	if theme.light() {
		p.icon = p.meta.IcoPathLight
	} else {
		p.icon = p.meta.IcoPathDark
	}
	slog.Debug("theme changed", "theme", string(theme), "icon", p.icon)
}

// Theme returns the last theme the host reported.
func (p *Plugin) Theme() Theme {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// IconPath returns the icon for the current theme.
func (p *Plugin) IconPath() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.icon
}

// Query answers search if the gate lets it through. A failed round trip
// yields one degraded result describing the failure.
func (p *Plugin) Query(ctx context.Context, search, keyword string, deferred bool) []generate.Result {
	results, _ := p.QueryErr(ctx, search, keyword, deferred)
	return results
}

// QueryErr is like Query but also returns the round-trip error, if any.
func (p *Plugin) QueryErr(ctx context.Context, search, keyword string, deferred bool) ([]generate.Result, error) {
	icon := p.IconPath()
	q := generate.Query{Search: search, ActionKeyword: keyword, Deferred: deferred}
	results, err := p.engine.Query(ctx, q, icon)
	if err != nil {
		return []generate.Result{generate.BuildFailure(err, icon, p.engine.Clipboard())}, err
	}
	return results, nil
}

// UpdateSettings applies the host's option list and returns the new
// snapshot. Saving is best effort: the in-memory update always applies.
func (p *Plugin) UpdateSettings(opts []asklet.Option) *asklet.Config {
	cfg := p.engine.Store().Update(opts)
	if p.persist {
		if err := asklet.SaveConfig(cfg); err != nil {
			slog.Warn("failed to save settings", "error", err)
		}
	}
	return cfg
}

// AdditionalOptions lists the settings the host should display.
func (p *Plugin) AdditionalOptions() []asklet.Option {
	return p.engine.Store().Options()
}

// Reload replaces the settings with the config file's contents.
func (p *Plugin) Reload() error {
	cfg, err := asklet.LoadConfig()
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	p.engine.Store().Replace(cfg)
	slog.Info("settings reloaded", "path", asklet.ConfigPath())
	return nil
}

// Validate returns warnings about the current settings.
func (p *Plugin) Validate() []string {
	return asklet.ValidateConfig(p.engine.Store().Read())
}

// LoadContextMenus returns the context menu of the result carrying
// contextData.
func (p *Plugin) LoadContextMenus(contextData string) []generate.Result {
	return generate.ContextMenu(contextData, p.IconPath(), p.engine.Clipboard())
}

// Activate runs the copy action for contextData.
func (p *Plugin) Activate(contextData string) bool {
	return generate.CopyAction(contextData, p.engine.Clipboard())()
}

// Close releases the engine.
func (p *Plugin) Close() {
	p.engine.Close()
}
