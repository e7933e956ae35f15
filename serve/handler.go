package main

import (
	"context"

	asklet "github.com/Paranoid-AF/asklet"
	"github.com/Paranoid-AF/asklet/generate"
	"github.com/Paranoid-AF/asklet/plugin"
)

// pluginHandler serves socket requests with a plugin.
type pluginHandler struct {
	plugin *plugin.Plugin
}

func newPluginHandler(p *plugin.Plugin) *pluginHandler {
	return &pluginHandler{plugin: p}
}

func (h *pluginHandler) Query(ctx context.Context, req *asklet.Request) *asklet.Response {
	results, err := h.plugin.QueryErr(ctx, req.Search, req.ActionKeyword, req.Deferred)
	resp := &asklet.Response{Results: generate.WireResults(results)}
	if err != nil {
		resp.Error = &asklet.Error{Code: generate.ErrorCode(err), Message: err.Error()}
	}
	return resp
}

func (h *pluginHandler) Activate(contextData string) *asklet.ActivateResponse {
	if h.plugin.Activate(contextData) {
		return &asklet.ActivateResponse{OK: true}
	}
	return &asklet.ActivateResponse{
		Error: &asklet.Error{Code: "clipboard_error", Message: "failed to copy to clipboard"},
	}
}

func (h *pluginHandler) ContextMenu(contextData string) *asklet.ContextMenuResponse {
	return &asklet.ContextMenuResponse{
		Results: generate.WireResults(h.plugin.LoadContextMenus(contextData)),
	}
}

func (h *pluginHandler) Theme(theme string) *asklet.ThemeResponse {
	if theme == "" {
		return &asklet.ThemeResponse{
			Error: &asklet.Error{Code: "invalid_request", Message: "theme is required"},
		}
	}
	h.plugin.OnThemeChanged(plugin.Theme(theme))
	return &asklet.ThemeResponse{OK: true}
}

func (h *pluginHandler) Settings(req *asklet.SettingsRequest) *asklet.SettingsResponse {
	var resp asklet.SettingsResponse

	switch req.Action {
	case "options":
		resp.Options = h.plugin.AdditionalOptions()

	case "update":
		h.plugin.UpdateSettings(req.Options)
		resp.Options = h.plugin.AdditionalOptions()

	case "defaults":
		resp.Options = asklet.ConfigOptions(asklet.DefaultConfig(), true)

	case "reload":
		if err := h.plugin.Reload(); err != nil {
			resp.Error = &asklet.Error{Code: "config_error", Message: err.Error()}
			break
		}
		resp.Options = h.plugin.AdditionalOptions()

	case "validate":
		resp.Warnings = h.plugin.Validate()

	default:
		resp.Error = &asklet.Error{
			Code:    "unknown_action",
			Message: "unknown settings action: " + req.Action,
		}
	}

	return &resp
}

func (h *pluginHandler) Close() {
	h.plugin.Close()
}
