package asklet

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	defaults "github.com/Paranoid-AF/asklet/default"
)

const (
	// Placeholder is stored for endpoint settings the host never provided.
	Placeholder = "null"
	// DefaultEndMarker is used whenever gating is on and no marker is set.
	DefaultEndMarker = "."
)

// Config represents the user's asklet configuration.
type Config struct {
	Version          int    `json:"version"`
	BaseURL          string `json:"base_url"`
	APIKey           string `json:"api_key"`
	Model            string `json:"model"`
	EndMarker        string `json:"end_marker"`
	EndMarkerEnabled bool   `json:"end_marker_enabled"`
	TimeoutSeconds   int    `json:"timeout_seconds,omitempty"`
	// CacheTTLSeconds enables the reply cache when positive.
	CacheTTLSeconds int `json:"cache_ttl_seconds,omitempty"`
}

// Marker returns the end marker, never empty.
func (c *Config) Marker() string {
	if c == nil || c.EndMarker == "" {
		return DefaultEndMarker
	}
	return c.EndMarker
}

// Timeout returns the HTTP timeout for chat requests.
func (c *Config) Timeout() time.Duration {
	if c == nil || c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long replies are cached. Zero disables the cache.
func (c *Config) CacheTTL() time.Duration {
	if c == nil || c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return DefaultConfig()
	}
	cp := *c
	return &cp
}

// ConfigDir returns the config directory path.
// Resolution order: $ASKLET_CONFIG_DIR > $XDG_CONFIG_HOME/asklet > ~/.config/asklet
func ConfigDir() string {
	if dir := os.Getenv("ASKLET_CONFIG_DIR"); dir != "" {
		return dir
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "asklet")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("/tmp", "asklet-config")
	}
	return filepath.Join(home, ".config", "asklet")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// PromptPath returns the path of the optional system prompt override.
func PromptPath() string {
	return filepath.Join(ConfigDir(), "prompt.md")
}

// DefaultConfig returns the default configuration from the embedded default_config.json.
func DefaultConfig() *Config {
	var cfg Config
	if err := json.Unmarshal(defaults.DefaultConfigJSON, &cfg); err != nil {
		panic("asklet: invalid embedded default_config.json: " + err.Error())
	}
	return &cfg
}

// LoadConfig loads config from disk or returns defaults if not found.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(ConfigPath())
}

// LoadConfigFile loads config from path, filling missing fields with defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = defaults.APIKey
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.EndMarker == "" {
		cfg.EndMarker = defaults.EndMarker
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}

	return &cfg, nil
}

// SaveConfig writes cfg to the config file, creating the directory if needed.
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	// The file holds the API key.
	return os.WriteFile(ConfigPath(), append(data, '\n'), 0o600)
}

// ValidateConfig checks configuration for potential issues and returns warnings.
// None of them is fatal: requests still go out and fail at the endpoint.
func ValidateConfig(cfg *Config) []string {
	var warnings []string
	if cfg == nil {
		return warnings
	}
	if isUnset(ResolveBaseURL(cfg)) {
		warnings = append(warnings, "base_url is not configured; requests will fail")
	}
	if isUnset(ResolveAPIKey(cfg)) {
		warnings = append(warnings, "api_key is not configured; the endpoint will likely reject requests")
	}
	if isUnset(ResolveModel(cfg)) {
		warnings = append(warnings, "model is not configured")
	}
	if cfg.EndMarkerEnabled && cfg.EndMarker == "" {
		warnings = append(warnings, "end marker is enabled but empty; falling back to \""+DefaultEndMarker+"\"")
	}
	return warnings
}

func isUnset(v string) bool {
	return v == "" || v == Placeholder
}

// ResolveBaseURL returns the chat API base URL.
// Priority: $ASKLET_BASE_URL env > config value.
func ResolveBaseURL(cfg *Config) string {
	if url := os.Getenv("ASKLET_BASE_URL"); url != "" {
		return url
	}
	if cfg != nil {
		return cfg.BaseURL
	}
	return ""
}

// ResolveAPIKey returns the chat API key.
// Priority: $ASKLET_API_KEY env > config value.
func ResolveAPIKey(cfg *Config) string {
	if key := os.Getenv("ASKLET_API_KEY"); key != "" {
		return key
	}
	if cfg != nil {
		return cfg.APIKey
	}
	return ""
}

// ResolveModel returns the chat model name.
// Priority: $ASKLET_MODEL env > config value.
func ResolveModel(cfg *Config) string {
	if model := os.Getenv("ASKLET_MODEL"); model != "" {
		return model
	}
	if cfg != nil {
		return cfg.Model
	}
	return ""
}
