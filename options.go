package asklet

import "strings"

// Option keys understood by UpdateSettings. They match the keys the host's
// settings panel stores.
const (
	OptionBaseURL   = "OpenAIBaseURL"
	OptionAPIKey    = "OpenAIAPIKey"
	OptionModel     = "ModelName"
	OptionEndMarker = "EndCharacter"
)

// Option control types.
const (
	OptionTextbox            = "textbox"
	OptionCheckboxAndTextbox = "checkbox_textbox"
)

// Option is one key/value entry of the host's settings panel.
type Option struct {
	Key                string `json:"key"`
	DisplayLabel       string `json:"display_label,omitempty"`
	DisplayDescription string `json:"display_description,omitempty"`
	Type               string `json:"type,omitempty"`
	TextValue          string `json:"text_value"`
	// Value is the checkbox state for checkbox_textbox options.
	Value bool `json:"value,omitempty"`
}

// ConfigOptions lists cfg as host-facing options. When mask is set the API
// key is replaced by MaskSecret.
func ConfigOptions(cfg *Config, mask bool) []Option {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	apiKey := cfg.APIKey
	if mask {
		apiKey = MaskSecret(apiKey)
	}
	return []Option{
		{
			Key:                OptionBaseURL,
			DisplayLabel:       "OpenAI base URL",
			DisplayDescription: "Your OpenAI-compatible base URL, e.g. https://api.openai.com/v1",
			Type:               OptionTextbox,
			TextValue:          cfg.BaseURL,
		},
		{
			Key:                OptionAPIKey,
			DisplayLabel:       "OpenAI API key",
			DisplayDescription: "Your OpenAI API key",
			Type:               OptionTextbox,
			TextValue:          apiKey,
		},
		{
			Key:                OptionModel,
			DisplayLabel:       "Model name",
			DisplayDescription: "Model to chat with",
			Type:               OptionTextbox,
			TextValue:          cfg.Model,
		},
		{
			Key:                OptionEndMarker,
			DisplayLabel:       "End character",
			DisplayDescription: "Only answer after you type the end character. Period by default.",
			Type:               OptionCheckboxAndTextbox,
			TextValue:          cfg.EndMarker,
			Value:              cfg.EndMarkerEnabled,
		},
	}
}

// ApplyOptions builds a new config from opts. Settings that are not host
// options (timeouts, cache) are carried over from current. Missing or empty
// entries fall back to Placeholder, DefaultEndMarker and gating off.
//
// An API key equal to the masked form of current's key is treated as
// "unchanged", so feeding ConfigOptions(cfg, true) back is a no-op.
func ApplyOptions(current *Config, opts []Option) *Config {
	next := current.Clone()

	next.BaseURL = optionText(opts, OptionBaseURL, Placeholder)
	next.Model = optionText(opts, OptionModel, Placeholder)
	next.EndMarker = optionText(opts, OptionEndMarker, DefaultEndMarker)
	next.EndMarkerEnabled = false
	if opt, ok := findOption(opts, OptionEndMarker); ok {
		next.EndMarkerEnabled = opt.Value
	}

	apiKey := optionText(opts, OptionAPIKey, Placeholder)
	if current != nil && apiKey != current.APIKey && apiKey == MaskSecret(current.APIKey) {
		apiKey = current.APIKey
	}
	next.APIKey = apiKey

	return next
}

func findOption(opts []Option, key string) (Option, bool) {
	for _, opt := range opts {
		if opt.Key == key {
			return opt, true
		}
	}
	return Option{}, false
}

func optionText(opts []Option, key, fallback string) string {
	opt, ok := findOption(opts, key)
	if !ok || opt.TextValue == "" {
		return fallback
	}
	return opt.TextValue
}

// MaskSecret hides all but the first three characters of a secret.
// Empty and placeholder values are returned as-is.
func MaskSecret(s string) string {
	if s == "" || s == Placeholder {
		return s
	}
	r := []rune(s)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:3]) + strings.Repeat("*", len(r)-3)
}
