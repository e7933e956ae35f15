package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	asklet "github.com/Paranoid-AF/asklet"
)

// enabledSuffix addresses the checkbox of a checkbox_textbox option.
const enabledSuffix = ".enabled"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change daemon settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current settings (API key masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettings(cmd, "options", nil)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY=VALUE...",
	Short: "Change settings",
	Long: `Change one or more settings. Keys are OpenAIBaseURL, OpenAIAPIKey,
ModelName and EndCharacter; EndCharacter.enabled=true turns on gating.
Settings not named keep their current values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := newClient().Settings(cmd.Context(), "options", nil)
		if err != nil {
			return err
		}
		if current.Error != nil {
			return fmt.Errorf("%s: %s", current.Error.Code, current.Error.Message)
		}
		opts, err := applyAssignments(current.Options, args)
		if err != nil {
			return err
		}
		return runSettings(cmd, "update", opts)
	},
}

var settingsDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettings(cmd, "defaults", nil)
	},
}

var settingsReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload settings from the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettings(cmd, "reload", nil)
	},
}

var settingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the current settings for problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettings(cmd, "validate", nil)
	},
}

func runSettings(cmd *cobra.Command, action string, opts []asklet.Option) error {
	resp, err := newClient().Settings(cmd.Context(), action, opts)
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message)
	}
	printOptions(cmd.OutOrStdout(), resp.Options)
	for _, w := range resp.Warnings {
		fmt.Fprintln(cmd.OutOrStdout(), "warning:", w)
	}
	return nil
}

func printOptions(w io.Writer, opts []asklet.Option) {
	for _, opt := range opts {
		fmt.Fprintf(w, "%-14s = %s\n", opt.Key, opt.TextValue)
		if opt.Type == asklet.OptionCheckboxAndTextbox {
			fmt.Fprintf(w, "%-14s = %t\n", opt.Key+enabledSuffix, opt.Value)
		}
	}
}

// applyAssignments returns a copy of opts with KEY=VALUE assignments
// applied. Keys missing from opts are appended.
func applyAssignments(opts []asklet.Option, assignments []string) ([]asklet.Option, error) {
	out := append([]asklet.Option(nil), opts...)

	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected KEY=VALUE", a)
		}

		checkbox := false
		if base, found := strings.CutSuffix(key, enabledSuffix); found {
			if base != asklet.OptionEndMarker {
				return nil, fmt.Errorf("%s has no checkbox", base)
			}
			key, checkbox = base, true
		}
		if !knownKey(key) {
			return nil, fmt.Errorf("unknown setting %q", key)
		}

		i := indexOf(out, key)
		if i < 0 {
			out = append(out, asklet.Option{Key: key})
			i = len(out) - 1
		}
		if checkbox {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid value for %s: %w", key+enabledSuffix, err)
			}
			out[i].Value = b
		} else {
			out[i].TextValue = value
		}
	}
	return out, nil
}

func knownKey(key string) bool {
	switch key {
	case asklet.OptionBaseURL, asklet.OptionAPIKey, asklet.OptionModel, asklet.OptionEndMarker:
		return true
	}
	return false
}

func indexOf(opts []asklet.Option, key string) int {
	for i, opt := range opts {
		if opt.Key == key {
			return i
		}
	}
	return -1
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsDefaultsCmd, settingsReloadCmd, settingsValidateCmd)
}
