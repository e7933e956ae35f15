package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme [Light|Dark|HighContrastOne|HighContrastTwo|HighContrastBlack|HighContrastWhite]",
	Short: "Report a host theme change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().Theme(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !resp.OK && resp.Error != nil {
			return fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message)
		}
		return nil
	},
}
