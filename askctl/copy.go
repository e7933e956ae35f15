package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy [text...]",
	Short: "Copy text through the daemon's clipboard",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newClient().Activate(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		if !resp.OK {
			if resp.Error != nil {
				return fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message)
			}
			return fmt.Errorf("copy failed")
		}
		return nil
	},
}
