// Command askctl is a command-line host for askletd.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Paranoid-AF/asklet/client"
)

var (
	socketPath string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "askctl",
	Short: "Talk to a running askletd",
	Long: `askctl sends queries and settings requests to askletd over its Unix socket,
the same way a launcher host does.`,
	SilenceUsage: true,
}

func newClient() *client.Client {
	c := client.New(socketPath)
	c.Timeout = timeout
	return c
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "askctl:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "daemon socket (default $ASKLET_SOCKET, $XDG_RUNTIME_DIR/asklet.sock)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "round-trip timeout")

	rootCmd.AddCommand(askCmd, settingsCmd, copyCmd, themeCmd)
}
