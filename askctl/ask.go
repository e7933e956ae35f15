package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	asklet "github.com/Paranoid-AF/asklet"
)

var (
	askKeyword   string
	askImmediate bool
	askSession   string
	askCopy      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question...]",
	Short: "Ask a question",
	Long: `Send a query as the deferred pass of a launcher host.

The keyword is prepended to the question, so with gating enabled the
question must end with the end marker, e.g.

  askctl ask "capital of France."`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		search := strings.Join(args, " ")
		if askKeyword != "" {
			search = askKeyword + " " + search
		}

		resp, err := newClient().Query(cmd.Context(), &asklet.Request{
			RequestID:     1,
			Search:        search,
			ActionKeyword: askKeyword,
			Deferred:      !askImmediate,
			SessionID:     askSession,
		})
		if err != nil {
			return err
		}
		if resp.Error != nil {
			return fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Message)
		}
		if len(resp.Results) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "(no answer: query was not complete)")
			return nil
		}

		answer := resp.Results[0].ContextData
		fmt.Fprintln(cmd.OutOrStdout(), answer)

		if askCopy {
			act, err := newClient().Activate(cmd.Context(), answer)
			if err != nil {
				return err
			}
			if !act.OK {
				return fmt.Errorf("copy failed")
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askKeyword, "keyword", "k", "ai", "action keyword; empty sends a global query")
	askCmd.Flags().BoolVar(&askImmediate, "immediate", false, "send as the immediate (non-deferred) pass")
	askCmd.Flags().StringVar(&askSession, "session", "askctl", "session id")
	askCmd.Flags().BoolVarP(&askCopy, "copy", "c", false, "copy the answer to the clipboard")
}
