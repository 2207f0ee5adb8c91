package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	var (
		history bool
		forget  bool
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "chat [MESSAGE]",
		Short: "Talk to your planning assistant",
		Long: `Sends a message to the assistant, which knows your active goals and the
last few turns of the conversation. Run without a message in a terminal for
an interactive session.`,
		Example: `  lifeplan chat "how do I fit reading into a busy week?"
  lifeplan chat --history`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			switch {
			case forget:
				if err := app.Chat.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "Conversation cleared.")
				return nil
			case history:
				messages, err := app.Chat.History(ctx, limit)
				if err != nil {
					return err
				}
				printOut(out, formatter.FormatChatHistory(messages))
				return nil
			}

			if len(args) == 0 {
				if !app.interactive() {
					return errors.New("a message is required when not running in a terminal")
				}
				_, err := tea.NewProgram(newChatView(app)).Run()
				return err
			}

			var reply domain.ChatReply
			err := withSpinner(cmd, app, "Thinking...", func() error {
				var err error
				reply, err = app.Chat.Reply(ctx, strings.Join(args, " "))
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatter.FormatChatReply(reply))
			return nil
		},
	}

	cmd.Flags().BoolVar(&history, "history", false, "Show the stored conversation")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of messages shown with --history")
	cmd.Flags().BoolVar(&forget, "clear", false, "Forget the stored conversation")
	cmd.MarkFlagsMutuallyExclusive("history", "clear")

	return cmd
}
