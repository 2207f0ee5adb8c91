package cli

import (
	"context"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/service"
	"github.com/spf13/cobra"
)

func newBalanceCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Score how a day's time splits across categories",
		Long: `Sums the tracked minutes of a day per category and scores the split
against the target mix. Days with tracked time are saved to the history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day, err := parseDay(dateFlag, now)
			if err != nil {
				return err
			}
			b, err := app.Balance.AnalyzeDay(context.Background(), day)
			if err != nil {
				return err
			}
			printOut(cmd.OutOrStdout(), formatter.FormatBalance(b.Day, now, b.Result, len(b.Events)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day to score (YYYY-MM-DD, today, yesterday)")

	cmd.AddCommand(
		newBalanceSuggestCmd(app),
		newBalanceHistoryCmd(app),
	)

	return cmd
}

func newBalanceSuggestCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest how to rebalance a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day, err := parseDay(dateFlag, now)
			if err != nil {
				return err
			}

			var s *service.DaySuggestions
			err = withSpinner(cmd, app, "Thinking about your day...", func() error {
				s, err = app.Balance.Suggest(context.Background(), day)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printOut(out, formatter.FormatBalance(s.Balance.Day, now, s.Balance.Result, len(s.Balance.Events)))
			printOut(out, formatter.FormatSuggestions(s.Suggestions.Suggestions, s.Suggestions.Source))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day to rebalance (YYYY-MM-DD, today, tomorrow)")
	return cmd
}

func newBalanceHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show stored balance scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := app.Balance.History(context.Background(), days)
			if err != nil {
				return err
			}
			printOut(cmd.OutOrStdout(), formatter.FormatBalanceHistory(snapshots))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Number of days to include, ending today")
	return cmd
}
