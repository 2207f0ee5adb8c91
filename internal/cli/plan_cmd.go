package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/alexanderramin/lifeplan/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var (
		timeframe string
		prefs     preferenceFlags
	)

	cmd := &cobra.Command{
		Use:   "plan [GOAL]",
		Short: "Turn a goal into weekly milestones and daily sessions",
		Long: `Breaks a goal down into weekly milestones, daily tasks and a session
schedule, then stores the goal with its milestones and sessions.
Run without arguments in a terminal to answer a few questions instead.`,
		Example: `  lifeplan plan "learn to play guitar" --timeframe "3 months" --study-time "30 minutes"
  lifeplan plan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := intelligence.GoalPlanRequest{
				Description: strings.Join(args, " "),
				Timeframe:   timeframe,
				Preferences: prefs.preferences(),
			}

			if len(args) == 0 {
				if !app.interactive() {
					return errors.New("describe the goal, e.g. lifeplan plan \"run a 10k\"")
				}
				if req.Timeframe == "" {
					req.Timeframe = "1 month"
				}
				if err := planWizardForm(&req).Run(); err != nil {
					return err
				}
			}

			var result *service.GoalPlanResult
			err := withSpinner(cmd, app, "Planning your goal...", func() error {
				var err error
				result, err = app.Goals.CreatePlan(context.Background(), req)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printOut(out, formatter.FormatGoalPlan(result.Plan))
			fmt.Fprintf(out, "Saved goal %s with %d milestone%s and %d session%s.\n",
				formatter.TruncID(result.Goal.ID),
				len(result.SubGoals), plural(len(result.SubGoals)),
				len(result.Events), plural(len(result.Events)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&timeframe, "timeframe", "t", "", `How long to reach the goal, e.g. "6 weeks" (default 1 month)`)
	prefs.register(cmd)

	return cmd
}
