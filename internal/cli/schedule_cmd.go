package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var (
		goals    []string
		prefs    preferenceFlags
		save     bool
		dateFlag string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate a balanced day schedule",
		Long: `Builds a day schedule around your goals and preferences. Your active
goals and today's events are included automatically. Without a configured
model an offline template schedule is produced.`,
		Example: `  lifeplan schedule --goal "learn Spanish" --work-hours 09:00-17:00
  lifeplan schedule --workout-time morning --save --date tomorrow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := app.now()
			day, err := parseDay(dateFlag, now)
			if err != nil {
				return err
			}

			req := intelligence.ScheduleRequest{
				Goals:       goals,
				Preferences: prefs.preferences(),
			}

			var plan domain.SchedulePlan
			err = withSpinner(cmd, app, "Building your schedule...", func() error {
				plan, err = app.Schedule.Generate(ctx, req)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printOut(out, formatter.FormatSchedulePlan(plan))

			if !save {
				return nil
			}
			events, err := app.Schedule.SaveForDate(ctx, plan, day)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %d event%s for %s.\n", len(events), plural(len(events)), formatter.DayLabel(day, now))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&goals, "goal", "g", nil, "Goal to make room for (repeatable)")
	prefs.register(cmd)
	cmd.Flags().BoolVar(&save, "save", false, "Store the schedule as events")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day to save the schedule on (YYYY-MM-DD, today, tomorrow)")

	return cmd
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
