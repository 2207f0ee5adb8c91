package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Manage stored goals",
	}

	cmd.AddCommand(
		newGoalListCmd(app),
		newGoalShowCmd(app),
		newGoalStatusCmd(app, "done", "Mark a goal as completed", domain.GoalCompleted),
		newGoalStatusCmd(app, "abandon", "Mark a goal as abandoned", domain.GoalAbandoned),
		newGoalCheckCmd(app),
		newGoalRemoveCmd(app),
	)

	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st := domain.GoalStatus(status)
			if st != "" && !st.IsValid() {
				return fmt.Errorf("invalid status %q: use active, completed or abandoned", status)
			}
			goals, err := app.Goals.List(context.Background(), st)
			if err != nil {
				return err
			}
			printOut(cmd.OutOrStdout(), formatter.FormatGoalList(goals, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Only goals with this status (active, completed, abandoned)")
	return cmd
}

func newGoalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a goal with its milestones and next sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			d, err := app.Goals.Get(ctx, id)
			if err != nil {
				return err
			}
			printOut(cmd.OutOrStdout(), formatter.FormatGoalDetail(d.Goal, d.SubGoals, d.Events, app.now()))
			return nil
		},
	}
}

func newGoalStatusCmd(app *App, use, short string, status domain.GoalStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Goals.SetStatus(ctx, id, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal %s is now %s.\n", formatter.TruncID(id), status)
			return nil
		},
	}
}

func newGoalCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check ID WEEK",
		Short: "Mark the milestone of a week as done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			week, err := strconv.Atoi(args[1])
			if err != nil || week < 1 {
				return fmt.Errorf("invalid week %q: use a number from 1", args[1])
			}
			id, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			d, err := app.Goals.Get(ctx, id)
			if err != nil {
				return err
			}
			for _, sg := range d.SubGoals {
				if sg.WeekIndex != week {
					continue
				}
				if err := app.Goals.CompleteMilestone(ctx, sg.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Milestone %q done.\n", sg.Title)
				return nil
			}
			return fmt.Errorf("goal %s has no milestone for week %d", formatter.TruncID(id), week)
		},
	}
}

func newGoalRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a goal with its milestones and sessions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveGoalID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Goals.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed goal %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
