package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/alexanderramin/lifeplan/internal/service"
	"github.com/spf13/cobra"
)

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"events", "ev"},
		Short:   "Track calendar events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventListCmd(app),
		newEventRemoveCmd(app),
		newEventParseCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var (
		category             domain.Category
		dateFlag, start, end string
		description          string
		minutes              int
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an event",
		Example: `  lifeplan event add "Morning run" -c health --start 07:00 --end 07:45
  lifeplan event add Standup -c work --start 09:30 --minutes 15 --date tomorrow`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(dateFlag, app.now())
			if err != nil {
				return err
			}
			startAt, err := atClock(day, start)
			if err != nil {
				return err
			}

			var endAt time.Time
			switch {
			case end != "":
				if endAt, err = atClock(day, end); err != nil {
					return err
				}
			case minutes > 0:
				endAt = startAt.Add(time.Duration(minutes) * time.Minute)
			default:
				return errors.New("either --end or --minutes is required")
			}

			e := &domain.Event{
				Title:       strings.Join(args, " "),
				Description: description,
				Category:    category,
				StartTime:   startAt,
				EndTime:     endAt,
			}
			if err := app.Events.Create(context.Background(), e); err != nil {
				return err
			}
			printOut(cmd.OutOrStdout(), formatter.FormatEventCreated(e))
			return nil
		},
	}

	addCategoryFlag(cmd, &category, domain.CategoryWork, "Event category")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day of the event (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Duration in minutes, instead of --end")
	cmd.Flags().StringVar(&description, "description", "", "Optional notes")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("end", "minutes")

	return cmd
}

func newEventListCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the events of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			day, err := parseDay(dateFlag, now)
			if err != nil {
				return err
			}
			events, err := app.Events.ListDay(context.Background(), day)
			if err != nil {
				return err
			}
			printOut(cmd.OutOrStdout(), formatter.FormatEventList(day, now, events))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day to list (YYYY-MM-DD, today, tomorrow)")
	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove an event by ID or ID prefix",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day, err := parseDay(dateFlag, app.now())
			if err != nil {
				return err
			}
			events, err := app.Events.ListDay(ctx, day)
			if err != nil {
				return err
			}
			id, err := resolveEventID(args[0], events)
			if err != nil {
				// A full ID may belong to another day.
				if len(args[0]) < 36 {
					return err
				}
				id = args[0]
			}
			if err := app.Events.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed event %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day the event is on, for ID prefixes")
	return cmd
}

func newEventParseCmd(app *App) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "parse MESSAGE",
		Short: "Turn a sentence into an event",
		Example: `  lifeplan event parse "dinner with Sam friday at 7pm"
  lifeplan event parse "gym tomorrow 6:30-7:30" --save`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			var (
				parsed *service.ParsedEvent
				err    error
			)
			err = withSpinner(cmd, app, "Reading your event...", func() error {
				parsed, err = app.Chat.ParseEvent(context.Background(), message, save)
				return err
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printOut(out, formatter.FormatEventDraft(parsed.Draft))
			if parsed.Event != nil {
				printOut(out, formatter.FormatEventCreated(parsed.Event))
			} else {
				fmt.Fprintln(out, formatter.Dim("Not saved. Re-run with --save to add it."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Store the parsed event")
	return cmd
}
