package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/domain"
	"github.com/spf13/cobra"
)

// withSpinner runs fn behind a spinner when a model may be called and the
// terminal is interactive.
func withSpinner(cmd *cobra.Command, app *App, message string, fn func() error) error {
	if app.ModelEnabled && app.interactive() {
		stop := formatter.StartSpinner(cmd.ErrOrStderr(), message)
		defer stop()
	}
	return fn()
}

func printOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// resolveGoalID accepts a full goal ID or a unique prefix of one.
func resolveGoalID(ctx context.Context, app *App, ref string) (string, error) {
	goals, err := app.Goals.List(ctx, "")
	if err != nil {
		return "", err
	}
	return matchID(ref, "goal", goalIDs(goals))
}

// resolveEventID accepts a full event ID or a unique prefix of one among
// events.
func resolveEventID(ref string, events []*domain.Event) (string, error) {
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return matchID(ref, "event", ids)
}

func goalIDs(goals []*domain.Goal) []string {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return ids
}

func matchID(ref, entity string, ids []string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%s ID is required", entity)
	}
	var matches []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", entity, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d %ss; use more characters", ref, len(matches), entity)
	}
}
