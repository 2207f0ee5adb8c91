package cli

import (
	"time"

	"github.com/alexanderramin/lifeplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Events   service.EventService
	Balance  service.BalanceService
	Goals    service.GoalService
	Schedule service.ScheduleService
	Chat     service.ChatService

	// ModelEnabled is set when a language model is configured; commands
	// then show a spinner while waiting on it.
	ModelEnabled bool

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool

	// Clock overrides time.Now in tests.
	Clock func() time.Time
}

func (a *App) now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "lifeplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "lifeplan",
		Short: "Balance your days and plan your goals",
		Long: `lifeplan tracks how your time splits across work, health, leisure,
social and learning, scores the balance of each day, and turns goals into
weekly milestones and daily sessions.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newEventCmd(app),
		newBalanceCmd(app),
		newScheduleCmd(app),
		newPlanCmd(app),
		newGoalCmd(app),
		newChatCmd(app),
	)

	return root
}
