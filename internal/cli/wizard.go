package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/lifeplan/internal/cli/formatter"
	"github.com/alexanderramin/lifeplan/internal/intelligence"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// lifeplanHuhTheme returns a huh theme using the formatter palette.
func lifeplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planWizardForm asks for the goal, its timeframe and the daily time budget.
// Answers are written into req; an empty timeframe or study time keeps the
// planner defaults.
func planWizardForm(req *intelligence.GoalPlanRequest) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What do you want to achieve?").
				Placeholder("run a half marathon").
				Value(&req.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("a goal is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("By when?").
				Options(
					huh.NewOption("2 weeks", "2 weeks"),
					huh.NewOption("1 month", "1 month"),
					huh.NewOption("3 months", "3 months"),
					huh.NewOption("6 months", "6 months"),
				).
				Value(&req.Timeframe),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("How much time per day?").
				Description("e.g. 30 minutes, 2 hours").
				Value(&req.Preferences.StudyTime),
			huh.NewSelect[string]().
				Title("Best time of day?").
				Options(
					huh.NewOption("No preference", ""),
					huh.NewOption("Morning", "morning"),
					huh.NewOption("Afternoon", "afternoon"),
					huh.NewOption("Evening", "evening"),
				).
				Value(&req.Preferences.WorkoutTime),
		),
	).WithTheme(lifeplanHuhTheme()).WithShowHelp(false)
}
