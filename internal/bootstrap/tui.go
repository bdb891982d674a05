package bootstrap

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"studyplanner/internal/platform/notify"
	uiapp "studyplanner/internal/ui/app"
	"studyplanner/internal/ui/theme"
)

// RunTUI blocks until the user quits. messages should be the receive side of
// the notifier the App was built with so notifications reach the status line.
func RunTUI(ctx context.Context, app *App, messages <-chan notify.Message) error {
	if current, err := app.PreferenceCLI.Theme(ctx); err == nil {
		theme.Use(current.Theme)
	}
	model := uiapp.NewModel(app.SessionCLI, app.StatsCLI, app.BadgeCLI, app.TimerTUI, app.LibraryCLI, app.PreferenceCLI, messages)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
