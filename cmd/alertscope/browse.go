package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"alertscope/cmd/alertscope/ui"
)

// runBrowser starts the interactive browser. An optional argument is the
// starting path (or a bare alert identifier); without one the browser opens
// on the nights overview.
func runBrowser(args []string) error {
	start := ui.Route{Kind: ui.PageNights}
	if len(args) == 1 {
		parsed, err := ui.ParseRoute(args[0])
		if err != nil {
			return err
		}
		start = parsed
	}

	client, cleanup, err := newClient()
	if err != nil {
		return err
	}
	defer cleanup()

	theme := ui.ThemeNamed(cfg.UX.Theme)
	styles := ui.NewStyles(theme)

	browser := ui.NewBrowser(client, styles, logger, start)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	browser.Notify().Bind(program.Send)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
