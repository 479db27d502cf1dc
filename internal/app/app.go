package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"echopaint/internal/system"
	"echopaint/internal/ui"
)

// Start runs the painter until the user quits. Log output goes to logFile
// when set and is discarded otherwise, since the TUI owns the terminal.
func Start(opts ui.Options, logFile string) error {
	var restore func()
	if logFile != "" {
		r, err := system.RedirectToFile(logFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		restore = r
	} else {
		restore = system.Silence()
	}
	defer restore()

	// Initialize global bubblezone manager for mouse-aware zones.
	zone.NewGlobal()
	system.Logger.Info("starting painter", "chars", len([]rune(opts.Text)), "settings", opts.SettingsPath)
	if _, err := tea.NewProgram(ui.InitialModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return err
	}
	system.Logger.Info("painter closed")
	return nil
}
