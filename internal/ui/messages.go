package ui

import (
	"time"

	"echopaint/internal/config"
)

// Bubble Tea messages

// export copied to the clipboard (or failed to)
type copiedMsg struct {
	command string
	err     error
}

// clipboard contents read for import
type pastedMsg struct {
	text string
	err  error
}

// settings file watcher started
type watchStartedMsg struct {
	ch   <-chan struct{}
	path string
}

// settings reloaded from disk
type settingsMsg struct {
	settings config.Settings
	err      error
}

// periodic tick for the status bar clock and hint expiry
type tickMsg time.Time
