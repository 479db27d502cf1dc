package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"echopaint/internal/config"
	"echopaint/internal/doc"
	"echopaint/internal/export"
	"echopaint/internal/system"
)

// Clipboard reads and writes text for export and import.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// systemClipboard uses the OS clipboard.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }

// copyCmd renders snap off the update loop and writes it to cb.
func copyCmd(cb Clipboard, snap doc.Snapshot, f export.Format) tea.Cmd {
	return func() tea.Msg {
		cmd := export.Snapshot(snap, f)
		err := cb.WriteText(cmd)
		if err != nil {
			system.Logger.Warn("clipboard write failed", "err", err)
		} else {
			system.Logger.Debug("exported", "bytes", len(cmd), "format", f)
		}
		return copiedMsg{command: cmd, err: err}
	}
}

func pasteCmd(cb Clipboard) tea.Cmd {
	return func() tea.Msg {
		s, err := cb.ReadText()
		return pastedMsg{text: s, err: err}
	}
}

// startWatchCmd watches the settings file and forwards reloads over a
// channel. A missing config dir disables hot reload.
func startWatchCmd(ctx context.Context, path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		w, err := config.NewWatcher(path)
		if err != nil {
			system.Logger.Debug("settings watch disabled", "path", path, "err", err)
			return nil
		}
		ch := make(chan struct{}, 1)
		go func() {
			defer w.Close()
			defer close(ch)
			w.Run(ctx, func(config.Settings, error) {
				select {
				case ch <- struct{}{}:
				default:
				}
			})
		}()
		return watchStartedMsg{ch: ch, path: path}
	}
}

// watchSubscribeCmd waits for the next change and reloads the settings.
func watchSubscribeCmd(ch <-chan struct{}, path string) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		if _, ok := <-ch; !ok {
			return nil
		}
		// let editors finish writing before the read
		time.Sleep(120 * time.Millisecond)
		s, err := config.Load(path)
		return settingsMsg{settings: s, err: err}
	}
}

// periodic tick command
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
