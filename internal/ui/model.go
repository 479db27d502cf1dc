package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"echopaint/internal/config"
	"echopaint/internal/editor"
)

// Options configures a painter session.
type Options struct {
	// Text preloads the document.
	Text string
	// Import preloads the document from ANSI text or an echo command.
	Import string
	// Settings are applied at start; SettingsPath is watched for changes.
	Settings     config.Settings
	SettingsPath string
	// Clipboard defaults to the system clipboard.
	Clipboard Clipboard
}

// Model for TUI
type model struct {
	sess         *editor.Session
	settings     config.Settings
	settingsPath string
	clip         Clipboard

	keys    keyMap
	help    help.Model
	preview viewport.Model

	width  int
	height int
	// first visible wrapped row of the editor
	scroll int
	// editor geometry from the last layout pass
	editorW, editorH int
	// mouse drag selection in progress
	dragging bool

	notice    string
	noticeErr bool
	// transient status-bar hint
	hintText  string
	hintUntil time.Time
	now       time.Time

	lastExport string
	quitting   bool

	// settings file change notifications
	watchCh <-chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

func initialModel(opts Options) model {
	ctx, cancel := context.WithCancel(context.Background())
	m := model{
		sess:         editor.New(opts.Text),
		settingsPath: opts.SettingsPath,
		clip:         opts.Clipboard,
		keys:         defaultKeyMap(),
		help:         help.New(),
		preview:      viewport.New(60, 3),
		ctx:          ctx,
		cancel:       cancel,
	}
	if m.clip == nil {
		m.clip = systemClipboard{}
	}
	settings := opts.Settings
	if settings == (config.Settings{}) {
		settings = config.Default()
	}
	m.applySettings(settings.Normalize())
	if opts.Import != "" {
		if err := m.sess.Import(opts.Import); err != nil {
			m.setError(err)
		}
	}
	m.sess.Document().SetCursor(m.sess.Document().Len())
	m.hintText = "i insert · v select · f/g colours · e export · ? help · ctrl+q quit"
	m.hintUntil = time.Now().Add(6 * time.Second)
	m.layout(80, 24)
	return m
}

// InitialModel is the public constructor for app.
func InitialModel(opts Options) tea.Model { return initialModel(opts) }

func (m model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), startWatchCmd(m.ctx, m.settingsPath))
}

func (m *model) applySettings(s config.Settings) {
	m.settings = s
	m.sess.SetFormat(s.Format())
	m.sess.SetGrid(s.LayoutGrid())
}

func (m *model) setNotice(s string) {
	m.notice, m.noticeErr = s, false
}

func (m *model) setError(err error) {
	m.notice, m.noticeErr = err.Error(), true
}
