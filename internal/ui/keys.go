package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding of the painter. Some keys are shared between
// modes; update.go decides which apply.
type keyMap struct {
	Left, Right, Up, Down key.Binding
	Home, End             key.Binding

	Insert, Append key.Binding
	Select         key.Binding
	Leave          key.Binding
	Apply          key.Binding

	Backspace, Delete key.Binding

	Bold, Italic, Underline, Strike, Dim key.Binding
	Fg, Bg                               key.Binding
	LoadStyle, ResetPen                  key.Binding
	Highlight                            key.Binding

	Export, Format, Copy, Paste key.Binding
	Help, Quit                  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Home:  key.NewBinding(key.WithKeys("home", "0"), key.WithHelp("0", "start")),
		End:   key.NewBinding(key.WithKeys("end", "$"), key.WithHelp("$", "end")),

		Insert: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert")),
		Append: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "append")),
		Select: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "select")),
		Leave:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Apply:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply pen")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("⌫", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete", "x"), key.WithHelp("del/x", "delete")),

		Bold:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bold")),
		Italic:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "italic")),
		Underline: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "underline")),
		Strike:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "strike")),
		Dim:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dim")),
		Fg:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fg colour")),
		Bg:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "bg colour")),
		LoadStyle: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "pick up style")),
		ResetPen:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset pen")),
		Highlight: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "highlight style")),

		Export: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Format: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "raw/escaped")),
		Copy:   key.NewBinding(key.WithKeys("c", "enter"), key.WithHelp("c", "copy")),
		Paste:  key.NewBinding(key.WithKeys("p", "ctrl+v"), key.WithHelp("p", "import clipboard")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// modeKeys implements help.KeyMap for the bindings relevant to one mode.
type modeKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k modeKeys) ShortHelp() []key.Binding  { return k.short }
func (k modeKeys) FullHelp() [][]key.Binding { return k.full }
