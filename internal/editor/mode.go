package editor

import (
	"errors"
	"fmt"
)

// ErrRejected is returned when an intent is not valid in the current mode.
var ErrRejected = errors.New("not available in this mode")

// Mode is the interaction mode of a session.
type Mode int

const (
	// Normal moves the cursor and styles the character under it.
	Normal Mode = iota
	// Edit inserts typed characters with the pen style.
	Edit
	// Select extends a selection from an anchor to the cursor.
	Select
	// Color navigates a swatch grid for the fg or bg pen colour.
	Color
	// Export shows the generated command.
	Export
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Edit:
		return "INSERT"
	case Select:
		return "VISUAL"
	case Color:
		return "COLOR"
	case Export:
		return "EXPORT"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Intent is a request that may change the mode.
type Intent int

const (
	IntentInsert Intent = iota
	IntentDelete
	IntentMove
	IntentStyle
	IntentPick
	IntentEdit
	IntentSelect
	IntentColor
	IntentExport
	IntentImport
	IntentLeave
)

var intentNames = map[Intent]string{
	IntentInsert: "insert",
	IntentDelete: "delete",
	IntentMove:   "move",
	IntentStyle:  "style",
	IntentPick:   "pick colour",
	IntentEdit:   "insert mode",
	IntentSelect: "select",
	IntentColor:  "colour picker",
	IntentExport: "export",
	IntentImport: "import",
	IntentLeave:  "leave",
}

func (i Intent) String() string {
	if s, ok := intentNames[i]; ok {
		return s
	}
	return fmt.Sprintf("Intent(%d)", int(i))
}

// back resolves to the mode that was active before Color or Export.
const back Mode = -1

// transitions lists every intent a mode accepts and the mode it leads to.
// Anything missing is rejected.
var transitions = map[Mode]map[Intent]Mode{
	Normal: {
		IntentDelete: Normal,
		IntentMove:   Normal,
		IntentStyle:  Normal,
		IntentPick:   Normal,
		IntentEdit:   Edit,
		IntentSelect: Select,
		IntentColor:  Color,
		IntentExport: Export,
		IntentImport: Normal,
		IntentLeave:  Normal,
	},
	Edit: {
		IntentInsert: Edit,
		IntentDelete: Edit,
		IntentMove:   Edit,
		IntentStyle:  Edit,
		IntentPick:   Edit,
		IntentColor:  Color,
		IntentExport: Export,
		IntentLeave:  Normal,
	},
	Select: {
		IntentMove:   Select,
		IntentStyle:  Select,
		IntentPick:   Select,
		IntentSelect: Normal,
		IntentColor:  Color,
		IntentExport: Export,
		IntentLeave:  Normal,
	},
	Color: {
		IntentStyle:  Color,
		IntentPick:   Color,
		IntentColor:  Color,
		IntentExport: Export,
		IntentLeave:  back,
	},
	Export: {
		IntentExport: Export,
		IntentLeave:  back,
	},
}

// Allows reports whether m accepts in.
func (m Mode) Allows(in Intent) bool {
	_, ok := transitions[m][in]
	return ok
}
