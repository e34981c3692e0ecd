package view

import "famcal/src-client/grid"

// Mode selects which calendar surface is rendered.
type Mode string

const (
	ModeMonth Mode = "month"
	ModeWeek  Mode = "week"
	ModeDay   Mode = "day"
)

// Direction is a navigation request relative to the current state.
type Direction string

const (
	DirPrev  Direction = "prev"
	DirNext  Direction = "next"
	DirToday Direction = "today"
)

// EditorSeed is the prefill handed to the event editor when a cell or the
// add button is activated.
type EditorSeed struct {
	Date grid.Date `json:"date"`
	Hour int       `json:"hour"`
}

// DefaultEditorHour is used when a cell without an hour component opens the
// editor.
const DefaultEditorHour = 9

// State is the whole navigable view state as one serializable value:
// reference date, view mode and the open editor seed, if any. Transitions
// are pure; each returns a new State and leaves the receiver untouched.
type State struct {
	Date   grid.Date   `json:"date"`
	Mode   Mode        `json:"mode"`
	Editor *EditorSeed `json:"editor,omitempty"`
}

// NewState returns the initial state: month view anchored on today.
func NewState(today grid.Date) State {
	return State{Date: today, Mode: ModeMonth}
}

// Navigate moves the reference date one unit of the current mode, or jumps
// back to today.
func (s State) Navigate(dir Direction, today grid.Date) State {
	if dir == DirToday {
		s.Date = today
		return s
	}
	delta := 1
	if dir == DirPrev {
		delta = -1
	}
	switch s.Mode {
	case ModeWeek:
		s.Date = s.Date.AddDays(delta * 7)
	case ModeDay:
		s.Date = s.Date.AddDays(delta)
	default:
		s.Date = s.Date.AddMonths(delta)
	}
	return s
}

// SwitchView changes the mode, keeping the reference date.
func (s State) SwitchView(mode Mode) State {
	s.Mode = mode
	return s
}

// OpenEditor marks the editor open with the given seed.
func (s State) OpenEditor(seed EditorSeed) State {
	s.Editor = &seed
	return s
}

// CloseEditor clears the editor seed.
func (s State) CloseEditor() State {
	s.Editor = nil
	return s
}

// SeedForDate seeds the editor from a date cell (month view, add button).
func SeedForDate(d grid.Date) EditorSeed {
	return EditorSeed{Date: d, Hour: DefaultEditorHour}
}

// SeedForSlot seeds the editor from a (date, hour) cell.
func SeedForSlot(d grid.Date, hour int) EditorSeed {
	return EditorSeed{Date: d, Hour: hour}
}
