package calendar

import "time"

// Mode is the calendar display granularity.
type Mode string

const (
	ModeDay      Mode = "day"
	ModeThreeDay Mode = "3days"
	ModeWeek     Mode = "week"
	ModeMonth    Mode = "month"
)

var Modes = []Mode{ModeDay, ModeThreeDay, ModeWeek, ModeMonth}

func (m Mode) Valid() bool {
	switch m {
	case ModeDay, ModeThreeDay, ModeWeek, ModeMonth:
		return true
	}
	return false
}

// Window is an inclusive [Start, End] date range computed from a display
// mode and a cursor date. Ephemeral; recompute on every mode/cursor change.
type Window struct {
	Start time.Time `json:"period_start"`
	End   time.Time `json:"period_end"`
	Mode  Mode      `json:"mode"`
}

// Days enumerates the window's calendar days, oldest first.
func (w Window) Days() []time.Time {
	return Days(w.Start, w.End)
}

// ComputeWindow returns the inclusive period covered by mode around cursor.
func ComputeWindow(mode Mode, cursor time.Time) Window {
	switch mode {
	case ModeThreeDay:
		start := StartOfDay(cursor)
		return Window{Start: start, End: AddDays(start, 2), Mode: mode}
	case ModeWeek:
		start := StartOfWeekMonday(cursor)
		return Window{Start: start, End: AddDays(start, 6), Mode: mode}
	case ModeMonth:
		return Window{Start: StartOfMonth(cursor), End: EndOfMonth(cursor), Mode: mode}
	default:
		start := StartOfDay(cursor)
		return Window{Start: start, End: start, Mode: ModeDay}
	}
}

// MonthGrid expands cursor's month to full Monday-start weeks, including
// the leading/trailing days of adjacent months, so a month view always
// renders complete rows. The grid length is always a multiple of 7.
func MonthGrid(cursor time.Time) Window {
	start := StartOfWeekMonday(StartOfMonth(cursor))
	end := AddDays(StartOfWeekMonday(EndOfMonth(cursor)), 6)
	return Window{Start: start, End: end, Mode: ModeMonth}
}

// Navigator tracks the calendar display mode and cursor date. The
// reference "today" is injected at construction; the navigator never
// reads the system clock.
type Navigator struct {
	mode   Mode
	cursor time.Time
	today  time.Time
}

func NewNavigator(today time.Time) *Navigator {
	t := StartOfDay(today)
	return &Navigator{mode: ModeDay, cursor: t, today: t}
}

func (n *Navigator) Mode() Mode        { return n.mode }
func (n *Navigator) Cursor() time.Time { return n.cursor }

// SetMode switches the display mode and resets the cursor to today.
// Unknown modes are ignored.
func (n *Navigator) SetMode(mode Mode) {
	if !mode.Valid() {
		return
	}
	n.mode = mode
	n.cursor = n.today
}

// GoPrevious steps the cursor back by one mode-dependent increment.
func (n *Navigator) GoPrevious() { n.step(-1) }

// GoNext steps the cursor forward by one mode-dependent increment.
func (n *Navigator) GoNext() { n.step(1) }

func (n *Navigator) step(dir int) {
	switch n.mode {
	case ModeThreeDay:
		n.cursor = AddDays(n.cursor, 3*dir)
	case ModeWeek:
		n.cursor = AddDays(n.cursor, 7*dir)
	case ModeMonth:
		n.cursor = AddMonths(n.cursor, dir)
	default:
		n.cursor = AddDays(n.cursor, dir)
	}
}

// JumpToDay switches to day mode focused on the given day (a click on a
// calendar cell).
func (n *Navigator) JumpToDay(day time.Time) {
	n.mode = ModeDay
	n.cursor = StartOfDay(day)
}

// Window returns the period covered by the current mode and cursor.
func (n *Navigator) Window() Window {
	return ComputeWindow(n.mode, n.cursor)
}
