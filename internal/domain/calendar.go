package domain

import "time"

// ViewMode is the calendar display granularity.
type ViewMode string

const (
	ViewMonth ViewMode = "month"
	ViewWeek  ViewMode = "week"
	ViewDay   ViewMode = "day"
)

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewMonth, ViewWeek, ViewDay:
		return true
	}
	return false
}

// CalendarView is the calendar's navigation state: the focused date and the
// display mode. It is a value type; navigation returns a new view.
type CalendarView struct {
	Current time.Time
	Mode    ViewMode
}

// Navigate advances (direction > 0) or retreats (direction < 0) the view by
// one unit of its mode: a month, 7 days, or 1 day.
func (v CalendarView) Navigate(direction int) CalendarView {
	step := 1
	if direction < 0 {
		step = -1
	}
	switch v.Mode {
	case ViewMonth:
		v.Current = v.Current.AddDate(0, step, 0)
	case ViewWeek:
		v.Current = v.Current.AddDate(0, 0, 7*step)
	default:
		v.Current = v.Current.AddDate(0, 0, step)
	}
	return v
}

// JumpToToday resets the view to now, keeping the mode.
func (v CalendarView) JumpToToday(now time.Time) CalendarView {
	v.Current = dateOnly(now)
	return v
}

// Range returns the inclusive date-only range covered by the view: the whole
// month, the Monday-to-Sunday week, or the single day of Current.
func (v CalendarView) Range() (from, to time.Time) {
	d := dateOnly(v.Current)
	switch v.Mode {
	case ViewMonth:
		from = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		to = from.AddDate(0, 1, -1)
	case ViewWeek:
		offset := (int(d.Weekday()) + 6) % 7 // Monday-start week
		from = d.AddDate(0, 0, -offset)
		to = from.AddDate(0, 0, 6)
	default:
		from, to = d, d
	}
	return from, to
}

// ActionKind is a contextual action offered on a calendar event.
type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
	ActionView   ActionKind = "view"
)

// ActionsFor returns the actions the status engine permits for the event.
// Clicking an event body performs none of these; all mutation entry points
// are explicit.
func ActionsFor(e *Event, now time.Time) []ActionKind {
	var actions []ActionKind
	if e.CanEdit(now) {
		actions = append(actions, ActionEdit)
	}
	if e.CanDelete(now) {
		actions = append(actions, ActionDelete)
	}
	if e.CanView(now) {
		actions = append(actions, ActionView)
	}
	return actions
}

// Rect is an axis-aligned rectangle in viewport coordinates (origin top-left).
type Rect struct {
	X, Y, W, H int
}

// PlaceMenu positions a menu of size menu near the anchor rect inside the
// viewport. Preferred placement is below the anchor, left-aligned; the menu
// flips above the anchor when it would overflow the bottom edge and shifts
// left when it would overflow the right edge. The result is finally clamped
// so the menu is never rendered outside the viewport.
func PlaceMenu(anchor, menu, viewport Rect) Rect {
	pos := Rect{X: anchor.X, Y: anchor.Y + anchor.H, W: menu.W, H: menu.H}
	if pos.Y+pos.H > viewport.Y+viewport.H {
		pos.Y = anchor.Y - menu.H
	}
	if pos.X+pos.W > viewport.X+viewport.W {
		pos.X = viewport.X + viewport.W - menu.W
	}
	if pos.X < viewport.X {
		pos.X = viewport.X
	}
	if pos.Y < viewport.Y {
		pos.Y = viewport.Y
	}
	return pos
}
