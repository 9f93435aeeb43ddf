package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarView_Navigate(t *testing.T) {
	base := date(2025, 10, 15)

	tests := []struct {
		name      string
		mode      ViewMode
		direction int
		want      time.Time
	}{
		{"month forward", ViewMonth, 1, date(2025, 11, 15)},
		{"month back", ViewMonth, -1, date(2025, 9, 15)},
		{"week forward", ViewWeek, 1, date(2025, 10, 22)},
		{"week back", ViewWeek, -1, date(2025, 10, 8)},
		{"day forward", ViewDay, 1, date(2025, 10, 16)},
		{"day back", ViewDay, -1, date(2025, 10, 14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CalendarView{Current: base, Mode: tt.mode}
			got := v.Navigate(tt.direction)
			assert.True(t, got.Current.Equal(tt.want), "got %s want %s", got.Current, tt.want)
			assert.Equal(t, tt.mode, got.Mode)
			// The original view is unchanged.
			assert.True(t, v.Current.Equal(base))
		})
	}
}

func TestCalendarView_Navigate_MonthBoundaries(t *testing.T) {
	// Jan 31 + 1 month normalizes per AddDate.
	v := CalendarView{Current: date(2025, 1, 31), Mode: ViewMonth}
	got := v.Navigate(1)
	assert.True(t, got.Current.Equal(date(2025, 3, 3)))

	// December wraps into the next year.
	v = CalendarView{Current: date(2025, 12, 10), Mode: ViewMonth}
	got = v.Navigate(1)
	assert.True(t, got.Current.Equal(date(2026, 1, 10)))
}

func TestCalendarView_JumpToToday(t *testing.T) {
	now := time.Date(2025, 10, 25, 14, 30, 0, 0, time.UTC)
	v := CalendarView{Current: date(2024, 1, 1), Mode: ViewWeek}
	got := v.JumpToToday(now)
	assert.True(t, got.Current.Equal(date(2025, 10, 25)))
	assert.Equal(t, ViewWeek, got.Mode)
}

func TestCalendarView_Range(t *testing.T) {
	tests := []struct {
		name     string
		current  time.Time
		mode     ViewMode
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "month spans first to last day",
			current:  date(2025, 10, 15),
			mode:     ViewMonth,
			wantFrom: date(2025, 10, 1),
			wantTo:   date(2025, 10, 31),
		},
		{
			name:     "february",
			current:  date(2025, 2, 10),
			mode:     ViewMonth,
			wantFrom: date(2025, 2, 1),
			wantTo:   date(2025, 2, 28),
		},
		{
			name:     "week starts monday",
			current:  date(2025, 10, 15), // a Wednesday
			mode:     ViewWeek,
			wantFrom: date(2025, 10, 13),
			wantTo:   date(2025, 10, 19),
		},
		{
			name:     "week of a sunday",
			current:  date(2025, 10, 19),
			mode:     ViewWeek,
			wantFrom: date(2025, 10, 13),
			wantTo:   date(2025, 10, 19),
		},
		{
			name:     "week of a monday",
			current:  date(2025, 10, 13),
			mode:     ViewWeek,
			wantFrom: date(2025, 10, 13),
			wantTo:   date(2025, 10, 19),
		},
		{
			name:     "day is a single date",
			current:  date(2025, 10, 15),
			mode:     ViewDay,
			wantFrom: date(2025, 10, 15),
			wantTo:   date(2025, 10, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := CalendarView{Current: tt.current, Mode: tt.mode}
			from, to := v.Range()
			assert.True(t, from.Equal(tt.wantFrom), "from: got %s want %s", from, tt.wantFrom)
			assert.True(t, to.Equal(tt.wantTo), "to: got %s want %s", to, tt.wantTo)
		})
	}
}

func TestActionsFor(t *testing.T) {
	today := date(2025, 10, 25)

	upcoming := &Event{Status: StatusScheduled, EndDate: date(2025, 11, 1)}
	assert.Equal(t, []ActionKind{ActionEdit, ActionDelete, ActionView}, ActionsFor(upcoming, today))

	finished := &Event{Status: StatusScheduled, EndDate: date(2025, 10, 20)}
	assert.Equal(t, []ActionKind{ActionDelete, ActionView}, ActionsFor(finished, today))

	cancelledPast := &Event{Status: StatusCancelled, EndDate: date(2025, 10, 20)}
	assert.Equal(t, []ActionKind{ActionDelete, ActionView}, ActionsFor(cancelledPast, today))
}

func TestPlaceMenu(t *testing.T) {
	viewport := Rect{X: 0, Y: 0, W: 1000, H: 600}
	menu := Rect{W: 200, H: 150}

	tests := []struct {
		name   string
		anchor Rect
		want   Rect
	}{
		{
			name:   "fits below anchor",
			anchor: Rect{X: 100, Y: 100, W: 80, H: 40},
			want:   Rect{X: 100, Y: 140, W: 200, H: 150},
		},
		{
			name:   "flips above on bottom overflow",
			anchor: Rect{X: 100, Y: 500, W: 80, H: 40},
			want:   Rect{X: 100, Y: 350, W: 200, H: 150},
		},
		{
			name:   "shifts left on right overflow",
			anchor: Rect{X: 900, Y: 100, W: 80, H: 40},
			want:   Rect{X: 800, Y: 140, W: 200, H: 150},
		},
		{
			name:   "bottom right corner flips and shifts",
			anchor: Rect{X: 950, Y: 560, W: 40, H: 30},
			want:   Rect{X: 800, Y: 410, W: 200, H: 150},
		},
		{
			name:   "clamped to top when flip would overflow upward",
			anchor: Rect{X: 100, Y: 100, W: 80, H: 400},
			want:   Rect{X: 100, Y: 0, W: 200, H: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceMenu(tt.anchor, menu, viewport)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlaceMenu_NeverOutsideViewport(t *testing.T) {
	viewport := Rect{X: 0, Y: 0, W: 300, H: 200}
	menu := Rect{W: 150, H: 120}
	anchors := []Rect{
		{X: -50, Y: -50, W: 20, H: 20},
		{X: 0, Y: 0, W: 10, H: 10},
		{X: 290, Y: 190, W: 10, H: 10},
		{X: 150, Y: 100, W: 40, H: 40},
	}
	for _, anchor := range anchors {
		got := PlaceMenu(anchor, menu, viewport)
		require.GreaterOrEqual(t, got.X, viewport.X)
		require.GreaterOrEqual(t, got.Y, viewport.Y)
	}
}

func TestViewMode_Valid(t *testing.T) {
	assert.True(t, ViewMonth.Valid())
	assert.True(t, ViewWeek.Valid())
	assert.True(t, ViewDay.Valid())
	assert.False(t, ViewMode("year").Valid())
	assert.False(t, ViewMode("").Valid())
}
