package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvent_DisplayStatus(t *testing.T) {
	today := date(2025, 10, 25)

	tests := []struct {
		name   string
		status EventStatus
		end    time.Time
		want   EventStatus
	}{
		{
			name:   "scheduled with past end date shows finished",
			status: StatusScheduled,
			end:    date(2025, 10, 20),
			want:   StatusFinished,
		},
		{
			name:   "scheduled upcoming keeps status",
			status: StatusScheduled,
			end:    date(2025, 11, 1),
			want:   StatusScheduled,
		},
		{
			name:   "scheduled ending today is not finished",
			status: StatusScheduled,
			end:    today,
			want:   StatusScheduled,
		},
		{
			name:   "paused with past end date shows finished",
			status: StatusPaused,
			end:    date(2025, 10, 20),
			want:   StatusFinished,
		},
		{
			name:   "cancelled with past end date shows finished",
			status: StatusCancelled,
			end:    date(2025, 10, 20),
			want:   StatusFinished,
		},
		{
			name:   "cancelled upcoming keeps cancelled",
			status: StatusCancelled,
			end:    date(2025, 11, 1),
			want:   StatusCancelled,
		},
		{
			name:   "stored finished stays finished",
			status: StatusFinished,
			end:    date(2025, 11, 1),
			want:   StatusFinished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{Status: tt.status, EndDate: tt.end}
			assert.Equal(t, tt.want, e.DisplayStatus(today))
		})
	}
}

func TestEvent_DisplayStatus_DateOnlyComparison(t *testing.T) {
	// End date is "today" even though the clock has moved past the event's
	// end time; a same-day event must not flip to Finished.
	now := time.Date(2025, 10, 25, 23, 30, 0, 0, time.UTC)
	e := &Event{Status: StatusScheduled, EndDate: date(2025, 10, 25)}
	assert.Equal(t, StatusScheduled, e.DisplayStatus(now))
	assert.True(t, e.CanEdit(now))
}

func TestEvent_CanEdit(t *testing.T) {
	today := date(2025, 10, 25)

	tests := []struct {
		name   string
		status EventStatus
		end    time.Time
		want   bool
	}{
		{"scheduled upcoming is editable", StatusScheduled, date(2025, 11, 1), true},
		{"scheduled past is frozen", StatusScheduled, date(2025, 10, 20), false},
		{"paused upcoming is editable", StatusPaused, date(2025, 11, 1), true},
		{"cancelled upcoming is editable", StatusCancelled, date(2025, 11, 1), true},
		{"cancelled past is frozen", StatusCancelled, date(2025, 10, 20), false},
		{"finished is frozen", StatusFinished, date(2025, 11, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{Status: tt.status, EndDate: tt.end}
			assert.Equal(t, tt.want, e.CanEdit(today))
		})
	}
}

func TestEvent_CanDelete(t *testing.T) {
	today := date(2025, 10, 25)

	// A tournament that ended five days ago: no longer editable, still deletable.
	e := &Event{Type: EventTournament, Status: StatusScheduled, EndDate: date(2025, 10, 20)}
	assert.Equal(t, StatusFinished, e.DisplayStatus(today))
	assert.False(t, e.CanEdit(today))
	assert.True(t, e.CanDelete(today))
	assert.True(t, e.CanView(today))

	// Deletion stays available in every other state too.
	for _, status := range []EventStatus{StatusScheduled, StatusPaused, StatusCancelled, StatusFinished} {
		e := &Event{Status: status, EndDate: date(2025, 11, 1)}
		assert.True(t, e.CanDelete(today), "status %s", status)
	}
}

func TestEvent_Validate(t *testing.T) {
	valid := func() *Event {
		return &Event{
			Name:       "Spring Festival",
			CategoryID: "cat-1",
			Type:       EventFestival,
			StartDate:  date(2025, 6, 1),
			EndDate:    date(2025, 6, 2),
			StartTime:  "09:00",
			EndTime:    "17:00",
		}
	}

	tests := []struct {
		name    string
		mutate  func(e *Event)
		wantErr bool
	}{
		{"valid event", func(e *Event) {}, false},
		{"missing name", func(e *Event) { e.Name = "" }, true},
		{"missing category", func(e *Event) { e.CategoryID = "" }, true},
		{"unknown type", func(e *Event) { e.Type = "Gala" }, true},
		{"bad start time", func(e *Event) { e.StartTime = "9am" }, true},
		{"bad end time", func(e *Event) { e.EndTime = "25:99" }, true},
		{"end date before start date", func(e *Event) { e.EndDate = date(2025, 5, 31) }, true},
		{
			name: "single day end time before start time",
			mutate: func(e *Event) {
				e.EndDate = e.StartDate
				e.StartTime = "17:00"
				e.EndTime = "09:00"
			},
			wantErr: true,
		},
		{
			name: "single day end time equal to start time",
			mutate: func(e *Event) {
				e.EndDate = e.StartDate
				e.EndTime = e.StartTime
			},
			wantErr: true,
		},
		{
			name: "multi day ignores clock ordering",
			mutate: func(e *Event) {
				e.StartTime = "17:00"
				e.EndTime = "09:00"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid()
			tt.mutate(e)
			err := e.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEventType_RegistrationTarget(t *testing.T) {
	tests := []struct {
		typ  EventType
		want RegistrationTarget
	}{
		{EventFestival, TargetTeams},
		{EventTournament, TargetTeams},
		{EventClosing, TargetAthletes},
		{EventWorkshop, TargetAthletes},
		{EventType("Marathon"), TargetAthletes},
		{EventType(""), TargetAthletes},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.RegistrationTarget(), "type %q", tt.typ)
	}
}

func TestEventStatus_UserAssignable(t *testing.T) {
	assert.True(t, StatusScheduled.UserAssignable())
	assert.True(t, StatusPaused.UserAssignable())
	assert.True(t, StatusCancelled.UserAssignable())
	assert.False(t, StatusFinished.UserAssignable())
	assert.False(t, EventStatus("Archived").UserAssignable())
}
