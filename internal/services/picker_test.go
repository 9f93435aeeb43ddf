package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

type fakeRosterLoader struct {
	foundation []domain.Participant
	temporal   []domain.Participant
}

func (f *fakeRosterLoader) Load(ctx context.Context, source domain.SourceType, target domain.RegistrationTarget) ([]domain.Participant, error) {
	if source == domain.SourceFoundation {
		return f.foundation, nil
	}
	return f.temporal, nil
}

func newPickerLoader() *fakeRosterLoader {
	return &fakeRosterLoader{
		foundation: []domain.Participant{
			&domain.FoundationMember{ID: "f-1", Name: "Ana", IdentityNumber: "100", Category: "Sub-15"},
			&domain.FoundationMember{ID: "f-2", Name: "Carlos", IdentityNumber: "200", Category: "Sub-17"},
		},
		temporal: []domain.Participant{
			&domain.TemporaryMember{ID: "t-1", Name: "Berta", IdentityNumber: "300"},
		},
	}
}

type pickerFixture struct {
	*registrationFixture
	loader *fakeRosterLoader
	picker PickerService
}

func newPickerFixture(t *testing.T) *pickerFixture {
	t.Helper()
	reg := newRegistrationFixture(t)
	loader := newPickerLoader()
	return &pickerFixture{
		registrationFixture: reg,
		loader:              loader,
		picker:              NewPickerService(reg.eventRepo, loader, reg.svc, 5*time.Second),
	}
}

func TestPickerService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("loads both rosters sorted by name", func(t *testing.T) {
		f := newPickerFixture(t)
		event := f.seedEvent(ctx, domain.EventWorkshop)

		page, err := f.picker.Open(ctx, event.ID, domain.ModeRegister)
		require.NoError(t, err)
		assert.NotEmpty(t, page.SessionID)
		assert.Equal(t, 3, page.Total)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "Ana", page.Items[0].DisplayName())
		assert.Equal(t, "Berta", page.Items[1].DisplayName())
		assert.Equal(t, "Carlos", page.Items[2].DisplayName())
		assert.Empty(t, page.Selection)
	})

	t.Run("view mode rejected", func(t *testing.T) {
		f := newPickerFixture(t)
		event := f.seedEvent(ctx, domain.EventWorkshop)
		_, err := f.picker.Open(ctx, event.ID, domain.ModeView)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown mode rejected", func(t *testing.T) {
		f := newPickerFixture(t)
		event := f.seedEvent(ctx, domain.EventWorkshop)
		_, err := f.picker.Open(ctx, event.ID, domain.SubmissionMode("browse"))
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("team events use the direct submission path", func(t *testing.T) {
		f := newPickerFixture(t)
		event := f.seedEvent(ctx, domain.EventTournament)
		_, err := f.picker.Open(ctx, event.ID, domain.ModeRegister)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown event", func(t *testing.T) {
		f := newPickerFixture(t)
		_, err := f.picker.Open(ctx, "ev-missing", domain.ModeRegister)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestPickerService_FilterAndToggle(t *testing.T) {
	ctx := context.Background()
	f := newPickerFixture(t)
	event := f.seedEvent(ctx, domain.EventWorkshop)

	page, err := f.picker.Open(ctx, event.ID, domain.ModeRegister)
	require.NoError(t, err)
	id := page.SessionID

	page, err = f.picker.Filter(id, "ana", "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "f-1", page.Items[0].ParticipantID())

	page, err = f.picker.Toggle(id, "f-1")
	require.NoError(t, err)
	require.Len(t, page.Selection, 1)
	assert.Equal(t, domain.SourceFoundation, page.Selection[0].Source)

	// A temporal pick after a foundation pick leaves the selection alone.
	page, err = f.picker.Toggle(id, "t-1")
	require.NoError(t, err)
	require.Len(t, page.Selection, 1)
	assert.Equal(t, "f-1", page.Selection[0].ParticipantID)

	page, err = f.picker.SetCompanions(id, "f-1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Selection[0].Companions)

	_, err = f.picker.Toggle(id, "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.picker.Filter("bad-session", "", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPickerService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("drives the selection into the registration flow", func(t *testing.T) {
		f := newPickerFixture(t)
		event := f.seedEvent(ctx, domain.EventWorkshop)

		page, err := f.picker.Open(ctx, event.ID, domain.ModeRegister)
		require.NoError(t, err)
		id := page.SessionID

		_, err = f.picker.Toggle(id, "f-1")
		require.NoError(t, err)
		_, err = f.picker.Toggle(id, "f-2")
		require.NoError(t, err)
		_, err = f.picker.SetCompanions(id, "f-1", 2)
		require.NoError(t, err)

		regs, err := f.picker.Submit(ctx, id, false)
		require.NoError(t, err)
		require.Len(t, regs, 2)
		assert.Equal(t, "f-1", regs[0].ParticipantID)
		assert.Equal(t, 2, regs[0].Companions)

		stored, _ := f.regRepo.ListByEventID(ctx, event.ID)
		assert.Len(t, stored, 2)

		// The session is gone after a successful submission.
		_, err = f.picker.Filter(id, "", "")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("failed submission keeps the session", func(t *testing.T) {
		f := newPickerFixture(t)
		event := f.seedEvent(ctx, domain.EventWorkshop)

		page, err := f.picker.Open(ctx, event.ID, domain.ModeRegister)
		require.NoError(t, err)
		id := page.SessionID

		_, err = f.picker.Submit(ctx, id, false)
		require.ErrorIs(t, err, domain.ErrEmptySelection)

		_, err = f.picker.Toggle(id, "f-1")
		require.NoError(t, err)
		regs, err := f.picker.Submit(ctx, id, false)
		require.NoError(t, err)
		require.Len(t, regs, 1)
	})
}
