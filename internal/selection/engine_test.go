package selection

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

// fakeLoader serves canned rosters per source and can be told to fail or to
// block until released, to simulate slow fetches.
type fakeLoader struct {
	mu      sync.Mutex
	rosters map[domain.SourceType][]domain.Participant
	err     error
	block   chan struct{} // if set, Load waits on it before returning
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{rosters: make(map[domain.SourceType][]domain.Participant)}
}

func (f *fakeLoader) Load(ctx context.Context, source domain.SourceType, target domain.RegistrationTarget) ([]domain.Participant, error) {
	f.mu.Lock()
	block := f.block
	err := f.err
	items := f.rosters[source]
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

func foundation(id, name, ident, category string) domain.Participant {
	return &domain.FoundationMember{ID: id, Name: name, IdentityNumber: ident, Category: category}
}

func temporal(id, name, ident string) domain.Participant {
	return &domain.TemporaryMember{ID: id, Name: name, IdentityNumber: ident}
}

func loadedEngine(t *testing.T, mode Mode) (*Engine, *fakeLoader) {
	t.Helper()
	loader := newFakeLoader()
	loader.rosters[domain.SourceFoundation] = []domain.Participant{
		foundation("f-1", "Ana Gomez", "1001", "Sub-15"),
		foundation("f-2", "Bruno Diaz", "1002", "Sub-17"),
		foundation("f-3", "Carla Mejia", "1003", "Sub-15"),
	}
	loader.rosters[domain.SourceTemporal] = []domain.Participant{
		temporal("t-1", "Diego Ruiz", "2001"),
		temporal("t-2", "Elena Vega", "2002"),
	}
	e := NewEngine(loader, mode, domain.TargetAthletes, 10)
	e.LoadRoster(context.Background(), domain.SourceFoundation)
	e.LoadRoster(context.Background(), domain.SourceTemporal)
	return e, loader
}

func TestEngine_PageMergesAndSorts(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)

	items, total, page := e.Page()
	require.Equal(t, 5, total)
	assert.Equal(t, 1, page)
	names := make([]string, 0, len(items))
	for _, p := range items {
		names = append(names, p.DisplayName())
	}
	assert.Equal(t, []string{"Ana Gomez", "Bruno Diaz", "Carla Mejia", "Diego Ruiz", "Elena Vega"}, names)
}

func TestEngine_Find(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)

	p, ok := e.Find("t-2")
	require.True(t, ok)
	assert.Equal(t, "Elena Vega", p.DisplayName())

	_, ok = e.Find("nobody")
	assert.False(t, ok)

	// A locked source hides the other roster.
	e.LockSource(domain.SourceFoundation)
	_, ok = e.Find("t-2")
	assert.False(t, ok)
	_, ok = e.Find("f-1")
	assert.True(t, ok)
}

func TestEngine_FilterByTermAndCategory(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)

	e.SetFilter("ana", "")
	items, total, _ := e.Page()
	require.Equal(t, 1, total)
	assert.Equal(t, "f-1", items[0].ParticipantID())

	// Identification matches too.
	e.SetFilter("2001", "")
	items, total, _ = e.Page()
	require.Equal(t, 1, total)
	assert.Equal(t, "t-1", items[0].ParticipantID())

	// Category narrows foundation entries only; temporal entries stay.
	e.SetFilter("", "Sub-15")
	items, total, _ = e.Page()
	require.Equal(t, 4, total)
	for _, p := range items {
		if p.Source() == domain.SourceFoundation {
			assert.Equal(t, "Sub-15", p.CategoryName())
		}
	}
}

func TestEngine_FilterResetsPage(t *testing.T) {
	loader := newFakeLoader()
	var roster []domain.Participant
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		roster = append(roster, foundation("f-"+id, id, id, ""))
	}
	loader.rosters[domain.SourceFoundation] = roster
	e := NewEngine(loader, MultiSelect, domain.TargetAthletes, 2)
	e.LoadRoster(context.Background(), domain.SourceFoundation)

	e.SetPage(3)
	_, _, page := e.Page()
	require.Equal(t, 3, page)

	e.SetFilter("a", "")
	_, _, page = e.Page()
	assert.Equal(t, 1, page)
}

func TestEngine_SetPageClamps(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)

	e.SetPage(99)
	_, _, page := e.Page()
	assert.Equal(t, 1, page, "5 items at page size 10 is a single page")

	e.SetPage(-3)
	_, _, page = e.Page()
	assert.Equal(t, 1, page)
}

func TestEngine_MultiSelectToggle(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)

	p1 := foundation("f-1", "Ana Gomez", "1001", "Sub-15")
	p2 := foundation("f-2", "Bruno Diaz", "1002", "Sub-17")

	selected, done := e.Toggle(p1)
	assert.True(t, selected)
	assert.False(t, done)
	selected, done = e.Toggle(p2)
	assert.True(t, selected)
	assert.False(t, done)
	require.Len(t, e.Selection(), 2)

	// Toggling again removes by identity.
	selected, _ = e.Toggle(p1)
	assert.False(t, selected)
	sel := e.Selection()
	require.Len(t, sel, 1)
	assert.Equal(t, "f-2", sel[0].ParticipantID())
}

func TestEngine_MixedSourcePickIsNoOp(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)

	e.Toggle(foundation("f-1", "Ana Gomez", "1001", "Sub-15"))
	selected, _ := e.Toggle(temporal("t-1", "Diego Ruiz", "2001"))
	assert.False(t, selected)
	sel := e.Selection()
	require.Len(t, sel, 1)
	assert.Equal(t, domain.SourceFoundation, sel[0].Source())

	// Deselecting the last foundation pick unlocks the other source.
	e.Toggle(foundation("f-1", "Ana Gomez", "1001", "Sub-15"))
	selected, _ = e.Toggle(temporal("t-1", "Diego Ruiz", "2001"))
	assert.True(t, selected)
}

func TestEngine_LockSource(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)
	e.LockSource(domain.SourceTemporal)

	// The list shows only the locked source.
	items, total, _ := e.Page()
	require.Equal(t, 2, total)
	for _, p := range items {
		assert.Equal(t, domain.SourceTemporal, p.Source())
	}

	// Even with nothing selected, picks from the other source are rejected.
	selected, _ := e.Toggle(foundation("f-1", "Ana Gomez", "1001", "Sub-15"))
	assert.False(t, selected)
	assert.Empty(t, e.Selection())
}

func TestEngine_SingleSelectReplacesAndCloses(t *testing.T) {
	e, _ := loadedEngine(t, SingleSelect)

	selected, done := e.Toggle(foundation("f-1", "Ana Gomez", "1001", "Sub-15"))
	assert.True(t, selected)
	assert.True(t, done)

	selected, done = e.Toggle(foundation("f-2", "Bruno Diaz", "1002", "Sub-17"))
	assert.True(t, selected)
	assert.True(t, done)
	sel := e.Selection()
	require.Len(t, sel, 1)
	assert.Equal(t, "f-2", sel[0].ParticipantID())
}

func TestEngine_Companions(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)
	p := foundation("f-1", "Ana Gomez", "1001", "Sub-15")
	e.Toggle(p)

	e.SetCompanions("f-1", 4)
	assert.Equal(t, 4, e.Companions("f-1"))

	e.SetCompanions("f-1", 25)
	assert.Equal(t, 10, e.Companions("f-1"))

	e.SetCompanions("f-1", -2)
	assert.Equal(t, 0, e.Companions("f-1"))

	// Unselected ids are ignored.
	e.SetCompanions("f-9", 3)
	assert.Equal(t, 0, e.Companions("f-9"))

	// Deselecting drops the count.
	e.SetCompanions("f-1", 5)
	e.Toggle(p)
	assert.Equal(t, 0, e.Companions("f-1"))
}

func TestEngine_Entries(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)
	e.Toggle(foundation("f-2", "Bruno Diaz", "1002", "Sub-17"))
	e.Toggle(foundation("f-1", "Ana Gomez", "1001", "Sub-15"))
	e.SetCompanions("f-1", 2)

	entries := e.Entries()
	require.Len(t, entries, 2)
	// Selection order, not roster order.
	assert.Equal(t, "f-2", entries[0].ParticipantID)
	assert.Equal(t, "f-1", entries[1].ParticipantID)
	assert.Equal(t, 0, entries[0].Companions)
	assert.Equal(t, 2, entries[1].Companions)
	assert.Equal(t, domain.SourceFoundation, entries[0].Source)
}

func TestEngine_LoadFailureDegradesToEmpty(t *testing.T) {
	loader := newFakeLoader()
	loader.err = errors.New("roster backend down")
	e := NewEngine(loader, MultiSelect, domain.TargetAthletes, 10)
	e.LoadRoster(context.Background(), domain.SourceFoundation)

	items, total, _ := e.Page()
	assert.Empty(t, items)
	assert.Equal(t, 0, total)

	// Filters and paging remain usable after the failure.
	e.SetFilter("ana", "Sub-15")
	e.SetPage(2)
	items, total, page := e.Page()
	assert.Empty(t, items)
	assert.Equal(t, 0, total)
	assert.Equal(t, 1, page)
}

func TestEngine_StaleLoadIsDropped(t *testing.T) {
	loader := newFakeLoader()
	loader.rosters[domain.SourceFoundation] = []domain.Participant{
		foundation("f-old", "Old Roster", "1", ""),
	}
	release := make(chan struct{})
	loader.block = release

	e := NewEngine(loader, MultiSelect, domain.TargetAthletes, 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		e.LoadRoster(context.Background(), domain.SourceFoundation)
	}()

	// A newer load for the same source finishes first.
	loader.mu.Lock()
	loader.block = nil
	loader.rosters[domain.SourceFoundation] = []domain.Participant{
		foundation("f-new", "New Roster", "2", ""),
	}
	loader.mu.Unlock()
	e.LoadRoster(context.Background(), domain.SourceFoundation)

	// Release the first fetch; its result must be ignored.
	close(release)
	wg.Wait()

	items, total, _ := e.Page()
	require.Equal(t, 1, total)
	assert.Equal(t, "f-new", items[0].ParticipantID())
}

func TestEngine_ClearKeepsRostersAndFilters(t *testing.T) {
	e, _ := loadedEngine(t, MultiSelect)
	e.SetFilter("a", "")
	e.Toggle(foundation("f-1", "Ana Gomez", "1001", "Sub-15"))
	e.SetCompanions("f-1", 3)

	e.Clear()
	assert.Empty(t, e.Selection())
	assert.Empty(t, e.Entries())
	assert.Equal(t, 0, e.Companions("f-1"))

	_, total, _ := e.Page()
	assert.Greater(t, total, 0, "rosters survive a clear")
}
