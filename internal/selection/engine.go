// Package selection implements the participant selection engine: a filtered,
// paginated view over the foundation and temporary rosters with single or
// multi select semantics and a cross-selection source-consistency invariant.
package selection

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

// RosterLoader fetches a roster for a participant class from the external
// roster collaborator.
type RosterLoader interface {
	Load(ctx context.Context, source domain.SourceType, target domain.RegistrationTarget) ([]domain.Participant, error)
}

// Mode selects the engine's selection semantics.
type Mode int

const (
	// SingleSelect replaces the current selection on toggle and closes the picker.
	SingleSelect Mode = iota
	// MultiSelect adds/removes items keyed by identity.
	MultiSelect
)

// Engine owns the rosters, filter, pagination, and selection state for one
// picker instance. Methods are safe for the interleaved callback model:
// roster loads resolve asynchronously and stale results are dropped.
type Engine struct {
	mu       sync.Mutex
	loader   RosterLoader
	mode     Mode
	target   domain.RegistrationTarget
	pageSize int

	rosters map[domain.SourceType][]domain.Participant
	gen     map[domain.SourceType]uint64

	term     string
	category string
	page     int

	selected   map[string]domain.Participant
	order      []string
	companions map[string]int
	locked     domain.SourceType // "" until a selection or pre-selection fixes it
}

// NewEngine returns an engine for the given participant class. pageSize must
// be positive; zero falls back to 10.
func NewEngine(loader RosterLoader, mode Mode, target domain.RegistrationTarget, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Engine{
		loader:     loader,
		mode:       mode,
		target:     target,
		pageSize:   pageSize,
		rosters:    make(map[domain.SourceType][]domain.Participant),
		gen:        make(map[domain.SourceType]uint64),
		selected:   make(map[string]domain.Participant),
		companions: make(map[string]int),
		page:       1,
	}
}

// LockSource restricts the engine to one source type, as when a trainer with
// a known type was pre-selected in another sub-flow.
func (e *Engine) LockSource(source domain.SourceType) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.locked = source
}

// LoadRoster fetches the roster for source. A fetch failure degrades to an
// empty roster so the picker stays usable. A result that resolves after a
// newer LoadRoster call for the same source is ignored.
func (e *Engine) LoadRoster(ctx context.Context, source domain.SourceType) {
	e.mu.Lock()
	e.gen[source]++
	g := e.gen[source]
	loader, target := e.loader, e.target
	e.mu.Unlock()

	items, err := loader.Load(ctx, source, target)
	if err != nil {
		items = nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen[source] != g {
		return
	}
	e.rosters[source] = items
}

// SetFilter replaces the search term and category filter and resets the page
// to 1. The category filter applies only to foundation entries; temporary
// rosters carry no reliable category.
func (e *Engine) SetFilter(term, category string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term = term
	e.category = category
	e.page = 1
}

// SetPage moves to page n of the current filtered set. Out-of-range values
// clamp to the valid range.
func (e *Engine) SetPage(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := len(e.filteredLocked())
	last := (total + e.pageSize - 1) / e.pageSize
	if last < 1 {
		last = 1
	}
	if n < 1 {
		n = 1
	}
	if n > last {
		n = last
	}
	e.page = n
}

func matches(p domain.Participant, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.DisplayName()), term) ||
		strings.Contains(strings.ToLower(p.Identification()), term) ||
		strings.Contains(strings.ToLower(p.CategoryName()), term)
}

// filteredLocked returns the filtered, source-locked union of both rosters.
// Caller must hold e.mu.
func (e *Engine) filteredLocked() []domain.Participant {
	var out []domain.Participant
	for _, source := range []domain.SourceType{domain.SourceFoundation, domain.SourceTemporal} {
		if e.locked != "" && source != e.locked {
			continue
		}
		for _, p := range e.rosters[source] {
			if !matches(p, e.term) {
				continue
			}
			if e.category != "" && source == domain.SourceFoundation &&
				!strings.EqualFold(p.CategoryName(), e.category) {
				continue
			}
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].DisplayName()) < strings.ToLower(out[j].DisplayName())
	})
	return out
}

// Page returns the current page of the filtered result set along with the
// total filtered count and the current page number.
func (e *Engine) Page() (items []domain.Participant, total, page int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	filtered := e.filteredLocked()
	total = len(filtered)
	page = e.page
	start := (page - 1) * e.pageSize
	if start >= total {
		return []domain.Participant{}, total, page
	}
	end := start + e.pageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total, page
}

// Find returns the loaded participant with the given id, searching the
// source-locked rosters.
func (e *Engine) Find(id string) (domain.Participant, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, source := range []domain.SourceType{domain.SourceFoundation, domain.SourceTemporal} {
		if e.locked != "" && source != e.locked {
			continue
		}
		for _, p := range e.rosters[source] {
			if p.ParticipantID() == id {
				return p, true
			}
		}
	}
	return nil, false
}

// selectionSourceLocked returns the source type of the current selection, or
// the locked source if set. Caller must hold e.mu.
func (e *Engine) selectionSourceLocked() (domain.SourceType, bool) {
	if e.locked != "" {
		return e.locked, true
	}
	for _, p := range e.selected {
		return p.Source(), true
	}
	return "", false
}

// Toggle selects or deselects p. In single-select mode the selection is
// replaced and done is true, signalling the picker to close. In multi-select
// mode the item is added or removed by identity; once anything is selected,
// toggling an item of a different source type has no effect on the selection.
func (e *Engine) Toggle(p domain.Participant) (selected, done bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := p.ParticipantID()

	if e.mode == SingleSelect {
		if e.locked != "" && p.Source() != e.locked {
			return false, false
		}
		for old := range e.selected {
			delete(e.selected, old)
			delete(e.companions, old)
		}
		e.order = e.order[:0]
		e.selected[id] = p
		e.order = append(e.order, id)
		return true, true
	}

	if _, ok := e.selected[id]; ok {
		delete(e.selected, id)
		delete(e.companions, id)
		for i, oid := range e.order {
			if oid == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
		return false, false
	}

	if src, ok := e.selectionSourceLocked(); ok && p.Source() != src {
		// Mixed-source pick: no effect on the selection set.
		return false, false
	}
	e.selected[id] = p
	e.order = append(e.order, id)
	return true, false
}

// SetCompanions records the companion count for a currently selected item,
// clamped to [0, 10]. Unknown ids are ignored.
func (e *Engine) SetCompanions(id string, n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.selected[id]; !ok {
		return
	}
	e.companions[id] = domain.ClampCompanions(n)
}

// Companions returns the companion count for id (0 when unset or unselected).
func (e *Engine) Companions(id string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.companions[id]
}

// Selection returns the selected participants in selection order.
func (e *Engine) Selection() []domain.Participant {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Participant, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.selected[id])
	}
	return out
}

// Entries assembles the registration payload for the current selection.
func (e *Engine) Entries() []domain.RegistrationEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.RegistrationEntry, 0, len(e.order))
	for _, id := range e.order {
		p := e.selected[id]
		out = append(out, domain.RegistrationEntry{
			ParticipantID: p.ParticipantID(),
			Source:        p.Source(),
			Companions:    e.companions[id],
		})
	}
	return out
}

// Clear empties the selection and companion counts, keeping rosters and
// filters. A failed submission must not call Clear: the selection stays
// populated so the user can retry.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = make(map[string]domain.Participant)
	e.companions = make(map[string]int)
	e.order = nil
}
