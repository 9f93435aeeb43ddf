// Package projection holds the in-memory registrations projection used by the
// read-only "view inscribed" flows. It is an explicitly-owned, injectable
// store constructed at application start, never a lazily-initialized global.
package projection

import (
	"sync"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

// Registrations is a process-wide projection of registrations keyed by event
// and participant class. It is mutated only by successful submission flows
// and read fresh (copied) each time a viewer opens.
type Registrations struct {
	mu   sync.RWMutex
	data map[key][]*domain.Registration
}

type key struct {
	eventID string
	target  domain.RegistrationTarget
}

// NewRegistrations returns an empty projection. Call it once in main and
// inject the instance where needed.
func NewRegistrations() *Registrations {
	return &Registrations{data: make(map[key][]*domain.Registration)}
}

// Replace swaps the stored set for the event/class pair.
func (p *Registrations) Replace(eventID string, target domain.RegistrationTarget, regs []*domain.Registration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]*domain.Registration, len(regs))
	copy(cp, regs)
	p.data[key{eventID, target}] = cp
}

// Append adds registrations to the stored set for the event/class pair.
func (p *Registrations) Append(eventID string, target domain.RegistrationTarget, regs []*domain.Registration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	k := key{eventID, target}
	p.data[k] = append(p.data[k], regs...)
}

// Snapshot returns a copy of the stored set for the event/class pair. Callers
// get fresh data on every open; mutating the returned slice does not affect
// the projection.
func (p *Registrations) Snapshot(eventID string, target domain.RegistrationTarget) []*domain.Registration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	src := p.data[key{eventID, target}]
	cp := make([]*domain.Registration, len(src))
	copy(cp, src)
	return cp
}

// Drop removes the stored set for the event/class pair, e.g. after the event
// itself is deleted.
func (p *Registrations) Drop(eventID string, target domain.RegistrationTarget) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.data, key{eventID, target})
}
