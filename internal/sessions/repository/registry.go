// Package repository keeps search sessions in process memory, keyed by id,
// and evicts sessions that have been idle longer than a TTL.
package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"rentalsearch/internal/search"
	"rentalsearch/platform/apperr"
	"rentalsearch/platform/logger"
)

const minSweepInterval = time.Second

type entry struct {
	session  *search.Session
	lastUsed time.Time
}

// Registry is a concurrency safe map of live sessions.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	ttl      time.Duration
	now      func() time.Time
	log      *logger.Logger

	stop      chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

// New creates a registry and starts its background sweeper. Call Close to
// stop it.
func New(ttl time.Duration, log *logger.Logger) *Registry {
	r := newRegistry(ttl, log, time.Now)

	interval := ttl / 2
	if interval < minSweepInterval {
		interval = minSweepInterval
	}
	r.done = make(chan struct{})
	go r.sweepLoop(interval)

	return r
}

func newRegistry(ttl time.Duration, log *logger.Logger, now func() time.Time) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*entry),
		ttl:      ttl,
		now:      now,
		log:      log,
		stop:     make(chan struct{}),
	}
}

// Add stores s under a new random id.
func (r *Registry) Add(s *search.Session) uuid.UUID {
	id := uuid.New()

	r.mu.Lock()
	r.sessions[id] = &entry{session: s, lastUsed: r.now()}
	r.mu.Unlock()

	return id
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id uuid.UUID) (*search.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, apperr.NotFound("search session not found").WithOp("sessions.Get")
	}
	e.lastUsed = r.now()
	return e.session, nil
}

// Delete removes the session.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return apperr.NotFound("search session not found").WithOp("sessions.Delete")
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if e.lastUsed.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Close stops the sweeper and waits for it to exit. Safe to call more than
// once.
func (r *Registry) Close() {
	r.closeOnce.Do(func() {
		close(r.stop)
		if r.done != nil {
			<-r.done
		}
	})
}

func (r *Registry) sweepLoop(interval time.Duration) {
	defer close(r.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if removed := r.Sweep(); removed > 0 {
				r.log.Info("expired search sessions evicted", "count", removed, "remaining", r.Len())
			}
		}
	}
}
