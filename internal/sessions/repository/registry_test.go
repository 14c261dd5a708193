package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"rentalsearch/internal/search"
	"rentalsearch/platform/apperr"
	"rentalsearch/platform/logger"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newSession() *search.Session {
	return search.NewSession(nil, logger.Discard())
}

func TestRegistryAddGetDelete(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := newRegistry(time.Minute, logger.Discard(), clock.Now)

	s := newSession()
	id := r.Add(s)

	got, err := r.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Fatal("Get returned a different session")
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}

	if err := r.Delete(id); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get(id); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := r.Delete(id); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if _, err := r.Get(uuid.New()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestRegistrySweepEvictsIdleSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := newRegistry(10*time.Minute, logger.Discard(), clock.Now)

	idle := r.Add(newSession())
	active := r.Add(newSession())

	clock.Advance(6 * time.Minute)
	if _, err := r.Get(active); err != nil {
		t.Fatal(err)
	}

	clock.Advance(5 * time.Minute)
	if removed := r.Sweep(); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if _, err := r.Get(idle); err == nil {
		t.Fatal("idle session survived the sweep")
	}
	if _, err := r.Get(active); err != nil {
		t.Fatalf("recently used session was evicted: %v", err)
	}
}

func TestRegistryCloseStopsSweeper(t *testing.T) {
	r := New(time.Hour, logger.Discard())
	r.Add(newSession())

	done := make(chan struct{})
	go func() {
		r.Close()
		r.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}
}
