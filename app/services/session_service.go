// Package services contains application services shared across handlers
package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	businessflow "github.com/ssoogun/outlier.property/business_flow"
	"github.com/ssoogun/outlier.property/utils"
)

// SessionManager hands out per-session favourites stores. Every session gets
// its own isolated store; an idle session is expired by the cleanup sweep and
// its favourites are gone with it. Nothing survives a process restart.
type SessionManager interface {
	// Acquire resolves the session for the given ID, creating a fresh
	// session with a new opaque ID when the given one is empty, unknown,
	// or expired. It returns the effective session ID and its store.
	Acquire(sessionID string) (string, *businessflow.FavouritesStore)

	// StartCleanup launches the background expiry sweep. The returned
	// function stops it.
	StartCleanup(ctx context.Context, interval time.Duration) func()

	// ActiveSessions reports the number of live sessions.
	ActiveSessions() int
}

type sessionEntry struct {
	store    *businessflow.FavouritesStore
	lastSeen time.Time
}

type InMemorySessionManager struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	idleTTL  time.Duration
}

// NewSessionManager creates a manager whose sessions expire after idleTTL
// without activity.
func NewSessionManager(idleTTL time.Duration) *InMemorySessionManager {
	return &InMemorySessionManager{
		sessions: make(map[string]*sessionEntry),
		idleTTL:  idleTTL,
	}
}

func (m *InMemorySessionManager) Acquire(sessionID string) (string, *businessflow.FavouritesStore) {
	now := utils.UTCNow()

	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionID != "" {
		if entry, ok := m.sessions[sessionID]; ok {
			if !utils.IsExpired(entry.lastSeen.Add(m.idleTTL)) {
				entry.lastSeen = now
				return sessionID, entry.store
			}
			delete(m.sessions, sessionID)
		}
	}

	id := uuid.NewString()
	entry := &sessionEntry{
		store:    businessflow.NewFavouritesStore(),
		lastSeen: now,
	}
	m.sessions[id] = entry
	return id, entry.store
}

func (m *InMemorySessionManager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StartCleanup periodically removes idle sessions. The returned cancel
// function stops the sweep.
func (m *InMemorySessionManager) StartCleanup(parent context.Context, interval time.Duration) func() {
	sweepCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				if removed := m.sweep(); removed > 0 {
					log.Printf("Session cleanup removed %d idle sessions", removed)
				}
			}
		}
	}()
	return cancel
}

func (m *InMemorySessionManager) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, entry := range m.sessions {
		if utils.IsExpired(entry.lastSeen.Add(m.idleTTL)) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
