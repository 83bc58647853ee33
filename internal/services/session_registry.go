package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mockinsight/interview-service/internal/interview"
)

type sessionEntry struct {
	flow      *interview.Flow
	createdAt time.Time
	lastSeen  time.Time
}

// ExpiredSession is a session removed by the idle reaper
type ExpiredSession struct {
	ID   string
	Flow *interview.Flow
}

// SessionRegistry keeps the flow of every open browser session in memory.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	idleTTL  time.Duration
	now      func() time.Time
}

func NewSessionRegistry(idleTTL time.Duration) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*sessionEntry),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Add registers flow under a new random id.
func (r *SessionRegistry) Add(flow *interview.Flow) (string, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	now := r.now()
	r.sessions[id] = &sessionEntry{flow: flow, createdAt: now, lastSeen: now}
	return id, now
}

// Get returns the flow for id and marks the session as active.
func (r *SessionRegistry) Get(id string) (*interview.Flow, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, time.Time{}, ErrSessionNotFound
	}
	entry.lastSeen = r.now()
	return entry.flow, entry.createdAt, nil
}

// Remove unregisters id. The caller owns the returned flow.
func (r *SessionRegistry) Remove(id string) (*interview.Flow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(r.sessions, id)
	return entry.flow, nil
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Expire removes every session idle for longer than the ttl.
func (r *SessionRegistry) Expire() []ExpiredSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	var expired []ExpiredSession
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			expired = append(expired, ExpiredSession{ID: id, Flow: entry.flow})
			delete(r.sessions, id)
		}
	}
	return expired
}

// Drain removes and returns all sessions.
func (r *SessionRegistry) Drain() []ExpiredSession {
	r.mu.Lock()
	defer r.mu.Unlock()

	drained := make([]ExpiredSession, 0, len(r.sessions))
	for id, entry := range r.sessions {
		drained = append(drained, ExpiredSession{ID: id, Flow: entry.flow})
	}
	r.sessions = make(map[string]*sessionEntry)
	return drained
}
