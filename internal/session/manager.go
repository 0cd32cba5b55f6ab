package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager is the registry of live sessions. One Controller exists per
// active attempt; teardown removes it and cancels its timer.
type Manager struct {
	mu       sync.Mutex
	backend  Backend
	log      zerolog.Logger
	sessions map[uuid.UUID]*Controller
}

// NewManager creates an empty session registry.
func NewManager(backend Backend, log zerolog.Logger) *Manager {
	return &Manager{
		backend:  backend,
		log:      log.With().Str("component", "session_manager").Logger(),
		sessions: make(map[uuid.UUID]*Controller),
	}
}

// Create loads a new session for the caller and registers it. A context
// cancelled during the load registers nothing; the caller navigated away
// and must never receive a half-built session.
func (m *Manager) Create(ctx context.Context, token string, examID uuid.UUID) (*Controller, error) {
	ctrl, err := Load(ctx, m.backend, m.log, token, examID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[ctrl.ID()] = ctrl
	m.mu.Unlock()

	m.log.Info().
		Str("session_id", ctrl.ID().String()).
		Str("exam_id", examID.String()).
		Msg("Session created")
	return ctrl, nil
}

// Get returns a live session by ID.
func (m *Manager) Get(id uuid.UUID) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ctrl, ok := m.sessions[id]
	return ctrl, ok
}

// Teardown destroys a session with no submission side effects. Returns
// false if the session does not exist.
func (m *Manager) Teardown(id uuid.UUID) bool {
	m.mu.Lock()
	ctrl, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return false
	}
	ctrl.Teardown()
	return true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ReapIdle tears down sessions untouched for longer than maxIdle. Abandoned
// browsers would otherwise leak controllers (and their tick goroutines)
// forever.
func (m *Manager) ReapIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var stale []*Controller
	for id, ctrl := range m.sessions {
		if ctrl.LastActivity().Before(cutoff) {
			stale = append(stale, ctrl)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, ctrl := range stale {
		ctrl.Teardown()
	}
	if len(stale) > 0 {
		m.log.Info().Int("count", len(stale)).Msg("Reaped idle sessions")
	}
	return len(stale)
}
