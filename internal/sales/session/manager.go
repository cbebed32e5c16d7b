// Package session keeps the live cart builders between HTTP requests.
// A cart spans many requests while the operator walks the selection
// steps, so each builder is held server-side under an explicit session
// id. Sessions are process-local and expire on inactivity; nothing is
// persisted until the cart is submitted.
package session

import (
	"context"
	"sync"
	"time"

	"pos_admin_backend/internal/sales/cart"
	"pos_admin_backend/platform/apperr"
	"pos_admin_backend/platform/logger"

	"github.com/google/uuid"
)

// Session pairs a builder with the operator that opened it. The builder
// is not safe for concurrent use, so every operation goes through Do.
type Session struct {
	ID         uuid.UUID
	OperatorID uuid.UUID

	mu         sync.Mutex
	builder    *cart.Builder
	lastAccess time.Time
}

// Do runs fn with exclusive access to the session's builder and marks
// the session as recently used.
func (s *Session) Do(fn func(b *cart.Builder) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return fn(s.builder)
}

func (s *Session) expired(ttl time.Duration, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastAccess) > ttl
}

// Manager owns the session map and evicts idle sessions.
type Manager struct {
	ttl           time.Duration
	sweepInterval time.Duration
	log           *logger.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates a session manager. Sessions idle longer than ttl
// are removed by Run's sweep loop.
func NewManager(ttl, sweepInterval time.Duration, log *logger.Logger) *Manager {
	return &Manager{
		ttl:           ttl,
		sweepInterval: sweepInterval,
		log:           log,
		sessions:      make(map[uuid.UUID]*Session),
	}
}

// Create opens a new cart session for the operator against the given
// catalog snapshot and returns its id.
func (m *Manager) Create(operatorID uuid.UUID, catalog cart.Catalog) *Session {
	s := &Session{
		ID:         uuid.New(),
		OperatorID: operatorID,
		builder:    cart.NewBuilder(catalog),
		lastAccess: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id, scoped to its operator.
func (m *Manager) Get(id, operatorID uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, apperr.NotFound("cart session not found or expired")
	}
	if s.OperatorID != operatorID {
		return nil, apperr.Forbidden("cart session belongs to another operator")
	}
	return s, nil
}

// Delete cancels the session's builder and removes it from the map.
// Deleting an unknown id is a no-op.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Do(func(b *cart.Builder) error {
			b.Cancel()
			return nil
		})
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run sweeps expired sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.expired(m.ttl, now) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Do(func(b *cart.Builder) error {
			b.Cancel()
			return nil
		})
	}
	if len(expired) > 0 && m.log != nil {
		m.log.Info("expired cart sessions swept", "count", len(expired))
	}
}
