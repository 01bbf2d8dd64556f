package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Manager owns the contexts of all live sessions.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	contexts map[string]*Context
	now      func() time.Time
	logger   *logrus.Logger
}

func NewManager(ttl time.Duration, logger *logrus.Logger) *Manager {
	return &Manager{
		ttl:      ttl,
		contexts: make(map[string]*Context),
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns the context for id, creating an idle one on first use. Each
// call counts as activity and postpones expiry.
func (m *Manager) Get(id string) *Context {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contexts[id]
	if !ok {
		c = newContext(id, m.now)
		m.contexts[id] = c
		m.logger.WithField("session_id", id).Debug("Session started")
		return c
	}
	c.touch()
	return c
}

// Lookup returns the context for id without creating one.
func (m *Manager) Lookup(id string) (*Context, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.contexts[id]
	return c, ok
}

// End tears down the context for id.
func (m *Manager) End(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.contexts[id]; ok {
		delete(m.contexts, id)
		m.logger.WithField("session_id", id).Debug("Session ended")
	}
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.contexts)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed. Sessions with a request in flight are kept.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for id, c := range m.contexts {
		if c.idleSince(cutoff) {
			delete(m.contexts, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.WithFields(logrus.Fields{"removed": removed, "remaining": len(m.contexts)}).Info("Expired idle sessions")
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}
