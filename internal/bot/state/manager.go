package state

import (
	"sync"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// Manager keeps pending-input entries in process memory. Per-key mutation is
// guarded by one RWMutex so a period selection and a stray value submission
// for the same user cannot interleave.
type Manager struct {
	pending map[int64]domain.PendingInput
	mu      sync.RWMutex
}

// NewManager creates a new in-memory pending-input tracker
func NewManager() *Manager {
	return &Manager{
		pending: make(map[int64]domain.PendingInput),
	}
}

// SetPending records that userID owes a glucose value for period. Any
// existing entry is overwritten.
func (m *Manager) SetPending(userID int64, period domain.Period) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[userID] = domain.PendingInput{Period: period}
}

// GetPending returns the pending entry for userID, if any.
func (m *Manager) GetPending(userID int64) (domain.PendingInput, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.pending[userID]
	return entry, ok
}

// ClearPending removes the entry for userID; no-op when absent.
func (m *Manager) ClearPending(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, userID)
}
