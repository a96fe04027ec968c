package state

import (
	"context"
	"sync"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

type undoItem struct {
	entry     domain.LogEntry
	expiresAt time.Time
}

type sentItem struct {
	at        time.Time
	expiresAt time.Time
}

// Manager manages user states and temporary data in memory
type Manager struct {
	userStates map[int64]string
	tempData   map[int64]map[string]string
	sent       map[string]sentItem
	undo       map[int64]undoItem
	now        func() time.Time
	mu         sync.RWMutex
}

var _ StateManager = (*Manager)(nil)

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		tempData:   make(map[int64]map[string]string),
		sent:       make(map[string]sentItem),
		undo:       make(map[int64]undoItem),
		now:        time.Now,
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

// SetTempData sets temporary data for a user
func (m *Manager) SetTempData(userID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tempData[userID] == nil {
		m.tempData[userID] = make(map[string]string)
	}
	m.tempData[userID][key] = value
}

// GetTempData gets temporary data for a user
func (m *Manager) GetTempData(userID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.tempData[userID][key]
	return value, exists
}

// ClearTempData clears all temporary data for a user
func (m *Manager) ClearTempData(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tempData, userID)
}

func (m *Manager) MarkSent(_ context.Context, tag string, at time.Time, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[tag] = sentItem{at: at, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *Manager) LastSent(_ context.Context, tag string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.sent[tag]
	if !ok {
		return time.Time{}, nil
	}
	if !m.now().Before(item.expiresAt) {
		delete(m.sent, tag)
		return time.Time{}, nil
	}
	return item.at, nil
}

func (m *Manager) PutUndo(_ context.Context, userID int64, entry domain.LogEntry, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo[userID] = undoItem{entry: entry, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *Manager) TakeUndo(_ context.Context, userID int64) (*domain.LogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.undo[userID]
	if !ok {
		return nil, nil
	}
	delete(m.undo, userID)
	if !m.now().Before(item.expiresAt) {
		return nil, nil
	}
	entry := item.entry
	return &entry, nil
}

// Close is a no-op for the in-memory manager
func (m *Manager) Close() error {
	return nil
}
