package voice

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on
// restart, so it is only used when no Redis is configured.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func memoryKey(guildID, userID string) string {
	return guildID + ":" + userID
}

func (m *MemoryStore) Get(_ context.Context, guildID, userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[memoryKey(guildID, userID)]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) PutIfAbsent(_ context.Context, guildID, userID string, s Session) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memoryKey(guildID, userID)
	if _, ok := m.sessions[key]; ok {
		return false, nil
	}
	m.sessions[key] = s
	return true, nil
}

func (m *MemoryStore) Take(_ context.Context, guildID, userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memoryKey(guildID, userID)
	s, ok := m.sessions[key]
	if !ok {
		return nil, nil
	}
	delete(m.sessions, key)
	return &s, nil
}

// Len returns the number of active sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
