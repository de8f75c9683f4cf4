package dreams

import (
	"sync"
	"time"
)

// maxDreams bounds the per-user history; the oldest record is evicted
// once a sixth dream is appended.
const maxDreams = 5

// Record is one interpreted dream. IDs are monotonic per user and do
// not reset on eviction, so a button referencing an old dream never
// resolves to a different one.
type Record struct {
	ID             int
	Dream          string
	Interpretation string
	CreatedAt      time.Time
}

type Manager struct {
	mu      sync.RWMutex
	dreams  map[int64][]Record
	nextIDs map[int64]int
}

func NewManager() *Manager {
	return &Manager{
		dreams:  make(map[int64][]Record),
		nextIDs: make(map[int64]int),
	}
}

func (m *Manager) Append(userID int64, dream, interpretation string) Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextIDs[userID]++
	rec := Record{
		ID:             m.nextIDs[userID],
		Dream:          dream,
		Interpretation: interpretation,
		CreatedAt:      time.Now(),
	}
	rs := append(m.dreams[userID], rec)
	if len(rs) > maxDreams {
		rs = rs[len(rs)-maxDreams:]
	}
	m.dreams[userID] = rs
	return rec
}

// Latest returns the most recent dream, if any.
func (m *Manager) Latest(userID int64) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs := m.dreams[userID]
	if len(rs) == 0 {
		return Record{}, false
	}
	return rs[len(rs)-1], true
}

// All returns the user's dreams oldest-first.
func (m *Manager) All(userID int64) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs := m.dreams[userID]
	out := make([]Record, len(rs))
	copy(out, rs)
	return out
}

// Get returns the dream with the given id, if it is still retained.
func (m *Manager) Get(userID int64, id int) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.dreams[userID] {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func (m *Manager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.dreams, userID)
}
