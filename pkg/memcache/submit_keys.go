// pkg/memcache/submit_keys.go
package mem

import (
	"sync"
	"time"
)

// SubmitKeyStore remembers which tour a submission idempotency key produced,
// so a repeated submission is answered with the first result.
type SubmitKeyStore interface {
	Remember(key string, tourID string, ttl time.Duration)

	// Lookup returns the tour id stored for key if it has not expired.
	Lookup(key string) (string, bool)
}

type entry struct {
	tourID    string
	expiresAt time.Time
}

type SubmitKeys struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewSubmitKeys() *SubmitKeys {
	return &SubmitKeys{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *SubmitKeys) Remember(key string, tourID string, ttl time.Duration) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.data[key] = entry{
		tourID:    tourID,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *SubmitKeys) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.tourID, true
}

// sweep drops expired keys. Caller holds the write lock.
func (s *SubmitKeys) sweep() {
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
