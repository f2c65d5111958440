package passledger

import (
	"context"
	"sync"
	"time"

	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
)

var _ secondary.PassLedger = (*MemoryLedger)(nil)

// MemoryLedger is the single process ledger used when Redis is disabled
type MemoryLedger struct {
	mu   sync.Mutex
	used map[string]time.Time
	now  func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		used: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (l *MemoryLedger) Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for id, expiry := range l.used {
		if now.After(expiry) {
			delete(l.used, id)
		}
	}

	if _, ok := l.used[tokenID]; ok {
		return false, nil
	}
	l.used[tokenID] = now.Add(ttl)
	return true, nil
}
