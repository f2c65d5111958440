package secondary

import (
	"context"
	"time"
)

type PassLedger interface {
	// Consume marks tokenID as used; false means it was already consumed
	Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}
