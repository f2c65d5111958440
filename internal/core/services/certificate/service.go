package certificate

import (
	"context"

	"gitlab.com/skillsnap.net/internal/domain"
)

// IRegistry mints and looks up certificates
type IRegistry interface {
	// Mint persists a new certificate. It does not check how the code was judged.
	Mint(ctx context.Context, authorName, sourceText string, audit *string) (*domain.Certificate, error)

	// Lookup retrieves a certificate by id, case-insensitively
	Lookup(ctx context.Context, id string) (*domain.Certificate, error)

	// Ping checks the backing store
	Ping(ctx context.Context) error

	// PingCache checks the verify cache; enabled is false when no cache is configured
	PingCache(ctx context.Context) (enabled bool, err error)
}
