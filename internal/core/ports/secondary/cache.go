package secondary

import (
	"context"

	"gitlab.com/skillsnap.net/internal/domain"
)

type CertificateCache interface {
	// Get returns the cached certificate, nil on a miss
	Get(ctx context.Context, id string) (*domain.Certificate, error)

	// Set caches a certificate
	Set(ctx context.Context, cert *domain.Certificate) error

	Ping(ctx context.Context) error
}
