package secondary

import (
	"context"

	"gitlab.com/skillsnap.net/internal/domain"
)

type CertificateRepository interface {
	// Insert stores a new certificate; an existing id yields errs.ErrIdentifierCollision
	Insert(ctx context.Context, cert *domain.Certificate) error

	// Get retrieves a certificate by id, nil when absent
	Get(ctx context.Context, id string) (*domain.Certificate, error)

	// Ping checks the store is reachable
	Ping(ctx context.Context) error
}
