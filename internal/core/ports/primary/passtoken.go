package primary

import (
	"context"

	"gitlab.com/skillsnap.net/internal/domain"
)

// PassTokenService issues and checks the signed proof of a passed attempt
type PassTokenService interface {
	// Issue signs a short-lived token bound to the fingerprint of sourceText
	Issue(ctx context.Context, sourceText string) (string, error)

	// Verify validates the token and checks it was issued for sourceText
	Verify(ctx context.Context, token string, sourceText string) (*domain.PassGrant, error)
}
