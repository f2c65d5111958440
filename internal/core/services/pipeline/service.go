package pipeline

import (
	"context"

	"gitlab.com/skillsnap.net/internal/domain"
)

// IPipelineService exposes the submission, certification and verification operations
type IPipelineService interface {
	// Attempt executes and judges a submission; it never persists anything
	Attempt(ctx context.Context, submission domain.Submission) *domain.AttemptResult

	// Certify mints a certificate for the submission
	Certify(ctx context.Context, req domain.CertifyRequest) (*domain.CertifyResult, error)

	// VerifyCertificate looks up a certificate by id
	VerifyCertificate(ctx context.Context, id string) (*domain.Certificate, error)

	HealthCheck(ctx context.Context) domain.HealthStatus
}
