package audit

import (
	"context"

	"gitlab.com/skillsnap.net/internal/domain"
)

// IAuditService produces a best-effort review of passed code
type IAuditService interface {
	// Review returns nil whenever no report could be produced
	Review(ctx context.Context, sourceText string) *domain.AuditReport
}
