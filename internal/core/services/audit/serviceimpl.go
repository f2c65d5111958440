package audit

import (
	"context"
	"strings"
	"time"

	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
	"gitlab.com/skillsnap.net/internal/domain"
)

var _ IAuditService = (*AuditService)(nil)

type AuditService struct {
	reviewer secondary.CodeReviewer
	timeout  time.Duration
	logger   primary.Logger
}

// NewAuditService creates a new audit service. A nil reviewer disables audits.
func NewAuditService(reviewer secondary.CodeReviewer, timeout time.Duration, logger primary.Logger) *AuditService {
	return &AuditService{
		reviewer: reviewer,
		timeout:  timeout,
		logger:   logger,
	}
}

// Review asks the reviewer for a short report; every failure degrades to nil
func (s *AuditService) Review(ctx context.Context, sourceText string) *domain.AuditReport {
	if s.reviewer == nil {
		return nil
	}

	reviewCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.reviewer.Generate(reviewCtx, BuildPrompt(sourceText))
	if err != nil {
		s.logger.Warn("Audit unavailable", "error", err)
		return nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Warn("Audit returned empty text")
		return nil
	}

	return &domain.AuditReport{Text: text}
}
