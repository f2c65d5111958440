package pipeline

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/skillsnap.net/internal/config"
	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
	"gitlab.com/skillsnap.net/internal/core/services/audit"
	"gitlab.com/skillsnap.net/internal/core/services/certificate"
	"gitlab.com/skillsnap.net/internal/core/services/execution"
	"gitlab.com/skillsnap.net/internal/core/services/validation"
	"gitlab.com/skillsnap.net/internal/domain"
	"gitlab.com/skillsnap.net/internal/static/errs"
)

var _ IPipelineService = (*PipelineService)(nil)

const healthPingTimeout = 3 * time.Second

// PipelineService sequences execution, validation, audit and certification
type PipelineService struct {
	executor     execution.IExecutionService
	validator    *validation.Validator
	auditor      audit.IAuditService
	registry     certificate.IRegistry
	verifyPrefix string
	logger       primary.Logger

	passTokens primary.PassTokenService
	ledger     secondary.PassLedger
	passCfg    *config.PassTokenConfig
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(
	executor execution.IExecutionService,
	validator *validation.Validator,
	auditor audit.IAuditService,
	registry certificate.IRegistry,
	registryCfg *config.RegistryConfig,
	logger primary.Logger,
) *PipelineService {
	return &PipelineService{
		executor:     executor,
		validator:    validator,
		auditor:      auditor,
		registry:     registry,
		verifyPrefix: registryCfg.VerifyPathPrefix,
		logger:       logger,
	}
}

// SetPassTokens enables pass token issuance, and redemption when cfg.Enforce is set
func (s *PipelineService) SetPassTokens(tokens primary.PassTokenService, ledger secondary.PassLedger, cfg *config.PassTokenConfig) {
	s.passTokens = tokens
	s.ledger = ledger
	s.passCfg = cfg
}

// Attempt runs Submitted -> Executed -> Verdict, and audits only a passed run
func (s *PipelineService) Attempt(ctx context.Context, submission domain.Submission) *domain.AttemptResult {
	s.logger.Info("Attempt received", "author", submission.AuthorName, "size", len(submission.SourceText))

	outcome := s.executor.Execute(ctx, submission.SourceText)
	verdict := s.validator.Validate(outcome)

	switch {
	case outcome.TimedOut:
		return &domain.AttemptResult{Verdict: verdict, Output: domain.OutputTimedOut}
	case outcome.TransportError != nil:
		return &domain.AttemptResult{Verdict: verdict, Output: domain.OutputRunnerFailure + *outcome.TransportError}
	}

	result := &domain.AttemptResult{
		Verdict: verdict,
		Output:  outcome.Stdout,
	}
	if outcome.Stderr != "" {
		stderr := outcome.Stderr
		result.Error = &stderr
	}

	if !verdict.Passed() {
		s.logger.Info("Attempt failed", "author", submission.AuthorName)
		return result
	}

	result.Audit = s.auditor.Review(ctx, submission.SourceText)
	result.PassToken = s.issuePassToken(ctx, submission.SourceText)
	s.logger.Info("Attempt passed", "author", submission.AuthorName, "audited", result.Audit != nil)
	return result
}

// Certify mints a certificate with the caller supplied audit text. Unless pass tokens
// are enforced, the caller is trusted to certify only code that passed an attempt.
func (s *PipelineService) Certify(ctx context.Context, req domain.CertifyRequest) (*domain.CertifyResult, error) {
	if s.passCfg != nil && s.passCfg.Enforce {
		if err := s.redeemPassToken(ctx, req); err != nil {
			s.logger.Warn("Certification refused", "author", req.AuthorName, "error", err)
			return nil, err
		}
	}

	cert, err := s.registry.Mint(ctx, req.AuthorName, req.SourceText, req.AuditText)
	if err != nil {
		return nil, err
	}

	return &domain.CertifyResult{
		ID:        cert.ID,
		VerifyURL: s.verifyPrefix + cert.ID,
	}, nil
}

func (s *PipelineService) VerifyCertificate(ctx context.Context, id string) (*domain.Certificate, error) {
	return s.registry.Lookup(ctx, id)
}

func (s *PipelineService) HealthCheck(ctx context.Context) domain.HealthStatus {
	pingCtx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	status := domain.HealthStatus{}
	if err := s.registry.Ping(pingCtx); err != nil {
		s.logger.Warn("Certificate store unreachable", "error", err)
	} else {
		status.StoreReachable = true
	}

	enabled, err := s.registry.PingCache(pingCtx)
	status.CacheEnabled = enabled
	status.CacheReachable = enabled && err == nil
	return status
}

func (s *PipelineService) issuePassToken(ctx context.Context, sourceText string) string {
	if s.passTokens == nil {
		return ""
	}
	token, err := s.passTokens.Issue(ctx, sourceText)
	if err != nil {
		s.logger.Error("Failed to issue pass token", "error", err)
		return ""
	}
	return token
}

// redeemPassToken checks the token matches the submitted code and burns it
func (s *PipelineService) redeemPassToken(ctx context.Context, req domain.CertifyRequest) error {
	if req.PassToken == "" {
		return errs.ErrPassTokenRequired
	}
	if s.passTokens == nil {
		return errs.ErrPassTokenInvalid
	}

	grant, err := s.passTokens.Verify(ctx, req.PassToken, req.SourceText)
	if err != nil {
		return err
	}

	if s.ledger == nil {
		return nil
	}
	fresh, err := s.ledger.Consume(ctx, grant.TokenID, s.passCfg.TTL)
	if err != nil {
		return fmt.Errorf("%w: pass ledger: %v", errs.ErrStoreUnavailable, err)
	}
	if !fresh {
		return errs.ErrPassTokenReused
	}
	return nil
}
