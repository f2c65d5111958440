package certificate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitlab.com/skillsnap.net/internal/config"
	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
	"gitlab.com/skillsnap.net/internal/domain"
	"gitlab.com/skillsnap.net/internal/static/errs"
)

var _ IRegistry = (*Registry)(nil)

// Registry implements IRegistry on top of the certificate store and an optional cache
type Registry struct {
	repo   secondary.CertificateRepository
	cache  secondary.CertificateCache
	ids    *IDGenerator
	cfg    *config.RegistryConfig
	logger primary.Logger
	now    func() time.Time
}

// NewRegistry creates a new registry. cache may be nil.
func NewRegistry(
	repo secondary.CertificateRepository,
	cache secondary.CertificateCache,
	ids *IDGenerator,
	cfg *config.RegistryConfig,
	logger primary.Logger,
) *Registry {
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &Registry{
		repo:   repo,
		cache:  cache,
		ids:    ids,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// SetClock overrides the issuance clock
func (r *Registry) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Mint generates an id and inserts the certificate. An id collision reported by the
// store is retried with a fresh id up to the configured number of attempts.
func (r *Registry) Mint(ctx context.Context, authorName, sourceText string, audit *string) (*domain.Certificate, error) {
	attempts := r.cfg.MintAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		id, err := r.ids.Next()
		if err != nil {
			r.logger.Error("Failed to generate certificate id", "error", err)
			return nil, fmt.Errorf("%w: %v", errs.ErrInternal, err)
		}

		cert := &domain.Certificate{
			ID:         id,
			AuthorName: authorName,
			SourceText: sourceText,
			AuditText:  copyString(audit),
			IssuedAt:   r.now().UTC(),
		}

		err = r.repo.Insert(ctx, cert)
		if err == nil {
			r.logger.Info("Certificate minted", "certId", id, "author", authorName)
			r.remember(ctx, cert)
			return cert.Clone(), nil
		}

		if !errors.Is(err, errs.ErrIdentifierCollision) {
			r.logger.Error("Failed to mint certificate", "certId", id, "error", err)
			return nil, fmt.Errorf("failed to mint certificate: %w", err)
		}

		r.logger.Warn("Certificate id collision", "certId", id, "attempt", attempt)
		lastErr = err
	}

	return nil, fmt.Errorf("failed to mint certificate after %d attempts: %w", attempts, lastErr)
}

// Lookup normalizes id to upper case and returns the stored certificate
func (r *Registry) Lookup(ctx context.Context, id string) (*domain.Certificate, error) {
	normalized := NormalizeID(id)
	if !IsWellFormedID(normalized) {
		return nil, errs.ErrCertificateNotFound
	}

	if cached := r.recall(ctx, normalized); cached != nil {
		return cached, nil
	}

	cert, err := r.repo.Get(ctx, normalized)
	if err != nil {
		r.logger.Error("Failed to look up certificate", "certId", normalized, "error", err)
		return nil, fmt.Errorf("failed to look up certificate: %w", err)
	}
	if cert == nil {
		return nil, errs.ErrCertificateNotFound
	}

	r.remember(ctx, cert)
	return cert.Clone(), nil
}

func (r *Registry) Ping(ctx context.Context) error {
	return r.repo.Ping(ctx)
}

func (r *Registry) PingCache(ctx context.Context) (bool, error) {
	if r.cache == nil {
		return false, nil
	}
	return true, r.cache.Ping(ctx)
}

// recall reads the cache; cache failures behave like a miss
func (r *Registry) recall(ctx context.Context, id string) *domain.Certificate {
	if r.cache == nil {
		return nil
	}
	cert, err := r.cache.Get(ctx, id)
	if err != nil {
		r.logger.Warn("Certificate cache read failed", "certId", id, "error", err)
		return nil
	}
	return cert
}

func (r *Registry) remember(ctx context.Context, cert *domain.Certificate) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, cert); err != nil {
		r.logger.Warn("Certificate cache write failed", "certId", cert.ID, "error", err)
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
