package certificatecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
	"gitlab.com/skillsnap.net/internal/domain"
)

const certificateKeyPrefix = "cert:"

var _ secondary.CertificateCache = (*CertificateCache)(nil)

// CertificateCache keeps minted certificates in Redis for the verify path.
// Certificates never change once minted, so entries only expire.
type CertificateCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	logger      primary.Logger
}

// NewCertificateCache creates a new Redis certificate cache
func NewCertificateCache(redisClient *redis.Client, ttl time.Duration, logger primary.Logger) *CertificateCache {
	return &CertificateCache{
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

func certificateKey(id string) string {
	return fmt.Sprintf("%s%s", certificateKeyPrefix, id)
}

// cachedCertificate holds text fields as bytes so they survive JSON
// byte-for-byte even when they are not valid UTF-8.
type cachedCertificate struct {
	ID       string    `json:"id"`
	Author   []byte    `json:"user_name"`
	Source   []byte    `json:"code"`
	Audit    []byte    `json:"audit,omitempty"`
	HasAudit bool      `json:"has_audit"`
	IssuedAt time.Time `json:"issued_at"`
}

func toCached(cert *domain.Certificate) cachedCertificate {
	entry := cachedCertificate{
		ID:       cert.ID,
		Author:   []byte(cert.AuthorName),
		Source:   []byte(cert.SourceText),
		IssuedAt: cert.IssuedAt,
	}
	if cert.AuditText != nil {
		entry.Audit = []byte(*cert.AuditText)
		entry.HasAudit = true
	}
	return entry
}

func (e cachedCertificate) certificate() *domain.Certificate {
	cert := &domain.Certificate{
		ID:         e.ID,
		AuthorName: string(e.Author),
		SourceText: string(e.Source),
		IssuedAt:   e.IssuedAt,
	}
	if e.HasAudit {
		audit := string(e.Audit)
		cert.AuditText = &audit
	}
	return cert
}

// Get returns nil, nil on a miss
func (c *CertificateCache) Get(ctx context.Context, id string) (*domain.Certificate, error) {
	data, err := c.redisClient.Get(ctx, certificateKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached certificate: %w", err)
	}

	var entry cachedCertificate
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Error("Failed to unmarshal cached certificate", "certId", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal cached certificate: %w", err)
	}

	return entry.certificate(), nil
}

func (c *CertificateCache) Set(ctx context.Context, cert *domain.Certificate) error {
	data, err := json.Marshal(toCached(cert))
	if err != nil {
		return fmt.Errorf("failed to marshal certificate: %w", err)
	}

	if err := c.redisClient.Set(ctx, certificateKey(cert.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache certificate: %w", err)
	}
	return nil
}

func (c *CertificateCache) Ping(ctx context.Context) error {
	return c.redisClient.Ping(ctx).Err()
}
