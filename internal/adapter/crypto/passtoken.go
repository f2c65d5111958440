package crypto

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gitlab.com/skillsnap.net/internal/config"
	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/domain"
	"gitlab.com/skillsnap.net/internal/static/errs"
)

var _ primary.PassTokenService = (*PassTokenServiceImpl)(nil)

const generatedSecretSize = 32

type passClaims struct {
	Fingerprint string `json:"fpr"`
	jwt.RegisteredClaims
}

// PassTokenServiceImpl signs HS256 pass tokens bound to a source fingerprint
type PassTokenServiceImpl struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewPassTokenService creates the signer. Without a configured secret a random one
// is generated, so tokens do not survive a restart or cross replicas.
func NewPassTokenService(cfg *config.PassTokenConfig) (*PassTokenServiceImpl, error) {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		secret = make([]byte, generatedSecretSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate pass token secret: %w", err)
		}
	}

	return &PassTokenServiceImpl{
		secret: secret,
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

func (s *PassTokenServiceImpl) Issue(ctx context.Context, sourceText string) (string, error) {
	now := s.now()
	claims := passClaims{
		Fingerprint: Fingerprint(sourceText),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign pass token: %w", err)
	}
	return token, nil
}

func (s *PassTokenServiceImpl) Verify(ctx context.Context, token string, sourceText string) (*domain.PassGrant, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var claims passClaims
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPassTokenInvalid, err)
	}

	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing token id", errs.ErrPassTokenInvalid)
	}

	expected := Fingerprint(sourceText)
	if subtle.ConstantTimeCompare([]byte(claims.Fingerprint), []byte(expected)) != 1 {
		return nil, fmt.Errorf("%w: code does not match the passed attempt", errs.ErrPassTokenInvalid)
	}

	return &domain.PassGrant{
		TokenID:     claims.ID,
		Fingerprint: claims.Fingerprint,
	}, nil
}
