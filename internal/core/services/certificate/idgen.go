package certificate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/skillsnap.net/internal/domain"
)

var idPattern = regexp.MustCompile(`^[0-9A-Z]{8}$`)

// IDGenerator derives short certificate ids from random 128-bit values
type IDGenerator struct {
	random io.Reader
}

// NewIDGenerator uses crypto/rand when random is nil
func NewIDGenerator(random io.Reader) *IDGenerator {
	if random == nil {
		random = rand.Reader
	}
	return &IDGenerator{random: random}
}

// Next returns the first eight hex characters of a random UUID, uppercased
func (g *IDGenerator) Next() (string, error) {
	u, err := uuid.NewRandomFromReader(g.random)
	if err != nil {
		return "", fmt.Errorf("failed to read randomness: %w", err)
	}
	encoded := hex.EncodeToString(u[:])
	return strings.ToUpper(encoded[:domain.CertificateIDLength]), nil
}

// NormalizeID maps user input onto the stored id form
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// IsWellFormedID reports whether id could have been minted
func IsWellFormedID(id string) bool {
	return idPattern.MatchString(id)
}
