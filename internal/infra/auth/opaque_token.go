// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"purposepay/config"
	"purposepay/internal/domain/service"

	"github.com/pkg/errors"
)

// defaultTokenBytes is the entropy of a raw session token before encoding.
const defaultTokenBytes = 32

// opaqueTokenGenerator issues random bearer tokens encoded as unpadded
// base64url. Tokens carry no structure: resolving one always requires the
// session store, which is what makes revocation immediate.
type opaqueTokenGenerator struct {
	tokenBytes int
}

// NewOpaqueTokenGenerator is the constructor for opaqueTokenGenerator.
func NewOpaqueTokenGenerator(cfg *config.Config) service.SessionTokenGenerator {
	tokenBytes := defaultTokenBytes
	if cfg.Auth != nil && cfg.Auth.TokenBytes > 0 {
		tokenBytes = cfg.Auth.TokenBytes
	}

	return &opaqueTokenGenerator{tokenBytes: tokenBytes}
}

// Generate returns a new random raw token and its storage hash.
func (g *opaqueTokenGenerator) Generate() (string, string, error) {
	buf := make([]byte, g.tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", errors.Wrap(err, "failed to read random bytes for session token")
	}

	raw := base64.RawURLEncoding.EncodeToString(buf)

	return raw, g.HashToken(raw), nil
}

// HashToken computes the SHA-256 hex digest under which a raw token is stored.
func (g *opaqueTokenGenerator) HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}
