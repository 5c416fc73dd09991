package auth

import (
	"encoding/base64"
	"testing"

	"purposepay/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpaqueTokenGenerator_Generate(t *testing.T) {
	gen := NewOpaqueTokenGenerator(&config.Config{})

	raw, hash, err := gen.Generate()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, raw, hash)

	// The raw token must decode to the configured entropy size.
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Len(t, decoded, defaultTokenBytes)

	// The hash of the raw token must match what Generate returned.
	assert.Equal(t, hash, gen.HashToken(raw))
}

func TestOpaqueTokenGenerator_TokensAreUnique(t *testing.T) {
	gen := NewOpaqueTokenGenerator(&config.Config{})

	seen := make(map[string]bool)
	for range 100 {
		raw, _, err := gen.Generate()
		require.NoError(t, err)
		assert.False(t, seen[raw], "generated a duplicate token")
		seen[raw] = true
	}
}

func TestOpaqueTokenGenerator_ConfiguredSize(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenBytes: 48}}
	gen := NewOpaqueTokenGenerator(cfg)

	raw, _, err := gen.Generate()
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Len(t, decoded, 48)
}

func TestOpaqueTokenGenerator_HashIsDeterministic(t *testing.T) {
	gen := NewOpaqueTokenGenerator(&config.Config{})

	assert.Equal(t, gen.HashToken("token-a"), gen.HashToken("token-a"))
	assert.NotEqual(t, gen.HashToken("token-a"), gen.HashToken("token-b"))
}
