package pkce

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProof(t *testing.T) {
	proof, err := NewProof()
	require.NoError(t, err)
	require.NotNil(t, proof)

	// Verifier is base64url without padding, 43 chars for 32 random bytes
	assert.Len(t, proof.Verifier, 43)
	assert.False(t, strings.ContainsAny(proof.Verifier, "+/="))

	// Challenge must match the S256 derivation of the verifier
	sum := sha256.Sum256([]byte(proof.Verifier))
	expected := base64.RawURLEncoding.EncodeToString(sum[:])
	assert.Equal(t, expected, proof.Challenge)
}

func TestNewProof_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		proof, err := NewProof()
		require.NoError(t, err)
		assert.False(t, seen[proof.Verifier], "verifier generated twice")
		seen[proof.Verifier] = true
	}
}

func TestChallengeS256_KnownVector(t *testing.T) {
	// Appendix B of RFC 7636
	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	assert.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", ChallengeS256(verifier))
}
