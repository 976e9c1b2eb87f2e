// Package pkce implements Proof Key for Code Exchange (RFC 7636) with the
// S256 challenge method.
package pkce

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"francheasy/internal/domain/entity"
	"francheasy/internal/domain/service"
	"francheasy/internal/errors"
)

// verifierBytes yields a 43-character base64url verifier, the RFC 7636 minimum.
const verifierBytes = 32

// generator implements the ProofGenerator domain service.
type generator struct{}

// NewGenerator returns the default proof generator.
func NewGenerator() service.ProofGenerator {
	return generator{}
}

func (generator) NewProof() (*entity.PKCEProof, error) {
	return NewProof()
}

// NewProof generates a fresh code verifier and its S256 challenge.
func NewProof() (*entity.PKCEProof, error) {
	buf := make([]byte, verifierBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(err, "failed to generate code verifier")
	}

	verifier := base64.RawURLEncoding.EncodeToString(buf)

	return &entity.PKCEProof{
		Verifier:  verifier,
		Challenge: ChallengeS256(verifier),
	}, nil
}

// ChallengeS256 derives the S256 code challenge for a verifier:
// base64url(sha256(verifier)) without padding.
func ChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
