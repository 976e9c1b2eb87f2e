package service

import (
	"context"
	"errors"

	"francheasy/internal/domain/entity"
)

// ErrProofNotFound is returned when no proof exists for a session, either
// because it expired, never existed, or was already consumed.
var ErrProofNotFound = errors.New("proof not found")

// ProofGenerator mints fresh PKCE verifier/challenge pairs.
type ProofGenerator interface {
	NewProof() (*entity.PKCEProof, error)
}

// ProofStore keeps PKCE proofs between the authorization redirect and the
// provider callback. Entries are short-lived and single-use: Consume removes
// the proof atomically, so a second consume of the same session fails.
type ProofStore interface {
	// Store saves a proof under the given session ID with the configured TTL.
	Store(ctx context.Context, sessionID string, proof *entity.PKCEProof) error

	// Consume retrieves and deletes the proof in one atomic step.
	// Returns ErrProofNotFound when the session is unknown or already used.
	Consume(ctx context.Context, sessionID string) (*entity.PKCEProof, error)
}
