package cache

import (
	"context"
	"encoding/json"
	"time"

	"francheasy/config"
	"francheasy/internal/domain/entity"
	"francheasy/internal/domain/service"
	"francheasy/internal/errors"

	"github.com/redis/go-redis/v9"
)

const proofKeyPrefix = "pkce:"

// redisProofStore keeps PKCE proofs in Redis with a short TTL.
type redisProofStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProofStore creates the Redis-backed ProofStore.
func NewProofStore(client *redis.Client, cfg *config.Config) service.ProofStore {
	ttl := 5 * time.Minute
	if cfg.Redis != nil && cfg.Redis.ProofTTL > 0 {
		ttl = cfg.Redis.ProofTTL
	}
	return &redisProofStore{client: client, ttl: ttl}
}

// Store saves a proof under the given session ID with the configured TTL.
func (s *redisProofStore) Store(ctx context.Context, sessionID string, proof *entity.PKCEProof) error {
	payload, err := json.Marshal(proof)
	if err != nil {
		return errors.Wrap(err, "failed to marshal proof")
	}

	if err := s.client.Set(ctx, proofKeyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to store proof")
	}

	return nil
}

// Consume retrieves and deletes the proof in one atomic step via GETDEL, so
// concurrent callbacks for the same session cannot both succeed.
func (s *redisProofStore) Consume(ctx context.Context, sessionID string) (*entity.PKCEProof, error) {
	payload, err := s.client.GetDel(ctx, proofKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, service.ErrProofNotFound
		}
		return nil, errors.Wrap(err, "failed to consume proof")
	}

	var proof entity.PKCEProof
	if err := json.Unmarshal(payload, &proof); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal proof")
	}

	return &proof, nil
}
