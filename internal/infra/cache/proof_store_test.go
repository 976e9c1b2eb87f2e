package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"francheasy/config"
	"francheasy/internal/domain/entity"
	"francheasy/internal/domain/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (service.ProofStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{Redis: &config.RedisConfig{Addr: mr.Addr(), ProofTTL: 300 * time.Second}}
	return NewProofStore(client, cfg), mr
}

func TestProofStore_StoreAndConsume(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	proof := &entity.PKCEProof{Verifier: "verifier-abc", Challenge: "challenge-xyz"}
	require.NoError(t, store.Store(ctx, "session-1", proof))

	got, err := store.Consume(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, proof.Verifier, got.Verifier)
	assert.Equal(t, proof.Challenge, got.Challenge)
}

func TestProofStore_ConsumeIsSingleUse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "session-1", &entity.PKCEProof{Verifier: "v", Challenge: "c"}))

	_, err := store.Consume(ctx, "session-1")
	require.NoError(t, err)

	_, err = store.Consume(ctx, "session-1")
	assert.ErrorIs(t, err, service.ErrProofNotFound)
}

func TestProofStore_ConsumeUnknownSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Consume(context.Background(), "never-stored")
	assert.ErrorIs(t, err, service.ErrProofNotFound)
}

func TestProofStore_EntryExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "session-1", &entity.PKCEProof{Verifier: "v", Challenge: "c"}))

	mr.FastForward(301 * time.Second)

	_, err := store.Consume(ctx, "session-1")
	assert.ErrorIs(t, err, service.ErrProofNotFound)
}

func TestProofStore_ConcurrentConsume(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Store(ctx, "session-1", &entity.PKCEProof{Verifier: "v", Challenge: "c"}))

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Consume(ctx, "session-1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, service.ErrProofNotFound)
		}
	}
	assert.Equal(t, 1, successes, "exactly one consumer may win")
}
