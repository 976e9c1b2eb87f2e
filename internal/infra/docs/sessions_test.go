package docs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistry_CreateAndValidate(t *testing.T) {
	registry := NewSessionRegistry()

	token, err := registry.CreateSession()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, registry.IsValid(token))

	// Unknown and empty tokens are invalid
	assert.False(t, registry.IsValid("unknown"))
	assert.False(t, registry.IsValid(""))
}

func TestSessionRegistry_Remove(t *testing.T) {
	registry := NewSessionRegistry()

	token, err := registry.CreateSession()
	require.NoError(t, err)

	registry.Remove(token)
	assert.False(t, registry.IsValid(token))

	// Removing twice is a no-op
	registry.Remove(token)
}

func TestSessionRegistry_ExpiresEntries(t *testing.T) {
	registry := NewSessionRegistry()
	current := time.Now()
	registry.now = func() time.Time { return current }

	stale, err := registry.CreateSession()
	require.NoError(t, err)
	assert.True(t, registry.IsValid(stale))

	current = current.Add(SessionTTL + time.Minute)
	assert.False(t, registry.IsValid(stale))

	// Minting a new session sweeps the expired entry out of the map
	fresh, err := registry.CreateSession()
	require.NoError(t, err)
	assert.True(t, registry.IsValid(fresh))

	registry.mu.RLock()
	_, staleKept := registry.sessions[stale]
	registry.mu.RUnlock()
	assert.False(t, staleKept)
}

func TestSessionRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewSessionRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := registry.CreateSession()
			assert.NoError(t, err)
			assert.True(t, registry.IsValid(token))
			registry.Remove(token)
		}()
	}
	wg.Wait()
}
