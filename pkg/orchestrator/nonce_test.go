package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceRegistry(t *testing.T) {
	t.Run("supply before await", func(t *testing.T) {
		registry := NewNonceRegistry()
		registry.Supply("intent-1", "nonce-1")

		nonce, err := registry.Await(context.Background(), "intent-1")
		require.NoError(t, err)
		assert.Equal(t, "nonce-1", nonce)
	})

	t.Run("await before supply", func(t *testing.T) {
		registry := NewNonceRegistry()

		done := make(chan string, 1)
		go func() {
			nonce, err := registry.Await(context.Background(), "intent-2")
			assert.NoError(t, err)
			done <- nonce
		}()

		// Let the waiter block first
		time.Sleep(10 * time.Millisecond)
		registry.Supply("intent-2", "nonce-2")

		select {
		case nonce := <-done:
			assert.Equal(t, "nonce-2", nonce)
		case <-time.After(time.Second):
			t.Fatal("Await did not return after Supply")
		}
	})

	t.Run("second supply is dropped", func(t *testing.T) {
		registry := NewNonceRegistry()
		registry.Supply("intent-3", "first")
		registry.Supply("intent-3", "second")

		nonce, err := registry.Await(context.Background(), "intent-3")
		require.NoError(t, err)
		assert.Equal(t, "first", nonce)
	})

	t.Run("cancellation unblocks the waiter", func(t *testing.T) {
		registry := NewNonceRegistry()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := registry.Await(ctx, "intent-4")
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Zero(t, registry.size(), "a cancelled waiter must remove its entry")
	})

	t.Run("claimed nonces leave no entry behind", func(t *testing.T) {
		registry := NewNonceRegistry()
		registry.Supply("intent-5", "nonce-5")

		_, err := registry.Await(context.Background(), "intent-5")
		require.NoError(t, err)
		assert.Zero(t, registry.size())
	})

	t.Run("unclaimed nonces expire", func(t *testing.T) {
		registry := NewNonceRegistry()
		registry.ttl = time.Millisecond

		registry.Supply("ghost", "nonce-x")
		require.Equal(t, 1, registry.size())

		time.Sleep(5 * time.Millisecond)

		// Any registry access sweeps expired entries
		registry.Supply("live", "nonce-y")
		assert.Equal(t, 1, registry.size(), "only the fresh entry should remain")

		nonce, err := registry.Await(context.Background(), "live")
		require.NoError(t, err)
		assert.Equal(t, "nonce-y", nonce)
	})

	t.Run("discard drops a buffered nonce", func(t *testing.T) {
		registry := NewNonceRegistry()
		registry.Supply("intent-6", "nonce-6")

		registry.Discard("intent-6")
		assert.Zero(t, registry.size())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := registry.Await(ctx, "intent-6")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("intents do not share nonces", func(t *testing.T) {
		registry := NewNonceRegistry()
		registry.Supply("intent-a", "nonce-a")
		registry.Supply("intent-b", "nonce-b")

		nonceB, err := registry.Await(context.Background(), "intent-b")
		require.NoError(t, err)
		nonceA, err := registry.Await(context.Background(), "intent-a")
		require.NoError(t, err)

		assert.Equal(t, "nonce-a", nonceA)
		assert.Equal(t, "nonce-b", nonceB)
	})
}
