package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naisu-fi/naisu-agent/pkg/chains"
	"github.com/naisu-fi/naisu-agent/pkg/models"
)

func newStoredIntent(id, source string, createdAt int64) *models.Intent {
	intent := models.NewSuiToEvmIntent(id, source, "0xdest", chains.BaseSepolia, "0xtoken", "1")
	intent.CreatedAt = createdAt
	return intent
}

func TestMemoryStore(t *testing.T) {
	t.Run("get and put", func(t *testing.T) {
		st := NewMemoryStore()

		_, ok := st.Get("missing")
		assert.False(t, ok)

		intent := newStoredIntent("id-1", "0xAAA", 100)
		st.Put(intent)

		got, ok := st.Get("id-1")
		require.True(t, ok)
		assert.Equal(t, intent.ID, got.ID)
		assert.Equal(t, intent.Status, got.Status)
	})

	t.Run("put replaces previous version", func(t *testing.T) {
		st := NewMemoryStore()
		intent := newStoredIntent("id-1", "0xAAA", 100)
		st.Put(intent)

		intent.Fail("something broke")
		st.Put(intent)

		got, ok := st.Get("id-1")
		require.True(t, ok)
		assert.Equal(t, models.StatusFailed, got.Status)
		assert.Equal(t, "something broke", got.ErrorMessage)
	})

	t.Run("stored values are isolated from caller mutation", func(t *testing.T) {
		st := NewMemoryStore()
		intent := newStoredIntent("id-1", "0xAAA", 100)
		st.Put(intent)

		// Mutating the caller's copy must not leak into the store
		intent.Status = models.StatusCancelled

		got, ok := st.Get("id-1")
		require.True(t, ok)
		assert.Equal(t, models.StatusPending, got.Status)
	})

	t.Run("update mutates the stored intent in place", func(t *testing.T) {
		st := NewMemoryStore()
		st.Put(newStoredIntent("id-1", "0xAAA", 100))

		ok := st.Update("id-1", func(intent *models.Intent) {
			intent.BridgeTxHash = "0xbridge"
		})
		require.True(t, ok)

		got, _ := st.Get("id-1")
		assert.Equal(t, "0xbridge", got.BridgeTxHash)

		assert.False(t, st.Update("missing", func(*models.Intent) {}))
	})

	t.Run("concurrent updates do not lose writes", func(t *testing.T) {
		st := NewMemoryStore()
		st.Put(newStoredIntent("id-1", "0xAAA", 100))

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				st.Update("id-1", func(intent *models.Intent) {
					intent.ErrorMessage += "x"
				})
			}()
		}
		wg.Wait()

		got, _ := st.Get("id-1")
		assert.Len(t, got.ErrorMessage, 50)
	})

	t.Run("list is ordered by creation time", func(t *testing.T) {
		st := NewMemoryStore()
		st.Put(newStoredIntent("id-c", "0xAAA", 300))
		st.Put(newStoredIntent("id-a", "0xAAA", 100))
		st.Put(newStoredIntent("id-b", "0xAAA", 200))

		list := st.List()
		require.Len(t, list, 3)
		assert.Equal(t, "id-a", list[0].ID)
		assert.Equal(t, "id-b", list[1].ID)
		assert.Equal(t, "id-c", list[2].ID)
	})

	t.Run("list by creator matches case-insensitively", func(t *testing.T) {
		st := NewMemoryStore()
		st.Put(newStoredIntent("id-1", "0xAbCd1234", 100))
		st.Put(newStoredIntent("id-2", "0xABCD1234", 200))
		st.Put(newStoredIntent("id-3", "0xother", 300))

		mine := st.ListByCreator("0xabcd1234")
		require.Len(t, mine, 2)
		assert.Equal(t, "id-1", mine[0].ID)
		assert.Equal(t, "id-2", mine[1].ID)

		assert.Empty(t, st.ListByCreator("0xnobody"))
	})

	t.Run("pending count ignores terminal intents", func(t *testing.T) {
		st := NewMemoryStore()
		for i := 0; i < 3; i++ {
			st.Put(newStoredIntent(fmt.Sprintf("id-%d", i), "0xAAA", int64(i)))
		}
		done := newStoredIntent("id-done", "0xAAA", 99)
		done.Status = models.StatusCompleted
		st.Put(done)

		assert.Equal(t, 3, st.PendingCount())
	})
}
