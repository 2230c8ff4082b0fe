package orchestrator

import (
	"context"
	"sync"
	"time"
)

// unclaimedTTL bounds how long a supplied nonce waits for its intent. A
// callback for an id nobody ever processes must not pin a channel in the
// registry forever.
const unclaimedTTL = 10 * time.Minute

// NonceRegistry matches burn nonces reported through the bridge callback
// with the orchestrator call waiting on them. One nonce per intent; a nonce
// supplied before anyone awaits it is buffered, and a second supply for the
// same intent is dropped. Entries are removed when the waiter returns, when
// Discard is called for a terminal intent, or once an unclaimed nonce
// outlives the TTL.
//
// An empty nonce reports a failed bridge transaction.
type NonceRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	pending map[string]*nonceEntry
}

type nonceEntry struct {
	ch      chan string
	created time.Time
}

// NewNonceRegistry creates an empty registry
func NewNonceRegistry() *NonceRegistry {
	return &NonceRegistry{
		ttl:     unclaimedTTL,
		pending: make(map[string]*nonceEntry),
	}
}

var _ NonceSource = (*NonceRegistry)(nil)

// entry returns the channel for an intent, creating it when absent, and
// sweeps expired unclaimed nonces on the way. Entries with an empty channel
// always have a live waiter, which removes them itself.
func (r *NonceRegistry) entry(intentID string) *nonceEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, e := range r.pending {
		if len(e.ch) > 0 && now.Sub(e.created) > r.ttl {
			delete(r.pending, id)
		}
	}

	e, ok := r.pending[intentID]
	if !ok {
		e = &nonceEntry{ch: make(chan string, 1), created: now}
		r.pending[intentID] = e
	}
	return e
}

func (r *NonceRegistry) remove(intentID string, e *nonceEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.pending[intentID]; ok && cur == e {
		delete(r.pending, intentID)
	}
}

// Supply records the burn nonce for an intent
func (r *NonceRegistry) Supply(intentID, nonce string) {
	select {
	case r.entry(intentID).ch <- nonce:
	default:
	}
}

// Await blocks until a nonce is supplied for the intent or the context
// ends. The registry entry is removed on both paths.
func (r *NonceRegistry) Await(ctx context.Context, intentID string) (string, error) {
	e := r.entry(intentID)

	select {
	case nonce := <-e.ch:
		r.remove(intentID, e)
		return nonce, nil
	case <-ctx.Done():
		r.remove(intentID, e)
		return "", ctx.Err()
	}
}

// Discard drops any nonce buffered for an intent. Callers invoke it once an
// intent reaches a terminal state so a late callback cannot leave an entry
// behind.
func (r *NonceRegistry) Discard(intentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pending, intentID)
}

// size reports the number of live entries, for tests
func (r *NonceRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
