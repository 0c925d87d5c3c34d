// Package confirm implements the two-step destructive-action flow: the
// first request enqueues a prompt and hands back a token, a follow-up
// resolves the token with accept or reject, and only an accept lets the
// caller proceed. Each token resolves at most once.
package confirm

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrUnknownToken = errors.New("unknown or expired confirmation token")

// Prompt is one pending confirmation.
type Prompt struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	Payload string `json:"-"` // caller data, e.g. the record id to delete
	expires time.Time
}

// Queue holds pending prompts until they are resolved or expire.
type Queue struct {
	mu      sync.Mutex
	pending map[string]Prompt
	ttl     time.Duration
	now     func() time.Time
}

// DefaultTTL bounds how long a prompt stays answerable.
const DefaultTTL = 2 * time.Minute

func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		pending: make(map[string]Prompt),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Enqueue registers a prompt and returns it with a fresh token.
func (q *Queue) Enqueue(message, payload string) Prompt {
	p := Prompt{
		Token:   uuid.NewString(),
		Message: message,
		Payload: payload,
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	q.sweepLocked()
	p.expires = q.now().Add(q.ttl)
	q.pending[p.Token] = p
	return p
}

// Resolve answers a prompt and removes it from the queue. The payload is
// returned so the caller can act on an accept; accepted is false on reject.
func (q *Queue) Resolve(token string, accept bool) (payload string, accepted bool, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	p, ok := q.pending[token]
	if !ok || q.now().After(p.expires) {
		delete(q.pending, token)
		return "", false, ErrUnknownToken
	}
	delete(q.pending, token)
	return p.Payload, accept, nil
}

// Pending reports how many prompts are waiting (expired ones excluded).
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sweepLocked()
	return len(q.pending)
}

func (q *Queue) sweepLocked() {
	now := q.now()
	for token, p := range q.pending {
		if now.After(p.expires) {
			delete(q.pending, token)
		}
	}
}
