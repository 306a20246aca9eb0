package session

import (
	"log"
	"sync"

	"github.com/Mainak-2006/rn-zomato/internal/order"
)

// Registry holds one Session per user, created on first use. Sessions live
// for the lifetime of the process.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	publisher Publisher
	logger    *log.Logger
	ledgerOpt []order.Option
}

func NewRegistry(publisher Publisher, logger *log.Logger, opts ...order.Option) *Registry {
	return &Registry{
		sessions:  make(map[string]*Session),
		publisher: publisher,
		logger:    logger,
		ledgerOpt: opts,
	}
}

// Get returns the session for userID, creating it when missing.
func (r *Registry) Get(userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[userID]; ok {
		return s
	}
	s := New(userID, r.publisher, r.logger, r.ledgerOpt...)
	r.sessions[userID] = s
	r.logger.Printf("session created for user %s", userID)
	return s
}

// Lookup returns an existing session without creating one.
func (r *Registry) Lookup(userID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
