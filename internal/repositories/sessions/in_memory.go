package sessions

import (
	"context"
	"sync"

	"github.com/KirkDiggler/shadowdark-gm/internal/domain/session"
	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

type inMemoryRepository struct {
	mu     sync.RWMutex
	states map[string]*session.State
}

// NewInMemoryRepository creates a new in-memory session state repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		states: make(map[string]*session.State),
	}
}

// Get retrieves the state for a session
func (r *inMemoryRepository) Get(ctx context.Context, sessionID string) (*session.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.states[sessionID]
	if !exists {
		return nil, gmerr.NotFoundf("session not found: %s", sessionID)
	}
	return state, nil
}

// Save stores the state for a session
func (r *inMemoryRepository) Save(ctx context.Context, state *session.State) error {
	if state == nil || state.SessionID == "" {
		return gmerr.InvalidArgument("state requires a session ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.states[state.SessionID] = state
	return nil
}

// Delete removes the state for a session
func (r *inMemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.states[sessionID]; !exists {
		return gmerr.NotFoundf("session not found: %s", sessionID)
	}
	delete(r.states, sessionID)
	return nil
}

// List retrieves the state of every known session
func (r *inMemoryRepository) List(ctx context.Context) ([]*session.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*session.State, 0, len(r.states))
	for _, state := range r.states {
		out = append(out, state)
	}
	return out, nil
}
