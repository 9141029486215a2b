// Package sessions stores per-session game state between dispatches:
// load before a command runs, save after it completes.
package sessions

//go:generate mockgen -destination=mock/mock_repository.go -package=mocksessions -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/shadowdark-gm/internal/domain/session"
)

// Repository defines the session state storage interface
type Repository interface {
	// Get retrieves the state for a session
	Get(ctx context.Context, sessionID string) (*session.State, error)

	// Save stores the state for a session
	Save(ctx context.Context, state *session.State) error

	// Delete removes the state for a session
	Delete(ctx context.Context, sessionID string) error

	// List retrieves the state of every known session
	List(ctx context.Context) ([]*session.State, error)
}
