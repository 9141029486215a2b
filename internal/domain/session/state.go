// Package session holds the per-session mutable game state: the combat
// tracker and the spell slot ledger. One State exists per game session;
// distinct sessions are fully independent.
package session

import (
	"time"

	"github.com/KirkDiggler/shadowdark-gm/internal/domain/combat"
	"github.com/KirkDiggler/shadowdark-gm/internal/domain/spells"
)

// State is the serializable game state for one session
type State struct {
	SessionID string         `json:"session_id"`
	Combat    *combat.State  `json:"combat"`
	Spells    *spells.Ledger `json:"spells"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewState creates fresh state for a session
func NewState(sessionID string) *State {
	return &State{
		SessionID: sessionID,
		Combat:    combat.NewState(),
		Spells:    spells.NewLedger(),
	}
}
