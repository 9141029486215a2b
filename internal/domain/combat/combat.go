// Package combat tracks a single combat encounter: roster, initiative
// order, turn cursor, hit points, armor class, and conditions.
package combat

import (
	"github.com/KirkDiggler/shadowdark-gm/internal/domain/shared"
	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

// ParticipantType distinguishes player characters from adversaries
type ParticipantType string

const (
	ParticipantTypePlayer ParticipantType = "player"
	ParticipantTypeNPC    ParticipantType = "npc"
)

// DefaultAC is assumed until a participant's armor class is set
const DefaultAC = 10

// Participant is a combat entrant, keyed by name within one encounter.
// MaxHP of 0 means unknown.
type Participant struct {
	Name            string          `json:"name"`
	Type            ParticipantType `json:"type"`
	Initiative      int             `json:"initiative"`
	InitiativeBonus int             `json:"initiative_bonus"`
	CurrentHP       int             `json:"current_hp"`
	MaxHP           int             `json:"max_hp"`
	AC              int             `json:"ac"`
	Conditions      []string        `json:"conditions"`
}

// IsAlive returns true if the participant has more than 0 HP
func (p *Participant) IsAlive() bool {
	return p.CurrentHP > 0
}

// HasCondition reports whether the condition is active on the participant
func (p *Participant) HasCondition(condition string) bool {
	condition = shared.NormalizeCondition(condition)
	for _, c := range p.Conditions {
		if c == condition {
			return true
		}
	}
	return false
}

// State is the combat state machine for one game session. Order is kept
// strictly descending by initiative; equal scores retain insertion order.
// The zero cursor points at the top of the order once combat is active.
type State struct {
	Active bool           `json:"active"`
	Order  []*Participant `json:"order"`
	Turn   int            `json:"turn"`
}

// NewState creates an empty, inactive combat state
func NewState() *State {
	return &State{Order: []*Participant{}}
}

// Start activates combat. Starting an already-active combat is a no-op
// that keeps the roster; returns true when a new encounter began.
func (s *State) Start() bool {
	if s.Active {
		return false
	}
	s.Active = true
	s.Order = s.Order[:0]
	s.Turn = 0
	return true
}

// End deactivates combat, clearing the roster and cursor. Idempotent.
// Returns the number of participants removed.
func (s *State) End() int {
	count := len(s.Order)
	s.Active = false
	s.Order = []*Participant{}
	s.Turn = 0
	return count
}

// AddParticipant inserts a participant at the position its initiative
// dictates. A name already on the roster is replaced, not duplicated; the
// replacement re-enters the order as a fresh insertion, so it sorts after
// existing equal scores. The cursor resets to the top of the order.
func (s *State) AddParticipant(name string, initiative, bonus int, ptype ParticipantType) (*Participant, error) {
	if !s.Active {
		return nil, gmerr.NotInCombat("no active combat")
	}

	prev := s.remove(name)
	p := &Participant{
		Name:            name,
		Type:            ptype,
		Initiative:      initiative,
		InitiativeBonus: bonus,
		AC:              DefaultAC,
		Conditions:      []string{},
	}
	if prev != nil {
		// Re-rolling initiative keeps the participant's bookkeeping
		p.CurrentHP = prev.CurrentHP
		p.MaxHP = prev.MaxHP
		p.AC = prev.AC
		p.Conditions = prev.Conditions
	}

	idx := len(s.Order)
	for i, q := range s.Order {
		if q.Initiative < initiative {
			idx = i
			break
		}
	}
	s.Order = append(s.Order, nil)
	copy(s.Order[idx+1:], s.Order[idx:])
	s.Order[idx] = p
	s.Turn = 0

	return p, nil
}

// remove drops a participant by name and returns it, or nil
func (s *State) remove(name string) *Participant {
	for i, p := range s.Order {
		if p.Name == name {
			s.Order = append(s.Order[:i], s.Order[i+1:]...)
			return p
		}
	}
	return nil
}

// Find returns the named participant, or nil
func (s *State) Find(name string) *Participant {
	for _, p := range s.Order {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Current returns the participant whose turn it is, or nil
func (s *State) Current() *Participant {
	if !s.Active || len(s.Order) == 0 {
		return nil
	}
	return s.Order[s.Turn%len(s.Order)]
}

// NextTurn advances the cursor, wrapping to the top of the order
func (s *State) NextTurn() (*Participant, error) {
	if !s.Active || len(s.Order) == 0 {
		return nil, gmerr.NotInCombat("no active combat")
	}
	s.Turn = (s.Turn + 1) % len(s.Order)
	return s.Order[s.Turn], nil
}

// SetHP sets a participant's current HP and, when given, max HP. An unset
// max defaults to the current value the first time HP is recorded.
func (s *State) SetHP(name string, current int, max *int) (*Participant, error) {
	p := s.Find(name)
	if p == nil {
		return nil, gmerr.NotFoundf("%s not found in combat", name)
	}

	if current < 0 {
		current = 0
	}
	p.CurrentHP = current
	if max != nil {
		p.MaxHP = *max
	} else if p.MaxHP == 0 {
		p.MaxHP = current
	}
	return p, nil
}

// SetAC sets a participant's armor class
func (s *State) SetAC(name string, ac int) (*Participant, error) {
	p := s.Find(name)
	if p == nil {
		return nil, gmerr.NotFoundf("%s not found in combat", name)
	}
	p.AC = ac
	return p, nil
}

// ApplyDamage subtracts damage from a participant's HP, clamped at 0
func (s *State) ApplyDamage(name string, damage int) (*Participant, error) {
	p := s.Find(name)
	if p == nil {
		return nil, gmerr.NotFoundf("%s not found in combat", name)
	}
	p.CurrentHP -= damage
	if p.CurrentHP < 0 {
		p.CurrentHP = 0
	}
	return p, nil
}

// AddCondition marks a condition on a participant. The second return is
// false when the condition was already present.
func (s *State) AddCondition(name, condition string) (*Participant, bool, error) {
	p := s.Find(name)
	if p == nil {
		return nil, false, gmerr.NotFoundf("%s not found in combat", name)
	}
	condition = shared.NormalizeCondition(condition)
	if p.HasCondition(condition) {
		return p, false, nil
	}
	p.Conditions = append(p.Conditions, condition)
	return p, true, nil
}

// RemoveCondition clears a condition from a participant. The second
// return is false when the condition was not present.
func (s *State) RemoveCondition(name, condition string) (*Participant, bool, error) {
	p := s.Find(name)
	if p == nil {
		return nil, false, gmerr.NotFoundf("%s not found in combat", name)
	}
	condition = shared.NormalizeCondition(condition)
	for i, c := range p.Conditions {
		if c == condition {
			p.Conditions = append(p.Conditions[:i], p.Conditions[i+1:]...)
			return p, true, nil
		}
	}
	return p, false, nil
}

// Status is a read-only projection of the combat state
type Status struct {
	InCombat     bool          `json:"in_combat"`
	Participants []Participant `json:"participants"`
	CurrentTurn  string        `json:"current_turn,omitempty"`
}

// Snapshot projects the roster in initiative order. Valid in any state.
func (s *State) Snapshot() *Status {
	status := &Status{
		InCombat:     s.Active,
		Participants: make([]Participant, 0, len(s.Order)),
	}
	for _, p := range s.Order {
		copied := *p
		copied.Conditions = append([]string{}, p.Conditions...)
		status.Participants = append(status.Participants, copied)
	}
	if current := s.Current(); current != nil {
		status.CurrentTurn = current.Name
	}
	return status
}
