// Package spells tracks spell slot consumption per caster and knows the
// spells a cast command can name.
package spells

import (
	"sort"

	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

// MaxTier is the highest spell slot tier the ledger accepts
const MaxTier = 9

// SlotInfo tracks slot usage at one tier
type SlotInfo struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

// Remaining returns the number of unspent slots
func (s SlotInfo) Remaining() int {
	return s.Max - s.Used
}

// Ledger maps casters to their slot usage by tier. Invariant:
// 0 <= Used <= Max for every entry.
type Ledger struct {
	Casters map[string]map[int]*SlotInfo `json:"casters"`
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{Casters: make(map[string]map[int]*SlotInfo)}
}

func (l *Ledger) caster(name string) map[int]*SlotInfo {
	if l.Casters == nil {
		l.Casters = make(map[string]map[int]*SlotInfo)
	}
	slots, ok := l.Casters[name]
	if !ok {
		slots = make(map[int]*SlotInfo)
		l.Casters[name] = slots
	}
	return slots
}

func validTier(tier int) error {
	if tier < 1 || tier > MaxTier {
		return gmerr.InvalidArgumentf("spell slot tier must be between 1 and %d, got %d", MaxTier, tier)
	}
	return nil
}

// SetSlots configures the maximum slots at a tier. Idempotent; usage is
// preserved except that Used is clamped down to the new Max.
func (l *Ledger) SetSlots(caster string, tier, max int) (*SlotInfo, error) {
	if err := validTier(tier); err != nil {
		return nil, err
	}
	if max < 0 {
		return nil, gmerr.InvalidArgumentf("slot count cannot be negative, got %d", max)
	}

	slots := l.caster(caster)
	info, ok := slots[tier]
	if !ok {
		info = &SlotInfo{}
		slots[tier] = info
	}
	info.Max = max
	if info.Used > max {
		info.Used = max
	}
	return info, nil
}

// Cast consumes one slot at the given tier. A caster with no configured
// or no remaining slots at that tier is refused.
func (l *Ledger) Cast(caster string, tier int) (*SlotInfo, error) {
	if err := validTier(tier); err != nil {
		return nil, err
	}

	info, ok := l.caster(caster)[tier]
	if !ok || info.Used >= info.Max {
		return nil, gmerr.NoSlotAvailablef("%s has no level %d spell slots remaining", caster, tier)
	}
	info.Used++
	return info, nil
}

// Restore returns count slots at a tier, clamping Used at 0. Restoring a
// tier that was never configured is a no-op.
func (l *Ledger) Restore(caster string, tier, count int) (*SlotInfo, error) {
	if err := validTier(tier); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, gmerr.InvalidArgumentf("restore count cannot be negative, got %d", count)
	}

	info, ok := l.caster(caster)[tier]
	if !ok {
		return &SlotInfo{}, nil
	}
	info.Used -= count
	if info.Used < 0 {
		info.Used = 0
	}
	return info, nil
}

// Slots returns a copy of the caster's ledger keyed by tier
func (l *Ledger) Slots(caster string) map[int]SlotInfo {
	out := make(map[int]SlotInfo)
	for tier, info := range l.caster(caster) {
		out[tier] = *info
	}
	return out
}

// Tiers returns the caster's configured tiers in ascending order
func (l *Ledger) Tiers(caster string) []int {
	slots := l.caster(caster)
	tiers := make([]int, 0, len(slots))
	for tier := range slots {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)
	return tiers
}
