package spells

import "strings"

// Spell describes a castable spell. Level 0 spells are cantrips and
// consume no slot.
type Spell struct {
	Name          string `json:"name"`
	Level         int    `json:"level"`
	CastingTime   string `json:"casting_time"`
	Duration      string `json:"duration"`
	Concentration bool   `json:"concentration"`
}

// Spellbook resolves a spell name from a cast command to its definition
type Spellbook struct {
	spells map[string]*Spell
}

// NewSpellbook creates an empty spellbook
func NewSpellbook() *Spellbook {
	return &Spellbook{spells: make(map[string]*Spell)}
}

// normalizeName folds case and treats underscores as spaces so command
// tokens like "magic_missile" resolve
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", " ")
}

// Register adds or replaces a spell definition
func (b *Spellbook) Register(spell *Spell) {
	b.spells[normalizeName(spell.Name)] = spell
}

// Lookup resolves a spell by name
func (b *Spellbook) Lookup(name string) (*Spell, bool) {
	spell, ok := b.spells[normalizeName(name)]
	return spell, ok
}

// DefaultSpellbook returns a spellbook seeded with a small starter list
// so cast commands work out of the box
func DefaultSpellbook() *Spellbook {
	book := NewSpellbook()
	for _, spell := range []*Spell{
		{Name: "Vicious Mockery", Level: 0, CastingTime: "1 action", Duration: "Instantaneous"},
		{Name: "Magic Missile", Level: 1, CastingTime: "1 action", Duration: "Instantaneous"},
		{Name: "Cure Wounds", Level: 1, CastingTime: "1 action", Duration: "Instantaneous"},
		{Name: "Shield", Level: 1, CastingTime: "1 reaction", Duration: "1 round"},
		{Name: "Bless", Level: 1, CastingTime: "1 action", Duration: "1 minute", Concentration: true},
		{Name: "Hold Person", Level: 2, CastingTime: "1 action", Duration: "1 minute", Concentration: true},
		{Name: "Fireball", Level: 3, CastingTime: "1 action", Duration: "Instantaneous"},
	} {
		book.Register(spell)
	}
	return book
}
