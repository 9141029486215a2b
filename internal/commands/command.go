// Package commands parses a line of player text into a typed command.
// Handlers downstream receive already-validated arguments; all string
// checking happens in the single parse step here.
package commands

import "github.com/KirkDiggler/shadowdark-gm/internal/domain/shared"

// Command is the closed set of parsed player commands
type Command interface {
	isCommand()
}

// CombatAction is a sub-verb of the combat command
type CombatAction string

const (
	CombatStart  CombatAction = "start"
	CombatEnd    CombatAction = "end"
	CombatStatus CombatAction = "status"
	CombatNext   CombatAction = "next"
)

// ConditionAction is a sub-verb of the condition command
type ConditionAction string

const (
	ConditionAdd    ConditionAction = "add"
	ConditionRemove ConditionAction = "remove"
)

// Roll evaluates a dice expression
type Roll struct {
	Expression string
}

// Check performs an ability check against a DC
type Check struct {
	Ability shared.Ability
	DC      int
}

// Save performs a saving throw against a DC
type Save struct {
	Ability shared.Ability
	DC      int
}

// Attack rolls to hit a target
type Attack struct {
	Target   string
	Modifier int
}

// Damage rolls damage and applies it to a target
type Damage struct {
	Target     string
	Expression string
}

// Initiative rolls initiative for a participant
type Initiative struct {
	Name        string
	DexModifier int
}

// Combat drives the combat state machine
type Combat struct {
	Action CombatAction
}

// SetHP records a participant's hit points
type SetHP struct {
	Name    string
	Current int
	Max     *int
}

// SetAC records a participant's armor class
type SetAC struct {
	Name  string
	Value int
}

// Condition adds or removes a status condition
type Condition struct {
	Name      string
	Action    ConditionAction
	Condition string
}

// CastSpell casts a named spell, consuming a slot for leveled spells
type CastSpell struct {
	Spell  string
	Target string
}

// SpellSlots reports a caster's slot ledger
type SpellSlots struct {
	Caster string
}

// SetSpellSlots configures a caster's maximum slots at a tier
type SetSpellSlots struct {
	Caster string
	Tier   int
	Max    int
}

// RestoreSpellSlots returns spent slots at a tier (rest semantics)
type RestoreSpellSlots struct {
	Caster string
	Tier   int
	Count  int
}

// Help lists the command surface
type Help struct{}

func (Roll) isCommand()              {}
func (Check) isCommand()             {}
func (Save) isCommand()              {}
func (Attack) isCommand()            {}
func (Damage) isCommand()            {}
func (Initiative) isCommand()        {}
func (Combat) isCommand()            {}
func (SetHP) isCommand()             {}
func (SetAC) isCommand()             {}
func (Condition) isCommand()         {}
func (CastSpell) isCommand()         {}
func (SpellSlots) isCommand()        {}
func (SetSpellSlots) isCommand()     {}
func (RestoreSpellSlots) isCommand() {}
func (Help) isCommand()              {}
