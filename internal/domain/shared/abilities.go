// Package shared holds the rule vocabulary used across the engine:
// ability names, difficulty classes, and status conditions.
package shared

import (
	"strings"

	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

// Ability identifies one of the six ability scores
type Ability string

const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists the six abilities in conventional order
func Abilities() []Ability {
	return []Ability{
		AbilityStrength,
		AbilityDexterity,
		AbilityConstitution,
		AbilityIntelligence,
		AbilityWisdom,
		AbilityCharisma,
	}
}

var abilityAliases = map[string]Ability{
	"str":          AbilityStrength,
	"strength":     AbilityStrength,
	"dex":          AbilityDexterity,
	"dexterity":    AbilityDexterity,
	"con":          AbilityConstitution,
	"constitution": AbilityConstitution,
	"int":          AbilityIntelligence,
	"intelligence": AbilityIntelligence,
	"wis":          AbilityWisdom,
	"wisdom":       AbilityWisdom,
	"cha":          AbilityCharisma,
	"charisma":     AbilityCharisma,
}

// ParseAbility normalizes an ability name or three-letter abbreviation
func ParseAbility(name string) (Ability, error) {
	ability, ok := abilityAliases[strings.ToLower(name)]
	if !ok {
		return "", gmerr.InvalidArgumentf("unknown ability: %q", name)
	}
	return ability, nil
}

// Title returns the ability name with a capitalized first letter for
// player-facing messages
func (a Ability) Title() string {
	s := string(a)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Difficulty classes
const (
	DCEasy     = 5
	DCNormal   = 10
	DCHard     = 15
	DCVeryHard = 20
)

// DefaultDC is applied when a check or save names no difficulty class
const DefaultDC = DCNormal

// Conditions lists the status conditions the tracker recognizes
var Conditions = []string{
	"blinded", "charmed", "deafened", "frightened", "grappled",
	"incapacitated", "invisible", "paralyzed", "petrified", "poisoned",
	"prone", "restrained", "stunned", "unconscious",
}

// NormalizeCondition lowercases a condition name. Unknown conditions are
// accepted; GMs invent table-specific ones all the time.
func NormalizeCondition(condition string) string {
	return strings.ToLower(condition)
}
