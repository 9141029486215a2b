package commands

import (
	"strconv"
	"strings"

	"github.com/KirkDiggler/shadowdark-gm/internal/domain/shared"
	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

// Parse tokenizes a command line and validates its arguments. The leading
// keyword is case-insensitive; everything after it is positional.
func Parse(input string) (Command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, gmerr.UnknownCommandf("empty command")
	}

	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	switch keyword {
	case "roll":
		return parseRoll(args)
	case "check":
		return parseCheck(args)
	case "save":
		return parseSave(args)
	case "attack":
		return parseAttack(args)
	case "damage":
		return parseDamage(args)
	case "initiative":
		return parseInitiative(args)
	case "combat":
		return parseCombat(args)
	case "hp":
		return parseHP(args)
	case "ac":
		return parseAC(args)
	case "condition":
		return parseCondition(args)
	case "spell":
		return parseSpell(args)
	case "help":
		return Help{}, nil
	default:
		return nil, gmerr.UnknownCommandf("unknown command: %q", input)
	}
}

// parseInt converts a positional token, naming it on failure
func parseInt(token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, gmerr.InvalidArgumentf("expected a number, got %q", token)
	}
	return n, nil
}

func parseRoll(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, gmerr.InvalidArgument("usage: roll <expression> (e.g. roll 2d6+3)")
	}
	// Expressions may be typed with spaces around the operators
	return Roll{Expression: strings.Join(args, "")}, nil
}

func parseCheck(args []string) (Command, error) {
	ability, dc, err := parseAbilityDC(args, "check")
	if err != nil {
		return nil, err
	}
	return Check{Ability: ability, DC: dc}, nil
}

func parseSave(args []string) (Command, error) {
	ability, dc, err := parseAbilityDC(args, "save")
	if err != nil {
		return nil, err
	}
	return Save{Ability: ability, DC: dc}, nil
}

func parseAbilityDC(args []string, verb string) (shared.Ability, int, error) {
	if len(args) == 0 {
		return "", 0, gmerr.InvalidArgumentf("usage: %s <ability> [dc] (e.g. %s strength 15)", verb, verb)
	}
	ability, err := shared.ParseAbility(args[0])
	if err != nil {
		return "", 0, err
	}
	dc := shared.DefaultDC
	if len(args) > 1 {
		if dc, err = parseInt(args[1]); err != nil {
			return "", 0, err
		}
	}
	return ability, dc, nil
}

func parseAttack(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, gmerr.InvalidArgument("usage: attack <target> [modifier] (e.g. attack goblin +5)")
	}
	cmd := Attack{Target: args[0]}
	if len(args) > 1 {
		modifier, err := parseInt(args[1])
		if err != nil {
			return nil, err
		}
		cmd.Modifier = modifier
	}
	return cmd, nil
}

func parseDamage(args []string) (Command, error) {
	if len(args) < 2 {
		return nil, gmerr.InvalidArgument("usage: damage <target> <expression> (e.g. damage goblin 2d6)")
	}
	return Damage{Target: args[0], Expression: strings.Join(args[1:], "")}, nil
}

func parseInitiative(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, gmerr.InvalidArgument("usage: initiative <name> [dex_modifier] (e.g. initiative Kara +2)")
	}
	cmd := Initiative{Name: args[0]}
	if len(args) > 1 {
		modifier, err := parseInt(args[1])
		if err != nil {
			return nil, err
		}
		cmd.DexModifier = modifier
	}
	return cmd, nil
}

func parseCombat(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, gmerr.InvalidArgument("usage: combat <start|end|status|next>")
	}
	switch action := CombatAction(strings.ToLower(args[0])); action {
	case CombatStart, CombatEnd, CombatStatus, CombatNext:
		return Combat{Action: action}, nil
	default:
		return nil, gmerr.InvalidArgumentf("unknown combat action %q, use start, end, status, or next", args[0])
	}
}

func parseHP(args []string) (Command, error) {
	if len(args) < 2 {
		return nil, gmerr.InvalidArgument("usage: hp <name> <current> [max] (e.g. hp goblin 10 15)")
	}
	current, err := parseInt(args[1])
	if err != nil {
		return nil, err
	}
	cmd := SetHP{Name: args[0], Current: current}
	if len(args) > 2 {
		max, err := parseInt(args[2])
		if err != nil {
			return nil, err
		}
		cmd.Max = &max
	}
	return cmd, nil
}

func parseAC(args []string) (Command, error) {
	if len(args) < 2 {
		return nil, gmerr.InvalidArgument("usage: ac <name> <value> (e.g. ac goblin 15)")
	}
	value, err := parseInt(args[1])
	if err != nil {
		return nil, err
	}
	return SetAC{Name: args[0], Value: value}, nil
}

func parseCondition(args []string) (Command, error) {
	if len(args) < 3 {
		return nil, gmerr.InvalidArgument("usage: condition <name> <add|remove> <condition> (e.g. condition goblin add poisoned)")
	}
	switch action := ConditionAction(strings.ToLower(args[1])); action {
	case ConditionAdd, ConditionRemove:
		return Condition{Name: args[0], Action: action, Condition: args[2]}, nil
	default:
		return nil, gmerr.InvalidArgumentf("unknown condition action %q, use add or remove", args[1])
	}
}

func parseSpell(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, gmerr.InvalidArgument("usage: spell <spell_name> [target], spell slots <caster>, spell set <caster> <tier> <max>, or spell restore <caster> <tier> [count]")
	}

	switch strings.ToLower(args[0]) {
	case "slots":
		if len(args) < 2 {
			return nil, gmerr.InvalidArgument("usage: spell slots <caster>")
		}
		return SpellSlots{Caster: args[1]}, nil
	case "set":
		if len(args) < 4 {
			return nil, gmerr.InvalidArgument("usage: spell set <caster> <tier> <max>")
		}
		tier, err := parseInt(args[2])
		if err != nil {
			return nil, err
		}
		max, err := parseInt(args[3])
		if err != nil {
			return nil, err
		}
		return SetSpellSlots{Caster: args[1], Tier: tier, Max: max}, nil
	case "restore":
		if len(args) < 3 {
			return nil, gmerr.InvalidArgument("usage: spell restore <caster> <tier> [count]")
		}
		tier, err := parseInt(args[2])
		if err != nil {
			return nil, err
		}
		count := 1
		if len(args) > 3 {
			if count, err = parseInt(args[3]); err != nil {
				return nil, err
			}
		}
		return RestoreSpellSlots{Caster: args[1], Tier: tier, Count: count}, nil
	default:
		cmd := CastSpell{Spell: args[0]}
		if len(args) > 1 {
			cmd.Target = args[1]
		}
		return cmd, nil
	}
}
