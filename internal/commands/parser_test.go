package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/shadowdark-gm/internal/commands"
	"github.com/KirkDiggler/shadowdark-gm/internal/domain/shared"
	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

func intPtr(v int) *int {
	return &v
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  commands.Command
	}{
		{
			name:  "roll",
			input: "roll 2d6+3",
			want:  commands.Roll{Expression: "2d6+3"},
		},
		{
			name:  "roll joins spaced expression",
			input: "roll 2d6 + 3",
			want:  commands.Roll{Expression: "2d6+3"},
		},
		{
			name:  "keyword is case-insensitive",
			input: "ROLL d20",
			want:  commands.Roll{Expression: "d20"},
		},
		{
			name:  "check with DC",
			input: "check strength 15",
			want:  commands.Check{Ability: shared.AbilityStrength, DC: 15},
		},
		{
			name:  "check defaults the DC",
			input: "check dex",
			want:  commands.Check{Ability: shared.AbilityDexterity, DC: shared.DefaultDC},
		},
		{
			name:  "save",
			input: "save wis 12",
			want:  commands.Save{Ability: shared.AbilityWisdom, DC: 12},
		},
		{
			name:  "attack with modifier",
			input: "attack goblin +5",
			want:  commands.Attack{Target: "goblin", Modifier: 5},
		},
		{
			name:  "attack without modifier",
			input: "attack goblin",
			want:  commands.Attack{Target: "goblin"},
		},
		{
			name:  "damage",
			input: "damage goblin 2d6",
			want:  commands.Damage{Target: "goblin", Expression: "2d6"},
		},
		{
			name:  "initiative with dex modifier",
			input: "initiative Kara +2",
			want:  commands.Initiative{Name: "Kara", DexModifier: 2},
		},
		{
			name:  "initiative negative modifier",
			input: "initiative goblin -1",
			want:  commands.Initiative{Name: "goblin", DexModifier: -1},
		},
		{
			name:  "combat start",
			input: "combat start",
			want:  commands.Combat{Action: commands.CombatStart},
		},
		{
			name:  "combat status",
			input: "combat STATUS",
			want:  commands.Combat{Action: commands.CombatStatus},
		},
		{
			name:  "hp with max",
			input: "hp goblin 10 15",
			want:  commands.SetHP{Name: "goblin", Current: 10, Max: intPtr(15)},
		},
		{
			name:  "hp without max",
			input: "hp goblin 10",
			want:  commands.SetHP{Name: "goblin", Current: 10},
		},
		{
			name:  "ac",
			input: "ac goblin 15",
			want:  commands.SetAC{Name: "goblin", Value: 15},
		},
		{
			name:  "condition add",
			input: "condition goblin add poisoned",
			want:  commands.Condition{Name: "goblin", Action: commands.ConditionAdd, Condition: "poisoned"},
		},
		{
			name:  "condition remove",
			input: "condition goblin remove poisoned",
			want:  commands.Condition{Name: "goblin", Action: commands.ConditionRemove, Condition: "poisoned"},
		},
		{
			name:  "cast spell with target",
			input: "spell magic_missile goblin",
			want:  commands.CastSpell{Spell: "magic_missile", Target: "goblin"},
		},
		{
			name:  "cast spell without target",
			input: "spell shield",
			want:  commands.CastSpell{Spell: "shield"},
		},
		{
			name:  "spell slots",
			input: "spell slots Kara",
			want:  commands.SpellSlots{Caster: "Kara"},
		},
		{
			name:  "spell set",
			input: "spell set Kara 1 3",
			want:  commands.SetSpellSlots{Caster: "Kara", Tier: 1, Max: 3},
		},
		{
			name:  "spell restore with count",
			input: "spell restore Kara 1 2",
			want:  commands.RestoreSpellSlots{Caster: "Kara", Tier: 1, Count: 2},
		},
		{
			name:  "spell restore defaults count",
			input: "spell restore Kara 1",
			want:  commands.RestoreSpellSlots{Caster: "Kara", Tier: 1, Count: 1},
		},
		{
			name:  "help",
			input: "help",
			want:  commands.Help{},
		},
		{
			name:  "surrounding whitespace ignored",
			input: "  roll d20  ",
			want:  commands.Roll{Expression: "d20"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := commands.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := commands.Parse("foobar baz")
	require.Error(t, err)
	assert.True(t, gmerr.IsUnknownCommand(err))
	assert.Contains(t, err.Error(), "foobar baz")

	_, err = commands.Parse("   ")
	require.Error(t, err)
	assert.True(t, gmerr.IsUnknownCommand(err))
}

func TestParse_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{name: "roll without expression", input: "roll", wantMsg: "usage: roll"},
		{name: "check without ability", input: "check", wantMsg: "usage: check"},
		{name: "check unknown ability", input: "check luck 10", wantMsg: "luck"},
		{name: "check bad DC", input: "check str abc", wantMsg: `got "abc"`},
		{name: "attack bad modifier", input: "attack goblin five", wantMsg: `got "five"`},
		{name: "damage missing expression", input: "damage goblin", wantMsg: "usage: damage"},
		{name: "initiative without name", input: "initiative", wantMsg: "usage: initiative"},
		{name: "combat without action", input: "combat", wantMsg: "usage: combat"},
		{name: "combat unknown action", input: "combat pause", wantMsg: "pause"},
		{name: "hp missing value", input: "hp goblin", wantMsg: "usage: hp"},
		{name: "hp bad value", input: "hp goblin ten", wantMsg: `got "ten"`},
		{name: "ac missing value", input: "ac goblin", wantMsg: "usage: ac"},
		{name: "condition missing args", input: "condition goblin add", wantMsg: "usage: condition"},
		{name: "condition unknown action", input: "condition goblin toggle prone", wantMsg: "toggle"},
		{name: "spell without args", input: "spell", wantMsg: "usage: spell"},
		{name: "spell slots without caster", input: "spell slots", wantMsg: "usage: spell slots"},
		{name: "spell set missing args", input: "spell set Kara 1", wantMsg: "usage: spell set"},
		{name: "spell set bad tier", input: "spell set Kara one 3", wantMsg: `got "one"`},
		{name: "spell restore missing tier", input: "spell restore Kara", wantMsg: "usage: spell restore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.Parse(tt.input)
			require.Error(t, err)
			assert.True(t, gmerr.IsInvalidArgument(err), "expected invalid argument error, got %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
