// Package rules implements the Shadowdark rule math: ability modifiers,
// checks, attack rolls, saving throws, and initiative. Everything here is
// a pure function of its inputs plus the injected dice roller.
package rules

import (
	"fmt"

	"github.com/KirkDiggler/shadowdark-gm/internal/dice"
)

// Modifier table extremes. Scores beyond the table clamp here.
const (
	MinModifier = -4
	MaxModifier = 4
)

// AbilityModifier maps an ability score to its modifier: every 2 points
// above or below the 10-11 baseline shifts the modifier by 1, clamped at
// the table's extremes.
func AbilityModifier(score int) int {
	var mod int
	if score >= 10 {
		mod = (score - 10) / 2
	} else {
		mod = -((11 - score) / 2)
	}
	if mod < MinModifier {
		return MinModifier
	}
	if mod > MaxModifier {
		return MaxModifier
	}
	return mod
}

// CheckResult is the outcome of a d20 roll against a target number.
// Resolved is false for informational rolls with no target to beat.
type CheckResult struct {
	Success   bool             `json:"success"`
	Resolved  bool             `json:"resolved"`
	Total     int              `json:"total"`
	Roll      *dice.RollResult `json:"roll"`
	Breakdown string           `json:"breakdown"`
}

// Calculator performs rule checks with an injectable roller
type Calculator struct {
	roller dice.Roller
}

// CalculatorConfig holds configuration for the calculator
type CalculatorConfig struct {
	Roller dice.Roller
}

// NewCalculator creates a calculator. A nil config or roller falls back
// to a time-seeded random roller.
func NewCalculator(cfg *CalculatorConfig) *Calculator {
	c := &Calculator{}
	if cfg != nil && cfg.Roller != nil {
		c.roller = cfg.Roller
	} else {
		c.roller = dice.NewRandomRoller()
	}
	return c
}

// d20 rolls the check die and returns the face value
func (c *Calculator) d20() (int, *dice.RollResult, error) {
	rolls, err := c.roller.Roll(1, 20)
	if err != nil {
		return 0, nil, err
	}
	return rolls[0], &dice.RollResult{
		Expression: "1d20",
		Rolls:      rolls,
		Total:      rolls[0],
	}, nil
}

// AbilityCheck rolls 1d20 plus the score's modifier against the DC
func (c *Calculator) AbilityCheck(score, dc int) (*CheckResult, error) {
	return c.checkAgainst(AbilityModifier(score), dc, "DC")
}

// SavingThrow rolls 1d20 plus the score's modifier against the DC. Same
// math as an ability check; kept separate so callers read correctly.
func (c *Calculator) SavingThrow(score, dc int) (*CheckResult, error) {
	return c.checkAgainst(AbilityModifier(score), dc, "DC")
}

func (c *Calculator) checkAgainst(modifier, target int, targetLabel string) (*CheckResult, error) {
	face, roll, err := c.d20()
	if err != nil {
		return nil, err
	}

	total := face + modifier
	success := total >= target
	verdict := "Failure"
	if success {
		verdict = "Success"
	}
	return &CheckResult{
		Success:  success,
		Resolved: true,
		Total:    total,
		Roll:     roll,
		Breakdown: fmt.Sprintf("%s: %d (d20: %d, mod: %+d) vs %s %d",
			verdict, total, face, modifier, targetLabel, target),
	}, nil
}

// AttackRoll rolls 1d20 plus the attack bonus. With a known target AC the
// result carries a hit or miss verdict; without one it is informational.
func (c *Calculator) AttackRoll(attackBonus int, targetAC *int) (*CheckResult, error) {
	face, roll, err := c.d20()
	if err != nil {
		return nil, err
	}

	total := face + attackBonus
	result := &CheckResult{
		Total: total,
		Roll:  roll,
	}
	if targetAC == nil {
		result.Breakdown = fmt.Sprintf("Attack: %d (d20: %d, mod: %+d)", total, face, attackBonus)
		return result, nil
	}

	result.Resolved = true
	result.Success = total >= *targetAC
	verdict := "MISS"
	if result.Success {
		verdict = "HIT"
	}
	result.Breakdown = fmt.Sprintf("%s: %d (d20: %d, mod: %+d) vs AC %d",
		verdict, total, face, attackBonus, *targetAC)
	return result, nil
}

// InitiativeRoll rolls 1d20 plus the dexterity modifier
func (c *Calculator) InitiativeRoll(dexModifier int) (*CheckResult, error) {
	face, roll, err := c.d20()
	if err != nil {
		return nil, err
	}

	total := face + dexModifier
	return &CheckResult{
		Total:     total,
		Roll:      roll,
		Breakdown: fmt.Sprintf("Initiative %d (d20: %d, Dex mod: %+d)", total, face, dexModifier),
	}, nil
}

// DamageRoll evaluates a damage expression. Applying the damage is the
// combat tracker's job, keeping compute and apply separately testable.
func (c *Calculator) DamageRoll(expression string) (*dice.RollResult, error) {
	return dice.RollExpression(expression, c.roller)
}
