// Package dice parses and evaluates dice expressions like "2d6+3" or
// "1d20+1d4-1", producing auditable roll results.
package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
)

// Sanity bounds carried over from the original tracker. Expressions
// outside these are almost certainly typos, not real rolls.
const (
	MaxDiceCount = 100
	MaxDieSize   = 1000
)

var diceTermPattern = regexp.MustCompile(`^(\d*)d(\d+)$`)

// RollResult is the immutable record of a single evaluated expression
type RollResult struct {
	Expression string `json:"expression"`
	Rolls      []int  `json:"rolls"`
	Modifier   int    `json:"modifier"`
	Total      int    `json:"total"`
}

// String renders the roll breakdown, e.g. "2d6+3 = [4, 5] +3 = 12"
func (r *RollResult) String() string {
	parts := make([]string, len(r.Rolls))
	for i, roll := range r.Rolls {
		parts[i] = strconv.Itoa(roll)
	}
	s := fmt.Sprintf("%s = [%s]", r.Expression, strings.Join(parts, ", "))
	if r.Modifier != 0 {
		s += fmt.Sprintf(" %+d", r.Modifier)
	}
	return s + fmt.Sprintf(" = %d", r.Total)
}

type term struct {
	count int
	sides int
}

// Expression is a parsed dice expression: one or more dice terms plus a
// signed integer modifier
type Expression struct {
	raw      string
	terms    []term
	modifier int
}

// Modifier returns the accumulated signed integer modifier
func (e *Expression) Modifier() int {
	return e.modifier
}

// Parse validates a dice expression of the form
// term (('+'|'-') term)* where term = [N]'d'S or a plain integer.
// N defaults to 1; S must be at least 2. Dice terms are always added,
// so only integer modifiers may drive a total negative.
func Parse(raw string) (*Expression, error) {
	cleaned := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	if cleaned == "" {
		return nil, gmerr.InvalidExpression("empty dice expression")
	}

	e := &Expression{raw: cleaned}
	sign := 1
	buf := ""

	flush := func() error {
		if buf == "" {
			return gmerr.InvalidExpressionf("invalid dice expression: %s", raw)
		}
		if m := diceTermPattern.FindStringSubmatch(buf); m != nil {
			if sign < 0 {
				return gmerr.InvalidExpressionf("cannot subtract dice in expression: %s", raw)
			}
			count := 1
			if m[1] != "" {
				n, err := strconv.Atoi(m[1])
				if err != nil {
					return gmerr.InvalidExpressionf("invalid dice count in expression: %s", raw)
				}
				count = n
			}
			sides, err := strconv.Atoi(m[2])
			if err != nil {
				return gmerr.InvalidExpressionf("invalid die size in expression: %s", raw)
			}
			if count < 1 || count > MaxDiceCount {
				return gmerr.InvalidExpressionf("number of dice must be between 1 and %d", MaxDiceCount)
			}
			if sides < 2 || sides > MaxDieSize {
				return gmerr.InvalidExpressionf("die size must be between 2 and %d", MaxDieSize)
			}
			e.terms = append(e.terms, term{count: count, sides: sides})
			buf = ""
			return nil
		}

		n, err := strconv.Atoi(buf)
		if err != nil {
			return gmerr.InvalidExpressionf("invalid term %q in expression: %s", buf, raw)
		}
		e.modifier += sign * n
		buf = ""
		return nil
	}

	for i, r := range cleaned {
		switch r {
		case '+', '-':
			if i == 0 {
				// Leading sign applies to the first term
				if r == '-' {
					sign = -1
				}
				continue
			}
			if err := flush(); err != nil {
				return nil, err
			}
			sign = 1
			if r == '-' {
				sign = -1
			}
		default:
			buf += string(r)
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(e.terms) == 0 {
		return nil, gmerr.InvalidExpressionf("expression has no dice term: %s", raw)
	}

	return e, nil
}

// Roll evaluates the expression against the given roller. Outcomes are
// recorded in term order; the modifier is applied once to the total.
func (e *Expression) Roll(roller Roller) (*RollResult, error) {
	result := &RollResult{
		Expression: e.raw,
		Modifier:   e.modifier,
	}

	for _, t := range e.terms {
		rolls, err := roller.Roll(t.count, t.sides)
		if err != nil {
			return nil, err
		}
		for _, roll := range rolls {
			result.Total += roll
		}
		result.Rolls = append(result.Rolls, rolls...)
	}

	result.Total += e.modifier
	return result, nil
}

// RollExpression parses and evaluates an expression in one call
func RollExpression(expression string, roller Roller) (*RollResult, error) {
	parsed, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	return parsed.Roll(roller)
}
