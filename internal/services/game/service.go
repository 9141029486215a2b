// Package game wires the rule components together: it executes parsed
// commands against per-session state and renders the replies players see.
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/shadowdark-gm/internal/commands"
	"github.com/KirkDiggler/shadowdark-gm/internal/dice"
	"github.com/KirkDiggler/shadowdark-gm/internal/domain/combat"
	"github.com/KirkDiggler/shadowdark-gm/internal/domain/session"
	"github.com/KirkDiggler/shadowdark-gm/internal/domain/shared"
	"github.com/KirkDiggler/shadowdark-gm/internal/domain/spells"
	gmerr "github.com/KirkDiggler/shadowdark-gm/internal/errors"
	"github.com/KirkDiggler/shadowdark-gm/internal/repositories/sessions"
	"github.com/KirkDiggler/shadowdark-gm/internal/rules"
)

// ResponseKind tags how a response should be delivered
type ResponseKind string

const (
	// ResponseKindText is a plain text reply
	ResponseKindText ResponseKind = "text"

	// ResponseKindStructured carries machine-readable data alongside the
	// rendered text
	ResponseKindStructured ResponseKind = "structured"
)

// Response is what the transport forwards to the player
type Response struct {
	Kind    ResponseKind `json:"kind"`
	Content string       `json:"content"`
	Data    any          `json:"data,omitempty"`
}

func textResponse(format string, args ...any) *Response {
	return &Response{Kind: ResponseKindText, Content: fmt.Sprintf(format, args...)}
}

func structuredResponse(content string, data any) *Response {
	return &Response{Kind: ResponseKindStructured, Content: content, Data: data}
}

// errorResponse converts a recoverable engine error into a player-facing
// reply. Errors reaching here never propagate to the transport.
func errorResponse(err error) *Response {
	return textResponse("Error: %s", err.Error())
}

const (
	defaultActorName    = "Player"
	defaultAbilityScore = 10
)

// ActorContext identifies who issued a command and, when the transport
// knows it, their ability scores. Nil is a valid anonymous actor.
type ActorContext struct {
	Name      string
	Abilities map[shared.Ability]int
}

func (a *ActorContext) name() string {
	if a == nil || a.Name == "" {
		return defaultActorName
	}
	return a.Name
}

func (a *ActorContext) score(ability shared.Ability) int {
	if a == nil {
		return defaultAbilityScore
	}
	if score, ok := a.Abilities[ability]; ok {
		return score
	}
	return defaultAbilityScore
}

// Service is the engine boundary: one synchronous call per command line.
// Callers must serialize calls per session; distinct sessions are
// independent.
type Service interface {
	// Dispatch parses a command line and executes it against the
	// session's state
	Dispatch(ctx context.Context, sessionID string, actor *ActorContext, input string) (*Response, error)

	// Execute runs an already-parsed command against the session's state
	Execute(ctx context.Context, sessionID string, actor *ActorContext, cmd commands.Command) (*Response, error)
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository sessions.Repository
	Roller     dice.Roller
	Spellbook  *spells.Spellbook
}

type service struct {
	repository sessions.Repository
	roller     dice.Roller
	calc       *rules.Calculator
	spellbook  *spells.Spellbook
}

// NewService creates a new game service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
		roller:     cfg.Roller,
		spellbook:  cfg.Spellbook,
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.spellbook == nil {
		svc.spellbook = spells.DefaultSpellbook()
	}
	svc.calc = rules.NewCalculator(&rules.CalculatorConfig{Roller: svc.roller})

	return svc
}

// Dispatch parses a command line and executes it
func (s *service) Dispatch(ctx context.Context, sessionID string, actor *ActorContext, input string) (*Response, error) {
	cmd, err := commands.Parse(input)
	if err != nil {
		if gmerr.IsRecoverable(err) {
			return errorResponse(err), nil
		}
		return nil, err
	}
	return s.Execute(ctx, sessionID, actor, cmd)
}

// Execute loads the session state, runs the command, and saves the state
// back. Recoverable rule failures become text replies; only storage and
// programming errors surface to the caller.
func (s *service) Execute(ctx context.Context, sessionID string, actor *ActorContext, cmd commands.Command) (*Response, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, gmerr.InvalidArgument("session ID is required")
	}

	state, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		if !gmerr.IsNotFound(err) {
			return nil, gmerr.Wrapf(err, "failed to load session %q", sessionID)
		}
		state = session.NewState(sessionID)
	}

	resp, err := s.handle(state, actor, cmd)
	if err != nil {
		if gmerr.IsRecoverable(err) {
			return errorResponse(err), nil
		}
		return nil, err
	}

	state.UpdatedAt = time.Now()
	if err := s.repository.Save(ctx, state); err != nil {
		return nil, gmerr.Wrapf(err, "failed to save session %q", sessionID)
	}

	return resp, nil
}

func (s *service) handle(state *session.State, actor *ActorContext, cmd commands.Command) (*Response, error) {
	switch cmd := cmd.(type) {
	case commands.Roll:
		return s.handleRoll(cmd)
	case commands.Check:
		return s.handleCheck(actor, cmd)
	case commands.Save:
		return s.handleSave(actor, cmd)
	case commands.Attack:
		return s.handleAttack(state, cmd)
	case commands.Damage:
		return s.handleDamage(state, cmd)
	case commands.Initiative:
		return s.handleInitiative(state, actor, cmd)
	case commands.Combat:
		return s.handleCombat(state, cmd)
	case commands.SetHP:
		return s.handleSetHP(state, cmd)
	case commands.SetAC:
		return s.handleSetAC(state, cmd)
	case commands.Condition:
		return s.handleCondition(state, cmd)
	case commands.CastSpell:
		return s.handleCastSpell(state, actor, cmd)
	case commands.SpellSlots:
		return s.handleSpellSlots(state, cmd)
	case commands.SetSpellSlots:
		return s.handleSetSpellSlots(state, cmd)
	case commands.RestoreSpellSlots:
		return s.handleRestoreSpellSlots(state, cmd)
	case commands.Help:
		return textResponse("%s", helpText), nil
	default:
		return nil, gmerr.Internalf("unhandled command type %T", cmd)
	}
}

func (s *service) handleRoll(cmd commands.Roll) (*Response, error) {
	result, err := dice.RollExpression(cmd.Expression, s.roller)
	if err != nil {
		return nil, err
	}
	return structuredResponse(fmt.Sprintf("🎲 %s", result), result), nil
}

func (s *service) handleCheck(actor *ActorContext, cmd commands.Check) (*Response, error) {
	outcome, err := s.calc.AbilityCheck(actor.score(cmd.Ability), cmd.DC)
	if err != nil {
		return nil, err
	}
	return structuredResponse(fmt.Sprintf("%s check. %s", cmd.Ability.Title(), outcome.Breakdown), outcome), nil
}

func (s *service) handleSave(actor *ActorContext, cmd commands.Save) (*Response, error) {
	outcome, err := s.calc.SavingThrow(actor.score(cmd.Ability), cmd.DC)
	if err != nil {
		return nil, err
	}
	return structuredResponse(fmt.Sprintf("%s saving throw. %s", cmd.Ability.Title(), outcome.Breakdown), outcome), nil
}

func (s *service) handleAttack(state *session.State, cmd commands.Attack) (*Response, error) {
	// An attack against a tracked participant resolves against its AC;
	// anything else is reported without a verdict.
	var targetAC *int
	if p := state.Combat.Find(cmd.Target); p != nil {
		ac := p.AC
		targetAC = &ac
	}

	outcome, err := s.calc.AttackRoll(cmd.Modifier, targetAC)
	if err != nil {
		return nil, err
	}
	return structuredResponse(fmt.Sprintf("Attack vs %s. %s", cmd.Target, outcome.Breakdown), outcome), nil
}

func (s *service) handleDamage(state *session.State, cmd commands.Damage) (*Response, error) {
	result, err := s.calc.DamageRoll(cmd.Expression)
	if err != nil {
		return nil, err
	}

	if !state.Combat.Active {
		return structuredResponse(fmt.Sprintf("💥 %s takes %d damage", cmd.Target, result.Total), result), nil
	}

	p, err := state.Combat.ApplyDamage(cmd.Target, result.Total)
	if err != nil {
		return nil, err
	}

	hpStatus := "DEAD"
	if p.CurrentHP > 0 {
		hpStatus = fmt.Sprintf("%d/%d", p.CurrentHP, p.MaxHP)
	}
	return structuredResponse(fmt.Sprintf("💥 %s takes %d damage. HP: %s", cmd.Target, result.Total, hpStatus), result), nil
}

func (s *service) handleInitiative(state *session.State, actor *ActorContext, cmd commands.Initiative) (*Response, error) {
	if !state.Combat.Active {
		return nil, gmerr.NotInCombat("no active combat, use combat start first")
	}

	outcome, err := s.calc.InitiativeRoll(cmd.DexModifier)
	if err != nil {
		return nil, err
	}

	ptype := combat.ParticipantTypeNPC
	if strings.EqualFold(cmd.Name, actor.name()) {
		ptype = combat.ParticipantTypePlayer
	}

	if _, err := state.Combat.AddParticipant(cmd.Name, outcome.Total, cmd.DexModifier, ptype); err != nil {
		return nil, err
	}

	return structuredResponse(fmt.Sprintf("%s: %s", cmd.Name, outcome.Breakdown), outcome), nil
}

func (s *service) handleCombat(state *session.State, cmd commands.Combat) (*Response, error) {
	switch cmd.Action {
	case commands.CombatStart:
		if !state.Combat.Start() {
			return textResponse("Combat is already active."), nil
		}
		return textResponse("Combat started! Use the initiative command to add participants."), nil
	case commands.CombatEnd:
		count := state.Combat.End()
		return textResponse("Combat ended. %d participant(s) removed.", count), nil
	case commands.CombatStatus:
		snapshot := state.Combat.Snapshot()
		return structuredResponse(formatStatus(snapshot), snapshot), nil
	case commands.CombatNext:
		p, err := state.Combat.NextTurn()
		if err != nil {
			return nil, err
		}
		return textResponse("Turn: %s", p.Name), nil
	default:
		return nil, gmerr.Internalf("unhandled combat action %q", cmd.Action)
	}
}

func (s *service) handleSetHP(state *session.State, cmd commands.SetHP) (*Response, error) {
	p, err := state.Combat.SetHP(cmd.Name, cmd.Current, cmd.Max)
	if err != nil {
		return nil, err
	}
	return textResponse("%s: HP %d/%d", p.Name, p.CurrentHP, p.MaxHP), nil
}

func (s *service) handleSetAC(state *session.State, cmd commands.SetAC) (*Response, error) {
	p, err := state.Combat.SetAC(cmd.Name, cmd.Value)
	if err != nil {
		return nil, err
	}
	return textResponse("%s: AC %d", p.Name, p.AC), nil
}

func (s *service) handleCondition(state *session.State, cmd commands.Condition) (*Response, error) {
	condition := shared.NormalizeCondition(cmd.Condition)

	if cmd.Action == commands.ConditionAdd {
		p, added, err := state.Combat.AddCondition(cmd.Name, condition)
		if err != nil {
			return nil, err
		}
		if !added {
			return textResponse("%s is already %s.", p.Name, condition), nil
		}
		return textResponse("%s is now %s.", p.Name, condition), nil
	}

	p, removed, err := state.Combat.RemoveCondition(cmd.Name, condition)
	if err != nil {
		return nil, err
	}
	if !removed {
		return textResponse("%s is not %s.", p.Name, condition), nil
	}
	return textResponse("%s is no longer %s.", p.Name, condition), nil
}

func (s *service) handleCastSpell(state *session.State, actor *ActorContext, cmd commands.CastSpell) (*Response, error) {
	spell, ok := s.spellbook.Lookup(cmd.Spell)
	if !ok {
		return nil, gmerr.NotFoundf("spell %q not found", cmd.Spell)
	}

	caster := actor.name()
	target := ""
	if cmd.Target != "" {
		target = fmt.Sprintf(" on %s", cmd.Target)
	}

	// Cantrips consume no slot
	if spell.Level == 0 {
		return textResponse("%s casts %s%s.", caster, spell.Name, target), nil
	}

	info, err := state.Spells.Cast(caster, spell.Level)
	if err != nil {
		return nil, err
	}
	return textResponse("%s casts %s%s. (Used level %d slot, %d remaining)",
		caster, spell.Name, target, spell.Level, info.Remaining()), nil
}

func (s *service) handleSpellSlots(state *session.State, cmd commands.SpellSlots) (*Response, error) {
	tiers := state.Spells.Tiers(cmd.Caster)
	if len(tiers) == 0 {
		return textResponse("%s has no spell slots tracked.", cmd.Caster), nil
	}

	slots := state.Spells.Slots(cmd.Caster)
	lines := []string{fmt.Sprintf("%s's spell slots:", cmd.Caster)}
	for _, tier := range tiers {
		info := slots[tier]
		lines = append(lines, fmt.Sprintf("  Level %d: %d of %d remaining", tier, info.Remaining(), info.Max))
	}
	return structuredResponse(strings.Join(lines, "\n"), slots), nil
}

func (s *service) handleSetSpellSlots(state *session.State, cmd commands.SetSpellSlots) (*Response, error) {
	if _, err := state.Spells.SetSlots(cmd.Caster, cmd.Tier, cmd.Max); err != nil {
		return nil, err
	}
	return textResponse("%s: %d level %d spell slot(s).", cmd.Caster, cmd.Max, cmd.Tier), nil
}

func (s *service) handleRestoreSpellSlots(state *session.State, cmd commands.RestoreSpellSlots) (*Response, error) {
	info, err := state.Spells.Restore(cmd.Caster, cmd.Tier, cmd.Count)
	if err != nil {
		return nil, err
	}
	return textResponse("%s: restored level %d spell slot(s), %d of %d remaining.",
		cmd.Caster, cmd.Tier, info.Remaining(), info.Max), nil
}

func formatStatus(snapshot *combat.Status) string {
	if !snapshot.InCombat {
		return "No active combat."
	}
	if len(snapshot.Participants) == 0 {
		return "Combat started but no participants yet."
	}

	lines := []string{"=== Combat Status ==="}
	for i := range snapshot.Participants {
		p := &snapshot.Participants[i]
		hpStr := fmt.Sprintf("HP %d", p.CurrentHP)
		if p.MaxHP > 0 {
			hpStr = fmt.Sprintf("HP %d/%d", p.CurrentHP, p.MaxHP)
		}
		condStr := ""
		if len(p.Conditions) > 0 {
			condStr = fmt.Sprintf(" [%s]", strings.Join(p.Conditions, ", "))
		}
		lines = append(lines, fmt.Sprintf("%s: Initiative %d, %s, AC %d%s",
			p.Name, p.Initiative, hpStr, p.AC, condStr))
	}
	if snapshot.CurrentTurn != "" {
		lines = append(lines, "", fmt.Sprintf("Current turn: %s", snapshot.CurrentTurn))
	}
	return strings.Join(lines, "\n")
}

const helpText = `Available commands:

Dice and rolls:
  roll <expression>              Roll dice (e.g. roll 2d6+3)
  check <ability> [dc]           Ability check (e.g. check strength 15)
  save <ability> [dc]            Saving throw (e.g. save dex 12)
  attack <target> [modifier]     Attack roll (e.g. attack goblin +5)
  damage <target> <expression>   Roll and apply damage (e.g. damage goblin 2d6)

Combat:
  combat start|end|status|next   Drive the combat tracker
  initiative <name> [dex_mod]    Roll initiative (e.g. initiative Kara +2)
  hp <name> <current> [max]      Set hit points
  ac <name> <value>              Set armor class
  condition <name> add|remove <condition>

Spells:
  spell <spell_name> [target]    Cast a spell
  spell slots <caster>           Show remaining spell slots
  spell set <caster> <tier> <max>
  spell restore <caster> <tier> [count]`
