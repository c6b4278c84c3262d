package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombat -source=service.go

import (
	"context"
	"fmt"
	"time"

	"github.com/delveteam/delve/internal/dice"
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
)

const (
	// DefaultMaxRounds is the hard round cap for an encounter
	DefaultMaxRounds = 50

	// DefaultTimeout is the wall-clock limit for an encounter
	DefaultTimeout = 60 * time.Second
)

// Service resolves one encounter to completion. Ordering is strict: the
// ally phase precedes the enemy phase within a round, and the end-of-round
// check precedes the next round's start.
type Service interface {
	// Resolve runs the encounter until victory, defeat, or a safety abort
	Resolve(ctx context.Context, input *EncounterInput) (*combat.Result, error)
}

// EncounterInput describes one encounter
type EncounterInput struct {
	Allies    []combat.Combatant
	Enemies   []*combat.Enemy
	MaxRounds int           // 0 uses the service default
	Timeout   time.Duration // 0 uses the service default
}

type service struct {
	roller    dice.Roller
	maxRounds int
	timeout   time.Duration
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller    dice.Roller   // Required
	MaxRounds int           // Optional, defaults to DefaultMaxRounds
	Timeout   time.Duration // Optional, defaults to DefaultTimeout
}

// NewService creates a new combat resolution service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		roller:    cfg.Roller,
		maxRounds: cfg.MaxRounds,
		timeout:   cfg.Timeout,
	}
	if svc.maxRounds <= 0 {
		svc.maxRounds = DefaultMaxRounds
	}
	if svc.timeout <= 0 {
		svc.timeout = DefaultTimeout
	}
	return svc
}

// Resolve implements Service
func (s *service) Resolve(ctx context.Context, input *EncounterInput) (*combat.Result, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if len(input.Allies) == 0 {
		return nil, engerr.InvalidArgument("at least one ally is required")
	}
	if len(input.Enemies) == 0 {
		return nil, engerr.InvalidArgument("at least one enemy is required")
	}
	if combat.ConsciousCount(input.Allies) == 0 {
		return nil, engerr.Precondition("no conscious allies to start combat")
	}

	maxRounds := input.MaxRounds
	if maxRounds <= 0 {
		maxRounds = s.maxRounds
	}
	timeout := input.Timeout
	if timeout <= 0 {
		timeout = s.timeout
	}

	sess := combat.NewSession(input.Allies, input.Enemies)
	// defend bonuses pending consumption, keyed by combatant ID
	defended := make(map[string]bool)

	outcome := combat.OutcomeAborted
	for {
		if aborted := s.safetyCheck(ctx, sess, timeout); aborted {
			break
		}

		// Ally phase
		sess.Phase = combat.PhaseAllyTurn
		s.tickStatuses(sess, sess.ConsciousAllies())
		if over, result := sess.CheckEnd(); over {
			outcome = result
			break
		}
		for _, ally := range sess.ConsciousAllies() {
			if err := s.takeAllyTurn(sess, ally, defended); err != nil {
				return nil, err
			}
		}
		if over, result := sess.CheckEnd(); over {
			outcome = result
			break
		}

		if aborted := s.safetyCheck(ctx, sess, timeout); aborted {
			break
		}

		// Enemy phase
		sess.Phase = combat.PhaseEnemyTurn
		s.tickStatuses(sess, enemiesAsCombatants(sess.ConsciousEnemies()))
		if over, result := sess.CheckEnd(); over {
			outcome = result
			break
		}
		for _, enemy := range sess.ConsciousEnemies() {
			if err := s.takeEnemyTurn(sess, enemy, defended); err != nil {
				return nil, err
			}
		}
		if over, result := sess.CheckEnd(); over {
			outcome = result
			break
		}

		sess.Round++
		if sess.Round > maxRounds {
			sess.Append(fmt.Sprintf("Combat aborted: round cap of %d reached", maxRounds))
			break
		}
	}

	defeated := 0
	for _, enemy := range sess.Enemies {
		if !enemy.IsAlive() {
			defeated++
		}
	}

	rounds := sess.Round
	if rounds > maxRounds {
		rounds = maxRounds
	}

	return &combat.Result{
		Outcome:         outcome,
		Rounds:          rounds,
		DurationSeconds: time.Since(sess.StartedAt).Seconds(),
		SurvivorCount:   combat.ConsciousCount(sess.Allies),
		EnemiesDefeated: defeated,
		Log:             sess.Log,
	}, nil
}

// safetyCheck enforces the wall-clock timeout, caller cancellation, and
// roster integrity before each phase. Any violation aborts the encounter.
func (s *service) safetyCheck(ctx context.Context, sess *combat.Session, timeout time.Duration) bool {
	if ctx.Err() != nil {
		sess.Append("Combat aborted: caller cancelled")
		return true
	}
	if time.Since(sess.StartedAt) > timeout {
		sess.Append(fmt.Sprintf("Combat aborted: exceeded %s time limit", timeout))
		return true
	}

	for _, ally := range sess.Allies {
		if ally == nil || ally.GetID() == "" || ally.GetMaxHP() <= 0 {
			sess.Append("Combat aborted: invalid ally roster")
			return true
		}
	}
	for _, enemy := range sess.Enemies {
		if enemy == nil || enemy.GetID() == "" || enemy.GetMaxHP() <= 0 {
			sess.Append("Combat aborted: invalid enemy roster")
			return true
		}
	}
	return false
}

// tickStatuses processes turn-start status effects for the active side
func (s *service) tickStatuses(sess *combat.Session, actors []combat.Combatant) {
	for _, actor := range actors {
		// snapshot: Remove/Add below mutate the underlying list
		effects := append([]shared.StatusEffect{}, actor.GetStatusEffects()...)
		for _, effect := range effects {
			switch {
			case effect.Type.TicksDamage():
				taken := actor.TakeDamage(effect.Power)
				sess.Append(fmt.Sprintf("%s suffers %d %s damage", actor.GetName(), taken, effect.Type))
			case effect.Type == shared.StatusRegen:
				healed := actor.Heal(effect.Power)
				if healed > 0 {
					sess.Append(fmt.Sprintf("%s regenerates %d HP", actor.GetName(), healed))
				}
			}

			effect.RemainingTurns--
			if effect.RemainingTurns <= 0 {
				actor.RemoveStatusEffect(effect.Type)
			} else {
				actor.AddStatusEffect(effect)
			}
		}
		if !actor.IsAlive() {
			sess.Append(fmt.Sprintf("%s falls!", actor.GetName()))
		}
	}
}

// takeAllyTurn resolves one ally action: heal a wounded ally when
// possible, otherwise 30% chance to use an ability, a defend when badly
// hurt, else a basic attack
func (s *service) takeAllyTurn(sess *combat.Session, actor combat.Combatant, defended map[string]bool) error {
	// Heal first when someone is badly wounded and the actor can heal
	if target := mostWounded(sess.ConsciousAllies()); target != nil &&
		target.GetHP()*100 < target.GetMaxHP()*35 {
		if ability, ok := usableHealing(actor); ok {
			if done, err := s.resolveAbility(sess, actor, target, ability); err != nil || done {
				return err
			}
		}
	}

	if ability, ok := usableDamaging(actor); ok {
		useAbility, err := s.roller.Percent(30)
		if err != nil {
			return err
		}
		if useAbility {
			target, err := s.pickEnemyTarget(sess)
			if err != nil {
				return err
			}
			if target != nil {
				if done, err := s.resolveAbility(sess, actor, target, ability); err != nil || done {
					return err
				}
			}
		}
	}

	if actor.GetHP()*100 < actor.GetMaxHP()*30 && !defended[actor.GetID()] {
		defend, err := s.roller.Percent(25)
		if err != nil {
			return err
		}
		if defend {
			defended[actor.GetID()] = true
			sess.Append(fmt.Sprintf("%s takes a defensive stance", actor.GetName()))
			return nil
		}
	}

	target, err := s.pickEnemyTarget(sess)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	return s.resolveAttack(sess, actor, target, defended)
}

// takeEnemyTurn resolves one enemy action: 30% chance to use a known
// ability when one is available, otherwise a basic attack on a uniformly
// random conscious ally
func (s *service) takeEnemyTurn(sess *combat.Session, enemy *combat.Enemy, defended map[string]bool) error {
	target, err := s.pickAllyTarget(sess)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	if abilities := enemy.GetAbilities(); len(abilities) > 0 {
		useAbility, err := s.roller.Percent(30)
		if err != nil {
			return err
		}
		if useAbility {
			pick, err := s.roller.Between(0, len(abilities)-1)
			if err != nil {
				return err
			}
			ability := abilities[pick]
			abilityTarget := target
			if ability.IsHealing() {
				wounded := mostWoundedEnemy(sess.ConsciousEnemies())
				if wounded == nil {
					// nothing to heal, press the attack instead
					return s.resolveAttack(sess, enemy, target, defended)
				}
				abilityTarget = wounded
			}
			if done, err := s.resolveAbility(sess, enemy, abilityTarget, ability); err != nil || done {
				return err
			}
		}
	}

	return s.resolveAttack(sess, enemy, target, defended)
}

// resolveAttack applies the basic attack formula:
// power ± 20% variance - 10% of target defense, floored at 1, halved if
// the target defended last turn (the defend bonus is consumed)
func (s *service) resolveAttack(sess *combat.Session, actor, target combat.Combatant, defended map[string]bool) error {
	variance, err := s.roller.Between(-20, 20)
	if err != nil {
		return err
	}

	power := float64(actor.GetAttack())
	raw := power + power*float64(variance)/100.0 - 0.1*float64(target.GetDefense())
	damage := int(raw)
	if damage < 1 {
		damage = 1
	}

	if defended[target.GetID()] {
		delete(defended, target.GetID())
		damage /= 2
		if damage < 1 {
			damage = 1
		}
		sess.Append(fmt.Sprintf("%s's guard softens the blow", target.GetName()))
	}

	taken := target.TakeDamage(damage)
	sess.Append(fmt.Sprintf("%s hits %s for %d damage", actor.GetName(), target.GetName(), taken))
	if !target.IsAlive() {
		sess.Append(fmt.Sprintf("%s falls!", target.GetName()))
	}
	return nil
}

// resolveAbility applies an ability. Returns false (not done) when the
// ability cannot be used, so the caller can fall back to a basic attack
// without the actor losing the turn.
func (s *service) resolveAbility(sess *combat.Session, actor, target combat.Combatant, ability combat.Ability) (bool, error) {
	if ability.Key == "" {
		return false, nil
	}
	if !actor.SpendMP(ability.MPCost) {
		sess.Append(fmt.Sprintf("%s lacks the mana for %s", actor.GetName(), ability.Name))
		return false, nil
	}

	modifier := float64(actor.GetSpellPower()) * ability.Multiplier

	if ability.IsHealing() {
		healed := target.Heal(ability.BaseHealing + int(modifier))
		sess.Append(fmt.Sprintf("%s uses %s, healing %s for %d", actor.GetName(), ability.Name, target.GetName(), healed))
	} else {
		damage := ability.BaseDamage + int(modifier)
		if damage < 1 {
			damage = 1
		}
		taken := target.TakeDamage(damage)
		sess.Append(fmt.Sprintf("%s uses %s on %s for %d damage", actor.GetName(), ability.Name, target.GetName(), taken))
		if !target.IsAlive() {
			sess.Append(fmt.Sprintf("%s falls!", target.GetName()))
		}
	}

	if ability.Status != "" && target.IsAlive() {
		target.AddStatusEffect(shared.StatusEffect{
			Type:           ability.Status,
			RemainingTurns: ability.StatusTurns,
			Power:          ability.StatusPower,
		})
		sess.Append(fmt.Sprintf("%s is afflicted by %s", target.GetName(), ability.Status))
	}
	return true, nil
}

func (s *service) pickEnemyTarget(sess *combat.Session) (combat.Combatant, error) {
	conscious := sess.ConsciousEnemies()
	if len(conscious) == 0 {
		return nil, nil
	}
	pick, err := s.roller.Between(0, len(conscious)-1)
	if err != nil {
		return nil, err
	}
	return conscious[pick], nil
}

func (s *service) pickAllyTarget(sess *combat.Session) (combat.Combatant, error) {
	conscious := sess.ConsciousAllies()
	if len(conscious) == 0 {
		return nil, nil
	}
	pick, err := s.roller.Between(0, len(conscious)-1)
	if err != nil {
		return nil, err
	}
	return conscious[pick], nil
}

func mostWounded(actors []combat.Combatant) combat.Combatant {
	var worst combat.Combatant
	worstRatio := 1.0
	for _, actor := range actors {
		ratio := float64(actor.GetHP()) / float64(actor.GetMaxHP())
		if ratio < worstRatio {
			worstRatio = ratio
			worst = actor
		}
	}
	return worst
}

func mostWoundedEnemy(enemies []*combat.Enemy) *combat.Enemy {
	var worst *combat.Enemy
	worstRatio := 1.0
	for _, enemy := range enemies {
		ratio := float64(enemy.GetHP()) / float64(enemy.GetMaxHP())
		if ratio < worstRatio {
			worstRatio = ratio
			worst = enemy
		}
	}
	return worst
}

func usableHealing(actor combat.Combatant) (combat.Ability, bool) {
	for _, ability := range actor.GetAbilities() {
		if ability.IsHealing() && actor.GetMP() >= ability.MPCost {
			return ability, true
		}
	}
	return combat.Ability{}, false
}

func usableDamaging(actor combat.Combatant) (combat.Ability, bool) {
	for _, ability := range actor.GetAbilities() {
		if !ability.IsHealing() && actor.GetMP() >= ability.MPCost {
			return ability, true
		}
	}
	return combat.Ability{}, false
}

func enemiesAsCombatants(enemies []*combat.Enemy) []combat.Combatant {
	out := make([]combat.Combatant, len(enemies))
	for i, enemy := range enemies {
		out[i] = enemy
	}
	return out
}
