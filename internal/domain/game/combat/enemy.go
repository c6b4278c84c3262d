package combat

import (
	"sort"

	"github.com/delveteam/delve/internal/domain/shared"
)

// Enemy is a combat participant generated for a room. Boss variants carry
// phases that swap the active ability list as HP drops.
type Enemy struct {
	ID          string                `json:"id"`
	Key         string                `json:"key"` // base enemy type identifier
	Name        string                `json:"name"`
	CurrentHP   int                   `json:"current_hp"`
	MaxHP       int                   `json:"max_hp"`
	CurrentMP   int                   `json:"current_mp"`
	MaxMP       int                   `json:"max_mp"`
	Attack      int                   `json:"attack"`
	Defense     int                   `json:"defense"`
	Speed       int                   `json:"speed"`
	Abilities   []Ability             `json:"abilities,omitempty"`
	Resistances []string              `json:"resistances,omitempty"`
	Weaknesses  []string              `json:"weaknesses,omitempty"`
	Loot        shared.Resources      `json:"loot,omitempty"`
	Experience  int                   `json:"experience"`
	IsBoss      bool                  `json:"is_boss,omitempty"`
	Phases      []BossPhase           `json:"phases,omitempty"`
	Statuses    []shared.StatusEffect `json:"statuses,omitempty"`
}

// BossPhase swaps the available abilities when the boss's remaining HP
// fraction falls to or below Threshold
type BossPhase struct {
	Threshold float64   `json:"threshold"` // remaining-HP fraction in (0, 1]
	Abilities []Ability `json:"abilities"`
}

// GetID implements Combatant
func (e *Enemy) GetID() string { return e.ID }

// GetName implements Combatant
func (e *Enemy) GetName() string { return e.Name }

// IsAlive implements Combatant
func (e *Enemy) IsAlive() bool { return e.CurrentHP > 0 }

// GetHP implements Combatant
func (e *Enemy) GetHP() int { return e.CurrentHP }

// GetMaxHP implements Combatant
func (e *Enemy) GetMaxHP() int { return e.MaxHP }

// GetMP implements Combatant
func (e *Enemy) GetMP() int { return e.CurrentMP }

// GetMaxMP implements Combatant
func (e *Enemy) GetMaxMP() int { return e.MaxMP }

// GetAttack implements Combatant
func (e *Enemy) GetAttack() int { return e.Attack }

// GetDefense implements Combatant
func (e *Enemy) GetDefense() int { return e.Defense }

// GetSpellPower implements Combatant. Enemies scale abilities off attack.
func (e *Enemy) GetSpellPower() int { return e.Attack }

// TakeDamage implements Combatant
func (e *Enemy) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > e.CurrentHP {
		amount = e.CurrentHP
	}
	e.CurrentHP -= amount
	return amount
}

// Heal implements Combatant
func (e *Enemy) Heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if e.CurrentHP+amount > e.MaxHP {
		amount = e.MaxHP - e.CurrentHP
	}
	e.CurrentHP += amount
	return amount
}

// SpendMP implements Combatant
func (e *Enemy) SpendMP(amount int) bool {
	if amount > e.CurrentMP {
		return false
	}
	e.CurrentMP -= amount
	return true
}

// RestoreMP implements Combatant
func (e *Enemy) RestoreMP(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if e.CurrentMP+amount > e.MaxMP {
		amount = e.MaxMP - e.CurrentMP
	}
	e.CurrentMP += amount
	return amount
}

// GetAbilities implements Combatant. For bosses the active phase decides
// the available list; the base list applies while no phase matches.
func (e *Enemy) GetAbilities() []Ability {
	if !e.IsBoss || len(e.Phases) == 0 {
		return e.Abilities
	}

	hpFraction := 0.0
	if e.MaxHP > 0 {
		hpFraction = float64(e.CurrentHP) / float64(e.MaxHP)
	}

	// Tightest phase wins: the lowest threshold still at or above the
	// current HP fraction.
	phases := make([]BossPhase, len(e.Phases))
	copy(phases, e.Phases)
	sort.Slice(phases, func(i, j int) bool { return phases[i].Threshold < phases[j].Threshold })

	for _, phase := range phases {
		if hpFraction <= phase.Threshold {
			return phase.Abilities
		}
	}
	return e.Abilities
}

// GetStatusEffects implements Combatant
func (e *Enemy) GetStatusEffects() []shared.StatusEffect { return e.Statuses }

// AddStatusEffect implements Combatant, refreshing an existing effect of
// the same type instead of stacking it
func (e *Enemy) AddStatusEffect(effect shared.StatusEffect) {
	for i := range e.Statuses {
		if e.Statuses[i].Type == effect.Type {
			e.Statuses[i] = effect
			return
		}
	}
	e.Statuses = append(e.Statuses, effect)
}

// RemoveStatusEffect implements Combatant
func (e *Enemy) RemoveStatusEffect(effectType shared.StatusEffectType) {
	kept := e.Statuses[:0]
	for _, effect := range e.Statuses {
		if effect.Type != effectType {
			kept = append(kept, effect)
		}
	}
	e.Statuses = kept
}
