package combat

import (
	"github.com/delveteam/delve/internal/domain/shared"
)

// Combatant is the capability every combat participant exposes. Allies and
// enemies implement it uniformly, so the resolver never probes for shape.
type Combatant interface {
	GetID() string
	GetName() string
	IsAlive() bool

	GetHP() int
	GetMaxHP() int
	GetMP() int
	GetMaxMP() int
	GetAttack() int
	GetDefense() int

	// GetSpellPower is the stat modifier applied to ability damage/healing
	GetSpellPower() int

	TakeDamage(amount int) int // returns actual damage taken
	Heal(amount int) int       // returns actual amount healed, clamped to max HP
	SpendMP(amount int) bool   // returns false if insufficient MP
	RestoreMP(amount int) int  // returns actual amount restored, clamped to max MP

	GetAbilities() []Ability

	GetStatusEffects() []shared.StatusEffect
	AddStatusEffect(effect shared.StatusEffect)
	RemoveStatusEffect(effectType shared.StatusEffectType)
}

// Ability is an active combat ability (character skill or enemy move)
type Ability struct {
	Key         string                  `json:"key"`
	Name        string                  `json:"name"`
	MPCost      int                     `json:"mp_cost"`
	BaseDamage  int                     `json:"base_damage"`
	BaseHealing int                     `json:"base_healing"`
	Multiplier  float64                 `json:"multiplier"` // applied to the user's spell power
	Status      shared.StatusEffectType `json:"status,omitempty"`
	StatusTurns int                     `json:"status_turns,omitempty"`
	StatusPower int                     `json:"status_power,omitempty"`
}

// IsHealing reports whether the ability restores HP instead of dealing damage
func (a Ability) IsHealing() bool {
	return a.BaseHealing > 0 && a.BaseDamage == 0
}

// Conscious reports whether a combatant can take a turn: alive and not
// under an incapacitating status effect
func Conscious(c Combatant) bool {
	if c == nil || !c.IsAlive() {
		return false
	}
	for _, effect := range c.GetStatusEffects() {
		if effect.Type.IsIncapacitating() {
			return false
		}
	}
	return true
}

// ConsciousCount counts the conscious members of a roster
func ConsciousCount[T Combatant](roster []T) int {
	count := 0
	for _, c := range roster {
		if Conscious(c) {
			count++
		}
	}
	return count
}
