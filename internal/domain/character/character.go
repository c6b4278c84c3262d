// Package character defines the surface the engine consumes from the
// external character system. The engine mutates borrowed characters
// directly (damage, healing, mana, status) and never persists them.
package character

import (
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/shared"
)

// Archetype is the broad class of a character, used for action gating
// (only rogues may disarm traps)
type Archetype string

const (
	ArchetypeWarrior Archetype = "warrior"
	ArchetypeRogue   Archetype = "rogue"
	ArchetypeMage    Archetype = "mage"
	ArchetypeCleric  Archetype = "cleric"
)

// Character is the capability the engine requires from the character
// collaborator. It extends the combat capability with stats, archetype,
// and skill bookkeeping used outside of encounters.
type Character interface {
	combat.Combatant

	GetArchetype() Archetype
	GetStat(stat shared.Stat) int
	AdjustStat(stat shared.Stat, delta int)
	GetSkills() []*Skill
	ReduceCooldowns(by int)
	LearnSkill(skill *Skill) bool // returns false if already known
}

// Skill is a learnable character ability with a cooldown tracked in rooms
type Skill struct {
	Key             string                  `json:"key"`
	Name            string                  `json:"name"`
	MPCost          int                     `json:"mp_cost"`
	BaseDamage      int                     `json:"base_damage"`
	BaseHealing     int                     `json:"base_healing"`
	Stat            shared.Stat             `json:"stat"`
	Multiplier      float64                 `json:"multiplier"`
	Cooldown        int                     `json:"cooldown"`
	CurrentCooldown int                     `json:"current_cooldown"`
	Status          shared.StatusEffectType `json:"status,omitempty"`
	StatusTurns     int                     `json:"status_turns,omitempty"`
	StatusPower     int                     `json:"status_power,omitempty"`
}

// Ready reports whether the skill is off cooldown
func (s *Skill) Ready() bool {
	return s.CurrentCooldown == 0
}

// AsAbility converts the skill to its combat representation
func (s *Skill) AsAbility() combat.Ability {
	return combat.Ability{
		Key:         s.Key,
		Name:        s.Name,
		MPCost:      s.MPCost,
		BaseDamage:  s.BaseDamage,
		BaseHealing: s.BaseHealing,
		Multiplier:  s.Multiplier,
		Status:      s.Status,
		StatusTurns: s.StatusTurns,
		StatusPower: s.StatusPower,
	}
}
