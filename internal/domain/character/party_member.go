package character

import (
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/shared"
)

// PartyMember is the reference Character implementation used by tests and
// the autoplay CLI. Production callers supply their own implementation.
type PartyMember struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Archetype Archetype             `json:"archetype"`
	CurrentHP int                   `json:"current_hp"`
	MaxHP     int                   `json:"max_hp"`
	CurrentMP int                   `json:"current_mp"`
	MaxMP     int                   `json:"max_mp"`
	Stats     map[shared.Stat]int   `json:"stats"`
	Skills    []*Skill              `json:"skills,omitempty"`
	Statuses  []shared.StatusEffect `json:"statuses,omitempty"`
}

// NewPartyMember creates a member with sane stat defaults filled in
func NewPartyMember(id, name string, archetype Archetype, maxHP, maxMP int) *PartyMember {
	return &PartyMember{
		ID:        id,
		Name:      name,
		Archetype: archetype,
		CurrentHP: maxHP,
		MaxHP:     maxHP,
		CurrentMP: maxMP,
		MaxMP:     maxMP,
		Stats: map[shared.Stat]int{
			shared.StatMight:     10,
			shared.StatAgility:   10,
			shared.StatMind:      10,
			shared.StatSpirit:    10,
			shared.StatEndurance: 10,
		},
	}
}

// GetID implements combat.Combatant
func (m *PartyMember) GetID() string { return m.ID }

// GetName implements combat.Combatant
func (m *PartyMember) GetName() string { return m.Name }

// IsAlive implements combat.Combatant
func (m *PartyMember) IsAlive() bool { return m.CurrentHP > 0 }

// GetHP implements combat.Combatant
func (m *PartyMember) GetHP() int { return m.CurrentHP }

// GetMaxHP implements combat.Combatant
func (m *PartyMember) GetMaxHP() int { return m.MaxHP }

// GetMP implements combat.Combatant
func (m *PartyMember) GetMP() int { return m.CurrentMP }

// GetMaxMP implements combat.Combatant
func (m *PartyMember) GetMaxMP() int { return m.MaxMP }

// GetAttack implements combat.Combatant. Physical power scales off might.
func (m *PartyMember) GetAttack() int { return m.GetStat(shared.StatMight) }

// GetDefense implements combat.Combatant
func (m *PartyMember) GetDefense() int { return m.GetStat(shared.StatEndurance) / 2 }

// GetSpellPower implements combat.Combatant. Skills scale off mind.
func (m *PartyMember) GetSpellPower() int { return m.GetStat(shared.StatMind) }

// TakeDamage implements combat.Combatant
func (m *PartyMember) TakeDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if amount > m.CurrentHP {
		amount = m.CurrentHP
	}
	m.CurrentHP -= amount
	return amount
}

// Heal implements combat.Combatant
func (m *PartyMember) Heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if m.CurrentHP+amount > m.MaxHP {
		amount = m.MaxHP - m.CurrentHP
	}
	m.CurrentHP += amount
	return amount
}

// SpendMP implements combat.Combatant
func (m *PartyMember) SpendMP(amount int) bool {
	if amount > m.CurrentMP {
		return false
	}
	m.CurrentMP -= amount
	return true
}

// RestoreMP implements combat.Combatant
func (m *PartyMember) RestoreMP(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if m.CurrentMP+amount > m.MaxMP {
		amount = m.MaxMP - m.CurrentMP
	}
	m.CurrentMP += amount
	return amount
}

// GetAbilities implements combat.Combatant, exposing ready skills
func (m *PartyMember) GetAbilities() []combat.Ability {
	var abilities []combat.Ability
	for _, skill := range m.Skills {
		if skill.Ready() {
			abilities = append(abilities, skill.AsAbility())
		}
	}
	return abilities
}

// GetStatusEffects implements combat.Combatant
func (m *PartyMember) GetStatusEffects() []shared.StatusEffect { return m.Statuses }

// AddStatusEffect implements combat.Combatant, refreshing rather than
// stacking duplicates
func (m *PartyMember) AddStatusEffect(effect shared.StatusEffect) {
	for i := range m.Statuses {
		if m.Statuses[i].Type == effect.Type {
			m.Statuses[i] = effect
			return
		}
	}
	m.Statuses = append(m.Statuses, effect)
}

// RemoveStatusEffect implements combat.Combatant
func (m *PartyMember) RemoveStatusEffect(effectType shared.StatusEffectType) {
	kept := m.Statuses[:0]
	for _, effect := range m.Statuses {
		if effect.Type != effectType {
			kept = append(kept, effect)
		}
	}
	m.Statuses = kept
}

// GetArchetype implements Character
func (m *PartyMember) GetArchetype() Archetype { return m.Archetype }

// GetStat implements Character
func (m *PartyMember) GetStat(stat shared.Stat) int { return m.Stats[stat] }

// AdjustStat implements Character. Stats never drop below 1.
func (m *PartyMember) AdjustStat(stat shared.Stat, delta int) {
	value := m.Stats[stat] + delta
	if value < 1 {
		value = 1
	}
	m.Stats[stat] = value
}

// GetSkills implements Character
func (m *PartyMember) GetSkills() []*Skill { return m.Skills }

// ReduceCooldowns implements Character
func (m *PartyMember) ReduceCooldowns(by int) {
	for _, skill := range m.Skills {
		skill.CurrentCooldown -= by
		if skill.CurrentCooldown < 0 {
			skill.CurrentCooldown = 0
		}
	}
}

// LearnSkill implements Character
func (m *PartyMember) LearnSkill(skill *Skill) bool {
	for _, known := range m.Skills {
		if known.Key == skill.Key {
			return false
		}
	}
	m.Skills = append(m.Skills, skill)
	return true
}
