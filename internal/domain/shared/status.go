package shared

// StatusEffectType identifies a status effect
type StatusEffectType string

const (
	StatusNone      StatusEffectType = ""
	StatusPoison    StatusEffectType = "poison"
	StatusBurn      StatusEffectType = "burn"
	StatusFear      StatusEffectType = "fear"
	StatusConfusion StatusEffectType = "confusion"
	StatusStun      StatusEffectType = "stun"
	StatusRegen     StatusEffectType = "regen"
)

// StatusEffect is an active effect on a combatant
type StatusEffect struct {
	Type           StatusEffectType `json:"type"`
	RemainingTurns int              `json:"remaining_turns"`
	Power          int              `json:"power"` // damage or healing per turn for ticking effects
}

// IsClearable reports whether a rest can remove this effect
func (t StatusEffectType) IsClearable() bool {
	switch t {
	case StatusPoison, StatusBurn, StatusFear, StatusConfusion:
		return true
	default:
		return false
	}
}

// IsIncapacitating reports whether the effect prevents acting entirely.
// A combatant under an incapacitating effect is not conscious for
// turn-taking purposes even while above zero HP.
func (t StatusEffectType) IsIncapacitating() bool {
	return t == StatusStun
}

// TicksDamage reports whether the effect deals damage at the start of
// its owner's turn
func (t StatusEffectType) TicksDamage() bool {
	return t == StatusPoison || t == StatusBurn
}
