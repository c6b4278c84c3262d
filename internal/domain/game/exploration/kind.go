package exploration

// Kind is a named dungeon difficulty/theme tier. It selects the room
// template set, the loot multiplier, and the room-count bonus.
type Kind string

const (
	KindTraining  Kind = "training_grounds"
	KindCave      Kind = "goblin_cave"
	KindRuin      Kind = "forest_ruin"
	KindKeep      Kind = "haunted_keep"
	KindDemonLord Kind = "demon_lords_dungeon"
)

// AllKinds lists every dungeon kind from easiest to hardest
var AllKinds = []Kind{KindTraining, KindCave, KindRuin, KindKeep, KindDemonLord}

// Valid reports whether k names a known dungeon kind
func (k Kind) Valid() bool {
	switch k {
	case KindTraining, KindCave, KindRuin, KindKeep, KindDemonLord:
		return true
	default:
		return false
	}
}

// LootMultiplier scales every loot roll made inside a dungeon of this kind
func (k Kind) LootMultiplier() float64 {
	switch k {
	case KindTraining:
		return 0.8
	case KindCave:
		return 1.0
	case KindRuin:
		return 1.2
	case KindKeep:
		return 1.5
	case KindDemonLord:
		return 2.0
	default:
		return 1.0
	}
}

// RoomCountBonus shifts the generated room count, -1 for the easiest tier
// up to +4 for the hardest
func (k Kind) RoomCountBonus() int {
	switch k {
	case KindTraining:
		return -1
	case KindCave:
		return 0
	case KindRuin:
		return 1
	case KindKeep:
		return 2
	case KindDemonLord:
		return 4
	default:
		return 0
	}
}
