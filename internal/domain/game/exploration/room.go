package exploration

import (
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/shared"
)

// RoomType represents the content category of a dungeon room
type RoomType string

const (
	RoomTypeEntrance RoomType = "entrance"
	RoomTypeCombat   RoomType = "combat"
	RoomTypeTreasure RoomType = "treasure"
	RoomTypeTrap     RoomType = "trap"
	RoomTypeRest     RoomType = "rest"
	RoomTypeBoss     RoomType = "boss"
	RoomTypePuzzle   RoomType = "puzzle"
	RoomTypeEvent    RoomType = "event"
	RoomTypeEmpty    RoomType = "empty"
)

// EventKind is the fixed taxonomy of event room effects
type EventKind string

const (
	EventManaSpring EventKind = "mana_spring"  // restore a fraction of max MP
	EventStatDrain  EventKind = "stat_drain"   // flat reduction to one stat
	EventHPDrain    EventKind = "hp_drain"     // lose a fraction of max HP
	EventStatBoost  EventKind = "stat_boost"   // flat boost to one random stat
)

// Payload is the type-specific content of a room, generated once at room
// creation and never regenerated. Exactly one field is set per room
// (none for entrance/empty rooms).
type Payload struct {
	Combat   *CombatPayload   `json:"combat,omitempty"`
	Treasure *TreasurePayload `json:"treasure,omitempty"`
	Trap     *TrapPayload     `json:"trap,omitempty"`
	Puzzle   *PuzzlePayload   `json:"puzzle,omitempty"`
	Rest     *RestPayload     `json:"rest,omitempty"`
	Event    *EventPayload    `json:"event,omitempty"`
}

// CombatPayload holds the enemy roster for combat and boss rooms
type CombatPayload struct {
	Enemies []*combat.Enemy `json:"enemies"`
}

// TreasurePayload holds pre-rolled loot for a treasure room
type TreasurePayload struct {
	Loot        shared.Resources `json:"loot"`
	SpecialItem string           `json:"special_item,omitempty"`
	Opened      bool             `json:"opened"`
}

// TrapPayload holds trap stats; a trap starts undetected, undisarmed,
// and untriggered
type TrapPayload struct {
	Name      string `json:"name"`
	Damage    int    `json:"damage"`
	DetectDC  int    `json:"detect_dc"`
	DisarmDC  int    `json:"disarm_dc"`
	Detected  bool   `json:"detected"`
	Disarmed  bool   `json:"disarmed"`
	Triggered bool   `json:"triggered"`
}

// PuzzlePayload holds puzzle stats and its reward
type PuzzlePayload struct {
	Name         string           `json:"name"`
	DC           int              `json:"dc"`
	Reward       shared.Resources `json:"reward"`
	SkillReward  string           `json:"skill_reward,omitempty"`
	SkillChance  int              `json:"skill_chance"` // percent chance to learn SkillReward
	AttemptsLeft int              `json:"attempts_left"`
	Solved       bool             `json:"solved"`
}

// RestPayload holds rest room parameters
type RestPayload struct {
	HealFraction float64 `json:"heal_fraction"`
	RestoresMP   bool    `json:"restores_mp"`
	ClearsStatus bool    `json:"clears_status"`
}

// EventPayload holds a single pre-chosen event effect
type EventPayload struct {
	Kind        EventKind   `json:"kind"`
	Description string      `json:"description"`
	Stat        shared.Stat `json:"stat,omitempty"` // for stat drain/boost
	Amount      int         `json:"amount"`         // flat stat delta
	Fraction    float64     `json:"fraction"`       // HP/MP fraction for drain/restore
}

// Room is one node of the dungeon graph
type Room struct {
	ID          string   `json:"id"`
	Type        RoomType `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Depth       int      `json:"depth"`
	X           int      `json:"x"` // layout position, mapping only
	Y           int      `json:"y"`
	Neighbors   []string `json:"neighbors"`
	Discovered  bool     `json:"discovered"`
	Completed   bool     `json:"completed"`
	Payload     Payload  `json:"payload"`
}

// AddNeighbor records an undirected edge endpoint, deduplicating repeats
func (r *Room) AddNeighbor(id string) {
	if id == r.ID {
		return
	}
	for _, existing := range r.Neighbors {
		if existing == id {
			return
		}
	}
	r.Neighbors = append(r.Neighbors, id)
}

// HasNeighbor reports whether id is directly connected to this room
func (r *Room) HasNeighbor(id string) bool {
	for _, existing := range r.Neighbors {
		if existing == id {
			return true
		}
	}
	return false
}
