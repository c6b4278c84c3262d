package generator

import (
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
)

// Template is the immutable per-kind recipe the generator works from
type Template struct {
	// Weights drives room-type selection for non-boss rooms
	Weights map[exploration.RoomType]int

	// Combat
	EnemyPool  []string
	BossPool   []string
	MinEnemies int // 0 means depth-scaled default
	MaxEnemies int

	// Treasure
	TreasureRanges map[string][2]int
	SpecialItems   []string

	// Trap
	TrapDamage [2]int
	TrapNames  []string

	// Puzzle
	PuzzleReward      shared.Resources
	PuzzleSkill       string
	PuzzleSkillChance int // percent

	// Event
	EventPool []exploration.EventKind

	// Rest
	RestHealFraction float64
}

// EnemyBase is a base enemy type before depth scaling
type EnemyBase struct {
	Name       string
	HP         int
	MP         int
	Attack     int
	Defense    int
	Speed      int
	Abilities  []combat.Ability
	Loot       shared.Resources
	Experience int
}

// fallbackEnemy is substituted for unknown enemy keys so generation never
// aborts mid-dungeon
var fallbackEnemy = EnemyBase{
	Name:       "Strange Creature",
	HP:         50,
	Attack:     15,
	Defense:    5,
	Speed:      8,
	Loot:       shared.Resources{"gold": 5},
	Experience: 10,
}

// enemyRegistry maps enemy keys to their base stats
var enemyRegistry = map[string]EnemyBase{
	"training_dummy": {
		Name: "Training Dummy", HP: 30, Attack: 6, Defense: 2, Speed: 4,
		Loot: shared.Resources{"gold": 2}, Experience: 5,
	},
	"slime": {
		Name: "Slime", HP: 35, Attack: 8, Defense: 3, Speed: 5,
		Loot: shared.Resources{"gold": 4, "materials": 1}, Experience: 8,
	},
	"goblin": {
		Name: "Goblin", HP: 45, MP: 10, Attack: 12, Defense: 4, Speed: 10,
		Abilities: []combat.Ability{
			{Key: "crude_stab", Name: "Crude Stab", MPCost: 4, BaseDamage: 8, Multiplier: 0.5},
		},
		Loot: shared.Resources{"gold": 8, "materials": 1}, Experience: 12,
	},
	"goblin_shaman": {
		Name: "Goblin Shaman", HP: 40, MP: 30, Attack: 10, Defense: 3, Speed: 8,
		Abilities: []combat.Ability{
			{Key: "ember_bolt", Name: "Ember Bolt", MPCost: 6, BaseDamage: 10, Multiplier: 0.8,
				Status: shared.StatusBurn, StatusTurns: 2, StatusPower: 3},
		},
		Loot: shared.Resources{"gold": 12, "materials": 2}, Experience: 18,
	},
	"wolf": {
		Name: "Dire Wolf", HP: 55, Attack: 14, Defense: 5, Speed: 14,
		Loot: shared.Resources{"materials": 3}, Experience: 15,
	},
	"skeleton": {
		Name: "Skeleton", HP: 50, Attack: 13, Defense: 8, Speed: 7,
		Loot: shared.Resources{"gold": 10}, Experience: 14,
	},
	"wraith": {
		Name: "Wraith", HP: 60, MP: 25, Attack: 16, Defense: 6, Speed: 11,
		Abilities: []combat.Ability{
			{Key: "chill_touch", Name: "Chill Touch", MPCost: 5, BaseDamage: 12, Multiplier: 0.7,
				Status: shared.StatusFear, StatusTurns: 2},
		},
		Loot: shared.Resources{"gold": 15, "materials": 2}, Experience: 22,
	},
	"ogre": {
		Name: "Ogre", HP: 90, Attack: 20, Defense: 9, Speed: 6,
		Loot: shared.Resources{"gold": 20, "materials": 4}, Experience: 30,
	},
	"demon_knight": {
		Name: "Demon Knight", HP: 110, MP: 40, Attack: 24, Defense: 12, Speed: 10,
		Abilities: []combat.Ability{
			{Key: "hellfire_slash", Name: "Hellfire Slash", MPCost: 10, BaseDamage: 18, Multiplier: 0.9,
				Status: shared.StatusBurn, StatusTurns: 3, StatusPower: 4},
		},
		Loot: shared.Resources{"gold": 35, "materials": 6}, Experience: 45,
	},
}

// bossAbilities are the two extra slots granted to boss variants
var bossAbilities = []combat.Ability{
	{Key: "crushing_blow", Name: "Crushing Blow", MPCost: 8, BaseDamage: 20, Multiplier: 1.0},
	{Key: "terrifying_roar", Name: "Terrifying Roar", MPCost: 12, BaseDamage: 10, Multiplier: 0.5,
		Status: shared.StatusFear, StatusTurns: 2},
}

// templates holds the per-kind generation recipe
var templates = map[exploration.Kind]*Template{
	exploration.KindTraining: {
		Weights: map[exploration.RoomType]int{
			exploration.RoomTypeCombat:   35,
			exploration.RoomTypeTreasure: 20,
			exploration.RoomTypeRest:     20,
			exploration.RoomTypeEvent:    10,
			exploration.RoomTypeEmpty:    15,
		},
		EnemyPool:  []string{"training_dummy", "slime"},
		BossPool:   []string{"goblin"},
		MaxEnemies: 2,
		TreasureRanges: map[string][2]int{
			"gold":      {5, 15},
			"materials": {1, 3},
		},
		TrapDamage:        [2]int{5, 10},
		TrapNames:         []string{"Practice Pitfall"},
		PuzzleReward:      shared.Resources{"gold": 10},
		PuzzleSkillChance: 5,
		EventPool:         []exploration.EventKind{exploration.EventManaSpring, exploration.EventStatBoost},
		RestHealFraction:  0.5,
	},
	exploration.KindCave: {
		Weights: map[exploration.RoomType]int{
			exploration.RoomTypeCombat:   40,
			exploration.RoomTypeTreasure: 15,
			exploration.RoomTypeTrap:     15,
			exploration.RoomTypePuzzle:   10,
			exploration.RoomTypeRest:     10,
			exploration.RoomTypeEvent:    10,
		},
		EnemyPool:  []string{"goblin", "goblin_shaman", "wolf"},
		BossPool:   []string{"goblin_shaman", "ogre"},
		MaxEnemies: 3,
		TreasureRanges: map[string][2]int{
			"gold":      {10, 30},
			"materials": {2, 5},
		},
		SpecialItems:      []string{"glowing_mushroom", "ancient_coin"},
		TrapDamage:        [2]int{8, 16},
		TrapNames:         []string{"Spike Pit", "Rockfall"},
		PuzzleReward:      shared.Resources{"gold": 25, "materials": 3},
		PuzzleSkill:       "stone_sense",
		PuzzleSkillChance: 10,
		EventPool: []exploration.EventKind{
			exploration.EventManaSpring, exploration.EventHPDrain, exploration.EventStatBoost,
		},
		RestHealFraction: 0.3,
	},
	exploration.KindRuin: {
		Weights: map[exploration.RoomType]int{
			exploration.RoomTypeCombat:   35,
			exploration.RoomTypeTreasure: 15,
			exploration.RoomTypeTrap:     15,
			exploration.RoomTypePuzzle:   15,
			exploration.RoomTypeRest:     10,
			exploration.RoomTypeEvent:    10,
		},
		EnemyPool:  []string{"wolf", "skeleton", "goblin_shaman"},
		BossPool:   []string{"ogre", "wraith"},
		MaxEnemies: 3,
		TreasureRanges: map[string][2]int{
			"gold":      {15, 40},
			"materials": {3, 8},
		},
		SpecialItems:      []string{"runed_tablet", "silver_idol"},
		TrapDamage:        [2]int{10, 20},
		TrapNames:         []string{"Dart Wall", "Collapsing Floor"},
		PuzzleReward:      shared.Resources{"gold": 35, "materials": 4},
		PuzzleSkill:       "rune_reading",
		PuzzleSkillChance: 15,
		EventPool: []exploration.EventKind{
			exploration.EventManaSpring, exploration.EventStatDrain,
			exploration.EventHPDrain, exploration.EventStatBoost,
		},
		RestHealFraction: 0.3,
	},
	exploration.KindKeep: {
		Weights: map[exploration.RoomType]int{
			exploration.RoomTypeCombat:   40,
			exploration.RoomTypeTreasure: 15,
			exploration.RoomTypeTrap:     15,
			exploration.RoomTypePuzzle:   10,
			exploration.RoomTypeRest:     10,
			exploration.RoomTypeEvent:    10,
		},
		EnemyPool:  []string{"skeleton", "wraith", "ogre"},
		BossPool:   []string{"wraith", "demon_knight"},
		MaxEnemies: 4,
		TreasureRanges: map[string][2]int{
			"gold":      {25, 60},
			"materials": {4, 10},
		},
		SpecialItems:      []string{"spectral_lantern", "cursed_signet"},
		TrapDamage:        [2]int{14, 26},
		TrapNames:         []string{"Soul Snare", "Phantom Blades"},
		PuzzleReward:      shared.Resources{"gold": 50, "materials": 6},
		PuzzleSkill:       "ghost_ward",
		PuzzleSkillChance: 15,
		EventPool: []exploration.EventKind{
			exploration.EventStatDrain, exploration.EventHPDrain, exploration.EventStatBoost,
		},
		RestHealFraction: 0.25,
	},
	exploration.KindDemonLord: {
		Weights: map[exploration.RoomType]int{
			exploration.RoomTypeCombat:   45,
			exploration.RoomTypeTreasure: 15,
			exploration.RoomTypeTrap:     15,
			exploration.RoomTypePuzzle:   10,
			exploration.RoomTypeRest:     5,
			exploration.RoomTypeEvent:    10,
		},
		EnemyPool:  []string{"wraith", "ogre", "demon_knight"},
		BossPool:   []string{"demon_knight"},
		MaxEnemies: 4,
		TreasureRanges: map[string][2]int{
			"gold":      {40, 100},
			"materials": {6, 15},
		},
		SpecialItems:      []string{"demon_core", "abyssal_shard"},
		TrapDamage:        [2]int{18, 34},
		TrapNames:         []string{"Hellfire Glyph", "Abyssal Maw"},
		PuzzleReward:      shared.Resources{"gold": 80, "materials": 10},
		PuzzleSkill:       "demonbane",
		PuzzleSkillChance: 20,
		EventPool: []exploration.EventKind{
			exploration.EventStatDrain, exploration.EventHPDrain, exploration.EventStatBoost,
		},
		RestHealFraction: 0.2,
	},
}

// TemplateFor returns the generation template for a dungeon kind
func TemplateFor(kind exploration.Kind) *Template {
	if tmpl, ok := templates[kind]; ok {
		return tmpl
	}
	return templates[exploration.KindCave]
}

// BaseEnemy resolves an enemy key, reporting whether it was known
func BaseEnemy(key string) (EnemyBase, bool) {
	base, ok := enemyRegistry[key]
	if !ok {
		return fallbackEnemy, false
	}
	return base, true
}
