package generator

//go:generate mockgen -destination=mock/mock_service.go -package=mockgenerator -source=service.go

import (
	"log"
	"sort"

	"github.com/delveteam/delve/internal/dice"
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
	"github.com/delveteam/delve/internal/uuid"
)

// Service generates the type-specific payload of a room. Pure given its
// inputs except for the injected roller.
type Service interface {
	// Generate produces a payload for a room of the given type at the
	// given depth, using the kind's template
	Generate(roomType exploration.RoomType, tmpl *Template, depth int, kind exploration.Kind) (*exploration.Payload, error)
}

type service struct {
	roller  dice.Roller
	uuidGen uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller        dice.Roller    // Required
	UUIDGenerator uuid.Generator // Optional
}

// NewService creates a new room content generator
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{roller: cfg.Roller}
	if cfg.UUIDGenerator != nil {
		svc.uuidGen = cfg.UUIDGenerator
	} else {
		svc.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	return svc
}

// Generate implements Service
func (s *service) Generate(roomType exploration.RoomType, tmpl *Template, depth int, kind exploration.Kind) (*exploration.Payload, error) {
	if tmpl == nil {
		return nil, engerr.InvalidArgument("template is required")
	}
	if depth < 0 {
		return nil, engerr.InvalidArgumentf("depth cannot be negative, got %d", depth)
	}

	switch roomType {
	case exploration.RoomTypeCombat:
		return s.generateCombat(tmpl, depth)
	case exploration.RoomTypeBoss:
		return s.generateBoss(tmpl, depth)
	case exploration.RoomTypeTreasure:
		return s.generateTreasure(tmpl, depth, kind)
	case exploration.RoomTypeTrap:
		return s.generateTrap(tmpl, depth)
	case exploration.RoomTypePuzzle:
		return s.generatePuzzle(tmpl, depth)
	case exploration.RoomTypeRest:
		return s.generateRest(tmpl)
	case exploration.RoomTypeEvent:
		return s.generateEvent(tmpl, depth)
	case exploration.RoomTypeEntrance, exploration.RoomTypeEmpty:
		return &exploration.Payload{}, nil
	default:
		return nil, engerr.InvalidArgumentf("unknown room type %q", roomType)
	}
}

// enemyCount picks the roster size for a combat room. The template caps
// win when set; otherwise the size scales with depth, capped at 4.
func (s *service) enemyCount(tmpl *Template, depth int) (int, error) {
	min := tmpl.MinEnemies
	if min < 1 {
		min = 1
	}
	max := tmpl.MaxEnemies
	if max < 1 {
		max = depth/2 + 1
	}
	if max > 4 {
		max = 4
	}
	if max < min {
		max = min
	}
	return s.roller.Between(min, max)
}

// buildEnemy instantiates one enemy from its base type, scaled by depth
// and a per-instance variance roll on HP and attack
func (s *service) buildEnemy(key string, depth int) (*combat.Enemy, error) {
	base, known := BaseEnemy(key)
	if !known {
		log.Printf("Warning: unknown enemy key %q, using fallback creature", key)
	}

	depthScale := 1.0 + 0.15*float64(depth)

	// ±20% per-instance variance
	hpVar, err := s.roller.Between(80, 120)
	if err != nil {
		return nil, err
	}
	atkVar, err := s.roller.Between(80, 120)
	if err != nil {
		return nil, err
	}

	hp := int(float64(base.HP) * depthScale * float64(hpVar) / 100.0)
	if hp < 1 {
		hp = 1
	}
	attack := int(float64(base.Attack) * depthScale * float64(atkVar) / 100.0)
	if attack < 1 {
		attack = 1
	}

	abilities := make([]combat.Ability, len(base.Abilities))
	copy(abilities, base.Abilities)

	return &combat.Enemy{
		ID:         s.uuidGen.New(),
		Key:        key,
		Name:       base.Name,
		CurrentHP:  hp,
		MaxHP:      hp,
		CurrentMP:  base.MP,
		MaxMP:      base.MP,
		Attack:     attack,
		Defense:    base.Defense,
		Speed:      base.Speed,
		Abilities:  abilities,
		Loot:       base.Loot.Clone(),
		Experience: base.Experience,
	}, nil
}

func (s *service) generateCombat(tmpl *Template, depth int) (*exploration.Payload, error) {
	count, err := s.enemyCount(tmpl, depth)
	if err != nil {
		return nil, err
	}

	pool := tmpl.EnemyPool
	if len(pool) == 0 {
		pool = []string{"goblin"}
	}

	enemies := make([]*combat.Enemy, 0, count)
	for i := 0; i < count; i++ {
		pick, err := s.roller.Between(0, len(pool)-1)
		if err != nil {
			return nil, err
		}
		enemy, err := s.buildEnemy(pool[pick], depth)
		if err != nil {
			return nil, err
		}
		enemies = append(enemies, enemy)
	}

	return &exploration.Payload{Combat: &exploration.CombatPayload{Enemies: enemies}}, nil
}

func (s *service) generateBoss(tmpl *Template, depth int) (*exploration.Payload, error) {
	pool := tmpl.BossPool
	if len(pool) == 0 {
		pool = tmpl.EnemyPool
	}
	if len(pool) == 0 {
		pool = []string{"ogre"}
	}

	pick, err := s.roller.Between(0, len(pool)-1)
	if err != nil {
		return nil, err
	}
	boss, err := s.buildEnemy(pool[pick], depth)
	if err != nil {
		return nil, err
	}

	boss.MaxHP = int(float64(boss.MaxHP) * 2.5)
	boss.CurrentHP = boss.MaxHP
	boss.Attack = int(float64(boss.Attack) * 1.5)
	boss.IsBoss = true
	boss.Name = boss.Name + " Lord"

	// Two boss-only ability slots; the second unlocks below half HP.
	baseAbilities := append([]combat.Ability{}, boss.Abilities...)
	boss.Abilities = append(baseAbilities, bossAbilities[0])
	boss.Phases = []combat.BossPhase{
		{Threshold: 1.0, Abilities: append([]combat.Ability{}, boss.Abilities...)},
		{Threshold: 0.5, Abilities: append(append([]combat.Ability{}, boss.Abilities...), bossAbilities[1])},
	}

	// Bosses need mana for their ability slots
	if boss.MaxMP < 40 {
		boss.MaxMP = 40
		boss.CurrentMP = 40
	}

	return &exploration.Payload{Combat: &exploration.CombatPayload{Enemies: []*combat.Enemy{boss}}}, nil
}

func (s *service) generateTreasure(tmpl *Template, depth int, kind exploration.Kind) (*exploration.Payload, error) {
	scale := (1.0 + 0.2*float64(depth)) * kind.LootMultiplier()

	// keys are sorted so a seeded roller consumes rolls in a fixed order
	names := make([]string, 0, len(tmpl.TreasureRanges))
	for name := range tmpl.TreasureRanges {
		names = append(names, name)
	}
	sort.Strings(names)

	loot := make(shared.Resources, len(tmpl.TreasureRanges))
	for _, name := range names {
		bounds := tmpl.TreasureRanges[name]
		amount, err := s.roller.Between(bounds[0], bounds[1])
		if err != nil {
			return nil, err
		}
		scaled := int(float64(amount) * scale)
		if scaled < 1 {
			scaled = 1
		}
		loot[name] = scaled
	}

	payload := &exploration.TreasurePayload{Loot: loot}

	if len(tmpl.SpecialItems) > 0 {
		chance := 20 + 5*depth
		if chance > 100 {
			chance = 100
		}
		hasSpecial, err := s.roller.Percent(chance)
		if err != nil {
			return nil, err
		}
		if hasSpecial {
			pick, err := s.roller.Between(0, len(tmpl.SpecialItems)-1)
			if err != nil {
				return nil, err
			}
			payload.SpecialItem = tmpl.SpecialItems[pick]
		}
	}

	return &exploration.Payload{Treasure: payload}, nil
}

func (s *service) generateTrap(tmpl *Template, depth int) (*exploration.Payload, error) {
	low, high := tmpl.TrapDamage[0], tmpl.TrapDamage[1]
	if low < 1 {
		low = 1
	}
	if high < low {
		high = low
	}
	damage, err := s.roller.Between(low, high)
	if err != nil {
		return nil, err
	}

	name := "Hidden Trap"
	if len(tmpl.TrapNames) > 0 {
		pick, err := s.roller.Between(0, len(tmpl.TrapNames)-1)
		if err != nil {
			return nil, err
		}
		name = tmpl.TrapNames[pick]
	}

	return &exploration.Payload{Trap: &exploration.TrapPayload{
		Name:     name,
		Damage:   damage,
		DetectDC: 15 + 2*depth,
		DisarmDC: 20 + 3*depth,
	}}, nil
}

func (s *service) generatePuzzle(tmpl *Template, depth int) (*exploration.Payload, error) {
	reward := shared.Resources{}
	if tmpl.PuzzleReward != nil {
		reward = tmpl.PuzzleReward.Clone()
	}

	return &exploration.Payload{Puzzle: &exploration.PuzzlePayload{
		Name:         "Sealed Mechanism",
		DC:           15 + 3*depth,
		Reward:       reward,
		SkillReward:  tmpl.PuzzleSkill,
		SkillChance:  tmpl.PuzzleSkillChance,
		AttemptsLeft: 3,
	}}, nil
}

func (s *service) generateRest(tmpl *Template) (*exploration.Payload, error) {
	fraction := tmpl.RestHealFraction
	if fraction <= 0 {
		fraction = 0.3
	}

	return &exploration.Payload{Rest: &exploration.RestPayload{
		HealFraction: fraction,
		RestoresMP:   true,
		ClearsStatus: true,
	}}, nil
}

func (s *service) generateEvent(tmpl *Template, depth int) (*exploration.Payload, error) {
	pool := tmpl.EventPool
	if len(pool) == 0 {
		pool = []exploration.EventKind{exploration.EventStatBoost}
	}

	pick, err := s.roller.Between(0, len(pool)-1)
	if err != nil {
		return nil, err
	}

	payload := &exploration.EventPayload{Kind: pool[pick]}
	switch payload.Kind {
	case exploration.EventManaSpring:
		payload.Description = "A spring of shimmering water restores magical energy."
		payload.Fraction = 0.4
	case exploration.EventStatDrain:
		stat, err := s.randomStat()
		if err != nil {
			return nil, err
		}
		payload.Description = "A cursed altar saps the party's strength."
		payload.Stat = stat
		payload.Amount = -(1 + depth/3)
	case exploration.EventHPDrain:
		payload.Description = "Grasping shadows drain the party's vitality."
		payload.Fraction = 0.15
	case exploration.EventStatBoost:
		stat, err := s.randomStat()
		if err != nil {
			return nil, err
		}
		payload.Description = "An ancient shrine blesses the party."
		payload.Stat = stat
		payload.Amount = 1 + depth/4
	}

	return &exploration.Payload{Event: payload}, nil
}

func (s *service) randomStat() (shared.Stat, error) {
	pick, err := s.roller.Between(0, len(shared.AllStats)-1)
	if err != nil {
		return "", err
	}
	return shared.AllStats[pick], nil
}
