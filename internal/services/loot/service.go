package loot

//go:generate mockgen -destination=mock/mock_service.go -package=mockloot -source=service.go

import (
	"github.com/delveteam/delve/internal/dice"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
)

// Service rolls loot rewards. All rolls scale with depth and the dungeon
// kind's loot multiplier.
type Service interface {
	// RollCombatReward rolls the post-combat gold and materials for a
	// cleared combat room
	RollCombatReward(enemyCount, depth int, kind exploration.Kind) (shared.Resources, error)

	// RollDisarmReward rolls the small flat gold reward for disarming a trap
	RollDisarmReward(depth int, kind exploration.Kind) (shared.Resources, error)
}

type service struct {
	roller dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller dice.Roller // Required
}

// NewService creates a new loot service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Roller == nil {
		panic("roller is required")
	}
	return &service{roller: cfg.Roller}
}

// RollCombatReward implements Service
func (s *service) RollCombatReward(enemyCount, depth int, kind exploration.Kind) (shared.Resources, error) {
	if enemyCount < 1 {
		return nil, engerr.InvalidArgumentf("enemy count must be positive, got %d", enemyCount)
	}

	scale := (1.0 + 0.2*float64(depth)) * kind.LootMultiplier()

	gold, err := s.roller.Between(5, 12)
	if err != nil {
		return nil, err
	}
	materials, err := s.roller.Between(0, 2)
	if err != nil {
		return nil, err
	}

	reward := shared.Resources{
		"gold": int(float64(gold*enemyCount) * scale),
	}
	if reward["gold"] < 1 {
		reward["gold"] = 1
	}
	if materials > 0 {
		reward["materials"] = int(float64(materials*enemyCount) * scale)
		if reward["materials"] < 1 {
			reward["materials"] = 1
		}
	}
	return reward, nil
}

// RollDisarmReward implements Service
func (s *service) RollDisarmReward(depth int, kind exploration.Kind) (shared.Resources, error) {
	bonus, err := s.roller.Between(0, 5)
	if err != nil {
		return nil, err
	}

	gold := int(float64(10+5*depth+bonus) * kind.LootMultiplier())
	if gold < 1 {
		gold = 1
	}
	return shared.Resources{"gold": gold}, nil
}
