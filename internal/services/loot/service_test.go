package loot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockdice "github.com/delveteam/delve/internal/dice/mock"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	engerr "github.com/delveteam/delve/internal/errors"
	"github.com/delveteam/delve/internal/services/loot"
)

func TestRollCombatReward(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	svc := loot.NewService(&loot.ServiceConfig{Roller: roller})

	// gold 10, materials 2, for 3 enemies at depth 2 in a cave:
	// scale = (1 + 0.4) * 1.0
	roller.SetRolls([]int{10, 2})

	reward, err := svc.RollCombatReward(3, 2, exploration.KindCave)
	require.NoError(t, err)

	assert.Equal(t, 42, reward["gold"])
	assert.Equal(t, 8, reward["materials"])
}

func TestRollCombatReward_KindMultiplier(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	svc := loot.NewService(&loot.ServiceConfig{Roller: roller})

	// Same rolls in the demon lord's dungeon pay out double
	roller.SetRolls([]int{10, 0})

	reward, err := svc.RollCombatReward(1, 0, exploration.KindDemonLord)
	require.NoError(t, err)

	assert.Equal(t, 20, reward["gold"])
	assert.NotContains(t, reward, "materials")
}

func TestRollCombatReward_InvalidCount(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	svc := loot.NewService(&loot.ServiceConfig{Roller: roller})

	_, err := svc.RollCombatReward(0, 1, exploration.KindCave)
	assert.True(t, engerr.IsInvalidArgument(err))
}

func TestRollDisarmReward(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	svc := loot.NewService(&loot.ServiceConfig{Roller: roller})

	// bonus 3 at depth 2: (10 + 10 + 3) * 1.5 in the keep
	roller.SetRolls([]int{3})

	reward, err := svc.RollDisarmReward(2, exploration.KindKeep)
	require.NoError(t, err)

	assert.Equal(t, 34, reward["gold"])
}

func TestNewService_RequiresRoller(t *testing.T) {
	assert.Panics(t, func() { loot.NewService(nil) })
	assert.Panics(t, func() { loot.NewService(&loot.ServiceConfig{}) })
}
