package dungeons_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
	"github.com/delveteam/delve/internal/repositories/dungeons"
)

func storedDungeon(id string) *exploration.Dungeon {
	return &exploration.Dungeon{
		ID:         id,
		Kind:       exploration.KindCave,
		Difficulty: 1,
		Rooms: map[string]*exploration.Room{
			"entrance": {
				ID:        "entrance",
				Type:      exploration.RoomTypeEntrance,
				Neighbors: []string{"boss"},
			},
			"boss": {
				ID:        "boss",
				Type:      exploration.RoomTypeBoss,
				Neighbors: []string{"entrance"},
			},
		},
		EntranceID:    "entrance",
		BossRoomID:    "boss",
		CurrentRoomID: "entrance",
		Visited:       map[string]bool{"entrance": true},
		TotalLoot:     shared.Resources{"gold": 5},
	}
}

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedDungeon("d-1")))

	got, err := repo.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "d-1", got.ID)
	assert.Equal(t, exploration.KindCave, got.Kind)
	assert.Len(t, got.Rooms, 2)
	assert.Equal(t, 5, got.TotalLoot["gold"])
}

func TestInMemoryRepository_CreateDuplicate(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedDungeon("d-1")))

	err := repo.Create(ctx, storedDungeon("d-1"))
	assert.True(t, engerr.Is(err, engerr.CodeAlreadyExists))
}

func TestInMemoryRepository_CreateValidation(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()
	ctx := context.Background()

	assert.True(t, engerr.IsInvalidArgument(repo.Create(ctx, nil)))
	assert.True(t, engerr.IsInvalidArgument(repo.Create(ctx, &exploration.Dungeon{})))
}

func TestInMemoryRepository_GetNotFound(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()

	_, err := repo.Get(context.Background(), "missing")
	assert.True(t, engerr.IsNotFound(err))
}

func TestInMemoryRepository_Update(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedDungeon("d-1")))

	updated := storedDungeon("d-1")
	updated.CurrentRoomID = "boss"
	updated.EnemiesDefeated = 3
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, "boss", got.CurrentRoomID)
	assert.Equal(t, 3, got.EnemiesDefeated)
}

func TestInMemoryRepository_UpdateMissing(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()

	err := repo.Update(context.Background(), storedDungeon("never-created"))
	assert.True(t, engerr.IsNotFound(err))
}

func TestInMemoryRepository_Delete(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedDungeon("d-1")))
	require.NoError(t, repo.Delete(ctx, "d-1"))

	_, err := repo.Get(ctx, "d-1")
	assert.True(t, engerr.IsNotFound(err))

	// deleting an unknown id is not an error
	assert.NoError(t, repo.Delete(ctx, "d-1"))
}

func TestInMemoryRepository_IsolatesStoredState(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()
	ctx := context.Background()

	original := storedDungeon("d-1")
	require.NoError(t, repo.Create(ctx, original))

	// mutating the caller's copy must not touch the stored one
	original.TotalLoot["gold"] = 999
	original.Rooms["entrance"].Completed = true

	got, err := repo.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalLoot["gold"])
	assert.False(t, got.Rooms["entrance"].Completed)

	// and mutating a fetched copy must not touch it either
	got.EnemiesDefeated = 42
	again, err := repo.Get(ctx, "d-1")
	require.NoError(t, err)
	assert.Zero(t, again.EnemiesDefeated)
}

func TestInMemoryRepository_ListActive(t *testing.T) {
	repo := dungeons.NewInMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, storedDungeon("active-1")))
	require.NoError(t, repo.Create(ctx, storedDungeon("active-2")))

	finished := storedDungeon("done")
	finished.Completed = true
	require.NoError(t, repo.Create(ctx, finished))

	retreated := storedDungeon("fled")
	retreated.Retreated = true
	require.NoError(t, repo.Create(ctx, retreated))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)

	ids := []string{active[0].ID, active[1].ID}
	assert.ElementsMatch(t, []string{"active-1", "active-2"}, ids)
}
