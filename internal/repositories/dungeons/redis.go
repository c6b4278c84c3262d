package dungeons

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/delveteam/delve/internal/domain/game/exploration"
	engerr "github.com/delveteam/delve/internal/errors"
)

const activeIndexKey = "dungeons:active"

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client *redis.Client
}

// redisRepository implements Repository using Redis. Dungeons are stored
// as JSON documents under dungeon:<id> with a set index of active runs.
type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a new Redis-backed repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("RedisRepoConfig and Client are required")
	}
	return &redisRepository{client: cfg.Client}
}

func dungeonKey(id string) string {
	return fmt.Sprintf("dungeon:%s", id)
}

// Create creates a new dungeon
func (r *redisRepository) Create(ctx context.Context, dungeon *exploration.Dungeon) error {
	if dungeon == nil || dungeon.ID == "" {
		return engerr.InvalidArgument("dungeon with an ID is required")
	}

	data, err := json.Marshal(dungeon)
	if err != nil {
		return engerr.Wrap(err, "failed to marshal dungeon")
	}

	if err := r.client.Set(ctx, dungeonKey(dungeon.ID), string(data), 0).Err(); err != nil {
		return engerr.Wrap(err, "failed to store dungeon")
	}

	if !dungeon.IsFinished() {
		if err := r.client.SAdd(ctx, activeIndexKey, dungeon.ID).Err(); err != nil {
			return engerr.Wrap(err, "failed to index dungeon")
		}
	}
	return nil
}

// Get retrieves a dungeon by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*exploration.Dungeon, error) {
	if id == "" {
		return nil, engerr.InvalidArgument("dungeon ID cannot be empty")
	}

	data, err := r.client.Get(ctx, dungeonKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, engerr.NotFoundf("dungeon not found: %s", id)
		}
		return nil, engerr.Wrap(err, "failed to load dungeon")
	}

	var dungeon exploration.Dungeon
	if err := json.Unmarshal(data, &dungeon); err != nil {
		return nil, engerr.Wrap(err, "failed to unmarshal dungeon")
	}
	return &dungeon, nil
}

// Update updates an existing dungeon and maintains the active index
func (r *redisRepository) Update(ctx context.Context, dungeon *exploration.Dungeon) error {
	if dungeon == nil || dungeon.ID == "" {
		return engerr.InvalidArgument("dungeon with an ID is required")
	}

	data, err := json.Marshal(dungeon)
	if err != nil {
		return engerr.Wrap(err, "failed to marshal dungeon")
	}

	if err := r.client.Set(ctx, dungeonKey(dungeon.ID), string(data), 0).Err(); err != nil {
		return engerr.Wrap(err, "failed to store dungeon")
	}

	if dungeon.IsFinished() {
		if err := r.client.SRem(ctx, activeIndexKey, dungeon.ID).Err(); err != nil {
			return engerr.Wrap(err, "failed to unindex dungeon")
		}
	} else {
		if err := r.client.SAdd(ctx, activeIndexKey, dungeon.ID).Err(); err != nil {
			return engerr.Wrap(err, "failed to index dungeon")
		}
	}
	return nil
}

// Delete removes a dungeon and its index entry
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return engerr.InvalidArgument("dungeon ID cannot be empty")
	}

	if err := r.client.Del(ctx, dungeonKey(id)).Err(); err != nil {
		return engerr.Wrap(err, "failed to delete dungeon")
	}
	if err := r.client.SRem(ctx, activeIndexKey, id).Err(); err != nil {
		return engerr.Wrap(err, "failed to unindex dungeon")
	}
	return nil
}

// ListActive retrieves all unfinished dungeons, fetching documents in
// parallel
func (r *redisRepository) ListActive(ctx context.Context) ([]*exploration.Dungeon, error) {
	ids, err := r.client.SMembers(ctx, activeIndexKey).Result()
	if err != nil {
		return nil, engerr.Wrap(err, "failed to list active dungeons")
	}

	dungeons := make([]*exploration.Dungeon, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			dungeon, err := r.Get(ctx, id)
			if err != nil {
				return engerr.Wrapf(err, "failed to get dungeon %s", id)
			}
			dungeons[i] = dungeon
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dungeons, nil
}
