package dungeons

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/delveteam/delve/internal/domain/game/exploration"
	engerr "github.com/delveteam/delve/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu       sync.RWMutex
	dungeons map[string]*exploration.Dungeon
}

// NewInMemoryRepository creates a new in-memory dungeon repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		dungeons: make(map[string]*exploration.Dungeon),
	}
}

// Create creates a new dungeon
func (r *inMemoryRepository) Create(ctx context.Context, dungeon *exploration.Dungeon) error {
	if dungeon == nil {
		return engerr.InvalidArgument("dungeon cannot be nil")
	}
	if dungeon.ID == "" {
		return engerr.InvalidArgument("dungeon ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dungeons[dungeon.ID]; exists {
		return engerr.AlreadyExists("dungeon already exists").WithMeta("dungeon_id", dungeon.ID)
	}

	copied, err := deepCopy(dungeon)
	if err != nil {
		return err
	}
	r.dungeons[dungeon.ID] = copied
	return nil
}

// Get retrieves a dungeon by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*exploration.Dungeon, error) {
	if id == "" {
		return nil, engerr.InvalidArgument("dungeon ID cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	dungeon, exists := r.dungeons[id]
	if !exists {
		return nil, engerr.NotFoundf("dungeon not found: %s", id)
	}
	return deepCopy(dungeon)
}

// Update updates an existing dungeon
func (r *inMemoryRepository) Update(ctx context.Context, dungeon *exploration.Dungeon) error {
	if dungeon == nil {
		return engerr.InvalidArgument("dungeon cannot be nil")
	}
	if dungeon.ID == "" {
		return engerr.InvalidArgument("dungeon ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dungeons[dungeon.ID]; !exists {
		return engerr.NotFoundf("dungeon not found: %s", dungeon.ID)
	}

	copied, err := deepCopy(dungeon)
	if err != nil {
		return err
	}
	r.dungeons[dungeon.ID] = copied
	return nil
}

// Delete removes a dungeon
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return engerr.InvalidArgument("dungeon ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.dungeons, id)
	return nil
}

// ListActive retrieves all unfinished dungeons
func (r *inMemoryRepository) ListActive(ctx context.Context) ([]*exploration.Dungeon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []*exploration.Dungeon
	for _, dungeon := range r.dungeons {
		if dungeon.IsFinished() {
			continue
		}
		copied, err := deepCopy(dungeon)
		if err != nil {
			return nil, err
		}
		active = append(active, copied)
	}
	return active, nil
}

// deepCopy isolates stored dungeons from caller mutation. The dungeon
// graph nests rooms and enemies, so a JSON round trip beats a field-wise
// copy here.
func deepCopy(dungeon *exploration.Dungeon) (*exploration.Dungeon, error) {
	data, err := json.Marshal(dungeon)
	if err != nil {
		return nil, engerr.Wrap(err, "failed to copy dungeon")
	}
	var copied exploration.Dungeon
	if err := json.Unmarshal(data, &copied); err != nil {
		return nil, engerr.Wrap(err, "failed to copy dungeon")
	}
	return &copied, nil
}
