package dungeon

//go:generate mockgen -destination=mock/mock_service.go -package=mockdungeon -source=service.go

import (
	"context"
	"time"

	"github.com/delveteam/delve/internal/dice"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
	"github.com/delveteam/delve/internal/repositories/dungeons"
	"github.com/delveteam/delve/internal/services/generator"
	"github.com/delveteam/delve/internal/uuid"
)

// Repository is an alias for the dungeon repository interface
type Repository = dungeons.Repository

// Service builds and persists dungeon graphs
type Service interface {
	// CreateDungeon builds a new dungeon graph for a kind and difficulty
	CreateDungeon(ctx context.Context, input *CreateDungeonInput) (*exploration.Dungeon, error)

	// GetDungeon retrieves a dungeon by ID
	GetDungeon(ctx context.Context, dungeonID string) (*exploration.Dungeon, error)

	// SaveDungeon persists the current state of a dungeon
	SaveDungeon(ctx context.Context, dungeon *exploration.Dungeon) error

	// AbandonDungeon force-finishes an active run
	AbandonDungeon(ctx context.Context, dungeonID string) error
}

// CreateDungeonInput contains data for creating a dungeon
type CreateDungeonInput struct {
	Kind       exploration.Kind
	Difficulty int // 0 is easiest; scales room count
}

type service struct {
	repository Repository
	generator  generator.Service
	roller     dice.Roller
	uuidGen    uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository        // Required
	Generator     generator.Service // Required
	Roller        dice.Roller       // Required
	UUIDGenerator uuid.Generator    // Optional
}

// NewService creates a new dungeon service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Generator == nil {
		panic("generator service is required")
	}
	if cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		repository: cfg.Repository,
		generator:  cfg.Generator,
		roller:     cfg.Roller,
	}
	if cfg.UUIDGenerator != nil {
		svc.uuidGen = cfg.UUIDGenerator
	} else {
		svc.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	return svc
}

// CreateDungeon implements Service. The graph is a linear main path with
// side rooms hung off it, occasional skip edges two steps ahead, and a
// single terminal boss room.
func (s *service) CreateDungeon(ctx context.Context, input *CreateDungeonInput) (*exploration.Dungeon, error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if !input.Kind.Valid() {
		return nil, engerr.InvalidArgumentf("unknown dungeon kind %q", input.Kind)
	}
	if input.Difficulty < 0 {
		return nil, engerr.InvalidArgument("difficulty cannot be negative")
	}

	tmpl := generator.TemplateFor(input.Kind)

	roomCount := clamp(6+2*input.Difficulty+input.Kind.RoomCountBonus(), 5, 15)
	mainLen := roomCount * 7 / 10
	if mainLen < 2 {
		mainLen = 2
	}
	sideCount := roomCount - mainLen - 1
	if sideCount < 0 {
		sideCount = 0
	}

	dungeon := &exploration.Dungeon{
		ID:         s.uuidGen.New(),
		Kind:       input.Kind,
		Difficulty: input.Difficulty,
		Rooms:      make(map[string]*exploration.Room, roomCount),
		Visited:    make(map[string]bool),
		TotalLoot:  shared.Resources{},
		CreatedAt:  time.Now(),
	}

	// Main path, depth rising roughly every two rooms
	mainPath := make([]*exploration.Room, 0, mainLen)
	for i := 0; i < mainLen; i++ {
		depth := i / 2
		var room *exploration.Room
		var err error
		if i == 0 {
			room, err = s.buildRoom(exploration.RoomTypeEntrance, tmpl, 0, input.Kind)
		} else {
			roomType, pickErr := generator.WeightedPick(tmpl.Weights, s.roller)
			if pickErr != nil {
				return nil, pickErr
			}
			room, err = s.buildRoom(roomType, tmpl, depth, input.Kind)
		}
		if err != nil {
			return nil, err
		}
		room.X = i
		dungeon.Rooms[room.ID] = room
		mainPath = append(mainPath, room)
		if i > 0 {
			connect(mainPath[i-1], room)
		}
	}

	entrance := mainPath[0]
	entrance.Discovered = true
	entrance.Completed = true
	dungeon.EntranceID = entrance.ID
	dungeon.CurrentRoomID = entrance.ID
	dungeon.Visited[entrance.ID] = true

	// Side rooms hang off a random main-path room
	for i := 0; i < sideCount; i++ {
		attach, err := s.roller.Between(1, mainLen-1)
		if err != nil {
			return nil, err
		}
		anchor := mainPath[attach]

		roomType, err := generator.WeightedPick(tmpl.Weights, s.roller)
		if err != nil {
			return nil, err
		}
		room, err := s.buildRoom(roomType, tmpl, anchor.Depth, input.Kind)
		if err != nil {
			return nil, err
		}
		room.X = anchor.X
		side, err := s.roller.Between(0, 1)
		if err != nil {
			return nil, err
		}
		room.Y = 1 - 2*side // +1 or -1, off the main axis
		dungeon.Rooms[room.ID] = room
		connect(anchor, room)
	}

	// Skip edges on interior main-path rooms, two steps ahead
	for i := 2; i <= mainLen-3; i++ {
		skip, err := s.roller.Percent(20)
		if err != nil {
			return nil, err
		}
		if skip {
			connect(mainPath[i], mainPath[i+2])
		}
	}

	// Single terminal boss room after the main path
	bossDepth := mainLen/2 + 2
	boss, err := s.buildRoom(exploration.RoomTypeBoss, tmpl, bossDepth, input.Kind)
	if err != nil {
		return nil, err
	}
	boss.X = mainLen
	dungeon.Rooms[boss.ID] = boss
	dungeon.BossRoomID = boss.ID
	connect(mainPath[mainLen-1], boss)

	if err := s.repository.Create(ctx, dungeon); err != nil {
		return nil, engerr.Wrap(err, "failed to persist dungeon").
			WithMeta("dungeon_id", dungeon.ID)
	}
	return dungeon, nil
}

// buildRoom creates a room of the given type with a generated payload
func (s *service) buildRoom(roomType exploration.RoomType, tmpl *generator.Template, depth int, kind exploration.Kind) (*exploration.Room, error) {
	payload, err := s.generator.Generate(roomType, tmpl, depth, kind)
	if err != nil {
		return nil, engerr.Wrapf(err, "failed to generate %s room", roomType)
	}

	name, description := describeRoom(roomType)
	return &exploration.Room{
		ID:          s.uuidGen.New(),
		Type:        roomType,
		Name:        name,
		Description: description,
		Depth:       depth,
		Payload:     *payload,
	}, nil
}

// GetDungeon implements Service
func (s *service) GetDungeon(ctx context.Context, dungeonID string) (*exploration.Dungeon, error) {
	if dungeonID == "" {
		return nil, engerr.InvalidArgument("dungeon ID is required")
	}

	dungeon, err := s.repository.Get(ctx, dungeonID)
	if err != nil {
		return nil, engerr.Wrapf(err, "failed to get dungeon '%s'", dungeonID).
			WithMeta("dungeon_id", dungeonID)
	}
	return dungeon, nil
}

// SaveDungeon implements Service
func (s *service) SaveDungeon(ctx context.Context, dungeon *exploration.Dungeon) error {
	if dungeon == nil {
		return engerr.InvalidArgument("dungeon cannot be nil")
	}
	return s.repository.Update(ctx, dungeon)
}

// AbandonDungeon implements Service
func (s *service) AbandonDungeon(ctx context.Context, dungeonID string) error {
	dungeon, err := s.GetDungeon(ctx, dungeonID)
	if err != nil {
		return err
	}
	if dungeon.IsFinished() {
		return engerr.Precondition("dungeon run has already ended")
	}

	dungeon.Retreated = true
	dungeon.Completed = true
	now := time.Now()
	dungeon.FinishedAt = &now
	return s.repository.Update(ctx, dungeon)
}

// connect adds a bidirectional, deduplicated edge between two rooms
func connect(a, b *exploration.Room) {
	a.AddNeighbor(b.ID)
	b.AddNeighbor(a.ID)
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// describeRoom supplies flavor text per room type
func describeRoom(roomType exploration.RoomType) (string, string) {
	switch roomType {
	case exploration.RoomTypeEntrance:
		return "Dungeon Entrance", "Cold air drifts up from the passage ahead."
	case exploration.RoomTypeCombat:
		return "Guard Chamber", "Weapons glint in the torchlight. Something stirs in the darkness."
	case exploration.RoomTypeTreasure:
		return "Treasury Vault", "Chests and artifacts fill the room. Coins glitter in piles."
	case exploration.RoomTypeTrap:
		return "Hall of Dangers", "The floor tiles look suspicious. Strange holes dot the walls."
	case exploration.RoomTypeRest:
		return "Safe Haven", "A peaceful chamber with fresh water and comfortable bedrolls."
	case exploration.RoomTypeBoss:
		return "Throne of the Deep", "A vast chamber. A hulking presence waits at its heart."
	case exploration.RoomTypePuzzle:
		return "Sealed Chamber", "Ancient runes glow on the walls around a strange mechanism."
	case exploration.RoomTypeEvent:
		return "Strange Alcove", "An odd glow emanates from the center of this chamber."
	default:
		return "Empty Chamber", "Dust and silence. Nothing of note remains here."
	}
}
