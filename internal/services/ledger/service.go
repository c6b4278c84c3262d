package ledger

//go:generate mockgen -destination=mock/mock_service.go -package=mockledger -source=service.go

import (
	"context"
	"sync"
	"time"

	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
)

// Service is the game-ledger collaborator the engine reports to. The
// ledger owns resource persistence and unlock evaluation; the engine only
// pushes deltas and completion events.
type Service interface {
	// AddResources records a resource delta for a run
	AddResources(ctx context.Context, dungeonID string, resources shared.Resources) error

	// RecordCompletion records the terminal outcome of a run
	RecordCompletion(ctx context.Context, event *CompletionEvent) error
}

// CompletionEvent summarizes a finished run
type CompletionEvent struct {
	DungeonID       string           `json:"dungeon_id"`
	Kind            exploration.Kind `json:"kind"`
	Success         bool             `json:"success"`
	Retreated       bool             `json:"retreated"`
	BossDefeated    bool             `json:"boss_defeated"`
	RoomsCompleted  int              `json:"rooms_completed"`
	EnemiesDefeated int              `json:"enemies_defeated"`
	RecordedAt      time.Time        `json:"recorded_at"`
}

// InMemoryService is the reference ledger used by tests and the CLI
type InMemoryService struct {
	mu          sync.Mutex
	totals      map[string]shared.Resources
	completions []*CompletionEvent
}

// NewInMemoryService creates a ledger that accumulates in memory
func NewInMemoryService() *InMemoryService {
	return &InMemoryService{
		totals: make(map[string]shared.Resources),
	}
}

// AddResources implements Service
func (s *InMemoryService) AddResources(ctx context.Context, dungeonID string, resources shared.Resources) error {
	if dungeonID == "" {
		return engerr.InvalidArgument("dungeon ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total, ok := s.totals[dungeonID]
	if !ok {
		total = shared.Resources{}
		s.totals[dungeonID] = total
	}
	total.Merge(resources)
	return nil
}

// RecordCompletion implements Service
func (s *InMemoryService) RecordCompletion(ctx context.Context, event *CompletionEvent) error {
	if event == nil {
		return engerr.InvalidArgument("event cannot be nil")
	}
	if event.DungeonID == "" {
		return engerr.InvalidArgument("dungeon ID is required")
	}

	recorded := *event
	if recorded.RecordedAt.IsZero() {
		recorded.RecordedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions = append(s.completions, &recorded)
	return nil
}

// Totals returns the accumulated resources for a run
func (s *InMemoryService) Totals(dungeonID string) shared.Resources {
	s.mu.Lock()
	defer s.mu.Unlock()

	if total, ok := s.totals[dungeonID]; ok {
		return total.Clone()
	}
	return shared.Resources{}
}

// Completions returns the recorded completion events
func (s *InMemoryService) Completions() []*CompletionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*CompletionEvent, len(s.completions))
	copy(out, s.completions)
	return out
}
