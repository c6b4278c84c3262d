package exploration

import (
	"time"

	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
)

// Dungeon is the live graph for one exploration attempt. It is created by
// the graph builder and mutated only through MoveToRoom, CompleteRoom,
// and Retreat. Once Completed or Retreated is set the instance is frozen:
// every mutating call fails with a precondition error.
type Dungeon struct {
	ID              string           `json:"id"`
	Kind            Kind             `json:"kind"`
	Difficulty      int              `json:"difficulty"`
	Rooms           map[string]*Room `json:"rooms"`
	EntranceID      string           `json:"entrance_id"`
	BossRoomID      string           `json:"boss_room_id"`
	CurrentRoomID   string           `json:"current_room_id"`
	Visited         map[string]bool  `json:"visited"`
	TotalLoot       shared.Resources `json:"total_loot"`
	EnemiesDefeated int              `json:"enemies_defeated"`
	Completed       bool             `json:"completed"`
	Retreated       bool             `json:"retreated"`
	BossDefeated    bool             `json:"boss_defeated"`
	CreatedAt       time.Time        `json:"created_at"`
	FinishedAt      *time.Time       `json:"finished_at,omitempty"`
}

// RoomResult carries the outcome of resolving a room's content into the
// dungeon's aggregates
type RoomResult struct {
	Loot            shared.Resources
	EnemiesDefeated int
}

// Progress is a read-only summary of the run
type Progress struct {
	RoomsTotal     int     `json:"rooms_total"`
	RoomsVisited   int     `json:"rooms_visited"`
	RoomsCompleted int     `json:"rooms_completed"`
	VisitedRatio   float64 `json:"visited_ratio"`
	CompletedRatio float64 `json:"completed_ratio"`
	BossDefeated   bool    `json:"boss_defeated"`
	Completed      bool    `json:"completed"`
	Retreated      bool    `json:"retreated"`
}

// IsFinished reports whether the run has ended (completed or retreated)
func (d *Dungeon) IsFinished() bool {
	return d.Completed || d.Retreated
}

// GetCurrentRoom returns the room the party currently occupies
func (d *Dungeon) GetCurrentRoom() *Room {
	return d.Rooms[d.CurrentRoomID]
}

// GetRoom returns a room by id, nil if unknown
func (d *Dungeon) GetRoom(id string) *Room {
	return d.Rooms[id]
}

// GetConnectedRooms returns the rooms adjacent to the current room
func (d *Dungeon) GetConnectedRooms() []*Room {
	current := d.GetCurrentRoom()
	if current == nil {
		return nil
	}

	connected := make([]*Room, 0, len(current.Neighbors))
	for _, id := range current.Neighbors {
		if room := d.Rooms[id]; room != nil {
			connected = append(connected, room)
		}
	}
	return connected
}

// MoveToRoom moves the party to an adjacent room, marking it discovered
// and visited. Moving to a non-adjacent room fails without mutating the
// current position.
func (d *Dungeon) MoveToRoom(id string) error {
	if d.IsFinished() {
		return ErrDungeonFinished(d)
	}

	current := d.GetCurrentRoom()
	if current == nil {
		return engerr.Internalf("current room %q missing from dungeon", d.CurrentRoomID)
	}

	target := d.Rooms[id]
	if target == nil {
		return engerr.NotFoundf("room %q does not exist", id)
	}
	if !current.HasNeighbor(id) {
		return engerr.Preconditionf("room %q is not connected to %q", id, current.ID).
			WithMeta("current_room", current.ID)
	}

	target.Discovered = true
	d.Visited[id] = true
	d.CurrentRoomID = id
	return nil
}

// CanRetreat reports whether retreat is allowed from the current room.
// The boss room never allows retreat.
func (d *Dungeon) CanRetreat() bool {
	current := d.GetCurrentRoom()
	return current != nil && current.Type != RoomTypeBoss
}

// Retreat ends the run early, keeping the loot gathered so far. A no-op
// if the run already ended; fails from the boss room.
func (d *Dungeon) Retreat() error {
	if d.IsFinished() {
		return nil
	}
	if !d.CanRetreat() {
		return engerr.Precondition("cannot retreat from the boss room")
	}

	d.Retreated = true
	d.Completed = true
	now := time.Now()
	d.FinishedAt = &now
	return nil
}

// CompleteRoom marks a room completed and folds its results into the
// dungeon's aggregates. Completing the boss room finishes the dungeon.
func (d *Dungeon) CompleteRoom(id string, result *RoomResult) error {
	if d.IsFinished() {
		return ErrDungeonFinished(d)
	}

	room := d.Rooms[id]
	if room == nil {
		return engerr.NotFoundf("room %q does not exist", id)
	}

	room.Completed = true
	if result != nil {
		if result.Loot != nil {
			d.TotalLoot.Merge(result.Loot)
		}
		d.EnemiesDefeated += result.EnemiesDefeated
	}

	if id == d.BossRoomID {
		d.BossDefeated = true
		d.Completed = true
		now := time.Now()
		d.FinishedAt = &now
	}
	return nil
}

// GetProgress returns a consistent read-only snapshot of the run
func (d *Dungeon) GetProgress() Progress {
	completed := 0
	for _, room := range d.Rooms {
		if room.Completed {
			completed++
		}
	}

	p := Progress{
		RoomsTotal:     len(d.Rooms),
		RoomsVisited:   len(d.Visited),
		RoomsCompleted: completed,
		BossDefeated:   d.BossDefeated,
		Completed:      d.Completed,
		Retreated:      d.Retreated,
	}
	if p.RoomsTotal > 0 {
		p.VisitedRatio = float64(p.RoomsVisited) / float64(p.RoomsTotal)
		p.CompletedRatio = float64(p.RoomsCompleted) / float64(p.RoomsTotal)
	}
	return p
}

// ErrDungeonFinished is the error returned for mutations attempted after
// the run ended
func ErrDungeonFinished(d *Dungeon) error {
	return engerr.Precondition("dungeon run has already ended").
		WithMeta("dungeon_id", d.ID).
		WithMeta("retreated", d.Retreated)
}
