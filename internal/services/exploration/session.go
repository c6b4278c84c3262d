// Package exploration drives one dungeon run: it owns the dungeon
// instance, exposes the currently legal actions, and executes them
// against the current room, delegating encounters to the combat service.
package exploration

import (
	"context"
	"fmt"

	"github.com/delveteam/delve/internal/dice"
	"github.com/delveteam/delve/internal/domain/character"
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	engerr "github.com/delveteam/delve/internal/errors"
	combatsvc "github.com/delveteam/delve/internal/services/combat"
	"github.com/delveteam/delve/internal/services/ledger"
	"github.com/delveteam/delve/internal/services/loot"
)

// State is the session state machine
type State string

const (
	StateExploring State = "exploring"
	StateCombat    State = "combat"
	StateCompleted State = "completed"
	StateRetreated State = "retreated"
)

// ActionType identifies an executable session action
type ActionType string

const (
	ActionFight       ActionType = "fight"
	ActionFightBoss   ActionType = "fight_boss"
	ActionOpen        ActionType = "open"
	ActionExamine     ActionType = "examine"
	ActionDisarm      ActionType = "disarm"
	ActionTrigger     ActionType = "trigger"
	ActionSolve       ActionType = "solve"
	ActionRest        ActionType = "rest"
	ActionInvestigate ActionType = "investigate"
	ActionMove        ActionType = "move"
	ActionRetreat     ActionType = "retreat"
)

// Action is one legal choice offered to the player
type Action struct {
	Type         ActionType `json:"type"`
	TargetRoomID string     `json:"target_room_id,omitempty"` // for move actions
	Label        string     `json:"label"`
}

// ConnectionSummary describes an adjacent room for presentation
type ConnectionSummary struct {
	RoomID     string `json:"room_id"`
	Discovered bool   `json:"discovered"`
	Name       string `json:"name,omitempty"` // only for discovered rooms
	Type       string `json:"type,omitempty"`
}

// RoomState is the read-only view of the current room
type RoomState struct {
	RoomID      string               `json:"room_id"`
	Type        exploration.RoomType `json:"type"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Depth       int                  `json:"depth"`
	Completed   bool                 `json:"completed"`
	Actions     []Action             `json:"actions"`
	Connections []ConnectionSummary  `json:"connections"`
	CanRetreat  bool                 `json:"can_retreat"`
	Progress    exploration.Progress `json:"progress"`
}

// ActionInput selects the action to execute
type ActionInput struct {
	Type         ActionType
	TargetRoomID string // required for move
}

// ActionResult is the structured outcome of one executed action
type ActionResult struct {
	Success bool              `json:"success"`
	Type    string            `json:"type"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Loot    map[string]int    `json:"loot,omitempty"`
	Combat  *combat.Result    `json:"combat,omitempty"`
}

// Session is the per-run state machine. It exclusively owns its dungeon
// and, transiently, any combat session; the party roster is borrowed from
// the character collaborator.
type Session struct {
	dungeon   *exploration.Dungeon
	party     []character.Character
	combat    combatsvc.Service
	loot      loot.Service
	ledger    ledger.Service
	roller    dice.Roller
	state     State
	log       []string
	logCursor int
}

// SessionConfig holds configuration for a session
type SessionConfig struct {
	Dungeon       *exploration.Dungeon // Required
	Party         []character.Character // Required, at least one conscious member
	CombatService combatsvc.Service    // Required
	LootService   loot.Service         // Required
	Ledger        ledger.Service       // Optional, nil skips reporting
	Roller        dice.Roller          // Required
}

// NewSession creates a session, filtering the party down to conscious
// members. Zero conscious members is a precondition violation.
func NewSession(cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		return nil, engerr.InvalidArgument("config cannot be nil")
	}
	if cfg.Dungeon == nil {
		return nil, engerr.InvalidArgument("dungeon is required")
	}
	if cfg.CombatService == nil {
		return nil, engerr.InvalidArgument("combat service is required")
	}
	if cfg.LootService == nil {
		return nil, engerr.InvalidArgument("loot service is required")
	}
	if cfg.Roller == nil {
		return nil, engerr.InvalidArgument("roller is required")
	}

	var conscious []character.Character
	for _, member := range cfg.Party {
		if member != nil && combat.Conscious(member) {
			conscious = append(conscious, member)
		}
	}
	if len(conscious) == 0 {
		return nil, engerr.Precondition("cannot start exploration with no conscious party members")
	}

	s := &Session{
		dungeon: cfg.Dungeon,
		party:   conscious,
		combat:  cfg.CombatService,
		loot:    cfg.LootService,
		ledger:  cfg.Ledger,
		roller:  cfg.Roller,
		state:   StateExploring,
	}
	if cfg.Dungeon.IsFinished() {
		if cfg.Dungeon.Retreated && !cfg.Dungeon.BossDefeated {
			s.state = StateRetreated
		} else {
			s.state = StateCompleted
		}
	}
	return s, nil
}

// State returns the current session state
func (s *Session) State() State {
	return s.state
}

// Dungeon exposes the owned dungeon for persistence by the caller
func (s *Session) Dungeon() *exploration.Dungeon {
	return s.dungeon
}

// Log returns the full exploration log
func (s *Session) Log() []string {
	return s.log
}

// DrainEvents returns the log entries appended since the previous drain
func (s *Session) DrainEvents() []string {
	entries := s.log[s.logCursor:]
	s.logCursor = len(s.log)
	return entries
}

func (s *Session) logf(format string, args ...any) {
	s.log = append(s.log, fmt.Sprintf(format, args...))
}

// GetCurrentRoomState returns the room payload, the legal action set,
// and connection summaries. Pure read: calling it twice without an
// intervening ExecuteAction yields identical results.
func (s *Session) GetCurrentRoomState() (*RoomState, error) {
	room := s.dungeon.GetCurrentRoom()
	if room == nil {
		return nil, engerr.Internal("dungeon has no current room")
	}

	state := &RoomState{
		RoomID:      room.ID,
		Type:        room.Type,
		Name:        room.Name,
		Description: room.Description,
		Depth:       room.Depth,
		Completed:   room.Completed,
		CanRetreat:  s.state == StateExploring && s.dungeon.CanRetreat(),
		Progress:    s.dungeon.GetProgress(),
	}

	for _, neighbor := range s.dungeon.GetConnectedRooms() {
		summary := ConnectionSummary{RoomID: neighbor.ID, Discovered: neighbor.Discovered}
		if neighbor.Discovered {
			summary.Name = neighbor.Name
			summary.Type = string(neighbor.Type)
		}
		state.Connections = append(state.Connections, summary)
	}

	state.Actions = s.legalActions(room)
	return state, nil
}

// legalActions computes the action set for a room. Content actions
// disappear once the room is completed; movement and retreat remain.
func (s *Session) legalActions(room *exploration.Room) []Action {
	var actions []Action
	if s.state != StateExploring {
		return actions
	}

	if !room.Completed {
		switch room.Type {
		case exploration.RoomTypeCombat:
			actions = append(actions, Action{Type: ActionFight, Label: "Fight"})
		case exploration.RoomTypeBoss:
			actions = append(actions, Action{Type: ActionFightBoss, Label: "Fight the boss"})
		case exploration.RoomTypeTreasure:
			actions = append(actions, Action{Type: ActionOpen, Label: "Open the chest"})
		case exploration.RoomTypeTrap:
			if trap := room.Payload.Trap; trap != nil && !trap.Triggered && !trap.Disarmed {
				if !trap.Detected {
					actions = append(actions, Action{Type: ActionExamine, Label: "Examine the room"})
				} else {
					actions = append(actions,
						Action{Type: ActionDisarm, Label: "Disarm the trap"},
						Action{Type: ActionTrigger, Label: "Spring the trap deliberately"},
					)
				}
			}
		case exploration.RoomTypePuzzle:
			actions = append(actions, Action{Type: ActionSolve, Label: "Attempt the puzzle"})
		case exploration.RoomTypeRest:
			actions = append(actions, Action{Type: ActionRest, Label: "Rest"})
		case exploration.RoomTypeEvent:
			actions = append(actions, Action{Type: ActionInvestigate, Label: "Investigate"})
		}
	}

	for _, neighbor := range s.dungeon.GetConnectedRooms() {
		label := "Move to an unexplored passage"
		if neighbor.Discovered {
			label = "Move to " + neighbor.Name
		}
		actions = append(actions, Action{Type: ActionMove, TargetRoomID: neighbor.ID, Label: label})
	}

	if s.dungeon.CanRetreat() {
		actions = append(actions, Action{Type: ActionRetreat, Label: "Retreat from the dungeon"})
	}
	return actions
}

// ExecuteAction runs one action against the current room. Precondition
// violations (illegal action, finished session) return an error; handler
// failures and panics are converted to failed results, leaving the room
// and session state unchanged.
func (s *Session) ExecuteAction(ctx context.Context, input *ActionInput) (result *ActionResult, err error) {
	if input == nil {
		return nil, engerr.InvalidArgument("input cannot be nil")
	}
	if s.state == StateCompleted || s.state == StateRetreated {
		return nil, engerr.Precondition("exploration has already ended").
			WithMeta("state", string(s.state))
	}

	room := s.dungeon.GetCurrentRoom()
	if room == nil {
		return nil, engerr.Internal("dungeon has no current room")
	}

	if !s.isLegal(room, input) {
		return nil, engerr.Preconditionf("action %q is not available in this room", input.Type).
			WithMeta("room_id", room.ID).
			WithMeta("room_type", string(room.Type))
	}

	// Boundary: a panicking handler must not crash the session or leave
	// it half-mutated in an observable way. The room stays incomplete and
	// the state transition is rolled back.
	priorState := s.state
	defer func() {
		if r := recover(); r != nil {
			s.state = priorState
			s.logf("Action %s failed: %v", input.Type, r)
			result = &ActionResult{Success: false, Type: string(input.Type), Error: fmt.Sprintf("%v", r)}
			err = nil
		}
	}()

	switch input.Type {
	case ActionFight:
		return s.handleCombat(ctx, room, false)
	case ActionFightBoss:
		return s.handleCombat(ctx, room, true)
	case ActionOpen:
		return s.handleTreasure(ctx, room)
	case ActionExamine:
		return s.handleExamine(ctx, room)
	case ActionDisarm:
		return s.handleDisarm(ctx, room)
	case ActionTrigger:
		return s.handleTrigger(ctx, room, "trap_triggered")
	case ActionSolve:
		return s.handleSolve(ctx, room)
	case ActionRest:
		return s.handleRest(ctx, room)
	case ActionInvestigate:
		return s.handleEvent(ctx, room)
	case ActionMove:
		return s.handleMove(ctx, input.TargetRoomID)
	case ActionRetreat:
		return s.handleRetreat(ctx)
	default:
		return nil, engerr.InvalidArgumentf("unknown action type %q", input.Type)
	}
}

// isLegal reports whether the input matches the current legal action set
func (s *Session) isLegal(room *exploration.Room, input *ActionInput) bool {
	for _, action := range s.legalActions(room) {
		if action.Type != input.Type {
			continue
		}
		if action.Type == ActionMove && action.TargetRoomID != input.TargetRoomID {
			continue
		}
		return true
	}
	return false
}

// consciousParty returns the party members currently able to act
func (s *Session) consciousParty() []character.Character {
	var conscious []character.Character
	for _, member := range s.party {
		if combat.Conscious(member) {
			conscious = append(conscious, member)
		}
	}
	return conscious
}

// partyAsCombatants converts the conscious party for the combat service
func (s *Session) partyAsCombatants() []combat.Combatant {
	conscious := s.consciousParty()
	out := make([]combat.Combatant, len(conscious))
	for i, member := range conscious {
		out[i] = member
	}
	return out
}
