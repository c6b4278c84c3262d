package exploration_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockdice "github.com/delveteam/delve/internal/dice/mock"
	"github.com/delveteam/delve/internal/domain/character"
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
	mockcombat "github.com/delveteam/delve/internal/services/combat/mock"
	explorationsvc "github.com/delveteam/delve/internal/services/exploration"
	"github.com/delveteam/delve/internal/services/ledger"
	mockledger "github.com/delveteam/delve/internal/services/ledger/mock"
	mockloot "github.com/delveteam/delve/internal/services/loot/mock"
)

// testDungeon builds a three-room line: entrance, a content room of the
// given type, and a boss room behind it. The party starts at the
// entrance, which is already completed.
func testDungeon(roomType exploration.RoomType, payload exploration.Payload) *exploration.Dungeon {
	rooms := map[string]*exploration.Room{
		"entrance": {
			ID:         "entrance",
			Type:       exploration.RoomTypeEntrance,
			Name:       "Cave Mouth",
			Neighbors:  []string{"content"},
			Discovered: true,
			Completed:  true,
		},
		"content": {
			ID:        "content",
			Type:      roomType,
			Name:      "Content Chamber",
			Depth:     2,
			Neighbors: []string{"entrance", "boss"},
			Payload:   payload,
		},
		"boss": {
			ID:        "boss",
			Type:      exploration.RoomTypeBoss,
			Name:      "Boss Lair",
			Depth:     3,
			Neighbors: []string{"content"},
			Payload: exploration.Payload{
				Combat: &exploration.CombatPayload{
					Enemies: []*combat.Enemy{
						{ID: "boss-1", Name: "Goblin Lord", CurrentHP: 100, MaxHP: 100, Attack: 20, IsBoss: true},
					},
				},
			},
		},
	}

	return &exploration.Dungeon{
		ID:            "run-1",
		Kind:          exploration.KindCave,
		Difficulty:    1,
		Rooms:         rooms,
		EntranceID:    "entrance",
		BossRoomID:    "boss",
		CurrentRoomID: "entrance",
		Visited:       map[string]bool{"entrance": true},
		TotalLoot:     shared.Resources{},
	}
}

type sessionFixture struct {
	combat  *mockcombat.MockService
	loot    *mockloot.MockService
	roller  *mockdice.ManualMockRoller
	ledger  *ledger.InMemoryService
	dungeon *exploration.Dungeon
	session *explorationsvc.Session
}

func newSessionFixture(t *testing.T, dng *exploration.Dungeon, party []character.Character) *sessionFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &sessionFixture{
		combat:  mockcombat.NewMockService(ctrl),
		loot:    mockloot.NewMockService(ctrl),
		roller:  mockdice.NewManualMockRoller(),
		ledger:  ledger.NewInMemoryService(),
		dungeon: dng,
	}

	session, err := explorationsvc.NewSession(&explorationsvc.SessionConfig{
		Dungeon:       dng,
		Party:         party,
		CombatService: f.combat,
		LootService:   f.loot,
		Ledger:        f.ledger,
		Roller:        f.roller,
	})
	require.NoError(t, err)
	f.session = session
	return f
}

// moveTo walks the party onto a room through the legal move action
func (f *sessionFixture) moveTo(t *testing.T, roomID string) {
	t.Helper()
	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{
		Type:         explorationsvc.ActionMove,
		TargetRoomID: roomID,
	})
	require.NoError(t, err)
	require.True(t, result.Success)
}

func defaultParty() []character.Character {
	rogue := character.NewPartyMember("pm-rogue", "Lyra", character.ArchetypeRogue, 80, 20)
	rogue.Stats[shared.StatAgility] = 16
	return []character.Character{rogue}
}

func TestNewSession_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	combatSvc := mockcombat.NewMockService(ctrl)
	lootSvc := mockloot.NewMockService(ctrl)
	roller := mockdice.NewManualMockRoller()
	dng := testDungeon(exploration.RoomTypeEmpty, exploration.Payload{})

	_, err := explorationsvc.NewSession(nil)
	assert.True(t, engerr.IsInvalidArgument(err))

	_, err = explorationsvc.NewSession(&explorationsvc.SessionConfig{
		Party: defaultParty(), CombatService: combatSvc, LootService: lootSvc, Roller: roller,
	})
	assert.True(t, engerr.IsInvalidArgument(err))

	_, err = explorationsvc.NewSession(&explorationsvc.SessionConfig{
		Dungeon: dng, Party: defaultParty(), LootService: lootSvc, Roller: roller,
	})
	assert.True(t, engerr.IsInvalidArgument(err))

	_, err = explorationsvc.NewSession(&explorationsvc.SessionConfig{
		Dungeon: dng, Party: defaultParty(), CombatService: combatSvc, Roller: roller,
	})
	assert.True(t, engerr.IsInvalidArgument(err))

	_, err = explorationsvc.NewSession(&explorationsvc.SessionConfig{
		Dungeon: dng, Party: defaultParty(), CombatService: combatSvc, LootService: lootSvc,
	})
	assert.True(t, engerr.IsInvalidArgument(err))
}

func TestNewSession_RequiresConsciousParty(t *testing.T) {
	ctrl := gomock.NewController(t)
	downed := character.NewPartyMember("pm-1", "Borin", character.ArchetypeWarrior, 100, 0)
	downed.TakeDamage(100)

	_, err := explorationsvc.NewSession(&explorationsvc.SessionConfig{
		Dungeon:       testDungeon(exploration.RoomTypeEmpty, exploration.Payload{}),
		Party:         []character.Character{downed, nil},
		CombatService: mockcombat.NewMockService(ctrl),
		LootService:   mockloot.NewMockService(ctrl),
		Roller:        mockdice.NewManualMockRoller(),
	})
	assert.True(t, engerr.IsPrecondition(err))
}

func TestSession_GetCurrentRoomState(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeEmpty, exploration.Payload{}), defaultParty())

	state, err := f.session.GetCurrentRoomState()
	require.NoError(t, err)
	assert.Equal(t, "entrance", state.RoomID)
	assert.True(t, state.CanRetreat)
	require.Len(t, state.Connections, 1)
	assert.Equal(t, "content", state.Connections[0].RoomID)
	assert.False(t, state.Connections[0].Discovered)

	// undiscovered neighbors keep their details hidden
	assert.Empty(t, state.Connections[0].Name)

	// pure read: a second call yields the identical view
	again, err := f.session.GetCurrentRoomState()
	require.NoError(t, err)
	assert.Equal(t, state, again)
}

func TestSession_IllegalActionFails(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeTreasure, exploration.Payload{
		Treasure: &exploration.TreasurePayload{Loot: shared.Resources{"gold": 10}},
	}), defaultParty())

	// the chest is in the next room over
	_, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionOpen})
	require.True(t, engerr.IsPrecondition(err))

	var engineErr *engerr.Error
	require.ErrorAs(t, err, &engineErr)
	assert.Equal(t, "entrance", engineErr.Meta["room_id"])
}

func TestSession_ExecuteAction_NilInput(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeEmpty, exploration.Payload{}), defaultParty())

	_, err := f.session.ExecuteAction(context.Background(), nil)
	assert.True(t, engerr.IsInvalidArgument(err))
}

func TestSession_MoveToNonNeighborFails(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeEmpty, exploration.Payload{}), defaultParty())

	_, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{
		Type:         explorationsvc.ActionMove,
		TargetRoomID: "boss",
	})
	assert.True(t, engerr.IsPrecondition(err))
}

func TestSession_MoveCompletesEmptyRoom(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeEmpty, exploration.Payload{}), defaultParty())

	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{
		Type:         explorationsvc.ActionMove,
		TargetRoomID: "content",
	})
	require.NoError(t, err)
	assert.Equal(t, "moved", result.Type)

	room := f.dungeon.GetRoom("content")
	assert.True(t, room.Discovered)
	assert.True(t, room.Completed)
	assert.True(t, f.dungeon.Visited["content"])
}

func TestSession_OpenTreasure(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeTreasure, exploration.Payload{
		Treasure: &exploration.TreasurePayload{
			Loot:        shared.Resources{"gold": 25, "materials": 3},
			SpecialItem: "iron_sigil",
		},
	}), defaultParty())
	f.moveTo(t, "content")

	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionOpen})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "treasure_opened", result.Type)
	assert.Equal(t, 25, result.Loot["gold"])
	assert.Equal(t, 1, result.Loot["iron_sigil"])

	assert.True(t, f.dungeon.GetRoom("content").Completed)
	assert.Equal(t, 25, f.dungeon.TotalLoot["gold"])
	assert.Equal(t, 3, f.dungeon.TotalLoot["materials"])

	// the chest is spent: only movement and retreat remain
	state, err := f.session.GetCurrentRoomState()
	require.NoError(t, err)
	for _, action := range state.Actions {
		assert.NotEqual(t, explorationsvc.ActionOpen, action.Type)
	}
}

func TestSession_TrapDetectThenDisarm(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeTrap, exploration.Payload{
		Trap: &exploration.TrapPayload{Name: "dart trap", Damage: 12, DetectDC: 12, DisarmDC: 14},
	}), defaultParty())
	f.moveTo(t, "content")

	// rogue agility 16: a 1 on the die still clears DC 12
	f.roller.SetRolls([]int{1})
	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionExamine})
	require.NoError(t, err)
	assert.Equal(t, "trap_detected", result.Type)
	assert.True(t, f.dungeon.GetRoom("content").Payload.Trap.Detected)

	f.loot.EXPECT().
		RollDisarmReward(2, exploration.KindCave).
		Return(shared.Resources{"gold": 9}, nil)

	f.roller.SetRolls([]int{10})
	result, err = f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionDisarm})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "trap_disarmed", result.Type)
	assert.Equal(t, 9, result.Loot["gold"])
	assert.True(t, f.dungeon.GetRoom("content").Payload.Trap.Disarmed)
	assert.Equal(t, 9, f.dungeon.TotalLoot["gold"])
}

func TestSession_TrapChecksSucceedAtExactDC(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeTrap, exploration.Payload{
		Trap: &exploration.TrapPayload{Name: "dart trap", Damage: 12, DetectDC: 20, DisarmDC: 20},
	}), defaultParty())
	f.moveTo(t, "content")

	// die 4 plus agility 16 lands exactly on the detect DC
	f.roller.SetRolls([]int{4})
	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionExamine})
	require.NoError(t, err)
	assert.Equal(t, "trap_detected", result.Type)
	assert.True(t, f.dungeon.GetRoom("content").Payload.Trap.Detected)

	f.loot.EXPECT().
		RollDisarmReward(2, exploration.KindCave).
		Return(shared.Resources{"gold": 9}, nil)

	// exactly the disarm DC also succeeds
	f.roller.SetRolls([]int{4})
	result, err = f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionDisarm})
	require.NoError(t, err)
	assert.Equal(t, "trap_disarmed", result.Type)
	assert.True(t, f.dungeon.GetRoom("content").Payload.Trap.Disarmed)
}

func TestSession_TrapDisarmBeforeDetectIsIllegal(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeTrap, exploration.Payload{
		Trap: &exploration.TrapPayload{Name: "dart trap", Damage: 12, DetectDC: 12, DisarmDC: 14},
	}), defaultParty())
	f.moveTo(t, "content")

	_, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionDisarm})
	assert.True(t, engerr.IsPrecondition(err))
}

func TestSession_FailedExamineSpringsTrap(t *testing.T) {
	party := defaultParty()
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeTrap, exploration.Payload{
		Trap: &exploration.TrapPayload{Name: "pit trap", Damage: 10, DetectDC: 30, DisarmDC: 35},
	}), party)
	f.moveTo(t, "content")

	// detect roll misses, the 80% hit lands, scale 100 keeps base damage
	f.roller.SetRolls([]int{1, 50, 100})
	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionExamine})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "trap_sprung", result.Type)

	rogue := party[0]
	assert.Equal(t, 70, rogue.GetHP())

	room := f.dungeon.GetRoom("content")
	assert.True(t, room.Payload.Trap.Triggered)
	assert.True(t, room.Completed)
}

func TestSession_TrapEvade(t *testing.T) {
	party := defaultParty()
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeTrap, exploration.Payload{
		Trap: &exploration.TrapPayload{Name: "flame jet", Damage: 10, DetectDC: 12, DisarmDC: 14, Detected: true},
	}), party)
	f.moveTo(t, "content")

	// 81 misses the 80% hit chance, nobody takes damage
	f.roller.SetRolls([]int{81})
	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionTrigger})
	require.NoError(t, err)
	assert.Equal(t, "trap_triggered", result.Type)
	assert.Equal(t, 80, party[0].GetHP())
}

func TestSession_PuzzleFailure(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypePuzzle, exploration.Payload{
		Puzzle: &exploration.PuzzlePayload{
			Name:         "rotating glyphs",
			DC:           25,
			Reward:       shared.Resources{"gold": 30},
			AttemptsLeft: 3,
		},
	}), defaultParty())
	f.moveTo(t, "content")

	// avg mind 10, die 5: total 15 misses DC 25
	f.roller.SetRolls([]int{5})
	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionSolve})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "puzzle_failed", result.Type)
	assert.Empty(t, result.Loot)

	room := f.dungeon.GetRoom("content")
	assert.True(t, room.Completed)
	assert.False(t, room.Payload.Puzzle.Solved)
	assert.Equal(t, 2, room.Payload.Puzzle.AttemptsLeft)
	assert.Zero(t, f.dungeon.TotalLoot["gold"])
}

func TestSession_PuzzleSucceedsAtExactDC(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypePuzzle, exploration.Payload{
		Puzzle: &exploration.PuzzlePayload{
			Name:         "rotating glyphs",
			DC:           15,
			Reward:       shared.Resources{"gold": 30},
			AttemptsLeft: 3,
		},
	}), defaultParty())
	f.moveTo(t, "content")

	// die 5 plus average mind 10 lands exactly on the DC
	f.roller.SetRolls([]int{5})
	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionSolve})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "puzzle_solved", result.Type)
	assert.True(t, f.dungeon.GetRoom("content").Payload.Puzzle.Solved)
	assert.Equal(t, 30, f.dungeon.TotalLoot["gold"])
}

func TestSession_PuzzleSuccessLearnsSkill(t *testing.T) {
	sage := character.NewPartyMember("pm-sage", "Selwyn", character.ArchetypeMage, 70, 60)
	sage.Stats[shared.StatMind] = 16

	f := newSessionFixture(t, testDungeon(exploration.RoomTypePuzzle, exploration.Payload{
		Puzzle: &exploration.PuzzlePayload{
			Name:         "rotating glyphs",
			DC:           12,
			Reward:       shared.Resources{"gold": 30},
			SkillReward:  "glyph_ward",
			SkillChance:  50,
			AttemptsLeft: 3,
		},
	}), []character.Character{sage})
	f.moveTo(t, "content")

	// die 5 plus mind 16 clears DC 12; 10 rolls under the 50% skill chance
	f.roller.SetRolls([]int{5, 10})
	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionSolve})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "puzzle_solved", result.Type)
	assert.Equal(t, 30, result.Loot["gold"])
	assert.Contains(t, result.Message, "glyph_ward")

	assert.True(t, f.dungeon.GetRoom("content").Payload.Puzzle.Solved)
	assert.Equal(t, 30, f.dungeon.TotalLoot["gold"])

	require.Len(t, sage.Skills, 1)
	assert.Equal(t, "glyph_ward", sage.Skills[0].Key)
}

func TestSession_CombatVictory(t *testing.T) {
	enemies := []*combat.Enemy{
		{ID: "e-1", Name: "Goblin", CurrentHP: 40, MaxHP: 40, Attack: 10, Loot: shared.Resources{"materials": 1}, Experience: 5},
		{ID: "e-2", Name: "Goblin", CurrentHP: 40, MaxHP: 40, Attack: 10, Loot: shared.Resources{"materials": 1}, Experience: 5},
	}
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeCombat, exploration.Payload{
		Combat: &exploration.CombatPayload{Enemies: enemies},
	}), defaultParty())
	f.moveTo(t, "content")

	// one duel per living enemy
	f.combat.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&combat.Result{Outcome: combat.OutcomeVictory, Rounds: 2, EnemiesDefeated: 1}, nil).
		Times(2)
	f.loot.EXPECT().
		RollCombatReward(2, 2, exploration.KindCave).
		Return(shared.Resources{"gold": 10}, nil)

	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionFight})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "combat_victory", result.Type)
	assert.Equal(t, 10, result.Loot["gold"])
	assert.Equal(t, 2, result.Loot["materials"])
	assert.Equal(t, 10, result.Loot["experience"])

	assert.Equal(t, explorationsvc.StateExploring, f.session.State())
	assert.True(t, f.dungeon.GetRoom("content").Completed)
	assert.Equal(t, 2, f.dungeon.EnemiesDefeated)
}

func TestSession_CombatDefeatEndsRun(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeCombat, exploration.Payload{
		Combat: &exploration.CombatPayload{Enemies: []*combat.Enemy{
			{ID: "e-1", Name: "Ogre", CurrentHP: 90, MaxHP: 90, Attack: 20},
		}},
	}), defaultParty())
	f.moveTo(t, "content")

	f.combat.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&combat.Result{Outcome: combat.OutcomeDefeat, Rounds: 4}, nil)

	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionFight})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "party_wipe", result.Type)
	assert.Equal(t, explorationsvc.StateCompleted, f.session.State())

	events := f.ledger.Completions()
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.False(t, events[0].BossDefeated)

	// the run is over
	_, err = f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionFight})
	assert.True(t, engerr.IsPrecondition(err))
}

func TestSession_CombatAborted(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeCombat, exploration.Payload{
		Combat: &exploration.CombatPayload{Enemies: []*combat.Enemy{
			{ID: "e-1", Name: "Slime", CurrentHP: 35, MaxHP: 35, Attack: 8},
		}},
	}), defaultParty())
	f.moveTo(t, "content")

	f.combat.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&combat.Result{Outcome: combat.OutcomeAborted, Rounds: 50}, nil)

	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionFight})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "combat_aborted", result.Type)

	// the room is untouched and the session keeps exploring
	assert.Equal(t, explorationsvc.StateExploring, f.session.State())
	assert.False(t, f.dungeon.GetRoom("content").Completed)
}

func TestSession_BossVictoryCompletesDungeon(t *testing.T) {
	dng := testDungeon(exploration.RoomTypeEmpty, exploration.Payload{})
	f := newSessionFixture(t, dng, defaultParty())
	f.moveTo(t, "content")
	f.moveTo(t, "boss")

	f.combat.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(&combat.Result{Outcome: combat.OutcomeVictory, Rounds: 6, EnemiesDefeated: 1}, nil)
	f.loot.EXPECT().
		RollCombatReward(1, 3, exploration.KindCave).
		Return(shared.Resources{"gold": 50}, nil)

	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionFightBoss})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "boss_defeated", result.Type)
	assert.Equal(t, explorationsvc.StateCompleted, f.session.State())

	assert.True(t, dng.Completed)
	assert.True(t, dng.BossDefeated)
	require.NotNil(t, dng.FinishedAt)

	events := f.ledger.Completions()
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.True(t, events[0].BossDefeated)
	assert.Equal(t, 50, f.ledger.Totals("run-1")["gold"])
}

func TestSession_RetreatFromBossRoomIsIllegal(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeEmpty, exploration.Payload{}), defaultParty())
	f.moveTo(t, "content")
	f.moveTo(t, "boss")

	state, err := f.session.GetCurrentRoomState()
	require.NoError(t, err)
	assert.False(t, state.CanRetreat)

	_, err = f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionRetreat})
	assert.True(t, engerr.IsPrecondition(err))
}

func TestSession_RetreatKeepsLoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledgerMock := mockledger.NewMockService(ctrl)

	dng := testDungeon(exploration.RoomTypeEmpty, exploration.Payload{})
	dng.TotalLoot = shared.Resources{"gold": 7}

	session, err := explorationsvc.NewSession(&explorationsvc.SessionConfig{
		Dungeon:       dng,
		Party:         defaultParty(),
		CombatService: mockcombat.NewMockService(ctrl),
		LootService:   mockloot.NewMockService(ctrl),
		Ledger:        ledgerMock,
		Roller:        mockdice.NewManualMockRoller(),
	})
	require.NoError(t, err)

	ledgerMock.EXPECT().
		AddResources(gomock.Any(), "run-1", shared.Resources{"gold": 7}).
		Return(nil)
	ledgerMock.EXPECT().
		RecordCompletion(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *ledger.CompletionEvent) error {
			assert.Equal(t, "run-1", event.DungeonID)
			assert.False(t, event.Success)
			assert.True(t, event.Retreated)
			return nil
		})

	result, err := session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionRetreat})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "retreated", result.Type)
	assert.Equal(t, 7, result.Loot["gold"])

	assert.Equal(t, explorationsvc.StateRetreated, session.State())
	assert.True(t, dng.Retreated)

	_, err = session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionMove, TargetRoomID: "content"})
	assert.True(t, engerr.IsPrecondition(err))
}

func TestSession_Rest(t *testing.T) {
	member := character.NewPartyMember("pm-1", "Borin", character.ArchetypeWarrior, 100, 20)
	member.TakeDamage(60)
	member.SpendMP(20)

	f := newSessionFixture(t, testDungeon(exploration.RoomTypeRest, exploration.Payload{
		Rest: &exploration.RestPayload{HealFraction: 0.5, RestoresMP: true},
	}), []character.Character{member})
	f.moveTo(t, "content")

	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionRest})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "rest_complete", result.Type)

	assert.Equal(t, 90, member.GetHP())
	assert.Equal(t, 10, member.GetMP())
	assert.True(t, f.dungeon.GetRoom("content").Completed)
}

func TestSession_EventStatDrain(t *testing.T) {
	party := defaultParty()
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeEvent, exploration.Payload{
		Event: &exploration.EventPayload{
			Kind:        exploration.EventStatDrain,
			Description: "A chill saps the party's reflexes",
			Stat:        shared.StatAgility,
			Amount:      -2,
		},
	}), party)
	f.moveTo(t, "content")

	result, err := f.session.ExecuteAction(context.Background(), &explorationsvc.ActionInput{Type: explorationsvc.ActionInvestigate})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "event_resolved", result.Type)

	assert.Equal(t, 14, party[0].GetStat(shared.StatAgility))
	assert.True(t, f.dungeon.GetRoom("content").Completed)
}

func TestSession_DrainEvents(t *testing.T) {
	f := newSessionFixture(t, testDungeon(exploration.RoomTypeEmpty, exploration.Payload{}), defaultParty())

	f.moveTo(t, "content")
	first := f.session.DrainEvents()
	assert.NotEmpty(t, first)

	// nothing new since the last drain
	assert.Empty(t, f.session.DrainEvents())
}
