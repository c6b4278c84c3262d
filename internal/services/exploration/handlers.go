package exploration

import (
	"context"

	"github.com/delveteam/delve/internal/domain/character"
	"github.com/delveteam/delve/internal/domain/game/combat"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
	engerr "github.com/delveteam/delve/internal/errors"
	combatsvc "github.com/delveteam/delve/internal/services/combat"
	"github.com/delveteam/delve/internal/services/ledger"
)

// handleCombat resolves a combat or boss room. Normal rooms are fought as
// sequential duels, one encounter per enemy; the boss room is a single
// encounter against the full roster.
func (s *Session) handleCombat(ctx context.Context, room *exploration.Room, boss bool) (*ActionResult, error) {
	payload := room.Payload.Combat
	if payload == nil || len(payload.Enemies) == 0 {
		return nil, engerr.Internal("combat room has no enemy payload")
	}

	s.state = StateCombat
	defer func() {
		if s.state == StateCombat {
			s.state = StateExploring
		}
	}()

	var rosters [][]*combat.Enemy
	if boss {
		rosters = [][]*combat.Enemy{payload.Enemies}
	} else {
		for _, enemy := range payload.Enemies {
			if enemy.IsAlive() {
				rosters = append(rosters, []*combat.Enemy{enemy})
			}
		}
	}

	defeated := 0
	totalRounds := 0
	var lastResult *combat.Result
	for _, roster := range rosters {
		result, err := s.combat.Resolve(ctx, &combatsvc.EncounterInput{
			Allies:  s.partyAsCombatants(),
			Enemies: roster,
		})
		if err != nil {
			return &ActionResult{Success: false, Type: "combat_error", Error: err.Error()}, nil
		}

		lastResult = result
		defeated += result.EnemiesDefeated
		totalRounds += result.Rounds
		for _, entry := range result.Log {
			s.log = append(s.log, entry)
		}

		switch result.Outcome {
		case combat.OutcomeDefeat:
			s.logf("The party has fallen in %s", room.Name)
			s.finishWipe(ctx)
			return &ActionResult{
				Success: false,
				Type:    "party_wipe",
				Message: "Every party member has fallen",
				Combat:  result,
			}, nil
		case combat.OutcomeAborted:
			s.logf("Combat in %s did not resolve", room.Name)
			return &ActionResult{
				Success: false,
				Type:    "combat_aborted",
				Error:   "combat hit a safety limit before resolving",
				Combat:  result,
			}, nil
		}
	}

	// Victory: roll rewards and fold the room into the dungeon
	reward, err := s.loot.RollCombatReward(len(payload.Enemies), room.Depth, s.dungeon.Kind)
	if err != nil {
		return &ActionResult{Success: false, Type: "combat_error", Error: err.Error()}, nil
	}
	for _, enemy := range payload.Enemies {
		reward.Merge(enemy.Loot)
		reward["experience"] += enemy.Experience
	}

	if err := s.dungeon.CompleteRoom(room.ID, &exploration.RoomResult{
		Loot:            reward,
		EnemiesDefeated: defeated,
	}); err != nil {
		return nil, err
	}
	s.logf("%s cleared: %d enemies defeated over %d rounds", room.Name, defeated, totalRounds)

	resultType := "combat_victory"
	if boss {
		resultType = "boss_defeated"
		s.state = StateCompleted
		s.reportCompletion(ctx, true)
		s.logf("The dungeon has been conquered!")
	}

	return &ActionResult{
		Success: true,
		Type:    resultType,
		Loot:    reward,
		Combat:  lastResult,
	}, nil
}

// handleTreasure opens a treasure room; loot was pre-rolled at generation
func (s *Session) handleTreasure(ctx context.Context, room *exploration.Room) (*ActionResult, error) {
	payload := room.Payload.Treasure
	if payload == nil {
		return nil, engerr.Internal("treasure room has no payload")
	}

	loot := payload.Loot.Clone()
	if payload.SpecialItem != "" {
		loot[payload.SpecialItem] = 1
	}
	payload.Opened = true

	if err := s.dungeon.CompleteRoom(room.ID, &exploration.RoomResult{Loot: loot}); err != nil {
		return nil, err
	}
	s.logf("The party opens the chest in %s", room.Name)

	return &ActionResult{Success: true, Type: "treasure_opened", Loot: loot}, nil
}

// handleExamine attempts to detect a trap. The best conscious rogue rolls
// agility against the detect DC; without a rogue the best overall agility
// rolls against DC+10. Failure springs the trap.
func (s *Session) handleExamine(ctx context.Context, room *exploration.Room) (*ActionResult, error) {
	trap := room.Payload.Trap
	if trap == nil {
		return nil, engerr.Internal("trap room has no payload")
	}

	scout, dc := s.pickScout(trap.DetectDC)
	if scout == nil {
		return nil, engerr.Precondition("no conscious party members to examine the room")
	}

	roll, err := s.roller.Roll(1, 20, scout.GetStat(shared.StatAgility))
	if err != nil {
		return nil, err
	}

	if roll.Total >= dc {
		trap.Detected = true
		s.logf("%s spots the %s before it springs", scout.GetName(), trap.Name)
		return &ActionResult{
			Success: true,
			Type:    "trap_detected",
			Message: scout.GetName() + " detected the trap",
		}, nil
	}

	s.logf("%s stumbles into the %s", scout.GetName(), trap.Name)
	return s.handleTrigger(ctx, room, "trap_sprung")
}

// pickScout chooses the detection roller: best conscious rogue at the
// base DC, or the best agility overall with a +10 penalty
func (s *Session) pickScout(baseDC int) (character.Character, int) {
	var bestRogue, bestAny character.Character
	for _, member := range s.consciousParty() {
		if bestAny == nil || member.GetStat(shared.StatAgility) > bestAny.GetStat(shared.StatAgility) {
			bestAny = member
		}
		if member.GetArchetype() == character.ArchetypeRogue {
			if bestRogue == nil || member.GetStat(shared.StatAgility) > bestRogue.GetStat(shared.StatAgility) {
				bestRogue = member
			}
		}
	}
	if bestRogue != nil {
		return bestRogue, baseDC
	}
	return bestAny, baseDC + 10
}

// handleDisarm attempts to disarm a detected trap. Rogues only; no rogue
// in the party forces a trigger. Success yields a small gold reward.
func (s *Session) handleDisarm(ctx context.Context, room *exploration.Room) (*ActionResult, error) {
	trap := room.Payload.Trap
	if trap == nil {
		return nil, engerr.Internal("trap room has no payload")
	}
	if !trap.Detected {
		return nil, engerr.Precondition("the trap has not been detected")
	}

	var rogue character.Character
	for _, member := range s.consciousParty() {
		if member.GetArchetype() != character.ArchetypeRogue {
			continue
		}
		if rogue == nil || member.GetStat(shared.StatAgility) > rogue.GetStat(shared.StatAgility) {
			rogue = member
		}
	}
	if rogue == nil {
		s.logf("With no one able to disarm it, the %s springs", trap.Name)
		return s.handleTrigger(ctx, room, "trap_sprung")
	}

	roll, err := s.roller.Roll(1, 20, rogue.GetStat(shared.StatAgility))
	if err != nil {
		return nil, err
	}
	if roll.Total < trap.DisarmDC {
		s.logf("%s's hand slips and the %s springs", rogue.GetName(), trap.Name)
		return s.handleTrigger(ctx, room, "trap_sprung")
	}

	trap.Disarmed = true
	reward, err := s.loot.RollDisarmReward(room.Depth, s.dungeon.Kind)
	if err != nil {
		return nil, err
	}
	if err := s.dungeon.CompleteRoom(room.ID, &exploration.RoomResult{Loot: reward}); err != nil {
		return nil, err
	}
	s.logf("%s disarms the %s", rogue.GetName(), trap.Name)

	return &ActionResult{
		Success: true,
		Type:    "trap_disarmed",
		Message: rogue.GetName() + " disarmed the trap",
		Loot:    reward,
	}, nil
}

// handleTrigger springs the trap on the party: each conscious member has
// an 80% chance to take the trap's damage scaled by a 0.7-1.3 roll. The
// room completes regardless of outcome.
func (s *Session) handleTrigger(ctx context.Context, room *exploration.Room, resultType string) (*ActionResult, error) {
	trap := room.Payload.Trap
	if trap == nil {
		return nil, engerr.Internal("trap room has no payload")
	}

	trap.Triggered = true
	for _, member := range s.consciousParty() {
		hit, err := s.roller.Percent(80)
		if err != nil {
			return nil, err
		}
		if !hit {
			s.logf("%s evades the %s", member.GetName(), trap.Name)
			continue
		}

		scale, err := s.roller.Between(70, 130)
		if err != nil {
			return nil, err
		}
		damage := trap.Damage * scale / 100
		if damage < 1 {
			damage = 1
		}
		taken := member.TakeDamage(damage)
		s.logf("%s takes %d damage from the %s", member.GetName(), taken, trap.Name)
	}

	if err := s.dungeon.CompleteRoom(room.ID, nil); err != nil {
		return nil, err
	}

	if len(s.consciousParty()) == 0 {
		s.logf("The %s claims the whole party", trap.Name)
		s.finishWipe(ctx)
		return &ActionResult{Success: false, Type: "party_wipe", Message: "The trap felled every party member"}, nil
	}

	return &ActionResult{Success: true, Type: resultType, Message: "The " + trap.Name + " was sprung"}, nil
}

// handleSolve attempts a puzzle: party average mind plus a d20 against
// the DC. Success grants the reward and possibly a new skill; failure
// forfeits the puzzle but still completes the room.
func (s *Session) handleSolve(ctx context.Context, room *exploration.Room) (*ActionResult, error) {
	puzzle := room.Payload.Puzzle
	if puzzle == nil {
		return nil, engerr.Internal("puzzle room has no payload")
	}

	conscious := s.consciousParty()
	if len(conscious) == 0 {
		return nil, engerr.Precondition("no conscious party members to solve the puzzle")
	}

	mindTotal := 0
	var solver character.Character
	for _, member := range conscious {
		mindTotal += member.GetStat(shared.StatMind)
		if solver == nil || member.GetStat(shared.StatMind) > solver.GetStat(shared.StatMind) {
			solver = member
		}
	}
	avgMind := mindTotal / len(conscious)

	roll, err := s.roller.Roll(1, 20, avgMind)
	if err != nil {
		return nil, err
	}

	if puzzle.AttemptsLeft > 0 {
		puzzle.AttemptsLeft--
	}

	if roll.Total < puzzle.DC {
		s.logf("The mechanism in %s resets with a hollow clunk", room.Name)
		if err := s.dungeon.CompleteRoom(room.ID, nil); err != nil {
			return nil, err
		}
		return &ActionResult{Success: false, Type: "puzzle_failed", Message: "The puzzle defeated the party"}, nil
	}

	puzzle.Solved = true
	reward := puzzle.Reward.Clone()

	message := "The puzzle yields its reward"
	if puzzle.SkillReward != "" {
		learned, err := s.roller.Percent(puzzle.SkillChance)
		if err != nil {
			return nil, err
		}
		if learned && solver.LearnSkill(&character.Skill{
			Key:        puzzle.SkillReward,
			Name:       puzzle.SkillReward,
			MPCost:     8,
			BaseDamage: 12,
			Stat:       shared.StatMind,
			Multiplier: 0.6,
		}) {
			message = solver.GetName() + " learned " + puzzle.SkillReward
			s.logf("%s learns %s from the mechanism's inscriptions", solver.GetName(), puzzle.SkillReward)
		}
	}

	if err := s.dungeon.CompleteRoom(room.ID, &exploration.RoomResult{Loot: reward}); err != nil {
		return nil, err
	}
	s.logf("The mechanism in %s clicks open", room.Name)

	return &ActionResult{Success: true, Type: "puzzle_solved", Message: message, Loot: reward}, nil
}

// handleRest heals and restores the party by the room's heal fraction,
// clears negative statuses with the same probability, and shaves two
// rooms off every skill cooldown.
func (s *Session) handleRest(ctx context.Context, room *exploration.Room) (*ActionResult, error) {
	rest := room.Payload.Rest
	if rest == nil {
		return nil, engerr.Internal("rest room has no payload")
	}

	clearChance := int(rest.HealFraction * 100)
	for _, member := range s.consciousParty() {
		healed := member.Heal(int(float64(member.GetMaxHP()) * rest.HealFraction))
		s.logf("%s recovers %d HP", member.GetName(), healed)

		if rest.RestoresMP {
			restored := member.RestoreMP(int(float64(member.GetMaxMP()) * rest.HealFraction))
			if restored > 0 {
				s.logf("%s recovers %d MP", member.GetName(), restored)
			}
		}

		if rest.ClearsStatus {
			for _, effect := range append([]shared.StatusEffect{}, member.GetStatusEffects()...) {
				if !effect.Type.IsClearable() {
					continue
				}
				cleared, err := s.roller.Percent(clearChance)
				if err != nil {
					return nil, err
				}
				if cleared {
					member.RemoveStatusEffect(effect.Type)
					s.logf("%s shakes off %s", member.GetName(), effect.Type)
				}
			}
		}

		member.ReduceCooldowns(2)
	}

	if err := s.dungeon.CompleteRoom(room.ID, nil); err != nil {
		return nil, err
	}
	s.logf("The party rests in %s", room.Name)

	return &ActionResult{Success: true, Type: "rest_complete", Message: "The party feels restored"}, nil
}

// handleEvent applies the room's pre-chosen effect to every conscious
// member and completes the room
func (s *Session) handleEvent(ctx context.Context, room *exploration.Room) (*ActionResult, error) {
	event := room.Payload.Event
	if event == nil {
		return nil, engerr.Internal("event room has no payload")
	}

	s.logf("%s", event.Description)
	for _, member := range s.consciousParty() {
		switch event.Kind {
		case exploration.EventManaSpring:
			restored := member.RestoreMP(int(float64(member.GetMaxMP()) * event.Fraction))
			s.logf("%s recovers %d MP", member.GetName(), restored)
		case exploration.EventStatDrain:
			member.AdjustStat(event.Stat, event.Amount)
			s.logf("%s loses %d %s", member.GetName(), -event.Amount, event.Stat)
		case exploration.EventHPDrain:
			taken := member.TakeDamage(int(float64(member.GetMaxHP()) * event.Fraction))
			s.logf("%s loses %d HP", member.GetName(), taken)
		case exploration.EventStatBoost:
			member.AdjustStat(event.Stat, event.Amount)
			s.logf("%s gains %d %s", member.GetName(), event.Amount, event.Stat)
		}
	}

	if err := s.dungeon.CompleteRoom(room.ID, nil); err != nil {
		return nil, err
	}

	if len(s.consciousParty()) == 0 {
		s.finishWipe(ctx)
		return &ActionResult{Success: false, Type: "party_wipe", Message: "The event felled every party member"}, nil
	}

	return &ActionResult{Success: true, Type: "event_resolved", Message: event.Description}, nil
}

// handleMove delegates to the dungeon; a disconnected target is an error
// result, never a silent no-op. Rooms without content complete on entry.
func (s *Session) handleMove(ctx context.Context, targetID string) (*ActionResult, error) {
	if err := s.dungeon.MoveToRoom(targetID); err != nil {
		return &ActionResult{Success: false, Type: "move_failed", Error: err.Error()}, nil
	}

	room := s.dungeon.GetCurrentRoom()
	if !room.Completed && (room.Type == exploration.RoomTypeEmpty || room.Type == exploration.RoomTypeEntrance) {
		if err := s.dungeon.CompleteRoom(room.ID, nil); err != nil {
			return nil, err
		}
	}
	s.logf("The party moves to %s", room.Name)

	return &ActionResult{Success: true, Type: "moved", Message: "Entered " + room.Name}, nil
}

// handleRetreat ends the run early, keeping the loot gathered so far
func (s *Session) handleRetreat(ctx context.Context) (*ActionResult, error) {
	if err := s.dungeon.Retreat(); err != nil {
		return nil, err
	}

	keptLoot := s.dungeon.TotalLoot.Clone()
	s.state = StateRetreated
	s.logf("The party retreats with its spoils")
	s.reportCompletion(ctx, false)

	return &ActionResult{
		Success: true,
		Type:    "retreated",
		Message: "The party withdrew from the dungeon",
		Loot:    keptLoot,
	}, nil
}

// finishWipe closes out the session after a total party kill
func (s *Session) finishWipe(ctx context.Context) {
	s.state = StateCompleted
	s.reportCompletion(ctx, false)
}

// reportCompletion pushes final loot and the completion event to the
// ledger collaborator, when one is attached
func (s *Session) reportCompletion(ctx context.Context, success bool) {
	if s.ledger == nil {
		return
	}

	progress := s.dungeon.GetProgress()
	if len(s.dungeon.TotalLoot) > 0 {
		if err := s.ledger.AddResources(ctx, s.dungeon.ID, s.dungeon.TotalLoot.Clone()); err != nil {
			s.logf("Warning: failed to report loot to ledger: %v", err)
		}
	}
	if err := s.ledger.RecordCompletion(ctx, &ledger.CompletionEvent{
		DungeonID:       s.dungeon.ID,
		Kind:            s.dungeon.Kind,
		Success:         success,
		Retreated:       s.dungeon.Retreated,
		BossDefeated:    s.dungeon.BossDefeated,
		RoomsCompleted:  progress.RoomsCompleted,
		EnemiesDefeated: s.dungeon.EnemiesDefeated,
	}); err != nil {
		s.logf("Warning: failed to report completion to ledger: %v", err)
	}
}
