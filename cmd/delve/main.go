package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/delveteam/delve/internal/config"
	"github.com/delveteam/delve/internal/dice"
	"github.com/delveteam/delve/internal/domain/character"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	"github.com/delveteam/delve/internal/domain/shared"
	dungeonsRepo "github.com/delveteam/delve/internal/repositories/dungeons"
	combatService "github.com/delveteam/delve/internal/services/combat"
	dungeonService "github.com/delveteam/delve/internal/services/dungeon"
	explorationService "github.com/delveteam/delve/internal/services/exploration"
	"github.com/delveteam/delve/internal/services/generator"
	"github.com/delveteam/delve/internal/services/ledger"
	lootService "github.com/delveteam/delve/internal/services/loot"
)

// maxTurns bounds the autoplay loop against pathological dungeons
const maxTurns = 500

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	kindFlag := flag.String("kind", string(exploration.KindCave), "Dungeon kind to generate")
	difficulty := flag.Int("difficulty", 1, "Dungeon difficulty (0 is easiest)")
	seed := flag.Int64("seed", 0, "Dice seed; 0 uses the clock")
	useRedis := flag.Bool("redis", false, "Persist the run to Redis")
	flag.Parse()

	kind := exploration.Kind(*kindFlag)
	if !kind.Valid() {
		log.Fatalf("Unknown dungeon kind %q", *kindFlag)
	}

	cfg := config.Load()

	ctx := context.Background()

	roller := dice.NewRandomRoller()
	if *seed != 0 {
		roller = dice.NewSeededRoller(*seed)
	}

	var repo dungeonsRepo.Repository = dungeonsRepo.NewInMemoryRepository()
	if *useRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
		}
		repo = dungeonsRepo.NewRedisRepository(&dungeonsRepo.RedisRepoConfig{Client: client})
	}

	genSvc := generator.NewService(&generator.ServiceConfig{Roller: roller})
	dungeonSvc := dungeonService.NewService(&dungeonService.ServiceConfig{
		Repository: repo,
		Generator:  genSvc,
		Roller:     roller,
	})
	combatSvc := combatService.NewService(&combatService.ServiceConfig{
		Roller:    roller,
		MaxRounds: cfg.Combat.MaxRounds,
		Timeout:   cfg.Combat.Timeout,
	})
	lootSvc := lootService.NewService(&lootService.ServiceConfig{Roller: roller})
	runLedger := ledger.NewInMemoryService()

	dungeon, err := dungeonSvc.CreateDungeon(ctx, &dungeonService.CreateDungeonInput{
		Kind:       kind,
		Difficulty: *difficulty,
	})
	if err != nil {
		log.Fatalf("Failed to create dungeon: %v", err)
	}

	fmt.Printf("=== %s (difficulty %d, %d rooms) ===\n", kind, *difficulty, len(dungeon.Rooms))

	party := stockParty()
	session, err := explorationService.NewSession(&explorationService.SessionConfig{
		Dungeon:       dungeon,
		Party:         party,
		CombatService: combatSvc,
		LootService:   lootSvc,
		Ledger:        runLedger,
		Roller:        roller,
	})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	autoplay(ctx, session)

	for _, entry := range session.DrainEvents() {
		fmt.Println(entry)
	}

	if err := dungeonSvc.SaveDungeon(ctx, dungeon); err != nil {
		log.Printf("Warning: failed to persist final dungeon state: %v", err)
	}

	printSummary(dungeon, party, runLedger)
}

// autoplay drives the session with a depth-first policy: resolve the
// current room, prefer unexplored passages, and backtrack when stuck
func autoplay(ctx context.Context, session *explorationService.Session) {
	var trail []string

	for turn := 0; turn < maxTurns; turn++ {
		if session.State() == explorationService.StateCompleted ||
			session.State() == explorationService.StateRetreated {
			return
		}

		for _, entry := range session.DrainEvents() {
			fmt.Println(entry)
		}

		state, err := session.GetCurrentRoomState()
		if err != nil {
			log.Fatalf("Failed to read room state: %v", err)
		}

		input := chooseAction(state, trail)
		if input == nil {
			fmt.Println("Nowhere left to go; the run ends here.")
			return
		}

		result, err := session.ExecuteAction(ctx, input)
		if err != nil {
			log.Fatalf("Action %s failed: %v", input.Type, err)
		}

		if input.Type == explorationService.ActionMove {
			trail = updateTrail(trail, state.RoomID, input.TargetRoomID)
		}
		if !result.Success && result.Type == "party_wipe" {
			return
		}
	}
	fmt.Println("Turn limit reached; abandoning the run.")
}

// chooseAction picks the first content action, then an unexplored
// passage, then a backtracking move along the trail
func chooseAction(state *explorationService.RoomState, trail []string) *explorationService.ActionInput {
	for _, action := range state.Actions {
		if action.Type != explorationService.ActionMove && action.Type != explorationService.ActionRetreat {
			return &explorationService.ActionInput{Type: action.Type}
		}
	}

	for _, conn := range state.Connections {
		if !conn.Discovered {
			return &explorationService.ActionInput{
				Type:         explorationService.ActionMove,
				TargetRoomID: conn.RoomID,
			}
		}
	}

	// All neighbors discovered; step back toward unexplored territory
	if len(trail) > 0 {
		return &explorationService.ActionInput{
			Type:         explorationService.ActionMove,
			TargetRoomID: trail[len(trail)-1],
		}
	}

	// Entrance with a fully explored graph and nothing left to do
	for _, conn := range state.Connections {
		return &explorationService.ActionInput{
			Type:         explorationService.ActionMove,
			TargetRoomID: conn.RoomID,
		}
	}
	return nil
}

// updateTrail maintains the backtracking stack: pop when retracing a
// step, push when moving forward
func updateTrail(trail []string, from, to string) []string {
	if len(trail) > 0 && trail[len(trail)-1] == to {
		return trail[:len(trail)-1]
	}
	return append(trail, from)
}

// stockParty builds the standard three-member autoplay roster
func stockParty() []character.Character {
	warrior := character.NewPartyMember("pm-warrior", "Borin", character.ArchetypeWarrior, 120, 10)
	warrior.Stats[shared.StatMight] = 16
	warrior.Stats[shared.StatEndurance] = 14

	rogue := character.NewPartyMember("pm-rogue", "Lyra", character.ArchetypeRogue, 85, 20)
	rogue.Stats[shared.StatAgility] = 16
	rogue.Stats[shared.StatMight] = 12

	mage := character.NewPartyMember("pm-mage", "Selwyn", character.ArchetypeMage, 70, 60)
	mage.Stats[shared.StatMind] = 16
	mage.Skills = []*character.Skill{
		{
			Key:        "firebolt",
			Name:       "Firebolt",
			MPCost:     8,
			BaseDamage: 14,
			Stat:       shared.StatMind,
			Multiplier: 0.8,
		},
		{
			Key:         "mend",
			Name:        "Mend",
			MPCost:      10,
			BaseHealing: 20,
			Stat:        shared.StatMind,
			Multiplier:  0.5,
		},
	}

	return []character.Character{warrior, rogue, mage}
}

func printSummary(dungeon *exploration.Dungeon, party []character.Character, runLedger *ledger.InMemoryService) {
	fmt.Printf("\n=== Run Summary ===\n")
	progress := dungeon.GetProgress()
	fmt.Printf("Rooms completed: %d/%d\n", progress.RoomsCompleted, progress.RoomsTotal)
	fmt.Printf("Enemies defeated: %d\n", dungeon.EnemiesDefeated)
	fmt.Printf("Boss defeated: %v\n", dungeon.BossDefeated)
	fmt.Printf("Retreated: %v\n", dungeon.Retreated)

	fmt.Printf("\nLoot:\n")
	keys := make([]string, 0, len(dungeon.TotalLoot))
	for key := range dungeon.TotalLoot {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %s: %d\n", key, dungeon.TotalLoot[key])
	}

	fmt.Printf("\nParty:\n")
	for _, member := range party {
		fmt.Printf("  %s (%s): %d/%d HP, %d/%d MP\n",
			member.GetName(), member.GetArchetype(),
			member.GetHP(), member.GetMaxHP(), member.GetMP(), member.GetMaxMP())
	}

	if events := runLedger.Completions(); len(events) > 0 {
		event := events[len(events)-1]
		fmt.Printf("\nLedger: success=%v retreated=%v rooms=%d enemies=%d\n",
			event.Success, event.Retreated, event.RoomsCompleted, event.EnemiesDefeated)
	}
}
