package combat

import (
	"time"
)

// Phase is the active side of a combat round
type Phase string

const (
	PhaseAllyTurn  Phase = "ally_turn"
	PhaseEnemyTurn Phase = "enemy_turn"
)

// Outcome is the terminal result of an encounter
type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeAborted Outcome = "aborted"
)

// maxLogEntries bounds the per-encounter log so a long fight cannot grow
// memory without limit
const maxLogEntries = 200

// Session is the transient state of one encounter. It exists only while
// the encounter is being resolved and is never persisted.
type Session struct {
	Allies    []Combatant
	Enemies   []*Enemy
	Round     int
	Phase     Phase
	StartedAt time.Time
	Log       []string
}

// NewSession starts an encounter session at round 1, ally phase
func NewSession(allies []Combatant, enemies []*Enemy) *Session {
	return &Session{
		Allies:    allies,
		Enemies:   enemies,
		Round:     1,
		Phase:     PhaseAllyTurn,
		StartedAt: time.Now(),
	}
}

// Append adds an entry to the bounded combat log
func (s *Session) Append(entry string) {
	if len(s.Log) >= maxLogEntries {
		// drop the oldest entry
		s.Log = s.Log[1:]
	}
	s.Log = append(s.Log, entry)
}

// ConsciousAllies returns the allies able to act this phase
func (s *Session) ConsciousAllies() []Combatant {
	var out []Combatant
	for _, ally := range s.Allies {
		if Conscious(ally) {
			out = append(out, ally)
		}
	}
	return out
}

// ConsciousEnemies returns the enemies able to act this phase
func (s *Session) ConsciousEnemies() []*Enemy {
	var out []*Enemy
	for _, enemy := range s.Enemies {
		if Conscious(enemy) {
			out = append(out, enemy)
		}
	}
	return out
}

// CheckEnd reports whether the encounter is over and with what outcome.
// Zero conscious allies is a defeat; zero living enemies is a victory.
func (s *Session) CheckEnd() (bool, Outcome) {
	if ConsciousCount(s.Allies) == 0 {
		return true, OutcomeDefeat
	}

	livingEnemies := 0
	for _, enemy := range s.Enemies {
		if enemy.IsAlive() {
			livingEnemies++
		}
	}
	if livingEnemies == 0 {
		return true, OutcomeVictory
	}

	return false, ""
}

// Result is the structured outcome returned to the caller when the
// encounter ends
type Result struct {
	Outcome         Outcome  `json:"outcome"`
	Rounds          int      `json:"rounds"`
	DurationSeconds float64  `json:"duration_seconds"`
	SurvivorCount   int      `json:"survivor_count"`
	EnemiesDefeated int      `json:"enemies_defeated"`
	Log             []string `json:"log,omitempty"`
}
