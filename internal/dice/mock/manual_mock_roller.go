package mockdice

import (
	"fmt"
	"sync"

	"github.com/delveteam/delve/internal/dice"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results.
// Roll and Percent consume one queued value per die; Between consumes one value
// that is returned verbatim (clamped to the requested range is the caller's job).
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls: []int{},
	}
}

// SetNextRoll queues the next roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queue with the given roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// Reset clears the queue and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
}

func (m *ManualMockRoller) next() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(count, sides, bonus int) (*dice.RollResult, error) {
	result := &dice.RollResult{
		Rolls: make([]int, count),
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}

	for i := 0; i < count; i++ {
		roll, err := m.next()
		if err != nil {
			return nil, err
		}
		if roll < 1 || roll > sides {
			return nil, fmt.Errorf("invalid roll %d for d%d", roll, sides)
		}
		result.Rolls[i] = roll
		result.RawTotal += roll
	}

	result.Total = result.RawTotal + bonus

	if count == 1 && sides == 20 {
		result.IsCrit = result.Rolls[0] == 20
		result.IsFumble = result.Rolls[0] == 1
	}

	return result, nil
}

// Between implements dice.Roller.Between, returning the next queued value
func (m *ManualMockRoller) Between(min, max int) (int, error) {
	v, err := m.next()
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("queued value %d outside requested range [%d, %d]", v, min, max)
	}
	return v, nil
}

// Percent implements dice.Roller.Percent, consuming one queued d100 value
func (m *ManualMockRoller) Percent(chance int) (bool, error) {
	v, err := m.next()
	if err != nil {
		return false, err
	}
	if v < 1 || v > 100 {
		return false, fmt.Errorf("queued value %d is not a valid d100 roll", v)
	}
	return v <= chance, nil
}
