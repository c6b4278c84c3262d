package dice

import (
	"math/rand"
	"sync"
	"time"

	engerr "github.com/delveteam/delve/internal/errors"
)

// randomRoller implements Roller over a seeded math/rand source
type randomRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomRoller creates a roller seeded from the current time
func NewRandomRoller() Roller {
	return NewSeededRoller(time.Now().UnixNano())
}

// NewSeededRoller creates a roller with a fixed seed for reproducible runs
func NewSeededRoller(seed int64) Roller {
	return &randomRoller{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, engerr.InvalidArgumentf("dice count must be positive, got %d", count)
	}
	if sides < 2 {
		return nil, engerr.InvalidArgumentf("dice must have at least 2 sides, got %d", sides)
	}

	result := &RollResult{
		Rolls: make([]int, count),
		Bonus: bonus,
		Count: count,
		Sides: sides,
	}

	r.mu.Lock()
	for i := 0; i < count; i++ {
		result.Rolls[i] = r.rng.Intn(sides) + 1
		result.RawTotal += result.Rolls[i]
	}
	r.mu.Unlock()

	result.Total = result.RawTotal + bonus

	if count == 1 && sides == 20 {
		result.IsCrit = result.Rolls[0] == 20
		result.IsFumble = result.Rolls[0] == 1
	}

	return result, nil
}

// Between implements Roller.Between
func (r *randomRoller) Between(min, max int) (int, error) {
	if max < min {
		return 0, engerr.InvalidArgumentf("invalid range [%d, %d]", min, max)
	}
	if min == max {
		return min, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Intn(max-min+1), nil
}

// Percent implements Roller.Percent
func (r *randomRoller) Percent(chance int) (bool, error) {
	if chance < 0 || chance > 100 {
		return false, engerr.InvalidArgumentf("chance must be in [0, 100], got %d", chance)
	}
	if chance == 0 {
		return false, nil
	}
	if chance == 100 {
		return true, nil
	}

	r.mu.Lock()
	roll := r.rng.Intn(100) + 1
	r.mu.Unlock()

	return roll <= chance, nil
}
