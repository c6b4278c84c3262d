package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller is the single source of randomness for the engine.
// Generators and the combat resolver take a Roller by injection so tests
// can replay predetermined results.
type Roller interface {
	// Roll rolls count dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// Between returns a uniform integer in [min, max] inclusive
	Between(min, max int) (int, error)

	// Percent reports whether a d100 roll lands at or under chance (0..100)
	Percent(chance int) (bool, error)
}

// RollResult holds the outcome of a dice roll
type RollResult struct {
	Total    int   // RawTotal + Bonus
	Rolls    []int // individual die results
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
	IsCrit   bool // natural max on a single d20
	IsFumble bool // natural 1 on a single d20
}
