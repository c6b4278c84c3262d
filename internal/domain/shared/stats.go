package shared

// Stat identifies a character attribute
type Stat string

const (
	StatMight     Stat = "might"
	StatAgility   Stat = "agility"
	StatMind      Stat = "mind"
	StatSpirit    Stat = "spirit"
	StatEndurance Stat = "endurance"
)

// AllStats lists every attribute, in display order
var AllStats = []Stat{StatMight, StatAgility, StatMind, StatSpirit, StatEndurance}

// Resources is a named resource tally (gold, materials, experience, ...)
type Resources map[string]int

// Merge adds every amount in other into r
func (r Resources) Merge(other Resources) {
	for name, amount := range other {
		r[name] += amount
	}
}

// Clone returns an independent copy of r
func (r Resources) Clone() Resources {
	copied := make(Resources, len(r))
	for name, amount := range r {
		copied[name] = amount
	}
	return copied
}
