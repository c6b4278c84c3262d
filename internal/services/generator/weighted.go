package generator

import (
	"sort"

	"github.com/delveteam/delve/internal/dice"
	"github.com/delveteam/delve/internal/domain/game/exploration"
	engerr "github.com/delveteam/delve/internal/errors"
)

// WeightedPick selects a room type from a weight table using the injected
// roller. Iteration order is fixed by sorting keys so a seeded roller
// yields reproducible dungeons.
func WeightedPick(table map[exploration.RoomType]int, roller dice.Roller) (exploration.RoomType, error) {
	if len(table) == 0 {
		return "", engerr.InvalidArgument("weight table is empty")
	}

	keys := make([]exploration.RoomType, 0, len(table))
	total := 0
	for key, weight := range table {
		if weight <= 0 {
			continue
		}
		keys = append(keys, key)
		total += weight
	}
	if total == 0 {
		return "", engerr.InvalidArgument("weight table has no positive weights")
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	pick, err := roller.Between(1, total)
	if err != nil {
		return "", err
	}

	for _, key := range keys {
		pick -= table[key]
		if pick <= 0 {
			return key, nil
		}
	}
	// unreachable while weights sum to total
	return keys[len(keys)-1], nil
}
