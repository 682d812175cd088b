// Package partition turns the active pool into team assignments.
//
// Teams are never stored. The active players are put into a uniformly random
// order and a team is the set of players sharing a column when that order is
// laid out teamSize per row: player i plays for team i mod teamSize.
package partition

import (
	"sort"

	"github.com/mcoot/benched/internal/dependencies/random"
	"github.com/mcoot/benched/internal/model"
)

const (
	// DefaultTeamSize is the number of teams before anyone picks one
	DefaultTeamSize = 2
	// GridColumns is the width of the layout grid teams are spread across
	GridColumns = 12
)

// Presets are the team counts offered as one-key shortcuts
var Presets = []int{2, 3, 4}

// Shuffle returns a uniformly permuted copy of items (Fisher-Yates)
func Shuffle[T any](rnd random.Random, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleActive permutes only the active players and keeps the benched players,
// in their existing order, after them.
func ShuffleActive(rnd random.Random, players []model.Player) []model.Player {
	active, benched := Split(players)
	return append(Shuffle(rnd, active), benched...)
}

// Arrange puts active players first in their current relative order, followed
// by the benched players sorted case-insensitively by name. The sort is stable
// so equal names keep their previous order.
func Arrange(players []model.Player) []model.Player {
	active, benched := Split(players)
	sort.SliceStable(benched, func(i, j int) bool {
		return benched[i].SortKey() < benched[j].SortKey()
	})
	return append(active, benched...)
}

// Split separates players into active and benched, preserving order
func Split(players []model.Player) (active, benched []model.Player) {
	active = make([]model.Player, 0, len(players))
	benched = make([]model.Player, 0, len(players))
	for _, p := range players {
		if p.Active {
			active = append(active, p)
		} else {
			benched = append(benched, p)
		}
	}
	return active, benched
}

// Teams slices an ordered active list into teamSize columns
func Teams(active []model.Player, teamSize int) [][]model.Player {
	if teamSize < 1 {
		teamSize = 1
	}
	teams := make([][]model.Player, teamSize)
	for i := range teams {
		teams[i] = []model.Player{}
	}
	for i, p := range active {
		teams[i%teamSize] = append(teams[i%teamSize], p)
	}
	return teams
}

// ColumnWidth is the share of the layout grid one team column takes
func ColumnWidth(teamSize int) int {
	if teamSize < 1 || teamSize > GridColumns {
		return 1
	}
	return GridColumns / teamSize
}
