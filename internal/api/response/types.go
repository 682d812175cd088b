package response

import (
	"time"

	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/palette"
)

// Player represents a player in API responses
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Active   bool   `json:"active"`
	Gradient struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"gradient"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	out := Player{
		ID:     string(p.ID),
		Name:   p.Name,
		Color:  p.Color,
		Active: p.Active,
	}
	out.Gradient.Start, out.Gradient.End = palette.Gradient(p.Color)
	return out
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Teams is the response for GET /roster/teams
type Teams struct {
	TeamSize    int        `json:"team_size"`
	ColumnWidth int        `json:"column_width"`
	Teams       [][]Player `json:"teams"`
}

// TeamsFromModel converts team columns
func TeamsFromModel(teams [][]model.Player, teamSize, columnWidth int) Teams {
	out := Teams{
		TeamSize:    teamSize,
		ColumnWidth: columnWidth,
		Teams:       make([][]Player, len(teams)),
	}
	for i, team := range teams {
		out.Teams[i] = PlayersFromModel(team)
	}
	return out
}

// HistoryEntry represents a history entry in API responses
type HistoryEntry struct {
	Action   string    `json:"action"`
	Player   Player    `json:"player"`
	Previous *Player   `json:"previous,omitempty"`
	At       time.Time `json:"at"`
}

// HistoryFromModel converts the history log
func HistoryFromModel(entries []model.HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntryFromModel(e)
	}
	return out
}

// HistoryEntryFromModel converts one history entry
func HistoryEntryFromModel(e model.HistoryEntry) HistoryEntry {
	out := HistoryEntry{
		Action: string(e.Action),
		Player: PlayerFromModel(e.Player),
		At:     e.At,
	}
	if e.Previous != nil {
		prev := PlayerFromModel(*e.Previous)
		out.Previous = &prev
	}
	return out
}
