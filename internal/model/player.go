package model

import "strings"

// PlayerID uniquely identifies a player on the roster. Assigned once, never reused.
type PlayerID string

// Player is a single roster entry
type Player struct {
	ID     PlayerID `json:"id"`
	Name   string   `json:"name"`
	Color  string   `json:"color"` // presentation only, duplicates allowed
	Active bool     `json:"active"`
}

// SortKey is the key benched players are ordered by
func (p Player) SortKey() string {
	return strings.ToLower(p.Name)
}

// Roster is the document persisted by every storage backend
type Roster struct {
	Names []Player `json:"names"`
}

// ClonePlayers returns a copy of the given slice so callers can't mutate store state
func ClonePlayers(players []Player) []Player {
	out := make([]Player, len(players))
	copy(out, players)
	return out
}
