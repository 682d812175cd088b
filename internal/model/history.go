package model

import "time"

// HistoryAction identifies what kind of mutation a history entry records
type HistoryAction string

const (
	ActionRemove    HistoryAction = "REMOVE"
	ActionAddOrEdit HistoryAction = "ADD_OR_EDIT"
)

// HistoryEntry is an in-memory record of a roster mutation.
// It is never persisted.
type HistoryEntry struct {
	Action HistoryAction `json:"action"`
	// Player is the removed player (REMOVE) or the resulting player (ADD_OR_EDIT)
	Player Player `json:"player"`
	// Previous holds the pre-edit player for edits, nil for additions and removals
	Previous *Player `json:"previous,omitempty"`
	// Index is the roster position the player held before a removal
	Index int       `json:"index"`
	At    time.Time `json:"at"`
}

// IsAdd reports whether an ADD_OR_EDIT entry created a new player
func (e HistoryEntry) IsAdd() bool {
	return e.Action == ActionAddOrEdit && e.Previous == nil
}
