package roster

import (
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/services/partition"
)

// Snapshot is a consistent copy of the roster at one point in time
type Snapshot struct {
	Players     []model.Player   `json:"players"`
	Active      []model.Player   `json:"active"`
	Benched     []model.Player   `json:"benched"`
	Teams       [][]model.Player `json:"teams"`
	TeamSize    int              `json:"team_size"`
	ColumnWidth int              `json:"column_width"`
	HistoryLen  int              `json:"history_len"`
	// PersistError is the message of the last failed write, empty when the
	// last write succeeded
	PersistError string `json:"persist_error,omitempty"`
}

// Snapshot returns the current state of the roster
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Players returns every player in display order
func (s *Store) Players() []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.ClonePlayers(s.players)
}

// ActivePlayers returns active players in their current (shuffled) order
func (s *Store) ActivePlayers() []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, _ := partition.Split(s.players)
	return active
}

// BenchedPlayers returns benched players sorted case-insensitively by name
func (s *Store) BenchedPlayers() []model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, benched := partition.Split(s.players)
	return benched
}

// Get returns the player with the given id
func (s *Store) Get(id model.PlayerID) (model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return model.Player{}, model.ErrPlayerNotFound
	}
	return s.players[idx], nil
}

// Teams returns the active players split into TeamSize columns
func (s *Store) Teams() [][]model.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, _ := partition.Split(s.players)
	return partition.Teams(active, s.teamSize)
}

// TeamSize returns the current number of teams
func (s *Store) TeamSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teamSize
}

// ColumnWidth returns the grid width of a single team column
func (s *Store) ColumnWidth() int {
	return partition.ColumnWidth(s.TeamSize())
}

// History returns the session's history log, oldest first
func (s *Store) History() []model.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Store) snapshotLocked() Snapshot {
	active, benched := partition.Split(s.players)
	snap := Snapshot{
		Players:     model.ClonePlayers(s.players),
		Active:      active,
		Benched:     benched,
		Teams:       partition.Teams(active, s.teamSize),
		TeamSize:    s.teamSize,
		ColumnWidth: partition.ColumnWidth(s.teamSize),
		HistoryLen:  len(s.history),
	}
	if s.persistErr != nil {
		snap.PersistError = s.persistErr.Error()
	}
	return snap
}
