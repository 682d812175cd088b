// Package roster owns the player list: who is active, who is benched, in
// what order, and the session history of removals and edits.
//
// Every exported operation runs to completion under one lock. The ordering
// rule holds after every operation: active players first in their current
// relative order, then benched players sorted case-insensitively by name.
package roster

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/benched/internal/dependencies/clock"
	"github.com/mcoot/benched/internal/dependencies/ids"
	"github.com/mcoot/benched/internal/dependencies/random"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/services/partition"
	"github.com/mcoot/benched/internal/services/persist"
	"github.com/mcoot/benched/internal/storage"
)

// Persister accepts roster snapshots for writing. Submit must not block on I/O.
type Persister interface {
	Submit(players []model.Player)
	Flush(ctx context.Context) error
	OnResult(fn func(persist.Result))
}

// Ensure the persist writer satisfies Persister
var _ Persister = (*persist.Writer)(nil)

// Store is the roster state machine
type Store struct {
	storage storage.Storage
	writer  Persister
	clock   clock.Clock
	random  random.Random
	ids     ids.Generator
	logger  *slog.Logger

	mu         sync.Mutex
	players    []model.Player
	history    []model.HistoryEntry
	teamSize   int
	loaded     bool
	persistErr error

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSub     int
}

// New creates a Store. teamSize values below 1 fall back to the default.
func New(
	storage storage.Storage,
	writer Persister,
	clock clock.Clock,
	random random.Random,
	ids ids.Generator,
	teamSize int,
	logger *slog.Logger,
) *Store {
	if teamSize < 1 {
		teamSize = partition.DefaultTeamSize
	}
	s := &Store{
		storage:     storage,
		writer:      writer,
		clock:       clock,
		random:      random,
		ids:         ids,
		logger:      logger.With(slog.String("component", "roster")),
		players:     []model.Player{},
		history:     []model.HistoryEntry{},
		teamSize:    teamSize,
		subscribers: make(map[int]func(Snapshot)),
	}
	writer.OnResult(s.recordPersistResult)
	return s
}

// Load replaces the in-memory roster with the stored one. A missing or
// unreadable roster becomes an empty one; the failure is logged, not returned.
// Active players are shuffled, benched players sorted by name.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	players, err := s.storage.LoadRoster(ctx)
	if err != nil {
		s.logger.Warn("could not load roster, starting empty", slog.Any("error", err))
		players = []model.Player{}
	}
	players = s.sanitize(players)

	s.mu.Lock()
	s.players = partition.ShuffleActive(s.random, partition.Arrange(players))
	s.loaded = true
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("roster loaded",
		slog.Int("active", len(snap.Active)),
		slog.Int("benched", len(snap.Benched)))
	s.notify(snap)
	return nil
}

// ToggleActive flips a player between active and benched. Reports false for an
// unknown id.
func (s *Store) ToggleActive(id model.PlayerID) (bool, error) {
	return s.mutate(func() bool {
		idx := s.indexLocked(id)
		if idx < 0 {
			return false
		}
		s.players[idx].Active = !s.players[idx].Active
		return true
	})
}

// QuickRemove drops a player and records the removal so it can be undone
func (s *Store) QuickRemove(id model.PlayerID) (bool, error) {
	return s.remove(id)
}

// Delete removes the player with the given id. Like QuickRemove it records
// history, so deletions are undoable too.
func (s *Store) Delete(id model.PlayerID) (bool, error) {
	return s.remove(id)
}

func (s *Store) remove(id model.PlayerID) (bool, error) {
	return s.mutate(func() bool {
		idx := s.indexLocked(id)
		if idx < 0 {
			return false
		}
		removed := s.players[idx]
		s.players = append(s.players[:idx:idx], s.players[idx+1:]...)
		s.appendHistoryLocked(model.HistoryEntry{
			Action: model.ActionRemove,
			Player: removed,
			Index:  idx,
		})
		return true
	})
}

// AddOrEdit creates a new active player when targetID is empty, otherwise
// overwrites the target's name and color in place. The name is stored exactly
// as given; only "" is rejected, with model.ErrEmptyName. An unknown targetID
// reports false.
func (s *Store) AddOrEdit(targetID model.PlayerID, name, color string) (model.Player, bool, error) {
	if name == "" {
		return model.Player{}, false, model.ErrEmptyName
	}

	var result model.Player
	changed, err := s.mutate(func() bool {
		if targetID == "" {
			result = model.Player{
				ID:     model.PlayerID(s.ids.NewID()),
				Name:   name,
				Color:  color,
				Active: true,
			}
			// appended after the last active player by the normalising arrange
			s.players = append(s.players, result)
			s.appendHistoryLocked(model.HistoryEntry{
				Action: model.ActionAddOrEdit,
				Player: result,
				Index:  len(s.players) - 1,
			})
			return true
		}

		idx := s.indexLocked(targetID)
		if idx < 0 {
			return false
		}
		previous := s.players[idx]
		s.players[idx].Name = name
		s.players[idx].Color = color
		result = s.players[idx]
		s.appendHistoryLocked(model.HistoryEntry{
			Action:   model.ActionAddOrEdit,
			Player:   result,
			Previous: &previous,
			Index:    idx,
		})
		return true
	})
	if err != nil || !changed {
		return model.Player{}, changed, err
	}
	return result, true, nil
}

// BulkActivate makes everyone active and shuffles the whole roster
func (s *Store) BulkActivate() error {
	_, err := s.mutateRaw(func() bool {
		for i := range s.players {
			s.players[i].Active = true
		}
		s.players = partition.Shuffle(s.random, s.players)
		return true
	})
	return err
}

// BulkDeactivate benches everyone
func (s *Store) BulkDeactivate() error {
	_, err := s.mutate(func() bool {
		for i := range s.players {
			s.players[i].Active = false
		}
		return true
	})
	return err
}

// SetTeamSize records the number of teams and reshuffles the active players
func (s *Store) SetTeamSize(n int) error {
	if n < 1 {
		return model.ErrInvalidTeamSize
	}
	_, err := s.mutateRaw(func() bool {
		s.teamSize = n
		s.players = partition.ShuffleActive(s.random, s.players)
		return true
	})
	return err
}

// Undo reverses the most recent history entry and removes it from the log.
// Undo itself records nothing. An entry that no longer applies to the current
// roster is discarded and reported as model.ErrUndoNotApplicable.
func (s *Store) Undo() (model.HistoryEntry, error) {
	var entry model.HistoryEntry
	_, err := s.mutateErr(func() (bool, error) {
		if len(s.history) == 0 {
			return false, model.ErrNothingToUndo
		}
		entry = s.history[len(s.history)-1]
		s.history = s.history[:len(s.history)-1]

		switch {
		case entry.Action == model.ActionRemove:
			if s.indexLocked(entry.Player.ID) >= 0 {
				return false, model.ErrUndoNotApplicable
			}
			at := min(max(entry.Index, 0), len(s.players))
			s.players = append(s.players[:at:at], append([]model.Player{entry.Player}, s.players[at:]...)...)
		case entry.IsAdd():
			idx := s.indexLocked(entry.Player.ID)
			if idx < 0 {
				return false, model.ErrUndoNotApplicable
			}
			s.players = append(s.players[:idx:idx], s.players[idx+1:]...)
		default:
			idx := s.indexLocked(entry.Player.ID)
			if idx < 0 {
				return false, model.ErrUndoNotApplicable
			}
			s.players[idx].Name = entry.Previous.Name
			s.players[idx].Color = entry.Previous.Color
		}
		return true, nil
	}, true)
	if err != nil {
		return model.HistoryEntry{}, err
	}
	return entry, nil
}

// Flush waits for pending writes and returns the latest write error
func (s *Store) Flush(ctx context.Context) error {
	return s.writer.Flush(ctx)
}

// LastPersistError returns the error from the most recent write, nil after a
// successful one
func (s *Store) LastPersistError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// Subscribe registers fn to receive a snapshot after every change.
// fn is called outside the store lock. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// mutate runs fn, normalises the order and persists when fn reports a change
func (s *Store) mutate(fn func() bool) (bool, error) {
	return s.mutateErr(func() (bool, error) { return fn(), nil }, true)
}

// mutateRaw is mutate for operations that produce their own final order
func (s *Store) mutateRaw(fn func() bool) (bool, error) {
	return s.mutateErr(func() (bool, error) { return fn(), nil }, false)
}

func (s *Store) mutateErr(fn func() (bool, error), arrange bool) (bool, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return false, model.ErrRosterNotLoaded
	}
	changed, err := fn()
	if err != nil || !changed {
		s.mu.Unlock()
		return false, err
	}
	if arrange {
		s.players = partition.Arrange(s.players)
	}
	s.writer.Submit(s.players)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return true, nil
}

func (s *Store) recordPersistResult(r persist.Result) {
	s.mu.Lock()
	changed := (s.persistErr == nil) != (r.Err == nil)
	s.persistErr = r.Err
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) appendHistoryLocked(entry model.HistoryEntry) {
	entry.At = s.clock.Now()
	s.history = append(s.history, entry)
}

func (s *Store) indexLocked(id model.PlayerID) int {
	for i, p := range s.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// sanitize drops entries that can't be addressed or shown: blank ids, repeats
// of an id already seen and empty names
func (s *Store) sanitize(players []model.Player) []model.Player {
	seen := make(map[model.PlayerID]bool, len(players))
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if p.ID == "" || p.Name == "" || seen[p.ID] {
			s.logger.Warn("skipping stored player",
				slog.String("id", string(p.ID)),
				slog.String("name", p.Name))
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
