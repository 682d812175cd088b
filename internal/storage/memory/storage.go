package memory

import (
	"context"
	"sync"

	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/storage"
)

// Storage keeps the roster in process memory. Used in tests and for
// throwaway sessions started with --storage memory.
type Storage struct {
	mu sync.RWMutex

	players []model.Player
	saves   int
	failErr error
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// NewWithPlayers creates a storage pre-populated with players
func NewWithPlayers(players []model.Player) *Storage {
	return &Storage{players: model.ClonePlayers(players)}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) LoadRoster(ctx context.Context) ([]model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.players == nil {
		return []model.Player{}, nil
	}
	return model.ClonePlayers(s.players), nil
}

func (s *Storage) SaveRoster(ctx context.Context, players []model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failErr != nil {
		return s.failErr
	}
	s.players = model.ClonePlayers(players)
	s.saves++
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// FailSaves makes every subsequent SaveRoster return err. Pass nil to recover.
func (s *Storage) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// SaveCount returns the number of successful saves
func (s *Storage) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
