// Package file stores the roster as a JSON document on local disk.
package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/storage"
)

// DefaultPath is where the roster lives when nothing else is configured
const DefaultPath = "players.json"

// Storage reads and writes a single roster file. Writes go through a temp file
// and rename so a crash mid-write never leaves a truncated roster behind.
type Storage struct {
	path string
}

// New creates a file storage for the given path
func New(path string) *Storage {
	if path == "" {
		path = DefaultPath
	}
	return &Storage{path: path}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Path returns the roster file location
func (s *Storage) Path() string {
	return s.path
}

func (s *Storage) LoadRoster(ctx context.Context) ([]model.Player, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Player{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", model.ErrCorruptRoster, s.path, err)
	}
	return storage.DecodeRoster(data)
}

func (s *Storage) SaveRoster(ctx context.Context, players []model.Player) error {
	data, err := storage.EncodeRoster(players)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create roster dir: %w", err)
		}
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is only open for the duration of a call
func (s *Storage) Close() error {
	return nil
}
