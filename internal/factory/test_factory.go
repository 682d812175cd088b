package factory

import (
	"time"

	"github.com/mcoot/benched/internal/dependencies/mocks"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/services/persist"
	"github.com/mcoot/benched/internal/storage/memory"
	"github.com/mcoot/benched/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock   *mocks.MockClock
	MockRandom  *mocks.MockRandom
	MockIDs     *mocks.SequentialIDs
	MemoryStore *memory.Storage
}

// NewTestApp creates an App backed by memory storage with mocked dependencies.
// Writes are not debounced.
func NewTestApp(players ...model.Player) *TestApp {
	store := memory.NewWithPlayers(players)
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockIDs := mocks.NewSequentialIDs()

	app := newWithDependencies(store, mockClock, mockRandom, mockIDs, persist.Config{}, 2, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockClock:   mockClock,
		MockRandom:  mockRandom,
		MockIDs:     mockIDs,
		MemoryStore: store,
	}
}

// SamplePlayers is a small roster used across tests: two active, two benched
func SamplePlayers() []model.Player {
	return []model.Player{
		{ID: "amy", Name: "Amy", Color: "#8b1a1a", Active: true},
		{ID: "bob", Name: "Bob", Color: "#1a8b1a", Active: true},
		{ID: "cid", Name: "Cid", Color: "#1a1a8b", Active: false},
		{ID: "dee", Name: "dee", Color: "#5a1a8b", Active: false},
	}
}
