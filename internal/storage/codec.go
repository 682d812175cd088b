package storage

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/benched/internal/model"
)

// rosterKey is the single top-level field of the roster document
const rosterKey = "names"

// EncodeRoster serialises players as {"names": [...]}
func EncodeRoster(players []model.Player) ([]byte, error) {
	if players == nil {
		players = []model.Player{}
	}
	return json.MarshalIndent(model.Roster{Names: players}, "", "  ")
}

// DecodeRoster parses a roster document. The document must be an object with a
// names array; anything else is reported as model.ErrCorruptRoster.
func DecodeRoster(data []byte) ([]model.Player, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptRoster, err)
	}

	raw, ok := doc[rosterKey]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q field", model.ErrCorruptRoster, rosterKey)
	}

	var players []model.Player
	if err := json.Unmarshal(raw, &players); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCorruptRoster, err)
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}
