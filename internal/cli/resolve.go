package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mcoot/benched/internal/model"
)

// minPrefixLen is the shortest id prefix accepted as a player reference
const minPrefixLen = 4

// errAmbiguousPlayer is returned when a reference matches more than one player
var errAmbiguousPlayer = errors.New("ambiguous player reference")

// resolvePlayer finds the player a command line argument refers to. The
// reference may be a full id, a case-insensitive name, or an id prefix of at
// least minPrefixLen characters. Names and prefixes must match exactly one
// player. Names compare with their whitespace intact.
func resolvePlayer(players []model.Player, ref string) (model.Player, error) {
	if ref == "" {
		return model.Player{}, fmt.Errorf("empty player reference: %w", model.ErrPlayerNotFound)
	}

	for _, p := range players {
		if string(p.ID) == ref {
			return p, nil
		}
	}

	if p, ok, err := uniqueMatch(players, ref, func(p model.Player) bool {
		return strings.EqualFold(p.Name, ref)
	}); ok || err != nil {
		return p, err
	}

	if len(ref) >= minPrefixLen {
		if p, ok, err := uniqueMatch(players, ref, func(p model.Player) bool {
			return strings.HasPrefix(string(p.ID), ref)
		}); ok || err != nil {
			return p, err
		}
	}

	return model.Player{}, fmt.Errorf("%q: %w", ref, model.ErrPlayerNotFound)
}

func uniqueMatch(players []model.Player, ref string, match func(model.Player) bool) (model.Player, bool, error) {
	var found []model.Player
	for _, p := range players {
		if match(p) {
			found = append(found, p)
		}
	}
	switch len(found) {
	case 0:
		return model.Player{}, false, nil
	case 1:
		return found[0], true, nil
	default:
		return model.Player{}, false, fmt.Errorf("%q matches %d players, use an id: %w", ref, len(found), errAmbiguousPlayer)
	}
}
