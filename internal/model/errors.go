package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrEmptyName      = errors.New("player name must not be empty")

	// Roster errors
	ErrInvalidTeamSize   = errors.New("team size must be at least 1")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrUndoNotApplicable = errors.New("last change no longer applies to the roster")
	ErrRosterNotLoaded   = errors.New("roster not loaded")

	// Storage errors
	ErrCorruptRoster = errors.New("roster data is corrupt")
)
