package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/benched/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeEmptyName         = "EMPTY_NAME"
	CodeInvalidTeamSize   = "INVALID_TEAM_SIZE"
	CodeInvalidColor      = "INVALID_COLOR"
	CodeNothingToUndo     = "NOTHING_TO_UNDO"
	CodeUndoNotApplicable = "UNDO_NOT_APPLICABLE"
	CodeRosterNotLoaded   = "ROSTER_NOT_LOADED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrEmptyName):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyName, "Player name must not be empty"}}
	case errors.Is(err, model.ErrInvalidTeamSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeamSize, "Team size must be at least 1"}}
	case errors.Is(err, model.ErrNothingToUndo):
		return &httpError{http.StatusConflict, APIError{CodeNothingToUndo, "Nothing to undo"}}
	case errors.Is(err, model.ErrUndoNotApplicable):
		return &httpError{http.StatusConflict, APIError{CodeUndoNotApplicable, "Last change no longer applies to the roster"}}
	case errors.Is(err, model.ErrRosterNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeRosterNotLoaded, "Roster not loaded yet"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInvalidColorError creates an error for an unparsable color
func NewInvalidColorError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidColor, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
