package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/benched/internal/model"
)

func TestWriteError_MapsModelErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound},
		{fmt.Errorf("edit: %w", model.ErrEmptyName), http.StatusBadRequest, CodeEmptyName},
		{model.ErrInvalidTeamSize, http.StatusBadRequest, CodeInvalidTeamSize},
		{model.ErrNothingToUndo, http.StatusConflict, CodeNothingToUndo},
		{model.ErrUndoNotApplicable, http.StatusConflict, CodeUndoNotApplicable},
		{model.ErrRosterNotLoaded, http.StatusServiceUnavailable, CodeRosterNotLoaded},
		{NewInvalidRequestError("bad body"), http.StatusBadRequest, CodeInvalidRequest},
		{NewInvalidColorError("bad color"), http.StatusBadRequest, CodeInvalidColor},
		{errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
			assert.Equal(t, tt.status, Status(tt.err))
		})
	}
}
