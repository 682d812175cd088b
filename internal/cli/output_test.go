package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/benched/internal/api/response"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/services/roster"
)

func newTestOutput(format string) (*Output, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewOutput(format, &out, &errOut), &out, &errOut
}

func TestOutput_Snapshot(t *testing.T) {
	o, out, errOut := newTestOutput("text")

	o.Print(roster.Snapshot{
		Active:       []model.Player{{ID: "0123456789ab", Name: "Amy", Color: "#112233", Active: true}},
		Benched:      []model.Player{{ID: "cid", Name: "Cid"}},
		PersistError: "disk full",
	})

	assert.Contains(t, out.String(), "Active (1):")
	assert.Contains(t, out.String(), "01234567  ")
	assert.NotContains(t, out.String(), "0123456789ab")
	assert.Contains(t, out.String(), "Amy")
	assert.Contains(t, out.String(), "Bench (1):")
	assert.Contains(t, out.String(), "Cid")
	assert.Contains(t, errOut.String(), "disk full")
}

func TestOutput_Teams(t *testing.T) {
	o, out, _ := newTestOutput("text")

	o.Print(TeamsResult{
		TeamSize: 2,
		Teams: [][]model.Player{
			{{Name: "Amy"}, {Name: "Cid"}},
			{{Name: "Bob"}},
		},
	})

	assert.Contains(t, out.String(), "Team 1: Amy, Cid")
	assert.Contains(t, out.String(), "Team 2: Bob")
}

func TestOutput_TeamsEmpty(t *testing.T) {
	o, out, _ := newTestOutput("text")
	o.Print(TeamsResult{TeamSize: 2, Teams: nil})
	assert.Contains(t, out.String(), "No active players")
}

func TestOutput_History(t *testing.T) {
	o, out, _ := newTestOutput("text")
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

	amy := response.Player{Name: "Amy"}
	prev := response.Player{Name: "Amelia"}
	o.Print([]response.HistoryEntry{
		{Action: string(model.ActionAddOrEdit), Player: amy, At: at},
		{Action: string(model.ActionAddOrEdit), Player: amy, Previous: &prev, At: at},
		{Action: string(model.ActionAddOrEdit), Player: amy, Previous: &amy, At: at},
		{Action: string(model.ActionRemove), Player: amy, At: at},
	})

	text := out.String()
	assert.Contains(t, text, "09:30:00  added Amy")
	assert.Contains(t, text, "renamed Amelia to Amy")
	assert.Contains(t, text, "edited Amy")
	assert.Contains(t, text, "removed Amy")
}

func TestOutput_JSON(t *testing.T) {
	o, out, _ := newTestOutput("json")

	o.Print(model.Player{ID: "amy", Name: "Amy", Active: true})

	var p model.Player
	require.NoError(t, json.Unmarshal(out.Bytes(), &p))
	assert.Equal(t, model.PlayerID("amy"), p.ID)
}

func TestOutput_PrintError(t *testing.T) {
	o, _, errOut := newTestOutput("json")
	o.PrintError(errors.New("boom"))
	assert.JSONEq(t, `{"error":{"message":"boom"}}`, errOut.String())

	o, _, errOut = newTestOutput("text")
	o.PrintError(errors.New("boom"))
	assert.Equal(t, "Error: boom\n", errOut.String())
}
