package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mcoot/benched/internal/api/response"
	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/palette"
	"github.com/mcoot/benched/internal/services/roster"
)

// shortIDLen is how much of a player id text output shows
const shortIDLen = 8

// Output handles formatting output based on the configured format
type Output struct {
	format   string
	out      io.Writer
	errOut   io.Writer
	renderer *lipgloss.Renderer
}

// NewOutput creates a new Output formatter writing to out and errOut.
// Names are colored only when out is a terminal.
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{
		format:   format,
		out:      out,
		errOut:   errOut,
		renderer: lipgloss.NewRenderer(out),
	}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case roster.Snapshot:
		o.printSnapshot(v)
	case model.Player:
		o.printPlayer(v)
	case TeamsResult:
		o.printTeams(v)
	case []response.HistoryEntry:
		o.printHistory(v)
	case response.HistoryEntry:
		o.printHistoryEntry(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// TeamsResult is what the teams command reports
type TeamsResult struct {
	TeamSize    int              `json:"team_size"`
	ColumnWidth int              `json:"column_width"`
	Teams       [][]model.Player `json:"teams"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSnapshot(s roster.Snapshot) {
	_, _ = fmt.Fprintf(o.out, "Active (%d):\n", len(s.Active))
	for _, p := range s.Active {
		_, _ = fmt.Fprintf(o.out, "  %s  %s\n", shortID(p.ID), o.name(p))
	}
	_, _ = fmt.Fprintf(o.out, "Bench (%d):\n", len(s.Benched))
	for _, p := range s.Benched {
		_, _ = fmt.Fprintf(o.out, "  %s  %s\n", shortID(p.ID), o.name(p))
	}
	if s.PersistError != "" {
		_, _ = fmt.Fprintf(o.errOut, "Warning: last save failed: %s\n", s.PersistError)
	}
}

func (o *Output) printPlayer(p model.Player) {
	state := "benched"
	if p.Active {
		state = "active"
	}
	_, _ = fmt.Fprintf(o.out, "Player: %s (%s)\n", o.name(p), p.ID)
	_, _ = fmt.Fprintf(o.out, "Color: %s\n", p.Color)
	_, _ = fmt.Fprintf(o.out, "State: %s\n", state)
}

func (o *Output) printTeams(t TeamsResult) {
	_, _ = fmt.Fprintf(o.out, "Team size: %d\n", t.TeamSize)
	if len(t.Teams) == 0 {
		_, _ = fmt.Fprintln(o.out, "No active players")
		return
	}
	for i, team := range t.Teams {
		names := make([]string, len(team))
		for j, p := range team {
			names[j] = o.name(p)
		}
		_, _ = fmt.Fprintf(o.out, "  Team %d: %s\n", i+1, strings.Join(names, ", "))
	}
}

func (o *Output) printHistory(entries []response.HistoryEntry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(o.out, "No history")
		return
	}
	for i, e := range entries {
		_, _ = fmt.Fprintf(o.out, "%3d  %s  %s\n", i+1, e.At.Format("15:04:05"), describeEntry(e))
	}
}

func (o *Output) printHistoryEntry(e response.HistoryEntry) {
	_, _ = fmt.Fprintf(o.out, "Undid: %s\n", describeEntry(e))
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.out, "Status: %s\n", h.Status)
}

// name renders a player name in the player's color
func (o *Output) name(p model.Player) string {
	if p.Color == "" {
		return p.Name
	}
	return o.renderer.NewStyle().Foreground(lipgloss.Color(palette.Hex(p.Color))).Bold(true).Render(p.Name)
}

func describeEntry(e response.HistoryEntry) string {
	switch {
	case e.Action == string(model.ActionRemove):
		return fmt.Sprintf("removed %s", e.Player.Name)
	case e.Previous == nil:
		return fmt.Sprintf("added %s", e.Player.Name)
	case e.Previous.Name != e.Player.Name:
		return fmt.Sprintf("renamed %s to %s", e.Previous.Name, e.Player.Name)
	default:
		return fmt.Sprintf("edited %s", e.Player.Name)
	}
}

func shortID(id model.PlayerID) string {
	s := string(id)
	if len(s) > shortIDLen {
		return s[:shortIDLen]
	}
	return s
}
