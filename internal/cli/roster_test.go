package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/services/roster"
)

type RosterCmdSuite struct {
	suite.Suite
	file string
}

func TestRosterCmdSuite(t *testing.T) {
	suite.Run(t, new(RosterCmdSuite))
}

func (s *RosterCmdSuite) SetupTest() {
	for _, key := range []string{"BENCHED_STORAGE", "BENCHED_FILE", "BENCHED_TEAM_SIZE"} {
		s.T().Setenv(key, "")
	}
	s.T().Setenv("LOG_LEVEL", "error")
	s.file = filepath.Join(s.T().TempDir(), "players.json")
}

// run executes the CLI against the suite's roster file
func (s *RosterCmdSuite) run(args ...string) (string, string, error) {
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--file", s.file}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (s *RosterCmdSuite) snapshot() roster.Snapshot {
	out, _, err := s.run("-o", "json", "list")
	s.Require().NoError(err)
	var snap roster.Snapshot
	s.Require().NoError(json.Unmarshal([]byte(out), &snap))
	return snap
}

func (s *RosterCmdSuite) add(names ...string) {
	_, _, err := s.run(append([]string{"add"}, names...)...)
	s.Require().NoError(err)
}

func names(players []model.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func (s *RosterCmdSuite) TestListEmptyRoster() {
	out, _, err := s.run("list")
	s.Require().NoError(err)
	s.Contains(out, "Active (0)")
	s.Contains(out, "Bench (0)")
}

func (s *RosterCmdSuite) TestAddPersists() {
	s.add("Amy", "Bob")

	data, err := os.ReadFile(s.file)
	s.Require().NoError(err)
	var doc model.Roster
	s.Require().NoError(json.Unmarshal(data, &doc))
	s.ElementsMatch([]string{"Amy", "Bob"}, names(doc.Names))
	for _, p := range doc.Names {
		s.True(p.Active)
		s.NotEmpty(p.ID)
		s.NotEmpty(p.Color)
	}
}

func (s *RosterCmdSuite) TestAddWithColor() {
	out, _, err := s.run("-o", "json", "add", "Amy", "--color", "#ABC")
	s.Require().NoError(err)

	var p model.Player
	s.Require().NoError(json.Unmarshal([]byte(out), &p))
	s.Equal("#aabbcc", p.Color)
}

func (s *RosterCmdSuite) TestAddRejectsBadColor() {
	_, _, err := s.run("add", "Amy", "--color", "blue")
	s.Error(err)
	s.Empty(s.snapshot().Players)
}

func (s *RosterCmdSuite) TestAddRejectsEmptyName() {
	_, _, err := s.run("add", "")
	s.ErrorIs(err, model.ErrEmptyName)
	s.Empty(s.snapshot().Players)
}

func (s *RosterCmdSuite) TestAddKeepsNameVerbatim() {
	_, _, err := s.run("add", " Dee ", "   ")
	s.Require().NoError(err)
	s.ElementsMatch([]string{" Dee ", "   "}, names(s.snapshot().Players))

	_, _, err = s.run("toggle", " dee ")
	s.Require().NoError(err)
	s.Equal([]string{" Dee "}, names(s.snapshot().Benched))
}

func (s *RosterCmdSuite) TestToggleByName() {
	s.add("Amy", "Bob", "cid")

	_, _, err := s.run("toggle", "amy", "CID")
	s.Require().NoError(err)

	snap := s.snapshot()
	s.Equal([]string{"Bob"}, names(snap.Active))
	s.Equal([]string{"Amy", "cid"}, names(snap.Benched))
}

func (s *RosterCmdSuite) TestToggleUnknownPlayer() {
	s.add("Amy")
	_, _, err := s.run("toggle", "zed")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *RosterCmdSuite) TestEdit() {
	s.add("Amy")

	_, _, err := s.run("edit", "amy", "--name", "Amelia", "--color", "#102030")
	s.Require().NoError(err)

	snap := s.snapshot()
	s.Require().Len(snap.Players, 1)
	s.Equal("Amelia", snap.Players[0].Name)
	s.Equal("#102030", snap.Players[0].Color)
}

func (s *RosterCmdSuite) TestEditRequiresAChange() {
	s.add("Amy")
	_, _, err := s.run("edit", "amy")
	s.Error(err)
}

func (s *RosterCmdSuite) TestEditEmptyName() {
	s.add("Amy")
	_, _, err := s.run("edit", "amy", "--name", "")
	s.ErrorIs(err, model.ErrEmptyName)
	s.Equal([]string{"Amy"}, names(s.snapshot().Players))
}

func (s *RosterCmdSuite) TestRemoveByName() {
	s.add("Amy", "Bob")

	out, _, err := s.run("remove", "bob")
	s.Require().NoError(err)
	s.Contains(out, "Removed Bob")
	s.Equal([]string{"Amy"}, names(s.snapshot().Players))
}

func (s *RosterCmdSuite) TestDeleteNeedsFullID() {
	s.add("Amy")

	_, _, err := s.run("delete", "Amy")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	id := string(s.snapshot().Players[0].ID)
	_, _, err = s.run("delete", id)
	s.Require().NoError(err)
	s.Empty(s.snapshot().Players)
}

func (s *RosterCmdSuite) TestBenchAllAndClearBench() {
	s.add("Amy", "Bob", "Cid")

	_, _, err := s.run("bench-all")
	s.Require().NoError(err)
	snap := s.snapshot()
	s.Empty(snap.Active)
	s.Equal([]string{"Amy", "Bob", "Cid"}, names(snap.Benched))

	_, _, err = s.run("clear-bench")
	s.Require().NoError(err)
	snap = s.snapshot()
	s.Empty(snap.Benched)
	s.ElementsMatch([]string{"Amy", "Bob", "Cid"}, names(snap.Active))
}

func (s *RosterCmdSuite) TestTeams() {
	s.add("Amy", "Bob", "Cid", "Dee")

	out, _, err := s.run("-o", "json", "teams", "--size", "3")
	s.Require().NoError(err)

	var teams TeamsResult
	s.Require().NoError(json.Unmarshal([]byte(out), &teams))
	s.Equal(3, teams.TeamSize)
	s.Equal(4, teams.ColumnWidth)
	s.Require().Len(teams.Teams, 3)
	s.Len(teams.Teams[0], 2)
	s.Len(teams.Teams[1], 1)
	s.Len(teams.Teams[2], 1)
}

func (s *RosterCmdSuite) TestTeamsRejectsZero() {
	s.add("Amy")
	_, _, err := s.run("teams", "--size", "0")
	s.ErrorIs(err, model.ErrInvalidTeamSize)
}

func (s *RosterCmdSuite) TestCorruptFileStartsEmpty() {
	s.Require().NoError(os.WriteFile(s.file, []byte("{not json"), 0o644))

	s.Empty(s.snapshot().Players)
	s.add("Amy")
	s.Equal([]string{"Amy"}, names(s.snapshot().Players))
}

func (s *RosterCmdSuite) TestMemoryStorageDoesNotTouchFile() {
	_, _, err := s.run("--storage", "memory", "add", "Amy")
	s.Require().NoError(err)
	s.NoFileExists(s.file)
}

func (s *RosterCmdSuite) TestUnknownStorage() {
	_, _, err := s.run("--storage", "tape", "list")
	s.Error(err)
}
