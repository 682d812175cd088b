package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/benched/internal/model"
)

type StorageSuite struct {
	suite.Suite
	dir     string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.storage = New(filepath.Join(s.dir, "players.json"))
	s.ctx = context.Background()
}

func (s *StorageSuite) writeRaw(content string) {
	s.Require().NoError(os.WriteFile(s.storage.Path(), []byte(content), 0o644))
}

func (s *StorageSuite) TestLoadMissingFileIsEmpty() {
	players, err := s.storage.LoadRoster(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestSaveAndLoadRoundTrip() {
	players := []model.Player{
		{ID: "p1", Name: "Amy", Color: "#123456", Active: true},
		{ID: "p2", Name: "Bob", Color: "rgb(1,2,3)", Active: false},
	}

	s.Require().NoError(s.storage.SaveRoster(s.ctx, players))

	loaded, err := s.storage.LoadRoster(s.ctx)
	s.Require().NoError(err)
	s.Equal(players, loaded)
}

func (s *StorageSuite) TestSaveOverwrites() {
	s.Require().NoError(s.storage.SaveRoster(s.ctx, []model.Player{{ID: "p1", Name: "Amy"}, {ID: "p2", Name: "Bob"}}))
	s.Require().NoError(s.storage.SaveRoster(s.ctx, []model.Player{{ID: "p3", Name: "Cid"}}))

	loaded, err := s.storage.LoadRoster(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(loaded, 1)
	s.Equal(model.PlayerID("p3"), loaded[0].ID)
}

func (s *StorageSuite) TestSaveWritesNamesDocument() {
	s.Require().NoError(s.storage.SaveRoster(s.ctx, []model.Player{{ID: "p1", Name: "Amy", Color: "#fff", Active: true}}))

	data, err := os.ReadFile(s.storage.Path())
	s.Require().NoError(err)
	s.JSONEq(`{"names":[{"id":"p1","name":"Amy","color":"#fff","active":true}]}`, string(data))
}

func (s *StorageSuite) TestSaveCreatesParentDirectory() {
	nested := New(filepath.Join(s.dir, "a", "b", "players.json"))
	s.Require().NoError(nested.SaveRoster(s.ctx, nil))

	loaded, err := nested.LoadRoster(s.ctx)
	s.Require().NoError(err)
	s.Empty(loaded)
}

func (s *StorageSuite) TestLoadCorruptFile() {
	s.writeRaw("this is not json")

	_, err := s.storage.LoadRoster(s.ctx)
	s.ErrorIs(err, model.ErrCorruptRoster)
}

func (s *StorageSuite) TestLoadUnexpectedShape() {
	s.writeRaw(`{"teams":[]}`)

	_, err := s.storage.LoadRoster(s.ctx)
	s.ErrorIs(err, model.ErrCorruptRoster)
}

func (s *StorageSuite) TestLoadDirectoryInsteadOfFile() {
	dirPath := filepath.Join(s.dir, "isadir")
	s.Require().NoError(os.Mkdir(dirPath, 0o755))

	_, err := New(dirPath).LoadRoster(s.ctx)
	s.ErrorIs(err, model.ErrCorruptRoster)
}

func (s *StorageSuite) TestDefaultPath() {
	s.Equal(DefaultPath, New("").Path())
}
