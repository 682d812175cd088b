package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/benched/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestLoadMissingKeyIsEmpty() {
	players, err := s.storage.LoadRoster(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestSaveAndLoadRoundTrip() {
	players := []model.Player{
		{ID: "p1", Name: "Amy", Color: "#123456", Active: true},
		{ID: "p2", Name: "Bob", Color: "#654321", Active: false},
	}

	s.Require().NoError(s.storage.SaveRoster(s.ctx, players))

	loaded, err := s.storage.LoadRoster(s.ctx)
	s.Require().NoError(err)
	s.Equal(players, loaded)
}

func (s *StorageSuite) TestSaveStoresNamesDocument() {
	s.Require().NoError(s.storage.SaveRoster(s.ctx, []model.Player{{ID: "p1", Name: "Amy", Color: "#fff"}}))

	raw, err := s.mini.Get(rosterKey("default"))
	s.Require().NoError(err)
	s.JSONEq(`{"names":[{"id":"p1","name":"Amy","color":"#fff","active":false}]}`, raw)
}

func (s *StorageSuite) TestRosterHasNoTTL() {
	s.Require().NoError(s.storage.SaveRoster(s.ctx, nil))

	s.Equal(time.Duration(0), s.mini.TTL(rosterKey("default")))
}

func (s *StorageSuite) TestLoadCorruptValue() {
	s.Require().NoError(s.mini.Set(rosterKey("default"), "garbage"))

	_, err := s.storage.LoadRoster(s.ctx)
	s.ErrorIs(err, model.ErrCorruptRoster)
}

func (s *StorageSuite) TestSeparateRostersDoNotCollide() {
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	cfg := DefaultConfig()
	cfg.Roster = "tuesday"
	other := NewWithClient(client, cfg)
	defer func() { _ = other.Close() }()

	s.Require().NoError(s.storage.SaveRoster(s.ctx, []model.Player{{ID: "p1", Name: "Amy"}}))

	loaded, err := other.LoadRoster(s.ctx)
	s.Require().NoError(err)
	s.Empty(loaded)
}

func (s *StorageSuite) TestRosterKey() {
	s.Equal("benched:roster:default", rosterKey(""))
	s.Equal("benched:roster:tuesday", rosterKey("tuesday"))
}
