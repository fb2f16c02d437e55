// Package storagetest holds the behaviour every storage.PlayerStorage
// implementation has to share.
package storagetest

import (
	"context"
	"strconv"
	"sync"

	"github.com/stretchr/testify/suite"

	"github.com/goserg/rosterserver/internal/domain"
	"github.com/goserg/rosterserver/internal/normalize"
	"github.com/goserg/rosterserver/internal/storage"
)

type Suite struct {
	suite.Suite

	// New returns an empty storage for every test.
	New func() storage.PlayerStorage

	store storage.PlayerStorage
	ctx   context.Context
}

func (s *Suite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.New()
}

func (s *Suite) TearDownTest() {
	s.Require().NoError(s.store.Close())
}

func (s *Suite) create(name string) domain.Player {
	p, err := s.store.Create(s.ctx, domain.Player{
		Name:       name,
		Team:       "Lions",
		Position:   "P",
		BattingAvg: 0.25,
	})
	s.Require().NoError(err)
	return p
}

func (s *Suite) TestCreateAssignsIncreasingIDs() {
	a := s.create("Alpha")
	b := s.create("Bravo")
	s.Greater(a.ID, int64(0))
	s.Greater(b.ID, a.ID)
}

func (s *Suite) TestIDsAreNotReused() {
	a := s.create("Alpha")
	s.Require().NoError(s.store.Delete(s.ctx, a.ID))
	b := s.create("Alpha")
	s.Greater(b.ID, a.ID)
}

func (s *Suite) TestCreateDuplicateName() {
	s.create("Ken Lee")
	_, err := s.store.Create(s.ctx, domain.Player{Name: "ken lee", Team: "T", Position: "C"})
	s.ErrorIs(err, domain.ErrDuplicateName)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *Suite) TestGetRoundTrip() {
	created, err := s.store.Create(s.ctx, domain.Player{
		Name:       "Ichiro Suzuki",
		Team:       "Mariners",
		Position:   "RF",
		BattingAvg: 0.3111111,
		Bio:        "hit machine",
	})
	s.Require().NoError(err)

	got, err := s.store.Get(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created, got)
	s.InDelta(0.3111111, got.BattingAvg, 1e-12)
}

func (s *Suite) TestGetMissing() {
	_, err := s.store.Get(s.ctx, 999)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *Suite) TestListOrder() {
	s.create("Bravo")
	s.create("alpha")
	s.create("Charlie")

	players, err := s.store.ListPlayers(s.ctx)
	s.Require().NoError(err)
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	s.Equal([]string{"alpha", "Bravo", "Charlie"}, names)

	again, err := s.store.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Equal(players, again)
}

func (s *Suite) TestListEmpty() {
	players, err := s.store.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.NotNil(players)
	s.Empty(players)
}

func (s *Suite) TestUpdate() {
	p := s.create("Alpha")
	updated, err := s.store.Update(s.ctx, p.ID, func(player *domain.Player) {
		player.Team = "Tigers"
	})
	s.Require().NoError(err)
	s.Equal("Tigers", updated.Team)
	s.Equal(p.Name, updated.Name)
	s.Equal(p.ID, updated.ID)

	got, err := s.store.Get(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(updated, got)
}

func (s *Suite) TestUpdateRenameSameRecordDifferentCase() {
	p := s.create("Alpha")
	updated, err := s.store.Update(s.ctx, p.ID, func(player *domain.Player) {
		player.Name = "ALPHA"
	})
	s.Require().NoError(err)
	s.Equal("ALPHA", updated.Name)
}

func (s *Suite) TestUpdateRenameConflict() {
	a := s.create("Alpha")
	s.create("Bravo")
	_, err := s.store.Update(s.ctx, a.ID, func(player *domain.Player) {
		player.Name = "bravo"
		player.Team = "Tigers"
	})
	s.ErrorIs(err, domain.ErrDuplicateName)

	got, err := s.store.Get(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Equal(a, got)
}

func (s *Suite) TestUpdateMissing() {
	_, err := s.store.Update(s.ctx, 42, func(*domain.Player) {})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *Suite) TestUpdateFreesOldName() {
	a := s.create("Alpha")
	_, err := s.store.Update(s.ctx, a.ID, func(player *domain.Player) {
		player.Name = "Zulu"
	})
	s.Require().NoError(err)
	s.create("alpha")
}

func (s *Suite) TestDelete() {
	p := s.create("Alpha")
	s.Require().NoError(s.store.Delete(s.ctx, p.ID))
	_, err := s.store.Get(s.ctx, p.ID)
	s.ErrorIs(err, domain.ErrNotFound)
	s.ErrorIs(s.store.Delete(s.ctx, p.ID), domain.ErrNotFound)
	s.create("alpha")
}

func (s *Suite) TestConcurrentCreateSameName() {
	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Create(s.ctx, domain.Player{Name: "Same Name", Team: "T", Position: "P"})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			s.ErrorIs(err, domain.ErrDuplicateName)
		}()
	}
	wg.Wait()
	s.Equal(1, success)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *Suite) TestConcurrentRenameSameName() {
	const workers = 16
	ids := make([]int64, 0, workers)
	for i := 0; i < workers; i++ {
		ids = append(ids, s.create("Player "+strconv.Itoa(i)).ID)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := s.store.Update(s.ctx, id, func(player *domain.Player) {
				player.Name = "Same Name"
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			s.ErrorIs(err, domain.ErrDuplicateName)
		}(id)
	}
	wg.Wait()
	s.Equal(1, success)

	players, err := s.store.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, workers)
	same := 0
	for _, p := range players {
		if normalize.Name(p.Name) == "same name" {
			same++
		}
	}
	s.Equal(1, same)
}
