package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/goserg/rosterserver/internal/config"
	"github.com/goserg/rosterserver/internal/domain"
	"github.com/goserg/rosterserver/internal/metrics"
	"github.com/goserg/rosterserver/internal/normalize"
	"github.com/goserg/rosterserver/internal/storage"
)

type PlayerService struct {
	playerStorage storage.PlayerStorage
	strictUpdate  bool
	log           *logrus.Entry
	metrics       *metrics.Recorder
}

func New(playerStorage storage.PlayerStorage, cfg config.Server, l *logrus.Logger, rec *metrics.Recorder) *PlayerService {
	return &PlayerService{
		playerStorage: playerStorage,
		strictUpdate:  cfg.UpdateMode == config.UpdateModeStrict,
		log: l.WithFields(logrus.Fields{
			"from": "player-service",
		}),
		metrics: rec,
	}
}

// ListPlayers returns every player ordered by case-insensitive name, ties
// broken by id.
func (s *PlayerService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	players, err := s.playerStorage.ListPlayers(ctx)
	s.record("list", err)
	return players, err
}

func (s *PlayerService) Get(ctx context.Context, id int64) (domain.Player, error) {
	player, err := s.playerStorage.Get(ctx, id)
	err = convertError(err, id, "")
	s.record("get", err)
	return player, err
}

func (s *PlayerService) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (domain.Player, error) {
	if err := req.Validate(); err != nil {
		s.record("create", err)
		return domain.Player{}, err
	}
	player, err := s.playerStorage.Create(ctx, req.player())
	err = convertError(err, 0, req.Name)
	s.record("create", err)
	if err != nil {
		return domain.Player{}, err
	}
	s.log.WithFields(logrus.Fields{"id": player.ID, "name": player.Name}).Info("player created")
	return player, nil
}

// UpdatePlayer applies req to the player with the given id.
//
// A rename that collides with another player changes nothing. When req was
// rejected part way, the lenient mode still stores the fields decoded before
// the invalid one and then reports the rejection; the strict mode stores
// nothing.
func (s *PlayerService) UpdatePlayer(ctx context.Context, id int64, req UpdatePlayerRequest) (domain.Player, error) {
	player, err := s.updatePlayer(ctx, id, req)
	s.record("update", err)
	return player, err
}

func (s *PlayerService) updatePlayer(ctx context.Context, id int64, req UpdatePlayerRequest) (domain.Player, error) {
	if req.Rejected != nil && s.strictUpdate {
		if _, err := s.playerStorage.Get(ctx, id); err != nil {
			return domain.Player{}, convertError(err, id, "")
		}
		if req.Name != nil {
			if err := s.checkNameFree(ctx, id, *req.Name); err != nil {
				return domain.Player{}, err
			}
		}
		return domain.Player{}, req.Rejected
	}
	var newName string
	if req.Name != nil {
		newName = *req.Name
	}
	player, err := s.playerStorage.Update(ctx, id, req.apply)
	if err != nil {
		return domain.Player{}, convertError(err, id, newName)
	}
	if req.Rejected != nil {
		s.log.WithFields(logrus.Fields{"id": id}).WithError(req.Rejected).Debug("player partially updated")
		return domain.Player{}, req.Rejected
	}
	s.log.WithFields(logrus.Fields{"id": id}).Info("player updated")
	return player, nil
}

// checkNameFree reports a conflict when a player other than id already uses
// name. Nothing is written, so the unique index stays the source of truth.
func (s *PlayerService) checkNameFree(ctx context.Context, id int64, name string) error {
	players, err := s.playerStorage.ListPlayers(ctx)
	if err != nil {
		return err
	}
	key := normalize.Name(name)
	for _, p := range players {
		if p.ID != id && normalize.Name(p.Name) == key {
			return &domain.ConflictError{Name: name}
		}
	}
	return nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id int64) error {
	err := convertError(s.playerStorage.Delete(ctx, id), id, "")
	s.record("delete", err)
	if err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"id": id}).Info("player deleted")
	return nil
}

// Seed stores players when the storage is empty. It reports how many were
// added.
func (s *PlayerService) Seed(ctx context.Context, players []CreatePlayerRequest) (int, error) {
	n, err := s.playerStorage.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i := range players {
		if _, err := s.CreatePlayer(ctx, players[i]); err != nil {
			return i, err
		}
	}
	return len(players), nil
}

func (s *PlayerService) record(op string, err error) {
	s.metrics.RecordOperation(op, result(err))
}

func result(err error) string {
	var validationErr *domain.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &validationErr):
		return "invalid"
	case errors.Is(err, domain.ErrDuplicateName):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func convertError(err error, id int64, name string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return &domain.NotFoundError{ID: id}
	case errors.Is(err, domain.ErrDuplicateName):
		return &domain.ConflictError{Name: name}
	default:
		return err
	}
}
